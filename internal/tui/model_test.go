package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pipesheet-cli/internal/option"
	"pipesheet-cli/internal/recipe"
	"pipesheet-cli/internal/session"
)

type fakeClipboard struct {
	writes []string
	err    error
}

func (f *fakeClipboard) write(s string) error {
	f.writes = append(f.writes, s)
	return f.err
}

func newTestModel(t *testing.T, keyword string, clip *fakeClipboard) model {
	t.Helper()
	sess, err := session.New(session.Defaults{Fragment: "5", Keyword: keyword})
	require.NoError(t, err)
	catalog, err := recipe.NewCatalog(sess)
	require.NoError(t, err)
	return newModel(sess, catalog, Options{CopyDelay: time.Millisecond, Copy: clip.write})
}

func send(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	updated, ok := next.(model)
	require.True(t, ok)
	return updated, cmd
}

func typeText(t *testing.T, m model, text string) model {
	t.Helper()
	for _, r := range text {
		m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

// runBatch executes cmd and the commands of any batch it yields, feeding results back
func runBatch(t *testing.T, m model, cmd tea.Cmd) model {
	t.Helper()
	if cmd == nil {
		return m
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			m = runBatch(t, m, c)
		}
		return m
	}
	m, _ = send(t, m, msg)
	return m
}

func ids(m model) []string {
	out := make([]string, len(m.results))
	for i, r := range m.results {
		out[i] = r.Entry.ID()
	}
	return out
}

func TestModel_TypingFilters(t *testing.T) {
	m := newTestModel(t, "", &fakeClipboard{})
	assert.Len(t, m.results, 7)

	m = typeText(t, m, "tunnel")
	assert.Equal(t, "tunnel", m.sess.Search.Keyword())
	assert.Equal(t, "?q=tunnel", m.sess.Search.Fragment())
	assert.Equal(t, []string{"port-forwarding", "e2ee-port-forwarding"}, ids(m))
	assert.Contains(t, m.View(), "#?q=tunnel")

	m = typeText(t, m, "x")
	assert.Empty(t, m.results)
	assert.Contains(t, m.View(), `no recipe matches "tunnelx"`)

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
	assert.Equal(t, "", m.sess.Search.Keyword())
	assert.Empty(t, m.sess.Search.Fragment())
	assert.Len(t, m.results, 7)
}

func TestModel_InitialKeyword(t *testing.T) {
	m := newTestModel(t, "folder", &fakeClipboard{})
	assert.Equal(t, "folder", m.input.Value())
	assert.Equal(t, []string{"tar-dir-transfer", "e2ee-tar-dir-transfer", "zip-dir-transfer"}, ids(m))
}

func TestModel_CursorAndCommands(t *testing.T) {
	m := newTestModel(t, "tunnel", &fakeClipboard{})

	c, ok := m.selectedCommand()
	require.True(t, ok)
	assert.Equal(t, "Server host", c.Label)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	c, _ = m.selectedCommand()
	assert.Equal(t, "Client host", c.Label)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	c, _ = m.selectedCommand()
	assert.Equal(t, "Server host", c.Label, "tab wraps around")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	r, _ := m.selected()
	assert.Equal(t, "e2ee-port-forwarding", r.ID())

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	r, _ = m.selected()
	assert.Equal(t, "port-forwarding", r.ID(), "down wraps around")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	r, _ = m.selected()
	assert.Equal(t, "e2ee-port-forwarding", r.ID())
}

func TestModel_CopyShowsIndicator(t *testing.T) {
	clip := &fakeClipboard{}
	m := newTestModel(t, "clipboard", clip)

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	require.NotNil(t, cmd)
	assert.True(t, m.copied)
	assert.Contains(t, m.View(), "Copied")

	m = runBatch(t, m, cmd)
	assert.Equal(t, []string{"pbpaste | curl -T - https://ppng.io/clip5"}, clip.writes)
	assert.False(t, m.copied, "indicator hidden after the delay")
}

func TestModel_EarlierTickHidesLaterCopy(t *testing.T) {
	m := newTestModel(t, "clipboard", &fakeClipboard{})

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	assert.True(t, m.copied)

	// the first copy's tick fires while the second is still pending
	m, _ = send(t, m, hideCopiedMsg{})
	assert.False(t, m.copied)
}

func TestModel_CopyFailure(t *testing.T) {
	m := newTestModel(t, "zip", &fakeClipboard{err: errors.New("no xclip")})

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	m, _ = send(t, m, batch[0]())

	assert.False(t, m.copied)
	assert.Contains(t, m.View(), "copy failed: no xclip")
}

func TestModel_CycleListener(t *testing.T) {
	m := newTestModel(t, "tunnel", &fakeClipboard{})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})

	c, _ := m.selectedCommand()
	assert.Contains(t, c.Text, "nc -lp 1022")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.Equal(t, option.ListenerNcL, m.sess.Listener.Get())
	c, _ = m.selectedCommand()
	assert.Contains(t, c.Text, "| nc -l 1022 |")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	c, _ = m.selectedCommand()
	assert.Contains(t, c.Text, "socat TCP-LISTEN:1022 -")

	// the other tunnel recipe shares the listener
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	c, _ = m.selectedCommand()
	assert.Contains(t, c.Text, "socat TCP-LISTEN:1022 -")
}

func TestModel_QuitKeys(t *testing.T) {
	m := newTestModel(t, "", &fakeClipboard{})

	_, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_WindowResize(t *testing.T) {
	m := newTestModel(t, "", &fakeClipboard{})
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Equal(t, 34, m.viewport.Height)
	assert.Equal(t, 120-m.listWidth()-4, m.viewport.Width)
}

func TestModel_ResetRecipe(t *testing.T) {
	m := newTestModel(t, "folder", &fakeClipboard{})
	r, ok := m.selected()
	require.True(t, ok)
	require.Equal(t, "tar-dir-transfer", r.ID())

	for _, f := range r.Fields() {
		if f.Name == "format" {
			require.NoError(t, f.Set("tar.gz"))
		}
	}
	c, _ := m.selectedCommand()
	assert.Contains(t, c.Text, "tar cz .")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	c, _ = m.selectedCommand()
	assert.Contains(t, c.Text, "tar c . |")
	assert.Contains(t, m.View(), "reset tar-dir-transfer")
}

func TestModel_CycleRelay(t *testing.T) {
	m := newTestModel(t, "clipboard", &fakeClipboard{})

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})
	assert.Equal(t, session.DefaultRelayURLs[1], m.sess.RelayURL.Get())
	c, _ := m.selectedCommand()
	assert.Equal(t, "pbpaste | curl -T - "+session.DefaultRelayURLs[1]+"/clip5", c.Text)
	assert.Contains(t, m.View(), "relay: "+session.DefaultRelayURLs[1])

	for range session.DefaultRelayURLs[1:] {
		m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})
	}
	assert.Equal(t, session.DefaultRelayURLs[0], m.sess.RelayURL.Get(), "wraps to the first relay")
}
