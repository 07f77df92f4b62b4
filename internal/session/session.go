// Package session owns the parameters a command sheet is rendered from.
//
// Shared parameters live on the Session and are handed by reference to every
// recipe that reads them, so an edit made through one recipe shows up in all
// of them. Recipe-local parameters are created by the recipe itself on the
// same Store.
package session

import (
	"fmt"

	"pipesheet-cli/internal/fragment"
	"pipesheet-cli/internal/option"
)

// DefaultRelayURLs are the public relay servers offered for selection
var DefaultRelayURLs = []string{
	"https://ppng.io",
	"https://piping.glitch.me",
	"https://ppng.herokuapp.com",
	"https://piping.nwtgck.repl.co",
	"https://piping-47q675ro2guv.runkit.sh",
}

const (
	fragmentLength = 3
	// Path1Prefix and Path2Prefix name the two directions of a tunnel
	Path1Prefix = "aaa"
	Path2Prefix = "bbb"
)

// Defaults seeds a new session. Empty Fragment means "generate one" unless
// EmptyFragment is set.
type Defaults struct {
	RelayURL string
	// RelayURLs are the relays offered for selection; DefaultRelayURLs when empty
	RelayURLs []string
	Fragment  string
	// EmptyFragment keeps an empty Fragment instead of generating one
	EmptyFragment bool
	ServerPort string
	ClientPort string
	Listener   option.Listener
	Keyword    string
	// Hash is a URL fragment such as "#?q=folder", read when Keyword is empty
	Hash string
}

// Session is the top-level owner of shared parameters
type Session struct {
	store *Store

	RelayURL   *Param[string]
	RelayURLs  []string
	Fragment   *Param[string]
	ServerPort *Param[string]
	ClientPort *Param[string]
	Listener   *Param[option.Listener]

	// Path1 and Path2 follow Fragment until edited directly
	Path1 *Derived[string, string]
	Path2 *Derived[string, string]

	Search *SearchState
}

// New creates a session from defaults, drawing a random fragment if none is given
func New(d Defaults) (*Session, error) {
	if len(d.RelayURLs) == 0 {
		d.RelayURLs = DefaultRelayURLs
	}
	if d.RelayURL == "" {
		d.RelayURL = d.RelayURLs[0]
	}
	if d.ServerPort == "" {
		d.ServerPort = "22"
	}
	if d.ClientPort == "" {
		d.ClientPort = "1022"
	}
	if d.Listener == "" {
		d.Listener = option.DefaultListener
	}
	if d.Fragment == "" && !d.EmptyFragment {
		f, err := RandomDigits(fragmentLength)
		if err != nil {
			return nil, fmt.Errorf("failed to generate random fragment: %w", err)
		}
		d.Fragment = f
	}

	store := NewStore()
	s := &Session{
		store:      store,
		RelayURL:   NewParam(store, "relay_url", d.RelayURL),
		RelayURLs:  append([]string(nil), d.RelayURLs...),
		Fragment:   NewParam(store, "fragment", d.Fragment),
		ServerPort: NewParam(store, "server_port", d.ServerPort),
		ClientPort: NewParam(store, "client_port", d.ClientPort),
		Listener:   NewParam(store, "listener", d.Listener),
	}
	s.Path1 = NewDerived(store, "path1", s.Fragment, func(f string) string { return Path1Prefix + f })
	s.Path2 = NewDerived(store, "path2", s.Fragment, func(f string) string { return Path2Prefix + f })
	keyword := d.Keyword
	if keyword == "" {
		keyword = fragment.Parse(d.Hash)
	}
	s.Search = newSearchState(store, keyword)
	return s, nil
}

// NextRelayURL moves RelayURL to the relay after the current one in
// RelayURLs, wrapping around. A URL not in the list moves to the first.
func (s *Session) NextRelayURL() string {
	next := s.RelayURLs[0]
	for i, u := range s.RelayURLs {
		if u == s.RelayURL.Get() {
			next = s.RelayURLs[(i+1)%len(s.RelayURLs)]
			break
		}
	}
	s.RelayURL.Set(next)
	return next
}

// Store returns the store recipe-local parameters register on
func (s *Session) Store() *Store {
	return s.store
}

// OnChange registers a listener for every parameter write in this session
func (s *Session) OnChange(fn func(name string)) {
	s.store.OnChange(fn)
}

// SearchState is the search keyword, mirrored into a URL fragment
type SearchState struct {
	keyword *Param[string]
}

func newSearchState(store *Store, keyword string) *SearchState {
	return &SearchState{keyword: NewParam(store, "keyword", keyword)}
}

// Keyword returns the current search keyword
func (s *SearchState) Keyword() string {
	return s.keyword.Get()
}

// SetKeyword updates the keyword; the fragment follows
func (s *SearchState) SetKeyword(keyword string) {
	s.keyword.Set(keyword)
}

// Fragment returns the URL fragment for the current keyword, "" when empty
func (s *SearchState) Fragment() string {
	return fragment.Format(s.keyword.Get())
}
