package interactive

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/AlecAivazis/survey/v2"
	"golang.org/x/term"
	"pipesheet-cli/internal/recipe"
	"pipesheet-cli/internal/search"
	"pipesheet-cli/internal/session"
)

const (
	// AllCommands is the command choice that selects every command of a recipe
	AllCommands = "All commands"
	// OtherValue is the suggestion choice that falls through to free text
	OtherValue = "Other..."
)

// Prompter walks the user from a keyword to a single ready-to-copy command
type Prompter struct {
	numberSelect bool
	stdin        io.Reader
	reader       *bufio.Reader
	stdout       io.Writer
}

// NewPrompter creates a new interactive prompter
func NewPrompter(numberSelect bool) *Prompter {
	return &Prompter{
		numberSelect: numberSelect,
		stdin:        os.Stdin,
		reader:       bufio.NewReader(os.Stdin),
		stdout:       os.Stdout,
	}
}

// Pick asks for a keyword (unless the session has one), a recipe, optional
// parameter edits and a command. It returns the chosen command text.
func (p *Prompter) Pick(sess *session.Session, catalog recipe.Catalog) (string, error) {
	if sess.Search.Keyword() == "" {
		if err := p.promptForKeyword(sess.Search); err != nil {
			return "", fmt.Errorf("failed to collect keyword: %w", err)
		}
	}

	results := search.Rank(catalog, sess.Search.Keyword())
	if len(results) == 0 {
		return "", fmt.Errorf("no recipe matches %q", sess.Search.Keyword())
	}

	r, err := p.selectRecipe(results)
	if err != nil {
		return "", fmt.Errorf("failed to select recipe: %w", err)
	}

	edit, err := p.selectYesNo("Edit parameters?", "Relay URL, ports and the recipe's own options", false)
	if err != nil {
		return "", err
	}
	if edit {
		if err := p.EditFields(r.Fields()); err != nil {
			return "", fmt.Errorf("failed to edit parameters: %w", err)
		}
	}

	return p.selectCommand(r.Render())
}

// promptForKeyword asks for an optional search keyword
func (p *Prompter) promptForKeyword(state *session.SearchState) error {
	prompt := &survey.Input{
		Message: "Search (empty for all):",
		Help:    "Space-separated words matched against titles and tags, e.g. 'folder gzip' or 'tunnel'",
	}

	var keyword string
	if err := survey.AskOne(prompt, &keyword); err != nil {
		return err
	}

	state.SetKeyword(strings.TrimSpace(keyword))
	return nil
}

// recipeOptions labels ranked results for selection
func recipeOptions(results []search.Result[recipe.Recipe]) []string {
	options := make([]string, len(results))
	for i, r := range results {
		options[i] = fmt.Sprintf("%s (%s)", r.Entry.Title(), r.Entry.ID())
	}
	return options
}

func (p *Prompter) selectRecipe(results []search.Result[recipe.Recipe]) (recipe.Recipe, error) {
	options := recipeOptions(results)
	index, err := p.selectIndex(options, "Select a recipe:", "Recipes are ordered by relevance to your search", 0)
	if err != nil {
		return nil, err
	}
	return results[index].Entry, nil
}

// EditFields prompts for every field, prefilled with its current value
func (p *Prompter) EditFields(fields []recipe.Field) error {
	for _, f := range fields {
		if err := p.editField(f); err != nil {
			return fmt.Errorf("%s: %w", f.Name, err)
		}
	}
	return nil
}

func (p *Prompter) editField(f recipe.Field) error {
	var answer string
	switch f.Kind {
	case recipe.KindToggle:
		current, _ := strconv.ParseBool(f.Get())
		on, err := p.selectYesNo(f.Label, "", current)
		if err != nil {
			return err
		}
		answer = strconv.FormatBool(on)
	case recipe.KindChoice:
		labels := make([]string, len(f.Choices))
		current := 0
		for i, c := range f.Choices {
			labels[i] = c.Label
			if c.Value == f.Get() {
				current = i
			}
		}
		index, err := p.selectIndex(labels, f.Label+":", "", current)
		if err != nil {
			return err
		}
		answer = f.Choices[index].Value
	case recipe.KindText:
		value, err := p.suggestOrAsk(f)
		if err != nil {
			return err
		}
		answer = value
	default:
		if err := survey.AskOne(fieldPrompt(f), &answer); err != nil {
			return err
		}
		// An empty secret keeps the current value
		if f.Kind == recipe.KindSecret && answer == "" {
			return nil
		}
	}
	return f.Set(answer)
}

// suggestOrAsk offers a text field's suggestions, then free text for OtherValue
func (p *Prompter) suggestOrAsk(f recipe.Field) (string, error) {
	var answer string
	if len(f.Suggestions) > 0 {
		options := append(append([]string(nil), f.Suggestions...), OtherValue)
		current := len(f.Suggestions)
		for i, s := range f.Suggestions {
			if s == f.Get() {
				current = i
			}
		}
		index, err := p.selectIndex(options, f.Label+":", "Choose "+OtherValue+" to type a value", current)
		if err != nil {
			return "", err
		}
		if index < len(f.Suggestions) {
			return f.Suggestions[index], nil
		}
		if p.numberSelect {
			return p.readLine(f.Label, f.Get())
		}
	}
	if err := survey.AskOne(fieldPrompt(f), &answer); err != nil {
		return "", err
	}
	return answer, nil
}

// readLine reads free text in number-select mode; Enter keeps current
func (p *Prompter) readLine(label, current string) (string, error) {
	fmt.Fprintf(p.stdout, "%s [%s]: ", label, current)
	input, err := p.reader.ReadString('\n')
	if err != nil && input == "" {
		return "", err
	}
	input = strings.TrimSpace(input)
	if input == "" {
		return current, nil
	}
	return input, nil
}

// fieldPrompt builds the free-text prompt of a text, number or secret field
func fieldPrompt(f recipe.Field) survey.Prompt {
	switch f.Kind {
	case recipe.KindSecret:
		return &survey.Password{
			Message: f.Label + ":",
			Help:    "Leave empty to keep the generated value",
		}
	case recipe.KindNumber:
		return &survey.Input{
			Message: f.Label + ":",
			Default: f.Get(),
			Help:    "Port number; any text is accepted and rendered as typed",
		}
	default:
		return &survey.Input{
			Message: f.Label + ":",
			Default: f.Get(),
		}
	}
}

// commandOptions lists command labels, plus AllCommands when there is more than one
func commandOptions(commands []recipe.Command) []string {
	options := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		options = append(options, c.Label)
	}
	if len(commands) > 1 {
		options = append(options, AllCommands)
	}
	return options
}

// joinCommands renders commands as "# Label" headed blocks
func joinCommands(commands []recipe.Command) string {
	blocks := make([]string, len(commands))
	for i, c := range commands {
		blocks[i] = fmt.Sprintf("# %s\n%s", c.Label, c.Text)
	}
	return strings.Join(blocks, "\n\n")
}

func (p *Prompter) selectCommand(commands []recipe.Command) (string, error) {
	options := commandOptions(commands)
	index, err := p.selectIndex(options, "Select a command:", "Run each command on the host it is labelled for", 0)
	if err != nil {
		return "", err
	}
	if index == len(commands) {
		return joinCommands(commands), nil
	}
	return commands[index].Text, nil
}

// selectIndex handles selection with optional number key support
func (p *Prompter) selectIndex(options []string, message, help string, defaultIndex int) (int, error) {
	if len(options) == 0 {
		return 0, fmt.Errorf("nothing to select")
	}

	if p.numberSelect {
		return p.selectWithNumbers(options, message, help, defaultIndex)
	}

	prompt := &survey.Select{
		Message: message,
		Options: options,
		Default: options[defaultIndex],
		Help:    help,
	}

	var index int
	if err := survey.AskOne(prompt, &index); err != nil {
		return 0, err
	}

	return index, nil
}

// selectWithNumbers displays numbered options and allows instant selection by number key
// Enter selects defaultIndex.
func (p *Prompter) selectWithNumbers(options []string, message, help string, defaultIndex int) (int, error) {
	fmt.Fprintf(p.stdout, "\n%s\n", message)
	if help != "" {
		fmt.Fprintf(p.stdout, "  %s (Press number key for instant selection)\n", help)
	}
	fmt.Fprintln(p.stdout)

	for i, opt := range options {
		fmt.Fprintf(p.stdout, "  %d. %s\n", i+1, opt)
	}
	fmt.Fprintln(p.stdout)

	// Check if we're in a terminal that supports raw mode
	if p.stdin != os.Stdin || !term.IsTerminal(int(syscall.Stdin)) {
		return p.fallbackNumberSelection(options, defaultIndex)
	}

	oldState, err := term.MakeRaw(int(syscall.Stdin))
	if err != nil {
		return p.fallbackNumberSelection(options, defaultIndex)
	}
	defer term.Restore(int(syscall.Stdin), oldState)

	fmt.Fprint(p.stdout, "Select option: ")

	buffer := make([]byte, 1)
	for {
		if _, err := os.Stdin.Read(buffer); err != nil {
			return 0, err
		}

		char := buffer[0]

		// Handle number keys (1-9)
		if char >= '1' && char <= '9' {
			index := int(char - '1')
			if index < len(options) {
				fmt.Fprintf(p.stdout, "%c\r\n", char)
				return index, nil
			}
		}

		if char == '\r' || char == '\n' {
			fmt.Fprint(p.stdout, "\r\n")
			return defaultIndex, nil
		}

		// Handle Escape or Ctrl+C
		if char == 27 || char == 3 {
			fmt.Fprint(p.stdout, "\r\n")
			return 0, fmt.Errorf("selection cancelled")
		}
	}
}

// fallbackNumberSelection provides a fallback when raw terminal mode is not available
func (p *Prompter) fallbackNumberSelection(options []string, defaultIndex int) (int, error) {
	fmt.Fprintf(p.stdout, "Enter number (1-%d) or press Enter for %q: ", len(options), options[defaultIndex])

	input, err := p.reader.ReadString('\n')
	if err != nil && input == "" {
		return 0, err
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return defaultIndex, nil
	}

	selected, err := strconv.Atoi(input)
	if err != nil {
		return 0, fmt.Errorf("invalid input: please enter a number between 1 and %d", len(options))
	}

	// Validate range (convert from 1-based to 0-based)
	if selected < 1 || selected > len(options) {
		return 0, fmt.Errorf("invalid selection: please enter a number between 1 and %d", len(options))
	}

	return selected - 1, nil
}

// selectYesNo handles yes/no selection with optional number key support
func (p *Prompter) selectYesNo(message, help string, defaultValue bool) (bool, error) {
	if p.numberSelect {
		yes, no, defaultIndex := "Yes", "No", 1
		if defaultValue {
			yes += " (default)"
			defaultIndex = 0
		} else {
			no += " (default)"
		}
		index, err := p.selectWithNumbers([]string{yes, no}, message, help, defaultIndex)
		if err != nil {
			return false, err
		}
		return index == 0, nil
	}

	prompt := &survey.Confirm{
		Message: message,
		Help:    help,
		Default: defaultValue,
	}

	var result bool
	if err := survey.AskOne(prompt, &result); err != nil {
		return false, err
	}

	return result, nil
}
