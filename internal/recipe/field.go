package recipe

import (
	"strconv"

	"pipesheet-cli/internal/option"
	"pipesheet-cli/internal/session"
)

// FieldKind tells a presentation layer which control edits a field
type FieldKind string

const (
	KindText   FieldKind = "text"
	KindNumber FieldKind = "number"
	KindChoice FieldKind = "choice"
	KindToggle FieldKind = "toggle"
	KindSecret FieldKind = "secret"
)

// Field is one editable parameter of a recipe. Set validates choice and toggle
// values; text and number fields take any string, including "".
type Field struct {
	Name    string
	Label   string
	Kind    FieldKind
	Choices []option.Choice
	// Suggestions are offered for a text field; any other text is accepted
	Suggestions []string
	// Shared fields are owned by the session and seen by every recipe
	Shared bool
	Get    func() string
	Set    func(string) error
}

func textField(name, label string, shared bool, p interface {
	Get() string
	Set(string)
}) Field {
	return Field{
		Name:   name,
		Label:  label,
		Kind:   KindText,
		Shared: shared,
		Get:    p.Get,
		Set: func(v string) error {
			p.Set(v)
			return nil
		},
	}
}

func numberField(name, label string, p *session.Param[string]) Field {
	f := textField(name, label, true, p)
	f.Kind = KindNumber
	return f
}

func secretField(name, label string, p *session.Param[string]) Field {
	f := textField(name, label, false, p)
	f.Kind = KindSecret
	return f
}

func choiceField[T ~string](name, label string, shared bool, choices []option.Choice, p *session.Param[T], parse func(string) (T, error)) Field {
	return Field{
		Name:    name,
		Label:   label,
		Kind:    KindChoice,
		Choices: choices,
		Shared:  shared,
		Get:     func() string { return string(p.Get()) },
		Set: func(v string) error {
			parsed, err := parse(v)
			if err != nil {
				return err
			}
			p.Set(parsed)
			return nil
		},
	}
}

func toggleField(name, label string, p *session.Param[bool]) Field {
	return Field{
		Name:  name,
		Label: label,
		Kind:  KindToggle,
		Get:   func() string { return strconv.FormatBool(p.Get()) },
		Set: func(v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return err
			}
			p.Set(b)
			return nil
		},
	}
}

// listenerField is shared by both tunnel recipes
func listenerField(s *session.Session) Field {
	return choiceField("listener", "client host serving", true, option.Listeners(), s.Listener, option.ParseListener)
}

// relayURLField suggests the session's relay list
func relayURLField(s *session.Session) Field {
	f := textField("relay_url", "relay server", true, s.RelayURL)
	f.Suggestions = s.RelayURLs
	return f
}

func relayFields(s *session.Session) []Field {
	return []Field{
		relayURLField(s),
		textField("fragment", "random fragment", true, s.Fragment),
	}
}

func tunnelFields(s *session.Session) []Field {
	return []Field{
		relayURLField(s),
		numberField("server_port", "server host port", s.ServerPort),
		numberField("client_port", "client host port", s.ClientPort),
		textField("path1", "path1", true, s.Path1),
		textField("path2", "path2", true, s.Path2),
		listenerField(s),
	}
}
