package template

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"pipesheet-cli/internal/interfaces"
)

// Built-in sheet formats
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
)

var builtinTemplates = map[string]string{
	FormatText: `{{- if .Keyword }}search: {{ .Keyword }}
{{ end -}}
{{- range $i, $r := .Recipes }}
{{- if $i }}
{{ end }}== {{ $r.Title }} ==
{{- range $r.Commands }}
[{{ .Label }}]
{{ indent 2 .Command }}
{{- end }}
{{ end -}}
{{- if not .Recipes }}no recipe matches "{{ .Keyword }}"
{{ end -}}
{{- if .ShareLink }}
share: {{ .ShareLink }}
{{ end -}}`,

	FormatMarkdown: `# Command sheet ({{ .RelayURL }})
{{ if .Keyword }}
Search: ` + "`{{ .Keyword }}`" + `
{{ end -}}
{{- range .Recipes }}
## {{ .Title }}
{{ range .Commands }}
**{{ .Label }}**

{{ mdFence "sh" .Command }}
{{ end -}}
{{- end }}
{{- if .ShareLink }}
[Share this sheet]({{ .ShareLink }})
{{ end -}}`,
}

// Processor implements the TemplateProcessor interface
type Processor struct{}

// NewProcessor creates a new template processor
func NewProcessor() *Processor {
	return &Processor{}
}

// Formats lists the built-in format names
func Formats() []string {
	return []string{FormatText, FormatMarkdown}
}

// LoadTemplate loads a built-in format by name (case-insensitive) or a template file
func (p *Processor) LoadTemplate(nameOrPath string) (*template.Template, error) {
	for name, text := range builtinTemplates {
		if strings.EqualFold(name, nameOrPath) {
			return p.parse(name, text)
		}
	}

	if filepath.Ext(nameOrPath) == "" && !strings.Contains(nameOrPath, string(filepath.Separator)) {
		return nil, fmt.Errorf("template not found: %s (built-in formats: %s)", nameOrPath, strings.Join(Formats(), ", "))
	}

	return p.loadTemplateFromPath(nameOrPath)
}

// loadTemplateFromPath loads a template from a specific file path
func (p *Processor) loadTemplateFromPath(path string) (*template.Template, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file %s: %w", path, err)
	}
	return p.parse(filepath.Base(path), string(content))
}

func (p *Processor) parse(name, text string) (*template.Template, error) {
	tmpl := template.New(name).Funcs(funcMap())
	tmpl, err := tmpl.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	return tmpl, nil
}

// Execute executes a template with the provided data
func (p *Processor) Execute(tmpl *template.Template, data interfaces.SheetData) (string, error) {
	var buf strings.Builder

	err := tmpl.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// funcMap merges sprig with the sheet helpers, the latter taking precedence
func funcMap() template.FuncMap {
	funcs := sprig.TxtFuncMap()

	customFuncs := template.FuncMap{
		"truncate": truncateFunc,
		"mdFence":  mdFenceFunc,
		"indent":   indentFunc,
	}

	for name, fn := range customFuncs {
		funcs[name] = fn
	}

	return funcs
}

// truncateFunc truncates a string to a specified length
func truncateFunc(length int, text string) string {
	if len(text) <= length {
		return text
	}

	if length <= 3 {
		return text[:length]
	}

	return text[:length-3] + "..."
}

// mdFenceFunc wraps content in markdown fenced code blocks with optional language
func mdFenceFunc(language, content string) string {
	if language == "" {
		return fmt.Sprintf("```\n%s\n```", content)
	}
	return fmt.Sprintf("```%s\n%s\n```", language, content)
}

// indentFunc indents each non-blank line of text by the specified number of spaces
func indentFunc(spaces int, text string) string {
	if spaces <= 0 {
		return text
	}

	indent := strings.Repeat(" ", spaces)
	lines := strings.Split(text, "\n")

	for i, line := range lines {
		if strings.TrimSpace(line) != "" { // Don't indent empty lines
			lines[i] = indent + line
		}
	}

	return strings.Join(lines, "\n")
}
