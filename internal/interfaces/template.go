package interfaces

import (
	"text/template"
)

// SheetData contains all variables available to sheet templates
type SheetData struct {
	Keyword   string       `json:"keyword" yaml:"keyword"`
	RelayURL  string       `json:"relay_url" yaml:"relay_url"`
	Fragment  string       `json:"fragment" yaml:"fragment"`
	ShareLink string       `json:"share_link,omitempty" yaml:"share_link,omitempty"`
	Recipes   []RecipeView `json:"recipes" yaml:"recipes"`
}

// RecipeView is one rendered recipe
type RecipeView struct {
	ID         string        `json:"id" yaml:"id"`
	Title      string        `json:"title" yaml:"title"`
	SearchTags []string      `json:"search_tags" yaml:"search_tags"`
	Score      int           `json:"score" yaml:"score"`
	Commands   []CommandView `json:"commands" yaml:"commands"`
}

// CommandView is one labelled command of a recipe
type CommandView struct {
	Label   string `json:"label" yaml:"label"`
	Command string `json:"command" yaml:"command"`
}

// TemplateProcessor handles template loading and execution
type TemplateProcessor interface {
	// LoadTemplate loads a built-in sheet format or a template file
	LoadTemplate(nameOrPath string) (*template.Template, error)

	// Execute executes a template with the provided data
	Execute(tmpl *template.Template, data SheetData) (string, error)
}
