package interfaces

import (
	"testing"
	"text/template"
)

// Test that all interfaces can be implemented (compilation test)
func TestInterfaceCompilation(t *testing.T) {
	config := &Config{
		RelayURL:        "https://ppng.io",
		ServerPort:      "22",
		ClientPort:      "1022",
		Listener:        "nc -lp",
		Format:          "text",
		Target:          "stdout",
		CopyIndicatorMS: 1500,
	}

	data := &SheetData{
		Keyword:  "folder",
		RelayURL: "https://ppng.io",
		Fragment: "?q=folder",
		Recipes: []RecipeView{
			{
				ID:    "zip-dir-transfer",
				Title: "Directory transfer (zip)",
				Commands: []CommandView{
					{Label: "Sender", Command: "zip -r - . | curl -T - https://ppng.io/mydir123.zip"},
				},
			},
		},
	}

	if config == nil || data == nil || len(data.Recipes[0].Commands) != 1 {
		t.Error("Failed to create interface data structures")
	}
}

// Mock implementations to verify interfaces are properly defined
type mockConfigManager struct{}

func (m *mockConfigManager) Load(path string) (*Config, error) {
	return &Config{}, nil
}

func (m *mockConfigManager) SetFlag(key string, value interface{}) {}

func (m *mockConfigManager) Resolve() (*Config, error) {
	return &Config{}, nil
}

func (m *mockConfigManager) Validate(config *Config) error {
	return nil
}

type mockTemplateProcessor struct{}

func (m *mockTemplateProcessor) LoadTemplate(path string) (*template.Template, error) {
	return template.New("test"), nil
}

func (m *mockTemplateProcessor) Execute(tmpl *template.Template, data SheetData) (string, error) {
	return "test output", nil
}

type mockOutputHandler struct{}

func (m *mockOutputHandler) WriteToClipboard(content string) error {
	return nil
}

func (m *mockOutputHandler) WriteToStdout(content string) error {
	return nil
}

func (m *mockOutputHandler) WriteToFile(content string, path string) error {
	return nil
}

// Test that mock implementations satisfy interfaces
func TestInterfaceImplementations(t *testing.T) {
	var _ ConfigManager = &mockConfigManager{}
	var _ TemplateProcessor = &mockTemplateProcessor{}
	var _ OutputHandler = &mockOutputHandler{}
}
