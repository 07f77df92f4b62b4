package orchestrator

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"
	"pipesheet-cli/internal/interfaces"
)

// ExportFormat is an output format for the recipe listing
type ExportFormat string

const (
	ExportTable ExportFormat = "table"
	ExportJSON  ExportFormat = "json"
	ExportYAML  ExportFormat = "yaml"
)

// SupportedExportFormats returns the accepted -o values
func SupportedExportFormats() []string {
	return []string{string(ExportTable), string(ExportJSON), string(ExportYAML)}
}

// ParseExportFormat parses a string into an ExportFormat
func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(s) {
	case "", "table", "console":
		return ExportTable, nil
	case "json":
		return ExportJSON, nil
	case "yaml", "yml":
		return ExportYAML, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s (must be one of: %s)", s, strings.Join(SupportedExportFormats(), ", "))
	}
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// Export renders the sheet data in the given format
func Export(data interfaces.SheetData, format ExportFormat) (string, error) {
	switch format {
	case ExportJSON:
		out, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return string(out), nil
	case ExportYAML:
		out, err := yaml.Marshal(data)
		if err != nil {
			return "", fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return strings.TrimRight(string(out), "\n"), nil
	case ExportTable:
		return exportTable(data), nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", format)
	}
}

func exportTable(data interfaces.SheetData) string {
	rows := make([][]string, 0, len(data.Recipes))
	for _, r := range data.Recipes {
		score := "-"
		if data.Keyword != "" {
			score = strconv.Itoa(r.Score)
		}
		rows = append(rows, []string{r.ID, r.Title, strings.Join(r.SearchTags, ", "), score})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "TITLE", "TAGS", "SCORE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.String()
}
