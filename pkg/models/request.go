package models

// SheetRequest represents the main application state for a command sheet request
type SheetRequest struct {
	Keyword    string
	FromLink   string
	ConfigPath string

	// Overrides for configured session defaults; empty means "use config"
	RelayURL   string
	Fragment   string
	ServerPort string
	ClientPort string
	Listener   string
	// EmptyFragment asks for no fragment at all rather than a random one
	EmptyFragment bool

	Format       string
	Target       string
	RecipeID     string
	CommandLabel string
	ExportFormat string
	QR           bool
	NumberSelect bool
}

// NewSheetRequest creates a request with no overrides
func NewSheetRequest() *SheetRequest {
	return &SheetRequest{}
}
