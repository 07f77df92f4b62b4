package orchestrator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Error types for different categories of failures
var (
	ErrConfigurationInvalid = errors.New("configuration error")
	ErrRecipeNotFound       = errors.New("recipe not found")
	ErrTemplateInvalid      = errors.New("template error")
	ErrOutputFailed         = errors.New("output error")
	ErrValidationFailed     = errors.New("validation error")
)

// SheetError represents a structured error with actionable guidance
type SheetError struct {
	Type     error
	Message  string
	Guidance string
	Cause    error
}

func (e *SheetError) Error() string {
	if e.Guidance != "" {
		return fmt.Sprintf("%s: %s\n\nSuggestion: %s", e.Type, e.Message, e.Guidance)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *SheetError) Unwrap() error {
	return e.Cause
}

// Is matches the error category so errors.Is(err, ErrOutputFailed) works
func (e *SheetError) Is(target error) bool {
	return e.Type == target
}

// Error constructors with actionable guidance

func NewConfigurationError(message string, cause error) *SheetError {
	guidance := "Check your configuration file syntax and values. " +
		"Use 'pipesheet --config /path/to/config.toml' to specify a different config file."

	causeText := ""
	if cause != nil {
		causeText = cause.Error()
	}
	if strings.Contains(causeText, "permission") {
		guidance = "Check file permissions for your configuration directory. " +
			"Ensure you have read access to ~/.config/pipesheet/"
	} else if strings.Contains(causeText, "listener") {
		guidance = "listener must be one of 'nc -lp' (GNU netcat), 'nc -l' (BSD netcat) or 'socat'."
	} else if strings.Contains(causeText, "target") {
		guidance = "target must be 'stdout', 'clipboard' or 'file:/path/to/file'."
	}

	return &SheetError{
		Type:     ErrConfigurationInvalid,
		Message:  message,
		Guidance: guidance,
		Cause:    cause,
	}
}

func NewRecipeNotFoundError(id string, available []string) *SheetError {
	return &SheetError{
		Type:     ErrRecipeNotFound,
		Message:  fmt.Sprintf("no recipe with id '%s'", id),
		Guidance: fmt.Sprintf("Available recipes: %s. Run 'pipesheet list' to see titles.", strings.Join(available, ", ")),
	}
}

func NewTemplateError(templateName string, cause error) *SheetError {
	message := fmt.Sprintf("failed to render sheet with '%s'", templateName)
	guidance := "Use --format text, --format markdown, or a path to a Go text/template file."

	if strings.Contains(cause.Error(), "not found") {
		guidance = fmt.Sprintf("Format '%s' is neither a built-in format nor a file. "+
			"Built-in formats are 'text' and 'markdown'.", templateName)
	} else if strings.Contains(cause.Error(), "parse") || strings.Contains(cause.Error(), "syntax") {
		guidance = fmt.Sprintf("Template '%s' has syntax errors. Check for proper {{ }} delimiters "+
			"and that fields like .Recipes and .Commands are spelled correctly.", templateName)
	}

	return &SheetError{
		Type:     ErrTemplateInvalid,
		Message:  message,
		Guidance: guidance,
		Cause:    cause,
	}
}

func NewOutputError(target string, cause error) *SheetError {
	message := fmt.Sprintf("failed to output to target '%s'", target)
	guidance := "Check that the output target is valid and accessible."

	if target == "clipboard" {
		guidance = "Clipboard access failed. Ensure xclip, xsel or wl-clipboard is installed " +
			"or try using --target stdout instead."
	} else if strings.HasPrefix(target, "file:") {
		filePath := strings.TrimPrefix(target, "file:")
		guidance = fmt.Sprintf("Failed to write to file '%s'. Check that the directory exists "+
			"and you have write permissions.", filePath)
	}

	return &SheetError{
		Type:     ErrOutputFailed,
		Message:  message,
		Guidance: guidance,
		Cause:    cause,
	}
}

func NewValidationError(field string, value interface{}, reason string) *SheetError {
	message := fmt.Sprintf("validation failed for %s: %v (%s)", field, value, reason)
	guidance := "Check the input value and ensure it meets the required format."

	switch field {
	case "target":
		guidance = "Target must be 'clipboard', 'stdout', or 'file:/path/to/file'. " +
			"Example: --target file:/tmp/sheet.txt"
	case "listener":
		guidance = "Listener must be 'nc -lp', 'nc -l' or 'socat'. Quote it: --listener 'nc -l'"
	case "config_path":
		guidance = "Configuration file path must be valid and accessible. " +
			"Ensure the file exists and you have read permissions."
	case "command":
		guidance = "Pick one of the command labels shown by 'pipesheet show <recipe>', e.g. Sender or Receiver."
	case "link":
		guidance = "Pass a share link such as https://host/#?q=folder or a bare fragment '#?q=folder'."
	}

	return &SheetError{
		Type:     ErrValidationFailed,
		Message:  message,
		Guidance: guidance,
		Cause:    nil,
	}
}

// Recovery strategies

// RecoverFromError attempts to recover from common errors with fallback strategies
func RecoverFromError(err error) error {
	if err == nil {
		return nil
	}

	var sheetErr *SheetError
	if !errors.As(err, &sheetErr) {
		// Wrap unknown errors
		return &SheetError{
			Type:     errors.New("unknown error"),
			Message:  err.Error(),
			Guidance: "An unexpected error occurred. Please check your inputs and try again.",
			Cause:    err,
		}
	}

	// Apply recovery strategies based on error type
	switch sheetErr.Type {
	case ErrConfigurationInvalid:
		return recoverFromConfigError(sheetErr)
	case ErrOutputFailed:
		return recoverFromOutputError(sheetErr)
	default:
		return sheetErr
	}
}

func recoverFromConfigError(err *SheetError) error {
	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		return err // Can't recover
	}

	configDir := filepath.Join(homeDir, ".config", "pipesheet")
	if _, statErr := os.Stat(configDir); os.IsNotExist(statErr) {
		err.Guidance += fmt.Sprintf("\n\nNo config directory found. Create '%s/config.toml' to persist defaults.", configDir)
	}

	return err
}

func recoverFromOutputError(err *SheetError) error {
	// For clipboard errors, suggest stdout fallback
	if strings.Contains(err.Message, "clipboard") {
		err.Guidance += "\n\nTry using --target stdout as a fallback."
	}
	return err
}

// IsRecoverableError checks if an error can be recovered from
func IsRecoverableError(err error) bool {
	var sheetErr *SheetError
	if !errors.As(err, &sheetErr) {
		return false
	}

	switch sheetErr.Type {
	case ErrOutputFailed:
		return strings.Contains(sheetErr.Message, "clipboard") // Can fallback to stdout
	default:
		return false
	}
}
