package orchestrator

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"pipesheet-cli/internal/config"
	"pipesheet-cli/internal/fragment"
	"pipesheet-cli/internal/interfaces"
	"pipesheet-cli/internal/logging"
	"pipesheet-cli/internal/option"
	"pipesheet-cli/internal/recipe"
	"pipesheet-cli/internal/search"
	"pipesheet-cli/internal/session"
	"pipesheet-cli/internal/template"
	"pipesheet-cli/pkg/models"
)

// Orchestrator coordinates all components to generate command sheets
type Orchestrator struct {
	configManager     interfaces.ConfigManager
	templateProcessor interfaces.TemplateProcessor
	outputHandler     interfaces.OutputHandler
	logger            *zap.Logger
}

// Workspace is a loaded configuration with the session and catalog built from it
type Workspace struct {
	Config  *interfaces.Config
	Session *session.Session
	Catalog recipe.Catalog
}

// New creates a new orchestrator with all required components
func New(logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		configManager:     config.NewManager(),
		templateProcessor: template.NewProcessor(),
		outputHandler:     NewOutputHandler(),
		logger:            logging.OrNop(logger),
	}
}

// Prepare validates the request, loads configuration and builds the session
func (o *Orchestrator) Prepare(request *models.SheetRequest) (*Workspace, error) {
	if err := o.validateRequest(request); err != nil {
		return nil, RecoverFromError(err)
	}

	cfg, err := o.LoadConfiguration(request)
	if err != nil {
		return nil, RecoverFromError(NewConfigurationError("failed to load configuration", err))
	}

	keyword := request.Keyword
	if keyword == "" && request.FromLink != "" {
		keyword, err = fragment.KeywordFromLink(request.FromLink)
		if err != nil {
			return nil, RecoverFromError(NewValidationError("link", request.FromLink, err.Error()))
		}
	}

	sess, err := session.New(session.Defaults{
		RelayURL:      cfg.RelayURL,
		RelayURLs:     cfg.RelayURLs,
		Fragment:      cfg.Fragment,
		EmptyFragment: cfg.EmptyFragment,
		ServerPort:    cfg.ServerPort,
		ClientPort:    cfg.ClientPort,
		// Validate already checked the listener
		Listener: option.Listener(cfg.Listener),
		Keyword:  keyword,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	sess.OnChange(func(name string) {
		o.logger.Debug("parameter changed", zap.String("param", name))
	})

	catalog, err := recipe.NewCatalog(sess)
	if err != nil {
		return nil, fmt.Errorf("failed to build recipe catalog: %w", err)
	}

	o.logger.Debug("session ready",
		zap.String("relay_url", sess.RelayURL.Get()),
		zap.String("fragment", sess.Fragment.Get()),
		zap.String("keyword", sess.Search.Keyword()),
	)

	return &Workspace{Config: cfg, Session: sess, Catalog: catalog}, nil
}

// LoadConfiguration loads and resolves configuration with precedence (flags > env > file > defaults)
func (o *Orchestrator) LoadConfiguration(request *models.SheetRequest) (*interfaces.Config, error) {
	// Load configuration from file first
	_, err := o.configManager.Load(request.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	o.configManager.SetFlag("relay_url", request.RelayURL)
	o.configManager.SetFlag("fragment", request.Fragment)
	o.configManager.SetFlag("empty_fragment", request.EmptyFragment)
	o.configManager.SetFlag("server_port", request.ServerPort)
	o.configManager.SetFlag("client_port", request.ClientPort)
	o.configManager.SetFlag("listener", request.Listener)
	o.configManager.SetFlag("format", request.Format)
	o.configManager.SetFlag("target", request.Target)

	// Apply precedence resolution
	cfg, err := o.configManager.Resolve()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve configuration: %w", err)
	}

	// Validate configuration
	if err := o.configManager.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// SheetData ranks the catalog by the session keyword and renders every shown recipe
func (o *Orchestrator) SheetData(ws *Workspace) (interfaces.SheetData, error) {
	keyword := ws.Session.Search.Keyword()
	data := interfaces.SheetData{
		Keyword:  keyword,
		RelayURL: ws.Session.RelayURL.Get(),
		Fragment: ws.Session.Search.Fragment(),
	}

	if ws.Config.ShareURL != "" && keyword != "" {
		link, err := fragment.ShareLink(ws.Config.ShareURL, keyword)
		if err != nil {
			return data, NewConfigurationError("invalid share_url", err)
		}
		data.ShareLink = link
	}

	for _, result := range search.Rank(ws.Catalog, keyword) {
		data.Recipes = append(data.Recipes, RecipeView(result.Entry, result.Score))
	}
	return data, nil
}

// RecipeView renders one recipe into its presentation form
func RecipeView(r recipe.Recipe, score int) interfaces.RecipeView {
	view := interfaces.RecipeView{
		ID:         r.ID(),
		Title:      r.Title(),
		SearchTags: r.SearchTags(),
		Score:      score,
	}
	for _, c := range r.Render() {
		view.Commands = append(view.Commands, interfaces.CommandView{Label: c.Label, Command: c.Text})
	}
	return view
}

// GenerateSheet renders the filtered sheet using the configured format
func (o *Orchestrator) GenerateSheet(ws *Workspace) (string, error) {
	data, err := o.SheetData(ws)
	if err != nil {
		return "", RecoverFromError(err)
	}
	return o.RenderSheet(data, ws.Config.Format)
}

// RenderSheet executes the named format or template file over data
func (o *Orchestrator) RenderSheet(data interfaces.SheetData, format string) (string, error) {
	tmpl, err := o.templateProcessor.LoadTemplate(format)
	if err != nil {
		return "", RecoverFromError(NewTemplateError(format, err))
	}
	out, err := o.templateProcessor.Execute(tmpl, data)
	if err != nil {
		return "", RecoverFromError(NewTemplateError(format, err))
	}
	return strings.TrimRight(out, "\n"), nil
}

// FindRecipe looks a recipe up by id
func (o *Orchestrator) FindRecipe(ws *Workspace, id string) (recipe.Recipe, error) {
	r, ok := ws.Catalog.Get(id)
	if !ok {
		return nil, RecoverFromError(NewRecipeNotFoundError(id, ws.Catalog.IDs()))
	}
	return r, nil
}

// SelectCommand returns the command of r whose label matches (case-insensitive)
func (o *Orchestrator) SelectCommand(r recipe.Recipe, label string) (recipe.Command, error) {
	commands := r.Render()
	labels := make([]string, len(commands))
	for i, c := range commands {
		if strings.EqualFold(c.Label, label) {
			return c, nil
		}
		labels[i] = c.Label
	}
	return recipe.Command{}, RecoverFromError(NewValidationError("command", label,
		fmt.Sprintf("recipe %s has: %s", r.ID(), strings.Join(labels, ", "))))
}

// Output writes content to target, falling back to stdout when the clipboard is unavailable
func (o *Orchestrator) Output(content, target string) error {
	if target == "" {
		target = "stdout"
	}

	switch {
	case target == "clipboard":
		if err := o.outputHandler.WriteToClipboard(content); err != nil {
			outputErr := NewOutputError(target, err)
			// Try to recover by falling back to stdout
			if IsRecoverableError(outputErr) {
				o.logger.Warn("clipboard unavailable, falling back to stdout", zap.Error(err))
				return o.outputHandler.WriteToStdout(content)
			}
			return RecoverFromError(outputErr)
		}
		o.logger.Debug("copied to clipboard", zap.Int("bytes", len(content)))
		fmt.Fprintln(os.Stderr, "Copied to clipboard")

	case target == "stdout":
		if err := o.outputHandler.WriteToStdout(content); err != nil {
			return RecoverFromError(NewOutputError(target, err))
		}

	case strings.HasPrefix(target, "file:"):
		filePath := strings.TrimPrefix(target, "file:")
		if err := o.outputHandler.WriteToFile(content, filePath); err != nil {
			return RecoverFromError(NewOutputError(target, err))
		}
		fmt.Fprintf(os.Stderr, "Written to %s\n", filePath)

	default:
		return RecoverFromError(NewValidationError("target", target, "unsupported output target"))
	}

	return nil
}

// validateRequest validates the sheet request
func (o *Orchestrator) validateRequest(request *models.SheetRequest) error {
	if request == nil {
		return NewValidationError("request", nil, "request cannot be nil")
	}

	// Validate target format if specified
	if request.Target != "" {
		if request.Target != "clipboard" && request.Target != "stdout" && !strings.HasPrefix(request.Target, "file:") {
			return NewValidationError("target", request.Target, "must be 'clipboard', 'stdout', or 'file:/path'")
		}
	}

	if request.Listener != "" {
		if _, err := option.ParseListener(request.Listener); err != nil {
			return NewValidationError("listener", request.Listener, err.Error())
		}
	}

	// Validate config path if specified
	if request.ConfigPath != "" {
		if _, err := os.Stat(request.ConfigPath); os.IsNotExist(err) {
			return NewValidationError("config_path", request.ConfigPath, "file does not exist")
		}
	}

	return nil
}
