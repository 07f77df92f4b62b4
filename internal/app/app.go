package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
	"pipesheet-cli/internal/fragment"
	"pipesheet-cli/internal/interactive"
	"pipesheet-cli/internal/interfaces"
	"pipesheet-cli/internal/logging"
	"pipesheet-cli/internal/orchestrator"
	"pipesheet-cli/internal/tui"
	"pipesheet-cli/pkg/models"
)

// Run renders the (filtered) command sheet to the configured target
func Run(request *models.SheetRequest, logger *zap.Logger) error {
	orch := orchestrator.New(logger)

	ws, err := orch.Prepare(request)
	if err != nil {
		return err
	}

	sheet, err := orch.GenerateSheet(ws)
	if err != nil {
		return fmt.Errorf("sheet generation failed: %w", err)
	}

	if err := orch.Output(sheet, ws.Config.Target); err != nil {
		return fmt.Errorf("output failed: %w", err)
	}

	return nil
}

// ListRecipes prints the ranked recipe list as a table, JSON or YAML
func ListRecipes(request *models.SheetRequest, logger *zap.Logger) error {
	format, err := orchestrator.ParseExportFormat(request.ExportFormat)
	if err != nil {
		return orchestrator.NewValidationError("output", request.ExportFormat, err.Error())
	}

	orch := orchestrator.New(logger)
	ws, err := orch.Prepare(request)
	if err != nil {
		return err
	}

	data, err := orch.SheetData(ws)
	if err != nil {
		return err
	}
	if format == orchestrator.ExportTable && len(data.Recipes) == 0 {
		fmt.Printf("No recipe matches %q\n", data.Keyword)
		return nil
	}

	out, err := orchestrator.Export(data, format)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	fmt.Println(out)
	return nil
}

// ShowRecipe renders one recipe, or only the command labelled request.CommandLabel
func ShowRecipe(request *models.SheetRequest, logger *zap.Logger) error {
	orch := orchestrator.New(logger)
	ws, err := orch.Prepare(request)
	if err != nil {
		return err
	}

	r, err := orch.FindRecipe(ws, request.RecipeID)
	if err != nil {
		return err
	}

	var content string
	if request.CommandLabel != "" {
		c, err := orch.SelectCommand(r, request.CommandLabel)
		if err != nil {
			return err
		}
		content = c.Text
	} else {
		data := interfaces.SheetData{
			RelayURL: ws.Session.RelayURL.Get(),
			Recipes:  []interfaces.RecipeView{orchestrator.RecipeView(r, 0)},
		}
		if content, err = orch.RenderSheet(data, ws.Config.Format); err != nil {
			return err
		}
	}

	return orch.Output(content, ws.Config.Target)
}

// Pick walks the user through choosing one command and outputs it
func Pick(request *models.SheetRequest, logger *zap.Logger) error {
	orch := orchestrator.New(logger)
	ws, err := orch.Prepare(request)
	if err != nil {
		return err
	}

	prompter := interactive.NewPrompter(request.NumberSelect)
	content, err := prompter.Pick(ws.Session, ws.Catalog)
	if err != nil {
		return fmt.Errorf("failed to pick a command: %w", err)
	}

	return orch.Output(content, ws.Config.Target)
}

// Browse opens the full-screen sheet browser
func Browse(request *models.SheetRequest, logger *zap.Logger) error {
	// The terminal belongs to the UI until it exits
	orch := orchestrator.New(nil)
	ws, err := orch.Prepare(request)
	if err != nil {
		return err
	}

	opts := tui.Options{CopyDelay: time.Duration(ws.Config.CopyIndicatorMS) * time.Millisecond}
	if err := tui.Run(ws.Session, ws.Catalog, opts); err != nil {
		return fmt.Errorf("browse failed: %w", err)
	}

	logging.OrNop(logger).Debug("browse closed", zap.String("keyword", ws.Session.Search.Keyword()))
	return nil
}

// Link prints the share link for the keyword, optionally as a terminal QR code
func Link(request *models.SheetRequest, logger *zap.Logger) error {
	orch := orchestrator.New(logger)
	ws, err := orch.Prepare(request)
	if err != nil {
		return err
	}

	link, err := ShareLink(ws.Config.ShareURL, ws.Session.Search.Keyword())
	if err != nil {
		return orchestrator.NewConfigurationError("invalid share_url", err)
	}

	content := link
	if request.QR {
		code, err := RenderQR(link)
		if err != nil {
			return fmt.Errorf("failed to render QR code: %w", err)
		}
		content = code + "\n" + link
	}

	return orch.Output(content, ws.Config.Target)
}

// ShareLink returns base with the keyword fragment, or just "#<fragment>" without a base
func ShareLink(base, keyword string) (string, error) {
	if base == "" {
		return "#" + fragment.Format(keyword), nil
	}
	return fragment.ShareLink(base, keyword)
}

// RenderQR draws content as a QR code of half-block characters
func RenderQR(content string) (string, error) {
	q, err := qrcode.New(content, qrcode.Low)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(q.ToSmallString(false), "\n"), nil
}
