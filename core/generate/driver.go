package generate

import (
	"context"
	"fmt"
	"time"

	"scaffold-wizard/core/manifest"
	"scaffold-wizard/core/reconcile"
	"scaffold-wizard/core/schema"
	"scaffold-wizard/core/wizard"

	"go.uber.org/zap"
)

// Driver renders the output artifacts for a configured entity.
type Driver struct {
	renderer Renderer
	logger   *zap.Logger
}

// NewDriver creates a generation driver.
func NewDriver(renderer Renderer, logger *zap.Logger) *Driver {
	return &Driver{renderer: renderer, logger: logger}
}

// templateData is the rendering context shared by all artifact templates.
type templateData struct {
	Entity      string
	DisplayName string
	Module      string
	Fields      []wizard.FormField
	Grid        []wizard.GridField
	FormColumns int
}

// artifact binds a template to its output path and role.
type artifact struct {
	fileType     FileType
	template     string
	pathPattern  string
	customizable bool
}

// Controllers and views are starting points the operator edits; view
// models, scripts and styles are overwritten on every regeneration.
var artifacts = []artifact{
	{FileTypeController, controllerTemplate, "controllers/%s_controller.go", true},
	{FileTypeViewModel, viewModelTemplate, "viewmodels/%s_viewmodel.go", false},
	{FileTypeView, viewTemplate, "views/%s.html", true},
	{FileTypeScript, scriptTemplate, "static/js/%s.js", false},
	{FileTypeStylesheet, stylesheetTemplate, "static/css/%s.css", false},
}

// Generate renders all artifacts for the configuration. Validation errors
// short-circuit the run; unresolved conflicts degrade Success but the
// artifacts are still rendered so the operator sees partial output
// alongside the unresolved list.
func (d *Driver) Generate(ctx context.Context, cfg *wizard.Config, table *schema.TableSchema, man *manifest.EntityManifest) *GenerationResult {
	start := time.Now()
	result := &GenerationResult{Success: true}

	if violations := cfg.Validate(); len(violations) > 0 {
		result.Success = false
		result.Errors = violations
		result.Duration = time.Since(start)
		return result
	}

	conflicts := reconcile.DetectConflicts(table, man)
	if unresolved := reconcile.Unresolved(conflicts, cfg.Resolutions); len(unresolved) > 0 {
		result.Success = false
		result.UnresolvedConflicts = unresolved
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%d conflict(s) have no resolution; output may not match the database", len(unresolved)))
	}

	// EntityID is the identifier-safe name; the display name only shows up
	// in rendered text.
	data := templateData{
		Entity:      cfg.EntityID,
		DisplayName: man.DisplayName,
		Module:      cfg.Module,
		Fields:      cfg.FormFields,
		Grid:        cfg.GridLayout.Fields,
		FormColumns: cfg.FormLayout.Columns,
	}
	if data.DisplayName == "" {
		data.DisplayName = cfg.EntityID
	}
	if data.Module == "" {
		data.Module = "app"
	}
	if data.FormColumns <= 0 {
		data.FormColumns = 1
	}

	for _, a := range artifacts {
		content, err := d.renderer.Render(string(a.fileType), a.template, &data)
		if err != nil {
			result.Success = false
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", a.fileType, err))
			continue
		}
		result.Files = append(result.Files, GeneratedFile{
			RelativePath: fmt.Sprintf(a.pathPattern, toSnake(cfg.EntityID)),
			Type:         a.fileType,
			Content:      content,
			Customizable: a.customizable,
		})
	}

	result.Duration = time.Since(start)
	d.logger.Info("Generation finished",
		zap.String("entity_id", cfg.EntityID),
		zap.Bool("success", result.Success),
		zap.Int("files", len(result.Files)),
		zap.Int("unresolved_conflicts", len(result.UnresolvedConflicts)),
		zap.Duration("duration", result.Duration),
	)
	return result
}
