package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"scaffold-wizard/core/generate"
	"scaffold-wizard/core/manifest"
	"scaffold-wizard/core/reconcile"
	"scaffold-wizard/core/schema"
	"scaffold-wizard/core/store"
	"scaffold-wizard/core/wizard"

	"go.uber.org/zap"
)

// Service orchestrates the wizard flow. Schema and manifest are re-fetched
// fresh for every operation rather than cached, so each run always sees the
// current state of both authoritative sources.
type Service struct {
	schemas   schema.Source
	manifests manifest.Source
	configs   store.Store
	driver    *generate.Driver
	packager  generate.Packager
	uploader  *generate.Uploader
	outputDir string
	logger    *zap.Logger
}

// NewService creates a wizard service. uploader may be nil when archives
// stay on the local filesystem.
func NewService(schemas schema.Source, manifests manifest.Source, configs store.Store,
	driver *generate.Driver, packager generate.Packager, uploader *generate.Uploader,
	outputDir string, logger *zap.Logger) *Service {
	return &Service{
		schemas:   schemas,
		manifests: manifests,
		configs:   configs,
		driver:    driver,
		packager:  packager,
		uploader:  uploader,
		outputDir: outputDir,
		logger:    logger,
	}
}

// fetchSources reads the manifest and then the table it points at. The
// fallback warning is returned alongside so callers surface it uniformly.
func (s *Service) fetchSources(ctx context.Context, entityID string) (*manifest.EntityManifest, *schema.TableSchema, []string, error) {
	man, err := s.manifests.GetEntityManifest(ctx, entityID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to fetch manifest for %s: %w", entityID, err)
	}

	var warnings []string
	if man.Fallback {
		warnings = append(warnings,
			fmt.Sprintf("metadata service unavailable; using a synthesized fallback manifest for %s", entityID))
	}

	table, err := s.schemas.ReadTableSchema(ctx, man.Schema, man.Table)
	if err != nil {
		return nil, nil, warnings, fmt.Errorf("failed to read schema for %s: %w", man.Table, err)
	}
	return man, table, warnings, nil
}

// Initialize fetches both sources for the entity and synthesizes the
// default configuration the operator starts from.
func (s *Service) Initialize(ctx context.Context, entityID string) *InitializeResult {
	man, table, warnings, err := s.fetchSources(ctx, entityID)
	if err != nil {
		s.logger.Error("Wizard initialization failed", zap.String("entity_id", entityID), zap.Error(err))
		return &InitializeResult{Result: failure(StageEntitySelected, err.Error())}
	}

	return &InitializeResult{
		Result:   Result{Success: true, Stage: StageEntitySelected, Warnings: warnings},
		Manifest: man,
		Table:    table,
		Config:   reconcile.SynthesizeDefaults(table, man),
	}
}

// DetectConflicts compares the entity's current table structure against its
// manifest. Finding conflicts is a successful detection; only source
// failures fail the operation.
func (s *Service) DetectConflicts(ctx context.Context, entityID string) *ConflictResult {
	man, table, warnings, err := s.fetchSources(ctx, entityID)
	if err != nil {
		s.logger.Error("Conflict detection failed", zap.String("entity_id", entityID), zap.Error(err))
		return &ConflictResult{Result: failure(StageEntitySelected, err.Error())}
	}

	conflicts := reconcile.DetectConflicts(table, man)
	if len(conflicts) > 0 {
		warnings = append(warnings, fmt.Sprintf("%d conflict(s) need operator review", len(conflicts)))
	}

	s.logger.Info("Conflicts detected",
		zap.String("entity_id", entityID), zap.Int("conflicts", len(conflicts)))
	return &ConflictResult{
		Result:    Result{Success: true, Stage: StageConflictsDetected, Warnings: warnings},
		Conflicts: conflicts,
	}
}

// ResolveConflicts applies the operator's resolution map against a fresh
// detection run. Unknown resolution values are errors; resolutions keyed to
// conflicts that no longer exist are warnings; remaining open conflicts
// keep the flow at ConflictsDetected.
func (s *Service) ResolveConflicts(ctx context.Context, entityID string, resolutions map[string]string) *ResolveResult {
	man, table, warnings, err := s.fetchSources(ctx, entityID)
	if err != nil {
		s.logger.Error("Conflict resolution failed", zap.String("entity_id", entityID), zap.Error(err))
		return &ResolveResult{Result: failure(StageEntitySelected, err.Error())}
	}

	conflicts := reconcile.DetectConflicts(table, man)
	known := make(map[string]bool, len(conflicts))
	for i := range conflicts {
		known[conflicts[i].Key()] = true
	}

	var errs []string
	for key, value := range resolutions {
		if !reconcile.Resolution(value).Valid() {
			errs = append(errs, fmt.Sprintf("unknown resolution %q for conflict %s", value, key))
		}
		if !known[key] {
			warnings = append(warnings, fmt.Sprintf("resolution %s matches no detected conflict", key))
		}
	}

	unresolved := reconcile.Unresolved(conflicts, resolutions)
	result := &ResolveResult{
		Resolutions: resolutions,
		Unresolved:  unresolved,
	}
	if len(errs) > 0 || len(unresolved) > 0 {
		result.Result = Result{Success: false, Stage: StageConflictsDetected, Errors: errs, Warnings: warnings}
		return result
	}

	result.Result = Result{Success: true, Stage: StageConflictsResolved, Warnings: warnings}
	return result
}

// ValidateConfiguration checks the configuration's structural invariants.
func (s *Service) ValidateConfiguration(cfg *wizard.Config) *ValidationResult {
	if violations := cfg.Validate(); len(violations) > 0 {
		return &ValidationResult{Result: failure(StageConflictsResolved, violations...)}
	}
	return &ValidationResult{Result: Result{Success: true, Stage: StageConfigValidated}}
}

// SaveConfiguration validates and persists the configuration under a fresh
// identifier. Invalid configurations are never persisted.
func (s *Service) SaveConfiguration(ctx context.Context, cfg *wizard.Config) *SaveResult {
	if violations := cfg.Validate(); len(violations) > 0 {
		return &SaveResult{Result: failure(StageConflictsResolved, violations...)}
	}

	id, err := s.configs.Save(ctx, cfg)
	if err != nil {
		s.logger.Error("Failed to save configuration", zap.String("entity_id", cfg.EntityID), zap.Error(err))
		return &SaveResult{Result: failure(StageConfigValidated, err.Error())}
	}

	return &SaveResult{
		Result: Result{Success: true, Stage: StageConfigValidated},
		ID:     id,
		Hash:   wizard.ComputeHash(cfg),
	}
}

// LoadConfiguration retrieves a previously saved configuration.
func (s *Service) LoadConfiguration(ctx context.Context, id string) *LoadResult {
	cfg, err := s.configs.Load(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &LoadResult{
				Result:   failure(StageConfigValidated, fmt.Sprintf("no configuration with identifier %s", id)),
				NotFound: true,
			}
		}
		s.logger.Error("Failed to load configuration", zap.String("id", id), zap.Error(err))
		return &LoadResult{Result: failure(StageConfigValidated, err.Error())}
	}

	return &LoadResult{
		Result: Result{Success: true, Stage: StageConfigValidated},
		Config: cfg,
	}
}

// History lists the entity's saved configurations, newest first.
func (s *Service) History(ctx context.Context, entityID string) *HistoryResult {
	entries, err := s.configs.History(ctx, entityID)
	if err != nil {
		s.logger.Error("Failed to read history", zap.String("entity_id", entityID), zap.Error(err))
		return &HistoryResult{Result: failure(StageConfigValidated, err.Error())}
	}

	return &HistoryResult{
		Result:  Result{Success: true, Stage: StageConfigValidated},
		Entries: entries,
	}
}

// Generate re-fetches both sources, runs the generation driver against the
// configuration and packages successful output into a ZIP. When an uploader
// is configured the archive is also pushed to object storage; an upload
// failure downgrades to a warning since the local archive already exists.
func (s *Service) Generate(ctx context.Context, cfg *wizard.Config) *GenerateResult {
	man, table, warnings, err := s.fetchSources(ctx, cfg.EntityID)
	if err != nil {
		s.logger.Error("Generation failed", zap.String("entity_id", cfg.EntityID), zap.Error(err))
		return &GenerateResult{Result: failure(StageConfigValidated, err.Error())}
	}

	generation := s.driver.Generate(ctx, cfg, table, man)
	result := &GenerateResult{Generation: generation}

	if !generation.Success {
		result.Result = Result{
			Success:  false,
			Stage:    StageConfigValidated,
			Errors:   generation.Errors,
			Warnings: append(warnings, generation.Warnings...),
		}
		return result
	}

	archivePath, err := s.packager.CreateArchive(archiveName(cfg), generation.Files, s.outputDir)
	if err != nil {
		result.Result = Result{
			Success:  false,
			Stage:    StageCodeGenerated,
			Errors:   []string{err.Error()},
			Warnings: append(warnings, generation.Warnings...),
		}
		return result
	}
	result.ArchivePath = archivePath

	if s.uploader != nil {
		key, err := s.uploader.Upload(ctx, archivePath)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("archive upload failed: %v", err))
		} else {
			result.ArchiveKey = key
		}
	}

	s.logger.Info("Generation complete",
		zap.String("entity_id", cfg.EntityID),
		zap.String("archive", archivePath),
		zap.Int("files", len(generation.Files)),
	)
	result.Result = Result{Success: true, Stage: StageDownloaded, Warnings: append(warnings, generation.Warnings...)}
	return result
}

func archiveName(cfg *wizard.Config) string {
	name := cfg.EntityName
	if name == "" {
		name = cfg.EntityID
	}
	return strings.ToLower(strings.ReplaceAll(name, " ", "-"))
}
