package wizard

import (
	"scaffold-wizard/core/generate"
	"scaffold-wizard/core/manifest"
	"scaffold-wizard/core/reconcile"
	"scaffold-wizard/core/schema"
	"scaffold-wizard/core/store"
	"scaffold-wizard/core/wizard"
)

// Stage is the wizard flow position an operation's result corresponds to.
// Stages advance only on success; a failed operation reports the stage the
// flow is still at so the operator can retry.
type Stage string

const (
	StageEntitySelected    Stage = "EntitySelected"
	StageConflictsDetected Stage = "ConflictsDetected"
	StageConflictsResolved Stage = "ConflictsResolved"
	StageConfigValidated   Stage = "ConfigValidated"
	StageCodeGenerated     Stage = "CodeGenerated"
	StageDownloaded        Stage = "Downloaded"
)

// Result is the common envelope of every wizard operation: an explicit
// success flag plus accumulated errors and warnings, never a bare error for
// domain failures, so a front-end can render partial progress.
type Result struct {
	Success  bool     `json:"success"`
	Stage    Stage    `json:"stage"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

func failure(stage Stage, errs ...string) Result {
	return Result{Success: false, Stage: stage, Errors: errs}
}

// InitializeResult carries the freshly fetched sources and the synthesized
// default configuration for an entity.
type InitializeResult struct {
	Result
	Manifest *manifest.EntityManifest `json:"manifest,omitempty"`
	Table    *schema.TableSchema      `json:"table,omitempty"`
	Config   *wizard.Config           `json:"config,omitempty"`
}

// ConflictResult carries the detected conflict list for an entity.
type ConflictResult struct {
	Result
	Conflicts []reconcile.Conflict `json:"conflicts"`
}

// ResolveResult reports which conflicts remain open after applying the
// operator's resolution map.
type ResolveResult struct {
	Result
	Resolutions map[string]string    `json:"resolutions,omitempty"`
	Unresolved  []reconcile.Conflict `json:"unresolved,omitempty"`
}

// ValidationResult reports configuration validity.
type ValidationResult struct {
	Result
}

// SaveResult carries the identifier and content hash of a saved
// configuration.
type SaveResult struct {
	Result
	ID   string `json:"id,omitempty"`
	Hash string `json:"hash,omitempty"`
}

// LoadResult carries a loaded configuration. NotFound distinguishes an
// unknown identifier from a storage failure.
type LoadResult struct {
	Result
	NotFound bool           `json:"not_found,omitempty"`
	Config   *wizard.Config `json:"config,omitempty"`
}

// HistoryResult carries an entity's generation history, newest first.
type HistoryResult struct {
	Result
	Entries []store.GenerationSummary `json:"entries"`
}

// GenerateResult wraps the driver's output plus the packaged archive.
type GenerateResult struct {
	Result
	Generation  *generate.GenerationResult `json:"generation,omitempty"`
	ArchivePath string                     `json:"archive_path,omitempty"`
	ArchiveKey  string                     `json:"archive_key,omitempty"`
}
