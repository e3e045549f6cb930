package generate

import (
	"time"

	"scaffold-wizard/core/reconcile"
)

// FileType tags a generated artifact by its role in the scaffolded interface.
type FileType string

const (
	FileTypeController FileType = "controller"
	FileTypeViewModel  FileType = "view-model"
	FileTypeView       FileType = "view"
	FileTypeScript     FileType = "script"
	FileTypeStylesheet FileType = "stylesheet"
)

// GeneratedFile is one output artifact of a generation run.
type GeneratedFile struct {
	// RelativePath is the file's path inside the output package.
	RelativePath string `json:"relative_path"`

	// Type tags the artifact's role.
	Type FileType `json:"type"`

	// Content is the rendered file content.
	Content string `json:"content"`

	// Customizable marks files the operator is expected to edit after
	// generation. Non-customizable files are overwritten on every
	// regeneration.
	Customizable bool `json:"customizable"`
}

// GenerationResult aggregates the outcome of a generation run. A run never
// fails with a bare error for domain problems: partial output, unresolved
// conflicts and per-file failures are all reported here so a front-end can
// render partial progress.
type GenerationResult struct {
	Success bool `json:"success"`

	Files []GeneratedFile `json:"files"`

	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`

	// UnresolvedConflicts lists conflicts with no operator resolution at
	// generation time. Non-empty means Success is false.
	UnresolvedConflicts []reconcile.Conflict `json:"unresolved_conflicts,omitempty"`

	Duration time.Duration `json:"duration"`
}
