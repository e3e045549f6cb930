// Package wizard defines the operator-facing configuration model for one
// entity's generated CRUD interface: grid layout, form layout, form fields
// and conflict resolutions.
//
// A Config is born either from default synthesis (core/reconcile) or from
// an operator submission, validated via Validate, and persisted by
// core/store under a freshly generated identifier. Saved configurations
// are immutable; saving again appends a new record.
//
// ComputeHash digests the semantic content (layouts, fields, resolutions)
// while ignoring identifiers and timestamps, so unchanged regenerations
// can be detected by hash equality alone.
package wizard
