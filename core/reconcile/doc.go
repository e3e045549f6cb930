// Package reconcile compares a table's live structure against its declared
// manifest metadata and synthesizes default wizard configurations.
//
// The engine owns no state: DetectConflicts and SynthesizeDefaults are pure
// functions of (TableSchema, EntityManifest). Conflicts are transient
// values shown to the operator; only the resolutions chosen for them are
// persisted, keyed by Conflict.Key, as part of the saved configuration.
//
// # Matching Semantics
//
// Field/column matching is case-insensitive throughout: manifest casing
// does not have to agree with the catalog, and a case-sensitive
// reimplementation would report spurious missing-field conflicts.
// Type comparison, by contrast, is a case-sensitive exact match on the
// simple Go type name with pointer wrapping stripped.
//
// # Ordering
//
// Conflicts are emitted in manifest declaration order followed by column
// ordinal order for columns absent from the manifest. The ordering is an
// implementation choice kept stable for reproducibility, not a semantic
// guarantee.
package reconcile
