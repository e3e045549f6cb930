// Package schema provides the in-memory representation of database table
// structure and the catalog-backed source that reads it.
//
// A TableSchema is read fresh from the live database for every wizard run
// and is never cached across requests: the database is one of the two
// authoritative sources the reconciliation engine compares, and stale
// structure would silently corrupt conflict detection.
//
// # Type Mapping
//
// Native type strings are classified into SemanticType values through a
// static lookup table (see mapping.go), then mapped to Go types. Unknown
// native types classify as SemanticUnknown and map to "any"; the mapping
// never fails and never leaves a column untyped. Nullable value-type
// columns map to pointer types ("*int"), which callers strip again via
// SimpleGoType when comparing against manifest declarations.
//
// # Dialects
//
// The Reader supports MySQL (information_schema queries) and SQLite
// (PRAGMA statements, used primarily by tests).
package schema
