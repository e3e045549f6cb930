// Package manifest provides the in-memory representation of entity metadata
// and the HTTP client that fetches it from the remote metadata service.
//
// The manifest is one of the two authoritative sources the reconciliation
// engine compares; the other is the live table structure (core/schema).
//
// # Degrade-Not-Fail
//
// The metadata service is the less critical of the two sources: the wizard
// can still produce a usable configuration from table structure alone. When
// the service is unreachable and fallback is enabled, the client returns a
// synthesized manifest marked with Fallback=true instead of an error, and
// logs a warning. The flag travels with the manifest so every downstream
// result can tell the operator the metadata side was degraded. Schema reads
// have no such fallback: there is no safe default for a table's real
// structure.
package manifest
