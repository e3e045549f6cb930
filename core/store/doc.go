// Package store persists wizard configurations.
//
// The Store interface is a small append-only keyed record store: Save
// always generates a fresh identifier, Load retrieves by identifier, and
// History derives a newest-first generation summary per entity by scanning
// all records. There is no update-in-place and no delete; re-saving an
// unchanged configuration produces a new record with the same content
// hash, which is exactly how unchanged regenerations are detected.
//
// Two backends exist: a directory of JSON files (atomic via
// write-then-rename, the default) and an object storage bucket (atomic via
// provider-side object puts). Corrupt individual records never fail a
// History scan; they are skipped with a warning.
package store
