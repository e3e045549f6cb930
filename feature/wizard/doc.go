// Package wizard orchestrates the scaffolding wizard flow and exposes it
// over HTTP.
//
// The Service drives the operator's session through its stages:
// EntitySelected, ConflictsDetected, ConflictsResolved, ConfigValidated,
// CodeGenerated, Downloaded. Each forward step needs the previous stage's
// artifact; a failed operation reports the stage the flow is still at so
// the operator can retry. Nothing but the validated configuration survives
// a restart; schema and manifest are always re-fetched fresh from their
// authoritative sources.
//
// Every operation returns a result object with an explicit success flag
// and accumulated errors/warnings rather than a bare error, so a front-end
// can render partial progress.
package wizard
