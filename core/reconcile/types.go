package reconcile

import "strings"

// ConflictKind classifies a detected discrepancy between table structure
// and manifest metadata for one field.
type ConflictKind string

const (
	// KindFieldOnlyInManifest: the manifest declares a field with no
	// matching table column.
	KindFieldOnlyInManifest ConflictKind = "field-only-in-manifest"
	// KindFieldOnlyInDatabase: the table has a column the manifest does
	// not declare.
	KindFieldOnlyInDatabase ConflictKind = "field-only-in-database"
	// KindTypeMismatch: the column's mapped Go type differs from the
	// manifest's declared type.
	KindTypeMismatch ConflictKind = "type-mismatch"
	// KindNullabilityMismatch: column nullability contradicts the
	// manifest's required flag.
	KindNullabilityMismatch ConflictKind = "nullability-mismatch"
	// KindPrimaryKeyMismatch and KindForeignKeyMismatch complete the
	// resolution taxonomy; operators can record resolutions under these
	// kinds when annotating key discrepancies by hand.
	KindPrimaryKeyMismatch ConflictKind = "primary-key-mismatch"
	KindForeignKeyMismatch ConflictKind = "foreign-key-mismatch"
)

// Resolution is the operator's choice of how a conflict is settled.
type Resolution string

const (
	ResolutionUseDatabase  Resolution = "use-database"
	ResolutionUseManifest  Resolution = "use-manifest"
	ResolutionIgnore       Resolution = "ignore"
	ResolutionManualReview Resolution = "requires-manual-review"
)

// Valid reports whether the resolution is one of the known values.
func (r Resolution) Valid() bool {
	switch r {
	case ResolutionUseDatabase, ResolutionUseManifest, ResolutionIgnore, ResolutionManualReview:
		return true
	default:
		return false
	}
}

// Conflict is one detected discrepancy for a single field. Conflicts are
// transient: only the resolutions the operator chooses are persisted, as
// part of the saved configuration.
type Conflict struct {
	// Kind classifies the discrepancy.
	Kind ConflictKind `json:"kind"`

	// Field is the field/column name the conflict concerns.
	Field string `json:"field"`

	// DatabaseValue and ManifestValue carry each side's rendering of the
	// disputed attribute; nil when the side has nothing to say.
	DatabaseValue *string `json:"database_value,omitempty"`
	ManifestValue *string `json:"manifest_value,omitempty"`

	// Description is the human-readable explanation shown to the operator.
	Description string `json:"description"`

	// Suggested is the proposed resolution; ResolutionManualReview unless
	// one side is clearly authoritative.
	Suggested Resolution `json:"suggested"`
}

// Key returns the stable identifier under which a resolution for this
// conflict is recorded in a saved configuration.
func (c *Conflict) Key() string {
	return string(c.Kind) + ":" + strings.ToLower(c.Field)
}

// Unresolved returns the subset of conflicts that have no resolution entry
// in the given resolution map.
func Unresolved(conflicts []Conflict, resolutions map[string]string) []Conflict {
	var open []Conflict
	for _, conflict := range conflicts {
		if _, ok := resolutions[conflict.Key()]; !ok {
			open = append(open, conflict)
		}
	}
	return open
}
