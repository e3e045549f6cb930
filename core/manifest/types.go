package manifest

import (
	"fmt"
	"strings"
	"time"
)

// EntityManifest is the declared metadata for one entity as maintained in
// the remote metadata service. It is the second authoritative source the
// reconciliation engine compares against the live table structure.
type EntityManifest struct {
	// EntityID is the unique identifier in the metadata service.
	EntityID string `json:"entity_id"`

	// DisplayName is the human-readable entity name.
	DisplayName string `json:"display_name"`

	// Module is the ERP module the entity belongs to.
	Module string `json:"module"`

	// MenuCode and ActionCode are the two access-control codes the
	// generated interface is registered under. Both must be positive.
	MenuCode   int `json:"menu_code"`
	ActionCode int `json:"action_code"`

	// Schema and Table reference the backing database table.
	Schema string `json:"schema"`
	Table  string `json:"table"`

	// Connection optionally names a non-default connection.
	Connection string `json:"connection,omitempty"`

	// Routes holds the API route set for the generated interface.
	Routes RouteSet `json:"routes"`

	// Permissions holds the declared permission entries.
	Permissions []PermissionManifest `json:"permissions,omitempty"`

	// Fields holds the declared fields in declaration order.
	Fields []FieldManifest `json:"fields"`

	// Metadata carries free-form service-specific data.
	Metadata map[string]string `json:"metadata,omitempty"`

	// ReadAt is the time the manifest was fetched.
	ReadAt time.Time `json:"read_at"`

	// Fallback marks a synthesized manifest returned because the metadata
	// service was unreachable. Callers surface this to the operator instead
	// of silently treating it as authoritative.
	Fallback bool `json:"fallback,omitempty"`
}

// Field returns the declared field with the given name using a
// case-insensitive match, or nil.
func (m *EntityManifest) Field(name string) *FieldManifest {
	for i := range m.Fields {
		if strings.EqualFold(m.Fields[i].Name, name) {
			return &m.Fields[i]
		}
	}
	return nil
}

// Validate checks the manifest invariants and returns all violations.
func (m *EntityManifest) Validate() []string {
	var errs []string

	if strings.TrimSpace(m.EntityID) == "" {
		errs = append(errs, "entity id must not be empty")
	}
	if strings.TrimSpace(m.DisplayName) == "" {
		errs = append(errs, "display name must not be empty")
	}
	if strings.TrimSpace(m.Table) == "" {
		errs = append(errs, "table name must not be empty")
	}
	if m.MenuCode <= 0 {
		errs = append(errs, "menu code must be positive")
	}
	if m.ActionCode <= 0 {
		errs = append(errs, "action code must be positive")
	}
	if len(m.Fields) == 0 {
		errs = append(errs, "manifest must declare at least one field")
	}

	for _, field := range m.Fields {
		errs = append(errs, field.Validate()...)
	}

	return errs
}

// RouteSet holds the API routes of the generated CRUD interface.
type RouteSet struct {
	List        string `json:"list"`
	Get         string `json:"get"`
	Create      string `json:"create"`
	Update      string `json:"update"`
	Delete      string `json:"delete"`
	BatchDelete string `json:"batch_delete,omitempty"`
	Export      string `json:"export,omitempty"`
	Import      string `json:"import,omitempty"`
}

// DefaultRoutes builds the conventional route set for an entity.
func DefaultRoutes(entityID string) RouteSet {
	base := "/api/" + strings.ToLower(entityID)
	return RouteSet{
		List:        base,
		Get:         base + "/:id",
		Create:      base,
		Update:      base + "/:id",
		Delete:      base + "/:id",
		BatchDelete: base + "/batch",
		Export:      base + "/export",
		Import:      base + "/import",
	}
}

// PermissionManifest is one declared permission entry.
type PermissionManifest struct {
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
}

// FieldManifest is one declared field of an entity.
type FieldManifest struct {
	// Name is the field name; matched case-insensitively against columns.
	Name string `json:"name"`

	// Label is the display label.
	Label string `json:"label,omitempty"`

	// Description is free-form documentation.
	Description string `json:"description,omitempty"`

	// Type is the declared semantic type name ("int", "string",
	// "time.Time", ...). It is compared against the column's simple Go
	// type during reconciliation.
	Type string `json:"type"`

	// Flags mirroring the column properties the service declares.
	IsPrimary    bool `json:"is_primary,omitempty"`
	IsForeignKey bool `json:"is_foreign_key,omitempty"`
	IsRequired   bool `json:"is_required,omitempty"`
	IsIdentity   bool `json:"is_identity,omitempty"`
	IsComputed   bool `json:"is_computed,omitempty"`

	// Length/Precision/Scale mirror the declared storage shape.
	Length    int `json:"length,omitempty"`
	Precision int `json:"precision,omitempty"`
	Scale     int `json:"scale,omitempty"`

	// Default is the declared default value.
	Default string `json:"default,omitempty"`

	// Widget is the suggested input widget kind.
	Widget string `json:"widget,omitempty"`

	// ForeignKey is mandatory when IsForeignKey is set.
	ForeignKey *ForeignKeyInfo `json:"foreign_key,omitempty"`
}

// Validate checks the field invariants.
func (f *FieldManifest) Validate() []string {
	var errs []string
	if strings.TrimSpace(f.Name) == "" {
		errs = append(errs, "field name must not be empty")
	}
	if strings.TrimSpace(f.Type) == "" {
		errs = append(errs, fmt.Sprintf("field %q has no declared type", f.Name))
	}
	if f.IsForeignKey && f.ForeignKey == nil {
		errs = append(errs, fmt.Sprintf("field %q is flagged as foreign key but has no foreign key info", f.Name))
	}
	return errs
}

// ForeignKeyInfo describes the target of a declared foreign key field.
type ForeignKeyInfo struct {
	// Entity is the referenced entity id.
	Entity string `json:"entity"`

	// Table and Column identify the referenced storage location.
	Table  string `json:"table"`
	Column string `json:"column"`

	// DisplayColumn is the column used to render the reference.
	DisplayColumn string `json:"display_column,omitempty"`
}
