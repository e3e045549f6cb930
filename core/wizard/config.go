package wizard

import (
	"fmt"
	"strings"
	"time"
)

// Widget identifies the input widget kind suggested for a form field.
type Widget string

const (
	WidgetText     Widget = "text"
	WidgetTextarea Widget = "textarea"
	WidgetNumber   Widget = "number"
	WidgetCheckbox Widget = "checkbox"
	WidgetDatetime Widget = "datetime"
	WidgetTime     Widget = "time"
	WidgetSelect   Widget = "select"
	WidgetFile     Widget = "file"
)

// Config is the operator's saved configuration for one entity's generated
// interface. It is created either by default synthesis (core/reconcile) or
// by operator submission, and is immutable once persisted: re-saving
// produces a new identifier, never an update in place.
type Config struct {
	// ID is the store-generated identifier. Empty until saved.
	ID string `json:"id,omitempty"`

	// EntityID, EntityName and Module identify the target entity.
	EntityID   string `json:"entity_id"`
	EntityName string `json:"entity_name,omitempty"`
	Module     string `json:"module,omitempty"`

	// Version counts operator revisions within a wizard session.
	Version int `json:"version"`

	// CreatedAt and UpdatedAt are bookkeeping timestamps. They are not
	// part of the content hash.
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`

	// GridLayout configures the list grid.
	GridLayout GridLayout `json:"grid_layout"`

	// FormLayout configures the edit form.
	FormLayout FormLayout `json:"form_layout"`

	// FormFields holds the full field configuration in display order.
	FormFields []FormField `json:"form_fields"`

	// Resolutions maps conflict keys to the operator's chosen resolution.
	Resolutions map[string]string `json:"resolutions,omitempty"`

	// Hash is the content hash (see ComputeHash). Stamped on save.
	Hash string `json:"hash,omitempty"`
}

// FormFieldNamed returns the form field with the given name using a
// case-insensitive match, or nil.
func (c *Config) FormFieldNamed(name string) *FormField {
	for i := range c.FormFields {
		if strings.EqualFold(c.FormFields[i].Name, name) {
			return &c.FormFields[i]
		}
	}
	return nil
}

// Validate checks the configuration invariants and returns all violations
// as human-readable messages.
func (c *Config) Validate() []string {
	var errs []string

	if strings.TrimSpace(c.EntityID) == "" {
		errs = append(errs, "entity id must not be empty")
	}
	if len(c.GridLayout.Fields) == 0 {
		errs = append(errs, "grid layout must have at least one field")
	}
	if len(c.FormLayout.Fields) == 0 {
		errs = append(errs, "form layout must have at least one field")
	}
	if len(c.FormFields) == 0 {
		errs = append(errs, "configuration must have at least one form field")
	}

	// Every grid field must be backed by a form field.
	for _, grid := range c.GridLayout.Fields {
		if c.FormFieldNamed(grid.Name) == nil {
			errs = append(errs, fmt.Sprintf("grid field %q has no matching form field", grid.Name))
		}
	}

	for _, field := range c.FormFields {
		errs = append(errs, field.Validate()...)
	}

	return errs
}

// GridLayout configures the generated list grid.
type GridLayout struct {
	// Fields holds the grid columns in display order.
	Fields []GridField `json:"fields"`

	// PageSize is the default page size of the grid.
	PageSize int `json:"page_size,omitempty"`
}

// GridField is one column of the generated grid.
type GridField struct {
	// Name references a form field by name.
	Name string `json:"name"`

	// Label is the column header.
	Label string `json:"label"`

	// Width is a CSS-ish width value; "auto" by default.
	Width string `json:"width"`

	// Visible, Searchable and Sortable control grid behavior.
	Visible    bool `json:"visible"`
	Searchable bool `json:"searchable"`
	Sortable   bool `json:"sortable"`

	// Order is the 0-based display position.
	Order int `json:"order"`
}

// FormLayout configures the generated edit form.
type FormLayout struct {
	// Fields lists the form field names in display order.
	Fields []string `json:"fields"`

	// Columns is the number of form columns.
	Columns int `json:"columns,omitempty"`
}

// FormField is the full configuration of one input field.
type FormField struct {
	// Name is the field name; matches a manifest field / table column.
	Name string `json:"name"`

	// Label is the display label.
	Label string `json:"label"`

	// Widget is the input widget kind.
	Widget Widget `json:"widget"`

	// Required and ReadOnly control form behavior.
	Required bool `json:"required"`
	ReadOnly bool `json:"read_only"`

	// Placeholder and Default prefill the widget.
	Placeholder string `json:"placeholder,omitempty"`
	Default     string `json:"default,omitempty"`

	// Order is the 0-based display position.
	Order int `json:"order"`
}

// Validate checks the form field invariants.
func (f *FormField) Validate() []string {
	var errs []string
	if strings.TrimSpace(f.Name) == "" {
		errs = append(errs, "form field name must not be empty")
	}
	if strings.TrimSpace(f.Label) == "" {
		errs = append(errs, fmt.Sprintf("form field %q has no label", f.Name))
	}
	return errs
}
