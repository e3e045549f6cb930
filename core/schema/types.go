package schema

import (
	"fmt"
	"strings"
	"time"
)

// TableSchema represents one database table as read at a point in time.
// It is rebuilt fresh on every read from the catalog and never cached,
// so the reconciliation engine always works against live structure.
type TableSchema struct {
	// Schema is the database schema (catalog) the table belongs to.
	Schema string `json:"schema"`

	// Name is the table name.
	Name string `json:"name"`

	// Columns holds the column definitions in ordinal position order.
	Columns []ColumnSchema `json:"columns"`

	// PrimaryKey describes the primary key, if the table declares one.
	PrimaryKey *PrimaryKeySchema `json:"primary_key,omitempty"`

	// ForeignKeys holds outgoing foreign key constraints.
	ForeignKeys []ForeignKeySchema `json:"foreign_keys,omitempty"`

	// Indexes holds secondary indexes.
	Indexes []IndexSchema `json:"indexes,omitempty"`

	// Metadata carries free-form extractor-specific data (engine, collation, ...).
	Metadata map[string]string `json:"metadata,omitempty"`

	// ReadAt is the time the structure was read from the catalog.
	ReadAt time.Time `json:"read_at"`

	// Hash is the content hash of the structure (see ComputeHash).
	Hash string `json:"hash,omitempty"`
}

// QualifiedName returns the schema-qualified table name.
func (t *TableSchema) QualifiedName() string {
	if t.Schema == "" {
		return t.Name
	}
	return t.Schema + "." + t.Name
}

// Column returns the column with the given name using a case-insensitive
// match, or nil if the table has no such column. Case-insensitive lookup is
// load-bearing: manifest field casing does not have to match the catalog.
func (t *TableSchema) Column(name string) *ColumnSchema {
	for i := range t.Columns {
		if strings.EqualFold(t.Columns[i].Name, name) {
			return &t.Columns[i]
		}
	}
	return nil
}

// Validate checks the table invariants and returns all violations as
// human-readable messages. An empty slice means the table is valid.
func (t *TableSchema) Validate() []string {
	var errs []string

	if strings.TrimSpace(t.Name) == "" {
		errs = append(errs, "table name must not be empty")
	}
	if len(t.Columns) == 0 {
		errs = append(errs, "table must have at least one column")
	}

	for _, col := range t.Columns {
		errs = append(errs, col.Validate()...)
	}

	if t.PrimaryKey != nil {
		for _, name := range t.PrimaryKey.Columns {
			if t.Column(name) == nil {
				errs = append(errs, fmt.Sprintf("primary key references unknown column %q", name))
			}
		}
	}

	for _, fk := range t.ForeignKeys {
		for _, name := range fk.Columns {
			if t.Column(name) == nil {
				errs = append(errs, fmt.Sprintf("foreign key %s references unknown column %q", fk.Name, name))
			}
		}
	}

	return errs
}

// ColumnSchema represents a single table column.
type ColumnSchema struct {
	// Name is the column name as reported by the catalog.
	Name string `json:"name"`

	// NativeType is the raw database type string (e.g. "varchar(70)").
	NativeType string `json:"native_type"`

	// Semantic is the database-independent type classification.
	Semantic SemanticType `json:"semantic"`

	// GoType is the mapped Go type. Nullable value-type columns are mapped
	// to their pointer form (e.g. "*int"); nullable strings stay "string"
	// paired with Nullable=true.
	GoType string `json:"go_type"`

	// Nullable reports whether the column accepts NULL.
	Nullable bool `json:"nullable"`

	// Identity reports whether the column is auto-generated (auto_increment,
	// rowid alias, identity).
	Identity bool `json:"identity"`

	// Computed reports whether the column is generated/virtual.
	Computed bool `json:"computed"`

	// Length is the character length for string types, zero otherwise.
	Length int `json:"length,omitempty"`

	// Precision and Scale apply to numeric types.
	Precision int `json:"precision,omitempty"`
	Scale     int `json:"scale,omitempty"`

	// Default is the declared default value, nil when none.
	Default *string `json:"default,omitempty"`

	// Ordinal is the 1-based position of the column in the table.
	Ordinal int `json:"ordinal"`
}

// SimpleGoType returns the Go type with any pointer wrapping stripped.
// Type comparisons against manifest declarations use this form.
func (c *ColumnSchema) SimpleGoType() string {
	return strings.TrimPrefix(c.GoType, "*")
}

// Validate checks the column invariants.
func (c *ColumnSchema) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "column name must not be empty")
	}
	if strings.TrimSpace(c.NativeType) == "" {
		errs = append(errs, fmt.Sprintf("column %q has no native type", c.Name))
	}
	if c.Semantic == "" {
		errs = append(errs, fmt.Sprintf("column %q has no semantic type", c.Name))
	}
	return errs
}

// PrimaryKeySchema describes a table's primary key.
type PrimaryKeySchema struct {
	// Name is the constraint name ("PRIMARY" on MySQL).
	Name string `json:"name"`

	// Columns lists the key columns in key order.
	Columns []string `json:"columns"`
}

// ForeignKeySchema describes an outgoing foreign key constraint.
type ForeignKeySchema struct {
	// Name is the constraint name.
	Name string `json:"name"`

	// Columns lists the local columns.
	Columns []string `json:"columns"`

	// ReferencedTable and ReferencedColumns identify the target.
	ReferencedTable   string   `json:"referenced_table"`
	ReferencedColumns []string `json:"referenced_columns"`
}

// IndexSchema describes a secondary index.
type IndexSchema struct {
	// Name is the index name.
	Name string `json:"name"`

	// Columns lists the indexed columns in index order.
	Columns []string `json:"columns"`

	// Unique reports whether the index enforces uniqueness.
	Unique bool `json:"unique"`
}
