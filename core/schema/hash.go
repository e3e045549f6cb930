package schema

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
)

// canonicalTable is the fixed-order serialization used for hashing.
// ReadAt and Hash itself are deliberately excluded so repeated reads of an
// unchanged table produce the same digest.
type canonicalTable struct {
	Schema      string             `json:"schema"`
	Name        string             `json:"name"`
	Columns     []ColumnSchema     `json:"columns"`
	PrimaryKey  *PrimaryKeySchema  `json:"primary_key,omitempty"`
	ForeignKeys []ForeignKeySchema `json:"foreign_keys,omitempty"`
	Indexes     []IndexSchema      `json:"indexes,omitempty"`
}

// ComputeHash returns the SHA-256 content hash of the table structure,
// rendered as uppercase hex.
func ComputeHash(t *TableSchema) string {
	canonical := canonicalTable{
		Schema:      t.Schema,
		Name:        t.Name,
		Columns:     t.Columns,
		PrimaryKey:  t.PrimaryKey,
		ForeignKeys: t.ForeignKeys,
		Indexes:     t.Indexes,
	}

	// Marshal cannot fail for this plain-data struct.
	payload, _ := json.Marshal(canonical)
	sum := sha256.Sum256(payload)
	return fmt.Sprintf("%X", sum)
}
