package manifest

import (
	"strings"
	"time"

	"scaffold-wizard/core/schema"
)

// Fallback access-control codes. Positive placeholders so a synthesized
// manifest still passes validation; operators replace them before rollout.
const (
	fallbackMenuCode   = 9000
	fallbackActionCode = 9000
)

// Synthesize builds a minimally valid manifest for an entity when the
// metadata service cannot supply one. When a table is provided its columns
// become the declared fields; otherwise a single identifier field is
// declared so the manifest invariants still hold.
func Synthesize(entityID string, table *schema.TableSchema) *EntityManifest {
	man := &EntityManifest{
		EntityID:    entityID,
		DisplayName: entityID,
		Module:      "default",
		MenuCode:    fallbackMenuCode,
		ActionCode:  fallbackActionCode,
		Table:       strings.ToLower(entityID),
		Routes:      DefaultRoutes(entityID),
		ReadAt:      time.Now(),
		Fallback:    true,
	}

	if table == nil {
		man.Fields = []FieldManifest{
			{Name: "id", Label: "Id", Type: "int", IsPrimary: true, IsIdentity: true, IsRequired: true},
		}
		return man
	}

	man.Schema = table.Schema
	man.Table = table.Name

	for _, col := range table.Columns {
		field := FieldManifest{
			Name:       col.Name,
			Label:      col.Name,
			Type:       col.SimpleGoType(),
			IsRequired: !col.Nullable,
			IsIdentity: col.Identity,
			IsComputed: col.Computed,
			Length:     col.Length,
			Precision:  col.Precision,
			Scale:      col.Scale,
		}
		if table.PrimaryKey != nil {
			for _, pk := range table.PrimaryKey.Columns {
				if strings.EqualFold(pk, col.Name) {
					field.IsPrimary = true
				}
			}
		}
		if col.Default != nil {
			field.Default = *col.Default
		}
		man.Fields = append(man.Fields, field)
	}

	return man
}
