package reconcile

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"scaffold-wizard/core/manifest"
	"scaffold-wizard/core/schema"
	"scaffold-wizard/core/wizard"
)

// DetectConflicts compares the live table structure against the declared
// manifest and returns every discrepancy.
//
// The pass order is fixed: manifest fields in declaration order first (a
// field may produce both a type and a nullability conflict), then table
// columns in ordinal order for the reverse direction. No further sorting
// is applied. The function is pure: same inputs, same output.
func DetectConflicts(table *schema.TableSchema, man *manifest.EntityManifest) []Conflict {
	conflicts := []Conflict{}

	for _, field := range man.Fields {
		col := table.Column(field.Name)
		if col == nil {
			declared := field.Type
			conflicts = append(conflicts, Conflict{
				Kind:          KindFieldOnlyInManifest,
				Field:         field.Name,
				ManifestValue: &declared,
				Description:   fmt.Sprintf("field %q is declared in the manifest but does not exist in table %s", field.Name, table.QualifiedName()),
				Suggested:     ResolutionManualReview,
			})
			continue
		}

		// Type check: simple Go type vs declared type, case-sensitive,
		// pointer wrapping ignored.
		if col.SimpleGoType() != field.Type {
			dbType := col.GoType
			manType := field.Type
			conflicts = append(conflicts, Conflict{
				Kind:          KindTypeMismatch,
				Field:         field.Name,
				DatabaseValue: &dbType,
				ManifestValue: &manType,
				Description:   fmt.Sprintf("field %q maps to %s in the database but is declared as %s in the manifest", field.Name, dbType, manType),
				Suggested:     ResolutionManualReview,
			})
		}

		// Nullability check: a required manifest field must be backed by a
		// non-nullable column.
		if col.Nullable == field.IsRequired {
			dbNull := "not null"
			if col.Nullable {
				dbNull = "nullable"
			}
			manNull := "optional"
			if field.IsRequired {
				manNull = "required"
			}
			conflicts = append(conflicts, Conflict{
				Kind:          KindNullabilityMismatch,
				Field:         field.Name,
				DatabaseValue: &dbNull,
				ManifestValue: &manNull,
				Description:   fmt.Sprintf("field %q is %s in the database but %s in the manifest", field.Name, dbNull, manNull),
				// The catalog is authoritative for nullability.
				Suggested: ResolutionUseDatabase,
			})
		}
	}

	for _, col := range table.Columns {
		if man.Field(col.Name) != nil {
			continue
		}
		dbType := col.GoType
		conflicts = append(conflicts, Conflict{
			Kind:          KindFieldOnlyInDatabase,
			Field:         col.Name,
			DatabaseValue: &dbType,
			Description:   fmt.Sprintf("column %q exists in table %s but is not declared in the manifest", col.Name, table.QualifiedName()),
			Suggested:     ResolutionUseDatabase,
		})
	}

	return conflicts
}

// Grid columns are capped so the default list view stays readable.
const defaultGridFieldLimit = 5

// SynthesizeDefaults builds the default configuration for an entity from
// its table structure and manifest. The result is deterministic (field for
// field, excluding timestamps) and always passes Config.Validate for any
// table with at least one non-computed column.
//
// Layout rules:
//   - Form fields: every non-computed column, ordinal order; identity
//     columns are included read-only so the grid can reference them.
//   - Form layout: the editable subset (non-computed, non-identity).
//   - Grid: the first 5 non-computed columns.
func SynthesizeDefaults(table *schema.TableSchema, man *manifest.EntityManifest) *wizard.Config {
	now := time.Now()
	cfg := &wizard.Config{
		EntityID:    man.EntityID,
		EntityName:  man.DisplayName,
		Module:      man.Module,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
		Resolutions: map[string]string{},
	}

	formOrder := 0
	for _, col := range table.Columns {
		if col.Computed {
			continue
		}

		field := wizard.FormField{
			Name:     col.Name,
			Label:    DeriveLabel(col.Name),
			Widget:   WidgetFor(col.Semantic),
			Required: !col.Nullable,
			ReadOnly: col.Identity,
			Order:    formOrder,
		}
		if col.Default != nil {
			field.Default = *col.Default
		}
		cfg.FormFields = append(cfg.FormFields, field)
		formOrder++

		if !col.Identity {
			cfg.FormLayout.Fields = append(cfg.FormLayout.Fields, col.Name)
		}

		if len(cfg.GridLayout.Fields) < defaultGridFieldLimit {
			cfg.GridLayout.Fields = append(cfg.GridLayout.Fields, wizard.GridField{
				Name:       col.Name,
				Label:      DeriveLabel(col.Name),
				Width:      "auto",
				Visible:    true,
				Searchable: true,
				Sortable:   true,
				Order:      len(cfg.GridLayout.Fields),
			})
		}
	}

	cfg.Hash = wizard.ComputeHash(cfg)
	return cfg
}

// DeriveLabel turns a column name into a display label: underscores become
// spaces, a space is inserted at each lower-to-upper boundary, and every
// word is title-cased. "customer_id" and "customerId" both yield
// "Customer Id".
func DeriveLabel(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if r == '_' {
			b.WriteRune(' ')
			continue
		}
		if i > 0 && unicode.IsUpper(r) && unicode.IsLower(runes[i-1]) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}

	words := strings.Fields(b.String())
	for i, word := range words {
		wr := []rune(word)
		wr[0] = unicode.ToUpper(wr[0])
		for j := 1; j < len(wr); j++ {
			wr[j] = unicode.ToLower(wr[j])
		}
		words[i] = string(wr)
	}
	return strings.Join(words, " ")
}

// widgetBySemantic is the fixed lookup from column semantic type to the
// suggested input widget.
var widgetBySemantic = map[schema.SemanticType]wizard.Widget{
	schema.SemanticInt:      wizard.WidgetNumber,
	schema.SemanticBigInt:   wizard.WidgetNumber,
	schema.SemanticSmallInt: wizard.WidgetNumber,
	schema.SemanticByte:     wizard.WidgetNumber,
	schema.SemanticDecimal:  wizard.WidgetNumber,
	schema.SemanticFloat:    wizard.WidgetNumber,
	schema.SemanticBool:     wizard.WidgetCheckbox,
	schema.SemanticDateTime: wizard.WidgetDatetime,
	schema.SemanticDate:     wizard.WidgetDatetime,
	schema.SemanticTime:     wizard.WidgetTime,
	schema.SemanticBinary:   wizard.WidgetFile,
	schema.SemanticText:     wizard.WidgetTextarea,
}

// WidgetFor returns the suggested widget for a semantic type; anything not
// covered by the lookup (strings, guids, unknown) renders as a text input.
func WidgetFor(sem schema.SemanticType) wizard.Widget {
	if w, ok := widgetBySemantic[sem]; ok {
		return w
	}
	return wizard.WidgetText
}
