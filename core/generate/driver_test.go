package generate

import (
	"context"
	"strings"
	"testing"

	"scaffold-wizard/core/manifest"
	"scaffold-wizard/core/reconcile"
	"scaffold-wizard/core/schema"
	"scaffold-wizard/core/wizard"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func testTable() *schema.TableSchema {
	return &schema.TableSchema{
		Schema: "erp",
		Name:   "orders",
		Columns: []schema.ColumnSchema{
			{Name: "Id", NativeType: "int(11)", Semantic: schema.SemanticInt, GoType: "int", Identity: true, Ordinal: 1},
			{Name: "CustomerName", NativeType: "varchar(70)", Semantic: schema.SemanticString, GoType: "string", Ordinal: 2},
		},
	}
}

func testManifest() *manifest.EntityManifest {
	return &manifest.EntityManifest{
		EntityID:    "Orders",
		DisplayName: "Sales Orders",
		Module:      "sales",
		MenuCode:    200,
		ActionCode:  2000,
		Schema:      "erp",
		Table:       "orders",
		Fields: []manifest.FieldManifest{
			{Name: "Id", Type: "int", IsRequired: true, IsIdentity: true},
			{Name: "CustomerName", Type: "string", IsRequired: true},
		},
	}
}

func TestDriver_Generate(t *testing.T) {
	driver := NewDriver(NewRenderer(), zap.NewNop())
	table := testTable()
	man := testManifest()

	// CustomerName is not null in the table.
	cfg := reconcile.SynthesizeDefaults(table, man)

	result := driver.Generate(context.Background(), cfg, table, man)
	assert.True(t, result.Success)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.UnresolvedConflicts)
	assert.Len(t, result.Files, 5)

	byType := map[FileType]GeneratedFile{}
	for _, file := range result.Files {
		byType[file.Type] = file
	}

	assert.Equal(t, "controllers/orders_controller.go", byType[FileTypeController].RelativePath)
	assert.Equal(t, "viewmodels/orders_viewmodel.go", byType[FileTypeViewModel].RelativePath)
	assert.Equal(t, "views/orders.html", byType[FileTypeView].RelativePath)
	assert.Equal(t, "static/js/orders.js", byType[FileTypeScript].RelativePath)
	assert.Equal(t, "static/css/orders.css", byType[FileTypeStylesheet].RelativePath)

	assert.True(t, byType[FileTypeController].Customizable)
	assert.True(t, byType[FileTypeView].Customizable)
	assert.False(t, byType[FileTypeViewModel].Customizable)

	assert.Contains(t, byType[FileTypeController].Content, "OrdersController")
	assert.Contains(t, byType[FileTypeViewModel].Content, "OrdersViewModel")
	assert.Contains(t, byType[FileTypeViewModel].Content, "CustomerName")
	assert.Contains(t, byType[FileTypeView].Content, "Sales Orders")
	assert.Greater(t, result.Duration.Nanoseconds(), int64(0))
}

func TestDriver_Generate_InvalidConfigShortCircuits(t *testing.T) {
	driver := NewDriver(NewRenderer(), zap.NewNop())

	result := driver.Generate(context.Background(), &wizard.Config{}, testTable(), testManifest())
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Errors)
	assert.Empty(t, result.Files)
}

// Unresolved conflicts degrade the result but never suppress output: the
// operator still gets every artifact plus the open conflict list.
func TestDriver_Generate_UnresolvedConflicts(t *testing.T) {
	driver := NewDriver(NewRenderer(), zap.NewNop())
	table := testTable()

	man := testManifest()
	man.Fields = append(man.Fields, manifest.FieldManifest{
		Name: "Email", Type: "string", IsRequired: true,
	})

	cfg := reconcile.SynthesizeDefaults(table, man)
	cfg.Resolutions = nil

	result := driver.Generate(context.Background(), cfg, table, man)
	assert.False(t, result.Success)
	assert.Len(t, result.Files, 5)
	assert.Len(t, result.UnresolvedConflicts, 1)
	assert.Equal(t, reconcile.KindFieldOnlyInManifest, result.UnresolvedConflicts[0].Kind)
	assert.NotEmpty(t, result.Warnings)
}

func TestDriver_Generate_ResolvedConflictsSucceed(t *testing.T) {
	driver := NewDriver(NewRenderer(), zap.NewNop())
	table := testTable()

	man := testManifest()
	man.Fields = append(man.Fields, manifest.FieldManifest{
		Name: "Email", Type: "string", IsRequired: true,
	})

	cfg := reconcile.SynthesizeDefaults(table, man)
	conflicts := reconcile.DetectConflicts(table, man)
	assert.Len(t, conflicts, 1)

	cfg.Resolutions = map[string]string{
		conflicts[0].Key(): string(reconcile.ResolutionUseDatabase),
	}

	result := driver.Generate(context.Background(), cfg, table, man)
	assert.True(t, result.Success)
	assert.Empty(t, result.UnresolvedConflicts)
	assert.Len(t, result.Files, 5)
}

// Same inputs, same files in the same order.
func TestDriver_Generate_Deterministic(t *testing.T) {
	driver := NewDriver(NewRenderer(), zap.NewNop())
	table := testTable()
	man := testManifest()
	cfg := reconcile.SynthesizeDefaults(table, man)

	first := driver.Generate(context.Background(), cfg, table, man)
	second := driver.Generate(context.Background(), cfg, table, man)

	assert.Equal(t, len(first.Files), len(second.Files))
	for i := range first.Files {
		assert.Equal(t, first.Files[i].RelativePath, second.Files[i].RelativePath)
		assert.Equal(t, first.Files[i].Content, second.Files[i].Content)
	}
}

func TestDriver_Generate_ViewListsGridColumns(t *testing.T) {
	driver := NewDriver(NewRenderer(), zap.NewNop())
	table := testTable()
	man := testManifest()
	cfg := reconcile.SynthesizeDefaults(table, man)

	result := driver.Generate(context.Background(), cfg, table, man)
	assert.True(t, result.Success)

	var view string
	for _, file := range result.Files {
		if file.Type == FileTypeView {
			view = file.Content
		}
	}
	for _, grid := range cfg.GridLayout.Fields {
		assert.True(t, strings.Contains(view, grid.Label),
			"view should list grid column %s", grid.Name)
	}
}
