package wizard

import (
	"context"
	"errors"
	"os"
	"testing"

	"scaffold-wizard/core/generate"
	"scaffold-wizard/core/manifest"
	manifestmocks "scaffold-wizard/core/manifest/mocks"
	"scaffold-wizard/core/reconcile"
	"scaffold-wizard/core/schema"
	schemamocks "scaffold-wizard/core/schema/mocks"
	"scaffold-wizard/core/store"
	"scaffold-wizard/core/wizard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
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

func setupService(t *testing.T) (*Service, *schemamocks.Source, *manifestmocks.Source) {
	schemas := new(schemamocks.Source)
	manifests := new(manifestmocks.Source)
	logger := zap.NewNop()

	configs, err := store.NewFileStore(t.TempDir(), logger)
	assert.NoError(t, err)

	driver := generate.NewDriver(generate.NewRenderer(), logger)
	svc := NewService(schemas, manifests, configs, driver, generate.NewPackager(), nil, t.TempDir(), logger)
	return svc, schemas, manifests
}

func expectSources(schemas *schemamocks.Source, manifests *manifestmocks.Source) {
	manifests.On("GetEntityManifest", mock.Anything, "Orders").Return(testManifest(), nil)
	schemas.On("ReadTableSchema", mock.Anything, "erp", "orders").Return(testTable(), nil)
}

func TestService_Initialize(t *testing.T) {
	svc, schemas, manifests := setupService(t)
	expectSources(schemas, manifests)

	result := svc.Initialize(context.Background(), "Orders")
	assert.True(t, result.Success)
	assert.Equal(t, StageEntitySelected, result.Stage)
	assert.NotNil(t, result.Manifest)
	assert.NotNil(t, result.Table)
	assert.NotNil(t, result.Config)
	assert.Empty(t, result.Config.Validate())
}

func TestService_Initialize_ManifestFailure(t *testing.T) {
	svc, _, manifests := setupService(t)
	manifests.On("GetEntityManifest", mock.Anything, "Orders").
		Return(nil, errors.New("metadata service returned 503"))

	result := svc.Initialize(context.Background(), "Orders")
	assert.False(t, result.Success)
	assert.Equal(t, StageEntitySelected, result.Stage)
	assert.NotEmpty(t, result.Errors)
	assert.Nil(t, result.Config)
}

func TestService_Initialize_FallbackManifestWarns(t *testing.T) {
	svc, schemas, manifests := setupService(t)

	man := manifest.Synthesize("Orders", testTable())
	manifests.On("GetEntityManifest", mock.Anything, "Orders").Return(man, nil)
	schemas.On("ReadTableSchema", mock.Anything, "erp", "orders").Return(testTable(), nil)

	result := svc.Initialize(context.Background(), "Orders")
	assert.True(t, result.Success)
	assert.NotEmpty(t, result.Warnings)
}

func TestService_DetectConflicts(t *testing.T) {
	svc, schemas, manifests := setupService(t)

	man := testManifest()
	man.Fields = append(man.Fields, manifest.FieldManifest{Name: "Email", Type: "string", IsRequired: true})
	manifests.On("GetEntityManifest", mock.Anything, "Orders").Return(man, nil)
	schemas.On("ReadTableSchema", mock.Anything, "erp", "orders").Return(testTable(), nil)

	result := svc.DetectConflicts(context.Background(), "Orders")
	assert.True(t, result.Success)
	assert.Equal(t, StageConflictsDetected, result.Stage)
	assert.Len(t, result.Conflicts, 1)
	assert.Equal(t, reconcile.KindFieldOnlyInManifest, result.Conflicts[0].Kind)
	assert.NotEmpty(t, result.Warnings)
}

func TestService_ResolveConflicts(t *testing.T) {
	svc, schemas, manifests := setupService(t)

	man := testManifest()
	man.Fields = append(man.Fields, manifest.FieldManifest{Name: "Email", Type: "string", IsRequired: true})
	manifests.On("GetEntityManifest", mock.Anything, "Orders").Return(man, nil)
	schemas.On("ReadTableSchema", mock.Anything, "erp", "orders").Return(testTable(), nil)

	t.Run("All Resolved", func(t *testing.T) {
		result := svc.ResolveConflicts(context.Background(), "Orders", map[string]string{
			"field-only-in-manifest:email": string(reconcile.ResolutionUseDatabase),
		})
		assert.True(t, result.Success)
		assert.Equal(t, StageConflictsResolved, result.Stage)
		assert.Empty(t, result.Unresolved)
	})

	t.Run("Missing Resolution", func(t *testing.T) {
		result := svc.ResolveConflicts(context.Background(), "Orders", nil)
		assert.False(t, result.Success)
		assert.Equal(t, StageConflictsDetected, result.Stage)
		assert.Len(t, result.Unresolved, 1)
	})

	t.Run("Unknown Resolution Value", func(t *testing.T) {
		result := svc.ResolveConflicts(context.Background(), "Orders", map[string]string{
			"field-only-in-manifest:email": "flip-a-coin",
		})
		assert.False(t, result.Success)
		assert.NotEmpty(t, result.Errors)
	})

	t.Run("Stale Resolution Warns", func(t *testing.T) {
		result := svc.ResolveConflicts(context.Background(), "Orders", map[string]string{
			"field-only-in-manifest:email": string(reconcile.ResolutionUseDatabase),
			"type-mismatch:ghost":          string(reconcile.ResolutionIgnore),
		})
		assert.True(t, result.Success)
		assert.NotEmpty(t, result.Warnings)
	})
}

func TestService_ValidateConfiguration(t *testing.T) {
	svc, _, _ := setupService(t)

	valid := reconcile.SynthesizeDefaults(testTable(), testManifest())
	result := svc.ValidateConfiguration(valid)
	assert.True(t, result.Success)
	assert.Equal(t, StageConfigValidated, result.Stage)

	invalid := reconcile.SynthesizeDefaults(testTable(), testManifest())
	invalid.EntityID = ""
	result = svc.ValidateConfiguration(invalid)
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Errors)
}

func TestService_SaveAndLoadConfiguration(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	cfg := reconcile.SynthesizeDefaults(testTable(), testManifest())

	saved := svc.SaveConfiguration(ctx, cfg)
	assert.True(t, saved.Success)
	assert.NotEmpty(t, saved.ID)
	assert.NotEmpty(t, saved.Hash)

	loaded := svc.LoadConfiguration(ctx, saved.ID)
	assert.True(t, loaded.Success)
	assert.Equal(t, "Orders", loaded.Config.EntityID)
	assert.Equal(t, saved.Hash, loaded.Config.Hash)
}

func TestService_SaveConfiguration_InvalidNotPersisted(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	result := svc.SaveConfiguration(ctx, &wizard.Config{})
	assert.False(t, result.Success)
	assert.Empty(t, result.ID)

	history := svc.History(ctx, "Orders")
	assert.True(t, history.Success)
	assert.Empty(t, history.Entries)
}

func TestService_LoadConfiguration_NotFound(t *testing.T) {
	svc, _, _ := setupService(t)

	result := svc.LoadConfiguration(context.Background(), "never-saved")
	assert.False(t, result.Success)
	assert.True(t, result.NotFound)
}

func TestService_History(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	cfg := reconcile.SynthesizeDefaults(testTable(), testManifest())
	first := svc.SaveConfiguration(ctx, cfg)
	assert.True(t, first.Success)
	second := svc.SaveConfiguration(ctx, cfg)
	assert.True(t, second.Success)

	result := svc.History(ctx, "Orders")
	assert.True(t, result.Success)
	assert.Len(t, result.Entries, 2)
	assert.Equal(t, second.ID, result.Entries[0].ID)
}

func TestService_Generate(t *testing.T) {
	svc, schemas, manifests := setupService(t)
	expectSources(schemas, manifests)

	cfg := reconcile.SynthesizeDefaults(testTable(), testManifest())

	result := svc.Generate(context.Background(), cfg)
	assert.True(t, result.Success)
	assert.Equal(t, StageDownloaded, result.Stage)
	assert.NotNil(t, result.Generation)
	assert.Len(t, result.Generation.Files, 5)
	assert.NotEmpty(t, result.ArchivePath)

	_, err := os.Stat(result.ArchivePath)
	assert.NoError(t, err)
}

func TestService_Generate_UnresolvedConflictsFail(t *testing.T) {
	svc, schemas, manifests := setupService(t)

	man := testManifest()
	man.Fields = append(man.Fields, manifest.FieldManifest{Name: "Email", Type: "string", IsRequired: true})
	manifests.On("GetEntityManifest", mock.Anything, "Orders").Return(man, nil)
	schemas.On("ReadTableSchema", mock.Anything, "erp", "orders").Return(testTable(), nil)

	cfg := reconcile.SynthesizeDefaults(testTable(), man)
	cfg.Resolutions = nil

	result := svc.Generate(context.Background(), cfg)
	assert.False(t, result.Success)
	assert.Equal(t, StageConfigValidated, result.Stage)
	assert.NotNil(t, result.Generation)
	assert.Len(t, result.Generation.UnresolvedConflicts, 1)
	assert.Empty(t, result.ArchivePath)
}
