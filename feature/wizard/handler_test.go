package wizard

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	manifestmocks "scaffold-wizard/core/manifest/mocks"
	"scaffold-wizard/core/reconcile"
	schemamocks "scaffold-wizard/core/schema/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestApp(t *testing.T) (*fiber.App, *schemamocks.Source, *manifestmocks.Source) {
	app := fiber.New()
	svc, schemas, manifests := setupService(t)
	handler := NewHandler(svc)
	handler.RegisterRoutes(app)
	return app, schemas, manifests
}

func TestHandleInitialize(t *testing.T) {
	app, schemas, manifests := setupTestApp(t)
	expectSources(schemas, manifests)

	req := httptest.NewRequest("POST", "/wizard/entities/Orders/initialize", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body InitializeResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Equal(t, StageEntitySelected, body.Stage)
	assert.Equal(t, "Orders", body.Config.EntityID)
}

func TestHandleDetectConflicts(t *testing.T) {
	app, schemas, manifests := setupTestApp(t)
	expectSources(schemas, manifests)

	req := httptest.NewRequest("GET", "/wizard/entities/Orders/conflicts", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body ConflictResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Empty(t, body.Conflicts)
}

func TestHandleResolveConflicts_BadBody(t *testing.T) {
	app, _, _ := setupTestApp(t)

	req := httptest.NewRequest("POST", "/wizard/entities/Orders/resolve", bytes.NewBufferString("{nope"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHandleSaveAndLoad(t *testing.T) {
	app, _, _ := setupTestApp(t)

	cfg := reconcile.SynthesizeDefaults(testTable(), testManifest())
	payload, err := json.Marshal(cfg)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/wizard/configs", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var saved SaveResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&saved))
	assert.True(t, saved.Success)
	require.NotEmpty(t, saved.ID)

	req = httptest.NewRequest("GET", "/wizard/configs/"+saved.ID, nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var loaded LoadResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&loaded))
	assert.True(t, loaded.Success)
	assert.Equal(t, "Orders", loaded.Config.EntityID)
}

func TestHandleLoad_NotFound(t *testing.T) {
	app, _, _ := setupTestApp(t)

	req := httptest.NewRequest("GET", "/wizard/configs/never-saved", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	var body LoadResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.True(t, body.NotFound)
}

func TestHandleHistory(t *testing.T) {
	app, _, _ := setupTestApp(t)

	req := httptest.NewRequest("GET", "/wizard/entities/Orders/history", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body HistoryResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Empty(t, body.Entries)
}

func TestHandleGenerate(t *testing.T) {
	app, schemas, manifests := setupTestApp(t)
	expectSources(schemas, manifests)

	cfg := reconcile.SynthesizeDefaults(testTable(), testManifest())
	payload, err := json.Marshal(cfg)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/wizard/generate", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body GenerateResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Equal(t, StageDownloaded, body.Stage)
	assert.Len(t, body.Generation.Files, 5)
}
