package catalog_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"catalog-sync/core/database"
	"catalog-sync/core/reconcile"
	"catalog-sync/core/scryfall"
	"catalog-sync/feature/catalog"
	"catalog-sync/feature/catalog/mocks"
	"catalog-sync/feature/catalog/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupApp(t *testing.T, client *mocks.CatalogClient, migrate bool) *fiber.App {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	if migrate {
		require.NoError(t, db.AutoMigrate(models.All()...))
	}

	feature := catalog.NewFeature(catalog.NewService(client, db, zap.NewNop(), nil, false))
	require.True(t, feature.IsEnabled())
	assert.Equal(t, "catalog", feature.Name())

	app := fiber.New()
	require.NoError(t, feature.Load(app))
	return app
}

func feedClient(cards []scryfall.CardRecord, cardsErr error) *mocks.CatalogClient {
	name := "Test Set"
	client := new(mocks.CatalogClient)
	client.On("FetchSets", mock.Anything).Return([]scryfall.SetRecord{{ID: "set-abc", Code: "ABC", Name: name}}, nil)
	client.On("FetchCatalog", mock.Anything).Return(cards, cardsErr)
	return client
}

func testCard(id, name string) scryfall.CardRecord {
	set, rarity := "abc", "common"
	return scryfall.CardRecord{
		CardFace: scryfall.CardFace{Name: &name},
		ID:       &id,
		Set:      &set,
		Layout:   "normal",
		Rarity:   &rarity,
	}
}

func decode(t *testing.T, body io.Reader) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func TestHandleImport(t *testing.T) {
	app := setupApp(t, feedClient([]scryfall.CardRecord{testCard("ext-1", "Test Card")}, nil), true)

	req := httptest.NewRequest("POST", "/catalog/import", strings.NewReader(`{"sets":["abc"]}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decode(t, resp.Body)
	assert.Equal(t, "ABC", body["scope"])
	assert.Equal(t, 1.0, body["sets"])
	assert.Equal(t, 1.0, body["cards"])
	assert.Equal(t, 1.0, body["printings"])
}

func TestHandleImport_EmptyBodyImportsAll(t *testing.T) {
	app := setupApp(t, feedClient([]scryfall.CardRecord{testCard("ext-1", "Test Card")}, nil), true)

	resp, err := app.Test(httptest.NewRequest("POST", "/catalog/import", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "all", decode(t, resp.Body)["scope"])
}

func TestHandleImport_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		cardsErr error
		migrate  bool
		status   int
	}{
		{name: "bad body", body: `{"sets":`, migrate: true, status: fiber.StatusBadRequest},
		{name: "unknown set", body: `{"sets":["zzz"]}`, migrate: true, status: fiber.StatusUnprocessableEntity},
		{name: "upstream failure", body: `{}`, cardsErr: &reconcile.FetchError{Status: 500}, migrate: true, status: fiber.StatusBadGateway},
		{name: "schema missing", body: `{}`, migrate: false, status: fiber.StatusInternalServerError},
		{name: "unexpected error", body: `{}`, cardsErr: errors.New("boom"), migrate: true, status: fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := setupApp(t, feedClient([]scryfall.CardRecord{}, tt.cardsErr), tt.migrate)

			req := httptest.NewRequest("POST", "/catalog/import", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.NotEmpty(t, decode(t, resp.Body)["error"])
		})
	}
}

func TestHandleSummary(t *testing.T) {
	app := setupApp(t, feedClient([]scryfall.CardRecord{testCard("ext-1", "Test Card")}, nil), true)

	resp, err := app.Test(httptest.NewRequest("POST", "/catalog/import", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/catalog/summary", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decode(t, resp.Body)
	assert.Equal(t, 1.0, body["sets"])
	assert.Equal(t, 1.0, body["printings"])
	assert.Equal(t, 0.0, body["orphan_printings"])
}

func TestHandleSchema(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		app := setupApp(t, new(mocks.CatalogClient), true)
		resp, err := app.Test(httptest.NewRequest("GET", "/catalog/schema", nil), -1)
		require.NoError(t, err)
		body := decode(t, resp.Body)
		assert.Equal(t, true, body["ready"])
		assert.Empty(t, body["missing"])
	})

	t.Run("missing", func(t *testing.T) {
		app := setupApp(t, new(mocks.CatalogClient), false)
		resp, err := app.Test(httptest.NewRequest("GET", "/catalog/schema", nil), -1)
		require.NoError(t, err)
		body := decode(t, resp.Body)
		assert.Equal(t, false, body["ready"])
		assert.Contains(t, body["missing"], "printings")
	})
}
