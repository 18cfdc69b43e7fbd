package integrity

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"catalog-sync/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupTestApp(t *testing.T, client *mocks.Client, db *gorm.DB) *fiber.App {
	app := fiber.New()
	var svc *Service
	if client == nil {
		svc = NewService(nil, "catalog", "snapshots", db, zap.NewNop())
	} else {
		svc = NewService(client, "catalog", "snapshots", db, zap.NewNop())
	}
	NewHandler(svc).RegisterRoutes(app)
	return app
}

func getJSON(t *testing.T, app *fiber.App, target string) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", target, nil), -1)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestHandleDatabaseCheck(t *testing.T) {
	app := setupTestApp(t, nil, setupDB(t, false))

	status, body := getJSON(t, app, "/integrity/database")
	assert.Equal(t, 200, status)
	assert.Equal(t, false, body["matched"])
	assert.Equal(t, "sqlite", body["driver"])
}

func TestHandleDatabaseCheck_NoDatabase(t *testing.T) {
	app := setupTestApp(t, nil, nil)

	status, body := getJSON(t, app, "/integrity/database")
	assert.Equal(t, 500, status)
	assert.NotEmpty(t, body["error"])
}

func TestHandleArchiveCheck(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		app := setupTestApp(t, nil, nil)
		status, _ := getJSON(t, app, "/integrity/archive")
		assert.Equal(t, 404, status)
	})

	t.Run("missing bucket", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "catalog").Return(false, nil)
		app := setupTestApp(t, mockClient, nil)

		status, body := getJSON(t, app, "/integrity/archive")
		assert.Equal(t, 200, status)
		assert.Equal(t, false, body["bucket_exists"])
		mockClient.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("fix", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "catalog").Return(false, nil)
		mockClient.On("MakeBucket", mock.Anything, "catalog", mock.Anything).Return(nil)
		app := setupTestApp(t, mockClient, nil)

		status, body := getJSON(t, app, "/integrity/archive?fix=true")
		assert.Equal(t, 200, status)
		assert.Equal(t, true, body["bucket_exists"])
		mockClient.AssertExpectations(t)
	})

	t.Run("fix fails", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "catalog").Return(false, nil)
		mockClient.On("MakeBucket", mock.Anything, "catalog", mock.Anything).Return(assert.AnError)
		app := setupTestApp(t, mockClient, nil)

		status, body := getJSON(t, app, "/integrity/archive?fix=true")
		assert.Equal(t, 500, status)
		assert.Equal(t, "Failed to create bucket", body["error"])
	})

	t.Run("storage error", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "catalog").Return(false, assert.AnError)
		app := setupTestApp(t, mockClient, nil)

		status, _ := getJSON(t, app, "/integrity/archive")
		assert.Equal(t, 500, status)
	})
}

func TestHandleIntegrityCheck(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("BucketExists", mock.Anything, "catalog").Return(false, assert.AnError)
	app := setupTestApp(t, mockClient, setupDB(t, true))

	status, body := getJSON(t, app, "/integrity")
	assert.Equal(t, 200, status)

	db, ok := body["database"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, db["matched"])

	archive, ok := body["archive"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "error", archive["status"])
}

func TestHandleIntegrityCheck_ArchiveDisabled(t *testing.T) {
	app := setupTestApp(t, nil, setupDB(t, true))

	_, body := getJSON(t, app, "/integrity")
	archive := body["archive"].(map[string]any)
	assert.Equal(t, "disabled", archive["status"])
}
