package reconcile_test

import (
	"context"
	"errors"
	"testing"

	"catalog-sync/core/database"
	"catalog-sync/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type widget struct {
	ID    uint   `gorm:"primaryKey"`
	Code  string `gorm:"size:8;uniqueIndex"`
	Label string
	Count int
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&widget{}))
	return db
}

func TestGormStore(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	store := reconcile.NewGormStore[widget](db, "widget")
	require.NoError(t, store.Create(ctx, &widget{Code: "ABC"}))
	require.NoError(t, store.Create(ctx, &widget{Code: "XYZ"}))

	all, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	scoped := reconcile.NewGormStore[widget](db, "widget", func(tx *gorm.DB) *gorm.DB {
		return tx.Where("code IN ?", []string{"XYZ"})
	})
	some, err := scoped.List(ctx)
	require.NoError(t, err)
	require.Len(t, some, 1)
	assert.Equal(t, "XYZ", some[0].Code)

	err = store.Create(ctx, &widget{Code: "ABC"})
	var storageErr *reconcile.StorageError
	require.True(t, errors.As(err, &storageErr))
	assert.Equal(t, "create", storageErr.Op)
}

func TestGormStore_CacheIntegration(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	require.NoError(t, db.Create(&widget{Code: "ABC"}).Error)

	cache := reconcile.NewLookupCache[widget](reconcile.NewGormStore[widget](db, "widget"),
		func(w *widget) string { return w.Code }, reconcile.CaseInsensitive)
	require.NoError(t, cache.Warm(ctx))

	got, created, err := cache.GetOrCreate(ctx, "abc", func() *widget { return &widget{Code: "ABC"} })
	require.NoError(t, err)
	assert.False(t, created)
	assert.NotZero(t, got.ID)

	_, created, err = cache.GetOrCreate(ctx, "new", func() *widget { return &widget{Code: "NEW"} })
	require.NoError(t, err)
	assert.True(t, created)

	var count int64
	require.NoError(t, db.Model(&widget{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestUpdateOrCreate(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	var w widget
	created, err := reconcile.UpdateOrCreate(ctx, db, &w, map[string]any{"code": "ABC"}, func(w *widget) {
		w.Code = "ABC"
		w.Label = "first"
		w.Count = 3
	})
	require.NoError(t, err)
	assert.True(t, created)
	firstID := w.ID

	var again widget
	created, err = reconcile.UpdateOrCreate(ctx, db, &again, map[string]any{"code": "ABC"}, func(w *widget) {
		w.Code = "ABC"
		w.Label = ""
		w.Count = 0
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, firstID, again.ID)

	var stored widget
	require.NoError(t, db.First(&stored, firstID).Error)
	assert.Equal(t, "", stored.Label, "zero values overwrite")
	assert.Equal(t, 0, stored.Count)
}
