package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tag struct {
	ID   int
	Name string
}

// memoryStore is an in-memory Store that counts round-trips.
type memoryStore struct {
	rows      []*tag
	lists     int
	creates   int
	createErr error
}

func (m *memoryStore) List(ctx context.Context) ([]*tag, error) {
	m.lists++
	return m.rows, nil
}

func (m *memoryStore) Create(ctx context.Context, t *tag) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.creates++
	t.ID = len(m.rows) + 1
	m.rows = append(m.rows, t)
	return nil
}

func tagName(t *tag) string { return t.Name }

func TestLookupCache_WarmAndGet(t *testing.T) {
	store := &memoryStore{rows: []*tag{{ID: 1, Name: "Showcase"}, {ID: 2, Name: "extendedart"}}}
	cache := NewLookupCache[tag](store, tagName, CaseInsensitive)

	require.NoError(t, cache.Warm(context.Background()))
	assert.Equal(t, 2, cache.Len())
	assert.Equal(t, 1, store.lists)

	got, ok := cache.Get("SHOWCASE")
	require.True(t, ok)
	assert.Equal(t, 1, got.ID)

	_, ok = cache.Get("missing")
	assert.False(t, ok)
}

func TestLookupCache_GetOrCreate_CreatesOncePerKey(t *testing.T) {
	store := &memoryStore{}
	cache := NewLookupCache[tag](store, tagName, CaseInsensitive)
	ctx := context.Background()

	build := func(name string) func() *tag {
		return func() *tag { return &tag{Name: name} }
	}

	first, created, err := cache.GetOrCreate(ctx, "Nyxtouched", build("Nyxtouched"))
	require.NoError(t, err)
	assert.True(t, created)

	for _, key := range []string{"nyxtouched", "NYXTOUCHED", "Nyxtouched"} {
		again, created, err := cache.GetOrCreate(ctx, key, build(key))
		require.NoError(t, err)
		assert.False(t, created)
		assert.Same(t, first, again)
	}

	assert.Equal(t, 1, store.creates)
	assert.Equal(t, 1, cache.Created())
	assert.Equal(t, "Nyxtouched", first.Name)
}

func TestLookupCache_ExactKeys(t *testing.T) {
	store := &memoryStore{}
	cache := NewLookupCache[tag](store, tagName, Exact)
	ctx := context.Background()

	_, _, err := cache.GetOrCreate(ctx, "Rebecca Guay", func() *tag { return &tag{Name: "Rebecca Guay"} })
	require.NoError(t, err)
	_, created, err := cache.GetOrCreate(ctx, "rebecca guay", func() *tag { return &tag{Name: "rebecca guay"} })
	require.NoError(t, err)

	assert.True(t, created)
	assert.Equal(t, 2, store.creates)
}

func TestLookupCache_CreateError(t *testing.T) {
	store := &memoryStore{createErr: errors.New("disk full")}
	cache := NewLookupCache[tag](store, tagName, nil)

	got, created, err := cache.GetOrCreate(context.Background(), "x", func() *tag { return &tag{Name: "x"} })
	assert.Error(t, err)
	assert.Nil(t, got)
	assert.False(t, created)
	assert.Equal(t, 0, cache.Len())
}
