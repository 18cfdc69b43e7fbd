package reconcile

import (
	"context"
	"strings"
)

// Store is the persistence port a LookupCache warms from and creates through.
type Store[T any] interface {
	// List returns every existing entity visible to the cache.
	List(ctx context.Context) ([]*T, error)
	// Create persists a new entity, filling its surrogate key.
	Create(ctx context.Context, entity *T) error
}

// KeyNormalizer maps a natural key to the form used for cache lookups.
type KeyNormalizer func(string) string

var (
	// CaseInsensitive folds keys to lower case.
	CaseInsensitive KeyNormalizer = strings.ToLower
	// Exact leaves keys untouched.
	Exact KeyNormalizer = func(key string) string { return key }
)

// LookupCache mediates find-or-create decisions for one entity type during a run.
// It is not safe for concurrent use; a run owns its caches.
type LookupCache[T any] struct {
	store     Store[T]
	keyOf     func(*T) string
	normalize KeyNormalizer
	items     map[string]*T
	created   int
}

// NewLookupCache creates an empty cache. keyOf extracts the natural key of a stored entity.
func NewLookupCache[T any](store Store[T], keyOf func(*T) string, normalize KeyNormalizer) *LookupCache[T] {
	if normalize == nil {
		normalize = CaseInsensitive
	}
	return &LookupCache[T]{
		store:     store,
		keyOf:     keyOf,
		normalize: normalize,
		items:     make(map[string]*T),
	}
}

// Warm loads every entity the store lists. Existing entries are replaced.
func (c *LookupCache[T]) Warm(ctx context.Context) error {
	entities, err := c.store.List(ctx)
	if err != nil {
		return err
	}
	for _, entity := range entities {
		c.items[c.normalize(c.keyOf(entity))] = entity
	}
	return nil
}

// Get returns the cached entity for key without touching storage.
func (c *LookupCache[T]) Get(key string) (*T, bool) {
	entity, ok := c.items[c.normalize(key)]
	return entity, ok
}

// GetOrCreate returns the cached entity for key. On a miss it persists the entity
// returned by build and caches it, so each key is created at most once per cache.
func (c *LookupCache[T]) GetOrCreate(ctx context.Context, key string, build func() *T) (*T, bool, error) {
	k := c.normalize(key)
	if entity, ok := c.items[k]; ok {
		return entity, false, nil
	}

	entity := build()
	if err := c.store.Create(ctx, entity); err != nil {
		return nil, false, err
	}
	c.items[k] = entity
	c.created++
	return entity, true, nil
}

// Len returns the number of cached entities.
func (c *LookupCache[T]) Len() int {
	return len(c.items)
}

// Created returns how many entities this cache has persisted.
func (c *LookupCache[T]) Created() int {
	return c.created
}
