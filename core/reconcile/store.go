package reconcile

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// GormStore implements Store over a gorm handle, usually the run's transaction.
type GormStore[T any] struct {
	db     *gorm.DB
	entity string
	scopes []func(*gorm.DB) *gorm.DB
}

// NewGormStore creates a store for entity rows. Scopes restrict what List returns.
func NewGormStore[T any](db *gorm.DB, entity string, scopes ...func(*gorm.DB) *gorm.DB) *GormStore[T] {
	return &GormStore[T]{db: db, entity: entity, scopes: scopes}
}

// List returns every row matching the store's scopes.
func (s *GormStore[T]) List(ctx context.Context) ([]*T, error) {
	var out []*T
	if err := s.db.WithContext(ctx).Scopes(s.scopes...).Find(&out).Error; err != nil {
		return nil, &StorageError{Op: "list", Entity: s.entity, Err: err}
	}
	return out, nil
}

// Create inserts entity.
func (s *GormStore[T]) Create(ctx context.Context, entity *T) error {
	if err := s.db.WithContext(ctx).Create(entity).Error; err != nil {
		return &StorageError{Op: "create", Entity: s.entity, Err: err}
	}
	return nil
}

// UpdateOrCreate loads the row matching where into dest and overwrites it with apply,
// or creates it from apply when no row matches. apply must set the natural key fields.
func UpdateOrCreate[T any](ctx context.Context, db *gorm.DB, dest *T, where map[string]any, apply func(*T)) (bool, error) {
	entity := fmt.Sprintf("%T", dest)
	err := db.WithContext(ctx).Where(where).Take(dest).Error
	switch {
	case err == nil:
		apply(dest)
		if err := db.WithContext(ctx).Save(dest).Error; err != nil {
			return false, &StorageError{Op: "update", Entity: entity, Err: err}
		}
		return false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		apply(dest)
		if err := db.WithContext(ctx).Create(dest).Error; err != nil {
			return false, &StorageError{Op: "create", Entity: entity, Err: err}
		}
		return true, nil
	default:
		return false, &StorageError{Op: "lookup", Entity: entity, Err: err}
	}
}
