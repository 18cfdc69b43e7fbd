package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// UnitOfWork runs fn inside one transaction. The transaction commits only when fn
// returns nil; any error or panic rolls it back.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// GormUnitOfWork is the gorm-backed UnitOfWork.
type GormUnitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork creates a UnitOfWork over db.
func NewUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

// Do begins a transaction, runs fn and commits.
func (u *GormUnitOfWork) Do(ctx context.Context, fn func(tx *gorm.DB) error) (err error) {
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback().Error; rbErr != nil && err != nil {
			err = fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	committed = true
	return nil
}
