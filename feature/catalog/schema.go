package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"catalog-sync/core/database"
	"catalog-sync/core/reconcile"
	"catalog-sync/feature/catalog/models"

	"gorm.io/gorm"
)

// CheckSchema lists the catalog tables and columns missing from the database, as
// "table" or "table.column" entries. An empty result means an import can run.
func CheckSchema(ctx context.Context, db *gorm.DB) ([]string, error) {
	db = db.WithContext(ctx)
	var missing []string

	for _, model := range models.All() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("failed to parse model %T: %w", model, err)
		}
		found, err := checkTable(db, stmt.Schema.Table, stmt.Schema.DBNames)
		if err != nil {
			return nil, err
		}
		missing = append(missing, found...)
	}

	joinTables := make([]string, 0, len(models.JoinTables))
	for table := range models.JoinTables {
		joinTables = append(joinTables, table)
	}
	sort.Strings(joinTables)
	for _, table := range joinTables {
		found, err := checkTable(db, table, models.JoinTables[table])
		if err != nil {
			return nil, err
		}
		missing = append(missing, found...)
	}

	return missing, nil
}

func checkTable(db *gorm.DB, table string, columns []string) ([]string, error) {
	if !db.Migrator().HasTable(table) {
		return []string{table}, nil
	}
	cols, err := database.MissingColumns(db, table, columns)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(cols))
	for _, col := range cols {
		out = append(out, table+"."+col)
	}
	return out, nil
}

func (s *Service) ensureSchema(ctx context.Context) error {
	missing, err := CheckSchema(ctx, s.db)
	if err != nil {
		return &reconcile.StorageError{Op: "schema check", Err: err}
	}
	if len(missing) > 0 {
		return &reconcile.StorageError{
			Op:  "schema check",
			Err: fmt.Errorf("missing %s", strings.Join(missing, ", ")),
		}
	}
	return nil
}

// Schema reports missing catalog tables and columns.
func (s *Service) Schema(ctx context.Context) ([]string, error) {
	return CheckSchema(ctx, s.db)
}
