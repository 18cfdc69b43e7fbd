// Package database handles database connections, transactions and schema inspection.
//
// It wraps GORM to open mysql, postgres or sqlite connections from the application's
// configuration. sqlite is used for tests and local runs.
//
// # Unit of work
//
// UnitOfWork is the transaction boundary of an import. Do commits only when the callback
// returns nil; errors and panics roll back, so a failed run leaves the store as it was.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns read the live table definitions. The catalog feature
// uses them to refuse an import when the schema lacks expected columns.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    return err
//	}
//
//	err = database.NewUnitOfWork(db).Do(ctx, func(tx *gorm.DB) error {
//	    return tx.Create(&row).Error
//	})
package database
