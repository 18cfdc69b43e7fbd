package checks

import (
	"fmt"
	"sort"
	"strings"

	"catalog-sync/core/database"

	"gorm.io/gorm"
)

// DatabaseReport strictly types the result of a database integrity check.
type DatabaseReport struct {
	Driver  string                 `json:"driver"`
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

// TableReport is the outcome for one table.
type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	TypeMismatches []string `json:"type_mismatches"`
	Status         string   `json:"status"` // "ok", "missing", "error"
}

type expectedColumn struct {
	name    string
	sqlType string
}

// CheckDatabase verifies the database schema using the GORM models as the source of
// truth. joinTables lists many-to-many tables and their columns, which have no model.
func CheckDatabase(db *gorm.DB, models []any, joinTables map[string][]string) (*DatabaseReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &DatabaseReport{
		Driver:  db.Dialector.Name(),
		Matched: true,
		Tables:  make(map[string]TableReport),
		Errors:  []string{},
	}

	for _, model := range models {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("failed to parse model %T: %w", model, err)
		}

		var cols []expectedColumn
		for _, field := range stmt.Schema.Fields {
			if field.DBName == "" {
				continue
			}
			cols = append(cols, expectedColumn{name: field.DBName, sqlType: strings.ToLower(field.TagSettings["TYPE"])})
		}
		checkTable(db, report, stmt.Schema.Table, cols)
	}

	names := make([]string, 0, len(joinTables))
	for name := range joinTables {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cols := make([]expectedColumn, 0, len(joinTables[name]))
		for _, col := range joinTables[name] {
			cols = append(cols, expectedColumn{name: col})
		}
		checkTable(db, report, name, cols)
	}

	return report, nil
}

// checkTable reports on one table. The migrator's table lookup has no error result,
// so a failed lookup is reported as a missing table.
func checkTable(db *gorm.DB, report *DatabaseReport, table string, expected []expectedColumn) {
	tblReport := TableReport{
		MissingColumns: []string{},
		TypeMismatches: []string{},
		Status:         "ok",
	}

	if !db.Migrator().HasTable(table) {
		tblReport.Status = "missing"
		report.Tables[table] = tblReport
		report.Matched = false
		return
	}

	actualCols, err := database.GetTableColumns(db, table)
	if err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", table, err))
		report.Matched = false
		return
	}

	actual := make(map[string]database.ColumnInfo, len(actualCols))
	for _, col := range actualCols {
		actual[col.Field] = col
	}

	for _, col := range expected {
		act, ok := actual[col.name]
		if !ok {
			tblReport.MissingColumns = append(tblReport.MissingColumns, col.name)
			tblReport.Status = "error"
			report.Matched = false
			continue
		}
		// Only columns with an explicit type tag are compared, and only loosely.
		if col.sqlType != "" && !strings.Contains(act.Type, col.sqlType) {
			tblReport.TypeMismatches = append(tblReport.TypeMismatches,
				fmt.Sprintf("%s: expected %s, got %s", col.name, col.sqlType, act.Type))
			tblReport.Status = "error"
			report.Matched = false
		}
	}

	report.Tables[table] = tblReport
}
