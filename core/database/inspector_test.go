package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTableColumns(t *testing.T) {
	db, err := Connect(Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE artists (id INTEGER PRIMARY KEY, full_name TEXT NOT NULL, bio TEXT)").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "artists")
	require.NoError(t, err)
	require.Len(t, columns, 3)

	byName := make(map[string]ColumnInfo)
	for _, col := range columns {
		byName[col.Field] = col
	}

	assert.Equal(t, "integer", byName["id"].Type)
	assert.Equal(t, "text", byName["full_name"].Type)
	assert.Equal(t, "NO", byName["full_name"].Null)
	assert.Equal(t, "YES", byName["bio"].Null)

	// PRAGMA table_info yields nothing for an unknown table.
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestMissingColumns(t *testing.T) {
	db, err := Connect(Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE sets (id INTEGER PRIMARY KEY, code TEXT, name TEXT)").Error)

	missing, err := MissingColumns(db, "sets", []string{"id", "code", "icon_uri", "name", "digital"})
	require.NoError(t, err)
	assert.Equal(t, []string{"icon_uri", "digital"}, missing)

	missing, err = MissingColumns(db, "sets", []string{"ID", "Code"})
	require.NoError(t, err)
	assert.Empty(t, missing)
}
