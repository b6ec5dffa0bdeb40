package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetTableColumns(t *testing.T) {
	// Setup In-Memory DB
	cfg := Config{
		Driver: "sqlite",
		Name:   ":memory:",
	}
	db, err := Connect(cfg)
	assert.NoError(t, err)
	assert.NotNil(t, db)

	// Create a test table
	err = db.Exec("CREATE TABLE restaurants (id INTEGER PRIMARY KEY, name TEXT, logo_public_id TEXT, banner_public_id TEXT, gallery TEXT)").Error
	assert.NoError(t, err)

	columns, err := GetTableColumns(db, "restaurants")
	assert.NoError(t, err)
	assert.Len(t, columns, 5)

	colMap := make(map[string]string)
	for _, col := range columns {
		colMap[col.Field] = col.Type
	}

	assert.Equal(t, "integer", colMap["id"])
	assert.Equal(t, "text", colMap["logo_public_id"])
	assert.Equal(t, "text", colMap["gallery"])

	// Non-existent table: PRAGMA table_info returns an empty set, not an error
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestMissingColumns(t *testing.T) {
	cfg := Config{
		Driver: "sqlite",
		Name:   ":memory:",
	}
	db, err := Connect(cfg)
	assert.NoError(t, err)

	err = db.Exec("CREATE TABLE menus (id INTEGER PRIMARY KEY, image_public_id TEXT)").Error
	assert.NoError(t, err)

	missing, err := MissingColumns(db, "menus", "image_public_id")
	assert.NoError(t, err)
	assert.Empty(t, missing)

	missing, err = MissingColumns(db, "menus", "image_public_id", "banner_public_id")
	assert.NoError(t, err)
	assert.Equal(t, []string{"banner_public_id"}, missing)
}
