package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppliesSchema(t *testing.T) {
	db, err := New(Config{
		Path:    filepath.Join(t.TempDir(), "records.db"),
		Profile: ProfileStandard,
		Name:    "records",
	})
	require.NoError(t, err)
	defer db.Close()

	// Schema must be in place after New
	var count int
	err = db.Conn().QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='startups'",
	).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMigrateIsIdempotent(t *testing.T) {
	db, err := New(Config{
		Path:    filepath.Join(t.TempDir(), "cache.db"),
		Profile: ProfileCache,
		Name:    "cache",
	})
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Migrate())
	require.NoError(t, db.Migrate())
}

func TestUnknownDatabaseSkipsMigration(t *testing.T) {
	db, err := New(Config{
		Path: filepath.Join(t.TempDir(), "other.db"),
		Name: "other",
	})
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, ProfileStandard, db.Profile())
	assert.Equal(t, "other", db.Name())
}
