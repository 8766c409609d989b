package database

import (
	"testing"

	migrate "github.com/rubenv/sql-migrate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationSource_EmbeddedHasMeetingsTable(t *testing.T) {
	found, err := MigrationSource("").FindMigrations()
	require.NoError(t, err)
	require.NotEmpty(t, found)

	first := found[0]
	assert.Equal(t, "20250301000001_create_meetings.sql", first.Id)
	require.NotEmpty(t, first.Up)
	assert.Contains(t, first.Up[0], "CREATE TABLE IF NOT EXISTS meetings")
	require.NotEmpty(t, first.Down)
	assert.Contains(t, first.Down[0], "DROP TABLE IF EXISTS meetings")
}

func TestMigrationSource_Directory(t *testing.T) {
	src := MigrationSource("db/migrations")
	fileSrc, ok := src.(*migrate.FileMigrationSource)
	require.True(t, ok)
	assert.Equal(t, "db/migrations", fileSrc.Dir)
}

func TestMigrate_UnknownDirection(t *testing.T) {
	_, err := migrateSQL(nil, MigrationSource(""), Direction("sideways"), 0, nil)
	assert.ErrorContains(t, err, "unknown migration direction")
}
