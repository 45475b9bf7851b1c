package migrations

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationVersion(t *testing.T) {
	v, err := MigrationVersion("migrations/001_init.sql")
	require.NoError(t, err)
	assert.Equal(t, "001", v)

	_, err = MigrationVersion("init.sql")
	assert.Error(t, err)
	_, err = MigrationVersion("002_notes.txt")
	assert.Error(t, err)
}

func TestPendingFiles_SortedSQLOnly(t *testing.T) {
	fsys := fstest.MapFS{
		"002_holidays.sql": {Data: []byte("SELECT 2;")},
		"001_init.sql":     {Data: []byte("SELECT 1;")},
		"README.md":        {Data: []byte("docs")},
		"archive/000.sql":  {Data: []byte("SELECT 0;")},
	}

	files, err := PendingFiles(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_init.sql", "002_holidays.sql"}, files)
}
