package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSQLite(t *testing.T) {
	db, err := NewSQLite(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE t (id TEXT PRIMARY KEY)`)
	require.NoError(t, err)

	// the sqlite driver name binds '?' placeholders
	_, err = db.Exec(db.Rebind(`INSERT INTO t (id) VALUES (?)`), "a")
	require.NoError(t, err)

	var n int
	require.NoError(t, db.Get(&n, `SELECT COUNT(*) FROM t`))
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, db.Stats().MaxOpenConnections)
}
