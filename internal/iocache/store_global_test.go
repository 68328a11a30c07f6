package iocache

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/huangsam/voltview/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitAndCloseStore(t *testing.T) {
	initOnce = sync.Once{}
	closeOnce = sync.Once{}
	Manager = &RecordStoreManager{}

	dbPath := filepath.Join(t.TempDir(), "global.db")
	require.NoError(t, InitStore(schema.SQLiteBackend, dbPath))
	require.NotNil(t, Manager.GetRecordStore())

	status, err := Manager.GetRecordStore().GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)

	CloseStore()
	require.NoError(t, ClearStore(schema.SQLiteBackend, dbPath, ""))
	_, err = os.Stat(dbPath)
	assert.True(t, os.IsNotExist(err))
}

func TestClearStore(t *testing.T) {
	assert.NoError(t, ClearStore(schema.NoneBackend, "", ""))
	assert.Error(t, ClearStore(schema.SQLiteBackend, "", ""))
	assert.NoError(t, ClearStore(schema.SQLiteBackend, filepath.Join(t.TempDir(), "missing.db"), ""))
	assert.Error(t, ClearStore("oracle", "", ""))
}

func TestMigrateStoreSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate.db")
	var out bytes.Buffer

	require.NoError(t, MigrateStore(schema.SQLiteBackend, dbPath, -1, &out))
	assert.Contains(t, out.String(), "to version 2")

	out.Reset()
	require.NoError(t, MigrateStore(schema.SQLiteBackend, dbPath, -1, &out))
	assert.Contains(t, out.String(), "No migration needed")

	out.Reset()
	require.NoError(t, MigrateStore(schema.SQLiteBackend, dbPath, 1, &out))
	assert.Contains(t, out.String(), "from version 2 to version 1")

	// The migrated schema is usable by the store.
	store, err := NewRecordStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	out.Reset()
	require.NoError(t, MigrateStore(schema.SQLiteBackend, dbPath, 0, &out))
}

func TestMigrateStoreUnsupported(t *testing.T) {
	assert.Error(t, MigrateStore(schema.NoneBackend, "", -1, &bytes.Buffer{}))
}
