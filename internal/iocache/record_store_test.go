package iocache

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/voltview/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T) *RecordStoreImpl {
	t.Helper()
	store, err := NewRecordStore(schema.SQLiteBackend, filepath.Join(t.TempDir(), "telemetry.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func telemetry() []schema.Record {
	return []schema.Record{
		{schema.TimestampField: "2023-01-01T00:00:20", "voltaje": 122.0},
		{schema.TimestampField: "2023-01-01T00:00:00", "voltaje": 120.0, "corriente": 1.5},
		{schema.TimestampField: "2023-01-01T00:00:10", "voltaje": 121.0},
		{schema.TimestampField: "not a time", "voltaje": 1.0},
	}
}

func TestRecordStoreInsertAndAll(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()

	n, err := store.Insert(ctx, telemetry())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// Re-importing the same timestamps is a no-op.
	n, err = store.Insert(ctx, telemetry())
	require.NoError(t, err)
	assert.Zero(t, n)

	all, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2023-01-01T00:00:00", all[0].Timestamp())
	assert.Equal(t, 1.5, all[0]["corriente"])
	assert.Equal(t, "2023-01-01T00:00:20", all[2].Timestamp())
}

func TestRecordStoreBetween(t *testing.T) {
	store := newSQLiteStore(t)
	ctx := context.Background()
	_, err := store.Insert(ctx, telemetry())
	require.NoError(t, err)

	start := time.Date(2023, 1, 1, 0, 0, 5, 0, time.UTC)
	end := time.Date(2023, 1, 1, 0, 0, 15, 0, time.UTC)
	got, err := store.Between(ctx, start, end)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 121.0, got[0]["voltaje"])
}

func TestRecordStoreStatus(t *testing.T) {
	store := newSQLiteStore(t)
	store.now = func() time.Time { return time.Unix(1700000000, 0) }

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Zero(t, status.TotalRecords)

	_, err = store.Insert(context.Background(), telemetry())
	require.NoError(t, err)

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", status.Backend)
	assert.Equal(t, 3, status.TotalRecords)
	assert.Equal(t, "2023-01-01T00:00:00", status.FirstRecordTime)
	assert.Equal(t, "2023-01-01T00:00:20", status.LastRecordTime)
	assert.Equal(t, int64(1700000000), status.LastImportTime.Unix())
	assert.Positive(t, status.TableSizeBytes)

	var buf strings.Builder
	PrintStoreStatus(&buf, status)
	assert.Contains(t, buf.String(), "Total Records: 3")
}

func TestRecordStoreNoneBackend(t *testing.T) {
	store, err := NewRecordStore(schema.NoneBackend, "")
	require.NoError(t, err)

	n, err := store.Insert(context.Background(), telemetry())
	require.NoError(t, err)
	assert.Zero(t, n)

	all, err := store.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)
	assert.NoError(t, store.Close())
}

func TestNewRecordStoreErrors(t *testing.T) {
	_, err := NewRecordStore("oracle", "")
	assert.Error(t, err)
}

func TestGetInsertQuery(t *testing.T) {
	tests := []struct {
		backend schema.DatabaseBackend
		want    string
	}{
		{schema.SQLiteBackend, "INSERT OR IGNORE"},
		{schema.MySQLBackend, "INSERT IGNORE"},
		{schema.PostgreSQLBackend, "ON CONFLICT (recorded_at) DO NOTHING"},
	}
	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			rs := &RecordStoreImpl{tableName: recordsTable, backend: tt.backend}
			assert.Contains(t, rs.getInsertQuery(), tt.want)
		})
	}
}

func TestGetBetweenQueryPlaceholders(t *testing.T) {
	pg := &RecordStoreImpl{tableName: recordsTable, backend: schema.PostgreSQLBackend}
	assert.Contains(t, pg.getBetweenQuery(), "$2")

	my := &RecordStoreImpl{tableName: recordsTable, backend: schema.MySQLBackend}
	assert.Contains(t, my.getBetweenQuery(), "`telemetry_records`")
	assert.NotContains(t, my.getBetweenQuery(), "$1")
}

func TestValidateTableName(t *testing.T) {
	assert.NoError(t, validateTableName("telemetry_records"))
	assert.Error(t, validateTableName(""))
	assert.Error(t, validateTableName("records; DROP TABLE x"))
	assert.Error(t, validateTableName("1records"))
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`t`", quoteTableName("t", schema.MySQLBackend))
	assert.Equal(t, `"t"`, quoteTableName("t", schema.PostgreSQLBackend))
	assert.Equal(t, `"t"`, quoteTableName("t", schema.SQLiteBackend))
}
