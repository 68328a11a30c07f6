package iocache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/huangsam/voltview/internal/contract"
	"github.com/huangsam/voltview/schema"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// RecordStoreImpl stores telemetry records using various database backends.
type RecordStoreImpl struct {
	db        *sql.DB
	tableName string
	backend   schema.DatabaseBackend
	connStr   string
	now       func() time.Time
}

var _ contract.RecordStore = &RecordStoreImpl{} // Compile-time check

// NewRecordStore opens the backend and ensures the records table exists.
func NewRecordStore(backend schema.DatabaseBackend, connStr string) (*RecordStoreImpl, error) {
	var db *sql.DB
	var err error

	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = GetDBFilePath()
		}
		db, err = sql.Open(driverFor(backend), dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite store at %q: %w. Ensure the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		// connStr should be: user:password@tcp(host:port)/dbname
		db, err = sql.Open(driverFor(backend), connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MySQL store: %w. Check connection format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		// connStr should be: host=localhost port=5432 user=postgres password=secret dbname=voltview
		db, err = sql.Open(driverFor(backend), connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL store: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	case schema.NoneBackend:
		return &RecordStoreImpl{tableName: recordsTable, backend: backend, connStr: connStr, now: time.Now}, nil

	default:
		return nil, fmt.Errorf("unsupported store backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}

	if _, err := db.Exec(getCreateTableQuery(recordsTable, backend)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", recordsTable, err)
	}

	return &RecordStoreImpl{
		db:        db,
		tableName: recordsTable,
		backend:   backend,
		connStr:   connStr,
		now:       time.Now,
	}, nil
}

// getCreateTableQuery returns the CREATE TABLE query for the given backend.
func getCreateTableQuery(tableName string, backend schema.DatabaseBackend) string {
	quoted := quoteTableName(tableName, backend)
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id BIGINT AUTO_INCREMENT PRIMARY KEY,
				recorded_at VARCHAR(19) NOT NULL UNIQUE,
				payload TEXT NOT NULL,
				imported_at BIGINT NOT NULL
			);
		`, quoted)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id BIGSERIAL PRIMARY KEY,
				recorded_at VARCHAR(19) NOT NULL UNIQUE,
				payload TEXT NOT NULL,
				imported_at BIGINT NOT NULL
			);
		`, quoted)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				recorded_at TEXT NOT NULL UNIQUE,
				payload TEXT NOT NULL,
				imported_at INTEGER NOT NULL
			);
		`, quoted)
	}
}

// getInsertQuery returns an insert that skips timestamps already stored.
func (rs *RecordStoreImpl) getInsertQuery() string {
	quoted := quoteTableName(rs.tableName, rs.backend)
	switch rs.backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`INSERT IGNORE INTO %s (recorded_at, payload, imported_at) VALUES (?, ?, ?)`, quoted)
	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (recorded_at, payload, imported_at) VALUES ($1, $2, $3)
			ON CONFLICT (recorded_at) DO NOTHING`, quoted)
	default: // SQLite
		return fmt.Sprintf(`INSERT OR IGNORE INTO %s (recorded_at, payload, imported_at) VALUES (?, ?, ?)`, quoted)
	}
}

// getBetweenQuery returns the range select for the backend.
func (rs *RecordStoreImpl) getBetweenQuery() string {
	quoted := quoteTableName(rs.tableName, rs.backend)
	if rs.backend == schema.PostgreSQLBackend {
		return fmt.Sprintf(`SELECT payload FROM %s WHERE recorded_at >= $1 AND recorded_at <= $2 ORDER BY recorded_at`, quoted)
	}
	return fmt.Sprintf(`SELECT payload FROM %s WHERE recorded_at >= ? AND recorded_at <= ? ORDER BY recorded_at`, quoted)
}

// Insert stores records with a valid timestamp in one transaction.
func (rs *RecordStoreImpl) Insert(ctx context.Context, records []schema.Record) (int, error) {
	if rs.db == nil {
		return 0, nil
	}

	tx, err := rs.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, rs.getInsertQuery())
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	importedAt := rs.now().Unix()
	written := 0
	for _, rec := range records {
		if _, ok := rec.Time(time.UTC); !ok {
			continue
		}
		payload, err := json.Marshal(rec)
		if err != nil {
			return 0, fmt.Errorf("failed to encode record %s: %w", rec.Timestamp(), err)
		}
		res, err := stmt.ExecContext(ctx, rec.Timestamp(), string(payload), importedAt)
		if err != nil {
			return 0, fmt.Errorf("failed to insert record %s: %w", rec.Timestamp(), err)
		}
		if n, err := res.RowsAffected(); err == nil {
			written += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit import: %w", err)
	}
	return written, nil
}

// All returns every record ordered by timestamp.
func (rs *RecordStoreImpl) All(ctx context.Context) ([]schema.Record, error) {
	if rs.db == nil {
		return nil, nil
	}
	query := fmt.Sprintf("SELECT payload FROM %s ORDER BY recorded_at", quoteTableName(rs.tableName, rs.backend))
	return rs.queryRecords(ctx, query)
}

// Between returns records in [start, end], compared in the canonical timestamp layout.
func (rs *RecordStoreImpl) Between(ctx context.Context, start, end time.Time) ([]schema.Record, error) {
	if rs.db == nil {
		return nil, nil
	}
	return rs.queryRecords(ctx, rs.getBetweenQuery(), start.Format(schema.TimestampLayout), end.Format(schema.TimestampLayout))
}

func (rs *RecordStoreImpl) queryRecords(ctx context.Context, query string, args ...any) ([]schema.Record, error) {
	rows, err := rs.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []schema.Record
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		var rec schema.Record
		if err := json.Unmarshal([]byte(payload), &rec); err != nil {
			return nil, fmt.Errorf("failed to decode record: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Close closes the underlying DB connection.
func (rs *RecordStoreImpl) Close() error {
	if rs.db != nil {
		return rs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the record store.
func (rs *RecordStoreImpl) GetStatus() (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:   string(rs.backend),
		Connected: rs.db != nil,
	}
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return status, nil
	}

	quoted := quoteTableName(rs.tableName, rs.backend)
	row := rs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quoted))
	if err := row.Scan(&status.TotalRecords); err != nil {
		return status, fmt.Errorf("failed to get total records: %w", err)
	}
	if status.TotalRecords == 0 {
		return status, nil
	}

	var importedAt int64
	row = rs.db.QueryRow(fmt.Sprintf("SELECT MIN(recorded_at), MAX(recorded_at), MAX(imported_at) FROM %s", quoted))
	if err := row.Scan(&status.FirstRecordTime, &status.LastRecordTime, &importedAt); err != nil {
		return status, fmt.Errorf("failed to get record range: %w", err)
	}
	status.LastImportTime = time.Unix(importedAt, 0)
	status.TableSizeBytes = rs.tableSize(status.TotalRecords)
	return status, nil
}

// tableSize estimates the on-disk size of the records table.
func (rs *RecordStoreImpl) tableSize(total int) int64 {
	estimate := int64(total) * 256
	var size int64
	switch rs.backend {
	case schema.SQLiteBackend:
		row := rs.db.QueryRow("SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()")
		if err := row.Scan(&size); err != nil {
			return estimate
		}
	case schema.MySQLBackend:
		cfg, err := mysql.ParseDSN(rs.connStr)
		if err != nil || cfg.DBName == "" {
			return estimate
		}
		row := rs.db.QueryRow("SELECT data_length + index_length FROM information_schema.tables WHERE table_schema = ? AND table_name = ?", cfg.DBName, rs.tableName)
		if err := row.Scan(&size); err != nil {
			return estimate
		}
	case schema.PostgreSQLBackend:
		row := rs.db.QueryRow("SELECT pg_total_relation_size($1)", rs.tableName)
		if err := row.Scan(&size); err != nil {
			return estimate
		}
	}
	return size
}
