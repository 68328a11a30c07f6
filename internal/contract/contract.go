// Package contract provides interfaces and shared utilities for voltview's internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/voltview/schema"
)

// Fetcher loads the full dataset of record.
// Implementations must honor ctx cancellation and never retry on their own.
type Fetcher interface {
	Fetch(ctx context.Context) ([]schema.Record, error)
}

// StoreManager defines the interface for managing the telemetry store.
// This allows the persistence layer to be mocked for testing.
type StoreManager interface {
	GetRecordStore() RecordStore
}

// RecordStore defines the interface for SQL-backed telemetry storage.
type RecordStore interface {
	// Insert appends records, skipping timestamps that are already stored, and returns the number written.
	Insert(ctx context.Context, records []schema.Record) (int, error)

	// All returns every stored record in timestamp order.
	All(ctx context.Context) ([]schema.Record, error)

	// Between returns records whose timestamp lies in [start, end].
	Between(ctx context.Context, start, end time.Time) ([]schema.Record, error)

	// GetStatus returns status information about the store.
	GetStatus() (schema.StoreStatus, error)

	// Close releases the underlying connection.
	Close() error
}
