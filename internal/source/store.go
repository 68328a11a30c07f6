package source

import (
	"context"

	"github.com/huangsam/voltview/internal/contract"
	"github.com/huangsam/voltview/internal/parquet"
	"github.com/huangsam/voltview/schema"
)

// StoreSource reads every record from a SQL telemetry store.
type StoreSource struct {
	Store contract.RecordStore
}

var _ contract.Fetcher = &StoreSource{} // Compile-time check

// Fetch implements contract.Fetcher.
func (s *StoreSource) Fetch(ctx context.Context) ([]schema.Record, error) {
	return s.Store.All(ctx)
}

// ParquetSource reads telemetry rows from a Parquet file.
type ParquetSource struct {
	Path string
}

var _ contract.Fetcher = &ParquetSource{} // Compile-time check

// Fetch implements contract.Fetcher.
func (s *ParquetSource) Fetch(ctx context.Context) ([]schema.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return parquet.ReadTelemetryParquet(s.Path)
}
