// Package source fetches the telemetry dataset of record from files, HTTP endpoints,
// SQL stores and Parquet files.
package source

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/voltview/internal/contract"
	"github.com/huangsam/voltview/internal/iocache"
	"github.com/huangsam/voltview/schema"
)

// ErrFetchStatus is returned when an HTTP source answers with a non-2xx status.
var ErrFetchStatus = errors.New("unexpected fetch status")

// New builds the fetcher selected by cfg, wrapped in a TTL cache when cfg.CacheTTL > 0.
// SQL sources resolve their store through iocache.Manager, which must be initialized first.
func New(cfg *contract.Config) (contract.Fetcher, error) {
	var f contract.Fetcher
	switch cfg.SourceBackend {
	case schema.FileSource:
		f = &FileSource{Path: cfg.Source}
	case schema.HTTPSource:
		f = NewHTTPSource(cfg.Source, nil)
	case schema.ParquetSource:
		f = &ParquetSource{Path: cfg.Source}
	case schema.SQLiteSource, schema.MySQLSource, schema.PostgreSQLSource:
		store := iocache.Manager.GetRecordStore()
		if store == nil {
			return nil, fmt.Errorf("%s source requires an initialized telemetry store", cfg.SourceBackend)
		}
		f = &StoreSource{Store: store}
	default:
		return nil, fmt.Errorf("unsupported source backend: %s", cfg.SourceBackend)
	}
	if cfg.CacheTTL > 0 {
		f = NewCached(f, cfg.CacheTTL)
	}
	return f, nil
}

// Decode reads a JSON array of flat records.
func Decode(r io.Reader) ([]schema.Record, error) {
	var records []schema.Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode telemetry: %w", err)
	}
	return records, nil
}
