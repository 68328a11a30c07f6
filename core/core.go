// Package core wires the dashboard session and the command executors.
package core

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/huangsam/voltview/core/filter"
	"github.com/huangsam/voltview/core/selector"
	"github.com/huangsam/voltview/core/window"
	"github.com/huangsam/voltview/internal/contract"
	"github.com/huangsam/voltview/internal/outwriter"
	"github.com/huangsam/voltview/internal/source"
	"github.com/huangsam/voltview/schema"
)

// ExecutorFunc defines the function signature for executing different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config) error

// OpenSession builds a session over the configured source.
// A nil logger writes to stderr at the configured level.
func OpenSession(cfg *contract.Config, logger *slog.Logger, observe func(string, time.Duration)) (*Session, error) {
	fetcher, err := source.New(cfg)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = contract.NewLogger(os.Stderr, cfg.LogLevel)
	}
	return NewSession(cfg, fetcher, logger, observe)
}

// ExecuteCorrelation prints the correlation matrix of the configured window.
func ExecuteCorrelation(ctx context.Context, cfg *contract.Config) error {
	s, err := OpenSession(cfg, nil, nil)
	if err != nil {
		return err
	}
	report, err := s.Correlation(ctx)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteCorrelation(report, cfg)
}

// ExecuteExport writes the records of the configured window, projected onto the checked metrics.
func ExecuteExport(ctx context.Context, cfg *contract.Config) error {
	s, err := OpenSession(cfg, nil, nil)
	if err != nil {
		return err
	}
	records, err := s.Records(ctx)
	if err != nil {
		return err
	}
	keys := FieldKeys(cfg.Metrics)
	return outwriter.NewOutWriter().WriteRecords(filter.Project(records, keys), keys, cfg)
}

// ExecuteWeeks prints the week grid highlighted against the configured window.
func ExecuteWeeks(_ context.Context, cfg *contract.Config) error {
	store := window.NewStore(cfg.Window)
	grid := selector.NewWeekGrid(store, cfg.Year, cfg.Location)
	buttons := grid.Buttons()
	grid.MarkCurrent(buttons, time.Now())
	return outwriter.NewOutWriter().WriteWeeks(buttons, cfg)
}

// ExecuteMetrics prints the metric registry.
func ExecuteMetrics(_ context.Context, cfg *contract.Config) error {
	return outwriter.NewOutWriter().WriteMetrics(cfg)
}

// ExecuteImport copies every record of the configured source into store.
// It returns the number of newly inserted records and the number read.
func ExecuteImport(ctx context.Context, cfg *contract.Config, store contract.RecordStore) (inserted, read int, err error) {
	if cfg.SourceBackend.DatabaseBackend() != schema.NoneBackend {
		return 0, 0, fmt.Errorf("import requires a file, http or parquet source (received %s)", cfg.SourceBackend)
	}
	fetcher, err := source.New(cfg)
	if err != nil {
		return 0, 0, err
	}
	records, err := fetcher.Fetch(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to fetch telemetry: %w", err)
	}
	inserted, err = store.Insert(ctx, records)
	if err != nil {
		return 0, len(records), fmt.Errorf("failed to import telemetry: %w", err)
	}
	return inserted, len(records), nil
}

// FieldKeys maps metric ids to their record field keys, skipping unknown ids.
func FieldKeys(ids []string) []string {
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		if m, ok := schema.LookupMetric(id); ok {
			keys = append(keys, m.FieldKey)
		}
	}
	return keys
}
