// Package outwriter has output and writer logic.
package outwriter

import (
	"github.com/huangsam/voltview/core/selector"
	"github.com/huangsam/voltview/internal/contract"
	"github.com/huangsam/voltview/schema"
)

// OutWriter provides a unified interface for all output operations.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteCorrelation prints a correlation matrix using the configured output format.
func (ow *OutWriter) WriteCorrelation(report schema.CorrelationReport, cfg *contract.Config) error {
	return PrintCorrelation(report, cfg)
}

// WriteWeeks prints the week grid using the configured output format.
func (ow *OutWriter) WriteWeeks(buttons []selector.WeekButton, cfg *contract.Config) error {
	return PrintWeeks(buttons, cfg)
}

// WriteMetrics prints the metric registry using the configured output format.
func (ow *OutWriter) WriteMetrics(cfg *contract.Config) error {
	return PrintMetricsDefinitions(cfg)
}

// WriteRecords exports telemetry records using the configured output format.
func (ow *OutWriter) WriteRecords(records []schema.Record, keys []string, cfg *contract.Config) error {
	return PrintRecords(records, keys, cfg)
}
