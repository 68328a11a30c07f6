package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the telemetry store.
	DatabaseBackend string

	// SourceBackend represents where the dataset of record is fetched from.
	SourceBackend string

	// Endpoint identifies one side of a TimeWindow.
	Endpoint string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All source backends supported.
const (
	FileSource       SourceBackend = "file" // default
	HTTPSource       SourceBackend = "http"
	SQLiteSource     SourceBackend = "sqlite"
	MySQLSource      SourceBackend = "mysql"
	PostgreSQLSource SourceBackend = "postgresql"
	ParquetSource    SourceBackend = "parquet"
)

// Window endpoints.
const (
	StartEndpoint Endpoint = "start"
	EndEndpoint   Endpoint = "end"
)

// Workstation power fields.
const (
	WorkstationCPUField = "WORKSTATION_CPU_POWER"
	WorkstationGPUField = "WORKSTATION_GPU_POWER"
	WorkstationRAMField = "WORKSTATION_RAM_POWER"
)

// Container ids shared by the page shell and the chart renderer.
const (
	StartClockID       = "start-clock"
	EndClockID         = "end-clock"
	TimelineID         = "timeline"
	TimeGridID         = "time-grid"
	CorrelationChartID = "correlation-matrix-container"
	StackedAreaChartID = "stacked-area-chart-container"
	BreakdownChartID   = "workstation-breakdown-container"
)

// DefaultReferenceYear anchors the week grid and the default window.
const DefaultReferenceYear = 2023

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidSourceBackends lists all valid source backends.
var ValidSourceBackends = map[SourceBackend]struct{}{
	FileSource:       {},
	HTTPSource:       {},
	SQLiteSource:     {},
	MySQLSource:      {},
	PostgreSQLSource: {},
	ParquetSource:    {},
}

// DatabaseBackend returns the store backend behind a SQL source, or NoneBackend.
func (s SourceBackend) DatabaseBackend() DatabaseBackend {
	switch s {
	case SQLiteSource:
		return SQLiteBackend
	case MySQLSource:
		return MySQLBackend
	case PostgreSQLSource:
		return PostgreSQLBackend
	default:
		return NoneBackend
	}
}
