package contract

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/huangsam/voltview/schema"
)

// Default values for configuration.
const (
	DefaultListen        = "127.0.0.1:8080"
	DefaultTimelineWidth = 960
	DefaultPrecision     = 2
	MaxPrecision         = 4
	DefaultCacheTTL      = 30 * time.Second
	DefaultSource        = "data.json"
)

// Config holds the runtime configuration.
// This struct is the "final, validated" config.
type Config struct {
	SourceBackend   schema.SourceBackend
	Source          string // file path or URL
	SourceDBConnect string // Please use env var as this is plaintext

	Listen        string
	Year          int
	Location      *time.Location
	Window        schema.TimeWindow
	TimelineWidth float64
	Stride        int
	Metrics       []string // checked metric ids in registry order

	Output     schema.OutputMode
	OutputFile string
	Precision  int
	UseColors  bool
	Width      int // Terminal width override (0 = auto-detect)

	LogLevel slog.Level
	CacheTTL time.Duration
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Source          string `mapstructure:"source"`
	SourceBackend   string `mapstructure:"source-backend"`
	SourceDBConnect string `mapstructure:"source-db-connect"`
	Year            int    `mapstructure:"year"`
	Start           string `mapstructure:"start"`
	End             string `mapstructure:"end"`
	Timezone        string `mapstructure:"timezone"`
	Metrics         string `mapstructure:"metrics"`
	Output          string `mapstructure:"output"`
	OutputFile      string `mapstructure:"output-file"`
	Precision       int    `mapstructure:"precision"`
	Color           string `mapstructure:"color"`
	Width           int    `mapstructure:"width"`
	LogLevel        string `mapstructure:"log-level"`
	CacheTTL        string `mapstructure:"cache-ttl"`

	// --- Fields from serveCmd.Flags() ---
	Listen        string `mapstructure:"listen"`
	TimelineWidth int    `mapstructure:"timeline-width"`
	Stride        int    `mapstructure:"stride"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Metrics != nil {
		clone.Metrics = append([]string(nil), c.Metrics...)
	}
	return &clone
}

// CloneWithTimeWindow creates a copy of the Config with a new window.
func (c *Config) CloneWithTimeWindow(start, end time.Time) *Config {
	clone := c.Clone()
	clone.Window = schema.NewTimeWindow(start, end)
	return clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateSourceConfigs(cfg, input); err != nil {
		return err
	}
	if err := processTimeRange(cfg, input, time.Now()); err != nil {
		return err
	}
	return processMetrics(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("source-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("source-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Precision < 1 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 1 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}

	level, err := ParseLogLevel(input.LogLevel)
	if err != nil {
		return err
	}
	cfg.LogLevel = level

	cfg.Listen = input.Listen
	if cfg.Listen == "" {
		cfg.Listen = DefaultListen
	}

	cfg.TimelineWidth = float64(input.TimelineWidth)
	if input.TimelineWidth == 0 {
		cfg.TimelineWidth = DefaultTimelineWidth
	}
	if cfg.TimelineWidth < 0 {
		return fmt.Errorf("timeline-width must be positive (received %d)", input.TimelineWidth)
	}

	if input.Stride < 0 {
		return fmt.Errorf("stride must not be negative (received %d)", input.Stride)
	}
	cfg.Stride = input.Stride

	cfg.CacheTTL = DefaultCacheTTL
	if input.CacheTTL != "" {
		ttl, err := ParseLookbackDuration(input.CacheTTL)
		if err != nil {
			return fmt.Errorf("invalid --cache-ttl value: %w", err)
		}
		cfg.CacheTTL = ttl
	}
	return nil
}

func validateSourceConfigs(cfg *Config, input *ConfigRawInput) error {
	backend := strings.ToLower(input.SourceBackend)
	if backend == "" {
		backend = string(schema.FileSource)
	}
	cfg.SourceBackend = schema.SourceBackend(backend)
	if _, ok := schema.ValidSourceBackends[cfg.SourceBackend]; !ok {
		return fmt.Errorf("invalid source backend '%s'. must be file, http, sqlite, mysql, postgresql, parquet", input.SourceBackend)
	}

	cfg.Source = input.Source
	switch cfg.SourceBackend {
	case schema.FileSource, schema.ParquetSource:
		if cfg.Source == "" {
			cfg.Source = DefaultSource
		}
	case schema.HTTPSource:
		if !strings.HasPrefix(cfg.Source, "http://") && !strings.HasPrefix(cfg.Source, "https://") {
			return fmt.Errorf("http source must be an http(s) URL (received %q)", cfg.Source)
		}
	}

	cfg.SourceDBConnect = input.SourceDBConnect
	return ValidateDatabaseConnectionString(cfg.SourceBackend.DatabaseBackend(), cfg.SourceDBConnect)
}

func processTimeRange(cfg *Config, input *ConfigRawInput, now time.Time) error {
	loc := time.Local
	if input.Timezone != "" {
		l, err := time.LoadLocation(input.Timezone)
		if err != nil {
			return fmt.Errorf("invalid timezone '%s': %w", input.Timezone, err)
		}
		loc = l
	}
	cfg.Location = loc

	cfg.Year = input.Year
	if cfg.Year == 0 {
		cfg.Year = schema.DefaultReferenceYear
	}
	if cfg.Year < 1 || cfg.Year > 9999 {
		return fmt.Errorf("year must be between 1 and 9999 (received %d)", input.Year)
	}
	cfg.Window = schema.DefaultWindow(cfg.Year, loc)

	parse := func(name, s string) (time.Time, error) {
		if t, err := ParseAbsoluteTime(s, loc); err == nil {
			return t, nil
		}
		t, err := ParseRelativeTime(s, now.In(loc))
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid %s date format for '%s'. Expected %s, %s or 'N [units] ago'", name, s, schema.TimestampLayout, schema.DateLayout)
		}
		return t, nil
	}

	if input.Start != "" {
		t, err := parse("start", input.Start)
		if err != nil {
			return err
		}
		cfg.Window.Start = t
	}
	if input.End != "" {
		t, err := parse("end", input.End)
		if err != nil {
			return err
		}
		cfg.Window.End = t
	}

	if cfg.Window.Start.After(cfg.Window.End) {
		return fmt.Errorf("start time (%s) cannot be after end time (%s)", cfg.Window.Start.Format(schema.TimestampLayout), cfg.Window.End.Format(schema.TimestampLayout))
	}
	return nil
}

func processMetrics(cfg *Config, input *ConfigRawInput) error {
	cfg.Metrics = nil
	switch strings.ToLower(strings.TrimSpace(input.Metrics)) {
	case "", "all":
		cfg.Metrics = schema.MetricIDs()
		return nil
	case "none":
		cfg.Metrics = []string{}
		return nil
	}
	cfg.Metrics = []string{}
	seen := make(map[string]bool)
	for p := range strings.SplitSeq(input.Metrics, ",") {
		name := strings.TrimSpace(p)
		if name == "" {
			continue
		}
		m, ok := schema.LookupMetric(name)
		if !ok {
			return fmt.Errorf("unknown metric '%s'. must be one of %s", name, strings.Join(schema.MetricIDs(), ", "))
		}
		seen[m.ID] = true
	}
	for _, id := range schema.MetricIDs() {
		if seen[id] {
			cfg.Metrics = append(cfg.Metrics, id)
		}
	}
	return nil
}
