// Package cmd defines the command-line interface for voltview.
package cmd

import (
	"github.com/huangsam/voltview/internal/contract"
	"github.com/huangsam/voltview/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(corrCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(weeksCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeImportCmd)
	storeCmd.AddCommand(storeMigrateCmd)
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeClearCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("source", "s", contract.DefaultSource, "Telemetry source: file path, parquet path or http(s) URL")
	rootCmd.PersistentFlags().String("source-backend", string(schema.FileSource), "Source backend: file or http or sqlite or mysql or postgresql or parquet")
	rootCmd.PersistentFlags().String("source-db-connect", "", "Database connection string for mysql/postgresql sources")
	rootCmd.PersistentFlags().Int("year", schema.DefaultReferenceYear, "Reference year of the week grid")
	rootCmd.PersistentFlags().String("start", "", "Window start: 2006-01-02T15:04:05, 2006-01-02 or time ago")
	rootCmd.PersistentFlags().String("end", "", "Window end: 2006-01-02T15:04:05, 2006-01-02 or time ago")
	rootCmd.PersistentFlags().String("timezone", "", "IANA zone record timestamps are interpreted in (default local)")
	rootCmd.PersistentFlags().StringP("metrics", "m", "all", "Comma-separated checked metrics, or all or none")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to (.zst compresses)")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("cache-ttl", "", "How long a fetched dataset is reused, e.g. '30 seconds' (default 30s)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of serveCmd to Viper
	serveCmd.Flags().String("listen", contract.DefaultListen, "Address the dashboard listens on")
	serveCmd.Flags().Int("timeline-width", contract.DefaultTimelineWidth, "Timeline width in pixels")
	serveCmd.Flags().Int("stride", 0, "Keep every Nth windowed record in line charts (default 10)")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding serve flags", err)
	}

	// Bind all persistent flags of storeCmd to Viper
	storeCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Store backend: sqlite or mysql or postgresql")
	storeCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql stores")
	if err := viper.BindPFlags(storeCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding store flags", err)
	}

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
