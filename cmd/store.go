package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/huangsam/voltview/core"
	"github.com/huangsam/voltview/internal/contract"
	"github.com/huangsam/voltview/internal/iocache"
	"github.com/huangsam/voltview/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeBackend and storeDBConnect hold the validated store target of store subcommands.
var (
	storeBackend   schema.DatabaseBackend
	storeDBConnect string
)

// storeConfig loads and validates the store target without touching the source settings.
func storeConfig() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	storeBackend = schema.DatabaseBackend(viper.GetString("store-backend"))
	storeDBConnect = viper.GetString("store-db-connect")
	if _, ok := schema.ValidDatabaseBackends[storeBackend]; !ok || storeBackend == schema.NoneBackend {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql", storeBackend)
	}
	return contract.ValidateDatabaseConnectionString(storeBackend, storeDBConnect)
}

// storeSetup validates the store target and opens it.
func storeSetup() error {
	if err := storeConfig(); err != nil {
		return err
	}
	if err := iocache.InitStore(storeBackend, storeDBConnect); err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	if iocache.Manager.GetRecordStore() == nil {
		return errors.New("telemetry store is not initialized")
	}
	return nil
}

// storeSetupWrapper wraps storeSetup to provide PreRunE for store commands.
func storeSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeSetup()
}

// storeCmd focused on telemetry store management.
//
// Note: Store subcommands other than import use minimal initialization instead of
// the full sharedSetup, so a broken source setting never blocks store maintenance.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the SQL telemetry store",
	Long: `Manage the SQL database that can serve as the dashboard's telemetry source.

Supported backends: SQLite (default), MySQL, PostgreSQL

Subcommands:
  import  - Copy the configured file, http or parquet source into the store
  migrate - Apply or roll back schema migrations
  status  - Show record counts and the stored time span
  clear   - Remove all stored telemetry

Examples:
  # Load a JSON dump into the default SQLite store
  voltview store import --source data.json

  # Serve from the store afterwards
  voltview serve --source-backend sqlite`,
}

// storeImportCmd copies a source into the store.
var storeImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Copy the configured source into the store",
	Long: `Fetch every record of --source and insert it into the store.

Records whose timestamp is already stored are skipped, so importing the same
dump twice is harmless. Records with an unparseable timestamp are skipped too.

Examples:
  voltview store import --source data.json.zst
  VOLTVIEW_STORE_BACKEND=postgresql VOLTVIEW_STORE_DB_CONNECT="host=... dbname=..." voltview store import`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if err := sharedSetup(rootCtx, cmd, args); err != nil {
			return err
		}
		return storeSetup()
	},
	Run: func(_ *cobra.Command, _ []string) {
		inserted, read, err := core.ExecuteImport(rootCtx, cfg, iocache.Manager.GetRecordStore())
		if err != nil {
			contract.LogFatal("Failed to import telemetry", err)
		}
		fmt.Printf("Imported %d of %d records into %s.\n", inserted, read, storeBackend)
	},
}

// storeMigrateCmd runs schema migrations.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back store migrations",
	Long: `Run the embedded schema migrations against the store.

Examples:
  # Migrate to the latest version
  voltview store migrate

  # Roll back everything
  voltview store migrate --target-version 0`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return storeConfig()
	},
	Run: func(_ *cobra.Command, _ []string) {
		target := viper.GetInt("target-version")
		if err := iocache.MigrateStore(storeBackend, storeDBConnect, target, os.Stdout); err != nil {
			contract.LogFatal("Failed to migrate store", err)
		}
	},
}

// storeStatusCmd shows store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display store statistics and connection details",
	Long: `Show the backend, connection state, record count, stored time span and size.

Examples:
  voltview store status`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetRecordStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		iocache.PrintStoreStatus(os.Stdout, status)
	},
}

// storeClearCmd clears the store.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored telemetry",
	Long: `Delete all stored telemetry from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the telemetry and migration tables

Examples:
  voltview store clear`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return storeConfig()
	},
	Run: func(_ *cobra.Command, _ []string) {
		dbFilePath := iocache.GetDBFilePath()
		if storeBackend == schema.SQLiteBackend && storeDBConnect != "" {
			dbFilePath = storeDBConnect
		}
		if err := iocache.ClearStore(storeBackend, dbFilePath, storeDBConnect); err != nil {
			contract.LogFatal("Failed to clear store", err)
		}
		fmt.Println("Store cleared successfully.")
	},
}
