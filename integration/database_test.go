//go:build database

package integration

import (
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestVoltviewWithMySQL imports telemetry into MySQL and reads it back as a source.
func TestVoltviewWithMySQL(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "voltview",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/voltview?parseTime=true", host, port.Port())
	exerciseStore(t, "mysql", connStr)
}

// TestVoltviewWithPostgres imports telemetry into PostgreSQL and reads it back as a source.
func TestVoltviewWithPostgres(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres sslmode=disable", host, port.Port())
	exerciseStore(t, "postgresql", connStr)
}

func exerciseStore(t *testing.T, backend, connStr string) {
	t.Helper()
	dir := t.TempDir()
	source := writeTelemetryFixture(t, dir, 200)
	env := []string{
		"VOLTVIEW_TIMEZONE=UTC",
		"VOLTVIEW_STORE_BACKEND=" + backend,
		"VOLTVIEW_STORE_DB_CONNECT=" + connStr,
	}

	_, err := runVoltviewCommand(t, dir, env, "store", "clear")
	require.NoError(t, err)

	_, err = runVoltviewCommand(t, dir, env, "store", "migrate")
	require.NoError(t, err)

	out, err := runVoltviewCommand(t, dir, env, "store", "import", "--source", source)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 200 of 200 records")

	// A second import stores nothing new.
	out, err = runVoltviewCommand(t, dir, env, "store", "import", "--source", source)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 0 of 200 records")

	_, err = runVoltviewCommand(t, dir, env, "store", "status")
	require.NoError(t, err)

	out, err = runVoltviewCommand(t, dir, env,
		"export", "--source-backend", backend, "--source-db-connect", connStr,
		"--metrics", "voltage", "--output", "csv")
	require.NoError(t, err)
	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows[1:], 200)
}
