package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricRegistryOrder(t *testing.T) {
	assert.Equal(t, []string{"voltaje", "corriente", "potencia", "frecuencia", "energia", "ESP32_temp", "fp", "consumo"}, CorrelationKeys())
	assert.Len(t, MetricIDs(), len(Metrics))
}

func TestLookupMetric(t *testing.T) {
	m, ok := LookupMetric("power-factor")
	require.True(t, ok)
	assert.Equal(t, "fp", m.FieldKey)
	assert.Equal(t, "#a633ff", m.Color)
	assert.Equal(t, "power-factor-checkbox", m.CheckboxID())
	assert.Equal(t, "chart-power-factor", m.ContainerID())

	byField, ok := LookupMetric("ESP32_temp")
	require.True(t, ok)
	assert.Equal(t, "temperature", byField.ID)

	_, ok = LookupMetric("humidity")
	assert.False(t, ok)
}

func TestSourceBackendDatabase(t *testing.T) {
	assert.Equal(t, SQLiteBackend, SQLiteSource.DatabaseBackend())
	assert.Equal(t, PostgreSQLBackend, PostgreSQLSource.DatabaseBackend())
	assert.Equal(t, NoneBackend, FileSource.DatabaseBackend())
}
