package schema

// MetricDescriptor describes one plottable telemetry metric.
type MetricDescriptor struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	FieldKey    string `json:"field_key"`
	Color       string `json:"color"`
	Title       string `json:"title"`
}

// Metrics is the static registry. Its order is also the correlation key order.
var Metrics = []MetricDescriptor{
	{ID: "voltage", DisplayName: "Voltage", FieldKey: "voltaje", Color: "#ff5733", Title: "voltaje"},
	{ID: "current", DisplayName: "Current", FieldKey: "corriente", Color: "#33ff57", Title: "corriente"},
	{ID: "power", DisplayName: "Power", FieldKey: "potencia", Color: "#3357ff", Title: "potencia"},
	{ID: "frequency", DisplayName: "Frequency", FieldKey: "frecuencia", Color: "#ff33a6", Title: "frecuencia"},
	{ID: "energy", DisplayName: "Energy", FieldKey: "energia", Color: "#ffdd33", Title: "energia"},
	{ID: "temperature", DisplayName: "Temperature", FieldKey: "ESP32_temp", Color: "#33fff2", Title: "ESP32_temp"},
	{ID: "power-factor", DisplayName: "Power Factor", FieldKey: "fp", Color: "#a633ff", Title: "fp"},
	{ID: "consumption", DisplayName: "Consumption", FieldKey: "consumo", Color: "#ff33ff", Title: "consumo"},
}

// WorkstationFields lists the CPU/GPU/RAM power fields in display order.
var WorkstationFields = []string{WorkstationCPUField, WorkstationGPUField, WorkstationRAMField}

// WorkstationColors maps workstation fields to chart colors.
var WorkstationColors = map[string]string{
	WorkstationCPUField: "#4e79a7",
	WorkstationGPUField: "#f28e2b",
	WorkstationRAMField: "#59a14f",
}

// LookupMetric finds a descriptor by id or field key.
func LookupMetric(name string) (MetricDescriptor, bool) {
	for _, m := range Metrics {
		if m.ID == name || m.FieldKey == name {
			return m, true
		}
	}
	return MetricDescriptor{}, false
}

// MetricIDs returns every registry id in order.
func MetricIDs() []string {
	ids := make([]string, len(Metrics))
	for i, m := range Metrics {
		ids[i] = m.ID
	}
	return ids
}

// CorrelationKeys returns every registry field key in order.
func CorrelationKeys() []string {
	keys := make([]string, len(Metrics))
	for i, m := range Metrics {
		keys[i] = m.FieldKey
	}
	return keys
}

// CheckboxID is the id of the toggle control for a metric.
func (m MetricDescriptor) CheckboxID() string {
	return m.ID + "-checkbox"
}

// ContainerID is the id of the line chart container for a metric.
func (m MetricDescriptor) ContainerID() string {
	return "chart-" + m.ID
}
