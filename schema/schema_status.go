package schema

import "time"

// StoreStatus represents the status of the telemetry store.
type StoreStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalRecords    int       `json:"total_records"`
	FirstRecordTime string    `json:"first_record_time"`
	LastRecordTime  string    `json:"last_record_time"`
	LastImportTime  time.Time `json:"last_import_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}
