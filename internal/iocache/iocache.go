// Package iocache persists telemetry records in SQL databases.
package iocache

import (
	"sync"

	"github.com/huangsam/voltview/internal/contract"
)

// RecordStoreManager manages the RecordStore instance.
type RecordStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	records      contract.RecordStore
}

var _ contract.StoreManager = &RecordStoreManager{} // Compile-time check

// GetRecordStore returns the telemetry RecordStore.
func (mgr *RecordStoreManager) GetRecordStore() contract.RecordStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.records
}
