package contract

import (
	"context"
	"time"

	"github.com/huangsam/voltview/schema"
	"github.com/stretchr/testify/mock"
)

// MockFetcher is a testify mock of Fetcher.
type MockFetcher struct {
	mock.Mock
}

var _ Fetcher = &MockFetcher{}

// Fetch implements Fetcher.
func (m *MockFetcher) Fetch(ctx context.Context) ([]schema.Record, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]schema.Record)
	return records, args.Error(1)
}

// MockRecordStore is a testify mock of RecordStore.
type MockRecordStore struct {
	mock.Mock
}

var _ RecordStore = &MockRecordStore{}

// Insert implements RecordStore.
func (m *MockRecordStore) Insert(ctx context.Context, records []schema.Record) (int, error) {
	args := m.Called(ctx, records)
	return args.Int(0), args.Error(1)
}

// All implements RecordStore.
func (m *MockRecordStore) All(ctx context.Context) ([]schema.Record, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]schema.Record)
	return records, args.Error(1)
}

// Between implements RecordStore.
func (m *MockRecordStore) Between(ctx context.Context, start, end time.Time) ([]schema.Record, error) {
	args := m.Called(ctx, start, end)
	records, _ := args.Get(0).([]schema.Record)
	return records, args.Error(1)
}

// GetStatus implements RecordStore.
func (m *MockRecordStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Close implements RecordStore.
func (m *MockRecordStore) Close() error {
	return m.Called().Error(0)
}
