package store

import (
	"sync"
	"time"

	"call-metrics-service/internal/model"
)

// SnapshotStore holds the most recently normalized batch of call records.
// Every dashboard query recomputes from a copy of this snapshot, so no
// state leaks between invocations.
type SnapshotStore struct {
	mu          sync.RWMutex
	records     []model.CallRecord
	lastRefresh time.Time
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{records: make([]model.CallRecord, 0)}
}

// Replace swaps the snapshot wholesale. The previous batch is discarded.
func (s *SnapshotStore) Replace(records []model.CallRecord, refreshedAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = records
	s.lastRefresh = refreshedAt
}

// Records returns a copy of the current snapshot.
func (s *SnapshotStore) Records() []model.CallRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]model.CallRecord, len(s.records))
	copy(records, s.records)
	return records
}

func (s *SnapshotStore) LastRefresh() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRefresh
}

func (s *SnapshotStore) HasData() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.lastRefresh.IsZero()
}
