package memstore

import (
	"fmt"
	"sort"
	"sync"

	"natkey/internal/domain"
	"natkey/internal/port"
)

// MemoryStore is an in-memory port.KeyStore.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]domain.KeyRecord
	stats   domain.ScanStats
}

var _ port.KeyStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]domain.KeyRecord),
	}
}

func (s *MemoryStore) PutRecord(rec domain.KeyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ID] = rec
	return nil
}

func (s *MemoryStore) GetRecord(id string) (domain.KeyRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return domain.KeyRecord{}, fmt.Errorf("%w: %s", domain.ErrRecordMissing, id)
	}
	return rec, nil
}

func (s *MemoryStore) DeleteRecord(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	return nil
}

// ListRecords returns records sorted by ID, matching the bolt key order.
func (s *MemoryStore) ListRecords() ([]domain.KeyRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := make([]domain.KeyRecord, 0, len(s.records))
	for _, rec := range s.records {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].ID < recs[j].ID })
	return recs, nil
}

func (s *MemoryStore) BatchPut(recs []domain.KeyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range recs {
		s.records[rec.ID] = rec
	}
	return nil
}

func (s *MemoryStore) GetStats() (domain.ScanStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats, nil
}

func (s *MemoryStore) UpdateStats(stats domain.ScanStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = stats
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
