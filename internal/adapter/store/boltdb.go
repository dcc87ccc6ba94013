package store

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"natkey/internal/domain"
	"natkey/internal/port"
)

var (
	bucketRecords = []byte("records")
	bucketStats   = []byte("stats")
	keyStats      = []byte("scan_stats")
)

var _ port.KeyStore = (*BoltStore)(nil)

type BoltStore struct {
	db *bbolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketRecords, bucketStats} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

type recordMeta struct {
	Path    string         `json:"path"`
	Name    string         `json:"name"`
	ModTime int64          `json:"mod_time"`
	Tokens  []domain.Token `json:"tokens"`
	Year    int            `json:"year"`
	Month   int            `json:"month"`
	Day     int            `json:"day"`
}

func encodeRecord(rec domain.KeyRecord) ([]byte, error) {
	return json.Marshal(recordMeta{
		Path:    rec.Path,
		Name:    rec.Name,
		ModTime: rec.ModTime.Unix(),
		Tokens:  rec.Tokens,
		Year:    rec.Date.Year(),
		Month:   int(rec.Date.Month()),
		Day:     rec.Date.Day(),
	})
}

func decodeRecord(id string, data []byte) (domain.KeyRecord, error) {
	var meta recordMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return domain.KeyRecord{}, fmt.Errorf("decode record %s: %w", id, err)
	}
	return domain.KeyRecord{
		ID:      id,
		Path:    meta.Path,
		Name:    meta.Name,
		ModTime: time.Unix(meta.ModTime, 0),
		Tokens:  meta.Tokens,
		Date:    domain.NewDate(meta.Year, time.Month(meta.Month), meta.Day),
	}, nil
}

func (s *BoltStore) PutRecord(rec domain.KeyRecord) error {
	return s.BatchPut([]domain.KeyRecord{rec})
}

func (s *BoltStore) GetRecord(id string) (domain.KeyRecord, error) {
	var rec domain.KeyRecord
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketRecords).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("%w: %s", domain.ErrRecordMissing, id)
		}
		var err error
		rec, err = decodeRecord(id, data)
		return err
	})
	return rec, err
}

func (s *BoltStore) DeleteRecord(id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketRecords).Delete([]byte(id))
	})
}

// ListRecords returns every record in key order.
func (s *BoltStore) ListRecords() ([]domain.KeyRecord, error) {
	var recs []domain.KeyRecord
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketRecords).ForEach(func(k, v []byte) error {
			rec, err := decodeRecord(string(k), v)
			if err != nil {
				return err
			}
			recs = append(recs, rec)
			return nil
		})
	})
	return recs, err
}

// BatchPut writes all records in a single transaction.
func (s *BoltStore) BatchPut(recs []domain.KeyRecord) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketRecords)
		for _, rec := range recs {
			data, err := encodeRecord(rec)
			if err != nil {
				return err
			}
			if err := b.Put([]byte(rec.ID), data); err != nil {
				return err
			}
		}
		return nil
	})
}

type statsMeta struct {
	TotalFiles int   `json:"total_files"`
	LastScan   int64 `json:"last_scan"`
}

func (s *BoltStore) GetStats() (domain.ScanStats, error) {
	var stats domain.ScanStats
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketStats).Get(keyStats)
		if data == nil {
			return nil
		}
		var meta statsMeta
		if err := json.Unmarshal(data, &meta); err != nil {
			return err
		}
		stats.TotalFiles = meta.TotalFiles
		if meta.LastScan != 0 {
			stats.LastScan = time.Unix(meta.LastScan, 0)
		}
		return nil
	})
	return stats, err
}

func (s *BoltStore) UpdateStats(stats domain.ScanStats) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		meta := statsMeta{TotalFiles: stats.TotalFiles}
		if !stats.LastScan.IsZero() {
			meta.LastScan = stats.LastScan.Unix()
		}
		data, err := json.Marshal(meta)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketStats).Put(keyStats, data)
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
