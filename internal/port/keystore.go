package port

import "natkey/internal/domain"

type KeyStore interface {
	PutRecord(rec domain.KeyRecord) error

	GetRecord(id string) (domain.KeyRecord, error)

	DeleteRecord(id string) error

	ListRecords() ([]domain.KeyRecord, error)

	BatchPut(recs []domain.KeyRecord) error

	GetStats() (domain.ScanStats, error)

	UpdateStats(stats domain.ScanStats) error

	Close() error
}
