package usecase

import (
	"fmt"
	"strings"

	"natkey/internal/domain"
	"natkey/internal/port"
)

// KeysUseCase reads stored key records.
type KeysUseCase struct {
	store port.KeyStore
}

func NewKeysUseCase(store port.KeyStore) *KeysUseCase {
	return &KeysUseCase{store: store}
}

// List returns records whose path starts with prefix, in store order.
// An empty prefix matches everything.
func (u *KeysUseCase) List(prefix string) ([]domain.KeyRecord, error) {
	recs, err := u.store.ListRecords()
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	if prefix == "" {
		return recs, nil
	}

	filtered := recs[:0]
	for _, rec := range recs {
		if strings.HasPrefix(rec.Path, prefix) {
			filtered = append(filtered, rec)
		}
	}
	return filtered, nil
}
