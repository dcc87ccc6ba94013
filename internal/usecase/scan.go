package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"natkey/internal/adapter/calendar"
	"natkey/internal/domain"
	"natkey/internal/logging"
	"natkey/internal/port"
)

// ProgressFunc reports scan progress after each processed file.
type ProgressFunc func(processed, total int, currentFile string)

// ScanUseCase computes and stores natural keys for files under a root.
type ScanUseCase struct {
	store     port.KeyStore
	walker    port.FileWalker
	tokenizer port.Tokenizer
	workers   int
	logger    *zap.Logger
}

// NewScanUseCase creates a new scan use case.
func NewScanUseCase(
	store port.KeyStore,
	walker port.FileWalker,
	tokenizer port.Tokenizer,
	workers int,
	logger *zap.Logger,
) *ScanUseCase {
	if workers < 1 {
		workers = 1
	}
	return &ScanUseCase{
		store:     store,
		walker:    walker,
		tokenizer: tokenizer,
		workers:   workers,
		logger:    logging.OrNop(logger),
	}
}

// ScanResult contains the results of a scan.
type ScanResult struct {
	FilesScanned int
	FilesSkipped int
	FilesDeleted int
	Errors       []string
}

// Scan walks root and refreshes the stored key of every new or modified
// file. Records of files that disappeared are removed.
func (u *ScanUseCase) Scan(ctx context.Context, root string, progress ProgressFunc) (*ScanResult, error) {
	result := &ScanResult{}

	files, err := u.walker.Walk(root)
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	existing, err := u.store.ListRecords()
	if err != nil {
		return nil, fmt.Errorf("failed to list existing records: %w", err)
	}
	existingByPath := make(map[string]domain.KeyRecord, len(existing))
	for _, rec := range existing {
		existingByPath[rec.Path] = rec
	}

	seen := make(map[string]bool, len(files))
	var pending []port.FileInfo
	for _, file := range files {
		seen[file.Path] = true
		if rec, ok := existingByPath[file.Path]; ok && rec.ModTime.Unix() >= file.ModTime {
			result.FilesSkipped++
			continue
		}
		pending = append(pending, file)
	}

	u.logger.Debug("Scan planned",
		zap.String("root", root),
		zap.Int("files", len(files)),
		zap.Int("pending", len(pending)),
		zap.Int("skipped", result.FilesSkipped))

	var (
		mu        sync.Mutex
		records   = make([]domain.KeyRecord, 0, len(pending))
		processed int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.workers)
	for _, file := range pending {
		file := file
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec, err := u.buildRecord(file)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				u.logger.Warn("Skipping file", zap.String("path", file.Path), zap.Error(err))
				result.Errors = append(result.Errors, fmt.Sprintf("failed to key %s: %v", file.Path, err))
			} else {
				records = append(records, rec)
			}
			processed++
			if progress != nil {
				progress(processed, len(pending), file.Path)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scan interrupted: %w", err)
	}

	if err := u.store.BatchPut(records); err != nil {
		return nil, fmt.Errorf("failed to store records: %w", err)
	}
	result.FilesScanned = len(records)

	for path, rec := range existingByPath {
		if seen[path] {
			continue
		}
		if err := u.store.DeleteRecord(rec.ID); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("failed to delete %s: %v", path, err))
			continue
		}
		result.FilesDeleted++
	}

	stats := domain.ScanStats{
		TotalFiles: result.FilesScanned + result.FilesSkipped,
		LastScan:   time.Now(),
	}
	if err := u.store.UpdateStats(stats); err != nil {
		return nil, fmt.Errorf("failed to update stats: %w", err)
	}

	u.logger.Info("Scan complete",
		zap.Int("scanned", result.FilesScanned),
		zap.Int("skipped", result.FilesSkipped),
		zap.Int("deleted", result.FilesDeleted),
		zap.Int("errors", len(result.Errors)))

	return result, nil
}

func (u *ScanUseCase) buildRecord(file port.FileInfo) (domain.KeyRecord, error) {
	modTime := time.Unix(file.ModTime, 0).UTC()
	date, err := calendar.ExtractAll(modTime)
	if err != nil {
		return domain.KeyRecord{}, err
	}

	name := filepath.Base(file.Path)
	return domain.KeyRecord{
		ID:      recordID(file.Path),
		Path:    file.Path,
		Name:    name,
		ModTime: modTime,
		Tokens:  u.tokenizer.Tokenize(name),
		Date:    date,
	}, nil
}

// recordID derives a stable ID for a file from its path.
func recordID(path string) string {
	hash := sha256.Sum256([]byte(path))
	return hex.EncodeToString(hash[:8])
}
