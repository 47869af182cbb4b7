// Package snapshot owns the periodic corporate-announcements fetch and the
// on-disk JSON file it maintains. The file is the sole source of truth for
// the paginated read path: it is replaced whole on every successful fetch,
// never merged, and never self-expires.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/singleflight"

	"stock-market-api/internal/logger"
)

// ErrNoSnapshot reports an absent snapshot file.
var ErrNoSnapshot = errors.New("snapshot: no stored data")

// Store reads and atomically replaces the snapshot file.
type Store struct {
	path string
}

// NewStore creates a store for the given file path, creating the parent
// directory if needed.
func NewStore(path string) (*Store, error) {
	if mkdirError := os.MkdirAll(filepath.Dir(path), 0o755); mkdirError != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", mkdirError)
	}
	return &Store{path: path}, nil
}

// Read returns the stored records, or ErrNoSnapshot when the file is absent.
func (store *Store) Read() ([]map[string]interface{}, error) {
	contents, readError := os.ReadFile(store.path)
	if readError != nil {
		if os.IsNotExist(readError) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", readError)
	}

	var records []map[string]interface{}
	if unmarshalError := json.Unmarshal(contents, &records); unmarshalError != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", unmarshalError)
	}
	return records, nil
}

// Write replaces the snapshot file with records. The write goes through a
// temp file and rename so readers never observe a partial file.
func (store *Store) Write(records []map[string]interface{}) error {
	contents, marshalError := json.MarshalIndent(records, "", "  ")
	if marshalError != nil {
		return fmt.Errorf("failed to encode snapshot: %w", marshalError)
	}

	tempPath := store.path + ".tmp"
	if writeError := os.WriteFile(tempPath, contents, 0o644); writeError != nil {
		return fmt.Errorf("failed to write snapshot: %w", writeError)
	}
	if renameError := os.Rename(tempPath, store.path); renameError != nil {
		return fmt.Errorf("failed to replace snapshot: %w", renameError)
	}
	return nil
}

// FetchFunc retrieves the full fresh dataset from upstream.
type FetchFunc func(ctx context.Context) ([]map[string]interface{}, error)

// Job refreshes the snapshot on a fixed interval and serves the read path.
// All refreshes, scheduled or on-demand, share one singleflight group so
// overlapping runs cannot race on the file.
type Job struct {
	store  *Store
	fetch  FetchFunc
	logger *logger.Logger

	scheduler    *cron.Cron
	refreshGroup singleflight.Group
}

// NewJob creates the snapshot job.
func NewJob(store *Store, fetch FetchFunc, logger *logger.Logger) *Job {
	return &Job{
		store:  store,
		fetch:  fetch,
		logger: logger,
	}
}

// Start refreshes once immediately (in the background) and then on every
// interval tick.
func (job *Job) Start(interval string) error {
	job.scheduler = cron.New()
	if _, scheduleError := job.scheduler.AddFunc("@every "+interval, func() {
		if refreshError := job.Refresh(context.Background()); refreshError != nil {
			job.logger.Errorf("Scheduled snapshot refresh failed: %v", refreshError)
		}
	}); scheduleError != nil {
		return fmt.Errorf("failed to schedule snapshot job: %w", scheduleError)
	}
	job.scheduler.Start()

	go func() {
		if refreshError := job.Refresh(context.Background()); refreshError != nil {
			job.logger.Errorf("Initial snapshot refresh failed: %v", refreshError)
		}
	}()

	return nil
}

// Stop stops the scheduler. An in-flight refresh is left to finish.
func (job *Job) Stop() {
	if job.scheduler != nil {
		job.scheduler.Stop()
	}
}

// Refresh fetches a fresh dataset and replaces the file. On failure the
// previous file contents are left untouched. Concurrent callers coalesce
// into one fetch.
func (job *Job) Refresh(ctx context.Context) error {
	_, refreshError, _ := job.refreshGroup.Do("refresh", func() (interface{}, error) {
		records, fetchError := job.fetch(ctx)
		if fetchError != nil {
			return nil, fetchError
		}
		if writeError := job.store.Write(records); writeError != nil {
			return nil, writeError
		}
		job.logger.Infof("Snapshot refreshed with %d records", len(records))
		return nil, nil
	})
	return refreshError
}

// Announcements returns the stored dataset. An absent file triggers exactly
// one synchronous fetch-and-store before reading; the read path never
// refreshes on staleness.
func (job *Job) Announcements(ctx context.Context) ([]map[string]interface{}, error) {
	records, readError := job.store.Read()
	if readError == nil {
		return records, nil
	}
	if !errors.Is(readError, ErrNoSnapshot) {
		return nil, readError
	}

	job.logger.Info("No stored snapshot found, fetching fresh data")
	if refreshError := job.Refresh(ctx); refreshError != nil {
		return nil, refreshError
	}
	return job.store.Read()
}
