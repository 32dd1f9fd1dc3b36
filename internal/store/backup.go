package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"storefront-api/internal/models"
)

// BackupManager snapshots the live document into timestamped files and can
// restore one of them as the new live document. Snapshots are never rotated
// or deleted; unbounded growth is an accepted operational cost handled in
// deployment, not here.
type BackupManager struct {
	dir   string
	store *Store
}

// NewBackupManager creates a backup manager writing into dir.
func NewBackupManager(dir string, store *Store) *BackupManager {
	return &BackupManager{dir: dir, store: store}
}

var timestampSanitizer = strings.NewReplacer(":", "-", ".", "-")

// Snapshot writes the current document to a new backup file named after the
// reason and a sortable timestamp, then records lastBackup on the live
// document. The whole cycle runs inside the store lock, so the snapshot is
// consistent and its trailing save cannot clobber a concurrent mutation.
// The nanosecond timestamp keeps names collision-free per invocation.
// Returns the path of the file written.
func (b *BackupManager) Snapshot(reason string) (string, error) {
	if err := os.MkdirAll(b.dir, 0755); err != nil {
		return "", fmt.Errorf("error creating backup directory: %w", err)
	}

	timestamp := timestampSanitizer.Replace(time.Now().UTC().Format(time.RFC3339Nano))
	backupFile := filepath.Join(b.dir, fmt.Sprintf("db_backup_%s_%s.json", reason, timestamp))

	err := b.store.Update(func(doc *models.Document) error {
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("error marshaling backup: %w", err)
		}
		if err := os.WriteFile(backupFile, data, 0644); err != nil {
			return fmt.Errorf("error writing backup file: %w", err)
		}

		doc.Metadata.LastBackup = time.Now().UTC().Format(time.RFC3339)
		return nil
	})
	if err != nil {
		return "", err
	}

	slog.Info("Backup created", "file", backupFile, "reason", reason)
	return backupFile, nil
}

// Restore reads the named snapshot from the backup directory and persists it
// verbatim as the new live document. No merge and no re-validation happen
// here; the caller is responsible for trusting the snapshot.
func (b *BackupManager) Restore(name string) error {
	if name == "" || filepath.Base(name) != name {
		return fmt.Errorf("invalid backup file name: %q", name)
	}

	backupFile := filepath.Join(b.dir, name)
	data, err := os.ReadFile(backupFile)
	if err != nil {
		return fmt.Errorf("error reading backup file: %w", err)
	}

	var snap models.Document
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("error parsing backup file: %w", err)
	}

	err = b.store.Update(func(doc *models.Document) error {
		*doc = snap
		return nil
	})
	if err != nil {
		return fmt.Errorf("error restoring backup: %w", err)
	}

	slog.Info("Database restored from backup", "file", backupFile)
	return nil
}

// List returns the names of all snapshot files, sorted. The timestamp in the
// name makes the sort chronological.
func (b *BackupManager) List() ([]string, error) {
	entries, err := os.ReadDir(b.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("error reading backup directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "db_backup_") || !strings.HasSuffix(name, ".json") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
