package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"storefront-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBackupManager(t *testing.T) (*Store, *BackupManager) {
	t.Helper()
	dir := t.TempDir()
	s := NewStore(filepath.Join(dir, "db.json"))
	return s, NewBackupManager(filepath.Join(dir, "backups"), s)
}

func TestSnapshotWritesTimestampedFile(t *testing.T) {
	s, b := newTestBackupManager(t)

	doc := DefaultDocument()
	doc.Products = append(doc.Products, models.Product{ID: "p1", Name: "Mouse", Price: 15})
	require.NoError(t, s.Save(doc))

	file, err := b.Snapshot("initial")
	require.NoError(t, err)

	name := filepath.Base(file)
	assert.True(t, strings.HasPrefix(name, "db_backup_initial_"), "got %s", name)
	assert.True(t, strings.HasSuffix(name, ".json"))
	assert.NotContains(t, name, ":")

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	var snap models.Document
	require.NoError(t, json.Unmarshal(data, &snap))
	require.Len(t, snap.Products, 1)
	assert.Equal(t, "Mouse", snap.Products[0].Name)

	// The live document records the backup time.
	assert.NotEmpty(t, s.Load().Metadata.LastBackup)
}

func TestSnapshotNamesAreCollisionFree(t *testing.T) {
	s, b := newTestBackupManager(t)
	require.NoError(t, s.Save(DefaultDocument()))

	first, err := b.Snapshot("manual")
	require.NoError(t, err)
	second, err := b.Snapshot("manual")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestRestoreReplacesLiveDocumentVerbatim(t *testing.T) {
	s, b := newTestBackupManager(t)

	original := DefaultDocument()
	original.Products = append(original.Products, models.Product{ID: "p1", Name: "Mouse", Price: 15})
	require.NoError(t, s.Save(original))

	file, err := b.Snapshot("manual")
	require.NoError(t, err)

	// Mutate the live document after the snapshot.
	mutated := s.Load()
	mutated.Products = append(mutated.Products, models.Product{ID: "p2", Name: "Teclado", Price: 30})
	mutated.Rate = 999
	require.NoError(t, s.Save(mutated))

	require.NoError(t, b.Restore(filepath.Base(file)))

	restored := s.Load()
	require.Len(t, restored.Products, 1)
	assert.Equal(t, "p1", restored.Products[0].ID)
	assert.Equal(t, models.DefaultRate, restored.Rate)
}

func TestRestoreRejectsBadInput(t *testing.T) {
	_, b := newTestBackupManager(t)

	assert.Error(t, b.Restore(""))
	assert.Error(t, b.Restore("../db.json"))
	assert.Error(t, b.Restore("db_backup_missing_file.json"))
}

func TestSnapshotDoesNotDisruptConcurrentWriters(t *testing.T) {
	s, b := newTestBackupManager(t)
	require.NoError(t, s.Save(DefaultDocument()))

	const writes = 200
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < writes; i++ {
			id := fmt.Sprintf("p%d", i)
			err := s.Update(func(doc *models.Document) error {
				doc.Products = append(doc.Products, models.Product{ID: id, Name: "Mouse", Price: 15})
				return nil
			})
			assert.NoError(t, err, "a write must never fail because a snapshot ran alongside it")
		}
	}()

	for running := true; running; {
		select {
		case <-done:
			running = false
		default:
			_, err := b.Snapshot("manual")
			assert.NoError(t, err)
		}
	}

	require.Len(t, s.Load().Products, writes, "no write may be lost to a concurrent snapshot")
}

func TestListReturnsOnlySnapshotsSorted(t *testing.T) {
	s, b := newTestBackupManager(t)
	require.NoError(t, s.Save(DefaultDocument()))

	// No directory yet: empty listing, no error.
	names, err := b.List()
	require.NoError(t, err)
	assert.Empty(t, names)

	_, err = b.Snapshot("initial")
	require.NoError(t, err)
	_, err = b.Snapshot("manual")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(b.dir, "notes.txt"), []byte("x"), 0644))

	names, err = b.List()
	require.NoError(t, err)
	require.Len(t, names, 2)
	assert.True(t, sortedStrings(names))
	for _, n := range names {
		assert.True(t, strings.HasPrefix(n, "db_backup_"))
	}
}

func sortedStrings(s []string) bool {
	for i := 1; i < len(s); i++ {
		if s[i-1] > s[i] {
			return false
		}
	}
	return true
}
