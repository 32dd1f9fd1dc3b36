package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"storefront-api/internal/models"
)

// Store owns the on-disk JSON document. Every read and write of the
// persisted state goes through it; mutations run as load-mutate-save cycles
// under the store mutex, so two interleaved writers cannot silently
// overwrite each other's changes. That includes backup snapshots and
// restores, which mutate the document like any other caller.
type Store struct {
	mu       sync.Mutex
	filePath string
}

// NewStore creates a store bound to the given database file path.
func NewStore(filePath string) *Store {
	return &Store{filePath: filePath}
}

// FilePath returns the path of the database file.
func (s *Store) FilePath() string {
	return s.filePath
}

// DefaultDocument builds a fresh document with every collection present,
// the default rate and the default store settings.
func DefaultDocument() *models.Document {
	return &models.Document{
		Version:      models.SchemaVersion,
		Products:     []models.Product{},
		Clients:      []models.Client{},
		Transactions: []models.Transaction{},
		Rate:         models.DefaultRate,
		Settings: models.Settings{
			Currency: "USD",
			Language: "es",
			Timezone: "America/Caracas",
		},
		Metadata: models.Metadata{
			Created: time.Now().UTC().Format(time.RFC3339),
		},
	}
}

// Init prepares the store at process start. A missing database file is
// created from defaults and persisted immediately; the returned flag tells
// the caller a fresh file was written so it can take the initial backup.
// An existing file is loaded and migrated.
func (s *Store) Init() (*models.Document, bool, error) {
	if _, err := os.Stat(s.filePath); errors.Is(err, fs.ErrNotExist) {
		slog.Info("Database file not found, creating a new one", "path", s.filePath)
		doc := DefaultDocument()
		if err := s.Save(doc); err != nil {
			return nil, false, fmt.Errorf("creating database file: %w", err)
		}
		return doc, true, nil
	}

	doc, err := s.Migrate(s.Load())
	if err != nil {
		return nil, false, err
	}
	slog.Info("Database loaded successfully",
		"path", s.filePath,
		"products", len(doc.Products),
		"clients", len(doc.Clients),
		"transactions", len(doc.Transactions))
	return doc, false, nil
}

// Load reads the document from disk. It never fails: a missing or unparsable
// file yields a fresh default document and the condition is logged for
// operators. Fields absent on disk keep their defaults, so documents written
// by older versions always come back complete.
func (s *Store) Load() *models.Document {
	doc := DefaultDocument()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		slog.Warn("Could not read database file, serving defaults", "path", s.filePath, "error", err)
		return doc
	}

	if err := json.Unmarshal(data, doc); err != nil {
		slog.Error("Could not parse database file, serving defaults", "path", s.filePath, "error", err)
		return DefaultDocument()
	}

	// A file written before one of the collections existed unmarshals that
	// collection as null; callers always see a usable slice.
	if doc.Products == nil {
		doc.Products = []models.Product{}
	}
	if doc.Clients == nil {
		doc.Clients = []models.Client{}
	}
	if doc.Transactions == nil {
		doc.Transactions = []models.Transaction{}
	}

	return doc
}

// Migrate brings a loaded document up to the current schema: missing
// top-level values are filled from defaults, each collection is filtered
// through its validator, products get their timestamps backfilled and the
// result is persisted. Running it twice yields the same document.
func (s *Store) Migrate(doc *models.Document) (*models.Document, error) {
	def := DefaultDocument()

	if doc.Version == "" {
		doc.Version = def.Version
	}
	if doc.Settings.Currency == "" {
		doc.Settings.Currency = def.Settings.Currency
	}
	if doc.Settings.Language == "" {
		doc.Settings.Language = def.Settings.Language
	}
	if doc.Settings.Timezone == "" {
		doc.Settings.Timezone = def.Settings.Timezone
	}
	if doc.Metadata.Created == "" {
		doc.Metadata.Created = def.Metadata.Created
	}
	if !(doc.Rate > 0) || math.IsInf(doc.Rate, 0) {
		slog.Warn("Invalid rate in database, restoring default", "rate", doc.Rate, "default", models.DefaultRate)
		doc.Rate = models.DefaultRate
	}

	now := time.Now().UTC().Format(time.RFC3339)

	products := make([]models.Product, 0, len(doc.Products))
	for _, p := range doc.Products {
		if !p.Valid() {
			slog.Warn("Dropping invalid product during migration", "id", p.ID, "name", p.Name)
			continue
		}
		if p.CreatedAt == "" {
			p.CreatedAt = now
		}
		if p.UpdatedAt == "" {
			p.UpdatedAt = now
		}
		products = append(products, p)
	}
	doc.Products = products

	clients := make([]models.Client, 0, len(doc.Clients))
	for _, c := range doc.Clients {
		if !c.Valid() {
			slog.Warn("Dropping invalid client during migration", "id", c.ID, "name", c.Name)
			continue
		}
		clients = append(clients, c)
	}
	doc.Clients = clients

	transactions := make([]models.Transaction, 0, len(doc.Transactions))
	for _, t := range doc.Transactions {
		if !t.Valid() {
			slog.Warn("Dropping invalid transaction during migration", "id", t.ID)
			continue
		}
		transactions = append(transactions, t)
	}
	doc.Transactions = transactions

	if err := s.Save(doc); err != nil {
		return nil, fmt.Errorf("persisting migrated document: %w", err)
	}
	return doc, nil
}

// Update runs fn against the current document under the store mutex and
// persists the result. An error from fn aborts the cycle with nothing
// written. This is the only way to mutate existing state: holding the lock
// across the whole load-mutate-save cycle is what rules out the
// last-write-wins race between concurrent callers.
func (s *Store) Update(fn func(doc *models.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.Load()
	if err := fn(doc); err != nil {
		return err
	}
	return s.save(doc)
}

// Save stamps lastModified and writes the whole document to disk, replacing
// whatever is there. Used for seeding and full replacement; incremental
// mutations go through Update.
func (s *Store) Save(doc *models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(doc)
}

// save writes the document via a uniquely named temp file renamed over the
// database file, so a concurrent reader never observes a partially written
// document and two writes never contend for the same temp path. Callers
// hold s.mu.
func (s *Store) save(doc *models.Document) error {
	doc.Metadata.LastModified = time.Now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling document: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.filePath), 0755); err != nil {
		return fmt.Errorf("error creating database directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.filePath), filepath.Base(s.filePath)+".*.tmp")
	if err != nil {
		return fmt.Errorf("error creating temp file: %w", err)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("error setting temp file mode: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("error writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("error closing temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.filePath); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("error replacing database file: %w", err)
	}

	return nil
}
