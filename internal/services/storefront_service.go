package services

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"storefront-api/internal/models"
	"storefront-api/internal/store"
	"storefront-api/internal/stream"

	"github.com/google/uuid"
)

// Broadcast topics sent to live listeners when a collection changes.
const (
	TopicProducts     = "products"
	TopicClients      = "clients"
	TopicRate         = "rate"
	TopicTransactions = "transactions"
)

// StorefrontService implements the collection operations over the document
// store. Every mutation runs as a load-mutate-save cycle inside the store
// lock (store.Update), so concurrent writers, including backup snapshots,
// cannot silently overwrite each other's changes.
type StorefrontService struct {
	store    *store.Store
	notifier *stream.Notifier
}

// NewStorefrontService creates the service over the given store and notifier.
func NewStorefrontService(st *store.Store, notifier *stream.Notifier) *StorefrontService {
	return &StorefrontService{
		store:    st,
		notifier: notifier,
	}
}

// nowISO keeps sub-second precision so that a record updated right after
// creation still carries a strictly newer timestamp.
func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

func shortUUID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// ListProducts returns all products in display order.
func (s *StorefrontService) ListProducts() []models.Product {
	return s.store.Load().Products
}

// CreateProduct validates and appends a product, assigning an id and
// timestamps where absent, then broadcasts the change.
func (s *StorefrontService) CreateProduct(p models.Product) (*models.Product, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: product", ErrInvalidRecord)
	}

	if p.ID == "" {
		p.ID = "p_" + shortUUID()
	}
	now := nowISO()
	if p.CreatedAt == "" {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	err := s.store.Update(func(doc *models.Document) error {
		doc.Products = append(doc.Products, p)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Broadcast(TopicProducts)
	slog.Info("Product created", "id", p.ID, "name", p.Name)
	return &p, nil
}

// UpdateProduct shallow-merges the supplied fields over the stored product,
// restamps ultimaActualizacion and persists. The merged record must still
// pass validation, so an update cannot corrupt a stored product.
func (s *StorefrontService) UpdateProduct(id string, upd models.ProductUpdate) (*models.Product, error) {
	var merged models.Product

	err := s.store.Update(func(doc *models.Document) error {
		idx := -1
		for i := range doc.Products {
			if doc.Products[i].ID == id {
				idx = i
				break
			}
		}
		if idx == -1 {
			return fmt.Errorf("%w: product %s", ErrNotFound, id)
		}

		merged = doc.Products[idx]
		if upd.Name != nil {
			merged.Name = *upd.Name
		}
		if upd.Price != nil {
			merged.Price = *upd.Price
		}
		if upd.Category != nil {
			merged.Category = *upd.Category
		}
		if upd.Available != nil {
			merged.Available = upd.Available
		}
		if upd.ImageURL != nil {
			merged.ImageURL = *upd.ImageURL
		}
		if upd.Description != nil {
			merged.Description = *upd.Description
		}
		merged.UpdatedAt = nowISO()

		if !merged.Valid() {
			return fmt.Errorf("%w: product %s", ErrInvalidRecord, id)
		}

		doc.Products[idx] = merged
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Broadcast(TopicProducts)
	slog.Info("Product updated", "id", id)
	return &merged, nil
}

// DeleteProduct removes a product by id and broadcasts the change.
func (s *StorefrontService) DeleteProduct(id string) error {
	err := s.store.Update(func(doc *models.Document) error {
		idx := -1
		for i := range doc.Products {
			if doc.Products[i].ID == id {
				idx = i
				break
			}
		}
		if idx == -1 {
			return fmt.Errorf("%w: product %s", ErrNotFound, id)
		}

		doc.Products = append(doc.Products[:idx], doc.Products[idx+1:]...)
		return nil
	})
	if err != nil {
		return err
	}

	s.notifier.Broadcast(TopicProducts)
	slog.Info("Product deleted", "id", id)
	return nil
}

// ListClients returns all registered clients.
func (s *StorefrontService) ListClients() []models.Client {
	return s.store.Load().Clients
}

// CreateClient validates and appends a client. The cedula must not collide
// with any existing client; a duplicate is a conflict and nothing is
// persisted.
func (s *StorefrontService) CreateClient(c models.Client) (*models.Client, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: client", ErrInvalidRecord)
	}

	if c.ID == "" {
		c.ID = "client_" + shortUUID()
	}
	now := nowISO()
	if c.RegisteredAt == "" {
		c.RegisteredAt = now
	}
	c.LastActivity = now

	err := s.store.Update(func(doc *models.Document) error {
		for i := range doc.Clients {
			if doc.Clients[i].NationalID == c.NationalID {
				return fmt.Errorf("%w: %s", ErrDuplicateNationalID, c.NationalID)
			}
		}

		doc.Clients = append(doc.Clients, c)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Broadcast(TopicClients)
	slog.Info("Client created", "id", c.ID, "cedula", c.NationalID)
	return &c, nil
}

// UpdateClient shallow-merges the supplied fields over the stored client and
// restamps ultimaActividad. Cedula uniqueness is not re-checked here.
func (s *StorefrontService) UpdateClient(id string, upd models.ClientUpdate) (*models.Client, error) {
	var merged models.Client

	err := s.store.Update(func(doc *models.Document) error {
		idx := -1
		for i := range doc.Clients {
			if doc.Clients[i].ID == id {
				idx = i
				break
			}
		}
		if idx == -1 {
			return fmt.Errorf("%w: client %s", ErrNotFound, id)
		}

		merged = doc.Clients[idx]
		if upd.Name != nil {
			merged.Name = *upd.Name
		}
		if upd.Email != nil {
			merged.Email = *upd.Email
		}
		if upd.Phone != nil {
			merged.Phone = *upd.Phone
		}
		if upd.NationalID != nil {
			merged.NationalID = *upd.NationalID
		}
		if upd.Balance != nil {
			merged.Balance = upd.Balance
		}
		merged.LastActivity = nowISO()

		if !merged.Valid() {
			return fmt.Errorf("%w: client %s", ErrInvalidRecord, id)
		}

		doc.Clients[idx] = merged
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Broadcast(TopicClients)
	slog.Info("Client updated", "id", id)
	return &merged, nil
}

// DeleteClient removes a client by id and broadcasts the change.
func (s *StorefrontService) DeleteClient(id string) error {
	err := s.store.Update(func(doc *models.Document) error {
		idx := -1
		for i := range doc.Clients {
			if doc.Clients[i].ID == id {
				idx = i
				break
			}
		}
		if idx == -1 {
			return fmt.Errorf("%w: client %s", ErrNotFound, id)
		}

		doc.Clients = append(doc.Clients[:idx], doc.Clients[idx+1:]...)
		return nil
	})
	if err != nil {
		return err
	}

	s.notifier.Broadcast(TopicClients)
	slog.Info("Client deleted", "id", id)
	return nil
}

// Checkout validates and appends a transaction to the history, assigning a
// TXN id and timestamp where absent and bumping the transaction counter.
func (s *StorefrontService) Checkout(t models.Transaction) (*models.Transaction, error) {
	if t.ID == "" {
		t.ID = "TXN-" + strings.ToUpper(shortUUID())
	}
	if t.Date == "" {
		t.Date = nowISO()
	}

	if !t.Valid() {
		return nil, fmt.Errorf("%w: transaction", ErrInvalidRecord)
	}

	err := s.store.Update(func(doc *models.Document) error {
		doc.Transactions = append(doc.Transactions, t)
		doc.Metadata.TotalTransactions++
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Broadcast(TopicTransactions)
	slog.Info("Transaction recorded", "id", t.ID, "client_id", t.ClientID, "total", t.Total)
	return &t, nil
}

// ListTransactions returns the full transaction history.
func (s *StorefrontService) ListTransactions() []models.Transaction {
	return s.store.Load().Transactions
}

// GetRate returns the current conversion rate, falling back to the default
// when the stored value is unusable.
func (s *StorefrontService) GetRate() float64 {
	rate := s.store.Load().Rate
	if !(rate > 0) || math.IsInf(rate, 0) {
		return models.DefaultRate
	}
	return rate
}

// SetRate persists a new conversion rate and broadcasts it. Non-positive or
// non-finite values are rejected and the stored rate is unchanged.
func (s *StorefrontService) SetRate(rate float64) (float64, error) {
	if !(rate > 0) || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0, fmt.Errorf("%w: got %v", ErrInvalidRate, rate)
	}

	err := s.store.Update(func(doc *models.Document) error {
		doc.Rate = rate
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.notifier.Broadcast(TopicRate)
	slog.Info("Rate updated", "rate", rate)
	return rate, nil
}
