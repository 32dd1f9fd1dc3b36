package services

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"storefront-api/internal/models"
	"storefront-api/internal/store"
	"storefront-api/internal/stream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*StorefrontService, *store.Store, *stream.Notifier) {
	t.Helper()
	st := store.NewStore(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, st.Save(store.DefaultDocument()))
	n := stream.NewNotifier()
	return NewStorefrontService(st, n), st, n
}

func drain(ch <-chan string) []string {
	var got []string
	for {
		select {
		case topic := <-ch:
			got = append(got, topic)
		default:
			return got
		}
	}
}

func intPtr(v int) *int             { return &v }
func strPtr(v string) *string       { return &v }
func float64Ptr(v float64) *float64 { return &v }

func TestCreateProductAssignsIDAndTimestamps(t *testing.T) {
	svc, st, n := newTestService(t)
	_, events := n.Subscribe()

	created, err := svc.CreateProduct(models.Product{Name: "Mouse", Price: 15, Category: models.CategoryAccessories})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.NotEmpty(t, created.CreatedAt)
	assert.NotEmpty(t, created.UpdatedAt)

	persisted := st.Load().Products
	require.Len(t, persisted, 1)
	assert.Equal(t, created.ID, persisted[0].ID)

	assert.Equal(t, []string{TopicProducts}, drain(events))
}

func TestCreateProductRejectsInvalidRecord(t *testing.T) {
	svc, st, _ := newTestService(t)

	_, err := svc.CreateProduct(models.Product{Name: "", Price: 10})
	assert.ErrorIs(t, err, ErrInvalidRecord)

	_, err = svc.CreateProduct(models.Product{Name: "Mouse", Price: -1})
	assert.ErrorIs(t, err, ErrInvalidRecord)

	_, err = svc.CreateProduct(models.Product{Name: "Mouse", Price: 10, Category: "juguetes"})
	assert.ErrorIs(t, err, ErrInvalidRecord)

	assert.Empty(t, st.Load().Products)
}

func TestUpdateProductMergesAndRestamps(t *testing.T) {
	svc, st, _ := newTestService(t)

	created, err := svc.CreateProduct(models.Product{Name: "Mouse", Price: 15})
	require.NoError(t, err)

	updated, err := svc.UpdateProduct(created.ID, models.ProductUpdate{Price: float64Ptr(20)})
	require.NoError(t, err)

	assert.Equal(t, 20.0, updated.Price)
	assert.Equal(t, "Mouse", updated.Name, "unsupplied fields keep their values")

	createdAt, err := time.Parse(time.RFC3339, updated.CreatedAt)
	require.NoError(t, err)
	updatedAt, err := time.Parse(time.RFC3339, updated.UpdatedAt)
	require.NoError(t, err)
	assert.True(t, updatedAt.After(createdAt), "ultimaActualizacion must be newer than fechaCreacion")

	assert.Equal(t, 20.0, st.Load().Products[0].Price)
}

func TestUpdateProductRejectsInvalidMerge(t *testing.T) {
	svc, _, _ := newTestService(t)

	created, err := svc.CreateProduct(models.Product{Name: "Mouse", Price: 15})
	require.NoError(t, err)

	_, err = svc.UpdateProduct(created.ID, models.ProductUpdate{Available: intPtr(-1)})
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestProductNotFoundLeavesStoreUntouched(t *testing.T) {
	svc, st, _ := newTestService(t)

	_, err := svc.CreateProduct(models.Product{Name: "Mouse", Price: 15})
	require.NoError(t, err)
	before, err := os.ReadFile(st.FilePath())
	require.NoError(t, err)

	_, err = svc.UpdateProduct("missing", models.ProductUpdate{Price: float64Ptr(1)})
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.DeleteProduct("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	after, err := os.ReadFile(st.FilePath())
	require.NoError(t, err)
	assert.Equal(t, before, after, "a failed operation must not rewrite the database file")
}

func TestDeleteProductRemovesRecord(t *testing.T) {
	svc, st, _ := newTestService(t)

	created, err := svc.CreateProduct(models.Product{Name: "Mouse", Price: 15})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(created.ID))
	assert.Empty(t, st.Load().Products)
}

func TestCreateClientEnforcesCedulaUniqueness(t *testing.T) {
	svc, st, _ := newTestService(t)

	_, err := svc.CreateClient(models.Client{Name: "Maria", NationalID: "V-1"})
	require.NoError(t, err)
	before := st.Load().Clients

	_, err = svc.CreateClient(models.Client{Name: "Pedro", NationalID: "V-1"})
	assert.ErrorIs(t, err, ErrDuplicateNationalID)

	after := st.Load().Clients
	assert.Equal(t, before, after, "a conflicting create must leave the collection unchanged")
}

func TestUpdateClientDoesNotRecheckCedula(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.CreateClient(models.Client{Name: "Maria", NationalID: "V-1"})
	require.NoError(t, err)
	second, err := svc.CreateClient(models.Client{Name: "Pedro", NationalID: "V-2"})
	require.NoError(t, err)

	updated, err := svc.UpdateClient(second.ID, models.ClientUpdate{NationalID: strPtr("V-1")})
	require.NoError(t, err)
	assert.Equal(t, "V-1", updated.NationalID)
}

func TestCheckoutGeneratesTxnIDAndTimestamp(t *testing.T) {
	svc, st, _ := newTestService(t)

	created, err := svc.Checkout(models.Transaction{ClientID: "c1", Items: []models.TransactionItem{}, Total: 0})
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^TXN-[0-9A-F]{8}$`), created.ID)
	_, err = time.Parse(time.RFC3339, created.Date)
	assert.NoError(t, err, "fecha must be an ISO timestamp")

	doc := st.Load()
	require.Len(t, doc.Transactions, 1)
	assert.Equal(t, 1, doc.Metadata.TotalTransactions)

	history := svc.ListTransactions()
	require.Len(t, history, 1)
	assert.Equal(t, created.ID, history[0].ID)
}

func TestCheckoutRejectsInvalidTransaction(t *testing.T) {
	svc, st, _ := newTestService(t)

	// Absent productos sequence.
	_, err := svc.Checkout(models.Transaction{ClientID: "c1", Total: 0})
	assert.ErrorIs(t, err, ErrInvalidRecord)

	// Missing client id.
	_, err = svc.Checkout(models.Transaction{Items: []models.TransactionItem{}, Total: 0})
	assert.ErrorIs(t, err, ErrInvalidRecord)

	assert.Empty(t, st.Load().Transactions)
}

func TestRateGuard(t *testing.T) {
	svc, st, n := newTestService(t)
	_, events := n.Subscribe()

	_, err := svc.SetRate(0)
	assert.ErrorIs(t, err, ErrInvalidRate)
	_, err = svc.SetRate(-5)
	assert.ErrorIs(t, err, ErrInvalidRate)

	assert.Equal(t, models.DefaultRate, svc.GetRate(), "rejected updates must leave the rate unchanged")
	assert.Empty(t, drain(events))

	rate, err := svc.SetRate(250.75)
	require.NoError(t, err)
	assert.Equal(t, 250.75, rate)
	assert.Equal(t, 250.75, svc.GetRate())
	assert.Equal(t, 250.75, st.Load().Rate)
	assert.Equal(t, []string{TopicRate}, drain(events))
}
