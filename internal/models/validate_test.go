package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int             { return &v }
func float64Ptr(v float64) *float64 { return &v }

func TestProductValid(t *testing.T) {
	tests := []struct {
		name    string
		product Product
		want    bool
	}{
		{
			name:    "minimal valid product",
			product: Product{Name: "Mouse", Price: 15},
			want:    true,
		},
		{
			name:    "full valid product",
			product: Product{ID: "p1", Name: "Teclado", Price: 25.5, Category: CategoryAccessories, Available: intPtr(10)},
			want:    true,
		},
		{
			name:    "zero price is valid",
			product: Product{Name: "Sticker", Price: 0},
			want:    true,
		},
		{
			name:    "zero quantity is valid",
			product: Product{Name: "Mouse", Price: 15, Available: intPtr(0)},
			want:    true,
		},
		{
			name:    "missing name",
			product: Product{Price: 15},
			want:    false,
		},
		{
			name:    "negative price",
			product: Product{Name: "Mouse", Price: -1},
			want:    false,
		},
		{
			name:    "negative quantity",
			product: Product{Name: "Mouse", Price: 15, Available: intPtr(-3)},
			want:    false,
		},
		{
			name:    "unknown category is rejected, not coerced",
			product: Product{Name: "Mouse", Price: 15, Category: "juguetes"},
			want:    false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.product.Valid())
		})
	}
}

func TestClientValid(t *testing.T) {
	tests := []struct {
		name   string
		client Client
		want   bool
	}{
		{
			name:   "minimal valid client",
			client: Client{Name: "Maria", NationalID: "V-12345678"},
			want:   true,
		},
		{
			name:   "zero balance is valid",
			client: Client{Name: "Maria", NationalID: "V-12345678", Balance: float64Ptr(0)},
			want:   true,
		},
		{
			name:   "missing name",
			client: Client{NationalID: "V-12345678"},
			want:   false,
		},
		{
			name:   "missing cedula",
			client: Client{Name: "Maria"},
			want:   false,
		},
		{
			name:   "negative balance",
			client: Client{Name: "Maria", NationalID: "V-12345678", Balance: float64Ptr(-10)},
			want:   false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.client.Valid())
		})
	}
}

func TestTransactionValid(t *testing.T) {
	tests := []struct {
		name string
		tx   Transaction
		want bool
	}{
		{
			name: "empty items with zero total",
			tx:   Transaction{ClientID: "c1", Items: []TransactionItem{}, Total: 0},
			want: true,
		},
		{
			name: "full valid transaction",
			tx: Transaction{
				ClientID:      "c1",
				Items:         []TransactionItem{{ProductID: "p1", Quantity: 2, Price: 15}},
				Total:         30,
				PaymentMethod: PaymentMobile,
				Status:        StatusCompleted,
			},
			want: true,
		},
		{
			name: "missing client id",
			tx:   Transaction{Items: []TransactionItem{}, Total: 10},
			want: false,
		},
		{
			name: "absent items sequence",
			tx:   Transaction{ClientID: "c1", Total: 10},
			want: false,
		},
		{
			name: "negative total",
			tx:   Transaction{ClientID: "c1", Items: []TransactionItem{}, Total: -5},
			want: false,
		},
		{
			name: "unknown payment method",
			tx:   Transaction{ClientID: "c1", Items: []TransactionItem{}, Total: 10, PaymentMethod: "bitcoin"},
			want: false,
		},
		{
			name: "unknown status",
			tx:   Transaction{ClientID: "c1", Items: []TransactionItem{}, Total: 10, Status: "enviada"},
			want: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.tx.Valid())
		})
	}
}
