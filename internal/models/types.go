package models

// ErrorResponse represents the standard error response format
type ErrorResponse struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details,omitempty"`
}

type ErrorDetail struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

// SchemaVersion is the current version of the persisted document schema.
const SchemaVersion = "1.0.0"

// DefaultRate is the fallback currency conversion rate used when the store
// has no usable value.
const DefaultRate = 216.38

// Product categories accepted by the catalog. Unknown values are rejected,
// never coerced.
const (
	CategoryAccessories = "accesorios"
	CategoryComputers   = "computadoras"
	CategoryComponents  = "componentes"
)

// Payment methods accepted on a transaction.
const (
	PaymentCash     = "efectivo"
	PaymentTransfer = "transferencia"
	PaymentMobile   = "pago_movil"
	PaymentZelle    = "zelle"
)

// Transaction states.
const (
	StatusPending   = "pendiente"
	StatusCompleted = "completada"
	StatusCancelled = "cancelada"
)

// Document is the single persisted aggregate: every collection, the currency
// rate and the store settings live in one JSON file. The wire field names are
// the ones the browser UI already speaks, so they stay in Spanish.
type Document struct {
	Version      string        `json:"version"`
	Products     []Product     `json:"products"`
	Clients      []Client      `json:"clients"`
	Transactions []Transaction `json:"transactions"`
	Rate         float64       `json:"rate"`
	Settings     Settings      `json:"settings"`
	Metadata     Metadata      `json:"metadata"`
}

// Settings holds the fixed store-wide presentation settings.
type Settings struct {
	Currency string `json:"currency"`
	Language string `json:"language"`
	Timezone string `json:"timezone"`
}

// Metadata tracks document lifecycle timestamps and counters.
type Metadata struct {
	Created           string `json:"created"`
	LastBackup        string `json:"lastBackup,omitempty"`
	LastModified      string `json:"lastModified,omitempty"`
	TotalTransactions int    `json:"totalTransactions"`
}

// Product is a catalog entry. Available is a pointer because the quantity is
// optional on the wire and zero is a meaningful value.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"nombre"`
	Price       float64 `json:"precio"`
	Category    string  `json:"categoria,omitempty"`
	Available   *int    `json:"DISPONIBLE,omitempty"`
	ImageURL    string  `json:"urlImagen,omitempty"`
	Description string  `json:"descripcion,omitempty"`
	CreatedAt   string  `json:"fechaCreacion,omitempty"`
	UpdatedAt   string  `json:"ultimaActualizacion,omitempty"`
}

// Client is a registered customer. NationalID (cedula) is a secondary
// uniqueness key: no two clients may share one at creation time.
type Client struct {
	ID           string   `json:"id"`
	Name         string   `json:"nombre"`
	Email        string   `json:"email,omitempty"`
	Phone        string   `json:"telefono,omitempty"`
	NationalID   string   `json:"cedula"`
	Balance      *float64 `json:"balance,omitempty"`
	RegisteredAt string   `json:"fechaRegistro,omitempty"`
	LastActivity string   `json:"ultimaActividad,omitempty"`
}

// TransactionItem is one line of a checkout.
type TransactionItem struct {
	ProductID string  `json:"id,omitempty"`
	Name      string  `json:"nombre,omitempty"`
	Quantity  int     `json:"cantidad"`
	Price     float64 `json:"precio"`
}

// Transaction is an append-only checkout record. ClientID is not enforced as
// a foreign key; dangling references are tolerated.
type Transaction struct {
	ID            string            `json:"id"`
	ClientID      string            `json:"clienteId"`
	Items         []TransactionItem `json:"productos"`
	Total         float64           `json:"total"`
	PaymentMethod string            `json:"metodoPago,omitempty"`
	Status        string            `json:"estado,omitempty"`
	Date          string            `json:"fecha,omitempty"`
	Notes         string            `json:"notas,omitempty"`
}

// ProductUpdate carries the fields a PUT /api/products/{id} may change.
// Pointers distinguish "not supplied" from a zero value so updates stay
// shallow merges.
type ProductUpdate struct {
	Name        *string  `json:"nombre"`
	Price       *float64 `json:"precio"`
	Category    *string  `json:"categoria"`
	Available   *int     `json:"DISPONIBLE"`
	ImageURL    *string  `json:"urlImagen"`
	Description *string  `json:"descripcion"`
}

// ClientUpdate carries the fields a PUT /api/clients/{id} may change.
// Cedula uniqueness is deliberately not re-checked on update.
type ClientUpdate struct {
	Name       *string  `json:"nombre"`
	Email      *string  `json:"email"`
	Phone      *string  `json:"telefono"`
	NationalID *string  `json:"cedula"`
	Balance    *float64 `json:"balance"`
}

// RateRequest is the body of PUT /api/rate.
type RateRequest struct {
	Rate float64 `json:"rate"`
}

// RateResponse is the body of GET/PUT /api/rate.
type RateResponse struct {
	Rate float64 `json:"rate"`
}

// OKResponse acknowledges a mutation that has no richer payload.
type OKResponse struct {
	OK bool `json:"ok"`
}
