package models

// Validators are pure predicates: they never mutate the record and never
// fail with an error. Records that do not pass are dropped at load time and
// rejected at the API boundary before anything is persisted.

// Valid reports whether the product satisfies the catalog contract.
func (p Product) Valid() bool {
	if p.Name == "" {
		return false
	}
	if p.Price < 0 {
		return false
	}
	if p.Available != nil && *p.Available < 0 {
		return false
	}
	if p.Category != "" && !ValidCategory(p.Category) {
		return false
	}
	return true
}

// Valid reports whether the client satisfies the registry contract.
func (c Client) Valid() bool {
	if c.Name == "" || c.NationalID == "" {
		return false
	}
	if c.Balance != nil && *c.Balance < 0 {
		return false
	}
	return true
}

// Valid reports whether the transaction satisfies the ledger contract.
// Items must be an actual sequence; an empty one is acceptable, an absent
// one is not.
func (t Transaction) Valid() bool {
	if t.ClientID == "" {
		return false
	}
	if t.Items == nil {
		return false
	}
	if t.Total < 0 {
		return false
	}
	if t.PaymentMethod != "" && !ValidPaymentMethod(t.PaymentMethod) {
		return false
	}
	if t.Status != "" && !ValidStatus(t.Status) {
		return false
	}
	return true
}

// ValidCategory reports whether v is one of the fixed product categories.
func ValidCategory(v string) bool {
	switch v {
	case CategoryAccessories, CategoryComputers, CategoryComponents:
		return true
	}
	return false
}

// ValidPaymentMethod reports whether v is one of the accepted payment methods.
func ValidPaymentMethod(v string) bool {
	switch v {
	case PaymentCash, PaymentTransfer, PaymentMobile, PaymentZelle:
		return true
	}
	return false
}

// ValidStatus reports whether v is one of the accepted transaction states.
func ValidStatus(v string) bool {
	switch v {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}
