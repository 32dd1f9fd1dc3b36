package services

import "errors"

// Sentinel errors for the expected failure modes of storefront operations.
// Handlers map them to HTTP statuses with errors.Is; anything else is a
// store failure and surfaces as a server error.
var (
	// ErrNotFound means the operation targeted an id absent from its
	// collection. No mutation occurred.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidRecord means the candidate record failed validation and was
	// rejected before persistence.
	ErrInvalidRecord = errors.New("record failed validation")

	// ErrDuplicateNationalID means a client create would reuse an existing
	// cedula.
	ErrDuplicateNationalID = errors.New("client with this cedula already exists")

	// ErrInvalidRate means a rate update was not a finite positive number.
	// The stored rate is unchanged.
	ErrInvalidRate = errors.New("rate must be a positive number")
)
