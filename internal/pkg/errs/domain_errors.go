package errs

import "errors"

// Domain-specific sentinel errors for the scheduling usecase layers
var (
	// Availability / date parsing errors
	ErrMalformedDate = errors.New("malformed date")

	// Booking errors
	ErrBookingNotFound = errors.New("booking not found")
	ErrSlotConflict    = errors.New("slot already booked")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrStoreUnavailable = errors.New("store unavailable")
)
