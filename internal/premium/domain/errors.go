package domain

import "errors"

var (
	// ErrNotFound is returned when a premium id resolves to nothing.
	ErrNotFound = errors.New("premium not found")
	// ErrContractNotFound is returned when the premium references a
	// contract that does not exist.
	ErrContractNotFound = errors.New("premium contract not found")
	// ErrAlreadyConfirmed is returned when a confirmation arrives for a
	// premium that already left EN_ATTENTE.
	ErrAlreadyConfirmed = errors.New("premium payment already confirmed")
	// ErrInvalidPaymentStatus is returned for confirmation statuses other
	// than REUSSI or ECHOUE.
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
	// ErrInvalidPaymentMode is returned for unknown payment modes.
	ErrInvalidPaymentMode = errors.New("invalid payment mode")
	// ErrInvalidAmount is returned for non-positive premium amounts.
	ErrInvalidAmount = errors.New("premium amount must be positive")
	// ErrDuplicateReference is returned when the payment reference was
	// already used by another premium.
	ErrDuplicateReference = errors.New("premium payment reference already used")
)
