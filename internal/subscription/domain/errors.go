package domain

import "errors"

var (
	// ErrNotFound is returned when a subscription id resolves to nothing.
	ErrNotFound = errors.New("subscription not found")
	// ErrAdmissionRejected wraps the human-readable rejection reason from
	// the admission rules.
	ErrAdmissionRejected = errors.New("subscription rejected")
	// ErrAlreadyConfirmed is returned when a payment confirmation arrives
	// for a subscription that has already left EN_ATTENTE.
	ErrAlreadyConfirmed = errors.New("subscription payment already confirmed")
	// ErrInvalidPaymentStatus is returned for confirmation statuses other
	// than REUSSI or ECHOUE.
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
	// ErrInvalidPaymentMode is returned for unknown payment modes.
	ErrInvalidPaymentMode = errors.New("invalid payment mode")
	// ErrPremiumFeeNotFound is returned when the requested premium plan does
	// not exist for the insurance product.
	ErrPremiumFeeNotFound = errors.New("premium fee not found")
	// ErrInsuranceNotFound is returned when the insurance product does not
	// exist.
	ErrInsuranceNotFound = errors.New("insurance product not found")
	// ErrInvalidRequest is returned when mandatory admission fields are
	// missing.
	ErrInvalidRequest = errors.New("invalid subscription request")
)
