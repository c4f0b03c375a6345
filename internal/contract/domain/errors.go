package domain

import "errors"

var (
	// ErrNotFound is returned when a contract id or number resolves to
	// nothing.
	ErrNotFound = errors.New("contract not found")
	// ErrSubscriptionNotFound flags a contract whose subscription row is
	// gone, a permanent data-integrity problem.
	ErrSubscriptionNotFound = errors.New("contract subscription not found")
	// ErrPremiumFeeNotFound flags a contract whose premium plan row is
	// gone, a permanent data-integrity problem.
	ErrPremiumFeeNotFound = errors.New("contract premium fee not found")
	// ErrAlreadyTerminated is returned when terminating a RESILIE contract.
	ErrAlreadyTerminated = errors.New("contract already terminated")
	// ErrInvalidAmount is returned for non-positive premium amounts.
	ErrInvalidAmount = errors.New("premium amount must be positive")
)
