package errors

import "errors"

var (
	// ErrMissingPrice indicates a checkout request without a price reference
	ErrMissingPrice = errors.New("price id is required")

	// ErrInvalidPrice indicates the price reference does not exist at the provider
	ErrInvalidPrice = errors.New("invalid price id")

	// ErrNoActiveSubscription indicates the customer has no active subscription
	ErrNoActiveSubscription = errors.New("no active subscription found")

	// ErrNotAuthenticated indicates the caller has no authenticated session
	ErrNotAuthenticated = errors.New("no authenticated user found in context")
)
