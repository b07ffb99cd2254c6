package provider

import (
	"context"

	"github.com/stripe/stripe-go/v79"
)

// MetadataUserIDKey is the customer/session metadata key linking a
// provider record back to an auth-provider user id.
const MetadataUserIDKey = "userId"

// GuestUserID is the sentinel written into checkout metadata when the
// caller has no authenticated session.
const GuestUserID = "guest"

// PaymentsProvider is the narrow payments surface the resolver and the
// checkout creator need. The production implementation wraps an
// explicitly constructed Stripe client so tests can substitute a fake.
type PaymentsProvider interface {
	// SearchCustomersByUserID returns customers whose metadata links
	// them to the given user id, in provider-default order.
	SearchCustomersByUserID(ctx context.Context, userID string) ([]*stripe.Customer, error)

	// ListCustomersByEmail returns customers with an exact email match.
	ListCustomersByEmail(ctx context.Context, email string) ([]*stripe.Customer, error)

	// ListSubscriptions returns a customer's subscriptions in the given status.
	ListSubscriptions(ctx context.Context, customerID string, status string) ([]*stripe.Subscription, error)

	// GetSubscription retrieves a single subscription by id.
	GetSubscription(ctx context.Context, subscriptionID string) (*stripe.Subscription, error)

	// ListRecentCheckoutSessions returns the most recent checkout
	// sessions across all customers.
	ListRecentCheckoutSessions(ctx context.Context) ([]*stripe.CheckoutSession, error)

	// TagCustomer writes the user-id linkage metadata onto a customer.
	TagCustomer(ctx context.Context, customerID, userID string) error

	// CreateCustomer creates a customer stamped with linkage metadata.
	CreateCustomer(ctx context.Context, email, userID string) (*stripe.Customer, error)

	// GetPrice retrieves a price by id.
	GetPrice(ctx context.Context, priceID string) (*stripe.Price, error)

	// ListActivePrices returns active prices with expanded product data.
	ListActivePrices(ctx context.Context) ([]*stripe.Price, error)

	// CreateCheckoutSession creates a hosted checkout session.
	CreateCheckoutSession(ctx context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// ProviderError carries a provider-level error code and message so
// handlers can surface them without depending on the SDK's error type.
type ProviderError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ProviderError) Error() string {
	return e.Message
}
