package entity

// Reason codes for a negative subscription resolution.
const (
	ReasonNotAuthenticated     = "not_authenticated"
	ReasonNoEmail              = "no_email"
	ReasonNoCustomer           = "no_customer"
	ReasonNoActiveSubscription = "no_active_subscription"
	ReasonError                = "error"
)

// SubscriptionSummary is the slice of a provider subscription the
// paywall needs to render.
type SubscriptionSummary struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	CustomerID string `json:"customerId,omitempty"`
}

// Resolution is the outcome of a subscription-status check. When
// Subscribed is false, Reason explains why; when Reason is
// ReasonError, Err carries the underlying provider failure.
type Resolution struct {
	Subscribed   bool
	Reason       string
	Subscription *SubscriptionSummary
	Err          error
}
