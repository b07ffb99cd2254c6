package stripe

import (
	"context"
	"errors"
	"fmt"

	stripego "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"go.uber.org/zap"

	"github.com/kaokien/coach-josh-official/internal/domain/provider"
)

// Query caps. Customer or session counts above these can hide a real
// subscription behind the page boundary; acceptable at current user
// counts, revisit if the member base grows.
const (
	customerSearchLimit   = 10
	customerListLimit     = 10
	subscriptionListLimit = 10
	sessionScanLimit      = 20
	priceListLimit        = 100
)

// Client implements provider.PaymentsProvider against the Stripe API.
// It wraps an explicitly constructed client.API instead of the SDK's
// package-level key so the credential stays in config and tests can
// swap the whole provider out.
type Client struct {
	api    *client.API
	logger *zap.Logger
}

func NewClient(secretKey string, logger *zap.Logger) *Client {
	return &Client{
		api:    client.New(secretKey, nil),
		logger: logger,
	}
}

func (c *Client) SearchCustomersByUserID(ctx context.Context, userID string) ([]*stripego.Customer, error) {
	params := &stripego.CustomerSearchParams{
		SearchParams: stripego.SearchParams{
			Query:   fmt.Sprintf("metadata[%q]:%q", provider.MetadataUserIDKey, userID),
			Limit:   stripego.Int64(customerSearchLimit),
			Context: ctx,
		},
	}

	var customers []*stripego.Customer
	iter := c.api.Customers.Search(params)
	for iter.Next() {
		customers = append(customers, iter.Customer())
	}
	if err := iter.Err(); err != nil {
		return nil, wrapErr("searching customers by user id", err)
	}
	return customers, nil
}

func (c *Client) ListCustomersByEmail(ctx context.Context, email string) ([]*stripego.Customer, error) {
	params := &stripego.CustomerListParams{
		Email: stripego.String(email),
	}
	params.Context = ctx
	params.Limit = stripego.Int64(customerListLimit)

	var customers []*stripego.Customer
	iter := c.api.Customers.List(params)
	for iter.Next() {
		customers = append(customers, iter.Customer())
	}
	if err := iter.Err(); err != nil {
		return nil, wrapErr("listing customers by email", err)
	}
	return customers, nil
}

func (c *Client) ListSubscriptions(ctx context.Context, customerID string, status string) ([]*stripego.Subscription, error) {
	params := &stripego.SubscriptionListParams{
		Customer: stripego.String(customerID),
		Status:   stripego.String(status),
	}
	params.Context = ctx
	params.Limit = stripego.Int64(subscriptionListLimit)

	var subs []*stripego.Subscription
	iter := c.api.Subscriptions.List(params)
	for iter.Next() {
		subs = append(subs, iter.Subscription())
	}
	if err := iter.Err(); err != nil {
		return nil, wrapErr("listing subscriptions", err)
	}
	return subs, nil
}

func (c *Client) GetSubscription(ctx context.Context, subscriptionID string) (*stripego.Subscription, error) {
	params := &stripego.SubscriptionParams{}
	params.Context = ctx

	sub, err := c.api.Subscriptions.Get(subscriptionID, params)
	if err != nil {
		return nil, wrapErr("retrieving subscription", err)
	}
	return sub, nil
}

func (c *Client) ListRecentCheckoutSessions(ctx context.Context) ([]*stripego.CheckoutSession, error) {
	params := &stripego.CheckoutSessionListParams{}
	params.Context = ctx
	params.Limit = stripego.Int64(sessionScanLimit)

	var sessions []*stripego.CheckoutSession
	iter := c.api.CheckoutSessions.List(params)
	for iter.Next() {
		sessions = append(sessions, iter.CheckoutSession())
	}
	if err := iter.Err(); err != nil {
		return nil, wrapErr("listing checkout sessions", err)
	}
	return sessions, nil
}

func (c *Client) TagCustomer(ctx context.Context, customerID, userID string) error {
	params := &stripego.CustomerParams{}
	params.Context = ctx
	params.AddMetadata(provider.MetadataUserIDKey, userID)

	if _, err := c.api.Customers.Update(customerID, params); err != nil {
		return wrapErr("updating customer metadata", err)
	}

	c.logger.Info("Tagged customer with user id",
		zap.String("customer_id", customerID),
		zap.String("user_id", userID))
	return nil
}

func (c *Client) CreateCustomer(ctx context.Context, email, userID string) (*stripego.Customer, error) {
	params := &stripego.CustomerParams{
		Email: stripego.String(email),
	}
	params.Context = ctx
	params.AddMetadata(provider.MetadataUserIDKey, userID)

	cust, err := c.api.Customers.New(params)
	if err != nil {
		return nil, wrapErr("creating customer", err)
	}

	c.logger.Info("Created new Stripe customer",
		zap.String("customer_id", cust.ID),
		zap.String("user_id", userID))
	return cust, nil
}

func (c *Client) GetPrice(ctx context.Context, priceID string) (*stripego.Price, error) {
	params := &stripego.PriceParams{}
	params.Context = ctx

	p, err := c.api.Prices.Get(priceID, params)
	if err != nil {
		return nil, wrapErr("retrieving price", err)
	}
	return p, nil
}

func (c *Client) ListActivePrices(ctx context.Context) ([]*stripego.Price, error) {
	params := &stripego.PriceListParams{
		Active: stripego.Bool(true),
	}
	params.Context = ctx
	params.Limit = stripego.Int64(priceListLimit)
	params.AddExpand("data.product")

	var prices []*stripego.Price
	iter := c.api.Prices.List(params)
	for iter.Next() {
		prices = append(prices, iter.Price())
	}
	if err := iter.Err(); err != nil {
		return nil, wrapErr("listing prices", err)
	}
	return prices, nil
}

func (c *Client) CreateCheckoutSession(ctx context.Context, params *stripego.CheckoutSessionParams) (*stripego.CheckoutSession, error) {
	params.Context = ctx

	sess, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, wrapErr("creating checkout session", err)
	}
	return sess, nil
}

// wrapErr converts SDK errors into provider.ProviderError so callers
// can surface the provider's code and message without importing the SDK
// error type.
func wrapErr(op string, err error) error {
	var stripeErr *stripego.Error
	if errors.As(err, &stripeErr) {
		return fmt.Errorf("%s: %w", op, &provider.ProviderError{
			Code:    string(stripeErr.Code),
			Message: stripeErr.Msg,
		})
	}
	return fmt.Errorf("%s: %w", op, err)
}
