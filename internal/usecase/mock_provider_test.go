package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/stripe/stripe-go/v79"
)

// MockPaymentsProvider is a testify mock of provider.PaymentsProvider.
type MockPaymentsProvider struct {
	mock.Mock
}

func (m *MockPaymentsProvider) SearchCustomersByUserID(ctx context.Context, userID string) ([]*stripe.Customer, error) {
	args := m.Called(ctx, userID)
	customers, _ := args.Get(0).([]*stripe.Customer)
	return customers, args.Error(1)
}

func (m *MockPaymentsProvider) ListCustomersByEmail(ctx context.Context, email string) ([]*stripe.Customer, error) {
	args := m.Called(ctx, email)
	customers, _ := args.Get(0).([]*stripe.Customer)
	return customers, args.Error(1)
}

func (m *MockPaymentsProvider) ListSubscriptions(ctx context.Context, customerID string, status string) ([]*stripe.Subscription, error) {
	args := m.Called(ctx, customerID, status)
	subs, _ := args.Get(0).([]*stripe.Subscription)
	return subs, args.Error(1)
}

func (m *MockPaymentsProvider) GetSubscription(ctx context.Context, subscriptionID string) (*stripe.Subscription, error) {
	args := m.Called(ctx, subscriptionID)
	sub, _ := args.Get(0).(*stripe.Subscription)
	return sub, args.Error(1)
}

func (m *MockPaymentsProvider) ListRecentCheckoutSessions(ctx context.Context) ([]*stripe.CheckoutSession, error) {
	args := m.Called(ctx)
	sessions, _ := args.Get(0).([]*stripe.CheckoutSession)
	return sessions, args.Error(1)
}

func (m *MockPaymentsProvider) TagCustomer(ctx context.Context, customerID, userID string) error {
	args := m.Called(ctx, customerID, userID)
	return args.Error(0)
}

func (m *MockPaymentsProvider) CreateCustomer(ctx context.Context, email, userID string) (*stripe.Customer, error) {
	args := m.Called(ctx, email, userID)
	cust, _ := args.Get(0).(*stripe.Customer)
	return cust, args.Error(1)
}

func (m *MockPaymentsProvider) GetPrice(ctx context.Context, priceID string) (*stripe.Price, error) {
	args := m.Called(ctx, priceID)
	p, _ := args.Get(0).(*stripe.Price)
	return p, args.Error(1)
}

func (m *MockPaymentsProvider) ListActivePrices(ctx context.Context) ([]*stripe.Price, error) {
	args := m.Called(ctx)
	prices, _ := args.Get(0).([]*stripe.Price)
	return prices, args.Error(1)
}

func (m *MockPaymentsProvider) CreateCheckoutSession(ctx context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	args := m.Called(ctx, params)
	sess, _ := args.Get(0).(*stripe.CheckoutSession)
	return sess, args.Error(1)
}
