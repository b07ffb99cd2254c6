package usecase

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"go.uber.org/zap"

	domainErrors "github.com/kaokien/coach-josh-official/internal/domain/errors"
	"github.com/kaokien/coach-josh-official/internal/domain/provider"
)

// CheckoutService drives the hosted checkout flow: one-time merch
// purchases and Corner Man subscriptions. Guests may check out; the
// session metadata then carries the guest sentinel instead of a user id.
type CheckoutService struct {
	payments provider.PaymentsProvider
	baseURL  string
	logger   *zap.Logger
}

func NewCheckoutService(payments provider.PaymentsProvider, baseURL string, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		payments: payments,
		baseURL:  baseURL,
		logger:   logger,
	}
}

// CheckoutInput carries everything needed to build a hosted session.
// UserID and Email are empty for guest checkouts.
type CheckoutInput struct {
	PriceID     string
	Mode        string // "payment" or "subscription"
	SuccessPath string
	UserID      string
	Email       string
}

// CreateSession validates the price, resolves or creates the owning
// customer, and returns the hosted checkout redirect URL.
func (s *CheckoutService) CreateSession(ctx context.Context, in CheckoutInput) (string, error) {
	if in.PriceID == "" {
		return "", domainErrors.ErrMissingPrice
	}

	if _, err := s.payments.GetPrice(ctx, in.PriceID); err != nil {
		s.logger.Warn("Price lookup failed",
			zap.String("price_id", in.PriceID),
			zap.Error(err))
		return "", fmt.Errorf("%w: %s", domainErrors.ErrInvalidPrice, in.PriceID)
	}

	metaUserID := in.UserID
	if metaUserID == "" {
		metaUserID = provider.GuestUserID
	}

	// Prefer an existing linked customer; otherwise create one stamped
	// with the user id at creation time. Stamping up front is race-free
	// linkage, unlike the resolver's reactive session-scan backfill.
	var customerID string
	if in.UserID != "" {
		customers, err := s.payments.SearchCustomersByUserID(ctx, in.UserID)
		if err != nil {
			return "", err
		}
		if len(customers) > 0 {
			customerID = customers[0].ID
		} else if in.Email != "" {
			cust, err := s.payments.CreateCustomer(ctx, in.Email, in.UserID)
			if err != nil {
				return "", err
			}
			customerID = cust.ID
		}
	}

	successURL := fmt.Sprintf("%s%s?success=true&session_id={CHECKOUT_SESSION_ID}", s.baseURL, in.SuccessPath)
	cancelURL := s.baseURL + "?canceled=true"

	mode := stripe.CheckoutSessionModePayment
	if in.Mode == "subscription" {
		mode = stripe.CheckoutSessionModeSubscription
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(mode)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(in.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
	}
	params.AddMetadata(provider.MetadataUserIDKey, metaUserID)

	if customerID != "" {
		params.Customer = stripe.String(customerID)
	} else if in.Email != "" {
		params.CustomerEmail = stripe.String(in.Email)
	}

	if mode == stripe.CheckoutSessionModeSubscription {
		// Stamp the subscription itself so it is linkable without a
		// second lookup once it exists.
		params.SubscriptionData = &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: map[string]string{
				provider.MetadataUserIDKey: metaUserID,
			},
		}
		params.AllowPromotionCodes = stripe.Bool(true)
	}

	sess, err := s.payments.CreateCheckoutSession(ctx, params)
	if err != nil {
		return "", err
	}

	s.logger.Info("Checkout session created",
		zap.String("session_id", sess.ID),
		zap.String("mode", string(mode)),
		zap.String("price_id", in.PriceID),
		zap.String("user_id", metaUserID))

	return sess.URL, nil
}
