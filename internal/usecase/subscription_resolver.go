package usecase

import (
	"context"

	"github.com/stripe/stripe-go/v79"
	"go.uber.org/zap"

	"github.com/kaokien/coach-josh-official/internal/domain/entity"
	"github.com/kaokien/coach-josh-official/internal/domain/provider"
)

// SubscriptionResolver determines whether a user currently holds an
// active or trialing subscription. Stripe is the sole source of truth;
// nothing is cached or persisted locally, every call re-queries the
// provider.
//
// Resolution runs an ordered chain of lookup strategies. Each strategy
// returns a definitive resolution or nil for "inconclusive"; the
// resolver stops at the first definitive result and falls back to
// no_active_subscription when every strategy comes up empty. Any
// provider failure aborts the whole chain fail-closed.
type SubscriptionResolver struct {
	logger     *zap.Logger
	strategies []lookupStrategy
}

func NewSubscriptionResolver(payments provider.PaymentsProvider, logger *zap.Logger) *SubscriptionResolver {
	return &SubscriptionResolver{
		logger: logger,
		strategies: []lookupStrategy{
			&customerLookup{payments: payments, logger: logger},
			&sessionScan{payments: payments, logger: logger},
		},
	}
}

// Resolve checks the subscription status for the given user. An empty
// userID means no authenticated session; that is a precondition
// failure, not a lookup, and triggers no provider call.
func (r *SubscriptionResolver) Resolve(ctx context.Context, userID, email string) *entity.Resolution {
	if userID == "" {
		return &entity.Resolution{Reason: entity.ReasonNotAuthenticated}
	}

	for _, s := range r.strategies {
		res, err := s.resolve(ctx, userID, email)
		if err != nil {
			r.logger.Error("Subscription resolution aborted",
				zap.String("strategy", s.name()),
				zap.String("user_id", userID),
				zap.Error(err))
			return &entity.Resolution{Reason: entity.ReasonError, Err: err}
		}
		if res != nil {
			r.logger.Info("Subscription resolved",
				zap.String("strategy", s.name()),
				zap.String("user_id", userID),
				zap.Bool("subscribed", res.Subscribed),
				zap.String("reason", res.Reason))
			return res
		}
	}

	return &entity.Resolution{Reason: entity.ReasonNoActiveSubscription}
}

type lookupStrategy interface {
	name() string
	// resolve returns a definitive resolution, or nil when this
	// strategy cannot decide and the next one should run.
	resolve(ctx context.Context, userID, email string) (*entity.Resolution, error)
}

// customerLookup gathers candidate customers by linkage metadata, then
// by email, and scans them for an active subscription before falling
// back to trialing. Duplicate customers per user do occur (created via
// email before metadata linking existed), which is why all candidates
// are scanned rather than assuming uniqueness.
type customerLookup struct {
	payments provider.PaymentsProvider
	logger   *zap.Logger
}

func (s *customerLookup) name() string { return "customer_lookup" }

func (s *customerLookup) resolve(ctx context.Context, userID, email string) (*entity.Resolution, error) {
	customers, err := s.payments.SearchCustomersByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("Customers found by user id metadata",
		zap.String("user_id", userID),
		zap.Int("count", len(customers)))

	if len(customers) == 0 {
		if email == "" {
			return &entity.Resolution{Reason: entity.ReasonNoEmail}, nil
		}
		byEmail, err := s.payments.ListCustomersByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		s.logger.Debug("Customers found by email fallback",
			zap.String("email", email),
			zap.Int("count", len(byEmail)))
		customers = append(customers, byEmail...)
	}

	if len(customers) == 0 {
		return &entity.Resolution{Reason: entity.ReasonNoCustomer}, nil
	}

	// Active status takes strict priority over trialing even when the
	// two exist across different customer records, so all candidates
	// are exhausted for active before the trialing pass starts.
	for _, status := range []stripe.SubscriptionStatus{
		stripe.SubscriptionStatusActive,
		stripe.SubscriptionStatusTrialing,
	} {
		for _, cust := range customers {
			subs, err := s.payments.ListSubscriptions(ctx, cust.ID, string(status))
			if err != nil {
				return nil, err
			}
			if len(subs) == 0 {
				continue
			}
			// First match wins; a user is expected to hold at most
			// one paid subscription in normal operation.
			sub := subs[0]
			return &entity.Resolution{
				Subscribed: true,
				Subscription: &entity.SubscriptionSummary{
					ID:         sub.ID,
					Status:     string(sub.Status),
					CustomerID: cust.ID,
				},
			}, nil
		}
	}

	return nil, nil
}

// sessionScan is the last-resort recovery path: checkout can complete
// without the metadata linkage landing (webhook lag, redirect races),
// leaving a paying user invisible to customer lookups. A bounded window
// of recent sessions is scanned for one carrying the user's id and a
// live subscription. On a hit the owning customer is tagged so future
// checks resolve via the fast path; that repair write is best-effort
// and never affects the result.
type sessionScan struct {
	payments provider.PaymentsProvider
	logger   *zap.Logger
}

func (s *sessionScan) name() string { return "session_scan" }

func (s *sessionScan) resolve(ctx context.Context, userID, _ string) (*entity.Resolution, error) {
	sessions, err := s.payments.ListRecentCheckoutSessions(ctx)
	if err != nil {
		return nil, err
	}

	for _, sess := range sessions {
		if sess.Metadata[provider.MetadataUserIDKey] != userID || sess.Subscription == nil {
			continue
		}

		sub, err := s.payments.GetSubscription(ctx, sess.Subscription.ID)
		if err != nil {
			return nil, err
		}
		if sub.Status != stripe.SubscriptionStatusActive && sub.Status != stripe.SubscriptionStatusTrialing {
			continue
		}

		s.logger.Info("Recovered subscription via checkout session",
			zap.String("session_id", sess.ID),
			zap.String("subscription_id", sub.ID),
			zap.String("user_id", userID))

		if sess.Customer != nil {
			if err := s.payments.TagCustomer(ctx, sess.Customer.ID, userID); err != nil {
				s.logger.Warn("Customer metadata backfill failed",
					zap.String("customer_id", sess.Customer.ID),
					zap.String("user_id", userID),
					zap.Error(err))
			}
		}

		res := &entity.Resolution{
			Subscribed: true,
			Subscription: &entity.SubscriptionSummary{
				ID:     sub.ID,
				Status: string(sub.Status),
			},
		}
		if sess.Customer != nil {
			res.Subscription.CustomerID = sess.Customer.ID
		}
		return res, nil
	}

	return nil, nil
}
