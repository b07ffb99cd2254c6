package usecase

import (
	"context"

	"go.uber.org/zap"
)

// welcomeEvent triggers the post-signup email sequence.
const welcomeEvent = "sampler_downloaded"

// ContactList is the email/CRM provider surface the marketing flow needs.
type ContactList interface {
	CreateContact(ctx context.Context, email, source string) error
	SendEvent(ctx context.Context, email, eventName string) error
}

// MarketingService subscribes visitors to the mailing list and kicks
// off the welcome sequence.
type MarketingService struct {
	list   ContactList
	logger *zap.Logger
}

func NewMarketingService(list ContactList, logger *zap.Logger) *MarketingService {
	return &MarketingService{list: list, logger: logger}
}

func (s *MarketingService) Subscribe(ctx context.Context, email, source string) error {
	if err := s.list.CreateContact(ctx, email, source); err != nil {
		return err
	}

	// The contact exists at this point; a failed event send only delays
	// the welcome email, so it is not surfaced to the caller.
	if err := s.list.SendEvent(ctx, email, welcomeEvent); err != nil {
		s.logger.Warn("Welcome event send failed",
			zap.String("email", email),
			zap.Error(err))
	}

	s.logger.Info("Contact subscribed",
		zap.String("email", email),
		zap.String("source", source))
	return nil
}
