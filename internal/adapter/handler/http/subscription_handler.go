package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/kaokien/coach-josh-official/internal/domain/entity"
	"github.com/kaokien/coach-josh-official/internal/middleware/auth"
	"github.com/kaokien/coach-josh-official/internal/usecase"
)

type SubscriptionHandler struct {
	logger   *zap.Logger
	resolver *usecase.SubscriptionResolver
}

func NewSubscriptionHandler(logger *zap.Logger, resolver *usecase.SubscriptionResolver) *SubscriptionHandler {
	return &SubscriptionHandler{
		logger:   logger,
		resolver: resolver,
	}
}

type subscriptionStatusResponse struct {
	Subscribed   bool                        `json:"subscribed"`
	Reason       string                      `json:"reason,omitempty"`
	Subscription *entity.SubscriptionSummary `json:"subscription,omitempty"`
	Error        string                      `json:"error,omitempty"`
}

// CheckStatus resolves the caller's subscription status. Negative
// outcomes are still HTTP 200; only an unhandled provider failure is a
// 500, and the caller is treated as unsubscribed either way.
func (h *SubscriptionHandler) CheckStatus(c echo.Context) error {
	var userID, email string
	if identity, ok := auth.GetIdentity(c); ok {
		userID = identity.UserID
		email = identity.Email
	}

	res := h.resolver.Resolve(c.Request().Context(), userID, email)

	if res.Reason == entity.ReasonError {
		msg := ""
		if res.Err != nil {
			msg = res.Err.Error()
		}
		return c.JSON(http.StatusInternalServerError, subscriptionStatusResponse{
			Subscribed: false,
			Reason:     res.Reason,
			Error:      msg,
		})
	}

	return c.JSON(http.StatusOK, subscriptionStatusResponse{
		Subscribed:   res.Subscribed,
		Reason:       res.Reason,
		Subscription: res.Subscription,
	})
}
