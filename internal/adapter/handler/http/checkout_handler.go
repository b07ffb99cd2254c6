package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	domainErrors "github.com/kaokien/coach-josh-official/internal/domain/errors"
	"github.com/kaokien/coach-josh-official/internal/domain/provider"
	"github.com/kaokien/coach-josh-official/internal/middleware/auth"
	"github.com/kaokien/coach-josh-official/internal/usecase"
)

type CheckoutHandler struct {
	logger   *zap.Logger
	checkout *usecase.CheckoutService
}

func NewCheckoutHandler(logger *zap.Logger, checkout *usecase.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		logger:   logger,
		checkout: checkout,
	}
}

type createCheckoutRequest struct {
	PriceID     string `json:"priceId" validate:"required"`
	Mode        string `json:"mode"`
	SuccessPath string `json:"successPath"`
}

// CreateSession builds a hosted checkout session and returns its
// redirect URL. Guests are allowed; the session metadata then carries
// the guest sentinel instead of a user id.
func (h *CheckoutHandler) CreateSession(c echo.Context) error {
	var req createCheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Price ID is required",
		})
	}

	input := usecase.CheckoutInput{
		PriceID:     req.PriceID,
		Mode:        req.Mode,
		SuccessPath: req.SuccessPath,
	}
	if identity, ok := auth.GetIdentity(c); ok {
		input.UserID = identity.UserID
		input.Email = identity.Email
	}

	h.logger.Info("Creating checkout session",
		zap.String("price_id", req.PriceID),
		zap.String("mode", req.Mode),
		zap.Bool("guest", input.UserID == ""))

	url, err := h.checkout.CreateSession(c.Request().Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrMissingPrice):
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "Price ID is required",
			})
		case errors.Is(err, domainErrors.ErrInvalidPrice):
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "Invalid price ID: " + req.PriceID,
			})
		}

		h.logger.Error("Checkout session creation failed", zap.Error(err))

		var providerErr *provider.ProviderError
		if errors.As(err, &providerErr) {
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error":   "Failed to create checkout session",
				"details": providerErr.Message,
				"code":    providerErr.Code,
			})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error":   "Failed to create checkout session",
			"details": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"url": url,
	})
}
