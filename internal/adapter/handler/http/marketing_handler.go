package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/kaokien/coach-josh-official/internal/usecase"
)

type MarketingHandler struct {
	logger    *zap.Logger
	marketing *usecase.MarketingService
}

func NewMarketingHandler(logger *zap.Logger, marketing *usecase.MarketingService) *MarketingHandler {
	return &MarketingHandler{
		logger:    logger,
		marketing: marketing,
	}
}

type subscribeRequest struct {
	Email  string `json:"email" validate:"required,email"`
	Source string `json:"source"`
}

// Subscribe adds the visitor to the mailing list and triggers the
// welcome sequence.
func (h *MarketingHandler) Subscribe(c echo.Context) error {
	var req subscribeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "A valid email is required",
		})
	}

	if err := h.marketing.Subscribe(c.Request().Context(), req.Email, req.Source); err != nil {
		h.logger.Error("Subscribe failed",
			zap.String("email", req.Email),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to subscribe",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
	})
}
