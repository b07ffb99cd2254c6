package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/kaokien/coach-josh-official/internal/domain/entity"
	"github.com/kaokien/coach-josh-official/internal/domain/provider"
)

type ProductsHandler struct {
	logger   *zap.Logger
	payments provider.PaymentsProvider
}

func NewProductsHandler(logger *zap.Logger, payments provider.PaymentsProvider) *ProductsHandler {
	return &ProductsHandler{
		logger:   logger,
		payments: payments,
	}
}

// GetProducts lists the active prices backing the merch showcase and
// the Corner Man plan, with a human-readable amount.
func (h *ProductsHandler) GetProducts(c echo.Context) error {
	prices, err := h.payments.ListActivePrices(c.Request().Context())
	if err != nil {
		h.logger.Error("Error fetching products", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to fetch products",
		})
	}

	plans := make([]entity.Plan, 0, len(prices))
	for _, p := range prices {
		if p.Product == nil || !p.Product.Active {
			continue
		}

		plan := entity.Plan{
			ID:          p.ID,
			Name:        p.Product.Name,
			Description: p.Product.Description,
			Amount:      p.UnitAmount,
			DisplayAmount: decimal.NewFromInt(p.UnitAmount).
				Div(decimal.NewFromInt(100)).StringFixed(2),
			Currency: string(p.Currency),
			Type:     "one_time",
		}
		if p.Recurring != nil {
			plan.Type = "subscription"
			plan.Interval = string(p.Recurring.Interval)
			plan.IntervalCount = p.Recurring.IntervalCount
		}
		plans = append(plans, plan)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"products": plans,
	})
}
