package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v79"
	"go.uber.org/zap"

	"github.com/kaokien/coach-josh-official/internal/domain/provider"
	"github.com/kaokien/coach-josh-official/internal/usecase"
)

func newCheckoutHandler(payments *fakePayments) *CheckoutHandler {
	return NewCheckoutHandler(zap.NewNop(),
		usecase.NewCheckoutService(payments, "https://coachjosh.example", zap.NewNop()))
}

func TestCreateCheckout_MissingPriceID(t *testing.T) {
	e := newTestEcho()
	handler := newCheckoutHandler(&fakePayments{})

	c, rec := newTestContext(e, http.MethodPost, "/api/v1/checkout", `{"mode":"subscription"}`, "", "")
	assert.NoError(t, handler.CreateSession(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Price ID is required")
}

func TestCreateCheckout_MalformedBody(t *testing.T) {
	e := newTestEcho()
	handler := newCheckoutHandler(&fakePayments{})

	c, rec := newTestContext(e, http.MethodPost, "/api/v1/checkout", `{not json`, "", "")
	assert.NoError(t, handler.CreateSession(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateCheckout_ReturnsRedirectURL(t *testing.T) {
	e := newTestEcho()
	var captured *stripe.CheckoutSessionParams
	payments := &fakePayments{
		createSession: func(_ context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
			captured = params
			return &stripe.CheckoutSession{ID: "cs_1", URL: "https://checkout.example/cs_1"}, nil
		},
	}
	handler := newCheckoutHandler(payments)

	body := `{"priceId":"price_cornerman","mode":"subscription","successPath":"/cornerman"}`
	c, rec := newTestContext(e, http.MethodPost, "/api/v1/checkout", body, "user_1", "fighter@example.com")
	assert.NoError(t, handler.CreateSession(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "https://checkout.example/cs_1", resp["url"])

	if assert.NotNil(t, captured) {
		assert.Equal(t, "user_1", captured.Metadata["userId"])
	}
}

func TestCreateCheckout_InvalidPriceIs400(t *testing.T) {
	e := newTestEcho()
	payments := &fakePayments{
		getPrice: func(_ context.Context, _ string) (*stripe.Price, error) {
			return nil, &provider.ProviderError{Code: "resource_missing", Message: "No such price"}
		},
	}
	handler := newCheckoutHandler(payments)

	c, rec := newTestContext(e, http.MethodPost, "/api/v1/checkout", `{"priceId":"price_bogus"}`, "", "")
	assert.NoError(t, handler.CreateSession(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid price ID: price_bogus")
}

func TestCreateCheckout_ProviderFailureIs500WithCode(t *testing.T) {
	e := newTestEcho()
	payments := &fakePayments{
		createSession: func(_ context.Context, _ *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
			return nil, &provider.ProviderError{Code: "rate_limit", Message: "Too many requests"}
		},
	}
	handler := newCheckoutHandler(payments)

	c, rec := newTestContext(e, http.MethodPost, "/api/v1/checkout", `{"priceId":"price_cornerman"}`, "", "")
	assert.NoError(t, handler.CreateSession(c))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp map[string]string
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "rate_limit", resp["code"])
	assert.Equal(t, "Too many requests", resp["details"])
}
