package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stripe/stripe-go/v79"

	"github.com/kaokien/coach-josh-official/internal/middleware/auth"
)

// fakePayments implements provider.PaymentsProvider with overridable
// behavior per test. Unset methods behave like an empty account.
type fakePayments struct {
	searchCustomers func(ctx context.Context, userID string) ([]*stripe.Customer, error)
	listByEmail     func(ctx context.Context, email string) ([]*stripe.Customer, error)
	listSubs        func(ctx context.Context, customerID, status string) ([]*stripe.Subscription, error)
	getSub          func(ctx context.Context, id string) (*stripe.Subscription, error)
	listSessions    func(ctx context.Context) ([]*stripe.CheckoutSession, error)
	tagCustomer     func(ctx context.Context, customerID, userID string) error
	createCustomer  func(ctx context.Context, email, userID string) (*stripe.Customer, error)
	getPrice        func(ctx context.Context, priceID string) (*stripe.Price, error)
	listPrices      func(ctx context.Context) ([]*stripe.Price, error)
	createSession   func(ctx context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

func (f *fakePayments) SearchCustomersByUserID(ctx context.Context, userID string) ([]*stripe.Customer, error) {
	if f.searchCustomers != nil {
		return f.searchCustomers(ctx, userID)
	}
	return nil, nil
}

func (f *fakePayments) ListCustomersByEmail(ctx context.Context, email string) ([]*stripe.Customer, error) {
	if f.listByEmail != nil {
		return f.listByEmail(ctx, email)
	}
	return nil, nil
}

func (f *fakePayments) ListSubscriptions(ctx context.Context, customerID, status string) ([]*stripe.Subscription, error) {
	if f.listSubs != nil {
		return f.listSubs(ctx, customerID, status)
	}
	return nil, nil
}

func (f *fakePayments) GetSubscription(ctx context.Context, id string) (*stripe.Subscription, error) {
	if f.getSub != nil {
		return f.getSub(ctx, id)
	}
	return nil, nil
}

func (f *fakePayments) ListRecentCheckoutSessions(ctx context.Context) ([]*stripe.CheckoutSession, error) {
	if f.listSessions != nil {
		return f.listSessions(ctx)
	}
	return nil, nil
}

func (f *fakePayments) TagCustomer(ctx context.Context, customerID, userID string) error {
	if f.tagCustomer != nil {
		return f.tagCustomer(ctx, customerID, userID)
	}
	return nil
}

func (f *fakePayments) CreateCustomer(ctx context.Context, email, userID string) (*stripe.Customer, error) {
	if f.createCustomer != nil {
		return f.createCustomer(ctx, email, userID)
	}
	return &stripe.Customer{ID: "cus_test"}, nil
}

func (f *fakePayments) GetPrice(ctx context.Context, priceID string) (*stripe.Price, error) {
	if f.getPrice != nil {
		return f.getPrice(ctx, priceID)
	}
	return &stripe.Price{ID: priceID}, nil
}

func (f *fakePayments) ListActivePrices(ctx context.Context) ([]*stripe.Price, error) {
	if f.listPrices != nil {
		return f.listPrices(ctx)
	}
	return nil, nil
}

func (f *fakePayments) CreateCheckoutSession(ctx context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	if f.createSession != nil {
		return f.createSession(ctx, params)
	}
	return &stripe.CheckoutSession{ID: "cs_test", URL: "https://checkout.example/cs_test"}, nil
}

type testValidator struct {
	validate *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{validate: validator.New()}
	return e
}

// newTestContext builds an echo context for the given request, with an
// authenticated identity when userID is non-empty.
func newTestContext(e *echo.Echo, method, target, body, userID, email string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if userID != "" {
		auth.SetIdentity(c, &auth.Identity{UserID: userID, Email: email})
	}
	return c, rec
}
