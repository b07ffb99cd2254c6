package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	handlers "github.com/kaokien/coach-josh-official/internal/adapter/handler/http"
	"github.com/kaokien/coach-josh-official/internal/config"
	"github.com/kaokien/coach-josh-official/internal/domain/provider"
	"github.com/kaokien/coach-josh-official/internal/middleware/auth"
	"github.com/kaokien/coach-josh-official/internal/usecase"
)

// Dependencies carries the constructed collaborators the HTTP surface
// exposes. Everything is injected so tests can substitute fakes.
type Dependencies struct {
	Payments  provider.PaymentsProvider
	Resolver  *usecase.SubscriptionResolver
	Checkout  *usecase.CheckoutService
	Feed      *usecase.VideoFeed
	Marketing *usecase.MarketingService
}

type Server struct {
	config *config.Config
	logger *zap.Logger
	echo   *echo.Echo
	deps   Dependencies
}

func NewServer(cfg *config.Config, logger *zap.Logger, deps Dependencies) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = NewRequestValidator()

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.Service.ClientURL},
		AllowMethods: []string{echo.GET, echo.POST},
	}))

	return &Server{
		config: cfg,
		logger: logger,
		echo:   e,
		deps:   deps,
	}
}

func (s *Server) Start() error {
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.config.Server.HTTP.Host, s.config.Server.HTTP.Port)
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": s.config.Service.Name,
		})
	})

	subscriptionHandler := handlers.NewSubscriptionHandler(s.logger, s.deps.Resolver)
	checkoutHandler := handlers.NewCheckoutHandler(s.logger, s.deps.Checkout)
	marketingHandler := handlers.NewMarketingHandler(s.logger, s.deps.Marketing)
	videosHandler := handlers.NewVideosHandler(s.logger, s.deps.Feed)
	productsHandler := handlers.NewProductsHandler(s.logger, s.deps.Payments)
	vaultHandler := handlers.NewVaultHandler(s.logger, s.deps.Resolver, s.config.Service.Vault)

	authConfig := auth.Config{
		Secret: s.config.Service.JWT.Secret,
		Logger: s.logger,
	}

	// Public routes run with opportunistic identity resolution: a valid
	// session enriches the request, a missing one means guest.
	v1 := s.echo.Group("/api/v1", auth.Optional(authConfig))

	v1.GET("/products", productsHandler.GetProducts)
	v1.GET("/videos/recent", videosHandler.RecentUploads)
	v1.POST("/marketing/subscribe", marketingHandler.Subscribe)
	v1.GET("/subscription/status", subscriptionHandler.CheckStatus)
	v1.POST("/checkout", checkoutHandler.CreateSession)

	// The members prefix requires an authenticated session; whether the
	// member is actually subscribed is decided inside the handlers.
	members := s.echo.Group("/api/v1/members", auth.Protect(authConfig))
	members.GET("/vault", vaultHandler.GetCatalog)
}
