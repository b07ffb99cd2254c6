package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/kaokien/coach-josh-official/internal/config"
	"github.com/kaokien/coach-josh-official/internal/domain/entity"
	"github.com/kaokien/coach-josh-official/internal/middleware/auth"
	"github.com/kaokien/coach-josh-official/internal/usecase"
)

// VaultHandler serves the members-only Corner Man catalog. The route
// prefix already requires an authenticated session; subscription gating
// happens here, inside the handler.
type VaultHandler struct {
	logger   *zap.Logger
	resolver *usecase.SubscriptionResolver
	catalog  []config.VaultVideo
}

func NewVaultHandler(logger *zap.Logger, resolver *usecase.SubscriptionResolver, catalog []config.VaultVideo) *VaultHandler {
	return &VaultHandler{
		logger:   logger,
		resolver: resolver,
		catalog:  catalog,
	}
}

type vaultResponse struct {
	Subscribed bool                `json:"subscribed"`
	Reason     string              `json:"reason,omitempty"`
	Videos     []entity.VaultVideo `json:"videos"`
}

func (h *VaultHandler) GetCatalog(c echo.Context) error {
	identity, ok := auth.GetIdentity(c)
	if !ok {
		// The Protect middleware guarantees an identity on this route.
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"error": "Authentication required",
			"code":  "AUTH_REQUIRED",
		})
	}

	res := h.resolver.Resolve(c.Request().Context(), identity.UserID, identity.Email)
	if res.Reason == entity.ReasonError {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to check subscription",
		})
	}

	if !res.Subscribed {
		return c.JSON(http.StatusOK, vaultResponse{
			Subscribed: false,
			Reason:     res.Reason,
			Videos:     []entity.VaultVideo{},
		})
	}

	videos := make([]entity.VaultVideo, 0, len(h.catalog))
	for _, v := range h.catalog {
		videos = append(videos, entity.VaultVideo{
			ID:            v.ID,
			Title:         v.Title,
			Category:      v.Category,
			Duration:      v.Duration,
			MuxPlaybackID: v.MuxPlaybackID,
			StreamURL:     fmt.Sprintf("https://stream.mux.com/%s.m3u8", v.MuxPlaybackID),
			ThumbnailURL:  fmt.Sprintf("https://image.mux.com/%s/thumbnail.jpg?width=200&time=5", v.MuxPlaybackID),
		})
	}

	h.logger.Debug("Vault catalog served",
		zap.String("user_id", identity.UserID),
		zap.Int("videos", len(videos)))

	return c.JSON(http.StatusOK, vaultResponse{
		Subscribed: true,
		Videos:     videos,
	})
}
