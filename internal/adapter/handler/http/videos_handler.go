package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/kaokien/coach-josh-official/internal/domain/entity"
	"github.com/kaokien/coach-josh-official/internal/usecase"
)

type VideosHandler struct {
	logger *zap.Logger
	feed   *usecase.VideoFeed
}

func NewVideosHandler(logger *zap.Logger, feed *usecase.VideoFeed) *VideosHandler {
	return &VideosHandler{
		logger: logger,
		feed:   feed,
	}
}

// RecentUploads returns the channel's latest long-form uploads for the
// landing page, Shorts filtered out.
func (h *VideosHandler) RecentUploads(c echo.Context) error {
	videos, err := h.feed.RecentUploads(c.Request().Context())
	if err != nil {
		h.logger.Error("Recent uploads fetch failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to fetch videos",
		})
	}

	if videos == nil {
		videos = []entity.Video{}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"videos": videos,
	})
}
