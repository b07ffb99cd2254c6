package usecase

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/kaokien/coach-josh-official/internal/domain/entity"
	"github.com/kaokien/coach-josh-official/internal/infrastructure/cache"
)

const (
	recentUploadsCacheKey = "videos:recent"
	recentUploadsCacheTTL = time.Hour
)

// UploadsFetcher produces the channel's recent long-form uploads.
type UploadsFetcher interface {
	FetchRecentUploads(ctx context.Context) ([]entity.Video, error)
}

// VideoFeed serves the public recent-uploads feed with an hour of
// caching in front of the video platform API.
type VideoFeed struct {
	fetcher UploadsFetcher
	store   cache.Store
	logger  *zap.Logger
}

func NewVideoFeed(fetcher UploadsFetcher, store cache.Store, logger *zap.Logger) *VideoFeed {
	return &VideoFeed{
		fetcher: fetcher,
		store:   store,
		logger:  logger,
	}
}

func (f *VideoFeed) RecentUploads(ctx context.Context) ([]entity.Video, error) {
	if data, ok, err := f.store.Get(ctx, recentUploadsCacheKey); err != nil {
		f.logger.Warn("Video feed cache read failed", zap.Error(err))
	} else if ok {
		var videos []entity.Video
		if err := json.Unmarshal(data, &videos); err != nil {
			f.logger.Warn("Discarding unreadable video feed cache entry", zap.Error(err))
		} else {
			return videos, nil
		}
	}

	videos, err := f.fetcher.FetchRecentUploads(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(videos); err == nil {
		if err := f.store.Set(ctx, recentUploadsCacheKey, data, recentUploadsCacheTTL); err != nil {
			f.logger.Warn("Video feed cache write failed", zap.Error(err))
		}
	}

	return videos, nil
}
