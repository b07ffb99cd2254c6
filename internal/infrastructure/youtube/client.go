package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kaokien/coach-josh-official/internal/config"
	"github.com/kaokien/coach-josh-official/internal/domain/entity"
)

const (
	defaultBaseURL = "https://www.googleapis.com/youtube/v3"

	// Fetch more than needed so Shorts can be filtered out and a full
	// page of long-form videos still remains.
	playlistFetchCount = 15
	maxVideos          = 4
	shortMaxSeconds    = 60
)

// Client fetches a channel's recent uploads from the YouTube Data API.
type Client struct {
	apiKey     string
	channelID  string
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(cfg config.YouTubeConfig, logger *zap.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:     cfg.APIKey,
		channelID:  cfg.ChannelID,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

type channelListResponse struct {
	Items []struct {
		ContentDetails struct {
			RelatedPlaylists struct {
				Uploads string `json:"uploads"`
			} `json:"relatedPlaylists"`
		} `json:"contentDetails"`
	} `json:"items"`
}

type playlistItemsResponse struct {
	Items []struct {
		Snippet struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			PublishedAt string `json:"publishedAt"`
			Thumbnails  struct {
				Medium struct {
					URL string `json:"url"`
				} `json:"medium"`
				High struct {
					URL string `json:"url"`
				} `json:"high"`
				MaxRes struct {
					URL string `json:"url"`
				} `json:"maxres"`
			} `json:"thumbnails"`
			ResourceID struct {
				VideoID string `json:"videoId"`
			} `json:"resourceId"`
		} `json:"snippet"`
	} `json:"items"`
}

type videoListResponse struct {
	Items []struct {
		ID             string `json:"id"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
	} `json:"items"`
}

// FetchRecentUploads returns the channel's latest long-form uploads:
// uploads playlist lookup, recent playlist items, then durations to
// filter out Shorts.
func (c *Client) FetchRecentUploads(ctx context.Context) ([]entity.Video, error) {
	if c.apiKey == "" || c.channelID == "" {
		return nil, fmt.Errorf("youtube api is not configured")
	}

	var channels channelListResponse
	if err := c.getJSON(ctx, "/channels", url.Values{
		"part": {"contentDetails"},
		"id":   {c.channelID},
	}, &channels); err != nil {
		return nil, fmt.Errorf("fetching channel: %w", err)
	}
	if len(channels.Items) == 0 {
		return nil, fmt.Errorf("channel %s not found", c.channelID)
	}
	uploadsPlaylistID := channels.Items[0].ContentDetails.RelatedPlaylists.Uploads
	if uploadsPlaylistID == "" {
		return nil, fmt.Errorf("channel %s has no uploads playlist", c.channelID)
	}

	var playlist playlistItemsResponse
	if err := c.getJSON(ctx, "/playlistItems", url.Values{
		"part":       {"snippet"},
		"playlistId": {uploadsPlaylistID},
		"maxResults": {strconv.Itoa(playlistFetchCount)},
	}, &playlist); err != nil {
		return nil, fmt.Errorf("fetching playlist items: %w", err)
	}

	videoIDs := make([]string, 0, len(playlist.Items))
	for _, item := range playlist.Items {
		videoIDs = append(videoIDs, item.Snippet.ResourceID.VideoID)
	}

	durations := make(map[string]int)
	if len(videoIDs) > 0 {
		var details videoListResponse
		if err := c.getJSON(ctx, "/videos", url.Values{
			"part": {"contentDetails"},
			"id":   {strings.Join(videoIDs, ",")},
		}, &details); err != nil {
			return nil, fmt.Errorf("fetching video durations: %w", err)
		}
		for _, item := range details.Items {
			durations[item.ID] = parseISODuration(item.ContentDetails.Duration)
		}
	}

	videos := make([]entity.Video, 0, maxVideos)
	for _, item := range playlist.Items {
		videoID := item.Snippet.ResourceID.VideoID

		// Shorts are filtered only when duration metadata came back.
		if secs, ok := durations[videoID]; ok && secs <= shortMaxSeconds {
			continue
		}

		date := ""
		if published, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
			date = published.Format("Jan 2, 2006")
		}

		thumbnail := item.Snippet.Thumbnails.MaxRes.URL
		if thumbnail == "" {
			thumbnail = item.Snippet.Thumbnails.High.URL
		}
		if thumbnail == "" {
			thumbnail = item.Snippet.Thumbnails.Medium.URL
		}

		videos = append(videos, entity.Video{
			ID:          videoID,
			Title:       item.Snippet.Title,
			Description: item.Snippet.Description,
			Date:        date,
			Thumbnail:   thumbnail,
			Link:        "https://www.youtube.com/watch?v=" + videoID,
		})
		if len(videos) == maxVideos {
			break
		}
	}

	c.logger.Debug("Recent uploads fetched",
		zap.Int("playlist_items", len(playlist.Items)),
		zap.Int("videos", len(videos)))

	return videos, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	query.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("youtube api returned status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

var isoDurationRe = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// parseISODuration converts an ISO 8601 duration like PT1H2M3S to seconds.
func parseISODuration(duration string) int {
	match := isoDurationRe.FindStringSubmatch(duration)
	if match == nil {
		return 0
	}
	hours, _ := strconv.Atoi(match[1])
	minutes, _ := strconv.Atoi(match[2])
	seconds, _ := strconv.Atoi(match[3])
	return hours*3600 + minutes*60 + seconds
}
