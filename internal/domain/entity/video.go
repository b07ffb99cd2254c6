package entity

// Video is one entry of the public recent-uploads feed.
type Video struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Thumbnail   string `json:"thumbnail"`
	Link        string `json:"link"`
}

// VaultVideo is one entry of the members-only Corner Man catalog.
type VaultVideo struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Category      string `json:"category"`
	Duration      string `json:"duration"`
	MuxPlaybackID string `json:"muxPlaybackId"`
	StreamURL     string `json:"streamUrl"`
	ThumbnailURL  string `json:"thumbnailUrl"`
}

type Plan struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Amount        int64  `json:"amount"`
	DisplayAmount string `json:"display_amount"`
	Currency      string `json:"currency"`
	Type          string `json:"type"` // 'subscription' or 'one_time'
	Interval      string `json:"interval,omitempty"`
	IntervalCount int64  `json:"interval_count,omitempty"`
}
