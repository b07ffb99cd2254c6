package loops

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kaokien/coach-josh-official/internal/config"
)

const defaultBaseURL = "https://app.loops.so/api/v1"

// Client talks to the Loops email/CRM API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(cfg config.LoopsConfig, logger *zap.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

// CreateContact adds a subscribed contact to the list.
func (c *Client) CreateContact(ctx context.Context, email, source string) error {
	payload := map[string]interface{}{
		"email":              email,
		"source":             source,
		"sampler_downloaded": true,
		"subscribed":         true,
	}
	return c.post(ctx, "/contacts/create", payload)
}

// SendEvent fires a named event for a contact, e.g. to trigger the
// welcome sequence.
func (c *Client) SendEvent(ctx context.Context, email, eventName string) error {
	payload := map[string]interface{}{
		"email":     email,
		"eventName": eventName,
	}
	return c.post(ctx, "/events/send", payload)
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("Loops API call failed",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return fmt.Errorf("loops api returned status %d", resp.StatusCode)
	}
	return nil
}
