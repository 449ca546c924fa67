// Package notification implements the push delivery adapter. The provider is
// a webhook endpoint; the service treats delivery as best-effort.
package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/tlsdygks1992-dotcom/church-management-sub001/internal/application/port"
	"go.uber.org/zap"
)

// Config holds webhook sender configuration
type Config struct {
	WebhookURL string
	AuthToken  string
	Timeout    time.Duration
}

// WebhookSender implements port.PushSender against an HTTP webhook
type WebhookSender struct {
	config Config
	client *http.Client
	logger *zap.Logger
}

// NewWebhookSender creates a new webhook push sender
func NewWebhookSender(cfg Config, logger *zap.Logger) *WebhookSender {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &WebhookSender{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

type pushPayload struct {
	UserIDs []int64 `json:"user_ids"`
	Title   string  `json:"title"`
	Body    string  `json:"body"`
	Link    string  `json:"link,omitempty"`
}

// Send posts one push message to the webhook endpoint
func (s *WebhookSender) Send(ctx context.Context, targetUserIDs []int64, title, body, link string) error {
	payload, err := json.Marshal(pushPayload{
		UserIDs: targetUserIDs,
		Title:   title,
		Body:    body,
		Link:    link,
	})
	if err != nil {
		return fmt.Errorf("marshal push payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.WebhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.config.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.config.AuthToken)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send push request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("push provider returned status %d", resp.StatusCode)
	}

	s.logger.Debug("Push delivered",
		zap.Int("target_count", len(targetUserIDs)),
		zap.String("title", title))
	return nil
}

// Verify interface compliance
var _ port.PushSender = (*WebhookSender)(nil)
