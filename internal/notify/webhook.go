package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/agroxeque/ortho-gateway/internal/models"
)

// webhookTimeout bounds one delivery attempt. There is exactly one
// attempt per event, no retry and no backoff.
const webhookTimeout = 30 * time.Second

// WebhookNotifier posts status events to the configured destination.
type WebhookNotifier struct {
	url    string
	client *http.Client
	logger zerolog.Logger
}

// NewWebhookNotifier creates a notifier for url. An empty url
// disables delivery: Notify logs a warning and returns without a
// network call, which is not an error.
func NewWebhookNotifier(url string, logger zerolog.Logger) *WebhookNotifier {
	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: webhookTimeout},
		logger: logger,
	}
}

// Notify performs at most one POST with the event as JSON body.
// Any failure is logged and swallowed.
func (n *WebhookNotifier) Notify(ctx context.Context, event models.StatusEvent) {
	if n.url == "" {
		n.logger.Warn().Msg("webhook URL not configured, notification not sent")
		return
	}

	body, err := json.Marshal(event)
	if err != nil {
		n.logger.Error().Err(err).Msg("failed to encode webhook payload")
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		n.logger.Error().Err(err).Msg("failed to build webhook request")
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.Error().Err(err).Str("status", event.Status).Msg("error sending webhook")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		n.logger.Info().Str("status", event.Status).Msg("webhook sent")
		return
	}

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	n.logger.Error().
		Int("code", resp.StatusCode).
		Str("body", string(respBody)).
		Str("status", event.Status).
		Msg("webhook delivery rejected")
}
