// Package notification delivers outbox messages to external chat/SMS gateways.
package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/SscSPs/commerce_lifecycle_app/internal/apperrors"
	portssvc "github.com/SscSPs/commerce_lifecycle_app/internal/core/ports/services"
)

const apiKeyHeader = "X-API-Key"

// webhookPayload is the body POSTed for each message.
type webhookPayload struct {
	Phone string `json:"phone"`
	Text  string `json:"text"`
}

type webhookSink struct {
	client *resty.Client
	url    string
}

// NewWebhookSink posts every notification to url. apiKey is optional.
func NewWebhookSink(url, apiKey string, timeout time.Duration) portssvc.NotificationSink {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	if apiKey != "" {
		client.SetHeader(apiKeyHeader, apiKey)
	}
	return &webhookSink{client: client, url: url}
}

var _ portssvc.NotificationSink = (*webhookSink)(nil)

func (s *webhookSink) Send(ctx context.Context, destination, text string) error {
	if destination == "" {
		return fmt.Errorf("%w: empty destination", apperrors.ErrNotification)
	}
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(webhookPayload{Phone: destination, Text: text}).
		Post(s.url)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrNotification, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: webhook status %d", apperrors.ErrNotification, resp.StatusCode())
	}
	return nil
}
