package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

var ErrNotificationFailed = errors.New("notification delivery failed")

const (
	graphAPIBase   = "https://graph.facebook.com/v19.0"
	requestTimeout = 10 * time.Second
	maxRetries     = 2
	retryBackoff   = 500 * time.Millisecond
)

// Notifier delivers a text message to the configured recipient.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// WhatsAppClient posts messages through the WhatsApp Cloud API.
type WhatsAppClient struct {
	httpClient *http.Client
	baseURL    string
	phoneID    string
	token      string
	recipient  string
	backoff    time.Duration
}

func NewWhatsApp(phoneNumberID, token, recipient string) *WhatsAppClient {
	return &WhatsAppClient{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    graphAPIBase,
		phoneID:    phoneNumberID,
		token:      token,
		recipient:  recipient,
		backoff:    retryBackoff,
	}
}

type textMessage struct {
	MessagingProduct string      `json:"messaging_product"`
	To               string      `json:"to"`
	Type             string      `json:"type"`
	Text             messageBody `json:"text"`
}

type messageBody struct {
	Body string `json:"body"`
}

// Notify sends text to the recipient, retrying a bounded number of times
// on any failure. Timeouts and non-2xx responses are treated alike.
func (c *WhatsAppClient) Notify(ctx context.Context, text string) error {
	payload, err := json.Marshal(textMessage{
		MessagingProduct: "whatsapp",
		To:               c.recipient,
		Type:             "text",
		Text:             messageBody{Body: text},
	})
	if err != nil {
		return fmt.Errorf("notify: failed to marshal message: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("%w: %v", ErrNotificationFailed, ctx.Err())
			case <-time.After(c.backoff << (attempt - 1)):
			}
		}

		lastErr = c.send(ctx, payload)
		if lastErr == nil {
			return nil
		}
		log.Warn().Err(lastErr).Int("attempt", attempt+1).Msg("notify: delivery attempt failed")
	}

	return fmt.Errorf("%w: %v", ErrNotificationFailed, lastErr)
}

func (c *WhatsAppClient) send(ctx context.Context, payload []byte) error {
	url := fmt.Sprintf("%s/%s/messages", c.baseURL, c.phoneID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body)
	}

	return nil
}
