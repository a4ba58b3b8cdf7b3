package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kubev2v/sddcinfo/pkg/log"
	"github.com/kubev2v/sddcinfo/pkg/requestid"
	"go.uber.org/zap"
)

// WebhookClient posts rendered messages to a chat incoming webhook.
type WebhookClient struct {
	httpClient *http.Client
}

func NewWebhookClient(timeout time.Duration) *WebhookClient {
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &WebhookClient{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: log.Transport(zap.L(), "webhook", http.DefaultTransport),
		},
	}
}

func (c *WebhookClient) Post(ctx context.Context, webhookURL string, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	requestid.Propagate(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return NewErrWebhookDelivery(err.Error())
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return NewErrWebhookDelivery(fmt.Sprintf("webhook returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	zap.S().Named("webhook").Debugw("message delivered", "status", resp.StatusCode, "response", string(body))
	return nil
}
