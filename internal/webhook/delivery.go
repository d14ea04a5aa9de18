package webhook

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gdbrns/go-wwebjs-api-connector/internal/trigger"
	"github.com/gdbrns/go-wwebjs-api-connector/pkg/log"
)

// HTTPSink posts the original payload to a fixed URL.
type HTTPSink struct {
	url        string
	secret     string
	httpClient *http.Client
}

func NewHTTPSink(rawURL string, secret string, timeout time.Duration) (*HTTPSink, error) {
	if err := validateURL(rawURL); err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPSink{
		url:        rawURL,
		secret:     secret,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

func (s *HTTPSink) Name() string {
	return SinkHTTP
}

func (s *HTTPSink) Forward(ctx context.Context, firing Firing) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(firing.Payload))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Trigger-Id", firing.TriggerID)
	req.Header.Set("X-Webhook-Event", firing.Event)
	req.Header.Set("X-Delivery-Id", firing.ID)
	req.Header.Set("User-Agent", "WWebJS-API-Connector/1.0")
	if s.secret != "" {
		req.Header.Set("X-Hub-Signature-256", trigger.Sign(firing.Payload, s.secret))
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	log.SinkOp(SinkHTTP, firing.TriggerID).WithField("status", resp.StatusCode).Debug("Firing delivered")
	return nil
}

func (s *HTTPSink) Close() error {
	s.httpClient.CloseIdleConnections()
	return nil
}

func validateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported sink URL scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("sink URL has no host")
	}
	return nil
}
