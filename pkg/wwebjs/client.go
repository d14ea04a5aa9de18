package wwebjs

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/gdbrns/go-wwebjs-api-connector/pkg/env"
	"github.com/gdbrns/go-wwebjs-api-connector/pkg/errx"
)

const (
	HeaderAPIKey      = "x-api-key"
	requestFailPrefix = "WWebJS API request failed: "
)

// Doer is the transport used for outbound calls. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	credentials Credentials
	httpClient  Doer
	limiter     *rate.Limiter
}

type Option func(*Client)

func WithHTTPClient(doer Doer) Option {
	return func(c *Client) {
		c.httpClient = doer
	}
}

// WithLimiter overrides the process wide limiter. A nil limiter disables waiting.
func WithLimiter(limiter *rate.Limiter) Option {
	return func(c *Client) {
		c.limiter = limiter
	}
}

var (
	defaultHTTPClient     *http.Client
	defaultLimiter        *rate.Limiter
	defaultTransportsOnce sync.Once
)

func defaultTransports() (*http.Client, *rate.Limiter) {
	defaultTransportsOnce.Do(func() {
		defaultHTTPClient = &http.Client{
			Timeout: env.GetEnvDurationOrDefault("WWEBJS_REQUEST_TIMEOUT", 30*time.Second),
		}
		rps := env.GetEnvFloat64OrDefault("WWEBJS_RATE_LIMIT_RPS", 0)
		if rps > 0 {
			burst := env.GetEnvIntOrDefault("WWEBJS_RATE_LIMIT_BURST", 1)
			if burst < 1 {
				burst = 1
			}
			defaultLimiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
	})
	return defaultHTTPClient, defaultLimiter
}

func NewClient(credentials Credentials, opts ...Option) *Client {
	httpClient, limiter := defaultTransports()
	c := &Client{
		credentials: credentials,
		httpClient:  httpClient,
		limiter:     limiter,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Credentials() Credentials {
	return c.credentials
}

func requestFailed(message string, cause error) *errx.Error {
	err := registry.NewWithMessage(CodeAPIRequestFailed, requestFailPrefix+message)
	if cause != nil {
		err.WithCause(cause)
	}
	return err
}

// Request performs exactly one call against the remote API. The body is only
// sent for non-GET methods and only when it has fields.
func (c *Client) Request(ctx context.Context, method string, path string, body map[string]any, query url.Values) (any, error) {
	target := strings.TrimSuffix(c.credentials.BaseURL, "/") + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if method != http.MethodGet && len(body) > 0 {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, requestFailed(err.Error(), err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, requestFailed(err.Error(), err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.credentials.APIKey != "" {
		req.Header.Set(HeaderAPIKey, c.credentials.APIKey)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, requestFailed(err.Error(), err)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, requestFailed(err.Error(), err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, requestFailed(err.Error(), err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := fmt.Sprintf("%d - %s", resp.StatusCode, strings.TrimSpace(string(raw)))
		return nil, requestFailed(message, nil).WithDetail("status", resp.StatusCode)
	}

	return decodeResponse(resp.Header.Get("Content-Type"), raw), nil
}

// decodeResponse turns a successful body into JSON values. Bodies that are not
// JSON are wrapped so they can still be merged into an item.
func decodeResponse(contentType string, raw []byte) any {
	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]any{}
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err == nil {
		return decoded
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType == "" {
		mediaType = http.DetectContentType(raw)
		mediaType, _, _ = mime.ParseMediaType(mediaType)
	}
	if strings.HasPrefix(mediaType, "text/") {
		return map[string]any{"mimetype": mediaType, "data": string(raw)}
	}
	return map[string]any{"mimetype": mediaType, "data": base64.StdEncoding.EncodeToString(raw)}
}
