package trigger

import (
	"net/http"
	"strings"
	"time"

	"github.com/gdbrns/go-wwebjs-api-connector/pkg/env"
	"github.com/gdbrns/go-wwebjs-api-connector/pkg/errx"
)

var registry = errx.NewRegistry("TRIGGER")

var (
	CodeNotFound      = registry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Trigger not found")
	CodeInvalidConfig = registry.Register("INVALID_CONFIG", errx.TypeValidation, http.StatusBadRequest, "Invalid trigger configuration")
	CodeDuplicateID   = registry.Register("DUPLICATE_ID", errx.TypeBadRequest, http.StatusConflict, "Trigger ID already registered")
	CodeRateLimited   = registry.Register("RATE_LIMITED", errx.TypeRateLimit, http.StatusTooManyRequests, "Too many webhook calls for this trigger")
	CodeForwardFailed = registry.Register("FORWARD_FAILED", errx.TypeExternal, http.StatusBadGateway, "Failed to forward webhook")
)

type AuthMode string

const (
	AuthNone          AuthMode = "none"
	AuthHeader        AuthMode = "headerAuth"
	AuthHMACSignature AuthMode = "hmacSignature"
)

const (
	DefaultHeaderName      = "x-webhook-token"
	DefaultSignatureHeader = "x-hub-signature-256"
)

// DefaultEvents applies when a configuration omits events entirely.
var DefaultEvents = DefaultEventsFromEnv()

// DefaultEventsFromEnv reads TRIGGER_DEFAULT_EVENTS, a comma separated list,
// falling back to message.
func DefaultEventsFromEnv() []string {
	return env.GetEnvListOrDefault("TRIGGER_DEFAULT_EVENTS", []string{"message"})
}

type Authentication struct {
	Mode            AuthMode `json:"mode"`
	HeaderName      string   `json:"headerName,omitempty"`
	HeaderValue     string   `json:"headerValue,omitempty"`
	HMACSecret      string   `json:"hmacSecret,omitempty"`
	SignatureHeader string   `json:"signatureHeader,omitempty"`
}

type Filters struct {
	SessionID       string `json:"sessionId,omitempty"`
	ChatIDContains  string `json:"chatIdContains,omitempty"`
	BodyContains    string `json:"bodyContains,omitempty"`
	FromMe          bool   `json:"fromMe,omitempty"`
	ExcludeFromMe   bool   `json:"excludeFromMe,omitempty"`
	GroupsOnly      bool   `json:"groupsOnly,omitempty"`
	IndividualsOnly bool   `json:"individualsOnly,omitempty"`
}

// Config is one registered trigger. An empty, non-nil Events list accepts
// every event.
type Config struct {
	ID             string         `json:"id"`
	Name           string         `json:"name,omitempty"`
	Events         []string       `json:"events"`
	Authentication Authentication `json:"authentication"`
	Filters        Filters        `json:"filters"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// Normalize fills defaults and rejects configurations that can never
// authenticate a call.
func (c Config) Normalize() (Config, error) {
	if c.Events == nil {
		c.Events = append([]string{}, DefaultEvents...)
	} else {
		c.Events = append([]string{}, c.Events...)
	}
	for i, event := range c.Events {
		c.Events[i] = strings.TrimSpace(event)
		if c.Events[i] == "" {
			return c, registry.NewWithMessage(CodeInvalidConfig, "Event names must not be empty")
		}
	}

	auth := &c.Authentication
	if auth.Mode == "" {
		auth.Mode = AuthNone
	}
	switch auth.Mode {
	case AuthNone:
	case AuthHeader:
		if auth.HeaderName == "" {
			auth.HeaderName = DefaultHeaderName
		}
		if auth.HeaderValue == "" {
			return c, registry.NewWithMessage(CodeInvalidConfig, "Header authentication requires headerValue")
		}
	case AuthHMACSignature:
		if auth.SignatureHeader == "" {
			auth.SignatureHeader = DefaultSignatureHeader
		}
		if auth.HMACSecret == "" {
			return c, registry.NewWithMessage(CodeInvalidConfig, "HMAC authentication requires hmacSecret")
		}
	default:
		return c, registry.NewWithMessage(CodeInvalidConfig, "Unknown authentication mode: "+string(auth.Mode))
	}

	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	return c, nil
}

// Redacted hides the secrets before a configuration is echoed back.
func (c Config) Redacted() Config {
	if c.Authentication.HeaderValue != "" {
		c.Authentication.HeaderValue = "********"
	}
	if c.Authentication.HMACSecret != "" {
		c.Authentication.HMACSecret = "********"
	}
	return c
}
