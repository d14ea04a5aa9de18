package wwebjs

import (
	"net/http"
	"strings"

	"github.com/gdbrns/go-wwebjs-api-connector/pkg/env"
	"github.com/gdbrns/go-wwebjs-api-connector/pkg/errx"
	"github.com/gdbrns/go-wwebjs-api-connector/pkg/validation"
)

var registry = errx.NewRegistry("WWEBJS")

var (
	CodeMissingSession   = registry.Register("MISSING_SESSION", errx.TypeValidation, http.StatusBadRequest, "Session ID is required. Set it in the node or as the default in your credentials.")
	CodeAPIRequestFailed = registry.Register("API_REQUEST_FAILED", errx.TypeExternal, http.StatusBadGateway, "WWebJS API request failed")
)

// SessionPlaceholder is substituted by BuildEndpoint.
const SessionPlaceholder = "{sessionId}"

const DefaultBaseURL = "http://localhost:3000"

type Credentials struct {
	BaseURL          string `json:"baseUrl"`
	APIKey           string `json:"apiKey,omitempty"`
	DefaultSessionID string `json:"defaultSessionId,omitempty"`
}

// DefaultCredentials reads the process level credentials from the environment.
func DefaultCredentials() Credentials {
	return Credentials{
		BaseURL:          env.GetEnvStringOrDefault("WWEBJS_BASE_URL", DefaultBaseURL),
		APIKey:           env.GetEnvStringOrDefault("WWEBJS_API_KEY", ""),
		DefaultSessionID: env.GetEnvStringOrDefault("WWEBJS_DEFAULT_SESSION_ID", ""),
	}
}

// Merge fills the empty fields of c from fallback. Credentials that name
// their own BaseURL are returned as given, so the fallback key and session
// never travel to another host.
func (c Credentials) Merge(fallback Credentials) Credentials {
	if strings.TrimSpace(c.BaseURL) != "" {
		return c
	}
	c.BaseURL = fallback.BaseURL
	if c.APIKey == "" {
		c.APIKey = fallback.APIKey
	}
	if c.DefaultSessionID == "" {
		c.DefaultSessionID = fallback.DefaultSessionID
	}
	return c
}

// ParamSource is an optional lookup of string parameters for one item.
type ParamSource interface {
	String(name string) (string, bool)
}

// ResolveSessionID prefers the item's sessionId parameter, then the
// credentials default. The result must pass the session id format check.
func ResolveSessionID(params ParamSource, credentials Credentials) (string, error) {
	var sessionID string
	if params != nil {
		if v, ok := params.String("sessionId"); ok {
			sessionID = v
		}
	}
	if sessionID == "" {
		sessionID = credentials.DefaultSessionID
	}
	if sessionID == "" {
		return "", registry.New(CodeMissingSession)
	}
	if err := validation.ValidateSessionID(sessionID); err != nil {
		return "", err
	}
	return sessionID, nil
}

// BuildEndpoint substitutes every session placeholder in template.
func BuildEndpoint(template string, sessionID string) string {
	return strings.ReplaceAll(template, SessionPlaceholder, sessionID)
}
