// Package connector holds the process wide state the HTTP controllers and
// CLI commands share.
package connector

import (
	"sync"
	"time"

	"github.com/gdbrns/go-wwebjs-api-connector/internal/dispatch"
	"github.com/gdbrns/go-wwebjs-api-connector/internal/trigger"
	"github.com/gdbrns/go-wwebjs-api-connector/internal/types"
	"github.com/gdbrns/go-wwebjs-api-connector/internal/webhook"
	"github.com/gdbrns/go-wwebjs-api-connector/pkg/wwebjs"
)

type Connector struct {
	Defaults wwebjs.Credentials
	Media    types.MediaOptions
	Triggers *trigger.Registry
	Sink     webhook.Sink
	Health   *Health

	// ClientOptions are applied to every remote client, tests use them to
	// swap the transport.
	ClientOptions []wwebjs.Option

	StartedAt time.Time
}

var (
	mu      sync.RWMutex
	current *Connector
)

// Set installs c as the process connector.
func Set(c *Connector) {
	mu.Lock()
	defer mu.Unlock()
	current = c
}

// Get returns the process connector. It panics before Set, which only
// happens when a route is served without startup.
func Get() *Connector {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		panic("connector not initialized")
	}
	return current
}

// Credentials merges per request credentials over the process defaults.
func (c *Connector) Credentials(req *types.RequestCredentials) wwebjs.Credentials {
	if req == nil {
		return c.Defaults
	}
	return wwebjs.Credentials{
		BaseURL:          req.BaseURL,
		APIKey:           req.APIKey,
		DefaultSessionID: req.DefaultSessionID,
	}.Merge(c.Defaults)
}

func (c *Connector) Client(req *types.RequestCredentials) *wwebjs.Client {
	return wwebjs.NewClient(c.Credentials(req), c.ClientOptions...)
}

func (c *Connector) Dispatcher(req *types.RequestCredentials) *dispatch.Dispatcher {
	return dispatch.New(c.Client(req), dispatch.WithMediaOptions(c.Media))
}
