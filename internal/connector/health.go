package connector

import (
	"context"
	"sync"
	"time"

	"github.com/gdbrns/go-wwebjs-api-connector/pkg/log"
)

// Pinger is the part of the remote client the health check needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthStatus is the last known reachability of the default remote API.
type HealthStatus struct {
	Reachable   bool      `json:"reachable"`
	LastChecked time.Time `json:"lastChecked,omitempty"`
	LastError   string    `json:"lastError,omitempty"`
	Checks      int64     `json:"checks"`
	Failures    int64     `json:"failures"`
}

type Health struct {
	mu     sync.RWMutex
	status HealthStatus
}

func NewHealth() *Health {
	return &Health{}
}

// Check pings the remote API once and records the result.
func (h *Health) Check(ctx context.Context, pinger Pinger, timeout time.Duration) HealthStatus {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := pinger.Ping(ctx)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.status.Checks++
	h.status.LastChecked = time.Now().UTC()
	if err != nil {
		if h.status.Reachable || h.status.Checks == 1 {
			log.Print(nil).WithError(err).Warn("WWebJS API unreachable")
		}
		h.status.Reachable = false
		h.status.LastError = err.Error()
		h.status.Failures++
	} else {
		if !h.status.Reachable && h.status.Checks > 1 {
			log.Print(nil).Info("WWebJS API reachable again")
		}
		h.status.Reachable = true
		h.status.LastError = ""
	}
	return h.status
}

func (h *Health) Status() HealthStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.status
}
