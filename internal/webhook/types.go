package webhook

import (
	"context"
	"encoding/json"
	"time"
)

const (
	SinkLog       = "log"
	SinkHTTP      = "http"
	SinkAMQP      = "amqp"
	SinkRedis     = "redis"
	SinkWebsocket = "websocket"
)

// Firing is one accepted webhook call. Payload is the body exactly as the
// remote API sent it.
type Firing struct {
	ID         string          `json:"id"`
	TriggerID  string          `json:"triggerId"`
	Event      string          `json:"event"`
	SessionID  string          `json:"sessionId"`
	ReceivedAt time.Time       `json:"receivedAt"`
	Payload    json.RawMessage `json:"payload"`
}

// Sink starts whatever the host runs when a trigger fires. Forward makes a
// single delivery attempt.
type Sink interface {
	Name() string
	Forward(ctx context.Context, firing Firing) error
	Close() error
}
