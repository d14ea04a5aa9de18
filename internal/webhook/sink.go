package webhook

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gdbrns/go-wwebjs-api-connector/pkg/env"
	"github.com/gdbrns/go-wwebjs-api-connector/pkg/log"
)

// LogSink only records firings. It is the default when no sink is set up.
type LogSink struct{}

func (LogSink) Name() string {
	return SinkLog
}

func (LogSink) Forward(_ context.Context, firing Firing) error {
	log.SinkOp(SinkLog, firing.TriggerID).
		WithField("event", firing.Event).
		WithField("session_id", firing.SessionID).
		WithField("bytes", len(firing.Payload)).
		Info("Trigger fired")
	return nil
}

func (LogSink) Close() error {
	return nil
}

// NewSinkFromEnv builds the sink named by TRIGGER_SINK.
func NewSinkFromEnv(ctx context.Context) (Sink, error) {
	kind := strings.ToLower(env.GetEnvStringOrDefault("TRIGGER_SINK", SinkLog))
	target := env.GetEnvStringOrDefault("TRIGGER_SINK_URL", "")

	if kind != SinkLog && target == "" {
		return nil, fmt.Errorf("TRIGGER_SINK %q requires TRIGGER_SINK_URL", kind)
	}

	switch kind {
	case SinkLog:
		return LogSink{}, nil
	case SinkHTTP:
		timeout := env.GetEnvDurationOrDefault("TRIGGER_SINK_TIMEOUT", 10*time.Second)
		return NewHTTPSink(target, env.GetEnvStringOrDefault("TRIGGER_SINK_SECRET", ""), timeout)
	case SinkAMQP:
		return NewAMQPSink(target, env.GetEnvStringOrDefault("TRIGGER_AMQP_EXCHANGE", "wwebjs.triggers"))
	case SinkRedis:
		return NewRedisSink(ctx, target, env.GetEnvStringOrDefault("TRIGGER_REDIS_STREAM", "wwebjs:triggers"))
	case SinkWebsocket:
		return NewWebsocketSink(ctx, target)
	}
	return nil, fmt.Errorf("unknown TRIGGER_SINK %q", kind)
}
