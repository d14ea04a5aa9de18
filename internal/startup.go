package internal

import (
	"context"
	"time"

	"github.com/gdbrns/go-wwebjs-api-connector/internal/connector"
	"github.com/gdbrns/go-wwebjs-api-connector/internal/trigger"
	"github.com/gdbrns/go-wwebjs-api-connector/internal/types"
	"github.com/gdbrns/go-wwebjs-api-connector/internal/webhook"
	"github.com/gdbrns/go-wwebjs-api-connector/pkg/env"
	"github.com/gdbrns/go-wwebjs-api-connector/pkg/log"
	"github.com/gdbrns/go-wwebjs-api-connector/pkg/wwebjs"
)

// Bootstrap installs the process state with an empty trigger registry and
// the log sink. It is enough for the one-shot CLI commands.
func Bootstrap() *connector.Connector {
	conn := &connector.Connector{
		Defaults: wwebjs.DefaultCredentials(),
		Media:    types.MediaOptionsFromEnv(),
		Triggers: trigger.NewRegistry(
			env.GetEnvFloat64OrDefault("WEBHOOK_RATE_LIMIT_RPS", 0),
			env.GetEnvIntOrDefault("WEBHOOK_RATE_LIMIT_BURST", 10),
		),
		Sink:      webhook.LogSink{},
		Health:    connector.NewHealth(),
		StartedAt: time.Now(),
	}
	connector.Set(conn)
	return conn
}

// Startup prepares everything serve needs: the configured triggers, the
// trigger sink and a first reachability check of the remote API.
func Startup(ctx context.Context) (*connector.Connector, error) {
	log.Print(nil).Info("Running Startup Tasks")

	conn := Bootstrap()

	if path := env.GetEnvStringOrDefault("TRIGGERS_FILE", ""); path != "" {
		n, err := conn.Triggers.LoadFile(path)
		if err != nil {
			return nil, err
		}
		log.Print(nil).WithField("file", path).WithField("triggers", n).Info("Triggers loaded")
	}

	sink, err := webhook.NewSinkFromEnv(ctx)
	if err != nil {
		return nil, err
	}
	conn.Sink = sink

	status := conn.Health.Check(ctx, conn.Client(nil), env.GetEnvDurationOrDefault("HEALTH_CHECK_TIMEOUT", 10*time.Second))
	log.Print(nil).
		WithField("base_url", conn.Defaults.BaseURL).
		WithField("reachable", status.Reachable).
		WithField("sink", sink.Name()).
		Info("Startup complete")

	return conn, nil
}
