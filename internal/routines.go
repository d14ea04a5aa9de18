package internal

import (
	"context"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/gdbrns/go-wwebjs-api-connector/internal/connector"
	"github.com/gdbrns/go-wwebjs-api-connector/pkg/env"
	"github.com/gdbrns/go-wwebjs-api-connector/pkg/log"
)

const defaultHealthCheckSpec = "0 */1 * * * *"

func Routines(cron *cron.Cron) {
	log.Print(nil).Info("Running Routine Tasks")

	if env.GetEnvBoolOrDefault("HEALTH_CHECK_CRON_ENABLED", true) {
		spec := healthCheckSpec()
		timeout := env.GetEnvDurationOrDefault("HEALTH_CHECK_TIMEOUT", 10*time.Second)
		_, err := cron.AddFunc(spec, func() {
			conn := connector.Get()
			conn.Health.Check(context.Background(), conn.Client(nil), timeout)
		})
		if err != nil {
			log.Print(nil).WithField("error", err.Error()).Error("Failed to add health check cron job")
		} else {
			log.Print(nil).WithField("spec", spec).Info("Health check cron enabled")
		}
	} else {
		log.Print(nil).Info("Health check cron disabled")
	}

	cron.Start()
}

func healthCheckSpec() string {
	// robfig/cron with seconds field (6 parts).
	spec := strings.TrimSpace(env.GetEnvStringOrDefault("HEALTH_CHECK_CRON_SPEC", ""))
	if spec == "" {
		return defaultHealthCheckSpec
	}
	return spec
}
