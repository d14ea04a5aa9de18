package admin

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/gdbrns/go-wwebjs-api-connector/internal/connector"
	"github.com/gdbrns/go-wwebjs-api-connector/internal/trigger"
	"github.com/gdbrns/go-wwebjs-api-connector/pkg/env"
	"github.com/gdbrns/go-wwebjs-api-connector/pkg/router"
)

type HealthResponse struct {
	Status   string                 `json:"status"`
	Uptime   string                 `json:"uptime"`
	Remote   connector.HealthStatus `json:"remote"`
	BaseURL  string                 `json:"baseUrl"`
	Sink     string                 `json:"sink"`
	Triggers int                    `json:"triggers"`
}

type StatsResponse struct {
	Triggers int                      `json:"triggers"`
	Totals   trigger.Stats            `json:"totals"`
	ByID     map[string]trigger.Stats `json:"byTrigger"`
}

// @Summary     Get Health
// @Description Reachability of the default WWebJS API plus the trigger pipeline state. refresh=true pings the API first
// @Tags        Admin
// @Produce     json
// @Param       X-Admin-Secret header string true "Admin secret key"
// @Param       refresh query bool false "Ping the API before answering"
// @Success     200 {object} HealthResponse
// @Failure     401 {object} router.Response
// @Router      /admin/health [get]
func GetHealth(c *fiber.Ctx) error {
	conn := connector.Get()

	remote := conn.Health.Status()
	if c.QueryBool("refresh") {
		timeout := env.GetEnvDurationOrDefault("HEALTH_CHECK_TIMEOUT", 10*time.Second)
		remote = conn.Health.Check(c.UserContext(), conn.Client(nil), timeout)
	}

	status := "ok"
	if remote.Checks > 0 && !remote.Reachable {
		status = "degraded"
	}

	sink := ""
	if conn.Sink != nil {
		sink = conn.Sink.Name()
	}

	return router.ResponseSuccessWithData(c, "Success", HealthResponse{
		Status:   status,
		Uptime:   time.Since(conn.StartedAt).Truncate(time.Second).String(),
		Remote:   remote,
		BaseURL:  conn.Defaults.BaseURL,
		Sink:     sink,
		Triggers: conn.Triggers.Len(),
	})
}

// @Summary     Get Stats
// @Description Inbound webhook counters per trigger
// @Tags        Admin
// @Produce     json
// @Param       X-Admin-Secret header string true "Admin secret key"
// @Success     200 {object} StatsResponse
// @Failure     401 {object} router.Response
// @Router      /admin/stats [get]
func GetStats(c *fiber.Ctx) error {
	stats := connector.Get().Triggers.Stats()

	var totals trigger.Stats
	for _, s := range stats {
		totals.Accepted += s.Accepted
		totals.Ignored += s.Ignored
		totals.Unauthorized += s.Unauthorized
		totals.RateLimited += s.RateLimited
		totals.Failed += s.Failed
	}

	return router.ResponseSuccessWithData(c, "Success", StatsResponse{
		Triggers: len(stats),
		Totals:   totals,
		ByID:     stats,
	})
}
