package webhooks

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/gdbrns/go-wwebjs-api-connector/internal/connector"
	"github.com/gdbrns/go-wwebjs-api-connector/internal/trigger"
	"github.com/gdbrns/go-wwebjs-api-connector/internal/webhook"
	"github.com/gdbrns/go-wwebjs-api-connector/pkg/log"
	"github.com/gdbrns/go-wwebjs-api-connector/pkg/router"
)

// ListEvents
// @Summary     List Trigger Events
// @Description Event names a trigger can select
// @Tags        Triggers
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} router.Response
// @Router      /triggers/events [get]
func ListEvents(c *fiber.Ctx) error {
	return router.ResponseSuccessWithData(c, "Success", trigger.Events())
}

// ListTriggers
// @Summary     List Triggers
// @Tags        Triggers
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} router.Response
// @Router      /triggers [get]
func ListTriggers(c *fiber.Ctx) error {
	configs := connector.Get().Triggers.List()
	out := make([]trigger.Config, 0, len(configs))
	for _, cfg := range configs {
		out = append(out, cfg.Redacted())
	}
	return router.ResponseSuccessWithData(c, "Success", out)
}

// CreateTrigger
// @Summary     Create Trigger
// @Description Register a trigger. Its webhook URL is /webhooks/{trigger_id}
// @Tags        Triggers
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body body trigger.Config true "Trigger configuration"
// @Success     201 {object} router.Response
// @Failure     400 {object} router.Response
// @Failure     409 {object} router.Response
// @Router      /triggers [post]
func CreateTrigger(c *fiber.Ctx) error {
	var cfg trigger.Config
	if err := c.BodyParser(&cfg); err != nil {
		return router.ResponseBadRequest(c, "Invalid request body")
	}

	created, err := connector.Get().Triggers.Add(cfg)
	if err != nil {
		return router.ResponseError(c, err)
	}

	log.TriggerOp(created.ID, "create").WithField("events", created.Events).Info("Trigger registered")
	return router.ResponseCreatedWithData(c, "Trigger created", fiber.Map{
		"trigger":    created.Redacted(),
		"webhookUrl": router.BaseURL + "/webhooks/" + created.ID,
	})
}

// GetTrigger
// @Summary     Get Trigger
// @Tags        Triggers
// @Produce     json
// @Security    BearerAuth
// @Param       trigger_id path string true "Trigger ID"
// @Success     200 {object} router.Response
// @Failure     404 {object} router.Response
// @Router      /triggers/{trigger_id} [get]
func GetTrigger(c *fiber.Ctx) error {
	cfg, err := connector.Get().Triggers.Get(c.Params("trigger_id"))
	if err != nil {
		return router.ResponseError(c, err)
	}
	return router.ResponseSuccessWithData(c, "Success", cfg.Redacted())
}

// DeleteTrigger
// @Summary     Delete Trigger
// @Tags        Triggers
// @Produce     json
// @Security    BearerAuth
// @Param       trigger_id path string true "Trigger ID"
// @Success     200 {object} router.Response
// @Failure     404 {object} router.Response
// @Router      /triggers/{trigger_id} [delete]
func DeleteTrigger(c *fiber.Ctx) error {
	id := c.Params("trigger_id")
	if err := connector.Get().Triggers.Delete(id); err != nil {
		return router.ResponseError(c, err)
	}
	log.TriggerOp(id, "delete").Info("Trigger removed")
	return router.ResponseSuccess(c, "Trigger deleted")
}

// Receive handles a call from the WWebJS API to a trigger's webhook URL.
// @Summary     Receive Webhook
// @Description Inbound WWebJS webhook. Accepted calls are forwarded to the configured sink
// @Tags        Triggers
// @Accept      json
// @Produce     json
// @Param       trigger_id path string true "Trigger ID"
// @Success     200 {object} router.Response
// @Failure     401 {object} router.Response
// @Failure     404 {object} router.Response
// @Failure     429 {object} router.Response
// @Failure     502 {object} router.Response
// @Router      /webhooks/{trigger_id} [post]
func Receive(c *fiber.Ctx) error {
	conn := connector.Get()
	id := c.Params("trigger_id")

	if err := conn.Triggers.Allow(id); err != nil {
		return router.ResponseError(c, err)
	}
	cfg, err := conn.Triggers.Get(id)
	if err != nil {
		return router.ResponseError(c, err)
	}

	// fasthttp reuses the body buffer once the handler returns.
	raw := append([]byte(nil), c.Body()...)

	result := trigger.Evaluate(cfg, func(name string) string { return c.Get(name) }, raw)
	entry := log.TriggerOp(id, "receive").WithField("event", result.Payload.DataType)

	switch result.Outcome {
	case trigger.OutcomeUnauthorized:
		conn.Triggers.Record(id, result.Outcome, nil)
		return router.ResponseUnauthorized(c, result.Reason)
	case trigger.OutcomeIgnored:
		conn.Triggers.Record(id, result.Outcome, nil)
		entry.WithField("reason", result.Reason).Debug("Webhook call ignored")
		return router.ResponseSuccessWithData(c, "Ignored", fiber.Map{"received": true, "fired": false})
	}

	firing := webhook.Firing{
		ID:         uuid.NewString(),
		TriggerID:  id,
		Event:      result.Payload.DataType,
		SessionID:  result.Payload.SessionID,
		ReceivedAt: time.Now().UTC(),
		Payload:    raw,
	}
	forwardErr := conn.Sink.Forward(c.UserContext(), firing)
	conn.Triggers.Record(id, result.Outcome, forwardErr)
	if forwardErr != nil {
		entry.WithError(forwardErr).WithField("sink", conn.Sink.Name()).Error("Failed to forward firing")
		return router.ResponseError(c, trigger.ForwardFailed(id, forwardErr).WithDetail("firingId", firing.ID))
	}

	entry.WithField("firing_id", firing.ID).Info("Trigger fired")
	return router.ResponseSuccessWithData(c, "Fired", fiber.Map{"received": true, "fired": true, "firingId": firing.ID})
}
