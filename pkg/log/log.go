package log

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/gdbrns/go-wwebjs-api-connector/pkg/env"
)

var logger = logrus.New()

func init() {
	logger.Formatter = &logrus.TextFormatter{
		TimestampFormat: time.RFC3339,
		FullTimestamp:   true,
		DisableColors:   false,
		ForceColors:     true,
	}

	level, err := logrus.ParseLevel(env.GetEnvStringOrDefault("LOG_LEVEL", "info"))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
}

// Logger exposes the shared logger for components that need to redirect or silence it.
func Logger() *logrus.Logger {
	return logger
}

func Print(c *fiber.Ctx) *logrus.Entry {
	if c == nil {
		return logger.WithFields(logrus.Fields{})
	}

	remoteIP := c.IP()
	if v := c.Locals("remote_ip"); v != nil {
		if ip, ok := v.(string); ok && ip != "" {
			remoteIP = ip
		}
	}
	fields := logrus.Fields{
		"remote_ip": remoteIP,
		"method":    c.Method(),
		"uri":       c.OriginalURL(),
	}
	if v, ok := c.Locals("request_id").(string); ok && v != "" {
		fields["request_id"] = v
	}
	return logger.WithFields(fields)
}

// ActionOp tags an entry with the action being executed for an item.
func ActionOp(resource string, operation string, item int) *logrus.Entry {
	return logger.WithFields(logrus.Fields{
		"resource":  resource,
		"operation": operation,
		"item":      item,
	})
}

// TriggerOp tags an entry with the trigger registration being handled.
func TriggerOp(triggerID string, op string) *logrus.Entry {
	return logger.WithFields(logrus.Fields{
		"trigger_id": triggerID,
		"op":         op,
	})
}

func SinkOp(sink string, triggerID string) *logrus.Entry {
	return logger.WithFields(logrus.Fields{
		"sink":       sink,
		"trigger_id": triggerID,
	})
}

func SysErr(op string, err error) {
	logger.WithField("op", op).WithError(err).Error("system error")
}
