package router

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const HeaderRequestID = "X-Request-ID"

// HttpRealIP records the client address behind a proxy as remote_ip. The
// first X-Forwarded-For hop wins over X-Real-IP.
func HttpRealIP() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if forwarded := c.Get(fiber.HeaderXForwardedFor); forwarded != "" {
			first, _, _ := strings.Cut(forwarded, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				c.Locals("remote_ip", ip)
			}
		} else if realIP := strings.TrimSpace(c.Get("X-Real-IP")); realIP != "" {
			c.Locals("remote_ip", realIP)
		}
		return c.Next()
	}
}

// HttpRequestID reuses the caller's X-Request-ID or assigns a new one.
func HttpRequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := strings.TrimSpace(c.Get(HeaderRequestID))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Locals("request_id", requestID)
		c.Set(HeaderRequestID, requestID)
		return c.Next()
	}
}
