package router

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/gdbrns/go-wwebjs-api-connector/pkg/log"
)

// RecoveryMiddleware converts panics into a 500 envelope. The panic value
// is logged, never returned to the caller.
// It must be registered before application routes.
func RecoveryMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if rec := recover(); rec != nil {
				resp := Response{
					Status:    false,
					Code:      http.StatusInternalServerError,
					Message:   http.StatusText(http.StatusInternalServerError),
					ErrorCode: "PANIC",
				}
				resp.Error = resp.Message
				log.Print(c).Error(fmt.Sprintf("panic recovered: %v", rec))
				err = c.Status(resp.Code).JSON(resp)
			}
		}()
		return c.Next()
	}
}
