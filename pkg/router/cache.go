package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cache"
)

// HttpCacheInMemory caches GET responses of static catalog routes. Keys
// include the Authorization header so hosts never share entries.
func HttpCacheInMemory(ttl int) fiber.Handler {
	if ttl <= 0 {
		ttl = 5
	}
	return cache.New(cache.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Method() != fiber.MethodGet
		},
		Expiration: time.Duration(ttl) * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.Path() + "|" + c.Get(fiber.HeaderAuthorization)
		},
	})
}
