package internal

import (
	"github.com/gofiber/fiber/v2"
	swagger "github.com/gofiber/swagger"

	"github.com/gdbrns/go-wwebjs-api-connector/pkg/auth"
	"github.com/gdbrns/go-wwebjs-api-connector/pkg/router"

	ctlActions "github.com/gdbrns/go-wwebjs-api-connector/internal/actions"
	ctlAdmin "github.com/gdbrns/go-wwebjs-api-connector/internal/admin"
	ctlAuth "github.com/gdbrns/go-wwebjs-api-connector/internal/auth"
	ctlIndex "github.com/gdbrns/go-wwebjs-api-connector/internal/index"
	ctlWebhooks "github.com/gdbrns/go-wwebjs-api-connector/internal/webhooks"
)

func Routes(app *fiber.App) {
	// Configure OpenAPI / Swagger
	specURL := router.BaseURL + "/docs/swagger.json"
	swaggerHandler := swagger.New(swagger.Config{
		URL: specURL,
	})

	// Route for Index
	// ---------------------------------------------
	if router.BaseURL == "" {
		app.Get("/", ctlIndex.Index)
	} else {
		app.Get(router.BaseURL, ctlIndex.Index)
		app.Get(router.BaseURL+"/", ctlIndex.Index)
	}

	// Route for OpenAPI / Swagger
	// ---------------------------------------------
	app.Get(router.BaseURL+"/docs/swagger.json", func(c *fiber.Ctx) error {
		return c.SendFile("docs/swagger.json")
	})
	app.Get(router.BaseURL+"/docs/*", swaggerHandler)

	// ============================================================
	// ADMIN ROUTES (X-Admin-Secret authentication)
	// ============================================================
	adminMiddleware := auth.AdminAuth()

	app.Get(router.BaseURL+"/admin/health", adminMiddleware, ctlAdmin.GetHealth)
	app.Get(router.BaseURL+"/admin/stats", adminMiddleware, ctlAdmin.GetStats)
	app.Post(router.BaseURL+"/admin/tokens", adminMiddleware, ctlAuth.IssueHostToken)

	// ============================================================
	// HOST ROUTES (JWT Bearer token authentication)
	// ============================================================
	hostMiddleware := auth.HostAuth()
	catalogCache := router.HttpCacheInMemory(router.CacheTTLSeconds)

	// Actions
	app.Get(router.BaseURL+"/actions", hostMiddleware, catalogCache, ctlActions.ListActions)
	app.Post(router.BaseURL+"/actions/execute", hostMiddleware, ctlActions.Execute)
	app.Get(router.BaseURL+"/sessions/options", hostMiddleware, ctlActions.ListSessionOptions)
	app.Post(router.BaseURL+"/credentials/test", hostMiddleware, ctlActions.CheckCredentials)

	// Triggers
	app.Get(router.BaseURL+"/triggers/events", hostMiddleware, catalogCache, ctlWebhooks.ListEvents)
	app.Get(router.BaseURL+"/triggers", hostMiddleware, ctlWebhooks.ListTriggers)
	app.Post(router.BaseURL+"/triggers", hostMiddleware, ctlWebhooks.CreateTrigger)
	app.Get(router.BaseURL+"/triggers/:trigger_id", hostMiddleware, ctlWebhooks.GetTrigger)
	app.Delete(router.BaseURL+"/triggers/:trigger_id", hostMiddleware, ctlWebhooks.DeleteTrigger)

	// ============================================================
	// INBOUND WEBHOOKS (authenticated per trigger)
	// ============================================================
	app.Post(router.BaseURL+"/webhooks/:trigger_id", ctlWebhooks.Receive)
}
