package actions

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/gdbrns/go-wwebjs-api-connector/internal/connector"
	"github.com/gdbrns/go-wwebjs-api-connector/internal/dispatch"
	"github.com/gdbrns/go-wwebjs-api-connector/internal/execution"
	"github.com/gdbrns/go-wwebjs-api-connector/internal/types"
	"github.com/gdbrns/go-wwebjs-api-connector/pkg/errx"
	"github.com/gdbrns/go-wwebjs-api-connector/pkg/log"
	"github.com/gdbrns/go-wwebjs-api-connector/pkg/router"
)

// ListActions
// @Summary     List Actions
// @Description Resources and the operations each one supports
// @Tags        Actions
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} router.Response
// @Router      /actions [get]
func ListActions(c *fiber.Ctx) error {
	return router.ResponseSuccessWithData(c, "Success", dispatch.Catalog())
}

// Execute
// @Summary     Execute Action
// @Description Run one action over a batch of items against the WWebJS API
// @Tags        Actions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body body types.RequestExecute true "Execution document"
// @Success     200 {object} types.ResponseExecute
// @Failure     400 {object} router.Response
// @Failure     502 {object} router.Response
// @Router      /actions/execute [post]
func Execute(c *fiber.Ctx) error {
	var req types.RequestExecute
	if err := c.BodyParser(&req); err != nil {
		return router.ResponseBadRequest(c, "Invalid request body")
	}

	conn := connector.Get()
	items := execution.ItemsFromRequest(req)

	log.Print(c).WithField("items", len(items)).Debug("Executing action")

	outputs, err := execution.Run(c.UserContext(), conn.Dispatcher(req.Credentials), items,
		execution.Policy{ContinueOnFail: req.ContinueOnFail})
	if err != nil {
		failed := types.ResponseExecuteFailed{Items: outputs}
		var failure *execution.Failure
		if errors.As(err, &failure) {
			failed.Items = failure.Outputs
			failed.ItemIndex = failure.ItemIndex
		}
		var xerr *errx.Error
		if errors.As(err, &xerr) {
			failed.Code = string(xerr.Code)
		}
		log.Print(c).WithField("item", failed.ItemIndex).Warn(errx.Describe(err))
		return router.ResponseFailedWithData(c, errx.HTTPStatus(err), err.Error(), failed)
	}

	return router.ResponseSuccessWithData(c, "Success", types.ResponseExecute{Items: outputs})
}

// ListSessionOptions
// @Summary     List Sessions
// @Description Sessions known to the WWebJS API, for session pickers
// @Tags        Actions
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} router.Response
// @Router      /sessions/options [get]
func ListSessionOptions(c *fiber.Ctx) error {
	client := connector.Get().Client(nil)
	options, err := client.ListSessionOptions(c.UserContext())
	if err != nil {
		// The picker stays usable with an empty list.
		log.Print(c).WithError(err).Warn("Failed to list sessions")
	}
	return router.ResponseSuccessWithData(c, "Success", options)
}

// CheckCredentials
// @Summary     Test Credentials
// @Description Check that the given credentials reach the WWebJS API
// @Tags        Actions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body body types.RequestCredentialTest false "Credentials, defaults apply to empty fields"
// @Success     200 {object} types.ResponseCredentialTest
// @Router      /credentials/test [post]
func CheckCredentials(c *fiber.Ctx) error {
	var req types.RequestCredentialTest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return router.ResponseBadRequest(c, "Invalid request body")
		}
	}

	client := connector.Get().Client(req.Credentials)
	if err := client.Ping(c.UserContext()); err != nil {
		return router.ResponseSuccessWithData(c, "Success", types.ResponseCredentialTest{
			Status:  "Error",
			Message: err.Error(),
		})
	}
	return router.ResponseSuccessWithData(c, "Success", types.ResponseCredentialTest{
		Status:  "OK",
		Message: "Connection successful",
	})
}
