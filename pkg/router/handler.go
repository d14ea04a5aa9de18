package router

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/gdbrns/go-wwebjs-api-connector/pkg/errx"
)

// HttpErrorHandler renders errors that escape a handler inside the standard
// envelope. Registered errors keep their status and code.
func HttpErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		response := &Response{
			Status:  false,
			Code:    fiberErr.Code,
			Message: fiberErr.Message,
			Error:   fiberErr.Message,
		}
		logError(c, response.Code, response.Message)
		return c.Status(response.Code).JSON(response)
	}
	return ResponseError(c, err)
}

// ResponseError maps err to its registered status. Unregistered errors
// answer 500.
func ResponseError(c *fiber.Ctx, err error) error {
	response := Response{
		Status:  false,
		Code:    errx.HTTPStatus(err),
		Message: err.Error(),
		Error:   err.Error(),
	}

	var xerr *errx.Error
	if errors.As(err, &xerr) {
		response.ErrorCode = string(xerr.Code)
		if len(xerr.Details) > 0 {
			response.Data = xerr.Details
		}
	}

	logError(c, response.Code, errx.Describe(err))
	return c.Status(response.Code).JSON(response)
}
