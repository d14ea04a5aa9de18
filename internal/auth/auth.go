package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/gdbrns/go-wwebjs-api-connector/internal/types"
	pkgAuth "github.com/gdbrns/go-wwebjs-api-connector/pkg/auth"
	"github.com/gdbrns/go-wwebjs-api-connector/pkg/log"
	"github.com/gdbrns/go-wwebjs-api-connector/pkg/router"
)

// IssueHostToken creates a bearer token for an automation host.
// @Summary     Issue Host Token
// @Description Issue a JWT a host uses on the action and trigger endpoints. An empty ttl never expires
// @Tags        Admin
// @Accept      json
// @Produce     json
// @Param       X-Admin-Secret header string true "Admin secret key"
// @Param       body body types.RequestIssueHostToken true "Host details"
// @Success     201 {object} types.ResponseHostToken
// @Failure     400 {object} router.Response
// @Failure     401 {object} router.Response
// @Router      /admin/tokens [post]
func IssueHostToken(c *fiber.Ctx) error {
	var req types.RequestIssueHostToken
	if err := c.BodyParser(&req); err != nil {
		return router.ResponseBadRequest(c, "Invalid request body")
	}

	req.HostID = strings.TrimSpace(req.HostID)
	if req.HostID == "" {
		return router.ResponseBadRequest(c, "host_id is required")
	}

	var ttl time.Duration
	if req.TTL != "" {
		parsed, err := time.ParseDuration(req.TTL)
		if err != nil || parsed < 0 {
			return router.ResponseBadRequest(c, "ttl must be a positive duration such as 720h")
		}
		ttl = parsed
	}

	token, expiresAt, err := pkgAuth.GenerateHostToken(req.HostID, ttl)
	if err != nil {
		if errors.Is(err, pkgAuth.ErrSecretNotConfigured) {
			return router.ResponseInternalError(c, "Host JWT secret key not configured")
		}
		log.Print(c).WithError(err).Error("Failed to sign host token")
		return router.ResponseInternalError(c, "Failed to issue token")
	}

	resp := types.ResponseHostToken{HostID: req.HostID, Token: token}
	if !expiresAt.IsZero() {
		resp.ExpiresAt = expiresAt.Format(time.RFC3339)
	}
	return router.ResponseCreatedWithData(c, "Token issued", resp)
}
