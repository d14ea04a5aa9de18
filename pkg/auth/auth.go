package auth

import (
	"github.com/gdbrns/go-wwebjs-api-connector/pkg/env"
)

// AdminSecretKey guards the /admin routes.
var AdminSecretKey string

// HostJWTSecretKey signs the tokens hosts present on the action and trigger
// routes. When empty those routes answer 500 until it is configured.
var HostJWTSecretKey string

func init() {
	AdminSecretKey, _ = env.GetEnvString("ADMIN_SECRET_KEY")
	HostJWTSecretKey, _ = env.GetEnvString("HOST_JWT_SECRET_KEY")
}
