package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func withSecrets(t *testing.T, host, admin string) {
	t.Helper()
	prevHost, prevAdmin := HostJWTSecretKey, AdminSecretKey
	HostJWTSecretKey, AdminSecretKey = host, admin
	t.Cleanup(func() {
		HostJWTSecretKey, AdminSecretKey = prevHost, prevAdmin
	})
}

func TestHostTokenRoundTrip(t *testing.T) {
	withSecrets(t, "0123456789abcdef0123456789abcdef", "")

	token, expiresAt, err := GenerateHostToken("automation-prod", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if expiresAt.IsZero() {
		t.Error("expiry not reported")
	}
	claims, err := ValidateHostToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.HostID != "automation-prod" {
		t.Errorf("host id = %q", claims.HostID)
	}

	HostJWTSecretKey = "another-secret-another-secret-00"
	if _, err := ValidateHostToken(token); err == nil {
		t.Error("token accepted with a different secret")
	}
}

func TestHostTokenExpired(t *testing.T) {
	withSecrets(t, "0123456789abcdef0123456789abcdef", "")

	claims := HostTokenClaims{
		HostID: "old",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(HostJWTSecretKey))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ValidateHostToken(token); err == nil {
		t.Error("expired token accepted")
	}
}

func TestGenerateRequiresSecretAndHost(t *testing.T) {
	withSecrets(t, "", "")
	if _, _, err := GenerateHostToken("h", 0); err != ErrSecretNotConfigured {
		t.Errorf("error = %v", err)
	}
	HostJWTSecretKey = "0123456789abcdef0123456789abcdef"
	if _, _, err := GenerateHostToken("  ", 0); err == nil {
		t.Error("empty host accepted")
	}
}

func TestMiddleware(t *testing.T) {
	withSecrets(t, "0123456789abcdef0123456789abcdef", "admin")

	app := fiber.New()
	app.Get("/host", HostAuth(), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("host_id").(string))
	})
	app.Get("/admin", AdminAuth(), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusNoContent)
	})

	token, _, err := GenerateHostToken("host-a", 0)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		path   string
		header string
		value  string
		want   int
	}{
		{"host ok", "/host", "Authorization", "Bearer " + token, http.StatusOK},
		{"host missing", "/host", "", "", http.StatusUnauthorized},
		{"host wrong scheme", "/host", "Authorization", "Basic " + token, http.StatusUnauthorized},
		{"host garbage", "/host", "Authorization", "Bearer nope", http.StatusUnauthorized},
		{"admin ok", "/admin", "X-Admin-Secret", "admin", http.StatusNoContent},
		{"admin wrong", "/admin", "X-Admin-Secret", "nimda", http.StatusUnauthorized},
		{"admin missing", "/admin", "", "", http.StatusUnauthorized},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.header != "" {
				req.Header.Set(tc.header, tc.value)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != tc.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tc.want)
			}
		})
	}
}
