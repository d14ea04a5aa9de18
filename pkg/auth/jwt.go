package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "wwebjs-api-connector"

var ErrSecretNotConfigured = errors.New("HOST_JWT_SECRET_KEY not configured")

// HostTokenClaims identifies the automation host calling the connector.
type HostTokenClaims struct {
	HostID string `json:"host_id"`
	jwt.RegisteredClaims
}

// GenerateHostToken signs a token for hostID. A zero ttl issues a token
// without expiry.
func GenerateHostToken(hostID string, ttl time.Duration) (string, time.Time, error) {
	if HostJWTSecretKey == "" {
		return "", time.Time{}, ErrSecretNotConfigured
	}
	hostID = strings.TrimSpace(hostID)
	if hostID == "" {
		return "", time.Time{}, errors.New("host id is required")
	}

	now := time.Now()
	claims := HostTokenClaims{
		HostID: hostID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   hostID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = now.Add(ttl)
		claims.ExpiresAt = jwt.NewNumericDate(expiresAt)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(HostJWTSecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ValidateHostToken checks signature, issuer and expiry.
func ValidateHostToken(tokenString string) (*HostTokenClaims, error) {
	if HostJWTSecretKey == "" {
		return nil, ErrSecretNotConfigured
	}

	token, err := jwt.ParseWithClaims(tokenString, &HostTokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(HostJWTSecretKey), nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*HostTokenClaims); ok && token.Valid && claims.HostID != "" {
		return claims, nil
	}
	return nil, errors.New("invalid token claims")
}
