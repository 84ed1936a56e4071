package htb

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenExpiryWarning is how close to expiry a token has to be before the
// client logs about it at construction time.
const tokenExpiryWarning = 7 * 24 * time.Hour

// tokenExpiry extracts the exp claim from a JWT without verifying its
// signature. The token is only inspected, never trusted.
func tokenExpiry(raw string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return time.Time{}, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, err
	}
	if exp == nil {
		return time.Time{}, fmt.Errorf("token has no exp claim")
	}
	return exp.Time, nil
}

func warnIfTokenStale(raw string, logger *slog.Logger) {
	if logger == nil {
		return
	}
	exp, err := tokenExpiry(raw)
	if err != nil {
		logger.Warn("API token is not a parsable JWT, using it as-is", "error", err)
		return
	}
	left := time.Until(exp)
	switch {
	case left < 0:
		logger.Warn("API token is expired, authenticated requests will fail", "expired_at", exp.UTC())
	case left < tokenExpiryWarning:
		logger.Warn("API token expires soon", "expires_at", exp.UTC())
	}
}
