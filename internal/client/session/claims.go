package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims reads the subject and expiry of a JWT access token without
// verifying its signature. The result is for display only.
func TokenClaims(token string) (subject string, expiresAt time.Time, ok bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", time.Time{}, false
	}

	subject, _ = claims.GetSubject()
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		expiresAt = exp.Time
	}
	return subject, expiresAt, true
}
