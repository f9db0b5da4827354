package util

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformedToken = errors.New("malformed token")
	ErrTokenExpired   = errors.New("token expired")
)

// TokenExpiry reads the exp claim without verifying the signature. The console
// never holds the signing key; the backend remains the only verifier.
// ok is false when the token carries no exp.
func TokenExpiry(token string) (exp time.Time, ok bool, err error) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false, nil
	}
	return claims.ExpiresAt.Time, true, nil
}

// SessionTTL is how long a session holding token may live: until the token's exp,
// capped by maxAge. Opaque (non-JWT) tokens get maxAge.
func SessionTTL(token string, maxAge time.Duration, now time.Time) (time.Duration, error) {
	exp, ok, err := TokenExpiry(token)
	if err != nil || !ok {
		return maxAge, nil
	}
	ttl := exp.Sub(now)
	if ttl <= 0 {
		return 0, ErrTokenExpired
	}
	if maxAge > 0 && ttl > maxAge {
		return maxAge, nil
	}
	return ttl, nil
}
