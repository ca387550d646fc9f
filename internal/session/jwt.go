package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiresWithin reports whether the access token's registered expiry
// falls inside d from now. The token is decoded without signature
// verification; the client never holds the signing key and only wants a
// cheap hint for whether a proactive refresh is worthwhile. Tokens that do
// not parse or carry no expiry report false, leaving the decision to the
// normal 401-refresh path.
func TokenExpiresWithin(token string, d time.Duration) bool {
	if token == "" {
		return false
	}
	parser := jwt.NewParser()
	claims := jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return time.Until(claims.ExpiresAt.Time) < d
}
