package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, expiresAt *time.Time) string {
	t.Helper()

	claims := jwt.RegisteredClaims{Subject: "u1"}
	if expiresAt != nil {
		claims.ExpiresAt = jwt.NewNumericDate(*expiresAt)
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func TestTokenExpiresWithin(t *testing.T) {
	soon := time.Now().Add(30 * time.Second)
	later := time.Now().Add(2 * time.Hour)
	past := time.Now().Add(-time.Minute)

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{name: "empty token", token: "", want: false},
		{name: "garbage token", token: "not-a-jwt", want: false},
		{name: "no expiry claim", token: signedToken(t, nil), want: false},
		{name: "expires soon", token: signedToken(t, &soon), want: true},
		{name: "already expired", token: signedToken(t, &past), want: true},
		{name: "expires much later", token: signedToken(t, &later), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TokenExpiresWithin(tt.token, time.Minute); got != tt.want {
				t.Errorf("TokenExpiresWithin() = %v, want %v", got, tt.want)
			}
		})
	}
}
