package api

import (
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const tokenType = "access"

// NewAuth returns the HS256 signer and verifier for secret.
func NewAuth(secret string) *jwtauth.JWTAuth {
	return jwtauth.New("HS256", []byte(secret), nil, jwt.WithAcceptableSkew(30*time.Second))
}

// IssueToken signs an access token for subject valid for ttl from now.
func IssueToken(secret, subject string, ttl time.Duration, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(ttl)
	claims := map[string]any{
		"sub":  subject,
		"type": tokenType,
	}
	jwtauth.SetIssuedAt(claims, now)
	jwtauth.SetExpiry(claims, expiresAt)

	_, token, err := NewAuth(secret).Encode(claims)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// authRequired rejects requests whose verified token is missing or not an
// access token. It runs after jwtauth.Verifier.
func authRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			unauthorized(w, err.Error())
			return
		}
		if token == nil {
			unauthorized(w, "missing token")
			return
		}
		if t, ok := claims["type"].(string); !ok || t != tokenType {
			unauthorized(w, "invalid token type")
			return
		}
		next.ServeHTTP(w, r)
	})
}
