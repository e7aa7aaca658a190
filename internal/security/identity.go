package security

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// FallbackUsername is recorded as acting user whenever no identity can be
// resolved from the request.
const FallbackUsername = "SYSTEM"

// IdentityResolver extracts a display username from a bearer token. The
// claim chain mirrors what identity providers emit: preferred_username,
// then name, then sub. Resolution never fails; unusable tokens resolve to
// the fallback sentinel.
type IdentityResolver struct {
	secretKey []byte
}

func NewIdentityResolver(secretKey string) *IdentityResolver {
	return &IdentityResolver{secretKey: []byte(secretKey)}
}

// ResolveUsername parses and validates the Authorization bearer token and
// returns the caller's display username.
func (r *IdentityResolver) ResolveUsername(req *http.Request) string {
	header := req.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return FallbackUsername
	}
	tokenString := strings.TrimPrefix(header, "Bearer ")

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return r.secretKey, nil
	})
	if err != nil || !token.Valid {
		return FallbackUsername
	}

	for _, claim := range []string{"preferred_username", "name", "sub"} {
		if v, ok := claims[claim].(string); ok && v != "" {
			return v
		}
	}
	return FallbackUsername
}
