package auth

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the verified, decoded representation of the caller's token.
// It lives for one request.
type Identity struct {
	// UID is the provider's stable unique id for the user.
	UID string
	// Email is the user's email address, when present in the token.
	Email string
	// Name is the user's display name, when present in the token.
	Name string
}

// DisplayName returns the best human-readable label for the identity.
func (id *Identity) DisplayName() string {
	if id.Name != "" {
		return id.Name
	}
	if id.Email != "" {
		return id.Email
	}
	return id.UID
}

// identityFromClaims extracts the identity from verified token claims.
// Identity-platform tokens carry the uid in "user_id"; plain OIDC tokens
// only have "sub".
func identityFromClaims(claims jwt.MapClaims) *Identity {
	uid, _ := claims["user_id"].(string)
	if uid == "" {
		uid, _ = claims["sub"].(string)
	}
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	return &Identity{UID: uid, Email: email, Name: name}
}

// ErrNoBearerToken is returned when the Authorization header is absent or
// not a bearer scheme.
var ErrNoBearerToken = errors.New("auth: no bearer token")

// BearerToken extracts the raw token from an Authorization header value.
func BearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrNoBearerToken
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", ErrNoBearerToken
	}
	return parts[1], nil
}
