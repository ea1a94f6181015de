// Package auth extracts the caller's identity from the Authorization
// header of an API Gateway proxy request.
//
// The token payload is decoded without signature verification: requests
// only reach these functions through an API Gateway Cognito authorizer,
// which has already verified the token. Decoding here is claim
// extraction, not authentication.
package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingAuthHeader = errors.New("auth: authorization header is required")
	ErrNotBearer         = errors.New("auth: authorization header is not a bearer token")
	ErrMissingSubject    = errors.New("auth: token has no subject claim")
)

// Identity is the decoded caller identity. UserID is always present;
// the remaining claims are optional.
type Identity struct {
	UserID   string
	Email    string
	Username string
}

// FromHeaders decodes the bearer token found in headers. Header name
// matching is case-insensitive because API Gateway forwards client
// headers verbatim.
func FromHeaders(headers map[string]string) (Identity, error) {
	var raw string
	for k, v := range headers {
		if strings.EqualFold(k, "Authorization") {
			raw = v
			break
		}
	}
	if raw == "" {
		return Identity{}, ErrMissingAuthHeader
	}

	const prefix = "Bearer "
	if !strings.HasPrefix(raw, prefix) {
		return Identity{}, ErrNotBearer
	}
	return fromToken(strings.TrimPrefix(raw, prefix))
}

func fromToken(token string) (Identity, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Identity{}, fmt.Errorf("auth: decode token: %w", err)
	}

	sub, _ := claims["sub"].(string)
	if strings.TrimSpace(sub) == "" {
		return Identity{}, ErrMissingSubject
	}

	email, _ := claims["email"].(string)
	username, _ := claims["cognito:username"].(string)
	return Identity{UserID: sub, Email: email, Username: username}, nil
}
