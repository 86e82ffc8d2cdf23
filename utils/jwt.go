package utils

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	"storefront/models"
)

// identifierClaims are tried in order when looking for the user id.
var identifierClaims = []string{
	"nameid",
	"http://schemas.xmlsoap.org/ws/2005/05/identity/claims/nameidentifier",
	"sub",
	"id",
	"userId",
}

// DecodeTokenClaims reads a JWT payload WITHOUT verifying its signature.
// The result is for display and profile lookup only and must never drive
// an authorization decision; the backend verifies every request.
func DecodeTokenClaims(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}
	return claims, nil
}

func IdentifierFromToken(token string) (int, error) {
	claims, err := DecodeTokenClaims(token)
	if err != nil {
		return 0, err
	}
	for _, name := range identifierClaims {
		raw, ok := claims[name]
		if !ok {
			continue
		}
		switch v := raw.(type) {
		case float64:
			return int(v), nil
		case string:
			id, err := strconv.Atoi(v)
			if err != nil {
				return 0, fmt.Errorf("claim %s: %w", name, err)
			}
			return id, nil
		}
	}
	return 0, models.ErrNoIdentifier
}
