// Package auth issues and verifies the signed session tokens that carry a
// facade identity between requests.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/lightway/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the facade identity token in the standard subject claim.
type Claims struct {
	jwt.RegisteredClaims
}

// GenerateToken signs a session token (HS256) for identityToken that stops
// being accepted at expiresAt.
func GenerateToken(identityToken string, secretKey []byte, issuedAt, expiresAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identityToken,
			Issuer:    common.AppName,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return tokenString, nil
}

// GetIdentityTokenFromToken verifies tokenString and returns the identity
// token it was issued for. Expired tokens yield common.ErrTokenExpired,
// every other failure common.ErrInvalidToken.
func GetIdentityTokenFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}
