package authsvc

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"

	models "github.com/therebootai/rebootcrmbackend-sub000/internal/api/auth/models"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/common"
)

// CreateToken signs claims with HS256. IssuedAt, ExpiresAt and Id are filled in from now
// and ttl.
func CreateToken(secret string, claims models.JwtToken, now time.Time, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("create token: empty secret")
	}
	claims.IssuedAt = now.Unix()
	claims.ExpiresAt = now.Add(ttl).Unix()
	claims.Subject = claims.UserID
	claims.Id = uuid.NewString()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("create token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies tokenString and returns its claims. Expired tokens give
// common.ErrTokenExpired, everything else common.ErrTokenInvalid.
func ParseToken(secret, tokenString string) (*models.JwtToken, error) {
	claims := &models.JwtToken{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrTokenInvalid
	}
	if !token.Valid || claims.UserID == "" {
		return nil, common.ErrTokenInvalid
	}
	return claims, nil
}
