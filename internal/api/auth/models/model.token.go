// Package models - access token claims.
package models

import "github.com/dgrijalva/jwt-go"

// JwtToken is the payload signed into an access token.
type JwtToken struct {
	UserID   string `json:"userId"`
	UserCode string `json:"userCode"`
	Role     string `json:"role"`
	jwt.StandardClaims
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token     string      `json:"token"`
	ExpiresAt int64       `json:"expiresAt"`
	User      interface{} `json:"user"`
}
