// Package authsvc - login and access tokens for staff accounts.
package authsvc

import (
	"context"
	"fmt"
	"time"

	authdto "github.com/therebootai/rebootcrmbackend-sub000/internal/api/auth/dto"
	models "github.com/therebootai/rebootcrmbackend-sub000/internal/api/auth/models"
	staffmodels "github.com/therebootai/rebootcrmbackend-sub000/internal/api/staff/models"
	staffsvc "github.com/therebootai/rebootcrmbackend-sub000/internal/api/staff/service"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/global"
)

// Authenticator checks staff credentials.
type Authenticator interface {
	Authenticate(ctx context.Context, identifier, password string) (staffmodels.User, error)
}

// AuthService issues access tokens.
type AuthService struct {
	users  Authenticator
	secret string
	ttl    time.Duration
	now    func() time.Time
}

// NewAuthService wires the service to the users collection and the loaded configuration.
func NewAuthService() (*AuthService, error) {
	users, err := staffsvc.NewUserService()
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}
	cfg := global.MongoDB_ServerConfig
	if cfg == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	return NewAuthServiceWith(users, cfg.JwtSecret, cfg.TokenTTL()), nil
}

// NewAuthServiceWith builds the service from explicit parts.
func NewAuthServiceWith(users Authenticator, secret string, ttl time.Duration) *AuthService {
	return &AuthService{users: users, secret: secret, ttl: ttl, now: time.Now}
}

// Login authenticates input and returns a signed token with the account.
func (s *AuthService) Login(ctx context.Context, input *authdto.LoginInput) (*models.LoginResult, error) {
	user, err := s.users.Authenticate(ctx, input.Identifier, input.Password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	token, err := CreateToken(s.secret, models.JwtToken{
		UserID:   user.ID.Hex(),
		UserCode: user.UserCode,
		Role:     user.Role,
	}, now, s.ttl)
	if err != nil {
		return nil, err
	}

	return &models.LoginResult{
		Token:     token,
		ExpiresAt: now.Add(s.ttl).Unix(),
		User:      user,
	}, nil
}
