// Package authhdl serves login and the profile of the signed-in account.
package authhdl

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authdto "github.com/therebootai/rebootcrmbackend-sub000/internal/api/auth/dto"
	models "github.com/therebootai/rebootcrmbackend-sub000/internal/api/auth/models"
	authsvc "github.com/therebootai/rebootcrmbackend-sub000/internal/api/auth/service"
	basehdl "github.com/therebootai/rebootcrmbackend-sub000/internal/api/base/handler"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/api/middleware"
	staffmodels "github.com/therebootai/rebootcrmbackend-sub000/internal/api/staff/models"
	staffsvc "github.com/therebootai/rebootcrmbackend-sub000/internal/api/staff/service"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/common"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/logger"
)

// LoginService issues tokens.
type LoginService interface {
	Login(ctx context.Context, input *authdto.LoginInput) (*models.LoginResult, error)
}

// ProfileService loads accounts.
type ProfileService interface {
	FindOneById(ctx context.Context, id primitive.ObjectID) (staffmodels.User, error)
}

// AuthHandler handles /auth.
type AuthHandler struct {
	Auth  LoginService
	Users ProfileService
}

// NewAuthHandler creates the handler over the users collection.
func NewAuthHandler() (*AuthHandler, error) {
	authService, err := authsvc.NewAuthService()
	if err != nil {
		return nil, fmt.Errorf("failed to create auth service: %v", err)
	}
	userService, err := staffsvc.NewUserService()
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %v", err)
	}
	return &AuthHandler{Auth: authService, Users: userService}, nil
}

// HandleLogin handles POST /auth/login.
func (h *AuthHandler) HandleLogin(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input authdto.LoginInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		result, err := h.Auth.Login(c.Context(), &input)
		if err != nil {
			logger.LogAuth("login_failed", c, map[string]interface{}{"identifier": input.Identifier})
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		logger.LogAuth("login", c, map[string]interface{}{"identifier": input.Identifier})
		basehdl.HandleResponse(c, result, nil)
		return nil
	})
}

// HandleProfile handles GET /auth/me.
func (h *AuthHandler) HandleProfile(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		id, _, _ := middleware.CurrentUser(c)
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			basehdl.HandleResponse(c, nil, common.ErrTokenInvalid)
			return nil
		}
		user, err := h.Users.FindOneById(c.Context(), oid)
		basehdl.HandleResponse(c, user, err)
		return nil
	})
}
