// Package router registers the auth routes: login and the current account.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authhdl "github.com/therebootai/rebootcrmbackend-sub000/internal/api/auth/handler"
	apirouter "github.com/therebootai/rebootcrmbackend-sub000/internal/api/router"
)

// Register mounts POST /auth/login and GET /auth/me on v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	h, err := authhdl.NewAuthHandler()
	if err != nil {
		return fmt.Errorf("failed to create auth handler: %w", err)
	}
	return Mount(v1, r, h)
}

// Mount registers the routes of h.
func Mount(v1 fiber.Router, r *apirouter.Router, h *authhdl.AuthHandler) error {
	v1.Post("/auth/login", h.HandleLogin)
	r.RegisterProtected(v1, "/auth/me", apirouter.Route{Method: fiber.MethodGet, Path: "/", Handler: h.HandleProfile})
	return nil
}
