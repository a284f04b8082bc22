// Package router registers the staff account routes.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	apirouter "github.com/therebootai/rebootcrmbackend-sub000/internal/api/router"
	staffhdl "github.com/therebootai/rebootcrmbackend-sub000/internal/api/staff/handler"
	models "github.com/therebootai/rebootcrmbackend-sub000/internal/api/staff/models"
)

// Prefixes maps each role to its route prefix.
var Prefixes = map[string]string{
	models.RoleAdmin:           "/admins",
	models.RoleEmployee:        "/employees",
	models.RoleBDE:             "/bdes",
	models.RoleTelecaller:      "/telecallers",
	models.RoleDigitalMarketer: "/digital-marketers",
}

// Register mounts one account resource per role. Every signed-in account can read them
// (assignment dropdowns); only admins write.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	admin := []string{models.RoleAdmin}
	for _, role := range models.Roles {
		h, err := staffhdl.NewUserHandler(role)
		if err != nil {
			return fmt.Errorf("failed to create %s handler: %w", role, err)
		}
		r.RegisterResourceRoutes(v1, Prefixes[role], h, apirouter.ReadWriteConfig.WithRoles(nil, admin),
			apirouter.Route{Method: fiber.MethodPut, Path: "/:id/status", Roles: admin, Handler: h.HandleSetStatus},
			apirouter.Route{Method: fiber.MethodPost, Path: "/:id/targets", Roles: admin, Handler: h.HandleAddTarget},
		)
	}
	return nil
}
