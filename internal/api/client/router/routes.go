// Package router registers the client routes.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	clienthdl "github.com/therebootai/rebootcrmbackend-sub000/internal/api/client/handler"
	apirouter "github.com/therebootai/rebootcrmbackend-sub000/internal/api/router"
	staffmodels "github.com/therebootai/rebootcrmbackend-sub000/internal/api/staff/models"
)

// Register mounts /clients for admins and employees.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	h, err := clienthdl.NewClientHandler()
	if err != nil {
		return fmt.Errorf("failed to create client handler: %w", err)
	}
	staff := []string{staffmodels.RoleAdmin, staffmodels.RoleEmployee}
	r.RegisterResourceRoutes(v1, "/clients", h, apirouter.ReadWriteConfig.WithRoles(staff, staff))
	return nil
}
