// Package router registers the candidate routes.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	candidatehdl "github.com/therebootai/rebootcrmbackend-sub000/internal/api/candidate/handler"
	apirouter "github.com/therebootai/rebootcrmbackend-sub000/internal/api/router"
	staffmodels "github.com/therebootai/rebootcrmbackend-sub000/internal/api/staff/models"
)

// Register mounts /candidates for admins and employees.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	h, err := candidatehdl.NewCandidateHandler()
	if err != nil {
		return fmt.Errorf("failed to create candidate handler: %w", err)
	}
	hr := []string{staffmodels.RoleAdmin, staffmodels.RoleEmployee}
	r.RegisterResourceRoutes(v1, "/candidates", h, apirouter.ReadWriteConfig.WithRoles(hr, hr))
	return nil
}
