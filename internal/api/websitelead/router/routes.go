// Package router registers the website lead routes.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	apirouter "github.com/therebootai/rebootcrmbackend-sub000/internal/api/router"
	staffmodels "github.com/therebootai/rebootcrmbackend-sub000/internal/api/staff/models"
	websiteleadhdl "github.com/therebootai/rebootcrmbackend-sub000/internal/api/websitelead/handler"
)

// Register mounts the public form at /public/website-leads and the admin resource at
// /website-leads.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	h, err := websiteleadhdl.NewWebsiteLeadHandler()
	if err != nil {
		return fmt.Errorf("failed to create website lead handler: %w", err)
	}
	v1.Post("/public/website-leads", h.HandleCreate)

	cfg := apirouter.ReadWriteConfig
	cfg.Create = false
	staff := []string{staffmodels.RoleAdmin, staffmodels.RoleDigitalMarketer}
	r.RegisterResourceRoutes(v1, "/website-leads", h, cfg.WithRoles(staff, staff))
	return nil
}
