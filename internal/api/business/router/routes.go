// Package router registers the business lead routes.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	businesshdl "github.com/therebootai/rebootcrmbackend-sub000/internal/api/business/handler"
	apirouter "github.com/therebootai/rebootcrmbackend-sub000/internal/api/router"
	staffmodels "github.com/therebootai/rebootcrmbackend-sub000/internal/api/staff/models"
)

const prefix = "/businesses"

// Register mounts /businesses. Every role works its own slice of the leads; only admins
// delete.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	h, err := businesshdl.NewBusinessHandler()
	if err != nil {
		return fmt.Errorf("failed to create business handler: %w", err)
	}
	Mount(v1, r, h)
	return nil
}

// Mount registers the routes of h.
func Mount(v1 fiber.Router, r *apirouter.Router, h *businesshdl.BusinessHandler) {
	admin := []string{staffmodels.RoleAdmin}
	cfg := apirouter.ReadWriteConfig
	cfg.Delete = false
	r.RegisterResourceRoutes(v1, prefix, h, cfg,
		apirouter.Route{Method: fiber.MethodGet, Path: "/export", Handler: h.HandleExport},
		apirouter.Route{Method: fiber.MethodGet, Path: "/analytics", Handler: h.HandleAnalytics},
		apirouter.Route{Method: fiber.MethodGet, Path: "/status-counts", Handler: h.HandleStatusCounts},
		apirouter.Route{Method: fiber.MethodPut, Path: "/:id/visit-result", Handler: h.HandleVisitResult},
		apirouter.Route{Method: fiber.MethodDelete, Path: "/:id", Roles: admin, Handler: h.DeleteByKey},
	)
}
