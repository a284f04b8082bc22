// Package router registers the lookup collection routes.
package router

import (
	"github.com/gofiber/fiber/v3"

	referencehdl "github.com/therebootai/rebootcrmbackend-sub000/internal/api/reference/handler"
	referencesvc "github.com/therebootai/rebootcrmbackend-sub000/internal/api/reference/service"
	apirouter "github.com/therebootai/rebootcrmbackend-sub000/internal/api/router"
	staffmodels "github.com/therebootai/rebootcrmbackend-sub000/internal/api/staff/models"
)

type dropdownHandler interface {
	apirouter.ResourceHandler
	HandleDropdown(c fiber.Ctx) error
}

func mount(v1 fiber.Router, r *apirouter.Router, prefix string, h dropdownHandler) {
	admin := []string{staffmodels.RoleAdmin}
	r.RegisterResourceRoutes(v1, prefix, h, apirouter.ReadWriteConfig.WithRoles(nil, admin),
		apirouter.Route{Method: fiber.MethodGet, Path: "/dropdown", Handler: h.HandleDropdown},
	)
}

// Register mounts /cities, /categories and /sources. Every signed-in account reads them;
// admins maintain them.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	cities, err := referencehdl.NewReferenceHandler(referencesvc.Cities)
	if err != nil {
		return err
	}
	categories, err := referencehdl.NewReferenceHandler(referencesvc.Categories)
	if err != nil {
		return err
	}
	sources, err := referencehdl.NewReferenceHandler(referencesvc.Sources)
	if err != nil {
		return err
	}
	mount(v1, r, "/cities", cities)
	mount(v1, r, "/categories", categories)
	mount(v1, r, "/sources", sources)
	return nil
}
