// Package router registers the website content routes.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	contenthdl "github.com/therebootai/rebootcrmbackend-sub000/internal/api/content/handler"
	contentsvc "github.com/therebootai/rebootcrmbackend-sub000/internal/api/content/service"
	apirouter "github.com/therebootai/rebootcrmbackend-sub000/internal/api/router"
	staffmodels "github.com/therebootai/rebootcrmbackend-sub000/internal/api/staff/models"
)

// Register mounts blogs, job posts, applications and WhatsApp templates. The website reads
// published content and submits applications under /public.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	blogs, err := contenthdl.NewBlogHandler()
	if err != nil {
		return fmt.Errorf("failed to create blog handler: %w", err)
	}
	jobs, err := contenthdl.NewJobPostHandler()
	if err != nil {
		return fmt.Errorf("failed to create job post handler: %w", err)
	}
	posts, err := contentsvc.NewJobPostService()
	if err != nil {
		return fmt.Errorf("failed to create job post service: %w", err)
	}
	applications, err := contenthdl.NewApplicationHandler(posts)
	if err != nil {
		return fmt.Errorf("failed to create application handler: %w", err)
	}
	templates, err := contenthdl.NewWhatsAppHandler()
	if err != nil {
		return fmt.Errorf("failed to create whatsapp handler: %w", err)
	}

	public := v1.Group("/public")
	public.Get("/blogs", blogs.HandlePublicList)
	public.Get("/blogs/:slug", blogs.HandlePublicGet)
	public.Get("/jobposts", jobs.HandlePublicList)
	public.Get("/jobposts/:id", jobs.HandlePublicGet)
	public.Post("/applications", applications.HandleCreate)

	admin := []string{staffmodels.RoleAdmin}
	marketing := []string{staffmodels.RoleAdmin, staffmodels.RoleDigitalMarketer}

	r.RegisterResourceRoutes(v1, "/blogs", blogs, apirouter.ReadWriteConfig.WithRoles(marketing, marketing))
	r.RegisterResourceRoutes(v1, "/jobposts", jobs, apirouter.ReadWriteConfig.WithRoles(admin, admin))

	appCfg := apirouter.ReadWriteConfig
	appCfg.Create = false
	r.RegisterResourceRoutes(v1, "/applications", applications, appCfg.WithRoles(admin, admin))

	readers := []string{staffmodels.RoleAdmin, staffmodels.RoleTelecaller, staffmodels.RoleDigitalMarketer}
	r.RegisterResourceRoutes(v1, "/whatsapp-templates", templates, apirouter.ReadWriteConfig.WithRoles(readers, marketing))
	return nil
}
