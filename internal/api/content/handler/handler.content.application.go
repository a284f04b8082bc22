package contenthdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"

	basehdl "github.com/therebootai/rebootcrmbackend-sub000/internal/api/base/handler"
	contentdto "github.com/therebootai/rebootcrmbackend-sub000/internal/api/content/dto"
	models "github.com/therebootai/rebootcrmbackend-sub000/internal/api/content/models"
	contentsvc "github.com/therebootai/rebootcrmbackend-sub000/internal/api/content/service"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/logger"
)

// ApplicationHandler handles /applications and the public application form.
type ApplicationHandler struct {
	*basehdl.BaseHandler[models.Application]
	applicationService *contentsvc.ApplicationService
}

// NewApplicationHandler creates the handler. Applications are accepted for posts found
// through posts.
func NewApplicationHandler(posts contentsvc.OpenPosts) (*ApplicationHandler, error) {
	applicationService, err := contentsvc.NewApplicationService(posts)
	if err != nil {
		return nil, fmt.Errorf("failed to create application service: %v", err)
	}
	return &ApplicationHandler{
		BaseHandler:        basehdl.NewBaseHandler[models.Application](applicationService, "application", contentsvc.ApplicationKeyField, "name", "mobileNumber", "email", "jobTitle"),
		applicationService: applicationService,
	}, nil
}

// FindWithPagination lists applications, optionally filtered by ?status= and ?jobTitle=.
func (h *ApplicationHandler) FindWithPagination(c fiber.Ctx) error {
	extra := bson.M{}
	if status := c.Query("status"); status != "" {
		extra["status"] = status
	}
	if post := c.Query("jobTitle"); post != "" {
		extra["jobTitle"] = post
	}
	return h.FindWithPaginationWhere(c, extra)
}

// HandleCreate handles POST /public/applications (multipart with a "resume" file).
func (h *ApplicationHandler) HandleCreate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input contentdto.ApplicationCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		app, err := h.applicationService.Create(c.Context(), &input, basehdl.OptionalFile(c, "resume"))
		if err == nil {
			logger.GetAppLogger().WithField("applicationId", app.ApplicationID).WithField("jobTitle", app.JobTitle).Info("Job application received")
		}
		basehdl.HandleCreated(c, app, err)
		return nil
	})
}

// HandleUpdate handles PUT /applications/:id (status only).
func (h *ApplicationHandler) HandleUpdate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input contentdto.ApplicationUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		app, err := h.applicationService.SetStatus(c.Context(), c.Params("id"), input.Status)
		if err == nil {
			logger.LogCRUD("update", h.Resource, app.ApplicationID, c, map[string]interface{}{"status": input.Status})
		}
		basehdl.HandleResponse(c, app, err)
		return nil
	})
}

// DeleteByKey handles DELETE /applications/:id.
func (h *ApplicationHandler) DeleteByKey(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		app, err := h.applicationService.Delete(c.Context(), c.Params("id"))
		if err == nil {
			logger.LogCRUD("delete", h.Resource, app.ApplicationID, c, nil)
		}
		basehdl.HandleResponse(c, app, err)
		return nil
	})
}
