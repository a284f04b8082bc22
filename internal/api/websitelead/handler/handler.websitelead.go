// Package websiteleadhdl serves the website enquiry endpoints.
package websiteleadhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"

	basehdl "github.com/therebootai/rebootcrmbackend-sub000/internal/api/base/handler"
	websiteleaddto "github.com/therebootai/rebootcrmbackend-sub000/internal/api/websitelead/dto"
	models "github.com/therebootai/rebootcrmbackend-sub000/internal/api/websitelead/models"
	websiteleadsvc "github.com/therebootai/rebootcrmbackend-sub000/internal/api/websitelead/service"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/logger"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/utility"
)

// WebsiteLeadHandler handles website enquiries.
type WebsiteLeadHandler struct {
	*basehdl.BaseHandler[models.WebsiteLead]
	leadService *websiteleadsvc.WebsiteLeadService
}

// NewWebsiteLeadHandler creates the handler.
func NewWebsiteLeadHandler() (*WebsiteLeadHandler, error) {
	leadService, err := websiteleadsvc.NewWebsiteLeadService()
	if err != nil {
		return nil, fmt.Errorf("failed to create website lead service: %v", err)
	}
	return &WebsiteLeadHandler{
		BaseHandler: basehdl.NewBaseHandler[models.WebsiteLead](leadService, "website_lead", websiteleadsvc.KeyField,
			"name", "mobileNumber", "email", "service"),
		leadService: leadService,
	}, nil
}

// FindWithPagination lists leads, optionally of one ?status.
func (h *WebsiteLeadHandler) FindWithPagination(c fiber.Ctx) error {
	var extra bson.M
	if status := c.Query("status"); utility.Contains(models.Statuses, status) {
		extra = bson.M{"status": status}
	}
	return h.FindWithPaginationWhere(c, extra)
}

// HandleCreate handles the public enquiry form.
func (h *WebsiteLeadHandler) HandleCreate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input websiteleaddto.WebsiteLeadCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		lead, err := h.leadService.Create(c.Context(), &input)
		if err == nil {
			logger.WithRequest(c).WithField("website_lead", lead.WebsiteLeadID).Info("website lead received")
		}
		basehdl.HandleCreated(c, lead, err)
		return nil
	})
}

// HandleUpdate handles PUT /website-leads/:id.
func (h *WebsiteLeadHandler) HandleUpdate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input websiteleaddto.WebsiteLeadUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		lead, err := h.leadService.Update(c.Context(), c.Params("id"), &input)
		if err == nil {
			logger.LogCRUD("update", h.Resource, lead.WebsiteLeadID, c, map[string]interface{}{"status": lead.Status})
		}
		basehdl.HandleResponse(c, lead, err)
		return nil
	})
}
