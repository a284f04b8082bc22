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
	"github.com/therebootai/rebootcrmbackend-sub000/internal/utility"
)

// WhatsAppHandler handles /whatsapp-templates.
type WhatsAppHandler struct {
	*basehdl.BaseHandler[models.WhatsAppTemplate]
	whatsAppService *contentsvc.WhatsAppService
}

// NewWhatsAppHandler creates the handler.
func NewWhatsAppHandler() (*WhatsAppHandler, error) {
	whatsAppService, err := contentsvc.NewWhatsAppService()
	if err != nil {
		return nil, fmt.Errorf("failed to create whatsapp service: %v", err)
	}
	return &WhatsAppHandler{
		BaseHandler:     basehdl.NewBaseHandler[models.WhatsAppTemplate](whatsAppService, "whatsapp", contentsvc.WhatsAppKeyField, "title", "message"),
		whatsAppService: whatsAppService,
	}, nil
}

// FindWithPagination lists templates, optionally by ?category= and ?active=.
func (h *WhatsAppHandler) FindWithPagination(c fiber.Ctx) error {
	extra := bson.M{}
	if id := utility.String2ObjectID(c.Query("category")); !id.IsZero() {
		extra["category"] = id
	}
	if v := c.Query("active"); v == "true" || v == "false" {
		extra["active"] = v == "true"
	}
	return h.FindWithPaginationWhere(c, extra)
}

// HandleCreate handles POST /whatsapp-templates (multipart with an optional "media" file).
func (h *WhatsAppHandler) HandleCreate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input contentdto.WhatsAppTemplateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		tpl, err := h.whatsAppService.Create(c.Context(), &input, basehdl.OptionalFile(c, "media"))
		if err == nil {
			logger.LogCRUD("create", h.Resource, tpl.WhatsAppID, c, nil)
		}
		basehdl.HandleCreated(c, tpl, err)
		return nil
	})
}

// HandleUpdate handles PUT /whatsapp-templates/:id.
func (h *WhatsAppHandler) HandleUpdate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input contentdto.WhatsAppTemplateUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		tpl, err := h.whatsAppService.Update(c.Context(), c.Params("id"), &input, basehdl.OptionalFile(c, "media"))
		if err == nil {
			logger.LogCRUD("update", h.Resource, tpl.WhatsAppID, c, nil)
		}
		basehdl.HandleResponse(c, tpl, err)
		return nil
	})
}

// DeleteByKey handles DELETE /whatsapp-templates/:id.
func (h *WhatsAppHandler) DeleteByKey(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		tpl, err := h.whatsAppService.Delete(c.Context(), c.Params("id"))
		if err == nil {
			logger.LogCRUD("delete", h.Resource, tpl.WhatsAppID, c, nil)
		}
		basehdl.HandleResponse(c, tpl, err)
		return nil
	})
}
