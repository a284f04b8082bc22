// Package referencehdl serves the city, category and lead source endpoints.
package referencehdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"

	basehdl "github.com/therebootai/rebootcrmbackend-sub000/internal/api/base/handler"
	referencedto "github.com/therebootai/rebootcrmbackend-sub000/internal/api/reference/dto"
	referencesvc "github.com/therebootai/rebootcrmbackend-sub000/internal/api/reference/service"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/logger"
)

// ReferenceHandler handles one lookup collection.
type ReferenceHandler[T any] struct {
	*basehdl.BaseHandler[T]
	referenceService *referencesvc.ReferenceService[T]
}

// NewReferenceHandler creates the handler of kind.
func NewReferenceHandler[T any](kind referencesvc.Kind[T]) (*ReferenceHandler[T], error) {
	svc, err := referencesvc.NewReferenceService(kind)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s service: %v", kind.Resource, err)
	}
	base := basehdl.NewBaseHandler[T](svc, kind.Resource, kind.KeyField, "name", kind.KeyField)
	base.DefaultSort = bson.D{{Key: "name", Value: 1}}
	return &ReferenceHandler[T]{
		BaseHandler:      base,
		referenceService: svc,
	}, nil
}

// FindWithPagination lists entries, optionally only ?active=true|false ones.
func (h *ReferenceHandler[T]) FindWithPagination(c fiber.Ctx) error {
	var extra bson.M
	if v := c.Query("active"); v == "true" || v == "false" {
		extra = bson.M{"active": v == "true"}
	}
	return h.FindWithPaginationWhere(c, extra)
}

// HandleDropdown handles GET /dropdown.
func (h *ReferenceHandler[T]) HandleDropdown(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		options, err := h.referenceService.Dropdown(c.Context())
		basehdl.HandleResponse(c, options, err)
		return nil
	})
}

// HandleCreate handles POST /.
func (h *ReferenceHandler[T]) HandleCreate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input referencedto.ReferenceCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		data, err := h.referenceService.Create(c.Context(), &input)
		if err == nil {
			logger.LogCRUD("create", h.Resource, input.Name, c, nil)
		}
		basehdl.HandleCreated(c, data, err)
		return nil
	})
}

// HandleUpdate handles PUT /:id.
func (h *ReferenceHandler[T]) HandleUpdate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input referencedto.ReferenceUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		data, err := h.referenceService.Update(c.Context(), c.Params("id"), &input)
		if err == nil {
			logger.LogCRUD("update", h.Resource, c.Params("id"), c, nil)
		}
		basehdl.HandleResponse(c, data, err)
		return nil
	})
}

// DeleteByKey handles DELETE /:id, refusing entries still in use.
func (h *ReferenceHandler[T]) DeleteByKey(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		data, err := h.referenceService.Delete(c.Context(), c.Params("id"))
		if err == nil {
			logger.LogCRUD("delete", h.Resource, c.Params("id"), c, nil)
		}
		basehdl.HandleResponse(c, data, err)
		return nil
	})
}
