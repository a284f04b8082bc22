// Package businesshdl serves the business lead endpoints.
package businesshdl

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"

	businessdto "github.com/therebootai/rebootcrmbackend-sub000/internal/api/business/dto"
	models "github.com/therebootai/rebootcrmbackend-sub000/internal/api/business/models"
	businesssvc "github.com/therebootai/rebootcrmbackend-sub000/internal/api/business/service"
	basehdl "github.com/therebootai/rebootcrmbackend-sub000/internal/api/base/handler"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/api/middleware"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/common"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/logger"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/metrics"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/utility"
)

// BusinessHandler handles /businesses.
type BusinessHandler struct {
	*basehdl.BaseHandler[models.Business]
	businessService *businesssvc.BusinessService
}

// NewBusinessHandler creates the handler.
func NewBusinessHandler() (*BusinessHandler, error) {
	businessService, err := businesssvc.NewBusinessService()
	if err != nil {
		return nil, fmt.Errorf("failed to create business service: %v", err)
	}
	base := basehdl.NewBaseHandler[models.Business](businessService, "business", models.FieldBusinessID,
		"businessName", "contactPersonName", "mobileNumber")
	return &BusinessHandler{
		BaseHandler:     base,
		businessService: businessService,
	}, nil
}

// actor reads the signed-in account set by the auth middleware.
func actor(c fiber.Ctx) businesssvc.Actor {
	id, role, _ := middleware.CurrentUser(c)
	return businesssvc.Actor{ID: utility.String2ObjectID(id), Role: role}
}

func (h *BusinessHandler) listQuery(c fiber.Ctx) businesssvc.ListQuery {
	return businesssvc.ParseListQuery(func(key string) string { return c.Query(key) }, h.businessService.Location())
}

// FindWithPagination handles GET /businesses with the full filter set, scoped to the caller.
func (h *BusinessHandler) FindWithPagination(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		a := actor(c)
		metrics.Default().ListQuery(a.Role)
		result, err := h.businessService.List(c.Context(), h.listQuery(c), a.Scope())
		basehdl.HandleResponse(c, result, err)
		return nil
	})
}

// HandleStatusCounts handles GET /businesses/status-counts.
func (h *BusinessHandler) HandleStatusCounts(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		counts, err := h.businessService.StatusCounts(c.Context(), h.listQuery(c), actor(c).Scope())
		basehdl.HandleResponse(c, counts, err)
		return nil
	})
}

// HandleAnalytics handles GET /businesses/analytics.
func (h *BusinessHandler) HandleAnalytics(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		result, err := h.businessService.Analytics(c.Context(), h.listQuery(c), actor(c).Scope())
		basehdl.HandleResponse(c, result, err)
		return nil
	})
}

// HandleExport handles GET /businesses/export and streams an xlsx workbook.
func (h *BusinessHandler) HandleExport(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		data, err := h.businessService.Export(c.Context(), h.listQuery(c), actor(c).Scope())
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		logger.LogCRUD("export", h.Resource, "", c, map[string]interface{}{"bytes": len(data)})
		name := fmt.Sprintf("businesses-%s.xlsx", time.Now().In(h.businessService.Location()).Format("20060102-1504"))
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
		return c.Send(data)
	})
}

// FindByKey handles GET /businesses/:id with references populated.
func (h *BusinessHandler) FindByKey(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		view, err := h.businessService.FindView(c.Context(), c.Params("id"), actor(c).Scope())
		basehdl.HandleResponse(c, view, err)
		return nil
	})
}

// HandleCreate handles POST /businesses.
func (h *BusinessHandler) HandleCreate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input businessdto.BusinessCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		business, err := h.businessService.Create(c.Context(), &input, actor(c))
		if err == nil {
			logger.LogCRUD("create", h.Resource, business.BusinessID, c, nil)
		}
		basehdl.HandleCreated(c, business, err)
		return nil
	})
}

// HandleUpdate handles PUT /businesses/:id.
func (h *BusinessHandler) HandleUpdate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input businessdto.BusinessUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		business, err := h.businessService.Update(c.Context(), c.Params("id"), &input, actor(c).Scope())
		if err == nil {
			logger.LogCRUD("update", h.Resource, business.BusinessID, c, nil)
		}
		basehdl.HandleResponse(c, business, err)
		return nil
	})
}

// HandleVisitResult handles PUT /businesses/:id/visit-result.
func (h *BusinessHandler) HandleVisitResult(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input businessdto.VisitResultInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		business, err := h.businessService.UpdateVisitResult(c.Context(), c.Params("id"), &input, actor(c))
		if err == nil {
			logger.LogCRUD("visit_result", h.Resource, business.BusinessID, c, map[string]interface{}{"reason": input.Reason})
		}
		basehdl.HandleResponse(c, business, err)
		return nil
	})
}

// DeleteByKey handles DELETE /businesses/:id.
func (h *BusinessHandler) DeleteByKey(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		business, err := h.businessService.Delete(c.Context(), c.Params("id"))
		if err == nil {
			logger.LogCRUD("delete", h.Resource, business.BusinessID, c, nil)
		} else if errors.Is(err, common.ErrNotFound) {
			logger.WithRequest(c).WithField("business", c.Params("id")).Debug("delete of unknown business")
		}
		basehdl.HandleResponse(c, business, err)
		return nil
	})
}
