// Package staffhdl serves the staff account endpoints, one handler per role.
package staffhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"

	basehdl "github.com/therebootai/rebootcrmbackend-sub000/internal/api/base/handler"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/api/middleware"
	staffdto "github.com/therebootai/rebootcrmbackend-sub000/internal/api/staff/dto"
	models "github.com/therebootai/rebootcrmbackend-sub000/internal/api/staff/models"
	staffsvc "github.com/therebootai/rebootcrmbackend-sub000/internal/api/staff/service"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/common"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/logger"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/sequence"
)

// UserHandler handles the accounts of one role.
type UserHandler struct {
	*basehdl.BaseHandler[models.User]
	Role        string
	userService *staffsvc.UserService
	// Invalidate drops cached authentication state of an account after a write.
	Invalidate func(id string)
}

// NewUserHandler creates the handler for role.
func NewUserHandler(role string) (*UserHandler, error) {
	if !models.IsRole(role) {
		return nil, fmt.Errorf("unknown role %q", role)
	}
	userService, err := staffsvc.NewUserService()
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %v", err)
	}
	base := basehdl.NewBaseHandler[models.User](userService, role, sequence.UserCodeField, "name", "email", "mobileNumber", sequence.UserCodeField)
	return &UserHandler{
		BaseHandler: base,
		Role:        role,
		userService: userService,
		Invalidate: func(id string) {
			middleware.GetAuthManager().InvalidateUser(id)
		},
	}, nil
}

func (h *UserHandler) respondWrite(c fiber.Ctx, op string, user models.User, err error) {
	if err == nil {
		if h.Invalidate != nil {
			h.Invalidate(user.ID.Hex())
		}
		logger.LogCRUD(op, h.Resource, user.UserCode, c, nil)
	}
	basehdl.HandleResponse(c, user, err)
}

// FindWithPagination lists the accounts of the role.
func (h *UserHandler) FindWithPagination(c fiber.Ctx) error {
	extra := bson.M{"role": h.Role}
	if v := c.Query("active"); v == "true" || v == "false" {
		extra["active"] = v == "true"
	}
	return h.FindWithPaginationWhere(c, extra)
}

// FindByKey handles GET /:id within the role.
func (h *UserHandler) FindByKey(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		user, err := h.userService.FindOne(c.Context(), staffsvc.RoleFilter(h.Role, c.Params("id")), nil)
		basehdl.HandleResponse(c, user, err)
		return nil
	})
}

// HandleCreate handles POST / and allocates the account's user code.
func (h *UserHandler) HandleCreate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input staffdto.UserCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		user, err := h.userService.Create(c.Context(), h.Role, &input)
		if err == nil {
			logger.LogCRUD("create", h.Resource, user.UserCode, c, nil)
		}
		basehdl.HandleCreated(c, user, err)
		return nil
	})
}

// HandleUpdate handles PUT /:id.
func (h *UserHandler) HandleUpdate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input staffdto.UserUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		user, err := h.userService.Update(c.Context(), h.Role, c.Params("id"), &input)
		h.respondWrite(c, "update", user, err)
		return nil
	})
}

// HandleSetStatus handles PUT /:id/status.
func (h *UserHandler) HandleSetStatus(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input staffdto.StatusInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		if id, _, _ := middleware.CurrentUser(c); !*input.Active && id != "" {
			if self, err := h.userService.FindOne(c.Context(), staffsvc.RoleFilter(h.Role, c.Params("id")), nil); err == nil && self.ID.Hex() == id {
				basehdl.HandleResponse(c, nil, common.NewError(common.ErrCodeBusinessOperation, "Cannot deactivate your own account", common.StatusBadRequest, nil))
				return nil
			}
		}
		user, err := h.userService.SetActive(c.Context(), h.Role, c.Params("id"), *input.Active)
		h.respondWrite(c, "status", user, err)
		return nil
	})
}

// HandleAddTarget handles POST /:id/targets.
func (h *UserHandler) HandleAddTarget(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input staffdto.TargetInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		user, err := h.userService.AddTarget(c.Context(), h.Role, c.Params("id"), &input)
		h.respondWrite(c, "target", user, err)
		return nil
	})
}

// DeleteByKey handles DELETE /:id within the role.
func (h *UserHandler) DeleteByKey(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		user, err := h.userService.DeleteOne(c.Context(), staffsvc.RoleFilter(h.Role, c.Params("id")))
		h.respondWrite(c, "delete", user, err)
		return nil
	})
}
