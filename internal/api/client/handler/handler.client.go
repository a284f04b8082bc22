// Package clienthdl serves the client endpoints.
package clienthdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "github.com/therebootai/rebootcrmbackend-sub000/internal/api/base/handler"
	clientdto "github.com/therebootai/rebootcrmbackend-sub000/internal/api/client/dto"
	models "github.com/therebootai/rebootcrmbackend-sub000/internal/api/client/models"
	clientsvc "github.com/therebootai/rebootcrmbackend-sub000/internal/api/client/service"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/api/middleware"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/logger"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/utility"
)

// ClientHandler handles /clients.
type ClientHandler struct {
	*basehdl.BaseHandler[models.Client]
	clientService *clientsvc.ClientService
}

// NewClientHandler creates the handler.
func NewClientHandler() (*ClientHandler, error) {
	clientService, err := clientsvc.NewClientService()
	if err != nil {
		return nil, fmt.Errorf("failed to create client service: %v", err)
	}
	return &ClientHandler{
		BaseHandler:   basehdl.NewBaseHandler[models.Client](clientService, "client", clientsvc.KeyField, "name", "mobileNumber", "email", clientsvc.KeyField),
		clientService: clientService,
	}, nil
}

// HandleCreate handles POST /clients.
func (h *ClientHandler) HandleCreate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input clientdto.ClientCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		id, _, _ := middleware.CurrentUser(c)
		client, err := h.clientService.Create(c.Context(), &input, utility.String2ObjectID(id))
		if err == nil {
			logger.LogCRUD("create", h.Resource, client.ClientID, c, nil)
		}
		basehdl.HandleCreated(c, client, err)
		return nil
	})
}

// HandleUpdate handles PUT /clients/:id.
func (h *ClientHandler) HandleUpdate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input clientdto.ClientUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		client, err := h.clientService.Update(c.Context(), c.Params("id"), &input)
		if err == nil {
			logger.LogCRUD("update", h.Resource, client.ClientID, c, nil)
		}
		basehdl.HandleResponse(c, client, err)
		return nil
	})
}
