// Package candidatehdl serves the candidate endpoints.
package candidatehdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"

	basehdl "github.com/therebootai/rebootcrmbackend-sub000/internal/api/base/handler"
	candidatedto "github.com/therebootai/rebootcrmbackend-sub000/internal/api/candidate/dto"
	models "github.com/therebootai/rebootcrmbackend-sub000/internal/api/candidate/models"
	candidatesvc "github.com/therebootai/rebootcrmbackend-sub000/internal/api/candidate/service"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/logger"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/utility"
)

// CandidateHandler handles /candidates.
type CandidateHandler struct {
	*basehdl.BaseHandler[models.Candidate]
	candidateService *candidatesvc.CandidateService
}

// NewCandidateHandler creates the handler.
func NewCandidateHandler() (*CandidateHandler, error) {
	candidateService, err := candidatesvc.NewCandidateService()
	if err != nil {
		return nil, fmt.Errorf("failed to create candidate service: %v", err)
	}
	return &CandidateHandler{
		BaseHandler: basehdl.NewBaseHandler[models.Candidate](candidateService, "candidate", candidatesvc.KeyField,
			"name", "mobileNumber", "email", "position", candidatesvc.KeyField),
		candidateService: candidateService,
	}, nil
}

// FindWithPagination lists candidates, optionally of one ?status.
func (h *CandidateHandler) FindWithPagination(c fiber.Ctx) error {
	var extra bson.M
	if status := c.Query("status"); utility.Contains(models.Statuses, status) {
		extra = bson.M{"status": status}
	}
	return h.FindWithPaginationWhere(c, extra)
}

// HandleCreate handles POST /candidates (multipart with an optional "resume" file).
func (h *CandidateHandler) HandleCreate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input candidatedto.CandidateCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		candidate, err := h.candidateService.Create(c.Context(), &input, basehdl.OptionalFile(c, "resume"))
		if err == nil {
			logger.LogCRUD("create", h.Resource, candidate.CandidateID, c, nil)
		}
		basehdl.HandleCreated(c, candidate, err)
		return nil
	})
}

// HandleUpdate handles PUT /candidates/:id.
func (h *CandidateHandler) HandleUpdate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input candidatedto.CandidateUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		candidate, err := h.candidateService.Update(c.Context(), c.Params("id"), &input, basehdl.OptionalFile(c, "resume"))
		if err == nil {
			logger.LogCRUD("update", h.Resource, candidate.CandidateID, c, nil)
		}
		basehdl.HandleResponse(c, candidate, err)
		return nil
	})
}

// DeleteByKey handles DELETE /candidates/:id and removes the resume.
func (h *CandidateHandler) DeleteByKey(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		candidate, err := h.candidateService.Delete(c.Context(), c.Params("id"))
		if err == nil {
			logger.LogCRUD("delete", h.Resource, candidate.CandidateID, c, nil)
		}
		basehdl.HandleResponse(c, candidate, err)
		return nil
	})
}
