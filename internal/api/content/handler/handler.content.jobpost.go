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

// JobPostHandler handles /jobposts.
type JobPostHandler struct {
	*basehdl.BaseHandler[models.JobPost]
	jobPostService *contentsvc.JobPostService
}

// NewJobPostHandler creates the handler.
func NewJobPostHandler() (*JobPostHandler, error) {
	jobPostService, err := contentsvc.NewJobPostService()
	if err != nil {
		return nil, fmt.Errorf("failed to create job post service: %v", err)
	}
	return &JobPostHandler{
		BaseHandler:    basehdl.NewBaseHandler[models.JobPost](jobPostService, "jobpost", contentsvc.JobPostKeyField, "title", "location", "skills"),
		jobPostService: jobPostService,
	}, nil
}

// HandleCreate handles POST /jobposts.
func (h *JobPostHandler) HandleCreate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input contentdto.JobPostInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		post, err := h.jobPostService.Create(c.Context(), &input)
		if err == nil {
			logger.LogCRUD("create", h.Resource, post.JobPostID, c, nil)
		}
		basehdl.HandleCreated(c, post, err)
		return nil
	})
}

// HandleUpdate handles PUT /jobposts/:id.
func (h *JobPostHandler) HandleUpdate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input contentdto.JobPostUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		post, err := h.jobPostService.Update(c.Context(), c.Params("id"), &input)
		if err == nil {
			logger.LogCRUD("update", h.Resource, post.JobPostID, c, nil)
		}
		basehdl.HandleResponse(c, post, err)
		return nil
	})
}

// HandlePublicList handles GET /public/jobposts: open positions only.
func (h *JobPostHandler) HandlePublicList(c fiber.Ctx) error {
	return h.FindWithPaginationWhere(c, bson.M{"active": true})
}

// HandlePublicGet handles GET /public/jobposts/:id.
func (h *JobPostHandler) HandlePublicGet(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		post, err := h.jobPostService.FindActive(c.Context(), c.Params("id"))
		basehdl.HandleResponse(c, post, err)
		return nil
	})
}
