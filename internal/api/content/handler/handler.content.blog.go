// Package contenthdl serves the website content endpoints, both the CRM side and the
// public read side used by the website.
package contenthdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"

	basehdl "github.com/therebootai/rebootcrmbackend-sub000/internal/api/base/handler"
	contentdto "github.com/therebootai/rebootcrmbackend-sub000/internal/api/content/dto"
	models "github.com/therebootai/rebootcrmbackend-sub000/internal/api/content/models"
	contentsvc "github.com/therebootai/rebootcrmbackend-sub000/internal/api/content/service"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/api/middleware"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/logger"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/utility"
)

// BlogHandler handles /blogs.
type BlogHandler struct {
	*basehdl.BaseHandler[models.Blog]
	blogService *contentsvc.BlogService
}

// NewBlogHandler creates the handler.
func NewBlogHandler() (*BlogHandler, error) {
	blogService, err := contentsvc.NewBlogService()
	if err != nil {
		return nil, fmt.Errorf("failed to create blog service: %v", err)
	}
	return &BlogHandler{
		BaseHandler: basehdl.NewBaseHandler[models.Blog](blogService, "blog", contentsvc.BlogKeyField, "title", "slug", "tags"),
		blogService: blogService,
	}, nil
}

// HandleCreate handles POST /blogs (multipart with an optional "image").
func (h *BlogHandler) HandleCreate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input contentdto.BlogCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		id, _, _ := middleware.CurrentUser(c)
		blog, err := h.blogService.Create(c.Context(), &input, basehdl.OptionalFile(c, "image"), utility.String2ObjectID(id))
		if err == nil {
			logger.LogCRUD("create", h.Resource, blog.BlogID, c, nil)
		}
		basehdl.HandleCreated(c, blog, err)
		return nil
	})
}

// HandleUpdate handles PUT /blogs/:id.
func (h *BlogHandler) HandleUpdate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input contentdto.BlogUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		blog, err := h.blogService.Update(c.Context(), c.Params("id"), &input, basehdl.OptionalFile(c, "image"))
		if err == nil {
			logger.LogCRUD("update", h.Resource, blog.BlogID, c, nil)
		}
		basehdl.HandleResponse(c, blog, err)
		return nil
	})
}

// DeleteByKey handles DELETE /blogs/:id.
func (h *BlogHandler) DeleteByKey(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		blog, err := h.blogService.Delete(c.Context(), c.Params("id"))
		if err == nil {
			logger.LogCRUD("delete", h.Resource, blog.BlogID, c, nil)
		}
		basehdl.HandleResponse(c, blog, err)
		return nil
	})
}

// HandlePublicList handles GET /public/blogs: published blogs, newest first.
func (h *BlogHandler) HandlePublicList(c fiber.Ctx) error {
	extra := contentsvc.PublishedFilter()
	if tag := c.Query("tag"); tag != "" {
		extra["tags"] = tag
	}
	return h.FindWithPaginationWhere(c, extra)
}

// HandlePublicGet handles GET /public/blogs/:slug.
func (h *BlogHandler) HandlePublicGet(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		blog, err := h.blogService.FindPublished(c.Context(), c.Params("slug"))
		basehdl.HandleResponse(c, blog, err)
		return nil
	})
}

// FindWithPagination lists blogs, optionally ?published=true|false.
func (h *BlogHandler) FindWithPagination(c fiber.Ctx) error {
	var extra bson.M
	if v := c.Query("published"); v == "true" || v == "false" {
		extra = bson.M{"published": v == "true"}
	}
	return h.FindWithPaginationWhere(c, extra)
}
