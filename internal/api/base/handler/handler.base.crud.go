// Package basehdl holds the generic handler every domain handler embeds: request parsing,
// the response envelope and the read/delete endpoints all collections share.
package basehdl

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "github.com/therebootai/rebootcrmbackend-sub000/internal/api/base/service"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/common"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/logger"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/utility"
)

// BaseHandler serves the endpoints shared by every collection of T.
type BaseHandler[T any] struct {
	Service basesvc.BaseServiceMongo[T]
	// KeyField is the human-readable identifier accepted in place of the ObjectID.
	KeyField string
	// SearchFields are matched by the ?search= parameter.
	SearchFields []string
	// DefaultSort applies to listings, createdAt descending when nil.
	DefaultSort bson.D
	Resource    string
}

// NewBaseHandler creates a BaseHandler.
func NewBaseHandler[T any](service basesvc.BaseServiceMongo[T], resource, keyField string, searchFields ...string) *BaseHandler[T] {
	return &BaseHandler[T]{
		Service:      service,
		KeyField:     keyField,
		SearchFields: searchFields,
		Resource:     resource,
	}
}

// ====================================
// REQUEST PARSING
// ====================================

// ParseRequestBody decodes a JSON, urlencoded or multipart body into input and validates it.
func (h *BaseHandler[T]) ParseRequestBody(c fiber.Ctx, input interface{}) error {
	return ParseRequestBody(c, input)
}

// ParseRequestBody decodes a JSON, urlencoded or multipart body into input and validates it.
func ParseRequestBody(c fiber.Ctx, input interface{}) error {
	contentType := strings.ToLower(string(c.Request().Header.ContentType()))
	if strings.HasPrefix(contentType, fiber.MIMEMultipartForm) || strings.HasPrefix(contentType, fiber.MIMEApplicationForm) {
		if err := c.Bind().Body(input); err != nil {
			return common.NewError(common.ErrCodeValidationFormat, common.MsgInvalidFormat, common.StatusBadRequest, err.Error())
		}
	} else {
		decoder := json.NewDecoder(bytes.NewReader(c.Body()))
		if err := decoder.Decode(input); err != nil {
			return common.NewError(common.ErrCodeValidationFormat, common.MsgInvalidFormat, common.StatusBadRequest, err.Error())
		}
	}
	return utility.ValidateStruct(input)
}

// ParsePagination reads ?page and ?limit, falling back to 1 and defLimit.
func ParsePagination(c fiber.Ctx, defLimit int) (int64, int64) {
	page := utility.PositiveInt(c.Query("page"), 1)
	limit := utility.PositiveInt(c.Query("limit"), defLimit)
	return int64(page), int64(limit)
}

// SearchFilter matches search case-insensitively as a substring of any of fields.
func SearchFilter(search string, fields ...string) bson.M {
	search = strings.TrimSpace(search)
	if search == "" || len(fields) == 0 {
		return bson.M{}
	}
	pattern := primitiveRegex(search)
	or := make(bson.A, 0, len(fields))
	for _, f := range fields {
		or = append(or, bson.M{f: pattern})
	}
	return bson.M{"$or": or}
}

func primitiveRegex(s string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(s), "$options": "i"}
}

// ====================================
// SHARED ENDPOINTS
// ====================================

// FindByKey handles GET /:id where id is the ObjectID or the human-readable identifier.
func (h *BaseHandler[T]) FindByKey(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		data, err := h.Service.FindByKey(c.Context(), h.KeyField, c.Params("id"))
		HandleResponse(c, data, err)
		return nil
	})
}

// FindWithPagination handles GET / with ?search, ?page and ?limit.
func (h *BaseHandler[T]) FindWithPagination(c fiber.Ctx) error {
	return h.FindWithPaginationWhere(c, nil)
}

// FindWithPaginationWhere is FindWithPagination with extra ANDed into the filter.
func (h *BaseHandler[T]) FindWithPaginationWhere(c fiber.Ctx, extra bson.M) error {
	return SafeHandler(c, func() error {
		page, limit := ParsePagination(c, int(basesvc.DefaultPageLimit))
		filter := SearchFilter(c.Query("search"), h.SearchFields...)
		for k, v := range extra {
			filter[k] = v
		}
		sort := h.DefaultSort
		if sort == nil {
			sort = bson.D{{Key: "createdAt", Value: -1}}
		}
		data, err := h.Service.FindWithPagination(c.Context(), filter, page, limit, options.Find().SetSort(sort))
		HandleResponse(c, data, err)
		return nil
	})
}

// DeleteByKey handles DELETE /:id and returns the removed document.
func (h *BaseHandler[T]) DeleteByKey(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		key := c.Params("id")
		data, err := h.Service.DeleteOne(c.Context(), basesvc.KeyFilter(h.KeyField, key))
		if err == nil {
			logger.LogCRUD("delete", h.Resource, key, c, nil)
		}
		HandleResponse(c, data, err)
		return nil
	})
}
