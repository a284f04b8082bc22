package basehdl

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"

	"github.com/therebootai/rebootcrmbackend-sub000/internal/common"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/logger"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/sequence"
)

// JSONResponse writes data as JSON with an explicit utf-8 charset.
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// SafeHandler runs handler and turns a panic into a SYS_001 response.
func SafeHandler(c fiber.Ctx, handler func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithRequest(c).WithField("panic", r).WithField("stack", string(debug.Stack())).Error("Handler panicked")
			HandleResponse(c, nil, common.NewError(
				common.ErrCodeInternalServer,
				fmt.Sprintf("Unexpected server error: %v", r),
				common.StatusInternalServerError,
				nil,
			))
			err = nil
		}
	}()
	return handler()
}

// HandleResponse writes the standard envelope: {code, message, data, status} on success and
// {code, message, details, status:"error"} on failure.
func HandleResponse(c fiber.Ctx, data interface{}, err error) {
	respond(c, common.StatusOK, common.MsgSuccess, data, err)
}

// HandleCreated is HandleResponse with 201 on success. When every identifier allocation
// collided with a concurrent insert the 409 carries Retry-After so the client can resubmit.
func HandleCreated(c fiber.Ctx, data interface{}, err error) {
	if sequence.IsExhausted(err) {
		c.Set(fiber.HeaderRetryAfter, "1")
		logger.WithRequest(c).Warn("Identifier allocation exhausted")
	}
	respond(c, common.StatusCreated, common.MsgCreated, data, err)
}

func respond(c fiber.Ctx, status int, message string, data interface{}, err error) {
	if err != nil {
		var customErr *common.Error
		if errors.As(err, &customErr) {
			if customErr.StatusCode >= common.StatusInternalServerError {
				logger.WithRequest(c).WithError(err).Error("Request failed")
			}
			_ = JSONResponse(c, customErr.StatusCode, fiber.Map{
				"code":    customErr.Code.Code,
				"message": customErr.Message,
				"details": customErr.Details,
				"status":  "error",
			})
			return
		}
		logger.WithRequest(c).WithError(err).Error("Request failed with an unclassified error")
		_ = JSONResponse(c, common.StatusInternalServerError, fiber.Map{
			"code":    common.ErrCodeInternalServer.Code,
			"message": common.MsgInternalError,
			"status":  "error",
		})
		return
	}

	_ = JSONResponse(c, status, fiber.Map{
		"code":    status,
		"message": message,
		"data":    data,
		"status":  "success",
	})
}
