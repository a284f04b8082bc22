package logger

import (
	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// RequestID returns the id assigned by the requestid middleware, falling back to the
// X-Request-ID request and response headers.
//
// Returns:
//   - string: empty when the request carries no id at all
func RequestID(c fiber.Ctx) string {
	if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
		return rid
	}
	if rid := c.Get("X-Request-ID"); rid != "" {
		return rid
	}
	return c.GetRespHeader("X-Request-ID")
}

// WithRequest returns an app logger entry describing the request being served.
//
// Fields:
//   - method, path, ip
//   - request_id: when the request has one (see RequestID)
//
// Example:
//
//	logger.WithRequest(c).WithField("role", role).Warn("Role not allowed")
func WithRequest(c fiber.Ctx) *logrus.Entry {
	entry := GetAppLogger().WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
		"ip":     c.IP(),
	})
	if rid := RequestID(c); rid != "" {
		entry = entry.WithField("request_id", rid)
	}
	return entry
}

// WithModule returns an app logger entry tagged with module.
func WithModule(module string) *logrus.Entry {
	return GetAppLogger().WithField("module", module)
}

// WithCollection returns an app logger entry tagged with a MongoDB collection. The
// repository layer logs its driver failures through it.
//
// Example:
//
//	logger.WithCollection("businesses").WithError(err).Error("Database operation failed")
func WithCollection(collection string) *logrus.Entry {
	return GetAppLogger().WithField("collection", collection)
}
