package logger

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// LogAction writes one audit record for the request.
//
// Parameters:
//   - action: short verb phrase, e.g. "business.export"
//   - c: the request; ip, user agent, user id and role are read from it
//   - details: extra fields, may be nil; request_id is added when known
func LogAction(action string, c fiber.Ctx, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}
	if rid := RequestID(c); rid != "" {
		details["request_id"] = rid
	}

	fields := logrus.Fields{
		"action":     action,
		"ip":         c.IP(),
		"user_agent": c.Get("User-Agent"),
		"details":    details,
		"timestamp":  time.Now(),
	}
	if uid, ok := c.Locals("user_id").(string); ok {
		fields["user_id"] = uid
	}
	if role, ok := c.Locals("role").(string); ok {
		fields["role"] = role
	}

	GetAuditLogger().WithFields(fields).Info("Audit log")
}

// LogCRUD audits a write on resourceType/resourceID.
//
// Example:
//
//	logger.LogCRUD("create", "business", b.BusinessID, c, nil)
//	// action "create_business", details {resource_type, resource_id, operation}
func LogCRUD(operation string, resourceType string, resourceID string, c fiber.Ctx, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}
	details["operation"] = operation
	details["resource_type"] = resourceType
	details["resource_id"] = resourceID

	LogAction("crud_"+operation, c, details)
}

// LogAuth audits a login or token event.
func LogAuth(action string, c fiber.Ctx, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}
	details["auth_action"] = action

	LogAction("auth_"+action, c, details)
}
