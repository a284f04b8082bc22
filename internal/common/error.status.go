// Package common holds the error model shared by every layer: hierarchical error codes,
// the Error type carried up to the HTTP envelope, and the MongoDB error translation.
package common

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// HTTP status codes used by the API envelope
const (
	StatusOK        = 200
	StatusCreated   = 201
	StatusNoContent = 204

	StatusBadRequest      = 400
	StatusUnauthorized    = 401
	StatusForbidden       = 403
	StatusNotFound        = 404
	StatusConflict        = 409
	StatusTooManyRequests = 429

	StatusInternalServerError = 500
	StatusBadGateway          = 502
	StatusServiceUnavailable  = 503
)

// Response messages
const (
	MsgSuccess       = "Operation successful"
	MsgCreated       = "Created successfully"
	MsgDeleted       = "Deleted successfully"
	MsgUnauthorized  = "Please log in"
	MsgForbidden     = "You do not have access to this resource"
	MsgNotFound      = "Resource not found"
	MsgInternalError = "Internal server error"
	MsgInvalidFormat = "Invalid data format"
	MsgInvalidInput  = "Invalid input data"
)

// ErrorCode identifies an error by a hierarchical code (e.g. AUTH_001).
type ErrorCode struct {
	Code        string
	Category    string
	SubCategory string
	Description string
}

var (
	// System (SYS_xxx)
	ErrCodeInternalServer = ErrorCode{Code: "SYS_001", Category: "System", SubCategory: "Internal", Description: "Internal system error"}

	// Authentication (AUTH_xxx)
	ErrCodeAuth            = ErrorCode{Code: "AUTH", Category: "Authentication", SubCategory: "General", Description: "Authentication error"}
	ErrCodeAuthToken       = ErrorCode{Code: "AUTH_001", Category: "Authentication", SubCategory: "Token", Description: "Token error"}
	ErrCodeAuthCredentials = ErrorCode{Code: "AUTH_002", Category: "Authentication", SubCategory: "Credentials", Description: "Login credentials error"}
	ErrCodeAuthRole        = ErrorCode{Code: "AUTH_003", Category: "Authentication", SubCategory: "Role", Description: "Role does not grant access"}

	// Validation (VAL_xxx)
	ErrCodeValidationInput  = ErrorCode{Code: "VAL_001", Category: "Validation", SubCategory: "Input", Description: "Invalid input"}
	ErrCodeValidationFormat = ErrorCode{Code: "VAL_002", Category: "Validation", SubCategory: "Format", Description: "Invalid data format"}

	// Database (DB_xxx)
	ErrCodeDatabase           = ErrorCode{Code: "DB", Category: "Database", SubCategory: "General", Description: "Database error"}
	ErrCodeDatabaseConnection = ErrorCode{Code: "DB_001", Category: "Database", SubCategory: "Connection", Description: "Database connection error"}
	ErrCodeDatabaseQuery      = ErrorCode{Code: "DB_002", Category: "Database", SubCategory: "Query", Description: "Query error"}
	ErrCodeDatabaseDuplicate  = ErrorCode{Code: "DB_003", Category: "Database", SubCategory: "Duplicate", Description: "Unique constraint violated"}

	// Business logic (BIZ_xxx)
	ErrCodeBusinessState     = ErrorCode{Code: "BIZ_001", Category: "Business", SubCategory: "State", Description: "Invalid business state"}
	ErrCodeBusinessOperation = ErrorCode{Code: "BIZ_002", Category: "Business", SubCategory: "Operation", Description: "Invalid business operation"}
	ErrCodeSequence          = ErrorCode{Code: "BIZ_003", Category: "Business", SubCategory: "Sequence", Description: "Identifier allocation failed"}
	ErrCodeUpstream          = ErrorCode{Code: "BIZ_004", Category: "Business", SubCategory: "Upstream", Description: "External service failed"}
)

// Error is the error type surfaced to API clients.
type Error struct {
	Code       ErrorCode
	Message    string
	StatusCode int
	Details    any
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches on code and message so that sentinel values survive wrapping.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code.Code == t.Code.Code && e.Message == t.Message
}

// NewError builds an *Error.
func NewError(code ErrorCode, message string, statusCode int, details any) error {
	return &Error{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

var (
	// Authentication
	ErrInvalidCredentials = NewError(ErrCodeAuthCredentials, "Invalid login credentials", StatusUnauthorized, nil)
	ErrTokenExpired       = NewError(ErrCodeAuthToken, "Session has expired", StatusUnauthorized, nil)
	ErrTokenInvalid       = NewError(ErrCodeAuthToken, "Invalid token", StatusUnauthorized, nil)
	ErrTokenMissing       = NewError(ErrCodeAuthToken, "Missing authentication token", StatusUnauthorized, nil)
	ErrForbiddenRole      = NewError(ErrCodeAuthRole, MsgForbidden, StatusForbidden, nil)
	ErrAccountInactive    = NewError(ErrCodeAuthCredentials, "Account is deactivated", StatusForbidden, nil)

	// Validation
	ErrInvalidInput  = NewError(ErrCodeValidationInput, "Invalid input data", StatusBadRequest, nil)
	ErrInvalidFormat = NewError(ErrCodeValidationFormat, MsgInvalidFormat, StatusBadRequest, nil)
	ErrRequiredField = NewError(ErrCodeValidationInput, "Missing required field", StatusBadRequest, nil)
	ErrInvalidID     = NewError(ErrCodeValidationFormat, "Invalid identifier", StatusBadRequest, nil)

	// Database
	ErrNotFound   = NewError(ErrCodeDatabaseQuery, "Data not found", StatusNotFound, nil)
	ErrDuplicate  = NewError(ErrCodeDatabaseDuplicate, "Duplicate key error", StatusConflict, nil)
	ErrConnection = NewError(ErrCodeDatabaseConnection, "Database connection error", StatusServiceUnavailable, nil)
	ErrTimeout    = NewError(ErrCodeDatabaseConnection, "Database operation timed out", StatusServiceUnavailable, nil)
	ErrQuery      = NewError(ErrCodeDatabaseQuery, "Database query error", StatusInternalServerError, nil)

	// Business
	ErrInvalidState     = NewError(ErrCodeBusinessState, "Invalid state", StatusBadRequest, nil)
	ErrInvalidOperation = NewError(ErrCodeBusinessOperation, "Invalid operation", StatusBadRequest, nil)
)

// NewDuplicateError reports a unique-index violation on field. An empty field yields the
// generic duplicate message.
func NewDuplicateError(field string) error {
	if field == "" {
		return NewError(ErrCodeDatabaseDuplicate, "Duplicate key error", StatusConflict, nil)
	}
	return NewError(ErrCodeDatabaseDuplicate, fmt.Sprintf("%s already exists", field), StatusConflict, map[string]any{
		"field": field,
	})
}

// ConvertMongoError translates driver errors into *Error values.
func ConvertMongoError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}

	if mongo.IsDuplicateKeyError(err) {
		field, _ := DuplicateKeyField(err)
		return NewDuplicateError(field)
	}
	if mongo.IsTimeout(err) {
		return ErrTimeout
	}
	if mongo.IsNetworkError(err) {
		return ErrConnection
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return NewError(ErrCodeDatabaseQuery, "Database query error", StatusInternalServerError, cmdErr.Name)
	}

	return NewError(ErrCodeDatabase, "Database error", StatusInternalServerError, err.Error())
}
