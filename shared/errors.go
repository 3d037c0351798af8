package shared

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// ErrorCategory represents different types of errors that can occur
type ErrorCategory string

const (
	ErrorCategoryConfiguration ErrorCategory = "configuration"
	ErrorCategoryDatabase      ErrorCategory = "database"
	ErrorCategoryValidation    ErrorCategory = "validation"
	ErrorCategoryNotFound      ErrorCategory = "not_found"
	ErrorCategorySuperseded    ErrorCategory = "superseded"
	ErrorCategoryResource      ErrorCategory = "resource"
	ErrorCategoryTimeout       ErrorCategory = "timeout"
)

// Error codes surfaced to clients
const (
	CodeEmptyInput          = "EMPTY_INPUT"
	CodeSymbolNotFound      = "SYMBOL_NOT_FOUND"
	CodeStaleRequest        = "STALE_REQUEST"
	CodeInvalidTimeframe    = "INVALID_TIMEFRAME"
	CodeStorageReadFailed   = "STORAGE_READ_FAILED"
	CodeStorageWriteFailed  = "STORAGE_WRITE_FAILED"
	CodeSnapshotUnavailable = "SNAPSHOT_UNAVAILABLE"
	CodeRequestCancelled    = "REQUEST_CANCELLED"
)

// ServiceError represents a standardized error with additional context
type ServiceError struct {
	Category    ErrorCategory `json:"category"`
	Code        string        `json:"code"`
	Message     string        `json:"message"`
	Details     interface{}   `json:"details,omitempty"`
	Timestamp   time.Time     `json:"timestamp"`
	ServiceName string        `json:"service_name"`
	Operation   string        `json:"operation"`
	Retryable   bool          `json:"retryable"`
	Cause       error         `json:"-"` // Original error, not serialized
}

// Error implements the error interface
func (e *ServiceError) Error() string {
	return fmt.Sprintf("[%s:%s] %s", e.Category, e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// NewServiceError creates a new service error
func NewServiceError(category ErrorCategory, code, message, serviceName, operation string, retryable bool, cause error) *ServiceError {
	return &ServiceError{
		Category:    category,
		Code:        code,
		Message:     message,
		Timestamp:   time.Now(),
		ServiceName: serviceName,
		Operation:   operation,
		Retryable:   retryable,
		Cause:       cause,
	}
}

// WithDetails adds additional details to the error
func (e *ServiceError) WithDetails(details interface{}) *ServiceError {
	e.Details = details
	return e
}

// IsRetryable returns whether the error is retryable
func (e *ServiceError) IsRetryable() bool {
	return e.Retryable
}

// LogError logs the error with structured fields
func (e *ServiceError) LogError() {
	logrus.WithFields(logrus.Fields{
		"error_category":   e.Category,
		"error_code":       e.Code,
		"error_message":    e.Message,
		"service_name":     e.ServiceName,
		"operation":        e.Operation,
		"retryable":        e.Retryable,
		"details":          e.Details,
		"underlying_error": e.Cause,
	}).Error("Service error occurred")
}

// NewEmptyInputError is returned when a search is submitted with a blank symbol
func NewEmptyInputError(serviceName, operation string) *ServiceError {
	return NewServiceError(ErrorCategoryValidation, CodeEmptyInput,
		"Please enter a stock symbol", serviceName, operation, false, nil)
}

// NewSymbolNotFoundError is returned on a quote lookup miss. The message lists
// example symbols the user can try instead.
func NewSymbolNotFoundError(symbol string, examples []string, serviceName, operation string) *ServiceError {
	return NewServiceError(ErrorCategoryNotFound, CodeSymbolNotFound,
		fmt.Sprintf("Stock symbol %q not found. Try popular stocks like %s.", symbol, JoinExamples(examples)),
		serviceName, operation, false, nil).WithDetails(map[string]interface{}{
		"symbol":   symbol,
		"examples": examples,
	})
}

// JoinExamples renders a list as "A, B, or C"
func JoinExamples(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " or " + items[1]
	}
	return strings.Join(items[:len(items)-1], ", ") + ", or " + items[len(items)-1]
}

// WrapError wraps an existing error with service error context
func WrapError(err error, category ErrorCategory, code, serviceName, operation string, retryable bool) *ServiceError {
	if err == nil {
		return nil
	}

	// If it's already a ServiceError, just update the context
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		serviceErr.ServiceName = serviceName
		serviceErr.Operation = operation
		return serviceErr
	}

	return NewServiceError(category, code, err.Error(), serviceName, operation, retryable, err)
}

// IsErrorCode reports whether err is a ServiceError carrying the given code
func IsErrorCode(err error, code string) bool {
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr.Code == code
	}
	return false
}

// HTTPStatusFor maps an error to the HTTP status used at the API boundary
func HTTPStatusFor(err error) int {
	var serviceErr *ServiceError
	if !errors.As(err, &serviceErr) {
		return fiber.StatusInternalServerError
	}

	switch serviceErr.Category {
	case ErrorCategoryValidation:
		return fiber.StatusBadRequest
	case ErrorCategoryNotFound:
		return fiber.StatusNotFound
	case ErrorCategorySuperseded:
		return fiber.StatusConflict
	case ErrorCategoryResource:
		return fiber.StatusServiceUnavailable
	case ErrorCategoryTimeout:
		return fiber.StatusRequestTimeout
	default:
		return fiber.StatusInternalServerError
	}
}
