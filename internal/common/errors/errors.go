// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"

	ErrCodeApplicationNotFound  ErrorCode = "APPLICATION_NOT_FOUND"
	ErrCodeApplicationNotUnique ErrorCode = "APPLICATION_NOT_UNIQUE"

	ErrCodeTemplateNotFound     ErrorCode = "TEMPLATE_NOT_FOUND"
	ErrCodeTemplateRenderFailed ErrorCode = "TEMPLATE_RENDER_FAILED"
	ErrCodeTemplateFetchFailed  ErrorCode = "TEMPLATE_FETCH_FAILED"

	ErrCodePDFConversionFailed ErrorCode = "PDF_CONVERSION_FAILED"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"

	ErrCodeDocumentUploadFailed      ErrorCode = "DOCUMENT_UPLOAD_FAILED"
	ErrCodeNotificationPublishFailed ErrorCode = "NOTIFICATION_PUBLISH_FAILED"

	ErrCodeEngineUnavailable ErrorCode = "ENGINE_UNAVAILABLE"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Unwrap exposes the error that produced this one, if any.
func (e *StandardError) Unwrap() error {
	return e.cause
}

// WithMetadata attaches a key to the error and returns it.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// WithCause records err as the error this one wraps.
func (e *StandardError) WithCause(err error) *StandardError {
	e.cause = err
	return e
}

func newError(code ErrorCode, message, details string, retryable bool, cause error) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

func detailsOf(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func NewInvalidInputError(details string) *StandardError {
	return newError(ErrCodeInvalidInput, "Invalid job input", details, false, nil)
}

func NewApplicationNotFoundError(applicationID string, cause error) *StandardError {
	return newError(ErrCodeApplicationNotFound, "Application not found",
		fmt.Sprintf("applicationId: %s", applicationID), false, cause)
}

func NewApplicationNotUniqueError(applicationID string, cause error) *StandardError {
	return newError(ErrCodeApplicationNotUnique, "Application lookup matched more than one record",
		fmt.Sprintf("applicationId: %s", applicationID), false, cause)
}

func NewTemplateNotFoundError(templateName string, cause error) *StandardError {
	return newError(ErrCodeTemplateNotFound, "Template not configured",
		fmt.Sprintf("template: %s", templateName), false, cause)
}

// NewTemplateFetchFailedError is retryable: the template host may recover.
func NewTemplateFetchFailedError(url string, err error) *StandardError {
	return newError(ErrCodeTemplateFetchFailed, "Template could not be fetched",
		fmt.Sprintf("url: %s, error: %s", url, detailsOf(err)), true, err)
}

func NewTemplateRenderFailedError(err error) *StandardError {
	return newError(ErrCodeTemplateRenderFailed, "Template rendering failed", detailsOf(err), false, err)
}

func NewPDFConversionFailedError(err error) *StandardError {
	return newError(ErrCodePDFConversionFailed, "HTML to PDF conversion failed", detailsOf(err), false, err)
}

func NewDatabaseConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseConnectionFailed, "Database connection error", detailsOf(err), true, err)
}

func NewQueryExecutionFailedError(query string, err error) *StandardError {
	return newError(ErrCodeQueryExecutionFailed, "Database query execution error",
		fmt.Sprintf("query: %s, error: %s", query, detailsOf(err)), true, err)
}

func NewDocumentUploadFailedError(key string, err error) *StandardError {
	return newError(ErrCodeDocumentUploadFailed, "Document upload failed",
		fmt.Sprintf("key: %s, error: %s", key, detailsOf(err)), true, err)
}

func NewNotificationPublishFailedError(err error) *StandardError {
	return newError(ErrCodeNotificationPublishFailed, "Document event publish failed", detailsOf(err), true, err)
}

// NewEngineUnavailableError reports a zeebe gateway command that could not
// be delivered.
func NewEngineUnavailableError(operation string, err error) *StandardError {
	return newError(ErrCodeEngineUnavailable, "Workflow engine unavailable",
		fmt.Sprintf("operation: %s, error: %s", operation, detailsOf(err)), true, err)
}

func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", detailsOf(err), false, err)
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to the codes caught by boundary
// events in the document process.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeInvalidInput:              "INVALID_INPUT",
	ErrCodeApplicationNotFound:       "APPLICATION_NOT_FOUND",
	ErrCodeApplicationNotUnique:      "APPLICATION_NOT_UNIQUE",
	ErrCodeTemplateNotFound:          "TEMPLATE_NOT_FOUND",
	ErrCodeTemplateFetchFailed:       "TEMPLATE_FETCH_FAILED",
	ErrCodeTemplateRenderFailed:      "TEMPLATE_RENDER_FAILED",
	ErrCodePDFConversionFailed:       "PDF_CONVERSION_FAILED",
	ErrCodeDatabaseConnectionFailed:  "DATABASE_CONNECTION_FAILED",
	ErrCodeQueryExecutionFailed:      "QUERY_EXECUTION_FAILED",
	ErrCodeDocumentUploadFailed:      "DOCUMENT_UPLOAD_FAILED",
	ErrCodeNotificationPublishFailed: "NOTIFICATION_PUBLISH_FAILED",
	ErrCodeEngineUnavailable:         "ENGINE_UNAVAILABLE",
	ErrCodeInternal:                  "INTERNAL_ERROR",
}

// GetRetryCount returns the recommended retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeDocumentUploadFailed,
		ErrCodeNotificationPublishFailed,
		ErrCodeEngineUnavailable:
		return 3

	case ErrCodeTemplateFetchFailed:
		return 2

	default:
		return 0 // Business errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "APPLICATION"):
		return "APPLICATION"
	case strings.HasPrefix(codeStr, "TEMPLATE"):
		return "TEMPLATE"
	case strings.HasPrefix(codeStr, "PDF"):
		return "RENDERING"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY"):
		return "DATABASE"
	case strings.HasPrefix(codeStr, "DOCUMENT") || strings.HasPrefix(codeStr, "NOTIFICATION"):
		return "DELIVERY"
	case strings.HasPrefix(codeStr, "ENGINE"):
		return "ENGINE"
	case strings.Contains(codeStr, "INVALID"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
