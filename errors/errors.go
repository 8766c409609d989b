package errors

import (
	"fmt"
	"net/http"
	"time"
)

// AppError is the error type surfaced by use cases and rendered by handlers
type AppError struct {
	Raw       error
	HTTPCode  int
	Code      ErrorCode
	Message   string
	Details   map[string]string
	Timestamp time.Time
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the underlying cause to errors.Is / errors.As
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	details := make(map[string]string, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	e.Details = details
	return e
}

func newAppError(raw error, httpCode int, code ErrorCode, message string) AppError {
	return AppError{
		Raw:       raw,
		HTTPCode:  httpCode,
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// General Errors
func ErrInternal(err error) AppError {
	return newAppError(err, http.StatusInternalServerError, ErrorCode_INTERNAL, "Internal server error")
}

func ErrInvalidArgument(message string) AppError {
	return newAppError(nil, http.StatusBadRequest, ErrorCode_INVALID_ARGUMENT, message)
}

func ErrInvalidPayload(err error) AppError {
	return newAppError(err, http.StatusBadRequest, ErrorCode_INVALID_PAYLOAD, "Invalid payload")
}

func ErrNotFound(resource string) AppError {
	return newAppError(nil, http.StatusNotFound, ErrorCode_NOT_FOUND, fmt.Sprintf("%s not found", resource))
}

func ErrUnauthenticated() AppError {
	return newAppError(nil, http.StatusUnauthorized, ErrorCode_UNAUTHENTICATED, "Authentication required")
}

// Authentication Errors
func ErrInvalidToken() AppError {
	return newAppError(nil, http.StatusUnauthorized, ErrorCode_AUTH_INVALID_TOKEN, "Invalid authentication token")
}

func ErrTokenExpired() AppError {
	return newAppError(nil, http.StatusUnauthorized, ErrorCode_AUTH_TOKEN_EXPIRED, "Authentication token has expired")
}

func ErrMissingScope(scope string) AppError {
	return newAppError(nil, http.StatusForbidden, ErrorCode_AUTH_FORBIDDEN, "Token is not allowed to access this resource").
		WithDetail("required_scope", scope)
}

// Summarization Errors
func ErrEmptyTranscript() AppError {
	return newAppError(nil, http.StatusBadRequest, ErrorCode_SUMMARY_EMPTY_TRANSCRIPT, "Transcript is required")
}

// ErrSummaryDecodeFailed is returned when the model answered but nothing
// usable could be decoded. archiveKey points at the stored raw output.
func ErrSummaryDecodeFailed(err error, archiveKey string) AppError {
	appErr := newAppError(err, http.StatusInternalServerError, ErrorCode_SUMMARY_DECODE_FAILED, "Failed to decode model output")
	if archiveKey != "" {
		appErr = appErr.WithDetail("raw_output_key", archiveKey)
	}
	return appErr
}

func ErrModelUnavailable(provider string) AppError {
	return newAppError(nil, http.StatusServiceUnavailable, ErrorCode_MODEL_UNAVAILABLE, "Model provider is not configured").
		WithDetail("provider", provider)
}

func ErrModelFailed(err error) AppError {
	return newAppError(err, http.StatusBadGateway, ErrorCode_MODEL_FAILED, "Model call failed")
}

func ErrTranscriptionFailed(err error) AppError {
	return newAppError(err, http.StatusBadGateway, ErrorCode_TRANSCRIPTION_FAILED, "Audio transcription failed")
}

// Export Errors
func ErrExportFailed(target string, err error) AppError {
	return newAppError(err, http.StatusInternalServerError, ErrorCode_EXPORT_FAILED, fmt.Sprintf("Export to %s failed", target)).
		WithDetail("target", target)
}

func ErrExportNotConfigured(target string) AppError {
	return newAppError(nil, http.StatusBadRequest, ErrorCode_EXPORT_NOT_CONFIGURED, fmt.Sprintf("%s credentials not configured", target)).
		WithDetail("target", target)
}

// History Errors
func ErrMeetingNotFound(meetingID string) AppError {
	return newAppError(nil, http.StatusNotFound, ErrorCode_MEETING_NOT_FOUND, "Meeting not found").
		WithDetail("meeting_id", meetingID)
}

// Integration Errors
func ErrStorageFailed(operation string, err error) AppError {
	return newAppError(err, http.StatusInternalServerError, ErrorCode_INTEGRATION_STORAGE_FAILED, fmt.Sprintf("Storage operation failed: %s", operation))
}

func ErrCacheFailed(operation string, err error) AppError {
	return newAppError(err, http.StatusInternalServerError, ErrorCode_INTEGRATION_CACHE_FAILED, fmt.Sprintf("Cache operation failed: %s", operation))
}

func ErrDBQueryFailed(query string, err error) AppError {
	return newAppError(err, http.StatusInternalServerError, ErrorCode_DB_QUERY_FAILED, "Database query failed").
		WithDetail("query", query)
}

// HTTPStatusOK represents a successful HTTP response.
func HTTPStatusOK(message string) AppError {
	return newAppError(nil, http.StatusOK, ErrorCode_HTTP_OK, message)
}
