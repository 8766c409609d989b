package errors

import "fmt"

// ErrorCode is the machine-readable code carried in every API response
type ErrorCode int32

const (
	ErrorCode_HTTP_OK          ErrorCode = 0
	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1002
	ErrorCode_NOT_FOUND        ErrorCode = 1003
	ErrorCode_UNAUTHENTICATED  ErrorCode = 1004

	// Authentication
	ErrorCode_AUTH_INVALID_TOKEN ErrorCode = 2001
	ErrorCode_AUTH_TOKEN_EXPIRED ErrorCode = 2002
	ErrorCode_AUTH_FORBIDDEN     ErrorCode = 2003

	// Summarization
	ErrorCode_SUMMARY_EMPTY_TRANSCRIPT ErrorCode = 3001
	ErrorCode_SUMMARY_DECODE_FAILED    ErrorCode = 3002
	ErrorCode_MODEL_UNAVAILABLE        ErrorCode = 3003
	ErrorCode_MODEL_FAILED             ErrorCode = 3004
	ErrorCode_TRANSCRIPTION_FAILED     ErrorCode = 3005

	// Export
	ErrorCode_EXPORT_FAILED         ErrorCode = 4001
	ErrorCode_EXPORT_NOT_CONFIGURED ErrorCode = 4002

	// History
	ErrorCode_MEETING_NOT_FOUND ErrorCode = 5001

	// Integrations
	ErrorCode_INTEGRATION_STORAGE_FAILED ErrorCode = 6001
	ErrorCode_INTEGRATION_CACHE_FAILED   ErrorCode = 6002
	ErrorCode_DB_QUERY_FAILED            ErrorCode = 6003
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                    "HTTP_OK",
	ErrorCode_INTERNAL:                   "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:           "INVALID_ARGUMENT",
	ErrorCode_INVALID_PAYLOAD:            "INVALID_PAYLOAD",
	ErrorCode_NOT_FOUND:                  "NOT_FOUND",
	ErrorCode_UNAUTHENTICATED:            "UNAUTHENTICATED",
	ErrorCode_AUTH_INVALID_TOKEN:         "AUTH_INVALID_TOKEN",
	ErrorCode_AUTH_TOKEN_EXPIRED:         "AUTH_TOKEN_EXPIRED",
	ErrorCode_AUTH_FORBIDDEN:             "AUTH_FORBIDDEN",
	ErrorCode_SUMMARY_EMPTY_TRANSCRIPT:   "SUMMARY_EMPTY_TRANSCRIPT",
	ErrorCode_SUMMARY_DECODE_FAILED:      "SUMMARY_DECODE_FAILED",
	ErrorCode_MODEL_UNAVAILABLE:          "MODEL_UNAVAILABLE",
	ErrorCode_MODEL_FAILED:               "MODEL_FAILED",
	ErrorCode_TRANSCRIPTION_FAILED:       "TRANSCRIPTION_FAILED",
	ErrorCode_EXPORT_FAILED:              "EXPORT_FAILED",
	ErrorCode_EXPORT_NOT_CONFIGURED:      "EXPORT_NOT_CONFIGURED",
	ErrorCode_MEETING_NOT_FOUND:          "MEETING_NOT_FOUND",
	ErrorCode_INTEGRATION_STORAGE_FAILED: "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:   "INTEGRATION_CACHE_FAILED",
	ErrorCode_DB_QUERY_FAILED:            "DB_QUERY_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ErrorCode(%d)", int32(c))
}
