package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.  The
// prefix before the underscore names the owning module.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_005"
	ErrCodeTooManyRequests    ErrorCode = "COMMON_007"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_008"
	ErrCodeTimeout            ErrorCode = "COMMON_009"
	ErrCodeValidation         ErrorCode = "COMMON_010"
	ErrCodeSerialization      ErrorCode = "COMMON_011"
	ErrCodeInvalidConfig      ErrorCode = "COMMON_017"
)

// Research Module Error Codes
const (
	// ErrCodeSearchFailure covers network failure, non-2xx status, and an
	// undecodable body on a search call.
	ErrCodeSearchFailure ErrorCode = "RES_001"
	// ErrCodeLookupFailure is the same condition on a single-entity read.
	ErrCodeLookupFailure ErrorCode = "RES_002"
	// ErrCodeLookupNotFound is a 404 on a single-entity read.
	ErrCodeLookupNotFound ErrorCode = "RES_003"
	// ErrCodeInvalidQuery is a SearchQuery the normalizer refused.
	ErrCodeInvalidQuery ErrorCode = "RES_004"
)

// Aliases
const (
	CodeOK             = ErrorCode("OK")
	CodeUnknown        = ErrorCode("UNKNOWN")
	CodeInternal       = ErrCodeInternal
	CodeInvalidParam   = ErrCodeBadRequest
	CodeNotFound       = ErrCodeNotFound
	CodeRateLimit      = ErrCodeTooManyRequests
	CodeValidation     = ErrCodeValidation
	CodeInvalidConfig  = ErrCodeInvalidConfig
	CodeSearchFailure  = ErrCodeSearchFailure
	CodeLookupFailure  = ErrCodeLookupFailure
	CodeLookupNotFound = ErrCodeLookupNotFound
	CodeInvalidQuery   = ErrCodeInvalidQuery
)

// ErrInvalidConfig is returned by constructors given unusable settings.
var ErrInvalidConfig = New(ErrCodeInvalidConfig, "invalid configuration")

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeTooManyRequests:    http.StatusTooManyRequests,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeInvalidConfig:      http.StatusInternalServerError,

	ErrCodeSearchFailure:  http.StatusBadGateway,
	ErrCodeLookupFailure:  http.StatusBadGateway,
	ErrCodeLookupNotFound: http.StatusNotFound,
	ErrCodeInvalidQuery:   http.StatusBadRequest,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeTooManyRequests:    "too many requests",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeTimeout:            "request timeout",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeInvalidConfig:      "invalid configuration",

	ErrCodeSearchFailure:  "legal research search failed",
	ErrCodeLookupFailure:  "legal research lookup failed",
	ErrCodeLookupNotFound: "legal research entity not found",
	ErrCodeInvalidQuery:   "invalid search query",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}
