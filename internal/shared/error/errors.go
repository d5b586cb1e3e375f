package error

import (
	"errors"
	"net/http"
	"sync"
)

// DomainError is a sentinel that can be mapped to an HTTP response.
// Structured errors unwrap to one so errors.Is and errors.As keep working through %w chains.
type DomainError interface {
	error
	Info() string
}

type domainSentinel struct {
	errInfo string
}

func (e *domainSentinel) Error() string { return e.errInfo }
func (e *domainSentinel) Info() string  { return e.errInfo }

// ErrorResponse is the JSON response structure for errors
type ErrorResponse struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"` // client message
}

// WithMessage returns a copy carrying a more specific client message.
func (r ErrorResponse) WithMessage(message string) ErrorResponse {
	r.Message = message
	return r
}

// Common errors
var (
	// ValidationFailed indicates the request payload failed validation
	ValidationFailed = ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "ERROR-001", // METHOD_ARGUMENT_NOT_VALID
		Message: "잘못된 요청입니다.",
	}

	// InvalidRequest indicates the request format is invalid (e.g., JSON parsing error)
	InvalidRequest = ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "ERROR-002", // INVALID_REQUEST
		Message: "잘못된 요청 형식입니다.",
	}

	// InternalServerError indicates an unexpected server error
	InternalServerError = ErrorResponse{
		Status:  http.StatusInternalServerError,
		Code:    "ERROR-003", // INTERNAL_SERVER_ERROR
		Message: "서버 내부 오류가 발생했습니다.",
	}

	// RequestTimeout is sent when the request deadline passed before a response was written
	RequestTimeout = ErrorResponse{
		Status:  http.StatusGatewayTimeout,
		Code:    "ERROR-004", // REQUEST_TIMEOUT
		Message: "요청 처리 시간이 초과되었습니다.",
	}
)

var (
	registryMu           sync.RWMutex
	domainErrorResponses = map[string]ErrorResponse{}
)

// NewDomainError creates a sentinel error that can participate in error chains.
func NewDomainError(errInfo string) DomainError {
	return &domainSentinel{errInfo: errInfo}
}

// RegisterDomainErrorResponse registers a mapping between a domain error errInfo and a shared error response.
func RegisterDomainErrorResponse(errInfo string, resp ErrorResponse) {
	registryMu.Lock()
	defer registryMu.Unlock()
	domainErrorResponses[errInfo] = resp
}

// ResolveDomainError converts a domain error into a shared error response if a mapping exists.
// The outermost DomainError in the chain decides the response.
func ResolveDomainError(err error) (ErrorResponse, bool) {
	if err == nil {
		return ErrorResponse{}, false
	}

	registryMu.RLock()
	defer registryMu.RUnlock()

	var domainErr DomainError
	if errors.As(err, &domainErr) {
		if resp, ok := domainErrorResponses[domainErr.Info()]; ok {
			return resp, true
		}
	}
	return ErrorResponse{}, false
}

// Resolve is ResolveDomainError with InternalServerError as the fallback.
func Resolve(err error) ErrorResponse {
	if resp, ok := ResolveDomainError(err); ok {
		return resp
	}
	return InternalServerError
}
