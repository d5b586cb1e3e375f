package error

import (
	"fmt"
	"net/http"
)

const (
	invalidReference     = "INVALID_REFERENCE"       // errInfo
	alreadyExists        = "ALREADY_EXISTS"          // errInfo
	notFound             = "NOT_FOUND"               // errInfo
	alreadyInTargetState = "ALREADY_IN_TARGET_STATE" // errInfo
	invalidTransition    = "INVALID_TRANSITION"      // errInfo
	persistenceFailure   = "PERSISTENCE_FAILURE"     // errInfo
	resourceUnavailable  = "RESOURCE_UNAVAILABLE"    // errInfo
)

// Persistence error kinds. Structured errors below unwrap to one of these.
var (
	ErrInvalidReference     = NewDomainError(invalidReference)
	ErrAlreadyExists        = NewDomainError(alreadyExists)
	ErrNotFound             = NewDomainError(notFound)
	ErrAlreadyInTargetState = NewDomainError(alreadyInTargetState)
	ErrInvalidTransition    = NewDomainError(invalidTransition)
	ErrPersistenceFailure   = NewDomainError(persistenceFailure)
	ErrResourceUnavailable  = NewDomainError(resourceUnavailable)
)

func init() {
	RegisterDomainErrorResponse(invalidReference, ErrorResponse{
		Status:  http.StatusUnprocessableEntity,
		Code:    "DATA-001",
		Message: "참조하는 상위 항목이 존재하지 않습니다.",
	})

	RegisterDomainErrorResponse(alreadyExists, ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "DATA-002",
		Message: "이미 존재하는 항목입니다.",
	})

	RegisterDomainErrorResponse(notFound, ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "DATA-003",
		Message: "항목을 찾을 수 없습니다.",
	})

	RegisterDomainErrorResponse(alreadyInTargetState, ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "DATA-004",
		Message: "이미 요청한 상태입니다.",
	})

	RegisterDomainErrorResponse(invalidTransition, ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "DATA-005",
		Message: "현재 상태에서는 변경할 수 없습니다.",
	})

	RegisterDomainErrorResponse(persistenceFailure, InternalServerError)

	RegisterDomainErrorResponse(resourceUnavailable, ErrorResponse{
		Status:  http.StatusServiceUnavailable,
		Code:    "DATA-006",
		Message: "잠시 후 다시 시도해 주세요.",
	})
}

// ReferenceError reports a parent entity that does not exist.
// Parent and ID are empty when the backend did not say which reference failed.
type ReferenceError struct {
	Parent string
	ID     string
}

func (e *ReferenceError) Error() string {
	if e.Parent == "" {
		return "invalid reference"
	}
	return fmt.Sprintf("invalid reference: %s %q does not exist", e.Parent, e.ID)
}

func (e *ReferenceError) Unwrap() error { return ErrInvalidReference }

// ConflictError reports a natural key already used by another row.
type ConflictError struct {
	Entity string
	Key    string
	Value  string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already exists: %s=%q", e.Entity, e.Key, e.Value)
}

func (e *ConflictError) Unwrap() error { return ErrAlreadyExists }

// NotFoundError reports a write that matched no row.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: id=%q", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// StateError reports a conditional transition whose precondition did not hold.
// Current equal to Target unwraps to ErrAlreadyInTargetState, anything else to ErrInvalidTransition.
type StateError struct {
	Entity  string
	ID      string
	Current string
	Target  string
}

func (e *StateError) Error() string {
	if e.Current == e.Target {
		return fmt.Sprintf("%s %q is already %s", e.Entity, e.ID, e.Target)
	}
	return fmt.Sprintf("%s %q cannot move from %s to %s", e.Entity, e.ID, e.Current, e.Target)
}

func (e *StateError) Unwrap() error {
	if e.Current == e.Target {
		return ErrAlreadyInTargetState
	}
	return ErrInvalidTransition
}

// PersistenceError wraps any backend fault that has no better classification.
type PersistenceError struct {
	Message string
	Cause   error
}

func (e *PersistenceError) Error() string {
	if e.Cause == nil {
		return "persistence failure: " + e.Message
	}
	return fmt.Sprintf("persistence failure: %s: %v", e.Message, e.Cause)
}

func (e *PersistenceError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrPersistenceFailure}
	}
	return []error{ErrPersistenceFailure, e.Cause}
}

// UnavailableError reports that no pooled connection could be obtained.
type UnavailableError struct {
	Cause error
}

func (e *UnavailableError) Error() string {
	if e.Cause == nil {
		return "resource unavailable"
	}
	return fmt.Sprintf("resource unavailable: %v", e.Cause)
}

func (e *UnavailableError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrResourceUnavailable}
	}
	return []error{ErrResourceUnavailable, e.Cause}
}

// NewPersistenceError builds a PersistenceError preserving cause.
func NewPersistenceError(message string, cause error) error {
	return &PersistenceError{Message: message, Cause: cause}
}
