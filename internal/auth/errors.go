package auth

import (
	"net/http"

	sharedError "github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/error"
)

const (
	incorrectEmailPassword = "INCORRECT_EMAIL_PASSWORD" // errInfo
	userNotActive          = "USER_NOT_ACTIVE"          // errInfo
)

var (
	ErrInCorrectEmailPassword = sharedError.NewDomainError(incorrectEmailPassword)
	ErrUserNotActive          = sharedError.NewDomainError(userNotActive)
)

func init() {
	sharedError.RegisterDomainErrorResponse(incorrectEmailPassword, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "AUTH-003",
		Message: "이메일 또는 비밀번호가 일치하지 않습니다.",
	})

	sharedError.RegisterDomainErrorResponse(userNotActive, sharedError.ErrorResponse{
		Status:  http.StatusForbidden,
		Code:    "AUTH-004",
		Message: "사용할 수 없는 계정입니다.",
	})
}
