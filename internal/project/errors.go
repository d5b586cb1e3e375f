package project

import (
	"net/http"

	sharedError "github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/error"
)

const (
	invalidPeriod = "PROJECT_INVALID_PERIOD" // errInfo
)

var (
	ErrInvalidPeriod = sharedError.NewDomainError(invalidPeriod)
)

func init() {
	sharedError.RegisterDomainErrorResponse(invalidPeriod, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "PROJECT-001",
		Message: "종료일은 시작일 이후여야 합니다.",
	})
}
