package role

import (
	"net/http"

	sharedError "github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/error"
)

const (
	invalidRoleCode = "INVALID_ROLE_CODE" // errInfo
)

var (
	ErrInvalidRoleCode = sharedError.NewDomainError(invalidRoleCode)
)

func init() {
	sharedError.RegisterDomainErrorResponse(invalidRoleCode, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "ROLE-001",
		Message: "역할 코드는 영문 대문자, 숫자, '_' 조합 2~20자여야 합니다.",
	})
}
