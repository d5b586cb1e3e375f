package validator

import (
	"errors"
	"fmt"
	"strings"

	sharedError "github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/error"
	"github.com/go-playground/validator/v10"
)

// messages by tag. %s, when present, receives the tag parameter.
var messages = map[string]string{
	"required": "필수 항목을 입력해 주세요.",
	"email":    "이메일 형식이 올바르지 않습니다.",
	"min":      "최소 %s자 이상이어야 합니다.",
	"max":      "최대 %s자까지 입력 가능합니다.",
	"len":      "%s자여야 합니다.",
	"gte":      "%s 이상이어야 합니다.",
	"oneof":    "허용 값: %s",
	"uuid":     "UUID 형식이어야 합니다.",
	"phone":    "전화번호 형식이 올바르지 않습니다. (010-XXXX-XXXX 또는 +국가번호)",
	"currency": "통화 코드는 영문 3자리여야 합니다. (예: KRW, USD)",
	"code":     "코드는 영문, 숫자, '-', '_' 조합 2~20자여야 합니다.",
	"rolecode": "역할 코드는 영문 대문자, 숫자, '_' 조합 2~20자여야 합니다.",
	"status":   "지원하지 않는 상태 값입니다.",
}

// ToErrorResponse converts gin binding/validator errors into a standardized response.
// Only the first failing field is reported.
func ToErrorResponse(err error) (*sharedError.ErrorResponse, bool) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return nil, false
	}

	resp := sharedError.ValidationFailed.WithMessage(message(validationErrors[0]))
	return &resp, true
}

// message prefixes the JSON field name, e.g. "email: 이메일 형식이 올바르지 않습니다."
func message(fe validator.FieldError) string {
	format, ok := messages[fe.Tag()]
	if !ok {
		return fmt.Sprintf("'%s' 필드가 올바르지 않습니다.", fe.Field())
	}
	if strings.Contains(format, "%s") {
		format = fmt.Sprintf(format, fe.Param())
	}
	return fe.Field() + ": " + format
}
