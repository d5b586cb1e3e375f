package validator

import (
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// GetValidator returns the validator instance from Gin binding
func GetValidator() (*validator.Validate, error) {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil, fmt.Errorf("validator 엔진을 가져올 수 없습니다")
	}
	return v, nil
}

// RegisterAll registers all common validators defined in this package
// Domain-specific validators should be registered separately by each domain
func RegisterAll() error {
	v, err := GetValidator()
	if err != nil {
		return fmt.Errorf("validator 엔진 가져오기 실패: %w", err)
	}

	// Register common validators
	validations := []struct {
		tag string
		fn  validator.Func
	}{
		{"phone", ValidatePhone},
		{"currency", ValidateCurrency},
		{"code", ValidateCode},
		{"rolecode", ValidateRoleCode},
		{"status", ValidateStatus},
	}
	for _, val := range validations {
		if err := v.RegisterValidation(val.tag, val.fn); err != nil {
			return fmt.Errorf("%s validator 등록 실패: %w", val.tag, err)
		}
	}

	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	v.RegisterTagNameFunc(jsonName)

	slog.Info("공통 Validator 등록 완료", "validators", "phone,currency,code,rolecode,status")
	return nil
}

// jsonName reports fields by their JSON name so messages match the request body.
func jsonName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	}
	return name
}
