package validator

import (
	"reflect"
	"regexp"

	"github.com/changhyeonkim/budget-admin/go-api-server/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// codeRegex matches business codes (company, project, budget ...): PRJ-2024_01
var codeRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{2,20}$`)

// ValidateCode validates a natural key code
func ValidateCode(fl validator.FieldLevel) bool {
	return codeRegex.MatchString(fl.Field().String())
}

// ValidateRoleCode validates a role identity (upper case, digits, underscore)
func ValidateRoleCode(fl validator.FieldLevel) bool {
	return model.IsValidRoleCode(fl.Field().String())
}

// ValidateStatus accepts any lifecycle status name
func ValidateStatus(fl validator.FieldLevel) bool {
	_, err := model.ParseStatus(fl.Field().String())
	return err == nil
}

// decimalValue lets numeric tags (gte, lte) apply to decimal.Decimal fields.
func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.InexactFloat64()
	}
	return nil
}
