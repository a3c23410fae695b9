package validator

import (
	"fmt"
	"reflect"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	ErrRequired     = "is required"
	ErrEmail        = "must be a valid email address"
	ErrMinLength    = "must be at least %s characters long"
	ErrMaxLength    = "must be at most %s characters long"
	ErrMinItems     = "must contain at least %s items"
	ErrMinValue     = "must be greater than or equal to %s"
	ErrPhone        = "must be a valid phone number"
	ErrPrice        = "must be a non-negative amount"
	ErrInvalidField = "is invalid"
)

var phoneRgx = regexp.MustCompile(`^\+?[0-9][0-9\s\-()]{5,18}[0-9]$`)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("phone", validatePhone)
	validator.RegisterValidation("price", validatePrice)

	return validator
}

func validatePhone(fl validator.FieldLevel) bool {
	return phoneRgx.MatchString(fl.Field().String())
}

func validatePrice(fl validator.FieldLevel) bool {
	price, ok := fl.Field().Interface().(decimal.Decimal)
	if !ok {
		return false
	}

	return !price.IsNegative()
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return ErrRequired
	case "email":
		return ErrEmail
	case "min":
		switch err.Kind() {
		case reflect.Slice, reflect.Array, reflect.Map:
			return fmt.Sprintf(ErrMinItems, err.Param())
		case reflect.String:
			return fmt.Sprintf(ErrMinLength, err.Param())
		default:
			return fmt.Sprintf(ErrMinValue, err.Param())
		}
	case "max":
		return fmt.Sprintf(ErrMaxLength, err.Param())
	case "phone":
		return ErrPhone
	case "price":
		return ErrPrice
	default:
		return ErrInvalidField
	}
}
