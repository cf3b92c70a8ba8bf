package common

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type ErrorValidateResponse struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message,omitempty"`
}

func (e ErrorValidateResponse) String() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + " " + e.Message
}

var validate = validator.New()

// registration mutates the validator, it must happen before any
// concurrent ValidateStruct call
func init() {
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	registerNoSpacesAtStartOrEnd()
	registerDecimalGte()
}

func ValidateStruct(toValidate interface{}) []*ErrorValidateResponse {
	var errorResponse []*ErrorValidateResponse
	if err := validate.Struct(toValidate); err != nil {
		if _, ok := err.(*validator.InvalidValidationError); ok {
			errorResponse = append(errorResponse, &ErrorValidateResponse{
				Message: err.Error(),
			})
			return errorResponse
		}

		var valErrs validator.ValidationErrors
		if errors.As(err, &valErrs) {
			for _, valErr := range valErrs {
				errorResponse = append(errorResponse, &ErrorValidateResponse{
					Field:   valErr.Namespace(),
					Message: strings.TrimSpace(fmt.Sprintf("%s %s", valErr.Tag(), valErr.Param())),
				})
			}
		}
	}
	return errorResponse
}

// ValidateStructErr joins every violation into one error matching ErrValidation.
func ValidateStructErr(toValidate interface{}) error {
	resp := ValidateStruct(toValidate)
	if len(resp) == 0 {
		return nil
	}

	msgs := make([]string, 0, len(resp))
	for _, r := range resp {
		msgs = append(msgs, r.String())
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(msgs, "; "))
}

func registerNoSpacesAtStartOrEnd() {
	validate.RegisterValidation("noStartEndSpaces", func(fl validator.FieldLevel) bool {
		str := fl.Field().String()
		return str == "" || (str[0] != ' ' && str[len(str)-1] != ' ')
	})
}

// registerDecimalGte adds decimalGte=<n> for decimal.Decimal and valid
// decimal.NullDecimal fields. An invalid NullDecimal is empty for omitempty.
func registerDecimalGte() {
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		switch v := field.Interface().(type) {
		case decimal.Decimal:
			return v.String()
		case decimal.NullDecimal:
			if !v.Valid {
				return nil
			}
			return v.Decimal.String()
		}
		return nil
	}, decimal.Decimal{}, decimal.NullDecimal{})

	validate.RegisterValidation("decimalGte", func(fl validator.FieldLevel) bool {
		data, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}

		value, err := decimal.NewFromString(data)
		if err != nil {
			return false
		}

		limit, err := decimal.NewFromString(fl.Param())
		if err != nil {
			return false
		}

		return value.GreaterThanOrEqual(limit)
	})
}
