package validation

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"wealthcheck/internal/models"

	"github.com/go-playground/validator/v10"
)

var (
	tagValidator     *validator.Validate
	tagValidatorOnce sync.Once
)

func structValidator() *validator.Validate {
	tagValidatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		if err := v.RegisterValidation("txtype", func(fl validator.FieldLevel) bool {
			_, err := models.ParseTransactionType(fl.Field().String())
			return err == nil
		}); err != nil {
			panic(fmt.Sprintf("register txtype validation: %v", err))
		}
		tagValidator = v
	})
	return tagValidator
}

// Struct runs the `validate` struct tags and records one message per field.
func (v *Validator) Struct(s interface{}) {
	err := structValidator().Struct(s)
	if err == nil {
		return
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		v.AddError("request", err.Error())
		return
	}
	for _, fe := range fieldErrs {
		v.AddError(fe.Field(), tagMessage(fe))
	}
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "max":
		return fmt.Sprintf("must not be more than %s characters long", fe.Param())
	case "txtype":
		return "must be one of INCOME, EXPENSE, TRANSFER"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
