package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// queryValidator backs c.Validate for query-string structs. Bodies go
// through middleware.Validate instead.
type queryValidator struct {
	validate *validator.Validate
}

func NewValidator() *queryValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name, _, _ := strings.Cut(f.Tag.Get("query"), ","); name != "" {
			return name
		}
		return strings.ToLower(f.Name)
	})
	return &queryValidator{validate: v}
}

func (qv *queryValidator) Validate(i any) error {
	err := qv.validate.Struct(i)
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	// Report the first offending parameter, matching the body validators.
	return errors.New(queryParamMessage(fieldErrs[0]))
}

func queryParamMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("%s must be %s or greater", fe.Field(), fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be %s characters or fewer", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be %s or less", fe.Field(), fe.Param())
	}
	return "invalid " + fe.Field()
}
