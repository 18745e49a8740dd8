package actions

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report field names by json tag so fieldErrors keys match the wire
	// shape.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterStructValidation(updateDeckHasFields, UpdateDeckInput{})
	v.RegisterStructValidation(updateCardHasFields, UpdateCardInput{})

	return v
}

// Partial updates with nothing to change are invalid input, not silent
// no-ops.
func updateDeckHasFields(sl validator.StructLevel) {
	in := sl.Current().Interface().(UpdateDeckInput)
	if in.Name == nil && in.Description == nil {
		sl.ReportError(in.Name, "name", "Name", "atleastone", "")
	}
}

func updateCardHasFields(sl validator.StructLevel) {
	in := sl.Current().Interface().(UpdateCardInput)
	if in.Front == nil && in.Back == nil {
		sl.ReportError(in.Front, "front", "Front", "atleastone", "")
	}
}

// checkInput validates in and returns per-field messages, or nil when the
// input is well-formed.
func (a *Actions) checkInput(in interface{}) map[string][]string {
	err := a.validate.Struct(in)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string][]string{"_": {"invalid input"}}
	}

	fieldErrors := make(map[string][]string, len(errs))
	for _, fe := range errs {
		field := fe.Field()
		fieldErrors[field] = append(fieldErrors[field], fieldMessage(fe))
	}
	return fieldErrors
}

func fieldMessage(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String ||
		(fe.Kind() == reflect.Ptr && fe.Type().Elem().Kind() == reflect.String)

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "atleastone":
		return "at least one field must be provided"
	case "min":
		if isString {
			return fmt.Sprintf("%s must not be empty", fe.Field())
		}
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
