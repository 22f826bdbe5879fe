package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	// report fields by their wire name
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"url", "json"} {
			name := strings.Split(f.Tag.Get(tag), ",")[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
}

// errorMessages maps validation tags to messages.
var errorMessages = map[string]string{
	"required":      "The field '%s' is required.",
	"required_with": "The field '%s' is required when %s is present.",
	"max":           "The field '%s' must be no longer than %s characters.",
	"lte":           "The field '%s' must be less than or equal to %s.",
	"gte":           "The field '%s' must be greater than or equal to %s.",
	"oneof":         "The field '%s' must be one of [%s].",
	"datetime":      "The field '%s' must be a date formatted as %s.",
}

func parseMessage(e validator.FieldError) string {
	if msg, ok := errorMessages[e.Tag()]; ok {
		switch strings.Count(msg, "%s") {
		case 1:
			return fmt.Sprintf(msg, e.Field())
		case 2:
			return fmt.Sprintf(msg, e.Field(), e.Param())
		}
	}
	return fmt.Sprintf("Field '%s' is invalid: %s", e.Field(), e.Tag())
}

// ValidateStruct validates s and returns wire field names mapped to
// friendly messages. An empty map means s is valid.
func ValidateStruct(s any) map[string]string {
	out := make(map[string]string)

	err := validate.Struct(s)
	if err == nil {
		return out
	}
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		for _, e := range errs {
			out[e.Field()] = parseMessage(e)
		}
		return out
	}
	out["_"] = err.Error()
	return out
}
