package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Init configures the global validator used by Gin's binding to report
// JSON field names and registers the aliases the request types use.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		// Domain value formats; the domain re-validates through its
		// Parse constructors, these only catch garbage early.
		v.RegisterAlias("slug", "lowercase,min=1,max=64")
		v.RegisterAlias("entityid", "len=16")
		v.RegisterAlias("shortsecret", "len=6")
		v.RegisterAlias("longsecret", "len=64")
	}
}

// ToDetails converts binding errors into a map[field]message for the
// API error payload.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return map[string]string{"payload": "invalid json"}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = formatFieldError(fe)
		}
		return out
	}

	return map[string]string{"payload": "invalid payload"}
}

func formatFieldError(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()

	switch tag {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "lowercase":
		return "must be in lowercase"
	case "len":
		return fmt.Sprintf("must be exactly %s characters long", param)
	case "min":
		return "must be at least " + param + " characters long"
	case "max":
		return "must be at most " + param + " characters long"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(param, " ", ", ")
	case "slug":
		return "must be a lowercase slug"
	case "entityid":
		return "must be a 16-character id"
	case "shortsecret":
		return "must be a 6-character code"
	case "longsecret":
		return "must be a 64-character secret"
	default:
		if param != "" {
			return fmt.Sprintf("validation failed for '%s' with parameter '%s'", tag, param)
		}
		return fmt.Sprintf("validation failed for '%s'", tag)
	}
}
