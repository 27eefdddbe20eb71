package helper

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate is shared by every DTO. Field names in errors follow the json tag.
var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// FieldErrors is a ValidationError raised by service code after the DTO
// passed struct validation (ownership of referenced rows, cross-field rules).
type FieldErrors map[string][]string

func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(f[k], ", "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (f FieldErrors) Add(field, msg string) FieldErrors {
	f[field] = append(f[field], msg)
	return f
}

func NewFieldError(field, msg string) FieldErrors {
	return FieldErrors{field: {msg}}
}

// ValidationErrorsToMap mengubah error validator menjadi field → pesan.
func ValidationErrorsToMap(err error) (map[string][]string, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil, false
	}
	out := make(map[string][]string, len(ve))
	for _, fieldErr := range ve {
		out[fieldErr.Field()] = append(out[fieldErr.Field()], validationMessage(fieldErr))
	}
	return out, true
}

// Messages flattens a field map, used for CSV row errors.
func Messages(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var out []string
	for _, k := range keys {
		out = append(out, m[k]...)
	}
	return out
}

func validationMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return "The " + field + " field is required."
	case "min", "gte":
		return "The " + field + " must be at least " + fe.Param() + "."
	case "max", "lte":
		return "The " + field + " must not be greater than " + fe.Param() + "."
	case "gt":
		return "The " + field + " must be greater than " + fe.Param() + "."
	case "oneof":
		return "The selected " + field + " is invalid."
	case "uuid", "uuid4":
		return "The " + field + " must be a valid UUID."
	case "datetime":
		return "The " + field + " must be a valid date (" + fe.Param() + ")."
	case "number", "numeric":
		return "The " + field + " must be an integer."
	case "email":
		return "The " + field + " must be a valid email address."
	default:
		return "The " + field + " is invalid."
	}
}
