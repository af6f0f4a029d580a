package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared struct validator. Field names in messages use
// the json tag so they match what the API calls them.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// FieldErrors lists input problems as "field: rule" entries.
type FieldErrors []string

func (e FieldErrors) Error() string {
	return "invalid input: " + strings.Join(e, "; ")
}

// Struct validates v with its `validate` tags and flattens the result into
// FieldErrors, sorted for stable output.
func Struct(v any) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}
	out := make(FieldErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, describe(fe))
	}
	sort.Strings(out)
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + ": required"
	case "email":
		return fe.Field() + ": must be a valid email"
	case "url", "http_url":
		return fe.Field() + ": must be a valid URL"
	case "min":
		return fmt.Sprintf("%s: must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s: must be at most %s", fe.Field(), fe.Param())
	case "gtefield":
		return fmt.Sprintf("%s: must not be before %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s: must be one of [%s]", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s: failed %s", fe.Field(), fe.Tag())
	}
}
