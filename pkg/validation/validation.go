// Package validation configures the request validator and renders its
// failures as the human-readable messages returned in the error envelope.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	dateLayout       = "2006-01-02"
	clockLayout      = "15:04"
	clockLayoutFull  = "15:04:05"
	tagClock         = "clock"
	fallbackTemplate = "%s is invalid"
)

// New returns a validator reporting JSON field names and knowing the
// custom tags used by request payloads.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation(tagClock, func(fl validator.FieldLevel) bool {
		_, err := ParseClock(fl.Field().String())
		return err == nil
	})
	return v
}

// ParseClock parses a time of day written as HH:MM or HH:MM:SS.
func ParseClock(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(clockLayout, raw); err == nil {
		return t, nil
	}
	return time.Parse(clockLayoutFull, raw)
}

// Today returns the current UTC date in the storage layout.
func Today() string {
	return time.Now().UTC().Format(dateLayout)
}

// Messages flattens a validator error into one message per failed field.
// Non-validation errors yield a single message.
func Messages(err error) []string {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be %s characters or less", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "email":
		return "Invalid email format"
	case "oneof":
		options := strings.Fields(fe.Param())
		if len(options) == 2 {
			return fmt.Sprintf("%s must be either %q or %q", field, options[0], options[1])
		}
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(options, ", "))
	case "base64":
		return fmt.Sprintf("%s must be valid base64 encoded string", field)
	case "json":
		return fmt.Sprintf("%s must be valid JSON format", field)
	case "datetime":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field)
	case tagClock:
		return fmt.Sprintf("%s must be a time in HH:MM format", field)
	default:
		return fmt.Sprintf(fallbackTemplate, field)
	}
}
