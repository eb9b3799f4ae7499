// Package validators wraps go-playground/validator with the custom rules
// and message formatting shared by every request schema. Validation is
// total: handlers run it before any database call, and failures collect
// every violated field rather than stopping at the first.
package validators

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Phone numbers: 10 to 15 digits with optional '+' for international format.
var phoneRe = regexp.MustCompile(`^[0-9+]{10,15}$`)

var (
	once sync.Once
	v    *validator.Validate
)

// New returns the shared validator instance with custom rules registered.
func New() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return phoneRe.MatchString(fl.Field().String())
		})
	})
	return v
}

// Check validates a request struct and returns every violated-field message,
// or nil when the input is valid.
func Check(req any) []string {
	err := New().Struct(req)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, message(fe))
	}
	return msgs
}

func message(fe validator.FieldError) string {
	field := fieldName(fe)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%q is required", field)
	case "min":
		if fe.Kind().String() == "slice" {
			return fmt.Sprintf("%q must contain at least %s item(s)", field, fe.Param())
		}
		return fmt.Sprintf("%q must be at least %s characters long", field, fe.Param())
	case "max":
		return fmt.Sprintf("%q must be at most %s characters long", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%q must be one of [%s]", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "email":
		return fmt.Sprintf("%q must be a valid email", field)
	case "uri", "url":
		return fmt.Sprintf("%q must be a valid URI", field)
	case "ip":
		return fmt.Sprintf("%q must be a valid IP address", field)
	case "alphanum":
		return fmt.Sprintf("%q must only contain alphanumeric characters", field)
	case "phone":
		return fmt.Sprintf("%q must be 10 to 15 digits with optional '+' for international format", field)
	case "dive":
		return fmt.Sprintf("%q contains an invalid item", field)
	default:
		return fmt.Sprintf("%q is invalid (%s)", field, fe.Tag())
	}
}

// fieldName strips the top-level struct name and lowercases the leading
// segment so messages read like the JSON payload, e.g.
// "techStacks[0].category" instead of "ProjectRequest.TechStacks[0].Category".
func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	parts := strings.Split(ns, ".")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToLower(p[:1]) + p[1:]
	}
	return strings.Join(parts, ".")
}
