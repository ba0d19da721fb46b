package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidConfig matches every *ConfigError with errors.Is.
var ErrInvalidConfig = errors.New("config: invalid module configuration")

// ConfigError reports the first missing or malformed option.
type ConfigError struct {
	Option string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config: option %q %s: %v", e.Option, e.Reason, e.Err)
	}
	return fmt.Sprintf("config: option %q %s", e.Option, e.Reason)
}

func (e *ConfigError) Unwrap() error { return e.Err }

func (e *ConfigError) Is(target error) bool { return target == ErrInvalidConfig }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(optionName)
	return v
}

// optionName returns the option key of a Config field.
func optionName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("mapstructure"), ",")
	if name == "" || name == "-" {
		return field.Name
	}
	return name
}

// Validate checks cfg against its validate tags and returns the first
// failure, in field order, as a *ConfigError.
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ConfigError{Option: "config", Reason: "is invalid", Err: err}
	}

	fe := verrs[0]
	return &ConfigError{Option: fe.Field(), Reason: reason(fe)}
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "gt":
		return "must be greater than " + fe.Param()
	case "max":
		return "must not exceed " + fe.Param()
	case "url":
		return "must be a URL"
	case "hostname_rfc1123":
		return "must be a hostname"
	case "required_with":
		return "must be set together with " + fieldOption(fe.Param())
	case "excluded_without":
		return "requires " + fieldOption(fe.Param())
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}

// fieldOption maps a Config field name to its option key.
func fieldOption(fieldName string) string {
	f, ok := reflect.TypeOf(Config{}).FieldByName(fieldName)
	if !ok {
		return fieldName
	}
	return optionName(f)
}
