package config

import (
	"reflect"
	"time"

	"github.com/invopop/jsonschema"
)

// RedactedValue replaces secret option values in every rendered view.
const RedactedValue = "********"

// Field is one option of a rendered Config.
type Field struct {
	Option string
	Value  string
}

// Fields returns the options of c in declaration order with secrets
// masked. Empty optional values are included.
func (c *Config) Fields() []Field {
	rv := reflect.ValueOf(*c)
	rt := rv.Type()

	fields := make([]Field, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		key := optionName(rt.Field(i))
		fields = append(fields, Field{Option: key, Value: render(key, rv.Field(i))})
	}
	return fields
}

// Redacted returns c as an option map with secrets masked, for logging
// and CLI output.
func (c *Config) Redacted() map[string]string {
	fields := c.Fields()
	m := make(map[string]string, len(fields))
	for _, f := range fields {
		m[f.Option] = f.Value
	}
	return m
}

func render(key string, v reflect.Value) string {
	if d, ok := v.Interface().(time.Duration); ok {
		return d.String()
	}
	if v.Kind() == reflect.Bool {
		if v.Bool() {
			return "true"
		}
		return "false"
	}
	s := v.String()
	if s != "" && IsSecret(key) {
		return RedactedValue
	}
	return s
}

// Schema returns the JSON schema of the configuration file.
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
		DoNotReference:            true,
		FieldNameTag:              "yaml",
	}

	schema := reflector.Reflect(&Config{})
	schema.Version = "https://json-schema.org/draft/2020-12/schema"
	schema.Title = "pam_cognito Configuration"
	schema.Description = "Configuration file schema for the pam_cognito module"
	return schema
}
