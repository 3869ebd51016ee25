package core

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var paramValidator = validator.New()

// validateParameterValue checks a single parameter value against its
// declared constraints. Range and length constraints are delegated to
// the validator as a compiled tag; the allowed-value enumeration is
// matched by rendered value since schema authors mix strings and
// numbers there.
func validateParameterValue(name string, def ParameterDefinition, value any) error {
	c := def.Constr
	if c.IsZero() {
		return nil
	}

	if len(c.AllowedValues) > 0 {
		found := false
		want := fmt.Sprintf("%v", value)
		for _, allowed := range c.AllowedValues {
			if fmt.Sprintf("%v", allowed) == want {
				found = true
				break
			}
		}
		if !found {
			return CreateErr(nil, "value '%v' for '%s' is not one of the allowed values %v", value, name, c.AllowedValues)
		}
	}

	tag := constraintTag(c, value)
	if tag == "" {
		return nil
	}

	err := paramValidator.Var(normalizeNumeric(value), tag)
	if err != nil {
		return CreateErr(err, "value '%v' for '%s' violates constraint '%s'", value, name, tag)
	}
	return nil
}

// constraintTag builds the go-playground/validator tag for the value.
// For strings the validator's min/max compare lengths, so min_length
// and max_length map onto them; for numbers min/max compare the value.
func constraintTag(c Constraints, value any) string {
	var parts []string

	switch value.(type) {
	case string:
		if c.MinLength != nil {
			parts = append(parts, fmt.Sprintf("min=%d", *c.MinLength))
		}
		if c.MaxLength != nil {
			parts = append(parts, fmt.Sprintf("max=%d", *c.MaxLength))
		}
	default:
		if c.Min != nil {
			parts = append(parts, fmt.Sprintf("min=%v", *c.Min))
		}
		if c.Max != nil {
			parts = append(parts, fmt.Sprintf("max=%v", *c.Max))
		}
	}

	return strings.Join(parts, ",")
}

// normalizeNumeric widens all integer flavors to float64 so a single
// min/max tag covers values arriving as int, int64, or float64 (YAML
// and TOML decoders disagree on which one they produce).
func normalizeNumeric(value any) any {
	switch v := value.(type) {
	case int:
		return float64(v)
	case int8:
		return float64(v)
	case int16:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case uint:
		return float64(v)
	case uint8:
		return float64(v)
	case uint16:
		return float64(v)
	case uint32:
		return float64(v)
	case uint64:
		return float64(v)
	case float32:
		return float64(v)
	default:
		return value
	}
}
