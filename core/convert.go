package core

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// ToFloat coerces the numeric flavors a step value can arrive as into
// a float64. Strings are parsed so manually set inputs behave like
// connected ones.
func ToFloat(v any) (float64, error) {
	switch c := v.(type) {
	case float64:
		return c, nil
	case float32:
		return float64(c), nil
	case int:
		return float64(c), nil
	case int32:
		return float64(c), nil
	case int64:
		return float64(c), nil
	case uint:
		return float64(c), nil
	case uint64:
		return float64(c), nil
	case bool:
		if c {
			return 1, nil
		}
		return 0, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(c), 64)
		if err != nil {
			return 0, CreateErr(nil, "unable to convert string '%s' to a number", c)
		}
		return f, nil
	default:
		return 0, CreateErr(nil, "cannot convert '%T' to a number", v)
	}
}

func ToInt(v any) (int, error) {
	f, err := ToFloat(v)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

func ToString(v any) (string, error) {
	switch c := v.(type) {
	case string:
		return c, nil
	case nil:
		return "", CreateErr(nil, "cannot convert nil to string")
	default:
		return fmt.Sprintf("%v", c), nil
	}
}

// ToList accepts any slice kind and returns it as []any.
func ToList(v any) ([]any, error) {
	if c, ok := v.([]any); ok {
		return c, nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return nil, CreateErr(nil, "cannot convert '%T' to a list", v)
	}

	out := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = rv.Index(i).Interface()
	}
	return out, nil
}

func ToDict(v any) (map[string]any, error) {
	if c, ok := v.(map[string]any); ok {
		return c, nil
	}
	return nil, CreateErr(nil, "cannot convert '%T' to a dict", v)
}
