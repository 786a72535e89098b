package utils

import (
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// MarshalSafe renders v as JSON. Unlike encoding/json it does not fail on
// self-referential values: when a cycle is detected the repeated reference is
// replaced with null and encoding continues. Acyclic values encode exactly as
// json.Marshal would.
func MarshalSafe(v interface{}) ([]byte, error) {
	data, err := json.Marshal(v)
	if err == nil {
		return data, nil
	}

	var unsupported *json.UnsupportedValueError
	if !errors.As(err, &unsupported) {
		return nil, err
	}

	return json.Marshal(sanitize(reflect.ValueOf(v), map[uintptr]bool{}))
}

// sanitize rebuilds v as plain maps, slices and scalars, dropping any pointer
// already present on the current path. Custom marshalers are honored so leaf
// types such as time.Time keep their shape. Embedded structs are rendered as
// nested objects and omitempty is not emulated; those only matter for values
// that already failed plain encoding.
func sanitize(v reflect.Value, seen map[uintptr]bool) interface{} {
	if !v.IsValid() {
		return nil
	}

	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if v.IsNil() {
			return nil
		}
	}

	if v.CanInterface() {
		switch m := v.Interface().(type) {
		case json.Marshaler:
			if data, err := m.MarshalJSON(); err == nil {
				return json.RawMessage(data)
			}
		case encoding.TextMarshaler:
			if text, err := m.MarshalText(); err == nil {
				return string(text)
			}
		}
	}

	switch v.Kind() {
	case reflect.Ptr:
		ptr := v.Pointer()
		if seen[ptr] {
			return nil
		}
		seen[ptr] = true
		defer delete(seen, ptr)
		return sanitize(v.Elem(), seen)

	case reflect.Interface:
		return sanitize(v.Elem(), seen)

	case reflect.Map:
		ptr := v.Pointer()
		if seen[ptr] {
			return nil
		}
		seen[ptr] = true
		defer delete(seen, ptr)

		out := make(map[string]interface{}, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = sanitize(iter.Value(), seen)
		}
		return out

	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return v.Bytes()
		}

		ptr := v.Pointer()
		if seen[ptr] {
			return nil
		}
		seen[ptr] = true
		defer delete(seen, ptr)

		out := make([]interface{}, v.Len())
		for i := range out {
			out[i] = sanitize(v.Index(i), seen)
		}
		return out

	case reflect.Array:
		out := make([]interface{}, v.Len())
		for i := range out {
			out[i] = sanitize(v.Index(i), seen)
		}
		return out

	case reflect.Struct:
		t := v.Type()
		out := make(map[string]interface{}, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if field.PkgPath != "" {
				continue // unexported
			}
			name := jsonFieldName(field)
			if name == "-" {
				continue
			}
			out[name] = sanitize(v.Field(i), seen)
		}
		return out

	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return nil

	default:
		if v.CanInterface() {
			return v.Interface()
		}
		return nil
	}
}

func jsonFieldName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" {
		return field.Name
	}
	name := tag
	if idx := strings.Index(tag, ","); idx >= 0 {
		name = tag[:idx]
	}
	if name == "" {
		return field.Name
	}
	return name
}
