package binder

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"
)

var textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

func structValue(v any, bindErr error) (reflect.Value, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return reflect.Value{}, fmt.Errorf("%w: target must be a non-nil pointer", bindErr)
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%w: target must be a pointer to struct", bindErr)
	}
	return rv, nil
}

// tagName returns the parameter name of a struct tag, or "" when the tag is
// absent or set to "-". Options after a comma are ignored.
func tagName(sf reflect.StructField, key string) string {
	name, _, _ := strings.Cut(sf.Tag.Get(key), ",")
	if name == "-" {
		return ""
	}
	return name
}

func setFieldValue(field reflect.Value, typ reflect.Type, values []string) error {
	if reflect.PointerTo(typ).Implements(textUnmarshalerType) {
		u := field.Addr().Interface().(encoding.TextUnmarshaler)
		if err := u.UnmarshalText([]byte(strings.TrimSpace(values[0]))); err != nil {
			return fmt.Errorf("invalid %v value %q: %w", typ, values[0], err)
		}
		return nil
	}

	switch typ.Kind() {
	case reflect.Pointer:
		if field.IsNil() {
			field.Set(reflect.New(typ.Elem()))
		}
		return setFieldValue(field.Elem(), typ.Elem(), values)
	case reflect.Slice:
		return setSliceValue(field, typ, values)
	}

	value := values[0]
	switch typ.Kind() {
	case reflect.String:
		field.SetString(cleanString(value))

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, typ.Bits())
		if err != nil {
			return fmt.Errorf("invalid int value %q", value)
		}
		field.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, typ.Bits())
		if err != nil {
			return fmt.Errorf("invalid uint value %q", value)
		}
		field.SetUint(n)

	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(value, typ.Bits())
		if err != nil {
			return fmt.Errorf("invalid float value %q", value)
		}
		field.SetFloat(n)

	case reflect.Bool:
		b, err := parseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("unsupported type %s", typ.Kind())
	}

	return nil
}

// setSliceValue accepts repeated fields as well as comma separated values.
func setSliceValue(field reflect.Value, typ reflect.Type, values []string) error {
	var items []string
	for _, v := range values {
		items = append(items, strings.Split(v, ",")...)
	}

	slice := reflect.MakeSlice(typ, len(items), len(items))
	for i, item := range items {
		if err := setFieldValue(slice.Index(i), typ.Elem(), []string{strings.TrimSpace(item)}); err != nil {
			return err
		}
	}
	field.Set(slice)
	return nil
}

func parseBool(value string) (bool, error) {
	if b, err := strconv.ParseBool(value); err == nil {
		return b, nil
	}
	switch strings.ToLower(value) {
	case "on", "yes":
		return true, nil
	case "off", "no", "":
		return false, nil
	}
	return false, fmt.Errorf("invalid bool value %q", value)
}

// cleanString drops NUL bytes, line breaks and other control characters.
// Tabs and surrounding spaces are kept.
func cleanString(value string) string {
	return strings.Map(func(r rune) rune {
		if r == '\t' || !unicode.IsControl(r) {
			if r == unicode.ReplacementChar {
				return -1
			}
			return r
		}
		return -1
	}, value)
}
