package binder

import (
	"fmt"
	"mime/multipart"
	"reflect"
	"strconv"
	"strings"
	"unicode"
)

var (
	fileHeaderType  = reflect.TypeFor[*multipart.FileHeader]()
	fileHeadersType = reflect.TypeFor[[]*multipart.FileHeader]()
)

type fieldTag struct {
	name string
	raw  bool
	skip bool
}

func parseTag(f reflect.StructField, key string) fieldTag {
	tag, ok := f.Tag.Lookup(key)
	if !ok {
		return fieldTag{skip: true}
	}
	name, opts, _ := strings.Cut(tag, ",")
	if name == "-" || name == "" {
		return fieldTag{skip: true}
	}
	return fieldTag{name: name, raw: opts == "raw"}
}

func bindValues(v any, key string, values map[string][]string, files map[string][]*multipart.FileHeader, bindErr error) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: %w", bindErr, ErrInvalidTarget)
	}
	rv = rv.Elem()
	rt := rv.Type()

	for i := range rt.NumField() {
		sf := rt.Field(i)
		field := rv.Field(i)
		if !field.CanSet() {
			continue
		}

		if ft := parseTag(sf, "file"); !ft.skip && files != nil {
			if err := setFiles(field, sanitizeFiles(files[ft.name])); err != nil {
				return fmt.Errorf("%w: field %s: %v", bindErr, sf.Name, err)
			}
			continue
		}

		tag := parseTag(sf, key)
		if tag.skip {
			continue
		}
		vals, ok := values[tag.name]
		if !ok || len(vals) == 0 {
			continue
		}
		if err := setField(field, vals, tag.raw); err != nil {
			return fmt.Errorf("%w: field %s: %v", bindErr, sf.Name, err)
		}
	}
	return nil
}

func setFiles(field reflect.Value, headers []*multipart.FileHeader) error {
	if len(headers) == 0 {
		return nil
	}
	switch field.Type() {
	case fileHeaderType:
		field.Set(reflect.ValueOf(headers[0]))
	case fileHeadersType:
		field.Set(reflect.ValueOf(headers))
	default:
		return fmt.Errorf("unsupported file field type %s", field.Type())
	}
	return nil
}

func setField(field reflect.Value, vals []string, raw bool) error {
	switch field.Kind() {
	case reflect.Pointer:
		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}
		return setField(field.Elem(), vals, raw)

	case reflect.Slice:
		var items []string
		for _, v := range vals {
			for _, part := range strings.Split(v, ",") {
				if part = strings.TrimSpace(part); part != "" {
					items = append(items, part)
				}
			}
		}
		slice := reflect.MakeSlice(field.Type(), len(items), len(items))
		for i, item := range items {
			if err := setScalar(slice.Index(i), item, false); err != nil {
				return err
			}
		}
		field.Set(slice)
		return nil
	}
	return setScalar(field, vals[0], raw)
}

func setScalar(field reflect.Value, value string, raw bool) error {
	switch field.Kind() {
	case reflect.String:
		if raw {
			field.SetString(strings.ReplaceAll(value, "\x00", ""))
		} else {
			field.SetString(sanitizeString(value))
		}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if value == "" {
			return nil
		}
		n, err := strconv.ParseInt(strings.TrimSpace(value), 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid int value %q", value)
		}
		field.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if value == "" {
			return nil
		}
		n, err := strconv.ParseUint(strings.TrimSpace(value), 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid uint value %q", value)
		}
		field.SetUint(n)

	case reflect.Float32, reflect.Float64:
		if value == "" {
			return nil
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(value), field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid float value %q", value)
		}
		field.SetFloat(n)

	case reflect.Bool:
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "1", "true", "on", "yes":
			field.SetBool(true)
		case "", "0", "false", "off", "no":
			field.SetBool(false)
		default:
			return fmt.Errorf("invalid bool value %q", value)
		}

	default:
		return fmt.Errorf("unsupported type %s", field.Kind())
	}
	return nil
}

// sanitizeString drops line breaks and control characters from single-line input.
func sanitizeString(value string) string {
	return strings.Map(func(r rune) rune {
		if r == '\t' || !unicode.IsControl(r) {
			return r
		}
		return -1
	}, value)
}
