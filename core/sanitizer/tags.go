package sanitizer

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// ErrInvalidTarget is returned when SanitizeStruct is not given a struct pointer.
var ErrInvalidTarget = errors.New("sanitizer: must pass a pointer to struct")

var (
	registryMu sync.RWMutex
	registry   = map[string]func(string) string{
		"trim":        Trim,
		"lower":       ToLower,
		"trim_lower":  TrimToLower,
		"single_line": SingleLine,
		"no_spaces":   RemoveExtraWhitespace,
		"no_control":  RemoveControlChars,
		"strip_html":  StripHTML,
		"email":       NormalizeEmail,
		"lines":       NormalizeLines,

		"text": func(s string) string {
			return SingleLine(StripHTML(s))
		},
	}
)

// RegisterSanitizer adds or replaces a named sanitizer.
func RegisterSanitizer(name string, fn func(string) string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = fn
}

// SanitizeStruct rewrites the tagged fields of the struct v points to.
func SanitizeStruct(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrInvalidTarget
	}
	sanitizeStructRecursive(rv.Elem())
	return nil
}

func sanitizeStructRecursive(rv reflect.Value) {
	rt := rv.Type()
	for i := range rv.NumField() {
		field := rv.Field(i)
		if !field.CanSet() {
			continue
		}
		tag := rt.Field(i).Tag.Get("sanitize")
		if tag == "-" {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			if tag != "" {
				field.SetString(apply(field.String(), tag))
			}
		case reflect.Pointer:
			if field.IsNil() {
				continue
			}
			elem := field.Elem()
			switch {
			case elem.Kind() == reflect.String && tag != "":
				elem.SetString(apply(elem.String(), tag))
			case elem.Kind() == reflect.Struct:
				sanitizeStructRecursive(elem)
			}
		case reflect.Struct:
			sanitizeStructRecursive(field)
		case reflect.Slice:
			if tag != "" && field.Type().Elem().Kind() == reflect.String {
				for j := range field.Len() {
					el := field.Index(j)
					el.SetString(apply(el.String(), tag))
				}
			}
		}
	}
}

func apply(value, tag string) string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for name := range strings.SplitSeq(tag, ",") {
		name = strings.TrimSpace(name)
		if n, ok := strings.CutPrefix(name, "max:"); ok {
			if limit, err := strconv.Atoi(n); err == nil && limit > 0 {
				value = MaxLength(value, limit)
			}
			continue
		}
		if fn, ok := registry[name]; ok {
			value = fn(value)
		}
	}
	return value
}
