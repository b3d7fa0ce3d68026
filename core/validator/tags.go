package validator

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// ValidatorFunc builds the rule for one tagged field.
type ValidatorFunc func(field string, value reflect.Value, params []string) Rule

var (
	registryMu sync.RWMutex
	registry   = map[string]ValidatorFunc{
		"required": requiredValidator,
		"min":      minValidator,
		"max":      maxValidator,
		"email":    stringValidator(ValidEmail),
		"url":      stringValidator(ValidURL),
		"in":       inValidator,
		"regex":    regexValidator,
	}
)

// RegisterValidator adds or replaces a named rule.
func RegisterValidator(name string, fn ValidatorFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = fn
}

// ValidateStruct checks the exported fields of the struct v points to.
// Nested structs without a tag are walked; fields tagged "-" are skipped.
func ValidateStruct(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrInvalidTarget
	}

	var errs ValidationErrors
	validateStructRecursive(rv.Elem(), "", &errs)
	if errs.IsEmpty() {
		return nil
	}
	return errs
}

func validateStructRecursive(rv reflect.Value, prefix string, errs *ValidationErrors) {
	rt := rv.Type()
	for i := range rv.NumField() {
		field := rv.Field(i)
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag := sf.Tag.Get("validate")
		if tag == "-" {
			continue
		}
		path := sf.Name
		if prefix != "" {
			path = prefix + "." + sf.Name
		}

		if field.Kind() == reflect.Pointer {
			if field.IsNil() {
				if tag != "" {
					validateField(path, field, tag, errs)
				}
				continue
			}
			field = field.Elem()
		}
		switch {
		case field.Kind() == reflect.Struct && tag == "":
			validateStructRecursive(field, path, errs)
		case tag != "":
			validateField(path, field, tag, errs)
		}
	}
}

func validateField(path string, field reflect.Value, tag string, errs *ValidationErrors) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for raw := range strings.SplitSeq(tag, ";") {
		name, paramStr, _ := strings.Cut(strings.TrimSpace(raw), ":")
		if name == "" {
			continue
		}
		var params []string
		if paramStr = strings.TrimSpace(paramStr); paramStr != "" {
			for p := range strings.SplitSeq(paramStr, ",") {
				params = append(params, strings.TrimSpace(p))
			}
		}
		fn, ok := registry[name]
		if !ok {
			continue
		}
		if rule := fn(path, field, params); rule.Check != nil && !rule.Check() {
			errs.Add(rule.Error)
		}
	}
}

func stringValidator(build func(field, value string) Rule) ValidatorFunc {
	return func(field string, value reflect.Value, _ []string) Rule {
		if value.Kind() != reflect.String {
			return pass()
		}
		return build(field, value.String())
	}
}

func requiredValidator(field string, value reflect.Value, _ []string) Rule {
	if value.Kind() == reflect.String {
		return RequiredString(field, value.String())
	}
	return Rule{
		Check: func() bool {
			switch value.Kind() {
			case reflect.Slice, reflect.Map, reflect.Array:
				return value.Len() > 0
			case reflect.Pointer, reflect.Interface:
				return !value.IsNil()
			default:
				return !value.IsZero()
			}
		},
		Error: ValidationError{
			Field:             field,
			Message:           "is required",
			TranslationKey:    "validation.required",
			TranslationValues: map[string]any{"field": field},
		},
	}
}

func minValidator(field string, value reflect.Value, params []string) Rule {
	if len(params) < 1 {
		return pass()
	}
	switch value.Kind() {
	case reflect.String:
		n, _ := strconv.Atoi(params[0])
		return MinLenString(field, value.String(), n)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, _ := strconv.ParseInt(params[0], 10, 64)
		return bound(field, value.Int() >= n, fmt.Sprintf("must be at least %d", n), "validation.min", n)
	case reflect.Slice, reflect.Array:
		n, _ := strconv.Atoi(params[0])
		return bound(field, value.Len() >= n, fmt.Sprintf("must have at least %d items", n), "validation.min_items", n)
	default:
		return pass()
	}
}

func maxValidator(field string, value reflect.Value, params []string) Rule {
	if len(params) < 1 {
		return pass()
	}
	switch value.Kind() {
	case reflect.String:
		n, _ := strconv.Atoi(params[0])
		return MaxLenString(field, value.String(), n)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, _ := strconv.ParseInt(params[0], 10, 64)
		return bound(field, value.Int() <= n, fmt.Sprintf("must be at most %d", n), "validation.max", n)
	case reflect.Slice, reflect.Array:
		n, _ := strconv.Atoi(params[0])
		return bound(field, value.Len() <= n, fmt.Sprintf("must have at most %d items", n), "validation.max_items", n)
	default:
		return pass()
	}
}

func bound[N int | int64](field string, ok bool, msg, key string, n N) Rule {
	return Rule{
		Check: func() bool { return ok },
		Error: ValidationError{
			Field:             field,
			Message:           msg,
			TranslationKey:    key,
			TranslationValues: map[string]any{"field": field, "limit": n},
		},
	}
}

func inValidator(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String {
		return pass()
	}
	return InList(field, value.String(), params)
}

// regexValidator takes the pattern and an optional description. The pattern
// cannot contain commas or semicolons.
func regexValidator(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String || len(params) < 1 {
		return pass()
	}
	desc := "pattern"
	if len(params) > 1 && params[1] != "" {
		desc = params[1]
	}
	return MatchesRegex(field, value.String(), params[0], desc)
}
