package validator

import (
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"slices"
	"strings"
	"sync"
	"unicode/utf8"
)

// Rule pairs a check with the error reported when it fails.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// Apply runs rules and returns ValidationErrors for the failed ones, or nil.
func Apply(rules ...Rule) error {
	var errs ValidationErrors
	for _, r := range rules {
		if r.Check != nil && !r.Check() {
			errs.Add(r.Error)
		}
	}
	if errs.IsEmpty() {
		return nil
	}
	return errs
}

func pass() Rule { return Rule{Check: func() bool { return true }} }

// RequiredString fails on empty or whitespace-only values.
func RequiredString(field, value string) Rule {
	return Rule{
		Check: func() bool { return strings.TrimSpace(value) != "" },
		Error: ValidationError{
			Field:             field,
			Message:           "is required",
			TranslationKey:    "validation.required",
			TranslationValues: map[string]any{"field": field},
		},
	}
}

// MinLenString fails when value has fewer than n characters.
func MinLenString(field, value string, n int) Rule {
	return Rule{
		Check: func() bool { return value == "" || utf8.RuneCountInString(value) >= n },
		Error: ValidationError{
			Field:             field,
			Message:           fmt.Sprintf("must be at least %d characters long", n),
			TranslationKey:    "validation.min_length",
			TranslationValues: map[string]any{"field": field, "min": n},
		},
	}
}

// MaxLenString fails when value has more than n characters.
func MaxLenString(field, value string, n int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) <= n },
		Error: ValidationError{
			Field:             field,
			Message:           fmt.Sprintf("must be at most %d characters long", n),
			TranslationKey:    "validation.max_length",
			TranslationValues: map[string]any{"field": field, "max": n},
		},
	}
}

// ValidEmail fails on values that are not a bare address.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if value == "" {
				return true
			}
			addr, err := mail.ParseAddress(value)
			return err == nil && addr.Address == value
		},
		Error: ValidationError{
			Field:             field,
			Message:           "must be a valid email address",
			TranslationKey:    "validation.email",
			TranslationValues: map[string]any{"field": field},
		},
	}
}

// ValidURL fails on values that are not absolute http or https URLs.
func ValidURL(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if value == "" {
				return true
			}
			u, err := url.Parse(value)
			return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
		},
		Error: ValidationError{
			Field:             field,
			Message:           "must be a valid URL",
			TranslationKey:    "validation.url",
			TranslationValues: map[string]any{"field": field},
		},
	}
}

// InList fails when value is not one of allowed.
func InList(field, value string, allowed []string) Rule {
	return Rule{
		Check: func() bool { return value == "" || slices.Contains(allowed, value) },
		Error: ValidationError{
			Field:             field,
			Message:           "must be one of " + strings.Join(allowed, ", "),
			TranslationKey:    "validation.in",
			TranslationValues: map[string]any{"field": field, "values": allowed},
		},
	}
}

var (
	patternsMu sync.Mutex
	patterns   = map[string]*regexp.Regexp{}
)

func compiled(pattern string) (*regexp.Regexp, error) {
	patternsMu.Lock()
	defer patternsMu.Unlock()
	if re, ok := patterns[pattern]; ok {
		return re, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	patterns[pattern] = re
	return re, nil
}

// MatchesRegex fails when value does not match pattern. An invalid pattern
// fails every non-empty value.
func MatchesRegex(field, value, pattern, description string) Rule {
	return Rule{
		Check: func() bool {
			if value == "" {
				return true
			}
			re, err := compiled(pattern)
			return err == nil && re.MatchString(value)
		},
		Error: ValidationError{
			Field:             field,
			Message:           "must match " + description,
			TranslationKey:    "validation.regex",
			TranslationValues: map[string]any{"field": field, "pattern": description},
		},
	}
}
