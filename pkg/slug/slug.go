package slug

import (
	"crypto/rand"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

var (
	validRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

	// Letters NFD does not decompose into a base letter.
	transliterations = map[rune]string{
		'ß': "ss", 'ẞ': "SS",
		'æ': "ae", 'Æ': "AE",
		'œ': "oe", 'Œ': "OE",
		'ø': "o", 'Ø': "O",
		'đ': "d", 'Đ': "D",
		'ł': "l", 'Ł': "L",
		'þ': "th", 'Þ': "TH",
		'ı': "i",
	}
)

type options struct {
	separator  string
	maxLength  int
	suffix     int
	lowercase  bool
	replace    map[string]string
	stripChars string
}

// Option configures Make.
type Option func(*options)

// Separator sets the word separator. Default "-".
func Separator(sep string) Option {
	return func(o *options) { o.separator = sep }
}

// MaxLength limits the slug length in runes, suffix included. Words are not
// cut in half when a shorter prefix ends on a word boundary.
func MaxLength(n int) Option {
	return func(o *options) { o.maxLength = n }
}

// WithSuffix appends n random lowercase alphanumerics.
func WithSuffix(n int) Option {
	return func(o *options) { o.suffix = n }
}

// Lowercase toggles lowercasing. Default true.
func Lowercase(v bool) Option {
	return func(o *options) { o.lowercase = v }
}

// CustomReplace substitutes substrings before normalization.
func CustomReplace(m map[string]string) Option {
	return func(o *options) { o.replace = m }
}

// StripChars removes the given characters without leaving a separator.
func StripChars(chars string) Option {
	return func(o *options) { o.stripChars = chars }
}

// Make converts s into a slug.
func Make(s string, opts ...Option) string {
	o := options{separator: "-", lowercase: true}
	for _, opt := range opts {
		opt(&o)
	}

	for from, to := range o.replace {
		s = strings.ReplaceAll(s, from, " "+to+" ")
	}
	if o.stripChars != "" {
		s = strings.Map(func(r rune) rune {
			if strings.ContainsRune(o.stripChars, r) {
				return -1
			}
			return r
		}, s)
	}

	s = fold(s)
	if o.lowercase {
		s = strings.ToLower(s)
	}

	words := strings.FieldsFunc(s, func(r rune) bool {
		return r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r))
	})
	out := strings.Join(words, o.separator)

	var suffix string
	if o.suffix > 0 {
		suffix = randomSuffix(o.suffix)
	}
	if o.maxLength > 0 {
		limit := o.maxLength
		if suffix != "" {
			limit -= len(suffix) + len(o.separator)
		}
		out = truncate(out, o.separator, limit)
	}
	if suffix != "" {
		if out == "" {
			return suffix
		}
		return out + o.separator + suffix
	}
	return out
}

// Valid reports whether s is a lowercase, dash separated slug.
func Valid(s string) bool {
	return validRe.MatchString(s)
}

func fold(s string) string {
	var b strings.Builder
	for _, r := range s {
		if t, ok := transliterations[r]; ok {
			b.WriteString(t)
			continue
		}
		b.WriteRune(r)
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, b.String())
	if err != nil {
		return b.String()
	}
	return folded
}

func truncate(s, sep string, limit int) string {
	if limit <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	cut := string(r[:limit])
	if sep != "" && !strings.HasPrefix(string(r[limit:]), sep) {
		if i := strings.LastIndex(cut, sep); i > 0 {
			cut = cut[:i]
		}
	}
	return strings.TrimSuffix(cut, sep)
}

func randomSuffix(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic("slug: crypto/rand failed: " + err.Error())
	}
	for i, b := range buf {
		buf[i] = suffixAlphabet[int(b)%len(suffixAlphabet)]
	}
	return string(buf)
}
