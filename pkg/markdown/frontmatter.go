package markdown

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnterminatedFrontMatter = errors.New("markdown: front matter is not terminated")
	ErrInvalidFrontMatter      = errors.New("markdown: invalid front matter")
)

// Meta is the post front matter.
type Meta struct {
	Title       string    `yaml:"title" json:"title"`
	Description string    `yaml:"description" json:"description,omitempty"`
	Date        time.Time `yaml:"date" json:"date,omitzero"`
	Tags        []string  `yaml:"tags" json:"tags,omitempty"`
	Draft       bool      `yaml:"draft" json:"draft,omitempty"`
	Cover       string    `yaml:"cover" json:"cover,omitempty"`
}

var fence = []byte("---")

// splitFrontMatter separates a leading "---" delimited YAML block from the body.
// Sources without one are returned unchanged with zero Meta.
func splitFrontMatter(src []byte) (Meta, []byte, error) {
	src = bytes.TrimPrefix(src, []byte("\xef\xbb\xbf"))
	src = bytes.ReplaceAll(src, []byte("\r\n"), []byte("\n"))

	var meta Meta
	first, rest, _ := bytes.Cut(src, []byte("\n"))
	if !bytes.Equal(bytes.TrimSpace(first), fence) {
		return meta, src, nil
	}

	var header []byte
	for {
		line, tail, found := bytes.Cut(rest, []byte("\n"))
		if bytes.Equal(bytes.TrimSpace(line), fence) {
			rest = tail
			break
		}
		if !found {
			return meta, nil, ErrUnterminatedFrontMatter
		}
		header = append(append(header, line...), '\n')
		rest = tail
	}

	if err := yaml.Unmarshal(header, &meta); err != nil {
		return meta, nil, fmt.Errorf("%w: %v", ErrInvalidFrontMatter, err)
	}
	return meta, rest, nil
}
