package web

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/dmitrymomot/panelhouse/core/sanitizer"
	"github.com/dmitrymomot/panelhouse/core/validator"
	"github.com/dmitrymomot/panelhouse/integration/contentapi"
	"github.com/dmitrymomot/panelhouse/pkg/format"
	"github.com/dmitrymomot/panelhouse/pkg/slug"
	"github.com/dmitrymomot/panelhouse/web/views"
)

const maxSlugLen = 80

func comicForm(c contentapi.Comic) views.ComicForm {
	return views.ComicForm{
		ID:          c.ID,
		Title:       c.Title,
		Slug:        c.Slug,
		Description: c.Description,
		Author:      c.Author,
		Cover:       c.Cover,
		Tags:        strings.Join(c.Tags, ", "),
		Published:   c.Status == contentapi.StatusPublished,
		Preferred:   string(c.Format.Preferred.Normalize()),
		PDF:         c.Format.PDF,
		Images:      strings.Join(c.Format.Images, "\n"),
		TierLow:     strings.Join(c.Format.QualityTiers[format.TierLow], "\n"),
		TierMedium:  strings.Join(c.Format.QualityTiers[format.TierMedium], "\n"),
		TierHigh:    strings.Join(c.Format.QualityTiers[format.TierHigh], "\n"),
	}
}

func init() {
	validator.RegisterValidator("slug", func(field string, value reflect.Value, _ []string) validator.Rule {
		return validator.Rule{
			Check: func() bool {
				return value.Kind() != reflect.String || value.String() == "" || slug.Valid(value.String())
			},
			Error: validator.ValidationError{
				Field:          field,
				Message:        "may contain lowercase letters, digits and dashes only",
				TranslationKey: "validation.slug",
			},
		}
	})
}

// comicFromForm normalizes and validates the editor input in place. The
// returned map holds field errors for the editor.
func comicFromForm(f *views.ComicForm) (contentapi.Comic, map[string]string) {
	if err := sanitizer.SanitizeStruct(f); err != nil {
		return contentapi.Comic{}, map[string]string{"form": err.Error()}
	}
	if f.Slug == "" {
		f.Slug = slug.Make(f.Title, slug.MaxLength(maxSlugLen))
	}
	errs := validationErrors(validator.ValidateStruct(f))

	c := contentapi.Comic{
		Title:       f.Title,
		Slug:        f.Slug,
		Description: f.Description,
		Author:      f.Author,
		Cover:       f.Cover,
		Tags:        splitTags(f.Tags),
		Status:      status(f.Published),
		Format: format.Manifest{
			PDF:       f.PDF,
			Images:    lines(f.Images),
			Preferred: format.Preference(f.Preferred).Normalize(),
		},
	}
	tiers := map[format.Tier][]string{}
	for tier, refs := range map[format.Tier]string{
		format.TierLow:    f.TierLow,
		format.TierMedium: f.TierMedium,
		format.TierHigh:   f.TierHigh,
	} {
		if l := lines(refs); len(l) > 0 {
			tiers[tier] = l
		}
	}
	if len(tiers) > 0 {
		c.Format.QualityTiers = tiers
	}

	if err := c.Format.Validate(); err != nil {
		// Drafts may be saved without pages.
		if c.Status == contentapi.StatusPublished || !onlyNothingToRender(err) {
			errs["format"] = strings.ReplaceAll(err.Error(), "\n", "; ")
		}
	}
	return c, errs
}

func onlyNothingToRender(err error) bool {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		errs := joined.Unwrap()
		return len(errs) == 1 && errors.Is(errs[0], format.ErrNothingToRender)
	}
	return errors.Is(err, format.ErrNothingToRender)
}

func postForm(p contentapi.Post) views.PostForm {
	return views.PostForm{
		ID:        p.ID,
		Title:     p.Title,
		Slug:      p.Slug,
		Excerpt:   p.Excerpt,
		Cover:     p.Cover,
		Tags:      strings.Join(p.Tags, ", "),
		Published: p.Status == contentapi.StatusPublished,
		Body:      p.Body,
	}
}

// postFromForm normalizes and validates the editor input in place. Empty
// title, excerpt, cover and tags are taken from the body's front matter.
func (a *App) postFromForm(f *views.PostForm) (contentapi.Post, map[string]string) {
	if err := sanitizer.SanitizeStruct(f); err != nil {
		return contentapi.Post{}, map[string]string{"form": err.Error()}
	}
	doc, compileErr := a.compiler.Compile([]byte(f.Body))
	var metaTags []string
	if compileErr == nil {
		if f.Title == "" {
			f.Title = sanitizer.SingleLine(doc.Meta.Title)
		}
		if f.Excerpt == "" {
			f.Excerpt = sanitizer.SingleLine(doc.Meta.Description)
		}
		if f.Cover == "" {
			f.Cover = sanitizer.Trim(doc.Meta.Cover)
		}
		metaTags = doc.Meta.Tags
	}
	if f.Slug == "" {
		f.Slug = slug.Make(f.Title, slug.MaxLength(maxSlugLen))
	}
	errs := validationErrors(validator.ValidateStruct(f))

	p := contentapi.Post{
		Title:   f.Title,
		Slug:    f.Slug,
		Excerpt: f.Excerpt,
		Cover:   f.Cover,
		Tags:    splitTags(f.Tags),
		Status:  status(f.Published),
		Body:    f.Body,
	}
	if len(p.Tags) == 0 {
		p.Tags = metaTags
	}
	switch {
	case compileErr != nil:
		errs["body"] = compileErr.Error()
	case strings.TrimSpace(p.Body) == "" && p.Status == contentapi.StatusPublished:
		errs["body"] = "is required to publish"
	}
	return p, errs
}

// validationErrors keys the first message per field by its lowercased name.
func validationErrors(err error) map[string]string {
	out := map[string]string{}
	for _, e := range validator.ExtractValidationErrors(err) {
		key := strings.ToLower(e.Field)
		if _, ok := out[key]; !ok {
			out[key] = e.Message
		}
	}
	if err != nil && len(out) == 0 {
		out["form"] = err.Error()
	}
	return out
}

// fieldErrors extracts the content API's field errors, if any.
func fieldErrors(err error) map[string]string {
	var apiErr *contentapi.APIError
	if !errors.As(err, &apiErr) {
		return nil
	}
	out := make(map[string]string, len(apiErr.Fields)+1)
	for k, v := range apiErr.Fields {
		out[k] = fmt.Sprint(v)
	}
	if len(out) == 0 {
		out["form"] = apiMessage(err, "was rejected")
	}
	return out
}

func status(published bool) string {
	if published {
		return contentapi.StatusPublished
	}
	return contentapi.StatusDraft
}

func splitTags(s string) []string {
	var out []string
	for t := range strings.SplitSeq(s, ",") {
		if t = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(t), "#")); t != "" {
			out = append(out, strings.ToLower(t))
		}
	}
	return out
}

func lines(s string) []string {
	var out []string
	for l := range strings.Lines(s) {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
