package format

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Preference is the publisher's preferred representation.
type Preference string

const (
	PreferPDF    Preference = "pdf"
	PreferImages Preference = "images"
	PreferAuto   Preference = "auto"
)

// Normalize maps empty and unknown values to PreferAuto.
func (p Preference) Normalize() Preference {
	switch Preference(strings.ToLower(strings.TrimSpace(string(p)))) {
	case PreferPDF:
		return PreferPDF
	case PreferImages:
		return PreferImages
	}
	return PreferAuto
}

// Tier is an image quality level.
type Tier string

const (
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
)

// Tiers lists every tier from lowest to highest.
var Tiers = []Tier{TierLow, TierMedium, TierHigh}

// Valid reports whether t is a known tier.
func (t Tier) Valid() bool {
	switch t {
	case TierLow, TierMedium, TierHigh:
		return true
	}
	return false
}

// Manifest lists the representations available for one comic.
type Manifest struct {
	PDF          string            `json:"pdf,omitempty"`
	Images       []string          `json:"images,omitempty"`
	Preferred    Preference        `json:"preferredFormat"`
	QualityTiers map[Tier][]string `json:"qualityTiers,omitempty"`
}

// HasPDF reports whether a document reference is present.
func (m Manifest) HasPDF() bool {
	return strings.TrimSpace(m.PDF) != ""
}

// HasImages reports whether any non-empty image sequence is present. Images
// count as absent only when the flat sequence and every quality tier are
// empty, so a manifest with tiers alone is renderable.
func (m Manifest) HasImages() bool {
	if len(m.Images) > 0 {
		return true
	}
	for _, refs := range m.QualityTiers {
		if len(refs) > 0 {
			return true
		}
	}
	return false
}

var (
	ErrUnknownPreference = errors.New("format: unknown preferred format")
	ErrPreferredMissing  = errors.New("format: preferred format has no content")
	ErrUnknownTier       = errors.New("format: unknown quality tier")
	ErrEmptyReference    = errors.New("format: empty reference")
	ErrNothingToRender   = errors.New("format: manifest has neither pdf nor images")
)

// Validate reports manifest problems worth surfacing to editors. Select never
// calls it and accepts manifests that fail it.
func (m Manifest) Validate() error {
	var errs []error

	switch Preference(strings.ToLower(strings.TrimSpace(string(m.Preferred)))) {
	case PreferPDF, PreferImages, PreferAuto, "":
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownPreference, m.Preferred))
	}

	if !m.HasPDF() && !m.HasImages() {
		errs = append(errs, ErrNothingToRender)
	} else {
		switch m.Preferred.Normalize() {
		case PreferPDF:
			if !m.HasPDF() {
				errs = append(errs, fmt.Errorf("%w: pdf", ErrPreferredMissing))
			}
		case PreferImages:
			if !m.HasImages() {
				errs = append(errs, fmt.Errorf("%w: images", ErrPreferredMissing))
			}
		}
	}

	for i, ref := range m.Images {
		if strings.TrimSpace(ref) == "" {
			errs = append(errs, fmt.Errorf("%w: images[%d]", ErrEmptyReference, i))
		}
	}
	for _, tier := range slices.Sorted(maps.Keys(m.QualityTiers)) {
		refs := m.QualityTiers[tier]
		if !tier.Valid() {
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownTier, tier))
			continue
		}
		for i, ref := range refs {
			if strings.TrimSpace(ref) == "" {
				errs = append(errs, fmt.Errorf("%w: qualityTiers.%s[%d]", ErrEmptyReference, tier, i))
			}
		}
	}

	return errors.Join(errs...)
}
