package format

import (
	"errors"
	"slices"

	"github.com/dmitrymomot/panelhouse/pkg/device"
)

// Kind is the shape of a selection result.
type Kind string

const (
	KindPDF         Kind = "pdf"
	KindImages      Kind = "images"
	KindUnavailable Kind = "unavailable"
)

// ErrNoRenderableContent is reported by Selection.Err for unavailable results.
var ErrNoRenderableContent = errors.New("format: no renderable representation")

// Selection is the outcome of Select. Ref is set for PDF results, Refs for
// image results; neither is set when the content is unavailable.
type Selection struct {
	Kind     Kind     `json:"kind"`
	Ref      string   `json:"ref,omitempty"`
	Refs     []string `json:"refs,omitempty"`
	Tier     Tier     `json:"tier,omitempty"`
	Fallback bool     `json:"fallback,omitempty"`
}

// Available reports whether there is something to render.
func (s Selection) Available() bool {
	return s.Kind == KindPDF || s.Kind == KindImages
}

// Err returns ErrNoRenderableContent for unavailable selections and nil otherwise.
func (s Selection) Err() error {
	if s.Available() {
		return nil
	}
	return ErrNoRenderableContent
}

// Policy decides which devices receive the PDF under automatic selection.
type Policy struct {
	// PDFClasses get the PDF when one exists.
	PDFClasses []device.Class
	// TabletPDFMinWidth, when positive, also gives the PDF to tablets whose
	// viewport is at least this wide.
	TabletPDFMinWidth int
}

// DefaultPolicy serves the PDF to desktops only.
func DefaultPolicy() Policy {
	return Policy{PDFClasses: []device.Class{device.ClassDesktop}}
}

func (p Policy) prefersPDF(profile device.Profile) bool {
	if slices.Contains(p.PDFClasses, profile.Class) {
		return true
	}
	return p.TabletPDFMinWidth > 0 &&
		profile.Class == device.ClassTablet &&
		profile.ViewportWidth >= p.TabletPDFMinWidth
}

// Option configures a Selector.
type Option func(*Selector)

// WithPolicy replaces the whole policy.
func WithPolicy(p Policy) Option {
	return func(s *Selector) {
		s.policy = Policy{PDFClasses: slices.Clone(p.PDFClasses), TabletPDFMinWidth: p.TabletPDFMinWidth}
	}
}

// WithTabletPDFMinWidth gives the PDF to tablets at least width pixels wide.
func WithTabletPDFMinWidth(width int) Option {
	return func(s *Selector) { s.policy.TabletPDFMinWidth = max(width, 0) }
}

// Selector applies a Policy. The zero value is not usable; call New.
type Selector struct {
	policy Policy
}

// New returns a Selector using DefaultPolicy adjusted by opts.
func New(opts ...Option) *Selector {
	s := &Selector{policy: DefaultPolicy()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Policy returns a copy of the active policy.
func (s *Selector) Policy() Policy {
	return Policy{PDFClasses: slices.Clone(s.policy.PDFClasses), TabletPDFMinWidth: s.policy.TabletPDFMinWidth}
}

var defaultSelector = New()

// Select chooses with the default policy.
func Select(m Manifest, p device.Profile) Selection {
	return defaultSelector.Select(m, p)
}

// Select picks the representation of m to render on p.
//
// An explicit pdf or images preference is honoured when that content exists.
// Under auto the PDF goes to devices the policy names, images to the rest.
// When the chosen representation is missing the other one is used and the
// result is marked as a fallback; with neither present the result is
// KindUnavailable.
func (s *Selector) Select(m Manifest, p device.Profile) Selection {
	want := KindImages
	switch m.Preferred.Normalize() {
	case PreferPDF:
		want = KindPDF
	case PreferImages:
		want = KindImages
	case PreferAuto:
		if s.policy.prefersPDF(p) && m.HasPDF() {
			want = KindPDF
		}
	}

	if sel, ok := pick(want, m, p.Class); ok {
		return sel
	}
	other := KindPDF
	if want == KindPDF {
		other = KindImages
	}
	if sel, ok := pick(other, m, p.Class); ok {
		sel.Fallback = true
		return sel
	}
	return Selection{Kind: KindUnavailable}
}

func pick(kind Kind, m Manifest, class device.Class) (Selection, bool) {
	if kind == KindPDF {
		if !m.HasPDF() {
			return Selection{}, false
		}
		return Selection{Kind: KindPDF, Ref: m.PDF}, true
	}
	tier, refs := ImagesFor(m, class)
	if len(refs) == 0 {
		return Selection{}, false
	}
	return Selection{Kind: KindImages, Refs: refs, Tier: tier}, true
}

// TierFor maps a device class to its quality tier. Unknown classes get medium.
func TierFor(class device.Class) Tier {
	switch class {
	case device.ClassMobile:
		return TierLow
	case device.ClassDesktop:
		return TierHigh
	}
	return TierMedium
}

// nearest lists the other tiers to try, closest quality first.
var nearest = map[Tier][]Tier{
	TierLow:    {TierMedium, TierHigh},
	TierMedium: {TierHigh, TierLow},
	TierHigh:   {TierMedium, TierLow},
}

// ImagesFor resolves the image sequence for class: its own tier, then the flat
// images, then the remaining tiers nearest first. Empty sequences count as
// absent. The returned tier is empty when the flat sequence was used, and the
// slice is always a copy.
func ImagesFor(m Manifest, class device.Class) (Tier, []string) {
	tier := TierFor(class)
	if refs := m.QualityTiers[tier]; len(refs) > 0 {
		return tier, slices.Clone(refs)
	}
	if len(m.Images) > 0 {
		return "", slices.Clone(m.Images)
	}
	for _, t := range nearest[tier] {
		if refs := m.QualityTiers[t]; len(refs) > 0 {
			return t, slices.Clone(refs)
		}
	}
	return "", nil
}
