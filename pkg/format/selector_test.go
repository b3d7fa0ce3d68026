package format_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/panelhouse/pkg/device"
	"github.com/dmitrymomot/panelhouse/pkg/format"
)

func profile(class device.Class) device.Profile {
	return device.FromProbe(device.Representative(class), device.DefaultThresholds())
}

var allClasses = []device.Class{device.ClassMobile, device.ClassTablet, device.ClassDesktop}

func TestSelectScenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		manifest format.Manifest
		classes  []device.Class
		want     format.Selection
	}{
		{
			name:     "preferred_pdf_any_device",
			manifest: format.Manifest{Preferred: format.PreferPDF, PDF: "a.pdf"},
			classes:  allClasses,
			want:     format.Selection{Kind: format.KindPDF, Ref: "a.pdf"},
		},
		{
			name:     "auto_on_mobile_reads_images",
			manifest: format.Manifest{Preferred: format.PreferAuto, PDF: "a.pdf", Images: []string{"p1", "p2"}},
			classes:  []device.Class{device.ClassMobile},
			want:     format.Selection{Kind: format.KindImages, Refs: []string{"p1", "p2"}},
		},
		{
			name:     "auto_on_desktop_reads_pdf",
			manifest: format.Manifest{Preferred: format.PreferAuto, PDF: "a.pdf"},
			classes:  []device.Class{device.ClassDesktop},
			want:     format.Selection{Kind: format.KindPDF, Ref: "a.pdf"},
		},
		{
			name: "mobile_gets_low_tier",
			manifest: format.Manifest{
				Preferred:    format.PreferImages,
				Images:       []string{"p1"},
				QualityTiers: map[format.Tier][]string{format.TierLow: {"p1-lo"}},
			},
			classes: []device.Class{device.ClassMobile},
			want:    format.Selection{Kind: format.KindImages, Refs: []string{"p1-lo"}, Tier: format.TierLow},
		},
		{
			name:     "nothing_to_render",
			manifest: format.Manifest{Preferred: format.PreferPDF},
			classes:  allClasses,
			want:     format.Selection{Kind: format.KindUnavailable},
		},
	}

	for _, tt := range tests {
		for _, class := range tt.classes {
			t.Run(tt.name+"/"+string(class), func(t *testing.T) {
				t.Parallel()
				got := format.Select(tt.manifest, profile(class))
				if diff := cmp.Diff(tt.want, got); diff != "" {
					t.Errorf("Select() mismatch (-want +got):\n%s", diff)
				}
			})
		}
	}
}

func TestSelectFallbacks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		manifest format.Manifest
		class    device.Class
		want     format.Selection
	}{
		{
			name:     "preferred_pdf_missing_uses_images",
			manifest: format.Manifest{Preferred: format.PreferPDF, Images: []string{"p1"}},
			class:    device.ClassDesktop,
			want:     format.Selection{Kind: format.KindImages, Refs: []string{"p1"}, Fallback: true},
		},
		{
			name:     "preferred_images_missing_uses_pdf",
			manifest: format.Manifest{Preferred: format.PreferImages, PDF: "a.pdf"},
			class:    device.ClassMobile,
			want:     format.Selection{Kind: format.KindPDF, Ref: "a.pdf", Fallback: true},
		},
		{
			name:     "auto_mobile_without_images_uses_pdf",
			manifest: format.Manifest{Preferred: format.PreferAuto, PDF: "a.pdf"},
			class:    device.ClassMobile,
			want:     format.Selection{Kind: format.KindPDF, Ref: "a.pdf", Fallback: true},
		},
		{
			name:     "auto_desktop_without_pdf_reads_images",
			manifest: format.Manifest{Preferred: format.PreferAuto, Images: []string{"p1"}},
			class:    device.ClassDesktop,
			want:     format.Selection{Kind: format.KindImages, Refs: []string{"p1"}},
		},
		{
			name:     "empty_preference_is_auto",
			manifest: format.Manifest{PDF: "a.pdf", Images: []string{"p1"}},
			class:    device.ClassDesktop,
			want:     format.Selection{Kind: format.KindPDF, Ref: "a.pdf"},
		},
		{
			name:     "unknown_preference_is_auto",
			manifest: format.Manifest{Preferred: "epub", PDF: "a.pdf", Images: []string{"p1"}},
			class:    device.ClassMobile,
			want:     format.Selection{Kind: format.KindImages, Refs: []string{"p1"}},
		},
		{
			name:     "whitespace_pdf_is_absent",
			manifest: format.Manifest{Preferred: format.PreferPDF, PDF: "  "},
			class:    device.ClassDesktop,
			want:     format.Selection{Kind: format.KindUnavailable},
		},
		{
			name: "tiers_only_without_flat_images",
			manifest: format.Manifest{
				Preferred:    format.PreferImages,
				QualityTiers: map[format.Tier][]string{format.TierHigh: {"p1-hi"}},
			},
			class: device.ClassMobile,
			want:  format.Selection{Kind: format.KindImages, Refs: []string{"p1-hi"}, Tier: format.TierHigh},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := format.Select(tt.manifest, profile(tt.class))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Select() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestImagesForTierOrder(t *testing.T) {
	t.Parallel()

	all := map[format.Tier][]string{
		format.TierLow:    {"lo"},
		format.TierMedium: {"md"},
		format.TierHigh:   {"hi"},
	}

	tests := []struct {
		name     string
		tiers    map[format.Tier][]string
		flat     []string
		class    device.Class
		wantTier format.Tier
		wantRefs []string
	}{
		{name: "mapped_mobile", tiers: all, class: device.ClassMobile, wantTier: format.TierLow, wantRefs: []string{"lo"}},
		{name: "mapped_tablet", tiers: all, class: device.ClassTablet, wantTier: format.TierMedium, wantRefs: []string{"md"}},
		{name: "mapped_desktop", tiers: all, class: device.ClassDesktop, wantTier: format.TierHigh, wantRefs: []string{"hi"}},
		{name: "flat_before_other_tiers", tiers: map[format.Tier][]string{format.TierHigh: {"hi"}}, flat: []string{"p"}, class: device.ClassMobile, wantRefs: []string{"p"}},
		{name: "low_falls_to_medium", tiers: map[format.Tier][]string{format.TierMedium: {"md"}, format.TierHigh: {"hi"}}, class: device.ClassMobile, wantTier: format.TierMedium, wantRefs: []string{"md"}},
		{name: "medium_prefers_high", tiers: map[format.Tier][]string{format.TierLow: {"lo"}, format.TierHigh: {"hi"}}, class: device.ClassTablet, wantTier: format.TierHigh, wantRefs: []string{"hi"}},
		{name: "high_prefers_medium", tiers: map[format.Tier][]string{format.TierLow: {"lo"}, format.TierMedium: {"md"}}, class: device.ClassDesktop, wantTier: format.TierMedium, wantRefs: []string{"md"}},
		{name: "empty_tier_is_absent", tiers: map[format.Tier][]string{format.TierLow: {}}, flat: []string{"p"}, class: device.ClassMobile, wantRefs: []string{"p"}},
		{name: "unknown_class_is_medium", tiers: all, class: "", wantTier: format.TierMedium, wantRefs: []string{"md"}},
		{name: "nothing", class: device.ClassMobile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tier, refs := format.ImagesFor(format.Manifest{Images: tt.flat, QualityTiers: tt.tiers}, tt.class)
			assert.Equal(t, tt.wantTier, tier)
			assert.Equal(t, tt.wantRefs, refs)
		})
	}
}

func TestTabletPDFPolicy(t *testing.T) {
	t.Parallel()

	m := format.Manifest{Preferred: format.PreferAuto, PDF: "a.pdf", Images: []string{"p1"}}
	small := device.FromProbe(device.Probe{ViewportWidth: 800, ViewportHeight: 1280, PixelRatio: 2}, device.DefaultThresholds())
	large := device.FromProbe(device.Probe{ViewportWidth: 1000, ViewportHeight: 1366, PixelRatio: 2}, device.DefaultThresholds())
	require.Equal(t, device.ClassTablet, large.Class)

	assert.Equal(t, format.KindImages, format.Select(m, large).Kind, "default policy keeps tablets on images")

	sel := format.New(format.WithTabletPDFMinWidth(960))
	assert.Equal(t, format.KindPDF, sel.Select(m, large).Kind)
	assert.Equal(t, format.KindImages, sel.Select(m, small).Kind)
	assert.Equal(t, format.KindImages, sel.Select(m, profile(device.ClassMobile)).Kind)

	everyone := format.New(format.WithPolicy(format.Policy{PDFClasses: allClasses}))
	assert.Equal(t, format.KindPDF, everyone.Select(m, profile(device.ClassMobile)).Kind)

	assert.Equal(t, 960, sel.Policy().TabletPDFMinWidth)
	assert.Equal(t, []device.Class{device.ClassDesktop}, format.New().Policy().PDFClasses)
}

func TestSelectIsIdempotentAndTotal(t *testing.T) {
	t.Parallel()

	pdfs := []string{"", "a.pdf"}
	flats := [][]string{nil, {}, {"p1", "p2"}}
	tierSets := []map[format.Tier][]string{
		nil,
		{format.TierLow: {"lo"}},
		{format.TierMedium: {"md1", "md2"}, format.TierHigh: {}},
	}
	prefs := []format.Preference{"", format.PreferPDF, format.PreferImages, format.PreferAuto, "bogus"}

	for _, pdf := range pdfs {
		for _, flat := range flats {
			for _, tiers := range tierSets {
				for _, pref := range prefs {
					m := format.Manifest{PDF: pdf, Images: flat, Preferred: pref, QualityTiers: tiers}
					for _, class := range allClasses {
						p := profile(class)
						first := format.Select(m, p)
						second := format.Select(m, p)
						name := fmt.Sprintf("%+v/%s", m, class)

						if diff := cmp.Diff(first, second); diff != "" {
							t.Fatalf("%s: not idempotent:\n%s", name, diff)
						}

						switch first.Kind {
						case format.KindPDF:
							assert.Equal(t, pdf, first.Ref, name)
							assert.Nil(t, first.Refs, name)
						case format.KindImages:
							assert.NotEmpty(t, first.Refs, name)
							assert.Empty(t, first.Ref, name)
						case format.KindUnavailable:
							assert.False(t, m.HasPDF() || m.HasImages(), name)
							assert.ErrorIs(t, first.Err(), format.ErrNoRenderableContent, name)
						default:
							t.Fatalf("%s: unexpected kind %q", name, first.Kind)
						}

						if pref == format.PreferPDF && pdf != "" {
							assert.Equal(t, format.KindPDF, first.Kind, name)
						}
					}
				}
			}
		}
	}
}

func TestSelectionDoesNotAliasManifest(t *testing.T) {
	t.Parallel()

	m := format.Manifest{
		Preferred:    format.PreferImages,
		Images:       []string{"p1", "p2"},
		QualityTiers: map[format.Tier][]string{format.TierHigh: {"h1"}},
	}

	flat := format.Select(m, profile(device.ClassMobile))
	flat.Refs[0] = "mutated"
	assert.Equal(t, "p1", m.Images[0])

	tiered := format.Select(m, profile(device.ClassDesktop))
	tiered.Refs[0] = "mutated"
	assert.Equal(t, "h1", m.QualityTiers[format.TierHigh][0])
}

func TestSelectionJSON(t *testing.T) {
	t.Parallel()

	raw := `{"pdf":"a.pdf","images":["p1"],"preferredFormat":"auto","qualityTiers":{"low":["p1-lo"]}}`
	var m format.Manifest
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	assert.Equal(t, []string{"p1-lo"}, m.QualityTiers[format.TierLow])

	out, err := json.Marshal(format.Select(m, profile(device.ClassMobile)))
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"images","refs":["p1-lo"],"tier":"low"}`, string(out))

	out, err = json.Marshal(format.Select(format.Manifest{}, profile(device.ClassMobile)))
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"unavailable"}`, string(out))
	assert.NoError(t, format.Selection{Kind: format.KindPDF, Ref: "a"}.Err())
}
