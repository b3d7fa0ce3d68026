package device

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrymomot/panelhouse/pkg/useragent"
)

// ProbeCookie holds the latest probe posted by the reader script. It is not
// HttpOnly because the script refreshes it on resize.
const ProbeCookie = "ph_device"

// Client hint headers, standard and legacy.
const (
	HeaderViewportWidth       = "Sec-CH-Viewport-Width"
	HeaderViewportHeight      = "Sec-CH-Viewport-Height"
	HeaderDPR                 = "Sec-CH-DPR"
	HeaderMobile              = "Sec-CH-UA-Mobile"
	HeaderLegacyViewportWidth = "Viewport-Width"
	HeaderLegacyDPR           = "DPR"
)

// AcceptCH lists the hints requested from the browser.
var AcceptCH = strings.Join([]string{HeaderViewportWidth, HeaderViewportHeight, HeaderDPR, HeaderMobile}, ", ")

// Vary lists the request headers FromRequest reads.
var Vary = strings.Join([]string{
	"Cookie",
	HeaderViewportWidth, HeaderViewportHeight, HeaderDPR, HeaderMobile,
	HeaderLegacyViewportWidth, HeaderLegacyDPR,
	"User-Agent",
}, ", ")

var representative = map[Class]Probe{
	ClassMobile:  {ViewportWidth: 390, ViewportHeight: 844, PixelRatio: 3, CoarsePointer: true},
	ClassTablet:  {ViewportWidth: 820, ViewportHeight: 1180, PixelRatio: 2, CoarsePointer: true},
	ClassDesktop: {ViewportWidth: 1440, ViewportHeight: 900, PixelRatio: 1},
}

// Representative returns the stand-in probe used when only the class is known.
func Representative(c Class) Probe {
	if p, ok := representative[c]; ok {
		return p
	}
	return representative[ClassDesktop]
}

// FromRequest resolves a profile from the probe cookie, then client hints,
// then the User-Agent. Requests carrying none of them get a desktop profile.
func FromRequest(r *http.Request, t Thresholds) Profile {
	if c, err := r.Cookie(ProbeCookie); err == nil {
		if p, err := ParseProbe(c.Value); err == nil {
			return FromProbe(p, t)
		}
	}
	if p, ok := probeFromHints(r.Header); ok {
		profile := FromProbe(p, t)
		profile.Source = SourceHints
		return profile
	}

	ua := useragent.Parse(r.UserAgent())
	class := ClassDesktop
	source := SourceUserAgent
	switch ua.DeviceType() {
	case useragent.DeviceTypeMobile:
		class = ClassMobile
	case useragent.DeviceTypeTablet:
		class = ClassTablet
	case useragent.DeviceTypeDesktop, useragent.DeviceTypeTV:
	default:
		source = SourceDefault
	}

	profile := FromProbe(Representative(class), t)
	// Custom thresholds could reclassify the stand-in viewport; the UA verdict wins.
	profile.Class = class
	profile.Source = source
	return profile
}

func probeFromHints(h http.Header) (Probe, bool) {
	width := headerInt(h, HeaderViewportWidth, HeaderLegacyViewportWidth)
	if width <= 0 {
		return Probe{}, false
	}
	p := Probe{
		ViewportWidth:  width,
		ViewportHeight: max(headerInt(h, HeaderViewportHeight), 0),
		CoarsePointer:  h.Get(HeaderMobile) == "?1",
		PixelRatio:     1,
	}
	for _, name := range []string{HeaderDPR, HeaderLegacyDPR} {
		if v, err := strconv.ParseFloat(strings.TrimSpace(h.Get(name)), 64); err == nil && v > 0 {
			p.PixelRatio = v
			break
		}
	}
	return p, true
}

func headerInt(h http.Header, names ...string) int {
	for _, name := range names {
		v := strings.TrimSpace(h.Get(name))
		if v == "" {
			continue
		}
		// Viewport-Width may be fractional.
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return int(f)
		}
	}
	return 0
}

type ctxKey struct{}

// WithProfile stores p in ctx.
func WithProfile(ctx context.Context, p Profile) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// FromContext returns the profile stored by WithProfile.
func FromContext(ctx context.Context) (Profile, bool) {
	p, ok := ctx.Value(ctxKey{}).(Profile)
	return p, ok
}
