package device

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Class is the coarse device category used for format and quality decisions.
type Class string

const (
	ClassMobile  Class = "mobile"
	ClassTablet  Class = "tablet"
	ClassDesktop Class = "desktop"
)

// Valid reports whether c is one of the known classes.
func (c Class) Valid() bool {
	switch c {
	case ClassMobile, ClassTablet, ClassDesktop:
		return true
	}
	return false
}

// HighDensityRatio is the device pixel ratio from which a screen counts as
// high density.
const HighDensityRatio = 2.0

// Source records which request input produced a profile.
type Source string

const (
	SourceProbe     Source = "probe"
	SourceHints     Source = "hints"
	SourceUserAgent Source = "user_agent"
	SourceDefault   Source = "default"
)

var ErrInvalidProbe = errors.New("device: invalid probe")

// Thresholds are the minimum viewport widths, in logical pixels, of the
// tablet and desktop classes.
type Thresholds struct {
	TabletMinWidth  int `env:"DEVICE_TABLET_MIN_WIDTH" envDefault:"768"`
	DesktopMinWidth int `env:"DEVICE_DESKTOP_MIN_WIDTH" envDefault:"1024"`
}

// DefaultThresholds returns the 768/1024 breakpoints.
func DefaultThresholds() Thresholds {
	return Thresholds{TabletMinWidth: 768, DesktopMinWidth: 1024}
}

func (t Thresholds) normalized() Thresholds {
	d := DefaultThresholds()
	if t.TabletMinWidth <= 0 {
		t.TabletMinWidth = d.TabletMinWidth
	}
	if t.DesktopMinWidth <= t.TabletMinWidth {
		t.DesktopMinWidth = max(d.DesktopMinWidth, t.TabletMinWidth+1)
	}
	return t
}

// Classify maps a viewport width to exactly one class.
func Classify(width int, t Thresholds) Class {
	t = t.normalized()
	switch {
	case width >= t.DesktopMinWidth:
		return ClassDesktop
	case width >= t.TabletMinWidth:
		return ClassTablet
	default:
		return ClassMobile
	}
}

// Probe is the raw characteristics reported by the browser.
type Probe struct {
	ViewportWidth  int     `json:"viewportWidth"`
	ViewportHeight int     `json:"viewportHeight"`
	CoarsePointer  bool    `json:"coarsePointer"`
	PixelRatio     float64 `json:"pixelRatio"`
}

// Validate rejects probes without a positive width or with a negative height
// or ratio.
func (p Probe) Validate() error {
	switch {
	case p.ViewportWidth <= 0:
		return fmt.Errorf("%w: viewport width must be positive", ErrInvalidProbe)
	case p.ViewportHeight < 0:
		return fmt.Errorf("%w: viewport height must not be negative", ErrInvalidProbe)
	case p.PixelRatio < 0:
		return fmt.Errorf("%w: pixel ratio must not be negative", ErrInvalidProbe)
	}
	return nil
}

// String encodes the probe in cookie form, e.g. "1280x800@2" or "390x844@3t".
func (p Probe) String() string {
	ratio := p.PixelRatio
	if ratio <= 0 {
		ratio = 1
	}
	s := strconv.Itoa(p.ViewportWidth) + "x" + strconv.Itoa(p.ViewportHeight) +
		"@" + strconv.FormatFloat(ratio, 'f', -1, 64)
	if p.CoarsePointer {
		s += "t"
	}
	return s
}

// ParseProbe decodes the cookie form written by Probe.String.
// The ratio part is optional and defaults to 1.
func ParseProbe(s string) (Probe, error) {
	s = strings.TrimSpace(s)
	var p Probe
	if rest, ok := strings.CutSuffix(s, "t"); ok {
		p.CoarsePointer = true
		s = rest
	}

	dims, ratio, hasRatio := strings.Cut(s, "@")
	ws, hs, ok := strings.Cut(dims, "x")
	if !ok {
		return Probe{}, fmt.Errorf("%w: %q", ErrInvalidProbe, s)
	}

	var err error
	if p.ViewportWidth, err = strconv.Atoi(ws); err != nil {
		return Probe{}, fmt.Errorf("%w: width: %v", ErrInvalidProbe, err)
	}
	if p.ViewportHeight, err = strconv.Atoi(hs); err != nil {
		return Probe{}, fmt.Errorf("%w: height: %v", ErrInvalidProbe, err)
	}
	p.PixelRatio = 1
	if hasRatio {
		if p.PixelRatio, err = strconv.ParseFloat(ratio, 64); err != nil {
			return Probe{}, fmt.Errorf("%w: ratio: %v", ErrInvalidProbe, err)
		}
	}
	if err := p.Validate(); err != nil {
		return Probe{}, err
	}
	return p, nil
}

// Profile is the derived, read-only snapshot consumers decide on.
type Profile struct {
	Class          Class   `json:"deviceClass"`
	Touch          bool    `json:"isTouchDevice"`
	HighDensity    bool    `json:"isHighDensity"`
	ViewportWidth  int     `json:"viewportWidth"`
	ViewportHeight int     `json:"viewportHeight"`
	PixelRatio     float64 `json:"pixelRatio"`
	Source         Source  `json:"source"`
}

// FromProbe derives a profile. A zero ratio is treated as 1.
func FromProbe(p Probe, t Thresholds) Profile {
	ratio := p.PixelRatio
	if ratio <= 0 {
		ratio = 1
	}
	return Profile{
		Class:          Classify(p.ViewportWidth, t),
		Touch:          p.CoarsePointer,
		HighDensity:    ratio >= HighDensityRatio,
		ViewportWidth:  p.ViewportWidth,
		ViewportHeight: p.ViewportHeight,
		PixelRatio:     ratio,
		Source:         SourceProbe,
	}
}

// Probe returns the probe that reproduces p.
func (p Profile) Probe() Probe {
	return Probe{
		ViewportWidth:  p.ViewportWidth,
		ViewportHeight: p.ViewportHeight,
		CoarsePointer:  p.Touch,
		PixelRatio:     p.PixelRatio,
	}
}
