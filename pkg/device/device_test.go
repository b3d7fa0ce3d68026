package device_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/panelhouse/pkg/device"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	th := device.DefaultThresholds()
	tests := []struct {
		width int
		want  device.Class
	}{
		{0, device.ClassMobile},
		{390, device.ClassMobile},
		{767, device.ClassMobile},
		{768, device.ClassTablet},
		{1023, device.ClassTablet},
		{1024, device.ClassDesktop},
		{2560, device.ClassDesktop},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, device.Classify(tt.width, th), "width %d", tt.width)
	}

	custom := device.Thresholds{TabletMinWidth: 600, DesktopMinWidth: 1200}
	assert.Equal(t, device.ClassTablet, device.Classify(1100, custom))

	broken := device.Thresholds{TabletMinWidth: 900, DesktopMinWidth: 100}
	assert.Equal(t, device.ClassTablet, device.Classify(950, broken), "desktop threshold below tablet is repaired")
}

func TestFromProbe(t *testing.T) {
	t.Parallel()

	p := device.FromProbe(device.Probe{ViewportWidth: 1280, ViewportHeight: 800, PixelRatio: 2}, device.DefaultThresholds())
	assert.Equal(t, device.Profile{
		Class:          device.ClassDesktop,
		HighDensity:    true,
		ViewportWidth:  1280,
		ViewportHeight: 800,
		PixelRatio:     2,
		Source:         device.SourceProbe,
	}, p)

	low := device.FromProbe(device.Probe{ViewportWidth: 390, CoarsePointer: true, PixelRatio: 1.5}, device.DefaultThresholds())
	assert.Equal(t, device.ClassMobile, low.Class)
	assert.True(t, low.Touch)
	assert.False(t, low.HighDensity)

	zero := device.FromProbe(device.Probe{ViewportWidth: 800}, device.DefaultThresholds())
	assert.Equal(t, 1.0, zero.PixelRatio)
}

func TestParseProbe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    device.Probe
		wantErr bool
	}{
		{in: "1280x800@2t", want: device.Probe{ViewportWidth: 1280, ViewportHeight: 800, PixelRatio: 2, CoarsePointer: true}},
		{in: "390x844@3", want: device.Probe{ViewportWidth: 390, ViewportHeight: 844, PixelRatio: 3}},
		{in: "1024x768", want: device.Probe{ViewportWidth: 1024, ViewportHeight: 768, PixelRatio: 1}},
		{in: "820x1180@2.5t", want: device.Probe{ViewportWidth: 820, ViewportHeight: 1180, PixelRatio: 2.5, CoarsePointer: true}},
		{in: "0x800@1", wantErr: true},
		{in: "-5x800", wantErr: true},
		{in: "wide", wantErr: true},
		{in: "100xabc", wantErr: true},
		{in: "100x100@fast", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := device.ParseProbe(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, device.ErrInvalidProbe)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			back, err := device.ParseProbe(got.String())
			require.NoError(t, err)
			assert.Equal(t, got, back)
		})
	}
}

func TestFromRequest(t *testing.T) {
	t.Parallel()

	th := device.DefaultThresholds()
	iphone := "Mozilla/5.0 (iPhone; CPU iPhone OS 17_2 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.2 Mobile/15E148 Safari/604.1"

	t.Run("cookie_wins", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: device.ProbeCookie, Value: "1280x800@2"})
		r.Header.Set(device.HeaderViewportWidth, "390")
		r.Header.Set("User-Agent", iphone)

		p := device.FromRequest(r, th)
		assert.Equal(t, device.ClassDesktop, p.Class)
		assert.Equal(t, device.SourceProbe, p.Source)
	})

	t.Run("invalid_cookie_falls_through_to_hints", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: device.ProbeCookie, Value: "0x0"})
		r.Header.Set(device.HeaderViewportWidth, "800")
		r.Header.Set(device.HeaderDPR, "2")
		r.Header.Set(device.HeaderMobile, "?1")

		p := device.FromRequest(r, th)
		assert.Equal(t, device.ClassTablet, p.Class)
		assert.True(t, p.HighDensity)
		assert.True(t, p.Touch)
		assert.Equal(t, device.SourceHints, p.Source)
	})

	t.Run("legacy_hints", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set(device.HeaderLegacyViewportWidth, "1366.5")
		r.Header.Set(device.HeaderLegacyDPR, "1")

		p := device.FromRequest(r, th)
		assert.Equal(t, device.ClassDesktop, p.Class)
		assert.Equal(t, 1366, p.ViewportWidth)
	})

	t.Run("user_agent", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("User-Agent", iphone)

		p := device.FromRequest(r, th)
		assert.Equal(t, device.ClassMobile, p.Class)
		assert.True(t, p.HighDensity)
		assert.Equal(t, device.SourceUserAgent, p.Source)
	})

	t.Run("nothing_known", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Del("User-Agent")

		p := device.FromRequest(r, th)
		assert.Equal(t, device.ClassDesktop, p.Class)
		assert.Equal(t, device.SourceDefault, p.Source)
	})
}

func TestContext(t *testing.T) {
	t.Parallel()

	_, ok := device.FromContext(context.Background())
	assert.False(t, ok)

	want := device.FromProbe(device.Representative(device.ClassTablet), device.DefaultThresholds())
	got, ok := device.FromContext(device.WithProfile(context.Background(), want))
	require.True(t, ok)
	assert.Equal(t, want, got)
	assert.Equal(t, device.ClassTablet, got.Class)
}
