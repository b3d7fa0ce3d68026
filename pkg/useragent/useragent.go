package useragent

import "strings"

// Device types.
const (
	DeviceTypeMobile  = "mobile"
	DeviceTypeTablet  = "tablet"
	DeviceTypeDesktop = "desktop"
	DeviceTypeBot     = "bot"
	DeviceTypeTV      = "tv"
	DeviceTypeUnknown = "unknown"
)

// Operating systems.
const (
	OSAndroid  = "android"
	OSIOS      = "ios"
	OSIPadOS   = "ipados"
	OSMacOS    = "macos"
	OSWindows  = "windows"
	OSLinux    = "linux"
	OSChromeOS = "chromeos"
	OSUnknown  = "unknown"
)

// Browsers.
const (
	BrowserChrome  = "chrome"
	BrowserEdge    = "edge"
	BrowserFirefox = "firefox"
	BrowserSafari  = "safari"
	BrowserOpera   = "opera"
	BrowserSamsung = "samsung"
	BrowserUnknown = "unknown"
)

// UserAgent is a parsed User-Agent header.
type UserAgent struct {
	raw        string
	deviceType string
	os         string
	browser    string
}

func (u UserAgent) String() string     { return u.raw }
func (u UserAgent) DeviceType() string { return u.deviceType }
func (u UserAgent) OS() string         { return u.os }
func (u UserAgent) Browser() string    { return u.browser }
func (u UserAgent) IsMobile() bool     { return u.deviceType == DeviceTypeMobile }
func (u UserAgent) IsTablet() bool     { return u.deviceType == DeviceTypeTablet }
func (u UserAgent) IsDesktop() bool    { return u.deviceType == DeviceTypeDesktop }
func (u UserAgent) IsBot() bool        { return u.deviceType == DeviceTypeBot }

var botKeywords = []string{
	"bot", "crawler", "spider", "slurp", "facebookexternalhit", "embedly",
	"preview", "curl/", "wget/", "python-requests", "go-http-client", "headless",
}

var tvKeywords = []string{"smart-tv", "smarttv", "googletv", "appletv", "hbbtv", "roku", "crkey", "tizen"}

// Parse classifies s. It never fails; unrecognized input is reported as unknown.
func Parse(s string) UserAgent {
	ua := UserAgent{raw: s, deviceType: DeviceTypeUnknown, os: OSUnknown, browser: BrowserUnknown}
	l := strings.ToLower(strings.TrimSpace(s))
	if l == "" {
		return ua
	}

	ua.os = parseOS(l)
	ua.browser = parseBrowser(l)
	ua.deviceType = parseDevice(l, ua.os)
	return ua
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func parseOS(l string) string {
	switch {
	case strings.Contains(l, "ipad"):
		return OSIPadOS
	case strings.Contains(l, "iphone"), strings.Contains(l, "ipod"):
		return OSIOS
	case strings.Contains(l, "android"):
		return OSAndroid
	case strings.Contains(l, " cros "):
		return OSChromeOS
	case strings.Contains(l, "windows"):
		return OSWindows
	case strings.Contains(l, "mac os x"), strings.Contains(l, "macintosh"):
		return OSMacOS
	case strings.Contains(l, "linux"):
		return OSLinux
	}
	return OSUnknown
}

func parseBrowser(l string) string {
	switch {
	case strings.Contains(l, "edg/"), strings.Contains(l, "edga/"), strings.Contains(l, "edgios/"):
		return BrowserEdge
	case strings.Contains(l, "opr/"), strings.Contains(l, "opera"):
		return BrowserOpera
	case strings.Contains(l, "samsungbrowser"):
		return BrowserSamsung
	case strings.Contains(l, "firefox/"), strings.Contains(l, "fxios/"):
		return BrowserFirefox
	case strings.Contains(l, "chrome/"), strings.Contains(l, "crios/"):
		return BrowserChrome
	case strings.Contains(l, "safari/"):
		return BrowserSafari
	}
	return BrowserUnknown
}

func parseDevice(l, os string) string {
	switch {
	case containsAny(l, botKeywords):
		return DeviceTypeBot
	case containsAny(l, tvKeywords):
		return DeviceTypeTV
	case os == OSIPadOS, strings.Contains(l, "tablet"), strings.Contains(l, "kindle"), strings.Contains(l, "silk/"):
		return DeviceTypeTablet
	case os == OSAndroid:
		// Android phones carry "mobile"; tablets omit it.
		if strings.Contains(l, "mobile") {
			return DeviceTypeMobile
		}
		return DeviceTypeTablet
	case os == OSIOS, strings.Contains(l, "mobile"), strings.Contains(l, "windows phone"):
		return DeviceTypeMobile
	case os == OSWindows, os == OSMacOS, os == OSLinux, os == OSChromeOS:
		return DeviceTypeDesktop
	}
	return DeviceTypeUnknown
}
