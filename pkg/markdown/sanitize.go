package markdown

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

var (
	idAttrRe      = regexp.MustCompile(`^[\p{L}\p{N}_:.\-]+$`)
	youtubeSrcRe  = regexp.MustCompile(`^https://www\.youtube-nocookie\.com/embed/[A-Za-z0-9_-]{11}$`)
	checkboxRe    = regexp.MustCompile(`^checkbox$`)
	loadingAttrRe = regexp.MustCompile(`^(lazy|eager)$`)
)

// newPolicy extends the UGC policy with what compiled posts legitimately carry:
// classes for highlighting and components, heading and footnote anchors, task
// list checkboxes, and privacy-enhanced YouTube iframes.
func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowStyling()
	p.AllowElements("aside", "figure", "figcaption", "div", "span", "section")
	p.AllowAttrs("id").Matching(idAttrRe).OnElements("h1", "h2", "h3", "h4", "h5", "h6", "li", "sup", "div")
	p.AllowAttrs("loading").Matching(loadingAttrRe).OnElements("img", "iframe")

	p.AllowAttrs("type").Matching(checkboxRe).OnElements("input")
	p.AllowAttrs("checked", "disabled").OnElements("input")

	p.AllowAttrs("src").Matching(youtubeSrcRe).OnElements("iframe")
	p.AllowAttrs("title", "allowfullscreen").OnElements("iframe")
	p.RequireParseableURLs(true)
	return p
}
