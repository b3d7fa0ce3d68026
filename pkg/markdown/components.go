package markdown

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	selfClosingRe   = regexp.MustCompile(`<(Callout|ComicEmbed|YouTube)(\s[^<>]*?)?\s*/>`)
	componentTagRe  = regexp.MustCompile(`</?(?:Callout|ComicEmbed|YouTube)(?:\s[^<>]*)?>`)
	fenceLineRe     = regexp.MustCompile("^\\s*(```|~~~)")
	youtubeIDRe     = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
	comicSlugRe     = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	calloutKinds    = map[string]string{"info": "Info", "warning": "Warning", "tip": "Tip"}
	defaultCallout  = "info"
	youtubeEmbedURL = "https://www.youtube-nocookie.com/embed/"
)

// normalizeComponents expands self-closing component tags and puts every
// component tag on its own paragraph so markdown between them is parsed.
// Fenced code is left untouched.
func normalizeComponents(body string) string {
	lines := strings.Split(body, "\n")
	inFence := ""
	for i, line := range lines {
		if m := fenceLineRe.FindStringSubmatch(line); m != nil {
			switch {
			case inFence == "":
				inFence = m[1]
			case inFence == m[1]:
				inFence = ""
			}
			continue
		}
		if inFence != "" {
			continue
		}
		line = selfClosingRe.ReplaceAllString(line, "<$1$2></$1>")
		lines[i] = componentTagRe.ReplaceAllStringFunc(line, func(tag string) string {
			return "\n\n" + tag + "\n\n"
		})
	}
	return strings.Join(lines, "\n")
}

// ComicEmbed describes a comic referenced by a <ComicEmbed> tag.
type ComicEmbed struct {
	Title string
	Cover string
	URL   string
}

// ComicResolver looks up an embedded comic by slug.
type ComicResolver func(slug string) (ComicEmbed, bool)

func defaultComicResolver(slug string) (ComicEmbed, bool) {
	return ComicEmbed{Title: slug, URL: "/comics/" + slug + "/read"}, true
}

// rewriteComponents replaces component elements with plain HTML. The html
// parser lowercases the tag names. It returns the slugs of embedded comics.
func rewriteComponents(doc *goquery.Document, resolve ComicResolver) []string {
	for {
		s := doc.Find("callout").First()
		if s.Length() == 0 {
			break
		}
		kind := strings.ToLower(s.AttrOr("type", defaultCallout))
		title, ok := calloutKinds[kind]
		if !ok {
			kind, title = defaultCallout, calloutKinds[defaultCallout]
		}
		if t := strings.TrimSpace(s.AttrOr("title", "")); t != "" {
			title = t
		}
		inner, _ := s.Html()
		s.ReplaceWithHtml(fmt.Sprintf(
			`<aside class="callout callout-%s"><p class="callout-title">%s</p>%s</aside>`,
			kind, html.EscapeString(title), inner,
		))
	}

	var slugs []string
	doc.Find("comicembed").Each(func(_ int, s *goquery.Selection) {
		slug := strings.TrimSpace(s.AttrOr("slug", ""))
		if !comicSlugRe.MatchString(slug) {
			s.Remove()
			return
		}
		embed, ok := resolve(slug)
		if !ok {
			s.Remove()
			return
		}
		if embed.URL == "" {
			embed.URL = "/comics/" + slug + "/read"
		}
		if embed.Title == "" {
			embed.Title = slug
		}
		var cover string
		if embed.Cover != "" {
			cover = fmt.Sprintf(`<img src="%s" alt="%s" loading="lazy">`,
				html.EscapeString(embed.Cover), html.EscapeString(embed.Title))
		}
		s.ReplaceWithHtml(fmt.Sprintf(
			`<figure class="comic-embed"><a href="%s">%s<figcaption>%s</figcaption></a></figure>`,
			html.EscapeString(embed.URL), cover, html.EscapeString(embed.Title),
		))
		slugs = append(slugs, slug)
	})

	doc.Find("youtube").Each(func(_ int, s *goquery.Selection) {
		id := strings.TrimSpace(s.AttrOr("id", ""))
		if !youtubeIDRe.MatchString(id) {
			s.Remove()
			return
		}
		title := s.AttrOr("title", "YouTube video")
		s.ReplaceWithHtml(fmt.Sprintf(
			`<div class="video-embed"><iframe src="%s%s" title="%s" loading="lazy" allowfullscreen></iframe></div>`,
			youtubeEmbedURL, id, html.EscapeString(title),
		))
	})

	return slugs
}
