// Package markdown compiles blog posts: YAML front matter, GitHub flavoured
// markdown, a small set of embedded components, highlighted code blocks and a
// sanitized HTML result with its outline and reading time.
//
//	c := markdown.New(markdown.WithComicResolver(lookup))
//	doc, err := c.Compile(source)
//	doc.Meta.Title, doc.HTML, doc.Outline, doc.ReadingTime
//
// Components are written as tags in the markdown body:
//
//	<Callout type="warning">Markdown **inside** works.</Callout>
//	<ComicEmbed slug="night-shift" />
//	<YouTube id="dQw4w9WgXcQ" />
package markdown
