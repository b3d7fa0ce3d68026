package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/panelhouse/pkg/markdown"
)

func newRenderCmd() *cobra.Command {
	var (
		style string
		css   bool
		meta  bool
	)
	cmd := &cobra.Command{
		Use:   "render <post.md|->",
		Short: "Compile a blog post to HTML",
		Long: `render compiles a markdown post the way the blog does and prints the
sanitized HTML. Embedded comics are dropped since no content API is involved.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := markdown.New(markdown.WithStyle(style))
			out := cmd.OutOrStdout()
			if css {
				return c.HighlightCSS(out)
			}
			if len(args) == 0 {
				return cmd.Usage()
			}

			src, err := readSource(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			doc, err := c.Compile(src)
			if err != nil {
				return err
			}
			if meta {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					Meta        markdown.Meta      `json:"meta"`
					Outline     []markdown.Heading `json:"outline"`
					FirstImage  string             `json:"firstImage,omitempty"`
					Words       int                `json:"words"`
					ReadingTime int                `json:"readingTime"`
				}{doc.Meta, doc.Outline, doc.FirstImage, doc.Words, doc.ReadingTime})
			}
			_, err = io.WriteString(out, doc.HTML)
			return err
		},
	}
	cmd.Flags().StringVar(&style, "style", "github", "chroma style for code highlighting")
	cmd.Flags().BoolVar(&css, "css", false, "print the highlighting stylesheet instead")
	cmd.Flags().BoolVar(&meta, "meta", false, "print front matter, outline and reading stats as JSON")
	return cmd
}

func readSource(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}
