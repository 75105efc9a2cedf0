package web

import (
	"strings"

	"github.com/russross/blackfriday/v2"
)

// RenderMarkdown converts a card description to HTML. Descriptions that
// went through shells or JSON tooling sometimes carry literal escape
// sequences instead of real newlines; those are unescaped first so lists
// and paragraphs render.
func RenderMarkdown(markdown string) string {
	processed := strings.NewReplacer(
		`\n`, "\n",
		`\t`, "\t",
		`\r`, "\r",
	).Replace(markdown)

	html := blackfriday.Run([]byte(processed),
		blackfriday.WithExtensions(blackfriday.CommonExtensions))
	return string(html)
}
