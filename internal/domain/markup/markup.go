// Package markup renders the markup-bearing summary blobs returned by the
// webhooks. Blobs are Markdown that may embed raw HTML; the HTML is passed
// through untouched because the upstream workflow produces it.
package markup

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	nethtml "golang.org/x/net/html"
)

var converter = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(
		html.WithUnsafe(),
		html.WithHardWraps(),
	),
)

// Render converts src to HTML.
func Render(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := converter.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render summary: %w", err)
	}
	return template.HTML(buf.String()), nil //nolint:gosec // trusted upstream HTML
}

// RenderAll renders every blob in order, stopping at the first failure.
func RenderAll(srcs []string) ([]template.HTML, error) {
	out := make([]template.HTML, 0, len(srcs))
	for i, s := range srcs {
		h, err := Render(s)
		if err != nil {
			return nil, fmt.Errorf("summary %d: %w", i, err)
		}
		out = append(out, h)
	}
	return out, nil
}

// PlainText reduces rendered HTML to its text, decoding entities and
// collapsing whitespace. Used for terminal output.
func PlainText(h template.HTML) string {
	var b strings.Builder
	z := nethtml.NewTokenizer(strings.NewReader(string(h)))
	for {
		switch z.Next() {
		case nethtml.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case nethtml.TextToken:
			b.Write(z.Text())
		case nethtml.StartTagToken, nethtml.EndTagToken, nethtml.SelfClosingTagToken:
			b.WriteByte(' ')
		}
	}
}
