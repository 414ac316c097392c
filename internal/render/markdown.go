// Package render turns stored article content into safe HTML.
package render

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	mdhtml "github.com/yuin/goldmark/renderer/html"
)

// Renderer converts markdown article bodies to sanitized HTML
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
	strip  *bluemonday.Policy
}

// New creates a renderer with GitHub-flavored markdown and the UGC
// sanitizing policy
func New() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			mdhtml.WithHardWraps(),
		),
	)

	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)

	return &Renderer{md: md, policy: policy, strip: bluemonday.StrictPolicy()}
}

// HTML renders content. The result is safe to embed in templates.
func (r *Renderer) HTML(content string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return template.HTML(r.policy.SanitizeBytes(buf.Bytes())), nil
}

// Excerpt renders content, strips all markup and truncates the plain
// text to at most n runes. The result is unescaped text; templates do
// the escaping.
func (r *Renderer) Excerpt(content string, n int) string {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(content), &buf); err != nil {
		buf.Reset()
		buf.WriteString(html.EscapeString(content))
	}

	// block elements leave newlines behind; excerpts are one line
	text := html.UnescapeString(r.strip.SanitizeReader(&buf).String())
	text = strings.Join(strings.Fields(text), " ")

	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "…"
}
