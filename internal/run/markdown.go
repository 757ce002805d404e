package run

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
)

// MarkdownToHTML renders a Markdown fragment to trimmed HTML. Replacement
// text produced by language models frequently arrives as Markdown rather
// than the HTML the mutation engine expects; callers convert it with this
// before building the placeholder.
func MarkdownToHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}
