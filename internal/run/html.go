package run

import (
	stdhtml "html"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// FromHTML converts an HTML fragment into runs. The parser is deliberately
// restricted to the closed tag vocabulary used by the rest of the model:
// <strong>, <em>, <sub>, <sup>, and <span> with class/style attributes.
// Unknown tags contribute no formatting but their text is kept. Nesting
// composes attributes; inner tags never erase outer ones.
func FromHTML(fragment string) []Run {
	z := html.NewTokenizer(strings.NewReader(fragment))
	stack := []Attributes{{}}
	var runs []Run

	for {
		switch z.Next() {
		case html.ErrorToken:
			return runs

		case html.StartTagToken:
			tok := z.Token()
			cur := stack[len(stack)-1].Clone()
			switch tok.Data {
			case "strong":
				cur.Bold = boolPtr(true)
			case "em":
				cur.Italic = boolPtr(true)
			case "sub":
				cur.Subscript = boolPtr(true)
			case "sup":
				cur.Superscript = boolPtr(true)
			case "span":
				for _, attr := range tok.Attr {
					switch attr.Key {
					case "class":
						cur.Styles = strings.Fields(attr.Val)
					case "style":
						parseInlineCSS(attr.Val, &cur)
					}
				}
			}
			stack = append(stack, cur)

		case html.EndTagToken:
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}

		case html.TextToken:
			text := z.Token().Data
			if text == "" {
				continue
			}
			runs = append(runs, Run{Text: text, Attributes: stack[len(stack)-1].Clone()})
		}
	}
}

// parseInlineCSS applies the supported subset of CSS declarations to attrs.
func parseInlineCSS(style string, attrs *Attributes) {
	for _, rule := range strings.Split(style, ";") {
		key, value, ok := strings.Cut(rule, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "font-size":
			if strings.HasSuffix(value, "pt") {
				if size, err := strconv.ParseFloat(strings.TrimSuffix(value, "pt"), 64); err == nil {
					attrs.FontSize = &size
				}
			}
		case "font-family":
			name := strings.Trim(value, `'"`)
			attrs.FontName = &name
		case "color":
			if strings.HasPrefix(value, "#") {
				color := value[1:]
				attrs.FontColor = &color
			}
		case "text-decoration":
			if strings.Contains(value, "underline") {
				attrs.Underline = boolPtr(true)
			}
		case "text-transform":
			reverse := map[string]string{
				"uppercase":  "upper",
				"capitalize": "capitalize",
			}
			if c, ok := reverse[value]; ok {
				attrs.Case = &c
			} else {
				attrs.Case = nil
			}
		}
	}
}

// ToHTML renders the run as a <span> carrying its computed style and data
// attributes, with the text wrapped innermost-first in sup/sub/em/strong.
// Empty text renders as the empty string.
func (r Run) ToHTML() string {
	if r.Text == "" {
		return ""
	}

	wrapped := stdhtml.EscapeString(r.Text)
	a := r.Attributes

	var styles []string
	if a.FontSize != nil {
		styles = append(styles, "font-size: "+strconv.FormatFloat(*a.FontSize, 'f', -1, 64)+"pt")
	}
	if a.FontName != nil {
		styles = append(styles, "font-family: '"+*a.FontName+"'")
	}
	if a.FontColor != nil {
		styles = append(styles, "color: #"+*a.FontColor)
	}
	if a.Underline != nil && *a.Underline {
		styles = append(styles, "text-decoration: underline")
	}
	if a.Case != nil {
		caseMap := map[string]string{
			"upper":      "uppercase",
			"capitalize": "capitalize",
			"sentence":   "none",
		}
		if css, ok := caseMap[*a.Case]; ok {
			styles = append(styles, "text-transform: "+css)
		}
	}

	styleAttr := ""
	if len(styles) > 0 {
		styleAttr = ` style="` + strings.Join(styles, "; ") + `"`
	}

	var htmlAttrs []string
	if len(a.Styles) > 0 {
		htmlAttrs = append(htmlAttrs, `class="`+strings.Join(a.Styles, " ")+`"`)
	}
	if len(a.CommentIDs) > 0 {
		htmlAttrs = append(htmlAttrs, `data-comments="`+strings.Join(a.CommentIDs, " ")+`"`)
	}
	if a.TrackedChange != nil {
		htmlAttrs = append(htmlAttrs, `data-track="`+*a.TrackedChange+`"`)
	}

	attrStr := ""
	if len(htmlAttrs) > 0 {
		attrStr = " " + strings.Join(htmlAttrs, " ")
	}

	if a.Bold != nil && *a.Bold {
		wrapped = "<strong>" + wrapped + "</strong>"
	}
	if a.Italic != nil && *a.Italic {
		wrapped = "<em>" + wrapped + "</em>"
	}
	if a.Subscript != nil && *a.Subscript {
		wrapped = "<sub>" + wrapped + "</sub>"
	}
	if a.Superscript != nil && *a.Superscript {
		wrapped = "<sup>" + wrapped + "</sup>"
	}

	return "<span" + styleAttr + attrStr + ">" + wrapped + "</span>"
}

// ToHTMLAll renders a run sequence, skipping runs with no text.
func ToHTMLAll(runs []Run) string {
	var sb strings.Builder
	for _, r := range runs {
		if r.Text == "" {
			continue
		}
		sb.WriteString(r.ToHTML())
	}
	return sb.String()
}

func boolPtr(b bool) *bool { return &b }
