package run

import (
	"strings"
	"testing"
)

func TestFromHTML_BasicTags(t *testing.T) {
	runs := FromHTML("plain <strong>bold</strong> <em>italic</em>")
	if len(runs) != 4 {
		t.Fatalf("expected 4 runs, got %d: %+v", len(runs), runs)
	}
	if runs[0].Text != "plain " || runs[0].Attributes.Bold != nil {
		t.Errorf("unexpected first run %+v", runs[0])
	}
	if runs[1].Text != "bold" || runs[1].Attributes.Bold == nil || !*runs[1].Attributes.Bold {
		t.Errorf("unexpected bold run %+v", runs[1])
	}
	if runs[3].Text != "italic" || runs[3].Attributes.Italic == nil || !*runs[3].Attributes.Italic {
		t.Errorf("unexpected italic run %+v", runs[3])
	}
}

func TestFromHTML_NestingComposes(t *testing.T) {
	runs := FromHTML("<strong>a<em>b</em>c</strong>")
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	b := runs[1]
	if b.Text != "b" || b.Attributes.Bold == nil || b.Attributes.Italic == nil {
		t.Errorf("inner tag must compose with outer: %+v", b)
	}
	c := runs[2]
	if c.Attributes.Bold == nil || c.Attributes.Italic != nil {
		t.Errorf("closing inner tag must restore outer attributes: %+v", c)
	}
}

func TestFromHTML_SpanClassAndStyle(t *testing.T) {
	runs := FromHTML(`<span class="x y" style="font-size: 11pt; font-family: 'Arial'; color: #00B050; text-decoration: underline; text-transform: uppercase">t</span>`)
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	a := runs[0].Attributes
	if len(a.Styles) != 2 || a.Styles[0] != "x" || a.Styles[1] != "y" {
		t.Errorf("unexpected styles %v", a.Styles)
	}
	if a.FontSize == nil || *a.FontSize != 11 {
		t.Error("font-size not parsed")
	}
	if a.FontName == nil || *a.FontName != "Arial" {
		t.Error("font-family not parsed or quotes not stripped")
	}
	if a.FontColor == nil || *a.FontColor != "00B050" {
		t.Error("color not parsed")
	}
	if a.Underline == nil || !*a.Underline {
		t.Error("underline not parsed")
	}
	if a.Case == nil || *a.Case != "upper" {
		t.Error("text-transform not reverse-mapped")
	}
}

func TestFromHTML_SubSup(t *testing.T) {
	runs := FromHTML("H<sub>2</sub>O and x<sup>n</sup>")
	if len(runs) != 4 {
		t.Fatalf("expected 4 runs, got %d", len(runs))
	}
	if runs[1].Attributes.Subscript == nil || !*runs[1].Attributes.Subscript {
		t.Error("subscript not set")
	}
	if runs[3].Attributes.Superscript == nil || !*runs[3].Attributes.Superscript {
		t.Error("superscript not set")
	}
}

func TestFromHTML_EntitiesUnescaped(t *testing.T) {
	runs := FromHTML("a &amp; b")
	if len(runs) != 1 || runs[0].Text != "a & b" {
		t.Errorf("expected unescaped text, got %+v", runs)
	}
}

func TestToHTML_Empty(t *testing.T) {
	r := Run{Text: ""}
	if got := r.ToHTML(); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestToHTML_WrappingOrder(t *testing.T) {
	r := Run{Text: "x", Attributes: Attributes{
		Bold:        bp(true),
		Italic:      bp(true),
		Subscript:   bp(true),
		Superscript: bp(true),
	}}
	got := r.ToHTML()
	want := "<span><sup><sub><em><strong>x</strong></em></sub></sup></span>"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestToHTML_StyleAndDataAttributes(t *testing.T) {
	track := TrackInsert
	r := Run{Text: "t", Attributes: Attributes{
		FontSize:      fp(10.5),
		FontName:      sp("Courier"),
		FontColor:     sp("C9211E"),
		Underline:     bp(true),
		Case:          sp("upper"),
		Styles:        []string{"a", "b"},
		CommentIDs:    []string{"c1", "c2"},
		TrackedChange: &track,
	}}
	got := r.ToHTML()

	for _, want := range []string{
		"font-size: 10.5pt",
		"font-family: 'Courier'",
		"color: #C9211E",
		"text-decoration: underline",
		"text-transform: uppercase",
		`class="a b"`,
		`data-comments="c1 c2"`,
		`data-track="ins"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in %q", want, got)
		}
	}
}

func TestToHTML_EscapesContent(t *testing.T) {
	r := Run{Text: "a < b & c"}
	got := r.ToHTML()
	if !strings.Contains(got, "a &lt; b &amp; c") {
		t.Errorf("expected escaped content, got %q", got)
	}
}

func TestRoundTrip_HTMLToRunsToHTML(t *testing.T) {
	runs := FromHTML("<strong>Hi</strong> there")
	html := ToHTMLAll(runs)
	back := FromHTML(html)
	if Text(back, ModeFull) != "Hi there" {
		t.Errorf("round trip lost text: %q", Text(back, ModeFull))
	}
	if back[0].Attributes.Bold == nil || !*back[0].Attributes.Bold {
		t.Error("round trip lost bold")
	}
}

func TestMarkdownEmphasisThroughHTML(t *testing.T) {
	html, err := MarkdownToHTML("some **bold** and *italic* text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	runs := FromHTML(html)
	if Text(runs, ModeFull) != "some bold and italic text" {
		t.Errorf("unexpected text %q", Text(runs, ModeFull))
	}
	var foundBold, foundItalic bool
	for _, r := range runs {
		if r.Text == "bold" && r.Attributes.Bold != nil && *r.Attributes.Bold {
			foundBold = true
		}
		if r.Text == "italic" && r.Attributes.Italic != nil && *r.Attributes.Italic {
			foundItalic = true
		}
	}
	if !foundBold || !foundItalic {
		t.Errorf("markdown emphasis not converted: %+v", runs)
	}
}

func TestMarkdownToHTML(t *testing.T) {
	html, err := MarkdownToHTML("**Hi**")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, "<strong>Hi</strong>") {
		t.Errorf("unexpected html %q", html)
	}
}
