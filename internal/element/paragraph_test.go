package element

import (
	"strings"
	"testing"

	"github.com/dgallion1/docmodel/internal/placeholder"
	"github.com/dgallion1/docmodel/internal/run"
)

func sp(s string) *string   { return &s }
func fp(f float64) *float64 { return &f }

func styled(name string) *Style { return &Style{Name: name} }

func TestClassifyStyleName(t *testing.T) {
	c := DefaultClassifier()

	tests := []struct {
		name      string
		wantKind  StyleKind
		wantLevel int
	}{
		{"Heading 1", KindHeading, 1},
		{"heading 3", KindHeading, 3},
		{"HEADING2", KindHeading, 2},
		{"Heading", KindHeading, 0},
		{"Caption", KindCaption, 0},
		{"caption ", KindCaption, 0},
		{"Normal", "", 0},
		{"Body Text", "", 0},
		{"", "", 0},
	}
	for _, tt := range tests {
		kind, level := c.ClassifyStyleName(tt.name)
		if kind != tt.wantKind || level != tt.wantLevel {
			t.Errorf("%q: expected (%q,%d), got (%q,%d)", tt.name, tt.wantKind, tt.wantLevel, kind, level)
		}
	}
}

func TestClassify_NilStyle(t *testing.T) {
	var s *Style
	kind, level := s.Classify(DefaultClassifier())
	if kind != "" || level != 0 {
		t.Errorf("expected no classification for nil style, got (%q,%d)", kind, level)
	}
}

func TestClassify_SwappableScorer(t *testing.T) {
	// A scorer that matches everything makes every style a caption; pinning
	// the scorer is how tests get determinism.
	c := Classifier{Score: func(a, b string) float64 { return 1 }, Cutoff: 0.7}
	kind, _ := c.ClassifyStyleName("whatever")
	if kind != KindCaption {
		t.Errorf("expected caption from all-match scorer, got %q", kind)
	}
}

func coloredRun(text, color string) run.Run {
	return run.Run{Text: text, Attributes: run.Attributes{FontColor: sp(color)}}
}

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		name string
		runs []run.Run
		want Intent
	}{
		{"instruction green", []run.Run{coloredRun("do this", "00B050")}, IntentInstruction},
		{"near green", []run.Run{coloredRun("do this", "00B251")}, IntentInstruction},
		{"example red", []run.Run{coloredRun("e.g.", "C9211E")}, IntentExample},
		{"plain black", []run.Run{coloredRun("text", "000000")}, ""},
		{"missing color", []run.Run{{Text: "text"}}, ""},
		{"no runs", nil, ""},
		{"inconsistent colors", []run.Run{coloredRun("a", "00B050"), coloredRun("b", "C9211E")}, ""},
		{"consistent pair", []run.Run{coloredRun("a", "00B050"), coloredRun("b", "00B052")}, IntentInstruction},
	}
	for _, tt := range tests {
		p := &Paragraph{Runs: tt.runs}
		if got := p.ClassifyIntent(); got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.want, got)
		}
	}
}

func TestClassifyIntent_ColorFromStyleClass(t *testing.T) {
	p := &Paragraph{Runs: []run.Run{
		{Text: "x", Attributes: run.Attributes{Styles: []string{"color:00B050"}}},
	}}
	if got := p.ClassifyIntent(); got != IntentInstruction {
		t.Errorf("expected instruction from style-class color, got %q", got)
	}
}

func TestParagraphToHTML(t *testing.T) {
	align := "CENTER"
	p := &Paragraph{
		Style: &Style{Name: "Normal", Alignment: &align, SpaceAfter: fp(6)},
		Runs:  []run.Run{run.FromText("hello")},
	}
	got := p.ToHTML()
	if !strings.Contains(got, "text-align: center") || !strings.Contains(got, "margin-bottom: 6pt") {
		t.Errorf("style CSS missing from %q", got)
	}
	if !strings.HasPrefix(got, "<p") || !strings.HasSuffix(got, "</p>") {
		t.Errorf("expected <p> wrapper, got %q", got)
	}
}

func TestParagraphToHTML_Empty(t *testing.T) {
	p := &Paragraph{}
	if got := p.ToHTML(); got != "<p>&nbsp;</p>" {
		t.Errorf("expected nbsp body, got %q", got)
	}
}

func TestParagraphAssignIDs(t *testing.T) {
	p := ParagraphFromText("x")
	p.AssignIDs("doc::0:layout::0", 3)
	if p.ID != "doc::0:layout::0:para::3" {
		t.Errorf("unexpected paragraph id %q", p.ID)
	}
	if p.Runs[0].ID != "doc::0:layout::0:para::3:run::0" {
		t.Errorf("unexpected run id %q", p.Runs[0].ID)
	}
}

func TestApplyInlinePlaceholder(t *testing.T) {
	p := ParagraphFromText("Hello World")
	ph := &placeholder.Placeholder{
		Text:         "Hello",
		ReplacedText: "<strong>Hi</strong>",
		Status:       placeholder.StatusReplacementDone,
	}
	if !p.ApplyInlinePlaceholder(ph) {
		t.Fatal("expected placeholder to apply")
	}
	if got := p.ToText(run.ModeFull); got != "HelloHi World" {
		t.Errorf("expected tracked replacement text %q, got %q", "HelloHi World", got)
	}
}

func TestApplyInlinePlaceholder_NoReplacement(t *testing.T) {
	p := ParagraphFromText("Hello")
	if p.ApplyInlinePlaceholder(&placeholder.Placeholder{Text: "Hello"}) {
		t.Error("expected no-op without replacement text")
	}
}

func TestApplyDeletedPlaceholder(t *testing.T) {
	p := ParagraphFromText("foobar")
	if !p.ApplyDeletedPlaceholder(&placeholder.Placeholder{Text: "foo", Deleted: true}) {
		t.Fatal("expected placeholder to apply")
	}
	if len(p.Runs) != 1 || p.Runs[0].Text != "bar" {
		t.Errorf("expected single %q run, got %+v", "bar", p.Runs)
	}
}

func TestApplyDeletedPlaceholder_NoMatch(t *testing.T) {
	p := ParagraphFromText("foobar")
	if p.ApplyDeletedPlaceholder(&placeholder.Placeholder{Text: "zzz"}) {
		t.Error("expected no-op for absent text")
	}
}
