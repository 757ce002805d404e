package placeholder

import "testing"

func TestMakeID(t *testing.T) {
	got := MakeID("doc::0:layout::0:para::3", 2)
	want := "doc::0:layout::0:para::3::ph::2"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestCommentText_NoReferences(t *testing.T) {
	p := &Placeholder{ReplacedComment: "note"}
	if got := p.CommentText(); got != "" {
		t.Errorf("expected empty comment without references, got %q", got)
	}
}

func TestCommentText_SourcesFromMatches(t *testing.T) {
	p := &Placeholder{
		ReplacedReference: []string{"m1", "m3"},
		ReplacedComment:   "reviewed",
		Matches: []MatchedNode{
			{ID: "m1", Filename: "spec.docx", HeadingPath: []string{"Intro", "Scope"}},
			{ID: "m2", Filename: "other.docx"},
			{ID: "m3", Filename: "notes.docx"},
		},
	}
	got := p.CommentText()
	want := "reviewed\n\nSources:\n- spec.docx > Intro > Scope\n- notes.docx"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestCommentText_ReferencesWithoutMatches(t *testing.T) {
	p := &Placeholder{ReplacedReference: []string{"missing"}, ReplacedComment: "c"}
	if got := p.CommentText(); got != "c" {
		t.Errorf("expected bare comment, got %q", got)
	}
}
