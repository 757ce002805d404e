package fuzzy

import "testing"

func TestRatio_Identical(t *testing.T) {
	if r := Ratio("heading", "heading"); r != 1 {
		t.Errorf("expected 1, got %f", r)
	}
}

func TestRatio_Empty(t *testing.T) {
	if r := Ratio("", ""); r != 1 {
		t.Errorf("expected 1 for two empty strings, got %f", r)
	}
	if r := Ratio("abc", ""); r != 0 {
		t.Errorf("expected 0 against empty string, got %f", r)
	}
}

func TestRatio_Disjoint(t *testing.T) {
	if r := Ratio("abc", "xyz"); r != 0 {
		t.Errorf("expected 0, got %f", r)
	}
}

func TestRatio_StyleNames(t *testing.T) {
	// "heading 2" against "heading": 7 matched chars, 16 total.
	if r := Ratio("heading 2", "heading"); r < 0.7 {
		t.Errorf("expected heading variant to pass 0.7 cutoff, got %f", r)
	}
	if r := Ratio("caption", "heading"); r >= 0.7 {
		t.Errorf("expected caption/heading to miss 0.7 cutoff, got %f", r)
	}
}

func TestMatch(t *testing.T) {
	if !Match(Ratio, "heading 3", []string{"heading"}, 0.7) {
		t.Error("expected match")
	}
	if Match(Ratio, "body text", []string{"heading", "caption"}, 0.7) {
		t.Error("expected no match")
	}
}
