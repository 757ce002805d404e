// Package run implements the atomic styled text span of a document and the
// text-range algebra used to edit it: slicing and splitting runs, locating a
// substring across run boundaries, and applying tracked-change replacements.
package run

import (
	"regexp"
	"strconv"
	"strings"
)

// TextMode selects how a run renders to plain text.
type TextMode string

const (
	// ModeFull renders the text verbatim.
	ModeFull TextMode = "full"
	// ModeWrap wraps sub/superscript text in minimal <sub>/<sup> tags.
	ModeWrap TextMode = "wrap"
	// ModeDrop omits sub/superscript text entirely.
	ModeDrop TextMode = "drop"
)

// Tracked-change markers relative to the original text.
const (
	TrackInsert = "ins"
	TrackDelete = "del"
)

// Attributes is the flat formatting set carried by a run. Nil fields are
// unset; merging keeps only fields whose values agree across runs.
type Attributes struct {
	Bold          *bool    `json:"bold,omitempty"`
	Italic        *bool    `json:"italic,omitempty"`
	Underline     *bool    `json:"underline,omitempty"`
	FontSize      *float64 `json:"font_size,omitempty"`
	FontName      *string  `json:"font_name,omitempty"`
	FontColor     *string  `json:"font_color,omitempty"` // hex without '#', e.g. "00B050"
	Subscript     *bool    `json:"subscript,omitempty"`
	Superscript   *bool    `json:"superscript,omitempty"`
	Case          *string  `json:"case,omitempty"` // "upper", "capitalize", "sentence"
	Styles        []string `json:"styles,omitempty"`
	CommentIDs    []string `json:"comment_ids,omitempty"`
	CommentText   *string  `json:"comment_text,omitempty"`
	TrackedChange *string  `json:"tracked_change,omitempty"`
}

// Run is the smallest styled text unit: atomic for storage, splittable for
// editing.
type Run struct {
	Text       string     `json:"text"`
	Attributes Attributes `json:"attributes"`
	ID         string     `json:"id,omitempty"`
}

// FromText builds an unstyled run.
func FromText(text string) Run {
	return Run{Text: text}
}

// MakeID builds a hierarchical node ID in the form parent:kind::index.
func MakeID(parentID, kind string, index int) string {
	return parentID + ":" + kind + "::" + strconv.Itoa(index)
}

// AssignID derives this run's ID from its parent.
func (r *Run) AssignID(parentID string, index int) {
	r.ID = MakeID(parentID, "run", index)
}

// ToText renders the run as plain text under the given mode.
func (r Run) ToText(mode TextMode) string {
	a := r.Attributes
	switch mode {
	case ModeWrap:
		if a.Subscript != nil && *a.Subscript {
			return "<sub>" + r.Text + "</sub>"
		}
		if a.Superscript != nil && *a.Superscript {
			return "<sup>" + r.Text + "</sup>"
		}
	case ModeDrop:
		if (a.Subscript != nil && *a.Subscript) || (a.Superscript != nil && *a.Superscript) {
			return ""
		}
	}
	return r.Text
}

var styleColorPattern = regexp.MustCompile(`^color:([0-9A-Fa-f]{6})`)

// Color resolves the run's effective font color as uppercase hex, checking
// the explicit font color first and then color tokens in the style classes.
// Empty means no color is set.
func (r Run) Color() string {
	if r.Attributes.FontColor != nil {
		return strings.ToUpper(*r.Attributes.FontColor)
	}
	for _, s := range r.Attributes.Styles {
		if m := styleColorPattern.FindStringSubmatch(s); m != nil {
			return strings.ToUpper(m[1])
		}
	}
	return ""
}

// Clone returns a deep copy of the attribute set.
func (a Attributes) Clone() Attributes {
	c := a
	c.Bold = clonePtr(a.Bold)
	c.Italic = clonePtr(a.Italic)
	c.Underline = clonePtr(a.Underline)
	c.FontSize = clonePtr(a.FontSize)
	c.FontName = clonePtr(a.FontName)
	c.FontColor = clonePtr(a.FontColor)
	c.Subscript = clonePtr(a.Subscript)
	c.Superscript = clonePtr(a.Superscript)
	c.Case = clonePtr(a.Case)
	c.CommentText = clonePtr(a.CommentText)
	c.TrackedChange = clonePtr(a.TrackedChange)
	c.Styles = cloneSlice(a.Styles)
	c.CommentIDs = cloneSlice(a.CommentIDs)
	return c
}

// Clone returns a deep copy of the run.
func (r Run) Clone() Run {
	return Run{Text: r.Text, Attributes: r.Attributes.Clone(), ID: r.ID}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneSlice(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}

func ptrEq[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func sliceEq(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Slice returns a new run holding text [start,end) with copied attributes,
// or nil when the range is empty or out of bounds.
func Slice(r Run, start, end int) *Run {
	if start < 0 || end > len(r.Text) || start >= end {
		return nil
	}
	return &Run{Text: r.Text[start:end], Attributes: r.Attributes.Clone()}
}

// Split cuts a run into (before, middle, after) around [start,end). Empty
// fragments come back nil, never as empty-string runs.
func Split(r Run, start, end int) (before, middle, after *Run) {
	before = Slice(r, 0, start)
	middle = Slice(r, start, end)
	after = Slice(r, end, len(r.Text))
	return before, middle, after
}

// MergeAttributes intersects the attribute sets of all runs: a field keeps
// its value only when every run agrees on it. An empty input yields an
// all-unset attribute set.
func MergeAttributes(runs []Run) Attributes {
	if len(runs) == 0 {
		return Attributes{}
	}
	merged := runs[0].Attributes.Clone()
	for _, r := range runs[1:] {
		a := r.Attributes
		if !ptrEq(merged.Bold, a.Bold) {
			merged.Bold = nil
		}
		if !ptrEq(merged.Italic, a.Italic) {
			merged.Italic = nil
		}
		if !ptrEq(merged.Underline, a.Underline) {
			merged.Underline = nil
		}
		if !ptrEq(merged.FontSize, a.FontSize) {
			merged.FontSize = nil
		}
		if !ptrEq(merged.FontName, a.FontName) {
			merged.FontName = nil
		}
		if !ptrEq(merged.FontColor, a.FontColor) {
			merged.FontColor = nil
		}
		if !ptrEq(merged.Subscript, a.Subscript) {
			merged.Subscript = nil
		}
		if !ptrEq(merged.Superscript, a.Superscript) {
			merged.Superscript = nil
		}
		if !ptrEq(merged.Case, a.Case) {
			merged.Case = nil
		}
		if !ptrEq(merged.CommentText, a.CommentText) {
			merged.CommentText = nil
		}
		if !ptrEq(merged.TrackedChange, a.TrackedChange) {
			merged.TrackedChange = nil
		}
		if !sliceEq(merged.Styles, a.Styles) {
			merged.Styles = nil
		}
		if !sliceEq(merged.CommentIDs, a.CommentIDs) {
			merged.CommentIDs = nil
		}
	}
	return merged
}

// Window is the minimal contiguous run span whose concatenated text contains
// a target substring. StartRun/EndRun are half-open run indexes; CharStart/
// CharEnd are offsets into MergedText.
type Window struct {
	StartRun   int
	EndRun     int
	CharStart  int
	CharEnd    int
	MergedText string
}

// FindWindow searches in increasing window-width order, starting at width 1,
// for the smallest run span whose concatenated text contains text. Ties
// break to the leftmost start. Returns nil when no window contains it.
func FindWindow(runs []Run, text string) *Window {
	n := len(runs)
	for w := 1; w <= n; w++ {
		for i := 0; i+w <= n; i++ {
			var sb strings.Builder
			for _, r := range runs[i : i+w] {
				sb.WriteString(r.Text)
			}
			merged := sb.String()
			if idx := strings.Index(merged, text); idx != -1 {
				return &Window{
					StartRun:   i,
					EndRun:     i + w,
					CharStart:  idx,
					CharEnd:    idx + len(text),
					MergedText: merged,
				}
			}
		}
	}
	return nil
}

// DropText removes the first window matching text, keeping the before and
// after fragments of every constituent run and discarding the matched
// middle outright. No match returns the input unchanged.
func DropText(runs []Run, text string) []Run {
	win := FindWindow(runs, text)
	if win == nil {
		return runs
	}

	out := cloneRuns(runs[:win.StartRun])

	offset := 0
	for _, r := range runs[win.StartRun:win.EndRun] {
		rStart := max(0, win.CharStart-offset)
		rEnd := min(len(r.Text), win.CharEnd-offset)

		before, _, after := Split(r, rStart, rEnd)
		if before != nil {
			out = append(out, *before)
		}
		if after != nil {
			out = append(out, *after)
		}
		offset += len(r.Text)
	}

	out = append(out, cloneRuns(runs[win.EndRun:])...)
	return out
}

// ReplaceText replaces the first window matching text with runs parsed from
// htmlReplacement. Matched fragments are kept and marked as deletions, the
// inserted runs are marked as insertions, and commentText (if non-empty)
// attaches to the first inserted run. No match returns the input unchanged.
func ReplaceText(runs []Run, text, htmlReplacement, commentText string) []Run {
	win := FindWindow(runs, text)
	if win == nil {
		return runs
	}

	out := cloneRuns(runs[:win.StartRun])

	var beforeParts, delParts, afterParts []Run
	offset := 0
	for _, r := range runs[win.StartRun:win.EndRun] {
		rStart := max(0, win.CharStart-offset)
		rEnd := min(len(r.Text), win.CharEnd-offset)

		before, middle, after := Split(r, rStart, rEnd)
		if before != nil {
			beforeParts = append(beforeParts, *before)
		}
		if middle != nil {
			track := TrackDelete
			middle.Attributes.TrackedChange = &track
			delParts = append(delParts, *middle)
		}
		if after != nil {
			afterParts = append(afterParts, *after)
		}
		offset += len(r.Text)
	}

	out = append(out, beforeParts...)
	out = append(out, delParts...)

	inserted := FromHTML(htmlReplacement)
	for i := range inserted {
		track := TrackInsert
		inserted[i].Attributes.TrackedChange = &track
		if i == 0 && commentText != "" {
			ct := commentText
			inserted[i].Attributes.CommentText = &ct
		}
	}
	out = append(out, inserted...)

	out = append(out, afterParts...)
	out = append(out, cloneRuns(runs[win.EndRun:])...)
	return out
}

// Text concatenates the full text of all runs.
func Text(runs []Run, mode TextMode) string {
	var sb strings.Builder
	for _, r := range runs {
		sb.WriteString(r.ToText(mode))
	}
	return sb.String()
}

func cloneRuns(runs []Run) []Run {
	out := make([]Run, 0, len(runs))
	for _, r := range runs {
		out = append(out, r.Clone())
	}
	return out
}
