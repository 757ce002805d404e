package document

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dgallion1/docmodel/internal/element"
	"github.com/dgallion1/docmodel/internal/placeholder"
	"github.com/dgallion1/docmodel/internal/run"
)

// Page orientations.
const (
	OrientationPortrait  = "PORTRAIT"
	OrientationLandscape = "LANDSCAPE"
)

// Header owns the run sequence of a layout header.
type Header struct {
	Runs []run.Run `json:"runs"`
	ID   string    `json:"id,omitempty"`
}

// Footer owns the run sequence of a layout footer.
type Footer struct {
	Runs []run.Run `json:"runs"`
	ID   string    `json:"id,omitempty"`
}

// AssignIDs derives the header ID and cascades into its runs.
func (h *Header) AssignIDs(parentID string, index int) {
	h.ID = run.MakeID(parentID, "header", index)
	for i := range h.Runs {
		h.Runs[i].AssignID(h.ID, i)
	}
}

// ToText concatenates run text in order.
func (h *Header) ToText(mode run.TextMode) string {
	return run.Text(h.Runs, mode)
}

// ToHTML renders the header runs inside a <header> wrapper.
func (h *Header) ToHTML() string {
	return "<header>" + runsInnerHTML(h.Runs) + "</header>"
}

// ApplyInlinePlaceholder applies a replacement against the header runs.
func (h *Header) ApplyInlinePlaceholder(ph *placeholder.Placeholder) bool {
	runs, ok := applyInlineToRuns(h.Runs, ph)
	h.Runs = runs
	return ok
}

// ApplyDeletedPlaceholder drops the placeholder's target text.
func (h *Header) ApplyDeletedPlaceholder(ph *placeholder.Placeholder) bool {
	runs, ok := applyDeleteToRuns(h.Runs, ph)
	h.Runs = runs
	return ok
}

// AssignIDs derives the footer ID and cascades into its runs.
func (f *Footer) AssignIDs(parentID string, index int) {
	f.ID = run.MakeID(parentID, "footer", index)
	for i := range f.Runs {
		f.Runs[i].AssignID(f.ID, i)
	}
}

// ToText concatenates run text in order.
func (f *Footer) ToText(mode run.TextMode) string {
	return run.Text(f.Runs, mode)
}

// ToHTML renders the footer runs inside a <footer> wrapper.
func (f *Footer) ToHTML() string {
	return "<footer>" + runsInnerHTML(f.Runs) + "</footer>"
}

// ApplyInlinePlaceholder applies a replacement against the footer runs.
func (f *Footer) ApplyInlinePlaceholder(ph *placeholder.Placeholder) bool {
	runs, ok := applyInlineToRuns(f.Runs, ph)
	f.Runs = runs
	return ok
}

// ApplyDeletedPlaceholder drops the placeholder's target text.
func (f *Footer) ApplyDeletedPlaceholder(ph *placeholder.Placeholder) bool {
	runs, ok := applyDeleteToRuns(f.Runs, ph)
	f.Runs = runs
	return ok
}

func runsInnerHTML(runs []run.Run) string {
	inner := run.ToHTMLAll(runs)
	if inner == "" {
		return "&nbsp;"
	}
	return inner
}

func applyInlineToRuns(runs []run.Run, ph *placeholder.Placeholder) ([]run.Run, bool) {
	if ph.ReplacedText == "" {
		return runs, false
	}
	if !strings.Contains(run.Text(runs, run.ModeFull), ph.Text) {
		return runs, false
	}
	return run.ReplaceText(runs, ph.Text, ph.ReplacedText, ph.CommentText()), true
}

func applyDeleteToRuns(runs []run.Run, ph *placeholder.Placeholder) ([]run.Run, bool) {
	if !strings.Contains(run.Text(runs, run.ModeFull), ph.Text) {
		return runs, false
	}
	return run.DropText(runs, ph.Text), true
}

// Layout groups the elements of one page section together with its optional
// header and footer.
type Layout struct {
	Orientation string            `json:"orientation"`
	Header      *Header           `json:"header,omitempty"`
	Footer      *Footer           `json:"footer,omitempty"`
	Elements    []element.Element `json:"elements"`
	ID          string            `json:"id,omitempty"`
}

// AssignIDs derives the layout ID and cascades into header, footer, and
// every element. Header and footer sit at index 0 under the layout.
func (l *Layout) AssignIDs(parentID string, index int) {
	l.ID = run.MakeID(parentID, "layout", index)

	if l.Header != nil {
		l.Header.AssignIDs(l.ID, 0)
	}
	if l.Footer != nil {
		l.Footer.AssignIDs(l.ID, 0)
	}
	for i, el := range l.Elements {
		el.AssignIDs(l.ID, i)
	}
}

// layoutJSON is the wire shape of a layout; elements carry a type
// discriminator handled by the envelope helpers below.
type layoutJSON struct {
	Orientation string            `json:"orientation"`
	Header      *Header           `json:"header,omitempty"`
	Footer      *Footer           `json:"footer,omitempty"`
	Elements    []json.RawMessage `json:"elements"`
	ID          string            `json:"id,omitempty"`
}

// UnmarshalJSON decodes a layout, dispatching elements on their "type"
// field. Elements of unknown type are silently dropped; that matches the
// upstream extractor contract.
func (l *Layout) UnmarshalJSON(data []byte) error {
	var raw layoutJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	l.Orientation = raw.Orientation
	l.Header = raw.Header
	l.Footer = raw.Footer
	l.ID = raw.ID
	l.Elements = nil

	for _, msg := range raw.Elements {
		el, err := unmarshalElement(msg)
		if err != nil {
			return err
		}
		if el != nil {
			l.Elements = append(l.Elements, el)
		}
	}
	return nil
}

// MarshalJSON encodes a layout, wrapping each element in a type envelope.
func (l Layout) MarshalJSON() ([]byte, error) {
	raw := layoutJSON{
		Orientation: l.Orientation,
		Header:      l.Header,
		Footer:      l.Footer,
		ID:          l.ID,
	}
	for _, el := range l.Elements {
		msg, err := marshalElement(el)
		if err != nil {
			return nil, err
		}
		raw.Elements = append(raw.Elements, msg)
	}
	return json.Marshal(raw)
}

func unmarshalElement(data []byte) (element.Element, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode element type: %w", err)
	}

	switch head.Type {
	case element.TypeParagraph:
		var p element.Paragraph
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("decode paragraph: %w", err)
		}
		return &p, nil
	case element.TypeTable:
		var t element.Table
		if err := json.Unmarshal(data, &t); err != nil {
			return nil, fmt.Errorf("decode table: %w", err)
		}
		return &t, nil
	default:
		return nil, nil
	}
}

func marshalElement(el element.Element) (json.RawMessage, error) {
	switch v := el.(type) {
	case *element.Paragraph:
		return json.Marshal(struct {
			Type string `json:"type"`
			*element.Paragraph
		}{element.TypeParagraph, v})
	case *element.Table:
		return json.Marshal(struct {
			Type string `json:"type"`
			*element.Table
		}{element.TypeTable, v})
	default:
		return nil, fmt.Errorf("unsupported element type %T", el)
	}
}
