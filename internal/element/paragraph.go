package element

import (
	"strconv"
	"strings"

	"github.com/dgallion1/docmodel/internal/placeholder"
	"github.com/dgallion1/docmodel/internal/run"
)

// Style is a paragraph style: the name drives semantic classification, the
// remaining attributes drive HTML rendering.
type Style struct {
	Name         string   `json:"name"`
	Alignment    *string  `json:"alignment,omitempty"` // LEFT, RIGHT, CENTER, JUSTIFY
	SpaceBefore  *float64 `json:"space_before,omitempty"`
	SpaceAfter   *float64 `json:"space_after,omitempty"`
	OutlineLevel *int     `json:"outline_level,omitempty"`
	Bold         *bool    `json:"bold,omitempty"`
	Italic       *bool    `json:"italic,omitempty"`
	FontSize     *float64 `json:"font_size,omitempty"`
	FontName     *string  `json:"font_name,omitempty"`
	FontColor    *string  `json:"font_color,omitempty"`
	Underline    *bool    `json:"underline,omitempty"`
	Case         *string  `json:"case,omitempty"`

	// Word layout properties.
	LeftIndent       *float64 `json:"left_indent,omitempty"`
	RightIndent      *float64 `json:"right_indent,omitempty"`
	HangingIndent    *float64 `json:"hanging_indent,omitempty"`
	LeftTabStop      *float64 `json:"left_tab_stop,omitempty"`
	CenterTabStop    *float64 `json:"center_tab_stop,omitempty"`
	RightTabStop     *float64 `json:"right_tab_stop,omitempty"`
	LineSpacingRule  *string  `json:"line_spacing_rule,omitempty"`
	LineSpacingValue *float64 `json:"line_spacing_value,omitempty"`
	KeepWithNext     *bool    `json:"keep_with_next,omitempty"`
	PageBreakBefore  *bool    `json:"page_break_before,omitempty"`
	WidowControl     *bool    `json:"widow_control,omitempty"`

	// Footer border properties.
	AddFooterBorderTop   *bool    `json:"add_footer_border_top,omitempty"`
	AddBorderTopIfNoText *bool    `json:"add_border_top_if_no_text,omitempty"`
	BorderStyle          *string  `json:"border_style,omitempty"`
	BorderColor          *string  `json:"border_color,omitempty"`
	BorderSize           *float64 `json:"border_size,omitempty"`
}

// Classify matches the style name against the heading/caption vocabulary.
// Nil styles classify as nothing.
func (s *Style) Classify(c Classifier) (StyleKind, int) {
	if s == nil || s.Name == "" {
		return "", 0
	}
	return c.ClassifyStyleName(s.Name)
}

// Paragraph owns an ordered run sequence and carries the classification
// flags derived by the hierarchy builder.
type Paragraph struct {
	Style *Style    `json:"style,omitempty"`
	Runs  []run.Run `json:"runs"`
	ID    string    `json:"id,omitempty"`

	// ParentRefID points at the governing heading paragraph; it is a back
	// reference resolved through the document index, never an owning link.
	ParentRefID string `json:"parent_ref_id,omitempty"`

	IsCaption    bool `json:"is_caption,omitempty"`
	IsHeading    bool `json:"is_heading,omitempty"`
	HeadingLevel int  `json:"heading_level,omitempty"`

	IsExample     bool `json:"is_example,omitempty"`
	IsInstruction bool `json:"is_instruction,omitempty"`

	IsList    bool   `json:"is_list,omitempty"`
	ListType  string `json:"list_type,omitempty"`
	ListLevel int    `json:"list_level,omitempty"`
}

// ParagraphFromText builds an unstyled paragraph holding a single run.
func ParagraphFromText(text string) *Paragraph {
	return &Paragraph{Runs: []run.Run{run.FromText(text)}}
}

// ElementID returns the assigned hierarchical ID.
func (p *Paragraph) ElementID() string { return p.ID }

// AssignIDs derives this paragraph's ID from its parent and cascades into
// its runs.
func (p *Paragraph) AssignIDs(parentID string, index int) {
	p.ID = run.MakeID(parentID, "para", index)
	for i := range p.Runs {
		p.Runs[i].AssignID(p.ID, i)
	}
}

// ToText concatenates run text in order.
func (p *Paragraph) ToText(mode run.TextMode) string {
	return run.Text(p.Runs, mode)
}

// ToHTML renders a <p> carrying CSS derived from the paragraph style, with
// the runs rendered inside. An empty paragraph renders a &nbsp; body.
func (p *Paragraph) ToHTML() string {
	var styles []string

	if s := p.Style; s != nil {
		if s.Alignment != nil {
			alignMap := map[string]string{
				"LEFT":    "left",
				"RIGHT":   "right",
				"CENTER":  "center",
				"JUSTIFY": "justify",
			}
			if css, ok := alignMap[*s.Alignment]; ok {
				styles = append(styles, "text-align: "+css)
			}
		}
		if s.SpaceBefore != nil {
			styles = append(styles, "margin-top: "+formatPt(*s.SpaceBefore))
		}
		if s.SpaceAfter != nil {
			styles = append(styles, "margin-bottom: "+formatPt(*s.SpaceAfter))
		}
		if s.LeftIndent != nil {
			styles = append(styles, "margin-left: "+formatPt(*s.LeftIndent))
		}
		if s.RightIndent != nil {
			styles = append(styles, "margin-right: "+formatPt(*s.RightIndent))
		}
		if s.HangingIndent != nil {
			styles = append(styles, "text-indent: "+formatPt(-*s.HangingIndent))
		}
		if s.LineSpacingRule != nil && s.LineSpacingValue != nil {
			styles = append(styles, "line-height: "+strconv.FormatFloat(*s.LineSpacingValue, 'f', -1, 64))
		}
		if s.PageBreakBefore != nil && *s.PageBreakBefore {
			styles = append(styles, "break-before: page")
		}
	}

	styleAttr := ""
	if len(styles) > 0 {
		styleAttr = ` style="` + strings.Join(styles, "; ") + `"`
	}

	inner := run.ToHTMLAll(p.Runs)
	if inner == "" {
		inner = "&nbsp;"
	}
	return "<p" + styleAttr + ">" + inner + "</p>"
}

func formatPt(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "pt"
}

// ClassifyIntent inspects every run's resolved color. It classifies only
// when all runs carry a color and agree on it (pairwise distance within
// consensusThreshold); the consensus color then matches instruction green
// or example red within intentThreshold, or neither.
func (p *Paragraph) ClassifyIntent() Intent {
	green, _ := hexToRGB(instructionGreen)
	red, _ := hexToRGB(exampleRed)

	var colors []rgb
	for _, r := range p.Runs {
		hex := r.Color()
		if hex == "" {
			return ""
		}
		c, ok := hexToRGB(hex)
		if !ok {
			return ""
		}
		colors = append(colors, c)
	}
	if len(colors) == 0 {
		return ""
	}

	base := colors[0]
	for _, c := range colors[1:] {
		if colorDistance(base, c) > consensusThreshold {
			return ""
		}
	}

	if colorDistance(base, green) < intentThreshold {
		return IntentInstruction
	}
	if colorDistance(base, red) < intentThreshold {
		return IntentExample
	}
	return ""
}

// ApplyInlinePlaceholder applies a ReplacementDone placeholder as a
// run-level text replacement. Returns false when the placeholder carries no
// replacement or its target text is not present.
func (p *Paragraph) ApplyInlinePlaceholder(ph *placeholder.Placeholder) bool {
	if ph.ReplacedText == "" {
		return false
	}
	if !strings.Contains(p.ToText(run.ModeFull), ph.Text) {
		return false
	}
	p.Runs = run.ReplaceText(p.Runs, ph.Text, ph.ReplacedText, ph.CommentText())
	return true
}

// ApplyDeletedPlaceholder removes the placeholder's target text outright.
func (p *Paragraph) ApplyDeletedPlaceholder(ph *placeholder.Placeholder) bool {
	if !strings.Contains(p.ToText(run.ModeFull), ph.Text) {
		return false
	}
	p.Runs = run.DropText(p.Runs, ph.Text)
	return true
}
