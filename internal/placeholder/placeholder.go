// Package placeholder defines the pending-edit records produced by the
// matching/replacement pipeline upstream of the document mutation engine.
package placeholder

import (
	"strconv"
	"strings"
)

// Status is the placeholder lifecycle state machine:
// MatchingPending -> {MatchesFound, MatchesNotFound} -> ReplacementPending ->
// {ReplacementDone, ReplacementNotFound}.
type Status string

const (
	StatusMatchingPending     Status = "MatchingPending"
	StatusMatchesFound        Status = "MatchesFound"
	StatusMatchesNotFound     Status = "MatchesNotFound"
	StatusReplacementPending  Status = "ReplacementPending"
	StatusReplacementDone     Status = "ReplacementDone"
	StatusReplacementNotFound Status = "ReplacementNotFound"
)

// FutureElement hints what the replacement should become structurally.
type FutureElement string

const (
	FutureParagraph FutureElement = "Paragraph"
	FutureTable     FutureElement = "Table"
	FutureUnknown   FutureElement = "Unknown"
)

// Type records where in the document the placeholder was found.
type Type string

const (
	TypeInline    Type = "Inline"
	TypeKeyValue  Type = "KeyValue"
	TypeTableCell Type = "TableCell"
	TypeHeading   Type = "Heading"
	TypeCaption   Type = "Caption"
	TypeParagraph Type = "Paragraph"
)

// MatcherType identifies which matcher produced a matched node.
type MatcherType string

const (
	MatcherSMEAdd  MatcherType = "SME_ADD"
	MatcherSMEDrop MatcherType = "SME_DROP"
	MatcherCNMAdd  MatcherType = "CNM_ADD"
	MatcherPWRDrop MatcherType = "PWR_DROP"
)

// InlineContext captures text surrounding an inline placeholder.
type InlineContext struct {
	TextBefore string `json:"text_before,omitempty"`
	TextAfter  string `json:"text_after,omitempty"`
}

// KeyValueContext captures the table caption and key of a key/value slot.
type KeyValueContext struct {
	TableCaption string `json:"table_caption,omitempty"`
	Key          string `json:"key,omitempty"`
}

// TableCellContext captures the caption, header path, and row of a cell.
type TableCellContext struct {
	TableCaption string   `json:"table_caption,omitempty"`
	HeaderPath   []string `json:"header_path,omitempty"`
	Row          int      `json:"row,omitempty"`
}

// ParagraphContext captures neighbouring paragraph text.
type ParagraphContext struct {
	ParaBefore string `json:"para_before,omitempty"`
	ParaAfter  string `json:"para_after,omitempty"`
}

// HeadingContext captures the governing heading and its relatives.
type HeadingContext struct {
	Heading  string           `json:"heading"`
	Level    int              `json:"level"`
	Parent   map[string]any   `json:"parent,omitempty"`
	Children []map[string]any `json:"children,omitempty"`
	Siblings []map[string]any `json:"siblings,omitempty"`
	Position *int             `json:"position,omitempty"`
}

// TemplateText carries instruction/example text extracted from the template.
type TemplateText struct {
	InstructionText string `json:"instruction_text,omitempty"`
	ExampleText     string `json:"example_text,omitempty"`
}

// MatchedNode is one retrieval hit backing a replacement.
type MatchedNode struct {
	ID                 string      `json:"id"`
	Content            string      `json:"content"`
	Index              string      `json:"index"`
	Score              float64     `json:"score"`
	Type               MatcherType `json:"type"`
	HeadingPath        []string    `json:"heading_path"`
	Filename           string      `json:"filename"`
	Prompt             string      `json:"prompt,omitempty"`
	TransformedContent string      `json:"transformed_content,omitempty"`
}

// Placeholder describes a pending edit against one document element.
type Placeholder struct {
	ID                string        `json:"id"`
	ElementID         string        `json:"element_id,omitempty"`
	Text              string        `json:"text"`
	Status            Status        `json:"status"`
	ReplacedText      string        `json:"replaced_text,omitempty"`
	ReplacedReference []string      `json:"replaced_reference,omitempty"`
	ReplacedComment   string        `json:"replaced_comment,omitempty"`
	Deleted           bool          `json:"deleted,omitempty"`
	Type              Type          `json:"type,omitempty"`
	FutureElement     FutureElement `json:"future_element,omitempty"`
	Dependency        []string      `json:"dependency,omitempty"`
	FeedbackCount     int           `json:"feedback_count,omitempty"`

	TemplateText       *TemplateText `json:"template_text,omitempty"`
	SourceInstruction  []string      `json:"source_instruction,omitempty"`
	WritingInstruction []string      `json:"writing_instruction,omitempty"`
	Matches            []MatchedNode `json:"matches,omitempty"`

	InlineData  *InlineContext    `json:"inline_data,omitempty"`
	KeyValue    *KeyValueContext  `json:"keyvalue,omitempty"`
	TableCell   *TableCellContext `json:"tablecell,omitempty"`
	Paragraph   *ParagraphContext `json:"paragraph,omitempty"`
	HeadingInfo *HeadingContext   `json:"heading_info,omitempty"`
}

// MakeID builds a placeholder ID scoped to its target element.
func MakeID(elementID string, index int) string {
	return elementID + "::ph::" + strconv.Itoa(index)
}

// CommentText builds the review comment attached to an applied replacement:
// the replacement comment, if any, followed by a "Sources:" list naming the
// matched nodes referenced by ReplacedReference. Empty when the placeholder
// carries no references.
func (p *Placeholder) CommentText() string {
	if len(p.ReplacedReference) == 0 {
		return ""
	}

	var parts []string
	if p.ReplacedComment != "" {
		parts = append(parts, p.ReplacedComment)
	}

	refSet := make(map[string]struct{}, len(p.ReplacedReference))
	for _, ref := range p.ReplacedReference {
		refSet[ref] = struct{}{}
	}

	var lines []string
	for _, m := range p.Matches {
		if _, ok := refSet[m.ID]; !ok {
			continue
		}
		label := m.Filename
		if len(m.HeadingPath) > 0 {
			label = m.Filename + " > " + strings.Join(m.HeadingPath, " > ")
		}
		lines = append(lines, "- "+label)
	}
	if len(lines) > 0 {
		parts = append(parts, "Sources:\n"+strings.Join(lines, "\n"))
	}

	return strings.Join(parts, "\n\n")
}
