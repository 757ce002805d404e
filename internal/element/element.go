// Package element implements the block-level members of a document layout:
// paragraphs composed of styled runs, and tables composed of span-aware
// cells. Elements form a closed variant; consumers type-switch over the two
// concrete types.
package element

import "github.com/dgallion1/docmodel/internal/run"

// Element type discriminators used by the serialized form.
const (
	TypeParagraph = "Paragraph"
	TypeTable     = "Table"
)

// Element is the closed union of layout children: *Paragraph or *Table.
type Element interface {
	// ElementID returns the assigned hierarchical ID.
	ElementID() string
	// AssignIDs derives the element's ID from its parent and cascades into
	// children.
	AssignIDs(parentID string, index int)
	// ToText renders the element as plain text under the given mode.
	ToText(mode run.TextMode) string
	// ToHTML renders the element as HTML.
	ToHTML() string

	isElement()
}

func (*Paragraph) isElement() {}
func (*Table) isElement()     {}
