package document

import (
	"github.com/dgallion1/docmodel/internal/element"
	"github.com/dgallion1/docmodel/internal/placeholder"
)

// elementReplacement is a deferred structural edit: the element with the
// old ID is spliced out and the new elements take its slot.
type elementReplacement struct {
	oldElementID string
	newElements  []element.Element
}

// ApplyPlaceholders applies a batch of resolved placeholders to the tree.
// Deleted placeholders drop their target text in place. Completed
// placeholders apply inline to headers, footers, and table cells; for
// paragraphs, a placeholder whose future element is a table replaces the
// whole paragraph with a parsed table, and anything else applies inline.
// Structural replacements are deferred until the in-place pass is done so
// element identity stays stable while matching. All caches are invalidated
// afterwards.
func (d *Document) ApplyPlaceholders(phs []placeholder.Placeholder) {
	if len(phs) == 0 {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	var structural []elementReplacement

	for i := range phs {
		ph := &phs[i]

		if ph.Deleted {
			d.applyDeletedLocked(ph)
			continue
		}
		if ph.Status != placeholder.StatusReplacementDone {
			continue
		}

		switch v := d.elementByIDLocked(ph.ElementID).(type) {
		case *Header:
			v.ApplyInlinePlaceholder(ph)
		case *Footer:
			v.ApplyInlinePlaceholder(ph)
		case *element.TableCell:
			v.ApplyInlinePlaceholder(ph)
		case *element.Paragraph:
			if op := structuralReplacement(v, ph); op != nil {
				structural = append(structural, *op)
				continue
			}
			v.ApplyInlinePlaceholder(ph)
		}
	}

	for _, op := range structural {
		d.spliceElementLocked(op)
	}

	d.commitMutationLocked()
}

func (d *Document) applyDeletedLocked(ph *placeholder.Placeholder) {
	switch v := d.elementByIDLocked(ph.ElementID).(type) {
	case *Header:
		v.ApplyDeletedPlaceholder(ph)
	case *Footer:
		v.ApplyDeletedPlaceholder(ph)
	case *element.TableCell:
		v.ApplyDeletedPlaceholder(ph)
	case *element.Paragraph:
		v.ApplyDeletedPlaceholder(ph)
	}
}

// structuralReplacement decides whether a completed placeholder replaces
// its paragraph outright. Only table futures with replacement content do;
// the splice happens even when the content parses to an empty grid.
func structuralReplacement(p *element.Paragraph, ph *placeholder.Placeholder) *elementReplacement {
	if ph.FutureElement != placeholder.FutureTable || ph.ReplacedText == "" {
		return nil
	}
	table := element.TableFromHTMLOrText(ph.ReplacedText)
	if table == nil {
		return nil
	}
	table.ParentRefID = p.ParentRefID
	return &elementReplacement{
		oldElementID: p.ID,
		newElements:  []element.Element{table},
	}
}

// spliceElementLocked swaps one element for N in its layout. A missing old
// element is a no-op; the placeholder batch may have deleted it already.
func (d *Document) spliceElementLocked(op elementReplacement) {
	for _, l := range d.Layouts {
		for i, el := range l.Elements {
			if el.ElementID() != op.oldElementID {
				continue
			}
			next := make([]element.Element, 0, len(l.Elements)-1+len(op.newElements))
			next = append(next, l.Elements[:i]...)
			next = append(next, op.newElements...)
			next = append(next, l.Elements[i+1:]...)
			l.Elements = next
			return
		}
	}
}
