package document

import (
	"strings"

	"github.com/dgallion1/docmodel/internal/element"
	"github.com/dgallion1/docmodel/internal/run"
)

// ElementByID resolves a node anywhere in the tree by its assigned ID.
// The result is one of *Layout, *Header, *Footer, *element.Paragraph,
// *element.Table, *element.TableCell, or *run.Run; nil when the ID is
// unknown. The index is built on first use.
func (d *Document) ElementByID(id string) any {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.elementByIDLocked(id)
}

// InvalidateIndexes discards the lazy caches. Callers that mutate the tree
// through their own references must call this before the next read.
func (d *Document) InvalidateIndexes() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.invalidateLocked()
}

func (d *Document) invalidateLocked() {
	d.elementIndex = nil
	d.paragraphOrder = nil
}

// commitMutationLocked funnels every internal mutation through one place so
// no stale cache can outlive a tree edit.
func (d *Document) commitMutationLocked() {
	d.invalidateLocked()
}

func (d *Document) elementByIDLocked(id string) any {
	if d.elementIndex == nil {
		d.buildElementIndexLocked()
	}
	return d.elementIndex[id]
}

// buildElementIndexLocked walks the whole tree once, registering every
// addressable node down to individual runs.
func (d *Document) buildElementIndexLocked() {
	idx := make(map[string]any)

	indexRuns := func(runs []run.Run) {
		for i := range runs {
			if runs[i].ID != "" {
				idx[runs[i].ID] = &runs[i]
			}
		}
	}
	indexParagraph := func(p *element.Paragraph) {
		if p == nil {
			return
		}
		if p.ID != "" {
			idx[p.ID] = p
		}
		indexRuns(p.Runs)
	}

	for _, l := range d.Layouts {
		if l.ID != "" {
			idx[l.ID] = l
		}
		if l.Header != nil {
			if l.Header.ID != "" {
				idx[l.Header.ID] = l.Header
			}
			indexRuns(l.Header.Runs)
		}
		if l.Footer != nil {
			if l.Footer.ID != "" {
				idx[l.Footer.ID] = l.Footer
			}
			indexRuns(l.Footer.Runs)
		}
		for _, el := range l.Elements {
			switch v := el.(type) {
			case *element.Paragraph:
				indexParagraph(v)
			case *element.Table:
				if v.ID != "" {
					idx[v.ID] = v
				}
				for _, row := range v.Rows {
					for _, cell := range row {
						if cell == nil {
							continue
						}
						if cell.ID != "" {
							idx[cell.ID] = cell
						}
						for _, p := range cell.Paragraphs {
							indexParagraph(p)
						}
					}
				}
			}
		}
	}

	d.elementIndex = idx
}

func (d *Document) buildParagraphOrderLocked() {
	if d.elementIndex == nil {
		d.buildElementIndexLocked()
	}
	d.paragraphOrder = d.paragraphOrder[:0]
	for _, l := range d.Layouts {
		for _, el := range l.Elements {
			if p, ok := el.(*element.Paragraph); ok {
				d.paragraphOrder = append(d.paragraphOrder, p.ID)
			}
		}
	}
}

// NextParagraphText returns the text of the nearest following top-level
// paragraph. It stops at headings and captions and skips paragraphs whose
// rendered text is blank. The second result reports whether such a
// paragraph exists.
func (d *Document) NextParagraphText(paragraphID string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.adjacentParagraphTextLocked(paragraphID, 1)
}

// PrevParagraphText is the backwards counterpart of NextParagraphText.
func (d *Document) PrevParagraphText(paragraphID string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.adjacentParagraphTextLocked(paragraphID, -1)
}

func (d *Document) adjacentParagraphTextLocked(paragraphID string, step int) (string, bool) {
	if len(d.paragraphOrder) == 0 {
		d.buildParagraphOrderLocked()
	}

	pos := -1
	for i, id := range d.paragraphOrder {
		if id == paragraphID {
			pos = i
			break
		}
	}
	if pos < 0 {
		return "", false
	}

	for i := pos + step; i >= 0 && i < len(d.paragraphOrder); i += step {
		p, ok := d.elementByIDLocked(d.paragraphOrder[i]).(*element.Paragraph)
		if !ok {
			return "", false
		}
		if isHeadingParagraph(p) || p.IsCaption {
			return "", false
		}
		if text := strings.TrimSpace(p.ToText(run.ModeFull)); text != "" {
			return text, true
		}
	}
	return "", false
}

func isHeadingParagraph(p *element.Paragraph) bool {
	return p.IsHeading || p.HeadingLevel > 0
}
