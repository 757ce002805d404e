package document

import (
	"strings"

	"github.com/dgallion1/docmodel/internal/element"
	"github.com/dgallion1/docmodel/internal/run"
)

// IndexType tags an outline node with the retrieval granularity its subtree
// supports.
type IndexType string

const (
	IndexOutline     IndexType = "section@outline"
	IndexPara        IndexType = "section@para"
	IndexParaChunked IndexType = "section@chunked"
	IndexTable       IndexType = "table@full"
	IndexTableRow    IndexType = "table@row"
	IndexTableCell   IndexType = "table@cell"
	IndexTableHeader IndexType = "table@header"
)

// IndexItem is one node of the document outline tree.
type IndexItem struct {
	ID       string       `json:"id"`
	Label    string       `json:"label"`
	Index    IndexType    `json:"index"`
	Children []*IndexItem `json:"child,omitempty"`
}

// FileIndex is the outline of one file: its document ID, source filename,
// and the root nodes of the outline forest.
type FileIndex struct {
	ID       string       `json:"id"`
	Filename string       `json:"filename"`
	Nodes    []*IndexItem `json:"nodes"`
}

// BuildIndex derives the outline forest from the hierarchy links. Headings
// become outline nodes, plain paragraphs paragraph nodes, tables table
// nodes labeled by their caption when one exists. Nodes attach to their
// parent heading's node; nodes without a resolvable parent become roots.
func (d *Document) BuildIndex(filename string) *FileIndex {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := &FileIndex{ID: d.ID, Filename: filename}
	nodeByID := make(map[string]*IndexItem)

	attach := func(item *IndexItem, parentRefID string) {
		if parent, ok := nodeByID[parentRefID]; ok && parentRefID != "" {
			parent.Children = append(parent.Children, item)
		} else {
			out.Nodes = append(out.Nodes, item)
		}
	}

	for _, el := range d.elementsLocked() {
		switch v := el.(type) {
		case *element.Paragraph:
			if v.IsCaption {
				continue
			}
			if isHeadingParagraph(v) {
				item := &IndexItem{
					ID:    v.ID,
					Label: strings.TrimSpace(v.ToText(run.ModeFull)),
					Index: IndexOutline,
				}
				nodeByID[v.ID] = item
				attach(item, v.ParentRefID)
				continue
			}
			item := &IndexItem{
				ID:    v.ID,
				Label: "Paragraph " + v.ID,
				Index: IndexPara,
			}
			attach(item, v.ParentRefID)

		case *element.Table:
			item := &IndexItem{
				ID:    v.ID,
				Label: d.tableLabelLocked(v),
				Index: IndexTable,
			}
			attach(item, v.ParentRefID)
		}
	}
	return out
}

func (d *Document) tableLabelLocked(t *element.Table) string {
	if t.CaptionRefID != "" {
		if p, ok := d.elementByIDLocked(t.CaptionRefID).(*element.Paragraph); ok {
			if label := strings.TrimSpace(p.ToText(run.ModeFull)); label != "" {
				return label
			}
		}
	}
	return "Table " + t.ID
}
