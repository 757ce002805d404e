package document

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/dgallion1/docmodel/internal/element"
	"github.com/dgallion1/docmodel/internal/run"
)

// Document is the root of a parsed document tree. All cache-dependent reads
// and all mutations go through the document's mutex, so a Document is safe
// for concurrent use.
type Document struct {
	Layouts  []*Layout `json:"layouts"`
	ID       string    `json:"id,omitempty"`
	Filename string    `json:"filename,omitempty"`

	mu         sync.Mutex
	classifier element.Classifier

	// elementIndex maps node IDs to pointers deep into the tree. It is
	// built lazily and discarded whenever the tree mutates.
	elementIndex map[string]any
	// paragraphOrder lists paragraph IDs in document order.
	paragraphOrder []string
}

// New builds a document around the given layouts.
func New(layouts ...*Layout) *Document {
	return &Document{Layouts: layouts}
}

// Decode reads a document tree from its JSON form. IDs present in the
// payload are kept as-is; call AssignIDs to rederive them.
func Decode(r io.Reader) (*Document, error) {
	var d Document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &d, nil
}

// Encode writes the document tree as JSON.
func (d *Document) Encode(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(d)
}

// SetClassifier swaps the style classifier used by BuildHierarchy.
func (d *Document) SetClassifier(c element.Classifier) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.classifier = c
}

// AssignIDs rederives every node ID from document order. A previously
// assigned content-derived document ID is kept; otherwise the document
// takes a positional one.
func (d *Document) AssignIDs(docIndex int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.ID == "" {
		d.ID = "doc::" + strconv.Itoa(docIndex)
	}
	for i, l := range d.Layouts {
		l.AssignIDs(d.ID, i)
	}
	d.invalidateLocked()
}

// Elements returns every element across all layouts in document order.
func (d *Document) Elements() []element.Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.elementsLocked()
}

func (d *Document) elementsLocked() []element.Element {
	var out []element.Element
	for _, l := range d.Layouts {
		out = append(out, l.Elements...)
	}
	return out
}

// ToText renders every element's text in document order, one per line.
func (d *Document) ToText(mode run.TextMode) string {
	d.mu.Lock()
	defer d.mu.Unlock()

	var out []byte
	for _, el := range d.elementsLocked() {
		out = append(out, el.ToText(mode)...)
		out = append(out, '\n')
	}
	return string(out)
}
