package document

import (
	"strings"

	"github.com/dgallion1/docmodel/internal/element"
	"github.com/dgallion1/docmodel/internal/run"
)

// HeadingRef identifies one heading paragraph.
type HeadingRef struct {
	ID      string `json:"id"`
	Heading string `json:"heading"`
	Level   int    `json:"level"`
}

// Section is the content of one heading: the heading text plus the rendered
// elements below it.
type Section struct {
	Heading string   `json:"heading"`
	Level   int      `json:"level"`
	Content []string `json:"content"`
}

// ContentOptions controls what HeadingContent collects.
type ContentOptions struct {
	IncludeCaptions    bool
	IncludeTables      bool
	IncludeSubheadings bool
	Format             element.RenderFormat
}

// HeadingDetail is the full neighborhood of one heading: its parent, the
// headings sharing that parent (the heading itself included), its index
// within that sibling list, and its direct children.
type HeadingDetail struct {
	HeadingRef
	Position int          `json:"position"`
	Parent   *HeadingRef  `json:"parent,omitempty"`
	Siblings []HeadingRef `json:"siblings"`
	Children []HeadingRef `json:"children"`
}

// DetailMode selects which part of a HeadingDetail a caller wants.
type DetailMode string

const (
	DetailFull     DetailMode = "full"
	DetailPosition DetailMode = "position"
	DetailParent   DetailMode = "parent"
	DetailSiblings DetailMode = "siblings"
	DetailChildren DetailMode = "children"
)

// Headings lists every heading paragraph in document order.
func (d *Document) Headings(format element.RenderFormat) []HeadingRef {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.headingsLocked(format)
}

func (d *Document) headingsLocked(format element.RenderFormat) []HeadingRef {
	var out []HeadingRef
	for _, el := range d.elementsLocked() {
		p, ok := el.(*element.Paragraph)
		if !ok || !isHeadingParagraph(p) {
			continue
		}
		out = append(out, HeadingRef{
			ID:      p.ID,
			Heading: renderParagraph(p, format),
			Level:   p.HeadingLevel,
		})
	}
	return out
}

// HeadingContent collects the section under a heading. Collection stops at
// the next heading of the same or a lower level, or at any heading when
// subheadings are excluded. Captions and tables are included on request;
// subheading paragraphs themselves appear in the content when included.
func (d *Document) HeadingContent(headingID string, opts ContentOptions) *Section {
	d.mu.Lock()
	defer d.mu.Unlock()

	elements := d.elementsLocked()
	start := -1
	var heading *element.Paragraph
	for i, el := range elements {
		if p, ok := el.(*element.Paragraph); ok && p.ID == headingID && isHeadingParagraph(p) {
			start = i
			heading = p
			break
		}
	}
	if start < 0 {
		return nil
	}

	section := &Section{
		Heading: renderParagraph(heading, opts.Format),
		Level:   heading.HeadingLevel,
	}

	for i := start + 1; i < len(elements); i++ {
		switch v := elements[i].(type) {
		case *element.Paragraph:
			if isHeadingParagraph(v) {
				if !opts.IncludeSubheadings || v.HeadingLevel <= heading.HeadingLevel {
					return section
				}
				section.Content = append(section.Content, renderParagraph(v, opts.Format))
				continue
			}
			if v.IsCaption {
				if opts.IncludeCaptions {
					section.Content = append(section.Content, renderParagraph(v, opts.Format))
				}
				continue
			}
			section.Content = append(section.Content, renderParagraph(v, opts.Format))
		case *element.Table:
			if opts.IncludeTables {
				section.Content = append(section.Content, renderElement(v, opts.Format))
			}
		}
	}
	return section
}

// HeadingDetails resolves the position, parent, siblings, and children of a
// heading. Parent references are rebuilt first so detail queries stay
// correct after mutations.
func (d *Document) HeadingDetails(headingID string, format element.RenderFormat) *HeadingDetail {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.rebuildHeadingParentsLocked()

	headings := d.headingsLocked(format)
	parents := make(map[string]string, len(headings))
	for _, el := range d.elementsLocked() {
		if p, ok := el.(*element.Paragraph); ok && isHeadingParagraph(p) {
			parents[p.ID] = p.ParentRefID
		}
	}

	var target *HeadingRef
	for i := range headings {
		if headings[i].ID == headingID {
			target = &headings[i]
			break
		}
	}
	if target == nil {
		return nil
	}

	detail := &HeadingDetail{HeadingRef: *target}

	if parentID := parents[target.ID]; parentID != "" {
		for i := range headings {
			if headings[i].ID == parentID {
				parent := headings[i]
				detail.Parent = &parent
				break
			}
		}
	}

	// Siblings share the parent regardless of level, and the heading itself
	// is one of them. Position is its index in that list.
	for _, h := range headings {
		if parents[h.ID] == parents[target.ID] {
			if h.ID == target.ID {
				detail.Position = len(detail.Siblings)
			}
			detail.Siblings = append(detail.Siblings, h)
		}
	}
	for _, h := range headings {
		if parents[h.ID] == target.ID {
			detail.Children = append(detail.Children, h)
		}
	}
	return detail
}

// rebuildHeadingParentsLocked rethreads heading parent references without
// touching caption, intent, or table links.
func (d *Document) rebuildHeadingParentsLocked() {
	headingStack := map[int]string{}
	for _, el := range d.elementsLocked() {
		p, ok := el.(*element.Paragraph)
		if !ok || !isHeadingParagraph(p) {
			continue
		}
		level := p.HeadingLevel
		p.ParentRefID = nearestAncestor(headingStack, level)
		headingStack[level] = p.ID
		for l := range headingStack {
			if l > level {
				delete(headingStack, l)
			}
		}
	}
}

// HeadingPath returns the heading texts from the document root down to the
// element's enclosing heading. For a heading paragraph the path ends with
// its own text.
func (d *Document) HeadingPath(elementID string, format element.RenderFormat) []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	node := d.elementByIDLocked(elementID)
	if node == nil {
		return nil
	}

	var path []string
	var cursor string
	switch v := node.(type) {
	case *element.Paragraph:
		if isHeadingParagraph(v) {
			path = append(path, renderParagraph(v, format))
		}
		cursor = v.ParentRefID
	case *element.Table:
		cursor = v.ParentRefID
	default:
		return nil
	}

	for cursor != "" {
		p, ok := d.elementByIDLocked(cursor).(*element.Paragraph)
		if !ok {
			break
		}
		path = append([]string{renderParagraph(p, format)}, path...)
		cursor = p.ParentRefID
	}
	return path
}

func renderParagraph(p *element.Paragraph, format element.RenderFormat) string {
	if format == element.FormatHTML {
		return p.ToHTML()
	}
	return strings.TrimSpace(p.ToText(run.ModeFull))
}

func renderElement(el element.Element, format element.RenderFormat) string {
	if format == element.FormatHTML {
		return el.ToHTML()
	}
	return el.ToText(run.ModeFull)
}
