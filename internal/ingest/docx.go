// Package ingest builds document trees from .docx byte streams.
package ingest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/dgallion1/docmodel/internal/document"
	"github.com/dgallion1/docmodel/internal/element"
	"github.com/dgallion1/docmodel/internal/run"
)

// FromDocx parses a .docx payload into a Document. The document ID is
// derived from the container content, IDs are assigned, and the hierarchy
// is built with the given style classifier, so the result is immediately
// queryable.
func FromDocx(data []byte, filename string, c element.Classifier) (*document.Document, error) {
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	layout := &document.Layout{Orientation: document.OrientationPortrait}
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		layout.Elements = append(layout.Elements, convertParagraph(para))
	}

	d := document.New(layout)
	d.Filename = filename
	d.ID = document.MakeDocID(document.UID(data, 0))
	d.SetClassifier(c)
	d.AssignIDs(0)
	d.BuildHierarchy()
	return d, nil
}

func convertParagraph(para *docx.Paragraph) *element.Paragraph {
	p := &element.Paragraph{}
	if name := styleName(para); name != "" {
		p.Style = &element.Style{Name: name}
	}
	for _, child := range para.Children {
		r, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		if text := runText(r); text != "" {
			p.Runs = append(p.Runs, run.FromText(text))
		}
	}
	return p
}

// styleName normalizes docx style identifiers like "Heading1" into the
// spelled-out form the classifier's vocabulary uses.
func styleName(para *docx.Paragraph) string {
	if para.Properties == nil || para.Properties.Style == nil {
		return ""
	}
	name := para.Properties.Style.Val
	if rest, ok := strings.CutPrefix(name, "Heading"); ok && rest != "" {
		return "Heading " + strings.TrimSpace(rest)
	}
	return name
}

func runText(r *docx.Run) string {
	var buf strings.Builder
	for _, rc := range r.Children {
		if t, ok := rc.(*docx.Text); ok {
			buf.WriteString(t.Text)
		}
	}
	return buf.String()
}
