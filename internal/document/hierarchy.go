package document

import "github.com/dgallion1/docmodel/internal/element"

// BuildHierarchy classifies every paragraph (heading, caption, intent) and
// threads parent references through the tree in a single pass. Headings
// attach to the nearest prior heading of a strictly lower level, captions
// and plain paragraphs to the last heading, and tables additionally pick up
// the immediately preceding caption.
func (d *Document) BuildHierarchy() {
	d.mu.Lock()
	defer d.mu.Unlock()

	classifier := d.classifier
	if classifier.Score == nil {
		classifier = element.DefaultClassifier()
	}

	// headingStack tracks the last heading ID seen per level.
	headingStack := map[int]string{}
	lastHeading := ""
	lastCaption := ""

	for _, el := range d.elementsLocked() {
		switch v := el.(type) {
		case *element.Paragraph:
			kind, level := v.Style.Classify(classifier)

			if kind == element.KindHeading && level > 0 {
				v.IsHeading = true
				v.HeadingLevel = level
				v.ParentRefID = nearestAncestor(headingStack, level)

				headingStack[level] = v.ID
				for l := range headingStack {
					if l > level {
						delete(headingStack, l)
					}
				}
				lastHeading = v.ID
				lastCaption = ""
				continue
			}

			if kind == element.KindCaption {
				v.IsCaption = true
				v.ParentRefID = lastHeading
				lastCaption = v.ID
				continue
			}

			classifyIntent(v)
			v.ParentRefID = lastHeading
			lastCaption = ""

		case *element.Table:
			v.ParentRefID = lastHeading
			if lastCaption != "" {
				v.CaptionRefID = lastCaption
			}
			lastCaption = ""

			for _, row := range v.Rows {
				for _, cell := range row {
					if cell == nil {
						continue
					}
					for _, p := range cell.Paragraphs {
						if p != nil {
							classifyIntent(p)
						}
					}
				}
			}
		}
	}

	d.commitMutationLocked()
}

// nearestAncestor finds the last heading at the closest level strictly
// below the given one.
func nearestAncestor(stack map[int]string, level int) string {
	for l := level - 1; l > 0; l-- {
		if id, ok := stack[l]; ok {
			return id
		}
	}
	return ""
}

func classifyIntent(p *element.Paragraph) {
	switch p.ClassifyIntent() {
	case element.IntentInstruction:
		p.IsInstruction = true
	case element.IntentExample:
		p.IsExample = true
	}
}
