package element

import (
	"encoding/json"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/dgallion1/docmodel/internal/placeholder"
	"github.com/dgallion1/docmodel/internal/run"
)

// TableKind is the shape classification of a table.
type TableKind string

const (
	// TableLayout is a single-column table used purely for page layout.
	TableLayout TableKind = "Layout"
	// TableKeyValue is a two-column table whose rows are key/value pairs.
	TableKeyValue TableKind = "Keyvalue"
	// TableUnknown is any other shape.
	TableUnknown TableKind = "Unknown"
)

// RenderMode selects which part of a table ToHTMLMode renders.
type RenderMode string

const (
	RenderFull          RenderMode = "full"
	RenderHeader        RenderMode = "header"
	RenderRows          RenderMode = "rows"
	RenderRow           RenderMode = "row"
	RenderRowWithHeader RenderMode = "row_with_header"
)

// RenderFormat selects text or HTML output for header lookups.
type RenderFormat string

const (
	FormatText RenderFormat = "text"
	FormatHTML RenderFormat = "html"
)

// TableCell owns the paragraphs of one grid cell. Spans are always >= 1.
type TableCell struct {
	Paragraphs []*Paragraph `json:"paragraphs"`
	Colspan    int          `json:"colspan"`
	Rowspan    int          `json:"rowspan"`
	ID         string       `json:"id,omitempty"`
}

// NewTableCell builds a cell with default 1x1 span.
func NewTableCell(paragraphs ...*Paragraph) *TableCell {
	return &TableCell{Paragraphs: paragraphs, Colspan: 1, Rowspan: 1}
}

// UnmarshalJSON decodes a cell, defaulting omitted spans to 1.
func (c *TableCell) UnmarshalJSON(data []byte) error {
	type plain TableCell
	tmp := plain{Colspan: 1, Rowspan: 1}
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*c = TableCell(tmp)
	return nil
}

// AssignIDs derives the cell ID from its table position and cascades into
// the cell's paragraphs.
func (c *TableCell) AssignIDs(parentID string, row, col int) {
	c.ID = parentID + ":row::" + strconv.Itoa(row) + ":cell::" + strconv.Itoa(col)
	for i, p := range c.Paragraphs {
		if p != nil {
			p.AssignIDs(c.ID, i)
		}
	}
}

// ToText joins the cell's paragraph texts with newlines.
func (c *TableCell) ToText(mode run.TextMode) string {
	var parts []string
	for _, p := range c.Paragraphs {
		if p != nil {
			parts = append(parts, p.ToText(mode))
		}
	}
	return strings.Join(parts, "\n")
}

// ToHTML renders the cell as a <td> with span attributes when above 1.
func (c *TableCell) ToHTML() string {
	var attrs []string
	if c.Colspan > 1 {
		attrs = append(attrs, `colspan="`+strconv.Itoa(c.Colspan)+`"`)
	}
	if c.Rowspan > 1 {
		attrs = append(attrs, `rowspan="`+strconv.Itoa(c.Rowspan)+`"`)
	}
	attrStr := ""
	if len(attrs) > 0 {
		attrStr = " " + strings.Join(attrs, " ")
	}
	return "<td" + attrStr + ">" + c.innerHTML() + "</td>"
}

func (c *TableCell) innerHTML() string {
	var sb strings.Builder
	for _, p := range c.Paragraphs {
		if p != nil {
			sb.WriteString(p.ToHTML())
		}
	}
	if sb.Len() == 0 {
		return "&nbsp;"
	}
	return sb.String()
}

// ApplyInlinePlaceholder replaces the placeholder's target text within the
// first paragraph that contains it.
func (c *TableCell) ApplyInlinePlaceholder(ph *placeholder.Placeholder) bool {
	if ph.ReplacedText == "" {
		return false
	}
	comment := ph.CommentText()
	for _, p := range c.Paragraphs {
		if p == nil {
			continue
		}
		if strings.Contains(p.ToText(run.ModeFull), ph.Text) {
			p.Runs = run.ReplaceText(p.Runs, ph.Text, ph.ReplacedText, comment)
			return true
		}
	}
	return false
}

// ApplyDeletedPlaceholder drops the placeholder's target text from the
// first paragraph that contains it.
func (c *TableCell) ApplyDeletedPlaceholder(ph *placeholder.Placeholder) bool {
	for _, p := range c.Paragraphs {
		if p == nil {
			continue
		}
		if strings.Contains(p.ToText(run.ModeFull), ph.Text) {
			p.Runs = run.DropText(p.Runs, ph.Text)
			return true
		}
	}
	return false
}

// Table owns a row-major cell grid. A nil cell slot means "covered by a
// previous row's rowspan", as opposed to a present-but-textless cell.
type Table struct {
	Rows [][]*TableCell `json:"rows"`
	ID   string         `json:"id,omitempty"`

	ParentRefID  string `json:"parent_ref_id,omitempty"`
	CaptionRefID string `json:"caption_ref_id,omitempty"`
}

// ElementID returns the assigned hierarchical ID.
func (t *Table) ElementID() string { return t.ID }

// AssignIDs derives the table ID from its parent and cascades into every
// present cell.
func (t *Table) AssignIDs(parentID string, index int) {
	t.ID = run.MakeID(parentID, "table", index)
	for r, row := range t.Rows {
		for c, cell := range row {
			if cell != nil {
				cell.AssignIDs(t.ID, r, c)
			}
		}
	}
}

// ColCount returns the column count of the grid. Tables with zero rows are
// a caller bug; this panics rather than answering.
func (t *Table) ColCount() int { return len(t.Rows[0]) }

// RowCount returns the number of grid rows.
func (t *Table) RowCount() int { return len(t.Rows) }

// BodyCount returns the number of body rows after the header split.
func (t *Table) BodyCount() int { return len(t.BodyRows()) }

// Kind classifies the table shape: one column is a Layout table; a table
// whose first row's first two cells span all columns is a Keyvalue table;
// anything else is Unknown.
func (t *Table) Kind() TableKind {
	colCount := t.ColCount()
	colspanSum := 0
	first := t.Rows[0]
	for _, cell := range first[:min(2, len(first))] {
		if cell != nil {
			colspanSum += cell.Colspan
		}
	}
	if colCount == 1 {
		return TableLayout
	}
	if colCount-colspanSum == 0 {
		return TableKeyValue
	}
	return TableUnknown
}

// splitRows partitions the grid into header and body. Keyvalue tables are
// treated as two parallel columns: the key column becomes a single header
// row and the value column a single body row. Otherwise the header is the
// top N rows where N is the max rowspan among the first row's cells.
func (t *Table) splitRows() (header, body [][]*TableCell) {
	if len(t.Rows) == 0 {
		return nil, nil
	}

	if t.Kind() == TableKeyValue {
		headerRow := make([]*TableCell, 0, len(t.Rows))
		bodyRow := make([]*TableCell, 0, len(t.Rows))
		for _, row := range t.Rows {
			headerRow = append(headerRow, row[0])
			bodyRow = append(bodyRow, row[1])
		}
		return [][]*TableCell{headerRow}, [][]*TableCell{bodyRow}
	}

	headerDepth := t.headerDepth()
	return t.Rows[:headerDepth], t.Rows[headerDepth:]
}

func (t *Table) headerDepth() int {
	depth := 1
	for _, cell := range t.Rows[0] {
		if cell != nil && cell.Rowspan > depth {
			depth = cell.Rowspan
		}
	}
	return depth
}

// HeaderRows returns the header partition of the grid.
func (t *Table) HeaderRows() [][]*TableCell {
	header, _ := t.splitRows()
	return header
}

// BodyRows returns the body partition of the grid.
func (t *Table) BodyRows() [][]*TableCell {
	_, body := t.splitRows()
	return body
}

// ToText renders the grid as tab-separated lines; nil cells render empty.
func (t *Table) ToText(mode run.TextMode) string {
	lines := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			if cell == nil {
				cells = append(cells, "")
			} else {
				cells = append(cells, cell.ToText(mode))
			}
		}
		lines = append(lines, strings.Join(cells, "\t"))
	}
	return strings.Join(lines, "\n")
}

// ToHTML renders the complete table.
func (t *Table) ToHTML() string {
	return t.ToHTMLMode(RenderFull, 0)
}

// ToHTMLMode renders a selected part of the table. row is a 0-based body
// row index, used only by RenderRow and RenderRowWithHeader. Span
// attributes are emitted with the originating cell only; slots covered by a
// prior row's rowspan are skipped via a per-column tracker.
func (t *Table) ToHTMLMode(mode RenderMode, row int) string {
	if len(t.Rows) == 0 {
		return "<table></table>"
	}

	header, body := t.splitRows()

	type renderRow struct {
		cells    []*TableCell
		isHeader bool
	}
	var render []renderRow

	switch mode {
	case RenderFull:
		for i, r := range t.Rows {
			render = append(render, renderRow{r, i < len(header)})
		}
	case RenderHeader:
		for _, r := range header {
			render = append(render, renderRow{r, true})
		}
	case RenderRows:
		for _, r := range body {
			render = append(render, renderRow{r, false})
		}
	case RenderRow:
		if row < 0 || row >= len(body) {
			return "<table></table>"
		}
		render = append(render, renderRow{body[row], false})
	case RenderRowWithHeader:
		if row < 0 || row >= len(body) {
			return "<table></table>"
		}
		for _, r := range header {
			render = append(render, renderRow{r, true})
		}
		render = append(render, renderRow{body[row], false})
	default:
		return "<table></table>"
	}

	var sb strings.Builder
	sb.WriteString("<table>")
	covered := map[int]int{} // column -> remaining rows covered by a rowspan

	for _, rr := range render {
		sb.WriteString("<tr>")
		tag := "td"
		if rr.isHeader {
			tag = "th"
		}

		col := 0
		pendingColspan := 0
		for _, cell := range rr.cells {
			if pendingColspan > 0 {
				// Slot consumed by the previous cell's colspan.
				pendingColspan--
				continue
			}
			if covered[col] > 0 {
				// Slot covered by a rowspan from a prior row.
				covered[col]--
				col++
				continue
			}

			if cell == nil {
				sb.WriteString("<" + tag + ">&nbsp;</" + tag + ">")
				col++
				continue
			}

			pendingColspan = cell.Colspan - 1
			for c := col; c < col+cell.Colspan; c++ {
				if cell.Rowspan > 1 {
					covered[c] = cell.Rowspan - 1
				}
			}

			var attrs []string
			if cell.Colspan > 1 {
				attrs = append(attrs, `colspan="`+strconv.Itoa(cell.Colspan)+`"`)
			}
			if cell.Rowspan > 1 {
				attrs = append(attrs, `rowspan="`+strconv.Itoa(cell.Rowspan)+`"`)
			}
			attrStr := ""
			if len(attrs) > 0 {
				attrStr = " " + strings.Join(attrs, " ")
			}

			sb.WriteString("<" + tag + attrStr + ">" + cell.innerHTML() + "</" + tag + ">")
			col += cell.Colspan
		}
		sb.WriteString("</tr>")
	}

	sb.WriteString("</table>")
	return sb.String()
}

// ColHeader returns the de-duplicated rendered header values above the
// given column, one per header row. Columns past the grid return nothing.
func (t *Table) ColHeader(col int, format RenderFormat, mode run.TextMode) []string {
	if col > len(t.Rows[0])-1 {
		return nil
	}
	var values []string
	for r := 0; r < t.headerDepth(); r++ {
		values = append(values, t.renderCell(t.Rows[r][col], format, mode))
	}
	return dedupe(values)
}

// RowHeader returns the rendered first-column value of the given row.
func (t *Table) RowHeader(row int, format RenderFormat, mode run.TextMode) []string {
	if row > len(t.Rows)-1 {
		return nil
	}
	return []string{t.renderCell(t.Rows[row][0], format, mode)}
}

// Header resolves the header for a cell position: the row header for
// Keyvalue tables, the column header otherwise.
func (t *Table) Header(row, col int, format RenderFormat, mode run.TextMode) []string {
	if t.Kind() == TableKeyValue {
		return t.RowHeader(row, format, mode)
	}
	return t.ColHeader(col, format, mode)
}

func (t *Table) renderCell(cell *TableCell, format RenderFormat, mode run.TextMode) string {
	if format == FormatHTML {
		return cell.ToHTML()
	}
	return cell.ToText(mode)
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := values[:0]
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// TableFromHTMLOrText builds a table from replacement content: an HTML
// <table> when one is present, otherwise delimited text with the delimiter
// auto-detected (tab, else pipe, else comma). Unparseable content degrades
// to an empty table rather than failing.
func TableFromHTMLOrText(content string) *Table {
	content = strings.TrimSpace(content)
	if content == "" {
		return &Table{}
	}
	if strings.Contains(strings.ToLower(content), "<table") {
		return tableFromHTML(content)
	}
	return tableFromDelimited(content)
}

// tableFromHTML parses <table>/<tr>/<td|th> markup with rowspan/colspan
// attributes into cells each holding one synthesized paragraph.
func tableFromHTML(fragment string) *Table {
	z := html.NewTokenizer(strings.NewReader(fragment))

	table := &Table{}
	var currentRow []*TableCell
	var currentCell *TableCell
	var buf strings.Builder
	inRow, inCell := false, false

	flushCell := func() {
		if currentCell == nil {
			return
		}
		text := strings.TrimSpace(buf.String())
		currentCell.Paragraphs = []*Paragraph{ParagraphFromText(text)}
		currentRow = append(currentRow, currentCell)
		currentCell = nil
		buf.Reset()
		inCell = false
	}

	for {
		switch z.Next() {
		case html.ErrorToken:
			return table

		case html.StartTagToken:
			tok := z.Token()
			switch tok.Data {
			case "tr":
				currentRow = []*TableCell{}
				inRow = true
			case "td", "th":
				currentCell = NewTableCell()
				for _, attr := range tok.Attr {
					switch attr.Key {
					case "rowspan":
						if n, err := strconv.Atoi(attr.Val); err == nil {
							currentCell.Rowspan = n
						}
					case "colspan":
						if n, err := strconv.Atoi(attr.Val); err == nil {
							currentCell.Colspan = n
						}
					}
				}
				buf.Reset()
				inCell = true
			}

		case html.TextToken:
			if inCell {
				buf.WriteString(z.Token().Data)
			}

		case html.EndTagToken:
			switch z.Token().Data {
			case "td", "th":
				flushCell()
			case "tr":
				if inRow {
					flushCell()
					table.Rows = append(table.Rows, currentRow)
					currentRow = nil
					inRow = false
				}
			}
		}
	}
}

// tableFromDelimited parses delimiter-separated lines into an unspanned
// grid, one cell per field.
func tableFromDelimited(text string) *Table {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, strings.TrimSpace(line))
		}
	}
	if len(lines) == 0 {
		return &Table{}
	}

	delimiter := detectDelimiter(lines[0])

	table := &Table{}
	for _, line := range lines {
		var row []*TableCell
		for _, part := range strings.Split(line, delimiter) {
			row = append(row, NewTableCell(ParagraphFromText(strings.TrimSpace(part))))
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

func detectDelimiter(line string) string {
	if strings.Contains(line, "\t") {
		return "\t"
	}
	if strings.Contains(line, "|") {
		return "|"
	}
	return ","
}
