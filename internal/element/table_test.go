package element

import (
	"strings"
	"testing"

	"github.com/dgallion1/docmodel/internal/placeholder"
	"github.com/dgallion1/docmodel/internal/run"
)

func cell(text string) *TableCell {
	return NewTableCell(ParagraphFromText(text))
}

func spanCell(text string, rowspan, colspan int) *TableCell {
	c := cell(text)
	c.Rowspan = rowspan
	c.Colspan = colspan
	return c
}

func TestTableKind(t *testing.T) {
	layout := &Table{Rows: [][]*TableCell{{cell("only")}}}
	if got := layout.Kind(); got != TableLayout {
		t.Errorf("expected Layout, got %q", got)
	}

	keyvalue := &Table{Rows: [][]*TableCell{
		{cell("k1"), cell("v1")},
		{cell("k2"), cell("v2")},
	}}
	if got := keyvalue.Kind(); got != TableKeyValue {
		t.Errorf("expected Keyvalue, got %q", got)
	}

	unknown := &Table{Rows: [][]*TableCell{
		{cell("a"), cell("b"), cell("c")},
	}}
	if got := unknown.Kind(); got != TableUnknown {
		t.Errorf("expected Unknown, got %q", got)
	}
}

func TestTableRowsSplit_HeaderByRowspan(t *testing.T) {
	tbl := &Table{Rows: [][]*TableCell{
		{spanCell("h", 2, 1), cell("h1"), cell("h2")},
		{nil, cell("h1b"), cell("h2b")},
		{cell("a"), cell("b"), cell("c")},
	}}
	header := tbl.HeaderRows()
	body := tbl.BodyRows()
	if len(header) != 2 {
		t.Fatalf("expected 2 header rows, got %d", len(header))
	}
	if len(body) != 1 {
		t.Fatalf("expected 1 body row, got %d", len(body))
	}
	if tbl.BodyCount() != 1 {
		t.Errorf("expected body count 1, got %d", tbl.BodyCount())
	}
}

func TestTableRowsSplit_KeyValueTransposed(t *testing.T) {
	tbl := &Table{Rows: [][]*TableCell{
		{cell("Name"), cell("Ada")},
		{cell("Role"), cell("Engineer")},
	}}
	header := tbl.HeaderRows()
	body := tbl.BodyRows()
	if len(header) != 1 || len(body) != 1 {
		t.Fatalf("expected 1 header and 1 body row, got %d/%d", len(header), len(body))
	}
	if header[0][0].ToText(run.ModeFull) != "Name" || header[0][1].ToText(run.ModeFull) != "Role" {
		t.Error("expected header row to be the key column")
	}
	if body[0][0].ToText(run.ModeFull) != "Ada" || body[0][1].ToText(run.ModeFull) != "Engineer" {
		t.Error("expected body row to be the value column")
	}
}

func TestTableToText(t *testing.T) {
	tbl := &Table{Rows: [][]*TableCell{
		{cell("a"), nil},
		{cell("b"), cell("c")},
	}}
	want := "a\t\nb\tc"
	if got := tbl.ToText(run.ModeFull); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestTableToHTML_SpansAndNilCells(t *testing.T) {
	tbl := &Table{Rows: [][]*TableCell{
		{spanCell("span", 2, 1), cell("top")},
		{nil, cell("bottom")},
		{cell("x"), cell("y")},
	}}
	got := tbl.ToHTML()

	if !strings.Contains(got, `rowspan="2"`) {
		t.Errorf("missing rowspan attribute in %q", got)
	}
	// The spanned-over slot must not render a cell: the second row has
	// exactly one cell.
	rows := strings.Split(got, "<tr>")
	if len(rows) != 4 {
		t.Fatalf("expected 3 rows, got %q", got)
	}
	secondRow := rows[2]
	if strings.Count(secondRow, "<td") != 1 {
		t.Errorf("expected 1 cell in spanned-over row, got %q", secondRow)
	}
}

func TestTableToHTML_HeaderTags(t *testing.T) {
	tbl := &Table{Rows: [][]*TableCell{
		{cell("h1"), cell("h2"), cell("h3")},
		{cell("a"), cell("b"), cell("c")},
	}}
	got := tbl.ToHTML()
	if !strings.Contains(got, "<th>") {
		t.Errorf("expected header cells in %q", got)
	}
	if strings.Count(got, "<th") != 3 || strings.Count(got, "<td") != 3 {
		t.Errorf("expected 3 th and 3 td, got %q", got)
	}
}

func TestTableToHTMLMode_RowSelection(t *testing.T) {
	tbl := &Table{Rows: [][]*TableCell{
		{cell("h1"), cell("h2"), cell("h3")},
		{cell("a1"), cell("a2"), cell("a3")},
		{cell("b1"), cell("b2"), cell("b3")},
	}}

	rowHTML := tbl.ToHTMLMode(RenderRow, 1)
	if !strings.Contains(rowHTML, "b1") || strings.Contains(rowHTML, "a1") || strings.Contains(rowHTML, "h1") {
		t.Errorf("unexpected row render %q", rowHTML)
	}

	withHeader := tbl.ToHTMLMode(RenderRowWithHeader, 0)
	if !strings.Contains(withHeader, "h1") || !strings.Contains(withHeader, "a1") || strings.Contains(withHeader, "b1") {
		t.Errorf("unexpected row_with_header render %q", withHeader)
	}

	if got := tbl.ToHTMLMode(RenderRow, 5); got != "<table></table>" {
		t.Errorf("expected empty table for out-of-range row, got %q", got)
	}
}

func TestTableToHTMLMode_Empty(t *testing.T) {
	tbl := &Table{}
	if got := tbl.ToHTML(); got != "<table></table>" {
		t.Errorf("expected empty table, got %q", got)
	}
}

func TestColHeader(t *testing.T) {
	tbl := &Table{Rows: [][]*TableCell{
		{spanCell("grp", 1, 2), nil, cell("other")},
		{cell("a"), cell("b"), cell("c")},
	}}
	// Header depth is 1; column 2 header is "other".
	got := tbl.ColHeader(2, FormatText, run.ModeDrop)
	if len(got) != 1 || got[0] != "other" {
		t.Errorf("unexpected col header %v", got)
	}
	if got := tbl.ColHeader(9, FormatText, run.ModeDrop); got != nil {
		t.Errorf("expected nil for out-of-range column, got %v", got)
	}
}

func TestColHeader_Deduplicated(t *testing.T) {
	tbl := &Table{Rows: [][]*TableCell{
		{spanCell("same", 2, 1), cell("x")},
		{cell("same"), cell("y")},
		{cell("body"), cell("z")},
	}}
	got := tbl.ColHeader(0, FormatText, run.ModeDrop)
	if len(got) != 1 || got[0] != "same" {
		t.Errorf("expected de-duplicated header, got %v", got)
	}
}

func TestRowHeaderAndHeader(t *testing.T) {
	kv := &Table{Rows: [][]*TableCell{
		{cell("Name"), cell("Ada")},
		{cell("Role"), cell("Engineer")},
	}}
	if got := kv.Header(1, 1, FormatText, run.ModeDrop); len(got) != 1 || got[0] != "Role" {
		t.Errorf("expected keyvalue row header, got %v", got)
	}

	grid := &Table{Rows: [][]*TableCell{
		{cell("h1"), cell("h2"), cell("h3")},
		{cell("a"), cell("b"), cell("c")},
	}}
	if got := grid.Header(1, 1, FormatText, run.ModeDrop); len(got) != 1 || got[0] != "h2" {
		t.Errorf("expected column header, got %v", got)
	}
}

func TestTableFromHTML(t *testing.T) {
	tbl := TableFromHTMLOrText(`<table><tr><th rowspan="2">A</th><td>B</td></tr><tr><td colspan="3">C</td></tr></table>`)
	if len(tbl.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(tbl.Rows))
	}
	if tbl.Rows[0][0].Rowspan != 2 {
		t.Errorf("expected rowspan 2, got %d", tbl.Rows[0][0].Rowspan)
	}
	if tbl.Rows[1][0].Colspan != 3 {
		t.Errorf("expected colspan 3, got %d", tbl.Rows[1][0].Colspan)
	}
	if got := tbl.Rows[0][1].ToText(run.ModeFull); got != "B" {
		t.Errorf("expected cell text B, got %q", got)
	}
}

func TestTableFromDelimited(t *testing.T) {
	tests := []struct {
		name    string
		content string
		cols    int
		first   string
	}{
		{"tabs", "a\tb\tc\nd\te\tf", 3, "a"},
		{"pipes", "a|b\nc|d", 2, "a"},
		{"commas", "a,b,c", 3, "a"},
	}
	for _, tt := range tests {
		tbl := TableFromHTMLOrText(tt.content)
		if len(tbl.Rows) == 0 || len(tbl.Rows[0]) != tt.cols {
			t.Fatalf("%s: unexpected shape %+v", tt.name, tbl.Rows)
		}
		if got := tbl.Rows[0][0].ToText(run.ModeFull); got != tt.first {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.first, got)
		}
		if tbl.Rows[0][0].Rowspan != 1 || tbl.Rows[0][0].Colspan != 1 {
			t.Errorf("%s: delimited cells must not carry spans", tt.name)
		}
	}
}

func TestTableFromHTMLOrText_Empty(t *testing.T) {
	tbl := TableFromHTMLOrText("   ")
	if len(tbl.Rows) != 0 {
		t.Errorf("expected empty table, got %+v", tbl.Rows)
	}
}

func TestTableAssignIDs(t *testing.T) {
	tbl := &Table{Rows: [][]*TableCell{{cell("a"), nil}}}
	tbl.AssignIDs("doc::0:layout::0", 1)
	if tbl.ID != "doc::0:layout::0:table::1" {
		t.Errorf("unexpected table id %q", tbl.ID)
	}
	if tbl.Rows[0][0].ID != "doc::0:layout::0:table::1:row::0:cell::0" {
		t.Errorf("unexpected cell id %q", tbl.Rows[0][0].ID)
	}
}

func TestTableCellPlaceholders(t *testing.T) {
	c := cell("Hello World")
	ph := &placeholder.Placeholder{Text: "World", ReplacedText: "<em>Go</em>"}
	if !c.ApplyInlinePlaceholder(ph) {
		t.Fatal("expected inline placeholder to apply")
	}
	if got := c.ToText(run.ModeFull); got != "Hello WorldGo" {
		t.Errorf("expected %q, got %q", "Hello WorldGo", got)
	}

	c2 := cell("remove me")
	if !c2.ApplyDeletedPlaceholder(&placeholder.Placeholder{Text: " me"}) {
		t.Fatal("expected deleted placeholder to apply")
	}
	if got := c2.ToText(run.ModeFull); got != "remove" {
		t.Errorf("expected %q, got %q", "remove", got)
	}
}
