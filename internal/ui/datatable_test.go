package ui

import (
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/quay/internal/dataview"
)

type shipment struct {
	ID     string
	Port   string
	Weight *float64
}

func weight(v float64) *float64 { return &v }

func shipmentColumns() []dataview.Column[shipment] {
	return []dataview.Column[shipment]{
		dataview.Keyed("id", "ID", dataview.Field[shipment]("id")).Sorted(),
		dataview.Keyed("port", "Port", dataview.Field[shipment]("port")).Sorted(),
		dataview.Rendered("weight", "Weight",
			func(s shipment) any { return s.Weight },
			func(s shipment) string {
				if s.Weight == nil {
					return "-"
				}
				return "heavy"
			},
		).Sorted(),
	}
}

func shipments() []shipment {
	return []shipment{
		{ID: "A", Port: "Rotterdam", Weight: weight(30)},
		{ID: "B", Port: "hamburg"},
		{ID: "C", Port: "Antwerp", Weight: weight(10)},
	}
}

func newShipmentTable(t *testing.T, opts ...TableOption[shipment]) DataTable[shipment] {
	t.Helper()
	opts = append([]TableOption[shipment]{
		WithIdentity(func(s shipment) string { return s.ID }),
		WithOnRowClick(func(s shipment) tea.Cmd {
			return func() tea.Msg { return s }
		}),
	}, opts...)
	tbl, err := NewDataTable(shipmentColumns(), shipments(), opts...)
	if err != nil {
		t.Fatalf("NewDataTable: %v", err)
	}
	return tbl
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(tbl DataTable[shipment], text string) DataTable[shipment] {
	for _, r := range text {
		tbl, _ = tbl.Update(runes(string(r)))
	}
	return tbl
}

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func ids(rows []shipment) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func clicked(t *testing.T, cmd tea.Cmd) shipment {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected a row command, got nil")
	}
	s, ok := cmd().(shipment)
	if !ok {
		t.Fatalf("row command returned %T, want shipment", cmd())
	}
	return s
}

func TestNewDataTable_RejectsInvalidColumns(t *testing.T) {
	if _, err := NewDataTable[shipment](nil, nil); err == nil {
		t.Fatalf("expected error for empty column set")
	}
	cols := append(shipmentColumns(), dataview.Keyed("id", "Dup", dataview.Field[shipment]("id")))
	if _, err := NewDataTable(cols, shipments()); err == nil {
		t.Fatalf("expected error for duplicate keys")
	}
}

func TestDataTable_SearchTypingFilters(t *testing.T) {
	tbl := newShipmentTable(t)

	tbl, _ = tbl.Update(runes("/"))
	if !tbl.Searching() {
		t.Fatalf("expected search input to be focused")
	}

	tbl = typeText(tbl, "HAM")
	if got := ids(tbl.Rows()); !slices.Equal(got, []string{"B"}) {
		t.Fatalf("rows after typing = %v, want [B]", got)
	}
	if got := tbl.State().Query; got != "HAM" {
		t.Fatalf("query = %q, want HAM", got)
	}

	// j goes to the input, not the cursor
	tbl = typeText(tbl, "j")
	if tbl.Len() != 0 || tbl.Cursor() != 0 {
		t.Fatalf("len=%d cursor=%d, want 0/0", tbl.Len(), tbl.Cursor())
	}
}

func TestDataTable_SearchEnterKeepsEscClears(t *testing.T) {
	tbl := newShipmentTable(t)

	tbl, _ = tbl.Update(runes("/"))
	tbl = typeText(tbl, "am")
	tbl, _ = tbl.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if tbl.Searching() {
		t.Fatalf("enter should blur the input")
	}
	if got := ids(tbl.Rows()); !slices.Equal(got, []string{"A", "B"}) {
		t.Fatalf("rows after enter = %v, want [A B]", got)
	}

	// esc outside the input clears the kept query
	tbl, _ = tbl.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if tbl.Len() != 3 || tbl.State().Query != "" {
		t.Fatalf("esc should clear query, got len=%d query=%q", tbl.Len(), tbl.State().Query)
	}

	tbl, _ = tbl.Update(runes("/"))
	tbl = typeText(tbl, "zzz")
	tbl, _ = tbl.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if tbl.Searching() || tbl.Len() != 3 {
		t.Fatalf("esc in the input should blur and clear, searching=%v len=%d", tbl.Searching(), tbl.Len())
	}
}

func TestDataTable_SortKeysCycle(t *testing.T) {
	tbl := newShipmentTable(t)

	steps := [][]string{
		{"C", "B", "A"}, // Antwerp, hamburg, Rotterdam
		{"A", "B", "C"}, // Rotterdam, hamburg, Antwerp
		{"A", "B", "C"}, // back to original order
	}
	tbl, _ = tbl.Update(runes("2"))
	if got := ids(tbl.Rows()); !slices.Equal(got, steps[0]) {
		t.Fatalf("ascending = %v, want %v", got, steps[0])
	}
	tbl, _ = tbl.Update(runes("2"))
	if got := ids(tbl.Rows()); !slices.Equal(got, steps[1]) {
		t.Fatalf("descending = %v, want %v", got, steps[1])
	}
	if st := tbl.State(); st.SortKey != "port" || st.Direction != dataview.Descending {
		t.Fatalf("state = %+v, want port descending", st)
	}
	tbl, _ = tbl.Update(runes("2"))
	if got := ids(tbl.Rows()); !slices.Equal(got, steps[2]) {
		t.Fatalf("cleared = %v, want %v", got, steps[2])
	}
	if tbl.State().Sorted() {
		t.Fatalf("third press should clear the sort")
	}
}

func TestDataTable_SortMissingValuesLast(t *testing.T) {
	tbl := newShipmentTable(t)

	tbl, _ = tbl.Update(runes("3"))
	if got := ids(tbl.Rows()); !slices.Equal(got, []string{"C", "A", "B"}) {
		t.Fatalf("weight ascending = %v, want [C A B]", got)
	}
	tbl, _ = tbl.Update(runes("3"))
	if got := ids(tbl.Rows()); !slices.Equal(got, []string{"A", "C", "B"}) {
		t.Fatalf("weight descending = %v, want [A C B]", got)
	}
}

func TestDataTable_SelectionFollowsRecord(t *testing.T) {
	tbl := newShipmentTable(t)

	tbl, _ = tbl.Update(runes("j"))
	tbl, _ = tbl.Update(runes("j"))
	if sel, _ := tbl.SelectedRow(); sel.ID != "C" {
		t.Fatalf("selected = %q, want C", sel.ID)
	}

	tbl, _ = tbl.Update(runes("2"))
	if tbl.Cursor() != 0 {
		t.Fatalf("cursor after sort = %d, want 0 (C sorts first)", tbl.Cursor())
	}

	tbl.SetRecords([]shipment{
		{ID: "D", Port: "Aarhus"},
		{ID: "C", Port: "Antwerp", Weight: weight(10)},
	})
	if sel, _ := tbl.SelectedRow(); sel.ID != "C" {
		t.Fatalf("selected after reload = %q, want C", sel.ID)
	}
	if st := tbl.State(); st.SortKey != "port" {
		t.Fatalf("reload dropped sort state: %+v", st)
	}
}

func TestDataTable_EnterActivatesVisibleRecord(t *testing.T) {
	tbl := newShipmentTable(t)

	tbl.SetQuery("rotter")
	_, cmd := tbl.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := clicked(t, cmd); got.ID != "A" {
		t.Fatalf("activated %q, want A", got.ID)
	}
}

func TestDataTable_MouseHeaderAndRow(t *testing.T) {
	tbl := newShipmentTable(t)
	tbl.SetPosition(1, 2)

	// search line 0, header 1, rule 2, rows from 3
	l := tbl.layout()
	if l.searchLine != 0 || l.headerLine != 1 || l.bodyStart != 3 {
		t.Fatalf("layout = %+v", l)
	}

	portX := l.widths[0] + columnGap
	tbl, _ = tbl.Update(click(1+portX, 2+l.headerLine))
	if st := tbl.State(); st.SortKey != "port" || st.Direction != dataview.Ascending {
		t.Fatalf("header click state = %+v, want port ascending", st)
	}

	// Second visible row is B after sorting by port.
	var cmd tea.Cmd
	tbl, cmd = tbl.Update(click(1, 2+l.bodyStart+1))
	if got := clicked(t, cmd); got.ID != "B" {
		t.Fatalf("row click delivered %q, want B", got.ID)
	}
	if tbl.Cursor() != 1 {
		t.Fatalf("cursor = %d, want 1", tbl.Cursor())
	}

	// Clicks in the gap, past the last row or outside the table do nothing.
	before := tbl.State()
	tbl, _ = tbl.Update(click(1+l.widths[0], 2+l.headerLine))
	if tbl.State() != before {
		t.Fatalf("gap click changed state")
	}
	if _, cmd = tbl.Update(click(1, 2+l.bodyStart+5)); cmd != nil {
		t.Fatalf("click below the rows should not activate")
	}
	if _, cmd = tbl.Update(click(0, 0)); cmd != nil {
		t.Fatalf("click outside the table should not activate")
	}

	tbl, _ = tbl.Update(click(1, 2+l.searchLine))
	if !tbl.Searching() {
		t.Fatalf("clicking the search line should focus the input")
	}
}

func TestDataTable_MouseWheelMovesCursor(t *testing.T) {
	tbl := newShipmentTable(t)
	wheel := tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown}

	tbl, _ = tbl.Update(wheel)
	tbl, _ = tbl.Update(wheel)
	tbl, _ = tbl.Update(wheel)
	if tbl.Cursor() != 2 {
		t.Fatalf("cursor = %d, want 2 (clamped)", tbl.Cursor())
	}
}

func TestDataTable_NotSearchable(t *testing.T) {
	tbl := newShipmentTable(t, WithSearchable[shipment](false))

	tbl, _ = tbl.Update(runes("/"))
	if tbl.Searching() {
		t.Fatalf("non-searchable table focused its input")
	}
	tbl.SetQuery("rotter")
	if tbl.Len() != 3 {
		t.Fatalf("non-searchable table filtered: len=%d", tbl.Len())
	}

	first := strings.Split(tbl.View(), "\n")[0]
	if !strings.Contains(first, "ID") {
		t.Fatalf("first line = %q, want header", first)
	}

	// Header is line 0 and rows start at line 2.
	_, cmd := tbl.Update(click(0, 2))
	if got := clicked(t, cmd); got.ID != "A" {
		t.Fatalf("row click delivered %q, want A", got.ID)
	}
}

func TestDataTable_EmptyMessage(t *testing.T) {
	tbl := newShipmentTable(t, WithEmptyMessage[shipment]("Nothing docked"))

	tbl.SetQuery("zzz")
	view := tbl.View()
	if !strings.Contains(view, "Nothing docked") {
		t.Fatalf("view missing empty message:\n%s", view)
	}
	if !strings.Contains(view, "0/3") {
		t.Fatalf("footer missing counts:\n%s", view)
	}
	if cmd := tbl.ActivateRow(); cmd != nil {
		t.Fatalf("activating an empty table returned a command")
	}

	empty, err := NewDataTable(shipmentColumns(), nil)
	if err != nil {
		t.Fatalf("NewDataTable: %v", err)
	}
	if !strings.Contains(empty.View(), defaultEmptyMessage) {
		t.Fatalf("default empty message not rendered")
	}
}

func TestDataTable_ViewShowsSortState(t *testing.T) {
	tbl := newShipmentTable(t)
	tbl.SetSize(60, 8)

	view := tbl.View()
	if lines := strings.Split(view, "\n"); len(lines) != 8 {
		t.Fatalf("view has %d lines, want 8", len(lines))
	}
	if !strings.Contains(view, "Port ↕") {
		t.Fatalf("inactive sortable header should show ↕:\n%s", view)
	}

	tbl, _ = tbl.Update(runes("2"))
	tbl, _ = tbl.Update(runes("2"))
	view = tbl.View()
	if !strings.Contains(view, "Port ▼") || !strings.Contains(view, "sort Port ▼") {
		t.Fatalf("descending indicator missing:\n%s", view)
	}
}

func TestFitWidths(t *testing.T) {
	cases := []struct {
		name   string
		widths []int
		avail  int
		want   []int
	}{
		{"fits", []int{4, 9, 5}, 80, []int{4, 9, 5}},
		{"shrinks_widest", []int{10, 20, 5}, 30, []int{10, 11, 5}},
		{"stops_at_minimum", []int{3, 3}, 2, []int{3, 3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := fitWidths(tc.widths, tc.avail, columnGap)
			if !slices.Equal(got, tc.want) {
				t.Fatalf("fitWidths(%v, %d) = %v, want %v", tc.widths, tc.avail, got, tc.want)
			}
		})
	}
}

func TestColumnAt(t *testing.T) {
	l := tableLayout{widths: []int{4, 9, 5}}
	cases := map[int]int{0: 0, 3: 0, 4: -1, 6: 1, 14: 1, 15: -1, 17: 2, 21: 2, 22: -1}
	for x, want := range cases {
		if got := l.columnAt(x); got != want {
			t.Errorf("columnAt(%d) = %d, want %d", x, got, want)
		}
	}
}

func TestFitCell(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"abcdef", 4, "abc…"},
		{"ab", 4, "ab  "},
		{"a\tb", 3, "a b"},
		{"x", 0, ""},
	}
	for _, tc := range cases {
		if got := fitCell(tc.in, tc.width); got != tc.want {
			t.Errorf("fitCell(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
		}
	}
}
