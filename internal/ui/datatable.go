package ui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"golang.org/x/text/language"

	"github.com/five82/quay/internal/dataview"
)

const (
	defaultPlaceholder  = "Search..."
	defaultEmptyMessage = "No data"

	columnGap      = 2
	minColumnWidth = 3
	maxColumnWidth = 48
	indicatorWidth = 2 // " ▲"
)

// TableOption configures a DataTable.
type TableOption[T any] func(*DataTable[T])

// WithSearchable shows or hides the search input. A table that is not
// searchable never filters.
func WithSearchable[T any](on bool) TableOption[T] {
	return func(t *DataTable[T]) { t.searchable = on }
}

// WithPlaceholder sets the hint shown in the empty search input.
func WithPlaceholder[T any](text string) TableOption[T] {
	return func(t *DataTable[T]) { t.placeholder = text }
}

// WithEmptyMessage sets the text shown when no row survives the filter.
func WithEmptyMessage[T any](msg string) TableOption[T] {
	return func(t *DataTable[T]) { t.emptyMessage = msg }
}

// WithOnRowClick sets the callback invoked with the visible record when a row
// is activated. The returned command is handed to the runtime as is.
func WithOnRowClick[T any](fn func(T) tea.Cmd) TableOption[T] {
	return func(t *DataTable[T]) { t.onRowClick = fn }
}

// WithIdentity names records so the cursor follows a record across refreshes,
// sorting and filtering.
func WithIdentity[T any](fn func(T) string) TableOption[T] {
	return func(t *DataTable[T]) { t.identity = fn }
}

// WithLocale selects the locale used for matching and collation.
func WithLocale[T any](tag language.Tag) TableOption[T] {
	return func(t *DataTable[T]) { t.locale = tag }
}

// WithStyles sets the table styles.
func WithStyles[T any](s TableStyles) TableOption[T] {
	return func(t *DataTable[T]) { t.styles = s }
}

// WithKeyMap replaces the default bindings.
func WithKeyMap[T any](k TableKeyMap) TableOption[T] {
	return func(t *DataTable[T]) { t.keys = k }
}

// DataTable is a Bubble Tea component rendering a dataview.View: a search
// input, a header row whose sortable cells cycle the sort, the visible rows
// and a footer. Use it like a bubbles component, storing the value returned
// by Update.
type DataTable[T any] struct {
	view   dataview.View[T]
	input  textinput.Model
	help   help.Model
	keys   TableKeyMap
	styles TableStyles

	searchable   bool
	placeholder  string
	emptyMessage string
	onRowClick   func(T) tea.Cmd
	identity     func(T) string
	locale       language.Tag

	searching bool
	cursor    int
	offset    int
	width     int
	height    int
	x, y      int // screen origin for mouse hit testing
}

// NewDataTable validates columns and returns a table showing records in their
// original order.
func NewDataTable[T any](columns []dataview.Column[T], records []T, opts ...TableOption[T]) (DataTable[T], error) {
	t := DataTable[T]{
		keys:         DefaultTableKeyMap(),
		styles:       DefaultTableStyles(),
		searchable:   true,
		placeholder:  defaultPlaceholder,
		emptyMessage: defaultEmptyMessage,
		locale:       language.Und,
		width:        80,
		height:       20,
	}
	for _, opt := range opts {
		opt(&t)
	}

	viewOpts := []dataview.Option{
		dataview.WithSearchable(t.searchable),
		dataview.WithLocale(t.locale),
	}
	if t.identity != nil {
		viewOpts = append(viewOpts, dataview.WithIdentity(t.identity))
	}
	v, err := dataview.New(columns, records, viewOpts...)
	if err != nil {
		return DataTable[T]{}, fmt.Errorf("new data table: %w", err)
	}
	t.view = v

	t.input = textinput.New()
	t.input.Prompt = "/ "
	t.input.Placeholder = t.placeholder
	t.help = help.New()
	t.applyStyles()
	t.SetSize(t.width, t.height)
	return t, nil
}

// Update handles key and mouse input.
func (t DataTable[T]) Update(msg tea.Msg) (DataTable[T], tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if t.searching {
			return t.updateSearch(msg)
		}
		return t.handleKey(msg)
	case tea.MouseMsg:
		return t.handleMouse(msg)
	}

	if t.searching {
		var cmd tea.Cmd
		t.input, cmd = t.input.Update(msg)
		return t, cmd
	}
	return t, nil
}

func (t DataTable[T]) updateSearch(msg tea.KeyMsg) (DataTable[T], tea.Cmd) {
	switch {
	case key.Matches(msg, t.keys.Confirm):
		t.blurSearch()
		return t, nil
	case key.Matches(msg, t.keys.Cancel):
		t.blurSearch()
		t.input.SetValue("")
		t.applyQuery("")
		return t, nil
	}

	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	if q := t.input.Value(); q != t.view.State().Query {
		t.applyQuery(q)
	}
	return t, cmd
}

func (t DataTable[T]) handleKey(msg tea.KeyMsg) (DataTable[T], tea.Cmd) {
	switch {
	case key.Matches(msg, t.keys.Search):
		return t, t.focusSearch()
	case key.Matches(msg, t.keys.ClearQuery):
		if t.view.State().Query != "" {
			t.input.SetValue("")
			t.applyQuery("")
		}
	case key.Matches(msg, t.keys.Up):
		t.setCursor(t.cursor - 1)
	case key.Matches(msg, t.keys.Down):
		t.setCursor(t.cursor + 1)
	case key.Matches(msg, t.keys.PageUp):
		t.setCursor(t.cursor - t.chrome().bodyHeight)
	case key.Matches(msg, t.keys.PageDown):
		t.setCursor(t.cursor + t.chrome().bodyHeight)
	case key.Matches(msg, t.keys.Top):
		t.setCursor(0)
	case key.Matches(msg, t.keys.Bottom):
		t.setCursor(t.view.Len() - 1)
	case key.Matches(msg, t.keys.Activate):
		return t, t.ActivateRow()
	case key.Matches(msg, t.keys.Sort):
		s := msg.String()
		if len(s) == 1 {
			idx := int(s[0] - '1')
			if cols := t.view.Columns(); idx >= 0 && idx < len(cols) {
				t.ActivateHeader(cols[idx].Key)
			}
		}
	}
	return t, nil
}

func (t DataTable[T]) handleMouse(msg tea.MouseMsg) (DataTable[T], tea.Cmd) {
	if msg.Action != tea.MouseActionPress {
		return t, nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		t.setCursor(t.cursor - 1)
		return t, nil
	case tea.MouseButtonWheelDown:
		t.setCursor(t.cursor + 1)
		return t, nil
	case tea.MouseButtonLeft:
	default:
		return t, nil
	}

	col, row := msg.X-t.x, msg.Y-t.y
	if col < 0 || col >= t.width || row < 0 || row >= t.height {
		return t, nil
	}

	l := t.layout()
	switch {
	case row == l.searchLine:
		return t, t.focusSearch()
	case row == l.headerLine:
		if i := l.columnAt(col); i >= 0 {
			t.ActivateHeader(t.view.Columns()[i].Key)
		}
	case row >= l.bodyStart && row < l.bodyStart+l.bodyHeight:
		idx := t.offset + row - l.bodyStart
		if idx < t.view.Len() {
			t.setCursor(idx)
			return t, t.ActivateRow()
		}
	}
	return t, nil
}

func (t *DataTable[T]) focusSearch() tea.Cmd {
	if !t.searchable {
		return nil
	}
	t.searching = true
	return t.input.Focus()
}

func (t *DataTable[T]) blurSearch() {
	t.searching = false
	t.input.Blur()
}

func (t *DataTable[T]) applyQuery(q string) {
	t.preserveSelection(func() { t.view.SetQuery(q) })
}

// preserveSelection runs mutate and moves the cursor back onto the record it
// pointed at, when the table has an identity and the record is still visible.
func (t *DataTable[T]) preserveSelection(mutate func()) {
	id := ""
	if item, ok := t.view.Row(t.cursor); ok {
		id = t.view.ID(item)
	}
	mutate()
	if idx := t.view.IndexOf(id); idx >= 0 {
		t.setCursor(idx)
		return
	}
	t.setCursor(t.cursor)
}

func (t *DataTable[T]) setCursor(i int) {
	n := t.view.Len()
	if n == 0 {
		t.cursor, t.offset = 0, 0
		return
	}
	t.cursor = min(max(i, 0), n-1)

	body := t.chrome().bodyHeight
	if t.cursor < t.offset {
		t.offset = t.cursor
	}
	if t.cursor >= t.offset+body {
		t.offset = t.cursor - body + 1
	}
	t.offset = max(min(t.offset, n-body), 0)
}

// ActivateRow invokes the row callback with the record under the cursor.
func (t *DataTable[T]) ActivateRow() tea.Cmd {
	item, ok := t.view.Row(t.cursor)
	if !ok || t.onRowClick == nil {
		return nil
	}
	return t.onRowClick(item)
}

// ActivateHeader advances the sort cycle of the column with the given key.
// It reports false for unknown or non-sortable columns.
func (t *DataTable[T]) ActivateHeader(key string) bool {
	var ok bool
	t.preserveSelection(func() { ok = t.view.ActivateHeader(key) })
	return ok
}

// SetRecords replaces the records. Sort, query and the selected record are kept.
func (t *DataTable[T]) SetRecords(records []T) {
	t.preserveSelection(func() { t.view.SetRecords(records) })
}

// SetQuery replaces the search query as if it had been typed.
func (t *DataTable[T]) SetQuery(q string) {
	if !t.searchable {
		return
	}
	t.input.SetValue(q)
	t.applyQuery(q)
}

// SetSize sets the outer dimensions of the table.
func (t *DataTable[T]) SetSize(width, height int) {
	t.width = max(width, 1)
	t.height = max(height, 1)
	t.input.Width = max(t.width-ansi.StringWidth(t.input.Prompt)-1, 1)
	t.help.Width = t.width
	t.setCursor(t.cursor)
}

// SetPosition sets the screen cell of the table's top-left corner. Mouse
// events are interpreted relative to it.
func (t *DataTable[T]) SetPosition(x, y int) {
	t.x, t.y = x, y
}

// SetStyles replaces the styles.
func (t *DataTable[T]) SetStyles(s TableStyles) {
	t.styles = s
	t.applyStyles()
}

func (t *DataTable[T]) applyStyles() {
	t.input.PromptStyle = t.styles.SearchPrompt
	t.input.TextStyle = t.styles.SearchText
	t.input.PlaceholderStyle = t.styles.Placeholder
	t.help.Styles.ShortKey = t.styles.HelpKey
	t.help.Styles.ShortDesc = t.styles.HelpDesc
	t.help.Styles.ShortSeparator = t.styles.HelpDesc
}

// Rows returns the visible records.
func (t DataTable[T]) Rows() []T { return t.view.Rows() }

// Len returns the number of visible rows.
func (t DataTable[T]) Len() int { return t.view.Len() }

// Total returns the number of records.
func (t DataTable[T]) Total() int { return t.view.Total() }

// State returns the sort and query state.
func (t DataTable[T]) State() dataview.State { return t.view.State() }

// Searching reports whether the search input has focus.
func (t DataTable[T]) Searching() bool { return t.searching }

// Cursor returns the visible index of the selected row.
func (t DataTable[T]) Cursor() int { return t.cursor }

// SelectedRow returns the record under the cursor.
func (t DataTable[T]) SelectedRow() (T, bool) { return t.view.Row(t.cursor) }

type tableLayout struct {
	searchLine int // -1 when the input is hidden
	headerLine int
	bodyStart  int
	bodyHeight int
	widths     []int
}

// columnAt maps an x offset to a column index, or -1 for gaps and overflow.
func (l tableLayout) columnAt(x int) int {
	pos := 0
	for i, w := range l.widths {
		if x >= pos && x < pos+w {
			return i
		}
		pos += w + columnGap
	}
	return -1
}

func (t *DataTable[T]) chrome() tableLayout {
	l := tableLayout{searchLine: -1}
	line := 0
	if t.searchable {
		l.searchLine = line
		line++
	}
	l.headerLine = line
	l.bodyStart = line + 2 // header and rule
	l.bodyHeight = max(t.height-l.bodyStart-1, 1)
	return l
}

func (t *DataTable[T]) layout() tableLayout {
	l := t.chrome()
	l.widths = t.columnWidths()
	return l
}

func (t *DataTable[T]) columnWidths() []int {
	cols := t.view.Columns()
	natural := make([]int, len(cols))
	for i, col := range cols {
		natural[i] = ansi.StringWidth(col.Header)
		if col.Sortable {
			natural[i] += indicatorWidth
		}
	}
	for _, item := range t.view.Rows() {
		for i, col := range cols {
			natural[i] = max(natural[i], ansi.StringWidth(cleanCell(dataview.DisplayValue(col, item))))
		}
	}
	for i := range natural {
		natural[i] = min(max(natural[i], minColumnWidth), maxColumnWidth)
	}
	return fitWidths(natural, t.width, columnGap)
}

// fitWidths shrinks the widest columns one cell at a time until the row
// fits avail or every column is at minColumnWidth.
func fitWidths(widths []int, avail, gap int) []int {
	out := slices.Clone(widths)
	total := gap * (len(out) - 1)
	for _, w := range out {
		total += w
	}
	for ; total > avail; total-- {
		widest := 0
		for i, w := range out {
			if w > out[widest] {
				widest = i
			}
		}
		if out[widest] <= minColumnWidth {
			break
		}
		out[widest]--
	}
	return out
}

// View renders the table.
func (t DataTable[T]) View() string {
	l := t.layout()
	lines := make([]string, 0, t.height)

	if l.searchLine >= 0 {
		lines = append(lines, lipgloss.NewStyle().Width(t.width).MaxWidth(t.width).Render(t.input.View()))
	}
	lines = append(lines,
		t.renderHeader(l.widths),
		t.styles.Rule.Render(strings.Repeat("─", t.width)),
	)

	blank := t.styles.Cell.Width(t.width).Render("")
	if t.view.IsEmpty() {
		lines = append(lines, t.styles.Empty.Width(t.width).Render(fitCell(t.emptyMessage, t.width)))
		for i := 1; i < l.bodyHeight; i++ {
			lines = append(lines, blank)
		}
	} else {
		end := min(t.offset+l.bodyHeight, t.view.Len())
		for i := t.offset; i < end; i++ {
			lines = append(lines, t.renderRow(i, l.widths))
		}
		for i := end - t.offset; i < l.bodyHeight; i++ {
			lines = append(lines, blank)
		}
	}

	lines = append(lines, t.renderFooter())
	return strings.Join(lines, "\n")
}

func (t DataTable[T]) renderHeader(widths []int) string {
	cols := t.view.Columns()
	cells := make([]string, len(cols))
	for i, col := range cols {
		label := col.Header
		style := t.styles.Header
		if col.Sortable {
			style = t.styles.HeaderSortable
			active, dir := t.view.HeaderState(col.Key)
			if active {
				style = t.styles.HeaderActive
			}
			label += " " + sortIndicator(active, dir)
		}
		cells[i] = style.Render(fitCell(label, widths[i]))
	}
	return t.styles.Header.Width(t.width).MaxWidth(t.width).Render(strings.Join(cells, strings.Repeat(" ", columnGap)))
}

func (t DataTable[T]) renderRow(i int, widths []int) string {
	cells := t.view.Cells(i)
	for c := range cells {
		cells[c] = fitCell(cells[c], widths[c])
	}
	line := strings.Join(cells, strings.Repeat(" ", columnGap))
	if i == t.cursor {
		return t.styles.Selected.Width(t.width).MaxWidth(t.width).Render(line)
	}
	return t.styles.Cell.Width(t.width).MaxWidth(t.width).Render(line)
}

func (t DataTable[T]) renderFooter() string {
	st := t.view.State()
	parts := []string{fmt.Sprintf("%d/%d", t.view.Len(), t.view.Total())}
	if col, ok := t.sortColumn(); ok {
		parts = append(parts, "sort "+col.Header+" "+sortIndicator(true, st.Direction))
	}
	if st.Query != "" {
		parts = append(parts, fmt.Sprintf("filter %q", st.Query))
	}
	left := t.styles.Footer.Render(strings.Join(parts, " · "))

	bindings := t.keys.ShortHelp()
	if t.searching {
		bindings = t.keys.searchHelp()
	}
	right := t.help.ShortHelpView(bindings)

	gap := t.width - ansi.StringWidth(left) - ansi.StringWidth(right)
	if gap < 1 {
		return ansi.Truncate(left, t.width, "…")
	}
	return left + strings.Repeat(" ", gap) + right
}

func (t DataTable[T]) sortColumn() (dataview.Column[T], bool) {
	key := t.view.State().SortKey
	for _, col := range t.view.Columns() {
		if key != "" && col.Key == key {
			return col, true
		}
	}
	return dataview.Column[T]{}, false
}

func sortIndicator(active bool, dir dataview.Direction) string {
	switch {
	case !active:
		return "↕"
	case dir == dataview.Descending:
		return "▼"
	default:
		return "▲"
	}
}

// cleanCell flattens control whitespace so a cell stays on one line.
func cleanCell(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == '\t' {
			return ' '
		}
		return r
	}, s)
}

// fitCell truncates or pads s to exactly width display cells.
func fitCell(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(cleanCell(s), width, "…")
	if pad := width - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}
