package classic

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"golang.org/x/text/language"

	"github.com/five82/quay/internal/dataview"
)

const (
	defaultPlaceholder  = "Search..."
	defaultEmptyMessage = "No data"
)

// Option configures a Table.
type Option[T any] func(*Table[T])

// WithSearchable shows or hides the search field.
func WithSearchable[T any](on bool) Option[T] {
	return func(t *Table[T]) { t.searchable = on }
}

// WithPlaceholder sets the hint shown in the empty search field.
func WithPlaceholder[T any](text string) Option[T] {
	return func(t *Table[T]) { t.placeholder = text }
}

// WithEmptyMessage sets the text shown when no row is visible.
func WithEmptyMessage[T any](msg string) Option[T] {
	return func(t *Table[T]) { t.content.empty = msg }
}

// WithOnRowClick sets the callback receiving the record of an activated row.
func WithOnRowClick[T any](fn func(T)) Option[T] {
	return func(t *Table[T]) { t.onRowClick = fn }
}

// WithIdentity names records so the selection follows them.
func WithIdentity[T any](fn func(T) string) Option[T] {
	return func(t *Table[T]) { t.identity = fn }
}

// WithLocale selects the locale used for matching and collation.
func WithLocale[T any](tag language.Tag) Option[T] {
	return func(t *Table[T]) { t.locale = tag }
}

// WithPalette sets the colors.
func WithPalette[T any](p Palette) Option[T] {
	return func(t *Table[T]) { t.content.palette = p }
}

// Table is a tview primitive rendering a dataview.View: an optional search
// field, the table with a fixed header row, and a status line.
type Table[T any] struct {
	*tview.Flex

	table   *tview.Table
	input   *tview.InputField
	footer  *tview.TextView
	view    dataview.View[T]
	content *tableContent[T]

	searchable  bool
	placeholder string
	onRowClick  func(T)
	identity    func(T) string
	locale      language.Tag
}

// NewTable validates columns and builds the table.
func NewTable[T any](columns []dataview.Column[T], records []T, opts ...Option[T]) (*Table[T], error) {
	t := &Table[T]{
		Flex:        tview.NewFlex().SetDirection(tview.FlexRow),
		table:       tview.NewTable(),
		input:       tview.NewInputField(),
		footer:      tview.NewTextView().SetDynamicColors(true).SetWrap(false),
		content:     &tableContent[T]{empty: defaultEmptyMessage, palette: DefaultPalette()},
		searchable:  true,
		placeholder: defaultPlaceholder,
		locale:      language.Und,
	}
	for _, opt := range opts {
		opt(t)
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
		return nil, fmt.Errorf("new table: %w", err)
	}
	t.view = v
	t.content.view = &t.view
	t.content.onHeader = func(key string) { t.ActivateHeader(key) }
	t.content.onRow = t.clickRow

	t.table.SetContent(t.content)
	t.table.SetSelectable(true, false)
	t.table.SetFixed(1, 0)
	t.table.SetSelectedFunc(func(row, _ int) {
		t.ActivateRow(row - 1)
	})

	t.input.SetLabel("/ ")
	t.input.SetPlaceholder(t.placeholder)
	t.input.SetChangedFunc(t.applyQuery)

	if t.searchable {
		t.AddItem(t.input, 1, 0, false)
	}
	t.AddItem(t.table, 0, 1, true)
	t.AddItem(t.footer, 1, 0, false)

	t.SetPalette(t.content.palette)
	t.selectRow(1)
	t.updateFooter()
	return t, nil
}

// InputHandler routes keys between the search field and the table: "/"
// focuses the field, enter keeps the query, esc clears it and 1-9 cycle the
// sort of the matching column.
func (t *Table[T]) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return t.WrapInputHandler(func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
		if t.input.HasFocus() {
			switch event.Key() {
			case tcell.KeyEnter:
				setFocus(t.table)
				return
			case tcell.KeyEscape:
				t.SetQuery("")
				setFocus(t.table)
				return
			}
			if handler := t.input.InputHandler(); handler != nil {
				handler(event, setFocus)
			}
			return
		}

		if event.Key() == tcell.KeyEscape {
			t.SetQuery("")
			return
		}
		if event.Key() == tcell.KeyRune {
			switch r := event.Rune(); {
			case r == '/':
				if t.searchable {
					setFocus(t.input)
				}
				return
			case r >= '1' && r <= '9':
				if cols := t.view.Columns(); int(r-'1') < len(cols) {
					t.ActivateHeader(cols[r-'1'].Key)
				}
				return
			}
		}
		if handler := t.table.InputHandler(); handler != nil {
			handler(event, setFocus)
		}
	})
}

// ActivateHeader advances the sort cycle of the column with the given key.
func (t *Table[T]) ActivateHeader(key string) bool {
	var ok bool
	t.preserveSelection(func() { ok = t.view.ActivateHeader(key) })
	return ok
}

// ActivateRow invokes the row callback with the visible record at index i.
func (t *Table[T]) ActivateRow(i int) bool {
	item, ok := t.view.Row(i)
	if !ok || t.onRowClick == nil {
		return false
	}
	t.onRowClick(item)
	return true
}

func (t *Table[T]) clickRow(i int) {
	t.selectRow(i + 1)
	t.ActivateRow(i)
}

// SetRecords replaces the records, keeping sort, query and selection.
func (t *Table[T]) SetRecords(records []T) {
	t.preserveSelection(func() { t.view.SetRecords(records) })
}

// SetQuery replaces the search query and the field text.
func (t *Table[T]) SetQuery(q string) {
	if !t.searchable {
		return
	}
	t.input.SetText(q)
	t.applyQuery(q)
}

func (t *Table[T]) applyQuery(q string) {
	if q == t.view.State().Query {
		return
	}
	t.preserveSelection(func() { t.view.SetQuery(q) })
}

// SetPalette recolors the table.
func (t *Table[T]) SetPalette(p Palette) {
	t.content.palette = p
	t.SetBackgroundColor(p.Background)
	t.table.SetBackgroundColor(p.Background)
	t.table.SetSelectedStyle(tcell.StyleDefault.Background(p.SelectionBg).Foreground(p.SelectionText))
	t.input.SetBackgroundColor(p.Background)
	t.input.SetLabelColor(p.Warning)
	t.input.SetFieldBackgroundColor(p.Surface)
	t.input.SetFieldTextColor(p.Text)
	t.input.SetPlaceholderTextColor(p.Faint)
	t.footer.SetBackgroundColor(p.Background)
	t.footer.SetTextColor(p.Muted)
	t.updateFooter()
}

// Rows returns the visible records.
func (t *Table[T]) Rows() []T { return t.view.Rows() }

// Len returns the number of visible rows.
func (t *Table[T]) Len() int { return t.view.Len() }

// Total returns the number of records.
func (t *Table[T]) Total() int { return t.view.Total() }

// State returns the sort and query state.
func (t *Table[T]) State() dataview.State { return t.view.State() }

// Searching reports whether the search field has focus.
func (t *Table[T]) Searching() bool { return t.input.HasFocus() }

// Selected returns the record of the selected row.
func (t *Table[T]) Selected() (T, bool) {
	row, _ := t.table.GetSelection()
	return t.view.Row(row - 1)
}

func (t *Table[T]) preserveSelection(mutate func()) {
	row, _ := t.table.GetSelection()
	id := ""
	if item, ok := t.view.Row(row - 1); ok {
		id = t.view.ID(item)
	}
	mutate()
	if idx := t.view.IndexOf(id); idx >= 0 {
		row = idx + 1
	}
	t.selectRow(row)
	t.updateFooter()
}

// selectRow selects a table row, clamped to the visible records. Row 0 is
// the header.
func (t *Table[T]) selectRow(row int) {
	n := t.view.Len()
	if n == 0 {
		t.table.Select(1, 0)
		return
	}
	t.table.Select(min(max(row, 1), n), 0)
}

func (t *Table[T]) updateFooter() {
	p := t.content.palette
	st := t.view.State()
	parts := []string{fmt.Sprintf("%d/%d", t.view.Len(), t.view.Total())}
	if col, ok := t.sortColumn(); ok {
		parts = append(parts, "sort "+tview.Escape(col.Header)+" "+indicator(true, st.Direction))
	}
	if st.Query != "" {
		parts = append(parts, fmt.Sprintf("filter %q", tview.Escape(st.Query)))
	}
	hint := tag(p.Warning) + "/" + tag(p.Faint) + " search  " +
		tag(p.Warning) + "1-9" + tag(p.Faint) + " sort  " +
		tag(p.Warning) + "enter" + tag(p.Faint) + " open"
	t.footer.SetText(strings.Join(parts, " · ") + "   " + hint)
}

func (t *Table[T]) sortColumn() (dataview.Column[T], bool) {
	key := t.view.State().SortKey
	for _, col := range t.view.Columns() {
		if key != "" && col.Key == key {
			return col, true
		}
	}
	return dataview.Column[T]{}, false
}

func indicator(active bool, dir dataview.Direction) string {
	switch {
	case !active:
		return "↕"
	case dir == dataview.Descending:
		return "▼"
	default:
		return "▲"
	}
}

// tableContent exposes a dataview.View as tview table content. Row 0 is the
// header; an empty view shows the empty message in row 1.
type tableContent[T any] struct {
	tview.TableContentReadOnly

	view     *dataview.View[T]
	palette  Palette
	empty    string
	onHeader func(key string)
	onRow    func(i int)
}

var _ tview.TableContent = (*tableContent[struct{}])(nil)

func (c *tableContent[T]) GetRowCount() int {
	if c.view.IsEmpty() {
		return 2
	}
	return c.view.Len() + 1
}

func (c *tableContent[T]) GetColumnCount() int {
	return len(c.view.Columns())
}

func (c *tableContent[T]) GetCell(row, column int) *tview.TableCell {
	cols := c.view.Columns()
	if column < 0 || column >= len(cols) || row < 0 {
		return nil
	}
	if row == 0 {
		return c.headerCell(cols[column])
	}
	if c.view.IsEmpty() {
		text := ""
		if column == 0 {
			text = tview.Escape(c.empty)
		}
		return tview.NewTableCell(text).
			SetTextColor(c.palette.Muted).
			SetAttributes(tcell.AttrItalic).
			SetSelectable(false)
	}

	cells := c.view.Cells(row - 1)
	if cells == nil {
		return nil
	}
	i := row - 1
	return tview.NewTableCell(tview.Escape(flatten(cells[column]))).
		SetTextColor(c.palette.Text).
		SetMaxWidth(48).
		SetExpansion(1).
		SetClickedFunc(func() bool {
			c.onRow(i)
			return true
		})
}

func (c *tableContent[T]) headerCell(col dataview.Column[T]) *tview.TableCell {
	label := col.Header
	color := c.palette.Muted
	if col.Sortable {
		active, dir := c.view.HeaderState(col.Key)
		label += " " + indicator(active, dir)
		color = c.palette.Text
		if active {
			color = c.palette.Accent
		}
	}
	cell := tview.NewTableCell(tview.Escape(label)).
		SetTextColor(color).
		SetAttributes(tcell.AttrBold).
		SetSelectable(false).
		SetExpansion(1)
	if col.Sortable {
		key := col.Key
		cell.SetClickedFunc(func() bool {
			c.onHeader(key)
			return true
		})
	}
	return cell
}

func flatten(s string) string {
	return strings.NewReplacer("\n", " ", "\r", " ", "\t", " ").Replace(s)
}
