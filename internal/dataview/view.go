package dataview

import (
	"golang.org/x/text/language"
)

var defaultLocale = language.Und

// Option configures a View.
type Option func(*options)

type options struct {
	searchable bool
	locale     language.Tag
	identity   any
}

// WithSearchable enables or disables the search query. A view that is not
// searchable ignores every query.
func WithSearchable(on bool) Option {
	return func(o *options) { o.searchable = on }
}

// WithLocale selects the locale used for case folding and text collation.
func WithLocale(tag language.Tag) Option {
	return func(o *options) { o.locale = tag }
}

// WithIdentity sets the function that names a record, used to find a record
// again after the row set changes.
func WithIdentity[T any](id func(T) string) Option {
	return func(o *options) { o.identity = id }
}

// View owns the state of one table over caller-supplied records. The derived
// rows are recomputed on every mutation, so they always reflect the current
// records, columns and state. A View is not safe for concurrent use.
type View[T any] struct {
	columns    []Column[T]
	records    []T
	state      State
	searchable bool
	locale     language.Tag
	identity   func(T) string
	rows       []T
}

// New validates columns and returns a view showing every record in its
// original order.
func New[T any](columns []Column[T], records []T, opts ...Option) (View[T], error) {
	if err := ValidateColumns(columns); err != nil {
		return View[T]{}, err
	}
	o := options{searchable: true, locale: defaultLocale}
	for _, opt := range opts {
		opt(&o)
	}
	v := View[T]{
		columns:    columns,
		records:    records,
		searchable: o.searchable,
		locale:     o.locale,
	}
	if id, ok := o.identity.(func(T) string); ok {
		v.identity = id
	}
	v.recompute()
	return v, nil
}

// Derive runs the pipeline records, filter, sort for one state.
func Derive[T any](records []T, columns []Column[T], state State, tag language.Tag) []T {
	rows := filterLocale(records, columns, state.Query, tag)
	if col, ok := findColumn(columns, state.SortKey); ok {
		rows = sortLocale(rows, &col, state.Direction, tag)
	}
	return rows
}

func (v *View[T]) recompute() {
	v.rows = Derive(v.records, v.columns, v.state, v.locale)
}

// SetRecords replaces the records. The state is kept.
func (v *View[T]) SetRecords(records []T) {
	v.records = records
	v.recompute()
}

// SetQuery updates the search query. It is forced empty when the view is not
// searchable.
func (v *View[T]) SetQuery(query string) {
	if !v.searchable {
		query = ""
	}
	v.state.Query = query
	v.recompute()
}

// ClearQuery drops the search query.
func (v *View[T]) ClearQuery() {
	v.SetQuery("")
}

// ActivateHeader advances the sort cycle of the column with the given key.
// It returns false, leaving the state untouched, for unknown or non-sortable
// columns.
func (v *View[T]) ActivateHeader(key string) bool {
	col, ok := findColumn(v.columns, key)
	if !ok || !col.Sortable {
		return false
	}
	v.state = v.state.NextSort(key)
	v.recompute()
	return true
}

// State returns the current state.
func (v *View[T]) State() State {
	return v.state
}

// Searchable reports whether the view accepts a query.
func (v *View[T]) Searchable() bool {
	return v.searchable
}

// Columns returns the column set in display order.
func (v *View[T]) Columns() []Column[T] {
	return v.columns
}

// Rows returns the visible records after filtering and sorting. Callers must
// not modify the returned slice.
func (v *View[T]) Rows() []T {
	return v.rows
}

// Len returns the number of visible rows.
func (v *View[T]) Len() int {
	return len(v.rows)
}

// Total returns the number of records, visible or not.
func (v *View[T]) Total() int {
	return len(v.records)
}

// IsEmpty reports whether no row survives the filter.
func (v *View[T]) IsEmpty() bool {
	return len(v.rows) == 0
}

// Row returns the i-th visible record.
func (v *View[T]) Row(i int) (T, bool) {
	if i < 0 || i >= len(v.rows) {
		var zero T
		return zero, false
	}
	return v.rows[i], true
}

// Cells returns the display text of every column for the i-th visible row.
func (v *View[T]) Cells(i int) []string {
	item, ok := v.Row(i)
	if !ok {
		return nil
	}
	cells := make([]string, len(v.columns))
	for c, col := range v.columns {
		cells[c] = DisplayValue(col, item)
	}
	return cells
}

// HeaderState reports whether key is the active sort column and its direction.
func (v *View[T]) HeaderState(key string) (bool, Direction) {
	if v.state.SortKey != key || key == "" {
		return false, Ascending
	}
	return true, v.state.Direction
}

// ID names a record using the identity function, or returns "" without one.
func (v *View[T]) ID(item T) string {
	if v.identity == nil {
		return ""
	}
	return v.identity(item)
}

// IndexOf returns the visible position of the record named id, or -1.
func (v *View[T]) IndexOf(id string) int {
	if v.identity == nil || id == "" {
		return -1
	}
	for i, item := range v.rows {
		if v.identity(item) == id {
			return i
		}
	}
	return -1
}
