package dataview

import (
	"slices"

	"golang.org/x/text/language"
)

// Direction is the order applied to the active sort column.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "descending"
	}
	return "ascending"
}

// Sort orders records by col in the given direction. A nil or non-sortable
// column returns records unchanged. The sort is stable, never modifies the
// input, and always places records with a nil value last.
func Sort[T any](records []T, col *Column[T], dir Direction) []T {
	return sortLocale(records, col, dir, defaultLocale)
}

type keyed[T any] struct {
	item  T
	value any
	ok    bool
}

func sortLocale[T any](records []T, col *Column[T], dir Direction, tag language.Tag) []T {
	if col == nil || !col.Sortable || len(records) < 2 {
		return records
	}

	rows := make([]keyed[T], len(records))
	for i, item := range records {
		v, ok := SortValue(*col, item)
		rows[i] = keyed[T]{item: item, value: v, ok: ok}
	}

	c := NewComparer(tag)
	slices.SortStableFunc(rows, func(a, b keyed[T]) int {
		switch {
		case !a.ok && !b.ok:
			return 0
		case !a.ok:
			return 1
		case !b.ok:
			return -1
		}
		r := c.compareValues(a.value, b.value)
		if dir == Descending {
			return -r
		}
		return r
	})

	out := make([]T, len(rows))
	for i, row := range rows {
		out[i] = row.item
	}
	return out
}
