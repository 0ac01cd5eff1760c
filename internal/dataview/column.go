package dataview

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ErrNoColumns is returned when a view is built without any column.
var ErrNoColumns = errors.New("dataview: at least one column is required")

// ErrEmptyKey is returned when a column has a blank key.
var ErrEmptyKey = errors.New("dataview: column key is empty")

// DuplicateKeyError reports two columns sharing the same key.
type DuplicateKeyError struct {
	Key string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("dataview: duplicate column key %q", e.Key)
}

// Column describes one table column over records of type T.
//
// Value extracts the raw backing field and drives sorting and searching.
// Render, when set, owns the cell's display; it never influences ordering or
// matching. A column without Value is an action column: it has no searchable
// text and sorting it leaves rows in their original order.
type Column[T any] struct {
	Key      string
	Header   string
	Sortable bool
	Value    func(T) any
	Render   func(T) string
}

// Keyed returns a column that shows the raw field as text.
func Keyed[T any](key, header string, value func(T) any) Column[T] {
	return Column[T]{Key: key, Header: header, Value: value}
}

// Rendered returns a column with a custom cell renderer. value may be nil for
// computed columns that have no backing field.
func Rendered[T any](key, header string, value func(T) any, render func(T) string) Column[T] {
	return Column[T]{Key: key, Header: header, Value: value, Render: render}
}

// Action returns a synthetic column (buttons, badges) with no backing field.
func Action[T any](key, header string, render func(T) string) Column[T] {
	return Column[T]{Key: key, Header: header, Render: render}
}

// Sorted returns a copy of the column that participates in sort cycling.
func (c Column[T]) Sorted() Column[T] {
	c.Sortable = true
	return c
}

// HasField reports whether the column is backed by a raw field.
func (c Column[T]) HasField() bool {
	return c.Value != nil
}

// DisplayValue returns the cell text for item.
func DisplayValue[T any](col Column[T], item T) string {
	if col.Render != nil {
		return col.Render(item)
	}
	if col.Value == nil {
		return ""
	}
	return Stringify(col.Value(item))
}

// SortValue returns the raw field used for ordering. The boolean is false when
// the column has no field or the field is nil.
func SortValue[T any](col Column[T], item T) (any, bool) {
	if col.Value == nil {
		return nil, false
	}
	return indirect(col.Value(item))
}

// SearchValue returns the raw field as text for matching.
func SearchValue[T any](col Column[T], item T) (string, bool) {
	v, ok := SortValue(col, item)
	if !ok {
		return "", false
	}
	return Stringify(v), true
}

// ValidateColumns checks the invariants of a column set.
func ValidateColumns[T any](cols []Column[T]) error {
	if len(cols) == 0 {
		return ErrNoColumns
	}
	seen := make(map[string]struct{}, len(cols))
	for _, col := range cols {
		if strings.TrimSpace(col.Key) == "" {
			return ErrEmptyKey
		}
		if _, ok := seen[col.Key]; ok {
			return &DuplicateKeyError{Key: col.Key}
		}
		seen[col.Key] = struct{}{}
	}
	return nil
}

func findColumn[T any](cols []Column[T], key string) (Column[T], bool) {
	if key == "" {
		return Column[T]{}, false
	}
	for _, col := range cols {
		if col.Key == key {
			return col, true
		}
	}
	return Column[T]{}, false
}

// Field returns an accessor reading the property called name from a struct
// (exported field name or json tag, case-insensitive) or a string-keyed map.
// Absent properties yield nil.
func Field[T any](name string) func(T) any {
	return func(item T) any {
		return lookupField(reflect.ValueOf(any(item)), name)
	}
}

func lookupField(rv reflect.Value, name string) any {
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil
	}

	switch rv.Kind() {
	case reflect.Struct:
		idx, ok := structFieldIndex(rv.Type(), name)
		if !ok {
			return nil
		}
		return rv.Field(idx).Interface()
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil
		}
		v := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
		if !v.IsValid() {
			return nil
		}
		return v.Interface()
	default:
		return nil
	}
}

func structFieldIndex(t reflect.Type, name string) (int, bool) {
	fallback := -1
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if f.Name == name {
			return i, true
		}
		tag, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if tag == name {
			return i, true
		}
		if fallback < 0 && (strings.EqualFold(f.Name, name) || (tag != "" && strings.EqualFold(tag, name))) {
			fallback = i
		}
	}
	return fallback, fallback >= 0
}
