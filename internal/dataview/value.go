package dataview

import (
	"cmp"
	"fmt"
	"reflect"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// dateLayouts are the ISO-8601 forms recognised as dates when comparing.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// indirect unwraps pointers and interfaces. It reports false for nil.
func indirect(v any) (any, bool) {
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	return rv.Interface(), true
}

// Stringify renders a raw field in its natural text form. Nil values become
// the empty string and times use RFC 3339.
func Stringify(v any) string {
	switch x := v.(type) {
	case time.Time, *time.Time:
	case fmt.Stringer:
		if !isNilPointer(v) {
			return x.String()
		}
	}
	v, ok := indirect(v)
	if !ok {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	case time.Time:
		return x.Format(time.RFC3339)
	case fmt.Stringer:
		return x.String()
	case error:
		return x.Error()
	default:
		return fmt.Sprint(x)
	}
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// asTime reports whether v is a date: a time.Time or an ISO-8601 string.
func asTime(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, true
	case string:
		return parseDate(x)
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return parseDate(rv.String())
	}
	return time.Time{}, false
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if len(s) < len("2006-01-02") {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

type numberKind int

const (
	notNumber numberKind = iota
	signedNumber
	unsignedNumber
	floatNumber
)

type number struct {
	kind numberKind
	i    int64
	u    uint64
	f    float64
}

func asNumber(v any) number {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return number{kind: signedNumber, i: rv.Int(), f: float64(rv.Int())}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return number{kind: unsignedNumber, u: rv.Uint(), f: float64(rv.Uint())}
	case reflect.Float32, reflect.Float64:
		return number{kind: floatNumber, f: rv.Float()}
	default:
		return number{}
	}
}

func compareNumbers(a, b number) int {
	switch {
	case a.kind == signedNumber && b.kind == signedNumber:
		return cmp.Compare(a.i, b.i)
	case a.kind == unsignedNumber && b.kind == unsignedNumber:
		return cmp.Compare(a.u, b.u)
	default:
		return cmp.Compare(a.f, b.f)
	}
}

// Comparer orders raw field values: numbers numerically, dates
// chronologically and everything else as case-insensitive, locale-aware
// text. A Comparer is not safe for concurrent use.
type Comparer struct {
	coll *collate.Collator
}

// NewComparer returns a Comparer collating text for the given locale.
func NewComparer(tag language.Tag) *Comparer {
	return &Comparer{coll: collate.New(tag, collate.IgnoreCase)}
}

// Compare returns -1, 0 or +1. Nil values order after everything else.
func (c *Comparer) Compare(a, b any) int {
	va, okA := indirect(a)
	vb, okB := indirect(b)
	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return 1
	case !okB:
		return -1
	}
	return c.compareValues(va, vb)
}

func (c *Comparer) compareValues(a, b any) int {
	if na, nb := asNumber(a), asNumber(b); na.kind != notNumber && nb.kind != notNumber {
		return compareNumbers(na, nb)
	}
	if ta, ok := asTime(a); ok {
		if tb, ok := asTime(b); ok {
			return ta.Compare(tb)
		}
	}
	return c.coll.CompareString(Stringify(a), Stringify(b))
}
