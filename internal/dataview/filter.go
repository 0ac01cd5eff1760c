package dataview

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Filter keeps the records where any field-backed column contains query,
// case-insensitively. A blank query returns records unchanged. The input is
// never modified and matches keep their relative order.
func Filter[T any](records []T, columns []Column[T], query string) []T {
	return filterLocale(records, columns, query, defaultLocale)
}

func filterLocale[T any](records []T, columns []Column[T], query string, tag language.Tag) []T {
	m := newMatcher(query, tag)
	if m.empty() {
		return records
	}
	out := make([]T, 0, len(records))
	for _, item := range records {
		if matchRecord(m, columns, item) {
			out = append(out, item)
		}
	}
	return out
}

// Matches reports whether item would survive Filter for query.
func Matches[T any](item T, columns []Column[T], query string) bool {
	m := newMatcher(query, defaultLocale)
	if m.empty() {
		return true
	}
	return matchRecord(m, columns, item)
}

func matchRecord[T any](m *matcher, columns []Column[T], item T) bool {
	for _, col := range columns {
		text, ok := SearchValue(col, item)
		if !ok || text == "" {
			continue
		}
		if m.match(text) {
			return true
		}
	}
	return false
}

// matcher holds a normalised query. Not safe for concurrent use.
type matcher struct {
	caser cases.Caser
	query string
}

func newMatcher(query string, tag language.Tag) *matcher {
	caser := cases.Lower(tag)
	return &matcher{
		caser: caser,
		query: caser.String(strings.TrimSpace(query)),
	}
}

func (m *matcher) empty() bool {
	return m.query == ""
}

func (m *matcher) match(text string) bool {
	return strings.Contains(m.caser.String(text), m.query)
}
