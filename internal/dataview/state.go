package dataview

// State is the transient UI state of one table: the active sort and the raw
// search query. The zero value is the initial state.
type State struct {
	SortKey   string
	Direction Direction
	Query     string
}

// Sorted reports whether a sort column is active.
func (s State) Sorted() bool {
	return s.SortKey != ""
}

// NextSort advances the sort cycle for key. Repeated activation of the same
// key goes unsorted, ascending, descending, unsorted; a different key starts
// at ascending.
func (s State) NextSort(key string) State {
	switch {
	case s.SortKey != key:
		s.SortKey = key
		s.Direction = Ascending
	case s.Direction == Ascending:
		s.Direction = Descending
	default:
		s.SortKey = ""
		s.Direction = Ascending
	}
	return s
}
