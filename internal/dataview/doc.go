// Package dataview turns arbitrary record slices into sortable, searchable
// tables without the caller writing any iteration, comparison or filtering
// code.
//
// # Overview
//
// A table is described by a slice of Column values. Each column names a raw
// field accessor (Value) and optionally a custom renderer (Render). The raw
// field is the source of truth for ordering and matching; the renderer only
// decides what the cell shows, so badges and buttons never leak into search
// results or sort order.
//
// # Pipeline
//
//	records + columns + State
//	        │
//	        ├─> Filter   any field contains the query (case-insensitive)
//	        ├─> Sort     stable, type-aware, nil values last
//	        └─> rows     what the host renders
//
// The pipeline is pure. View wraps it with the transient State (active sort
// column, direction, query) and recomputes the rows on every change.
//
// # Sorting
//
// Repeatedly activating the same header cycles unsorted, ascending,
// descending and back to the original order. Values compare numerically when
// both are numbers, chronologically when both are dates (time.Time or
// ISO-8601 strings) and otherwise as case-insensitive text collated with
// golang.org/x/text/collate.
//
// # Hosts
//
// The package has no UI dependency. internal/ui renders a View with Bubble
// Tea and internal/ui/classic with tview; both resolve row activation
// against View.Rows so callbacks always receive the visible record.
package dataview
