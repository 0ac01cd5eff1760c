// Package ui provides the Bubble Tea terminal interface of quay.
//
// # Architecture Overview
//
// Model is the root tea.Model. It owns one screen per record type
// (containers, bills, users), a header bar, and at most one overlay (help or
// the detail modal). Each screen wraps a DataTable, the generic component
// that renders a dataview.View:
//
//	┌ header: quay  Containers 7 · Bills 5 · Users 4  sample  12:04:01 (now) ┐
//	┌─────────────────────────── Containers (7/7) ───────────────────────────┐
//	│ / Search...                                                            │
//	│ Number ▲  Line     Vessel        Status        Weight      Arrived     │
//	│ ─────────────────────────────────────────────────────────────────────  │
//	│ MSCU1234  MSC      MSC Aurora    In Transit    21,450.5 kg 2024-05-02  │
//	│ ...                                                                    │
//	│ 7/7 · sort Number ▲                        / search · 1-9 sort · enter │
//	└────────────────────────────────────────────────────────────────────────┘
//
// # DataTable
//
// DataTable[T] is usable on its own. It handles:
//
//   - Search: "/" focuses a bubbles textinput; every keystroke refilters.
//     enter keeps the query, esc clears it.
//   - Sorting: clicking a sortable header or pressing its 1-9 index cycles
//     unsorted, ascending, descending.
//   - Activation: enter or a click on a row calls the WithOnRowClick
//     callback with the record currently displayed on that row.
//   - Empty state: when no row is visible the configured message replaces
//     the body.
//
// The selection follows the record's identity (WithIdentity) across sort,
// filter and data reloads.
//
// # Event Flow
//
//  1. Run builds the Model and starts the program with mouse support.
//  2. A tick fetches a state.Store snapshot; when its Version changed every
//     screen receives the new records.
//  3. Keys go to the overlay, then the focused search input, then the
//     global bindings, then the active screen.
//  4. Row activation returns a detailMsg command that opens the modal.
//
// Themes and the last active screen persist through internal/prefs.
package ui
