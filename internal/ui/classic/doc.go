// Package classic renders the quay tables with tview.
//
// It is the alternative to the Bubble Tea renderer in package ui and is
// selected with renderer = "tview" in the config file. Both renderers drive
// the same dataview.View, share the themes of package ui and read the same
// state.Store, so sorting, filtering and row activation behave identically.
//
// Table wraps a tview.Table whose content is served straight from the view:
// row 0 is the header, clicking a sortable header cycles its sort and
// clicking a row hands the visible record to the row callback.
package classic
