package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/language"

	"github.com/five82/quay/internal/config"
	"github.com/five82/quay/internal/dataset"
	"github.com/five82/quay/internal/dataview"
)

// screen is one portal page. Each wraps a DataTable of its own record type.
type screen interface {
	Name() string
	Title() string
	Update(msg tea.Msg) tea.Cmd
	View() string
	SetSize(width, height int)
	SetPosition(x, y int)
	SetData(ds *dataset.Dataset)
	SetStyles(s TableStyles)
	Searching() bool
	Counts() (visible, total int)
}

type tableScreen[T any] struct {
	name    string
	title   string
	table   DataTable[T]
	records func(*dataset.Dataset) []T
}

type screenSpec[T any] struct {
	name     string
	title    string
	columns  []dataview.Column[T]
	records  func(*dataset.Dataset) []T
	identity func(T) string
	describe func(T) string
}

func newTableScreen[T any](spec screenSpec[T], sc config.Screen, locale language.Tag) (*tableScreen[T], error) {
	table, err := NewDataTable(spec.columns, nil,
		WithSearchable[T](sc.Searchable),
		WithPlaceholder[T](sc.Placeholder),
		WithEmptyMessage[T](sc.EmptyMessage),
		WithLocale[T](locale),
		WithIdentity(spec.identity),
		WithOnRowClick(openDetail(spec.describe, spec.columns)),
	)
	if err != nil {
		return nil, fmt.Errorf("%s screen: %w", spec.name, err)
	}
	return &tableScreen[T]{name: spec.name, title: spec.title, table: table, records: spec.records}, nil
}

func (s *tableScreen[T]) Name() string  { return s.name }
func (s *tableScreen[T]) Title() string { return s.title }
func (s *tableScreen[T]) View() string  { return s.table.View() }

func (s *tableScreen[T]) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.table, cmd = s.table.Update(msg)
	return cmd
}

func (s *tableScreen[T]) SetSize(width, height int) { s.table.SetSize(width, height) }
func (s *tableScreen[T]) SetPosition(x, y int)      { s.table.SetPosition(x, y) }
func (s *tableScreen[T]) SetStyles(st TableStyles)  { s.table.SetStyles(st) }
func (s *tableScreen[T]) Searching() bool           { return s.table.Searching() }

func (s *tableScreen[T]) SetData(ds *dataset.Dataset) {
	if ds == nil {
		return
	}
	s.table.SetRecords(s.records(ds))
}

func (s *tableScreen[T]) Counts() (int, int) {
	return s.table.Len(), s.table.Total()
}

// buildScreens returns the containers, bills and users screens in tab order.
func buildScreens(cfg config.Config) ([]screen, error) {
	containers, err := newTableScreen(screenSpec[dataset.Container]{
		name:     config.ScreenContainers,
		title:    "Containers",
		columns:  dataset.ContainerColumns(),
		records:  func(ds *dataset.Dataset) []dataset.Container { return ds.Containers },
		identity: dataset.ContainerID,
		describe: dataset.ContainerTitle,
	}, cfg.Screen(config.ScreenContainers), cfg.Locale)
	if err != nil {
		return nil, err
	}

	bills, err := newTableScreen(screenSpec[dataset.Bill]{
		name:     config.ScreenBills,
		title:    "Bills",
		columns:  dataset.BillColumns(),
		records:  func(ds *dataset.Dataset) []dataset.Bill { return ds.Bills },
		identity: dataset.BillID,
		describe: dataset.BillTitle,
	}, cfg.Screen(config.ScreenBills), cfg.Locale)
	if err != nil {
		return nil, err
	}

	users, err := newTableScreen(screenSpec[dataset.User]{
		name:     config.ScreenUsers,
		title:    "Users",
		columns:  dataset.UserColumns(),
		records:  func(ds *dataset.Dataset) []dataset.User { return ds.Users },
		identity: dataset.UserID,
		describe: dataset.UserTitle,
	}, cfg.Screen(config.ScreenUsers), cfg.Locale)
	if err != nil {
		return nil, err
	}

	return []screen{containers, bills, users}, nil
}
