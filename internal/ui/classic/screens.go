package classic

import (
	"fmt"

	"github.com/rivo/tview"
	"golang.org/x/text/language"

	"github.com/five82/quay/internal/config"
	"github.com/five82/quay/internal/dataset"
	"github.com/five82/quay/internal/dataview"
)

// detail is one record prepared for the detail modal.
type detail struct {
	title  string
	fields [][2]string // label, value
}

type screen interface {
	tview.Primitive
	Name() string
	Title() string
	SetData(ds *dataset.Dataset)
	SetPalette(p Palette)
	Searching() bool
	Counts() (visible, total int)
}

type tableScreen[T any] struct {
	*Table[T]
	name    string
	title   string
	records func(*dataset.Dataset) []T
}

func (s *tableScreen[T]) Name() string  { return s.name }
func (s *tableScreen[T]) Title() string { return s.title }

func (s *tableScreen[T]) SetData(ds *dataset.Dataset) {
	if ds == nil {
		return
	}
	s.SetRecords(s.records(ds))
}

func (s *tableScreen[T]) Counts() (int, int) {
	return s.Len(), s.Total()
}

type screenSpec[T any] struct {
	name     string
	title    string
	columns  []dataview.Column[T]
	records  func(*dataset.Dataset) []T
	identity func(T) string
	describe func(T) string
}

func newTableScreen[T any](spec screenSpec[T], sc config.Screen, locale language.Tag, open func(detail)) (*tableScreen[T], error) {
	table, err := NewTable(spec.columns, nil,
		WithSearchable[T](sc.Searchable),
		WithPlaceholder[T](sc.Placeholder),
		WithEmptyMessage[T](sc.EmptyMessage),
		WithLocale[T](locale),
		WithIdentity(spec.identity),
		WithOnRowClick(func(item T) {
			open(describe(spec.describe(item), spec.columns, item))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("%s screen: %w", spec.name, err)
	}
	return &tableScreen[T]{Table: table, name: spec.name, title: spec.title, records: spec.records}, nil
}

func describe[T any](title string, columns []dataview.Column[T], item T) detail {
	d := detail{title: title}
	for _, col := range columns {
		if col.Header == "" {
			continue
		}
		d.fields = append(d.fields, [2]string{col.Header, dataview.DisplayValue(col, item)})
	}
	return d
}

func buildScreens(cfg config.Config, open func(detail)) ([]screen, error) {
	containers, err := newTableScreen(screenSpec[dataset.Container]{
		name:     config.ScreenContainers,
		title:    "Containers",
		columns:  dataset.ContainerColumns(),
		records:  func(ds *dataset.Dataset) []dataset.Container { return ds.Containers },
		identity: dataset.ContainerID,
		describe: dataset.ContainerTitle,
	}, cfg.Screen(config.ScreenContainers), cfg.Locale, open)
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
	}, cfg.Screen(config.ScreenBills), cfg.Locale, open)
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
	}, cfg.Screen(config.ScreenUsers), cfg.Locale, open)
	if err != nil {
		return nil, err
	}
	return []screen{containers, bills, users}, nil
}
