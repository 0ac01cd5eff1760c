package dataset

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/five82/quay/internal/dataview"
)

const (
	displayTime = "2006-01-02 15:04"
	missing     = "—"
)

var numbers = message.NewPrinter(language.English)

// ContainerColumns returns the column set of the containers screen.
func ContainerColumns() []dataview.Column[Container] {
	return []dataview.Column[Container]{
		dataview.Keyed("number", "Number", dataview.Field[Container]("number")).Sorted(),
		dataview.Keyed("line", "Line", dataview.Field[Container]("line")).Sorted(),
		dataview.Keyed("vessel", "Vessel", dataview.Field[Container]("vessel")).Sorted(),
		dataview.Rendered("status", "Status",
			dataview.Field[Container]("status"),
			func(c Container) string { return Humanize(c.Status) },
		).Sorted(),
		dataview.Rendered("weight", "Weight",
			func(c Container) any { return c.WeightKg },
			func(c Container) string { return formatWeight(c.WeightKg) },
		).Sorted(),
		dataview.Rendered("arrived", "Arrived",
			func(c Container) any { return c.Arrived },
			func(c Container) string { return formatTime(c.Arrived) },
		).Sorted(),
		dataview.Rendered("departed", "Departed",
			func(c Container) any { return c.Departed },
			func(c Container) string { return formatTime(c.Departed) },
		).Sorted(),
		dataview.Action("hazard", "", func(c Container) string {
			if c.Hazardous {
				return "HAZ"
			}
			return ""
		}),
	}
}

// BillColumns returns the column set of the bills screen.
func BillColumns() []dataview.Column[Bill] {
	return []dataview.Column[Bill]{
		dataview.Keyed("number", "Invoice", dataview.Field[Bill]("number")).Sorted(),
		dataview.Keyed("customer", "Customer", dataview.Field[Bill]("customer")).Sorted(),
		dataview.Rendered("amount", "Amount",
			dataview.Field[Bill]("amount"),
			func(b Bill) string { return numbers.Sprintf("%.2f %s", b.Amount, b.Currency) },
		).Sorted(),
		dataview.Keyed("currency", "Cur", dataview.Field[Bill]("currency")),
		dataview.Rendered("due", "Due",
			func(b Bill) any { return b.Due },
			func(b Bill) string {
				if b.Due == nil {
					return missing
				}
				return *b.Due
			},
		).Sorted(),
		dataview.Rendered("paid", "Paid",
			dataview.Field[Bill]("paid"),
			func(b Bill) string {
				if b.Paid {
					return "paid"
				}
				return "open"
			},
		).Sorted(),
	}
}

// UserColumns returns the column set of the users screen.
func UserColumns() []dataview.Column[User] {
	return []dataview.Column[User]{
		dataview.Keyed("name", "Name", dataview.Field[User]("name")).Sorted(),
		dataview.Keyed("email", "Email", dataview.Field[User]("email")).Sorted(),
		dataview.Rendered("role", "Role",
			dataview.Field[User]("role"),
			func(u User) string { return Humanize(u.Role) },
		).Sorted(),
		dataview.Rendered("last_login", "Last login",
			func(u User) any { return u.LastLogin },
			func(u User) string { return formatTime(u.LastLogin) },
		).Sorted(),
	}
}

// ContainerID, BillID and UserID name records for selection tracking.
func ContainerID(c Container) string { return c.Number }

func BillID(b Bill) string { return b.Number }

func UserID(u User) string { return u.Email }

// ContainerTitle, BillTitle and UserTitle caption a record's detail view.
func ContainerTitle(c Container) string { return "Container " + c.Number }

func BillTitle(b Bill) string { return "Invoice " + b.Number }

func UserTitle(u User) string { return u.Name }

// Humanize turns a snake_case code into title case words.
func Humanize(code string) string {
	words := strings.Fields(strings.ReplaceAll(code, "_", " "))
	return cases.Title(language.Und).String(strings.Join(words, " "))
}

func formatWeight(kg *float64) string {
	if kg == nil {
		return missing
	}
	return numbers.Sprintf("%.1f kg", *kg)
}

func formatTime(t *time.Time) string {
	if t == nil {
		return missing
	}
	return t.UTC().Format(displayTime)
}
