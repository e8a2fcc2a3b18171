package booking

import "time"

const dateLayout = "2006-01-02"

// Cell is one square of the month grid.
type Cell struct {
	Day        int
	Date       string
	OtherMonth bool
	Past       bool
	Today      bool
	Selected   bool
}

// MonthGrid lays out a month as a fixed 6x7 grid starting on Sunday. Cells
// before the 1st and after the last day carry the neighbouring months'
// dates so the grid is always exactly 42 cells. Days before today are
// marked past and cannot be booked.
func MonthGrid(year int, month time.Month, today time.Time, selected string) []Cell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	start := first.AddDate(0, 0, -int(first.Weekday()))

	todayKey := today.Format(dateLayout)

	cells := make([]Cell, 42)
	for i := range cells {
		day := start.AddDate(0, 0, i)
		date := day.Format(dateLayout)
		cells[i] = Cell{
			Day:        day.Day(),
			Date:       date,
			OtherMonth: day.Month() != month,
			Past:       date < todayKey,
			Today:      date == todayKey,
			Selected:   date == selected,
		}
	}
	return cells
}

// MonthLabel renders the header above the grid, e.g. "March 2025".
func MonthLabel(year int, month time.Month) string {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
}
