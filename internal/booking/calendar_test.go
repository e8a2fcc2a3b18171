package booking

import (
	"testing"
	"time"
)

func TestMonthGrid_Always42Cells(t *testing.T) {
	months := []struct {
		year  int
		month time.Month
	}{
		{2025, time.February},  // 28 days starting Saturday
		{2025, time.March},     // 31 days
		{2024, time.February},  // leap year
		{2025, time.June},      // 30 days starting Sunday
		{2026, time.August},    // starts Saturday, spills into sixth row
	}

	for _, m := range months {
		grid := MonthGrid(m.year, m.month, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), "")
		if len(grid) != 42 {
			t.Errorf("%v %d: expected 42 cells, got %d", m.month, m.year, len(grid))
		}
	}
}

func TestMonthGrid_MarksPastAndToday(t *testing.T) {
	today := time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)
	grid := MonthGrid(2025, time.March, today, "")

	var pastCount, todayCount int
	for _, cell := range grid {
		if cell.OtherMonth {
			continue
		}
		if cell.Past {
			pastCount++
		}
		if cell.Today {
			todayCount++
			if cell.Past {
				t.Error("Today must not be marked past")
			}
		}
	}

	// March 1 through 14 are in the past on March 15.
	if pastCount != 14 {
		t.Errorf("Expected 14 past days, got %d", pastCount)
	}
	if todayCount != 1 {
		t.Errorf("Expected exactly one today cell, got %d", todayCount)
	}
}

func TestMonthGrid_OtherMonthCells(t *testing.T) {
	// June 2025 starts on a Sunday: no leading filler, 12 trailing cells.
	grid := MonthGrid(2025, time.June, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), "")

	if grid[0].OtherMonth || grid[0].Day != 1 {
		t.Errorf("Expected June 1 in the first cell, got %+v", grid[0])
	}
	if !grid[30].OtherMonth || grid[30].Day != 1 {
		t.Errorf("Expected July 1 after June 30, got %+v", grid[30])
	}
}

func TestMonthGrid_SelectedCell(t *testing.T) {
	grid := MonthGrid(2025, time.March, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), "2025-03-10")

	var selected int
	for _, cell := range grid {
		if cell.Selected {
			selected++
			if cell.Date != "2025-03-10" {
				t.Errorf("Wrong cell selected: %s", cell.Date)
			}
		}
	}
	if selected != 1 {
		t.Errorf("Expected exactly one selected cell, got %d", selected)
	}
}

func TestMonthLabel(t *testing.T) {
	if got := MonthLabel(2025, time.March); got != "March 2025" {
		t.Errorf("Expected %q, got %q", "March 2025", got)
	}
}

func TestShiftMonth_YearRollover(t *testing.T) {
	year, month := shiftMonth(2025, time.December, 1)
	if year != 2026 || month != time.January {
		t.Errorf("Expected January 2026, got %v %d", month, year)
	}

	year, month = shiftMonth(2025, time.January, -1)
	if year != 2024 || month != time.December {
		t.Errorf("Expected December 2024, got %v %d", month, year)
	}
}
