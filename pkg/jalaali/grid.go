package jalaali

import "fmt"

// Week is one row of a month grid, Saturday first. Zero marks an empty cell.
type Week [7]int

// MonthGrid lists the weeks of a month in reading order.
type MonthGrid []Week

// Weekday returns the Saturday-based weekday of d (0 = Saturday, 6 = Friday).
func Weekday(d Date) (int, error) {
	t, err := d.Time(nil)
	if err != nil {
		return 0, err
	}
	return (int(t.Weekday()) + 1) % 7, nil
}

// BuildMonthGrid lays out month jm of year jy on a 7-column grid.
func BuildMonthGrid(jy, jm int) (MonthGrid, error) {
	if jm < 1 || jm > 12 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMonth, jm)
	}
	n, err := MonthLength(jy, jm)
	if err != nil {
		return nil, err
	}
	offset, err := Weekday(Date{Year: jy, Month: jm, Day: 1})
	if err != nil {
		return nil, err
	}

	grid := make(MonthGrid, 0, (offset+n+6)/7)
	var week Week
	col := offset
	for day := 1; day <= n; day++ {
		week[col] = day
		col++
		if col == 7 {
			grid = append(grid, week)
			week = Week{}
			col = 0
		}
	}
	if col > 0 {
		grid = append(grid, week)
	}
	return grid, nil
}

// Days counts the non-empty cells of the grid.
func (g MonthGrid) Days() int {
	count := 0
	for _, w := range g {
		for _, day := range w {
			if day != 0 {
				count++
			}
		}
	}
	return count
}

// Position returns the row and column holding day.
func (g MonthGrid) Position(day int) (row, col int, ok bool) {
	for r, w := range g {
		for c, d := range w {
			if d == day && d != 0 {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}
