package service

import (
	"time"

	"taskmanager/internal/model"
)

// DateMode selects the calendar granularity of a task listing.
type DateMode string

const (
	DateModeDay   DateMode = "day"
	DateModeMonth DateMode = "month"
	DateModeYear  DateMode = "year"
)

// DateFilter narrows a listing to tasks due on a day, in a month or in a
// year. Zero fields count as absent.
type DateFilter struct {
	Mode  DateMode
	Year  int
	Month int
	Day   int
}

// Range returns the due-date interval selected by the filter, or nil when the
// fields required by the mode are missing or the mode is unknown.
//
// Day ranges are half-open [day, day+1). Month and year ranges are closed
// and end on the last calendar day of the period.
func (f DateFilter) Range() *model.DateRange {
	switch {
	case f.Mode == DateModeDay && f.Year != 0 && f.Month != 0 && f.Day != 0:
		start := model.NewDate(f.Year, time.Month(f.Month), f.Day)
		return &model.DateRange{Start: start, End: start.AddDays(1)}
	case f.Mode == DateModeMonth && f.Year != 0 && f.Month != 0:
		return &model.DateRange{
			Start:        model.NewDate(f.Year, time.Month(f.Month), 1),
			End:          model.NewDate(f.Year, time.Month(f.Month)+1, 0),
			EndInclusive: true,
		}
	case f.Mode == DateModeYear && f.Year != 0:
		return &model.DateRange{
			Start:        model.NewDate(f.Year, time.January, 1),
			End:          model.NewDate(f.Year, time.December, 31),
			EndInclusive: true,
		}
	default:
		return nil
	}
}
