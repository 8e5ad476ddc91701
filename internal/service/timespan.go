package service

import (
	"fmt"
	"time"

	"github.com/dayanaadylkhanova/barnum/internal/entity"
)

// DefaultAnchor is the reference end instant used when an endpoint does not
// pin its own. The warehouse is a frozen extract, so "now" is not meaningful.
var DefaultAnchor = time.Date(2022, time.May, 1, 11, 0, 0, 0, time.UTC)

// Resolve maps a period tag to the range ending at ref and starting one
// calendar unit earlier. A day only resets the hour of ref, in ref's
// location; minutes and seconds are kept.
func Resolve(period entity.Period, ref time.Time) (entity.TimeRange, error) {
	var start time.Time
	switch period {
	case entity.PeriodDay:
		start = time.Date(ref.Year(), ref.Month(), ref.Day(), 0, ref.Minute(), ref.Second(), ref.Nanosecond(), ref.Location())
	case entity.PeriodWeek:
		start = ref.AddDate(0, 0, -7)
	case entity.PeriodMonth:
		start = ref.AddDate(0, -1, 0)
	case entity.PeriodYear:
		start = ref.AddDate(-1, 0, 0)
	default:
		return entity.TimeRange{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, string(period))
	}
	return entity.TimeRange{Start: start, End: ref}, nil
}
