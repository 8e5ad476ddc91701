package entity

import (
	"errors"
	"time"
)

var ErrInvertedRange = errors.New("range start is after its end")

// Period is a symbolic timespan selector.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// Granularity is the time-bucketing unit of a timeline query.
type Granularity string

const (
	GranularityHour  Granularity = "hour"
	GranularityDay   Granularity = "day"
	GranularityMonth Granularity = "month"
)

// TimeRange is a half-open [Start, End) window. Start is never after End.
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if start.After(end) {
		return TimeRange{}, ErrInvertedRange
	}
	return TimeRange{Start: start, End: end}, nil
}

// Days is the elapsed time between the bounds expressed in (fractional) days.
func (r TimeRange) Days() float64 {
	return r.End.Sub(r.Start).Hours() / 24
}

// Row is one flat record of an aggregate query, keyed by column name.
type Row map[string]any

// Clone returns a shallow copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// CloneRows copies every row so that callers may modify the result freely.
func CloneRows(rows []Row) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = r.Clone()
	}
	return out
}
