package service

import (
	"time"

	"github.com/dayanaadylkhanova/barnum/internal/entity"
)

// SelectGranularity picks the bucketing unit for a timeline spanning from..to.
//
// The 2..30 and 30..365 day tiers both bucket by day. Published timelines rely
// on that output, keep the two cases distinct.
func SelectGranularity(from, to time.Time) entity.Granularity {
	days := to.Sub(from).Hours() / 24
	switch {
	case days < 2:
		return entity.GranularityHour
	case days < 30:
		return entity.GranularityDay
	case days < 365:
		return entity.GranularityDay
	default:
		return entity.GranularityMonth
	}
}

// Bucketing maps a granularity to the SQL column or expression that groups
// rows of one particular table.
type Bucketing struct {
	Hour  string
	Day   string
	Month string
}

var (
	// DailyTable has one row per day with a precomputed month column.
	DailyTable = Bucketing{Hour: "date", Day: "date", Month: "month"}
	// HourlyTable has one row per hour with precomputed date and month columns.
	HourlyTable = Bucketing{Hour: "datetime", Day: "date", Month: "month"}
	// DateTimeTable only has a timestamp column.
	DateTimeTable = Bucketing{Hour: "datetime", Day: "datetime::date", Month: "date_trunc('month',datetime)::date"}
	// ContactsTable only has a date column.
	ContactsTable = Bucketing{Hour: "date", Day: "date", Month: "date_trunc('month', date)::date"}
)

func (b Bucketing) Expr(g entity.Granularity) string {
	switch g {
	case entity.GranularityHour:
		return b.Hour
	case entity.GranularityMonth:
		return b.Month
	default:
		return b.Day
	}
}
