package transform

import (
	"fmt"
	"time"

	"github.com/dayanaadylkhanova/barnum/internal/entity"
)

// TimelineDailyAffluence labels hour-of-day buckets that are not dates.
const TimelineDailyAffluence = "daily-affluence"

var (
	frWeekdays = [...]string{"dim.", "lun.", "mar.", "mer.", "jeu.", "ven.", "sam."}
	frMonths   = [...]string{"janv.", "févr.", "mars", "avr.", "mai", "juin", "juil.", "août", "sept.", "oct.", "nov.", "déc."}
)

// FormatTimelineLabels formats the time buckets of a chart according to the
// timespan shown: "day" gives hours, "week" weekday and date, "month" dates,
// "year" months, "daily-affluence" hours from plain hour numbers. Labels that
// cannot be read are kept as they are.
func FormatTimelineLabels(labels []string, timespan string) []string {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = timelineLabel(l, timespan)
	}
	return out
}

func timelineLabel(l, timespan string) string {
	if timespan == TimelineDailyAffluence {
		var h int
		if _, err := fmt.Sscan(l, &h); err != nil {
			return l
		}
		return fmt.Sprintf("%02dh", h)
	}
	t, ok := parseLabelTime(l)
	if !ok {
		return l
	}
	switch timespan {
	case string(entity.PeriodDay):
		return fmt.Sprintf("%02dh", t.Hour())
	case string(entity.PeriodWeek):
		return frWeekdays[t.Weekday()] + " " + t.Format("02/01/2006")
	case string(entity.PeriodMonth):
		return t.Format("02/01/2006")
	case string(entity.PeriodYear):
		return frMonths[t.Month()-1] + " " + t.Format("2006")
	default:
		return l
	}
}

func parseLabelTime(l string) (time.Time, bool) {
	if t, err := time.Parse(time.DateOnly, l); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, l); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}

// TimelineTag names the label format of a bucketed range.
func TimelineTag(g entity.Granularity, r entity.TimeRange) string {
	switch g {
	case entity.GranularityHour:
		return string(entity.PeriodDay)
	case entity.GranularityMonth:
		return string(entity.PeriodYear)
	default:
		if r.Days() <= 7 {
			return string(entity.PeriodWeek)
		}
		return string(entity.PeriodMonth)
	}
}
