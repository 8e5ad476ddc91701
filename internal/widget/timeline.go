package widget

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/dayanaadylkhanova/barnum/internal/entity"
	"github.com/dayanaadylkhanova/barnum/internal/service"
	"github.com/dayanaadylkhanova/barnum/internal/transform"
)

const (
	timelineWidth  = 800
	timelineHeight = 250
	// blue-france of the state design system
	timelineBarColor = "000091"
)

// TimelineChart draws one bar per time bucket as an SVG bar chart.
type TimelineChart struct {
	deps         Deps
	baseURL      string
	labelKey     string
	valueKey     string
	displayYAxis bool
	series       transform.Series
}

func (c *TimelineChart) Kind() string { return KindTimelineChart }

func (c *TimelineChart) Configure(a Attributes) error {
	var err error
	if c.baseURL, err = a.require(KindTimelineChart, "url"); err != nil {
		return err
	}
	if c.labelKey, err = a.require(KindTimelineChart, "label-key"); err != nil {
		return err
	}
	if c.valueKey, err = a.require(KindTimelineChart, "value-key"); err != nil {
		return err
	}
	c.displayYAxis = true
	if a.Has("display-y-axis") {
		v, err := strconv.ParseBool(a["display-y-axis"])
		if err != nil {
			return badAttribute("display-y-axis", a["display-y-axis"])
		}
		c.displayYAxis = v
	}
	return nil
}

func (c *TimelineChart) UpdateData(ctx context.Context, sel Selection) error {
	c.series = transform.Series{}

	path := c.baseURL
	labelTag := transform.TimelineDailyAffluence
	switch {
	case sel.Tag == transform.TimelineDailyAffluence:
	case !sel.HasDates() && isPeriod(sel.Tag):
		path += "/" + sel.Tag
		labelTag = sel.Tag
	default:
		r, err := selectionRange(sel)
		if err != nil {
			return err
		}
		path += "/" + sel.Start + "/" + sel.End
		labelTag = transform.TimelineTag(service.SelectGranularity(r.Start, r.End), r)
	}

	data, err := c.deps.Source.Fetch(ctx, path)
	if err != nil {
		return err
	}
	rows, err := transform.Rows(data)
	if err != nil {
		return err
	}
	s := transform.HorizontalBar(rows, c.labelKey, c.valueKey)
	s.Labels = transform.FormatTimelineLabels(s.Labels, labelTag)
	c.series = s
	return nil
}

func isPeriod(tag string) bool {
	switch entity.Period(tag) {
	case entity.PeriodDay, entity.PeriodWeek, entity.PeriodMonth, entity.PeriodYear:
		return true
	}
	return false
}

func selectionRange(sel Selection) (entity.TimeRange, error) {
	if !sel.HasDates() {
		return entity.TimeRange{}, fmt.Errorf("%w: timeline needs start and end dates", ErrBadAttribute)
	}
	start, err := service.ParseDate(sel.Start)
	if err != nil {
		return entity.TimeRange{}, badAttribute("start", sel.Start)
	}
	end, err := service.ParseDate(sel.End)
	if err != nil {
		return entity.TimeRange{}, badAttribute("end", sel.End)
	}
	return entity.NewTimeRange(start, end)
}

func (c *TimelineChart) Render(w io.Writer) error {
	if c.series.Len() == 0 {
		return placeholder(w)
	}
	var svg bytes.Buffer
	if err := c.chart().Render(chart.SVG, &svg); err != nil {
		return err
	}
	if _, err := io.WriteString(w, `<div class="hbarchart" style="display:block; height:250px">`+"\n"); err != nil {
		return err
	}
	if _, err := svg.WriteTo(w); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n</div>\n")
	return err
}

func (c *TimelineChart) chart() chart.BarChart {
	color := drawing.ColorFromHex(timelineBarColor)
	bars := make([]chart.Value, c.series.Len())
	top := 1.0
	for i, v := range c.series.Values {
		bars[i] = chart.Value{
			Label: c.series.Labels[i],
			Value: v,
			Style: chart.Style{FillColor: color, StrokeColor: color, StrokeWidth: 0},
		}
		if v > top {
			top = v
		}
	}

	barWidth := (timelineWidth - 80) / len(bars)
	if barWidth < 2 {
		barWidth = 2
	}
	return chart.BarChart{
		Width:      timelineWidth,
		Height:     timelineHeight,
		BarWidth:   barWidth * 9 / 10,
		BarSpacing: barWidth / 10,
		Background: chart.Style{Padding: chart.Box{Top: 10, Left: 10, Right: 10, Bottom: 10}},
		XAxis:      chart.Style{FontSize: 8},
		YAxis: chart.YAxis{
			Style: chart.Style{Hidden: !c.displayYAxis},
			Range: &chart.ContinuousRange{Min: 0, Max: top},
		},
		Bars: bars,
	}
}
