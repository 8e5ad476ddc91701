package widget

import (
	"context"
	"html/template"
	"io"
	"time"

	"github.com/dayanaadylkhanova/barnum/internal/entity"
	"github.com/dayanaadylkhanova/barnum/internal/service"
)

var calendarTmpl = template.Must(template.New(KindStartEndCalendar).Parse(`{{if .Action}}<form method="get" action="{{.Action}}">
{{- range .Hidden}}
<input type="hidden" name="{{.Name}}" value="{{.Value}}">
{{- end}}
{{end}}<div class="fr-grid-row fr-grid-row--gutters fr-grid-row--center">
    <div class="fr-input-group">
        <label class="fr-label" for="text-input-calendar-start">Date de début</label>
        <div class="fr-input-wrap fr-fi-calendar-line">
            <input class="fr-input" type="date" id="input-calendar-start" name="start" value="{{.Start}}">
        </div>
    </div>
    <div class="fr-input-group fr-ml-1w">
        <label class="fr-label" for="text-input-calendar-end">Date de fin</label>
        <div class="fr-input-wrap fr-fi-calendar-line">
            <input class="fr-input" type="date" id="input-calendar-end" name="end" value="{{.End}}" min="{{.Start}}">
        </div>
    </div>
{{- if .Action}}
    <div class="fr-ml-1w"><button class="fr-btn fr-btn--sm" type="submit">Valider</button></div>
{{- end}}
</div>
{{if .Action}}</form>
{{end}}`))

// StartEndCalendar is the pair of date inputs that sends start and end
// bounds to the charts of a group.
type StartEndCalendar struct {
	deps  Deps
	start string
	end   string
	links *Links
}

func (c *StartEndCalendar) Kind() string { return KindStartEndCalendar }

// Configure takes date-start and date-end when both are given. Otherwise
// the range ends today and starts one timespan before.
func (c *StartEndCalendar) Configure(a Attributes) error {
	if a.Has("date-start") {
		start, end := a["date-start"], a.Get("date-end", "")
		if err := checkDates(start, end); err != nil {
			return err
		}
		c.start, c.end = start, end
		return nil
	}

	now := c.deps.now()
	from := now
	switch entity.Period(a.Get("timespan", "")) {
	case entity.PeriodWeek:
		from = now.AddDate(0, 0, -7)
	case entity.PeriodMonth:
		from = now.AddDate(0, -1, 0)
	case entity.PeriodYear:
		from = now.AddDate(-1, 0, 0)
	}
	c.start = from.Format(time.DateOnly)
	c.end = now.Format(time.DateOnly)
	return nil
}

func checkDates(start, end string) error {
	s, err := service.ParseDate(start)
	if err != nil {
		return badAttribute("date-start", start)
	}
	if end == "" {
		return nil
	}
	e, err := service.ParseDate(end)
	if err != nil {
		return badAttribute("date-end", end)
	}
	if e.Before(s) {
		return badAttribute("date-end", end)
	}
	return nil
}

// Range returns the dates shown in the inputs.
func (c *StartEndCalendar) Range() (start, end string) { return c.start, c.end }

// UpdateData keeps the inputs in sync with dates chosen elsewhere. An end
// date before the start is moved to the start.
func (c *StartEndCalendar) UpdateData(_ context.Context, sel Selection) error {
	if !sel.HasDates() {
		return nil
	}
	c.start, c.end = sel.Start, sel.End
	if c.end < c.start {
		c.end = c.start
	}
	return nil
}

// SetLinks turns the inputs into a form that reloads the page with the
// chosen dates.
func (c *StartEndCalendar) SetLinks(l *Links) { c.links = l }

func (c *StartEndCalendar) Render(w io.Writer) error {
	return calendarTmpl.Execute(w, struct {
		Start, End string
		Action     string
		Hidden     []hiddenField
	}{c.start, c.end, c.links.Action(), c.links.hidden()})
}
