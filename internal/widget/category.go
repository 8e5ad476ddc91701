package widget

import (
	"context"
	"html/template"
	"io"
	"strconv"

	"github.com/dayanaadylkhanova/barnum/internal/transform"
)

const (
	maxRowsPerColumn = 10
	minVisiblePerc   = 0.001
)

var categoryTmpl = template.Must(template.New(KindCategoryChart).Parse(`<div class="vbarchart" style="display:block">
<div class="fr-grid-row fr-grid-row--center">
{{- range .}}
<div class="{{.Class}}">
{{- range .Items}}
{{- if .Break}}
<hr class="fr-mt-4w">
{{- else}}
<p>{{if .LabelURL}}<a href="{{.LabelURL}}" target="_blank">{{.Label}}</a>{{else}}{{.Label}}{{end}}<span class="vbarchart-bar-text-val">{{.ValueText}}</span></p>
<svg class="vbarchart-bar" width="100%" height="10"><rect class="vbarchart-bar-fg" x="0" y="0" width="{{.Width}}" height="10"></rect></svg>
{{- end}}
{{- end}}
</div>
{{- end}}
</div>
</div>
`))

// CategoryChart draws a list of labeled percentage bars, ten per column.
type CategoryChart struct {
	deps       Deps
	baseURL    string
	transform  string
	maxResults int
	bars       []transform.Bar
}

func (c *CategoryChart) Kind() string { return KindCategoryChart }

func (c *CategoryChart) Configure(a Attributes) error {
	var err error
	if c.baseURL, err = a.require(KindCategoryChart, "url"); err != nil {
		return err
	}
	if c.transform, err = a.require(KindCategoryChart, "transform"); err != nil {
		return err
	}
	if _, ok := c.deps.Transforms.Lookup(c.transform); !ok {
		return badAttribute("transform", c.transform)
	}
	if a.Has("max-results") {
		n, err := strconv.Atoi(a["max-results"])
		if err != nil || n < 0 {
			return badAttribute("max-results", a["max-results"])
		}
		c.maxResults = n
	}
	return nil
}

func (c *CategoryChart) UpdateData(ctx context.Context, sel Selection) error {
	c.bars = nil
	data, err := c.deps.Source.Fetch(ctx, c.url(sel))
	if err != nil {
		return err
	}
	out, err := c.deps.Transforms.Apply(c.transform, data)
	if err != nil {
		return err
	}
	bars, ok := out.([]transform.Bar)
	if !ok {
		return unexpected(KindCategoryChart, out)
	}
	c.bars = bars
	return nil
}

// url is base/<year> for numeric tags, base/<period> for period tags without
// dates, base/<start>/<end> when the selection carries dates and base
// otherwise.
func (c *CategoryChart) url(sel Selection) string {
	u := c.baseURL
	switch {
	case isNumber(sel.Tag):
		u += "/" + sel.Tag
	case !sel.HasDates() && isPeriod(sel.Tag):
		u += "/" + sel.Tag
	case sel.HasDates():
		u += "/" + sel.Start + "/" + sel.End
	}
	if c.maxResults > 0 {
		u += "?maxResults=" + strconv.Itoa(c.maxResults)
	}
	return u
}

type barItem struct {
	transform.Bar
	Width string
}

type barColumn struct {
	Class string
	Items []barItem
}

// columns splits the visible bars in blocks of maxRowsPerColumn. A block
// whose bars are all hidden gets no column, the next one keeps its number.
func (c *CategoryChart) columns() []barColumn {
	var cols []barColumn
	last := 0
	for i, b := range c.bars {
		if !b.Break && b.Perc < minVisiblePerc {
			continue
		}
		if n := i/maxRowsPerColumn + 1; n != last {
			cols = append(cols, barColumn{Class: columnClass(n)})
			last = n
		}
		cols[len(cols)-1].Items = append(cols[len(cols)-1].Items, barItem{Bar: b, Width: strconv.FormatFloat(b.Value, 'f', 1, 64) + "%"})
	}
	return cols
}

func columnClass(n int) string {
	if n == 1 {
		return "fr-col chart-col-1"
	}
	return "fr-col-12 fr-col-md-5 fr-col-lg fr-col-offset-md-1 chart-col-" + strconv.Itoa(n)
}

func (c *CategoryChart) Render(w io.Writer) error {
	if len(c.bars) == 0 {
		return placeholder(w)
	}
	return categoryTmpl.Execute(w, c.columns())
}

func isNumber(s string) bool {
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
