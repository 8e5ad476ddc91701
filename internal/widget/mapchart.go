package widget

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/dayanaadylkhanova/barnum/internal/transform"
)

// Colors of the state design system used by the map.
const (
	mapMinColor      = "#cacafb"
	mapMaxColor      = "#000091"
	mapDisabledColor = "#ffffff"
)

var geoIsoPattern = regexp.MustCompile(`^FR-[0-9A-Z]{1,4}$`)

// DefaultDepartments are the ISO 3166-2 codes drawn on the France map.
var DefaultDepartments = func() []string {
	var out []string
	for i := 1; i <= 95; i++ {
		if i == 20 {
			out = append(out, "FR-2A", "FR-2B")
			continue
		}
		out = append(out, fmt.Sprintf("FR-%02d", i))
	}
	return append(out, "FR-971", "FR-972", "FR-973", "FR-974", "FR-976")
}()

var mapTmpl = template.Must(template.New(KindMapChart).Parse(`<style>
{{.Rules}}
</style>
<details class="map-chart-regions">
<summary>Départements</summary>
<ul>
{{- range .Regions}}
<li><a href="{{.Href}}" data-geo-iso="{{.Iso}}" aria-description="{{.Name}}">{{.Name}}</a></li>
{{- end}}
</ul>
</details>
<p class="map-chart-legend">0 – {{.Max}}</p>
`))

// Region is one department of a map.
type Region struct {
	Iso   string
	Name  string
	Value float64
}

type regionItem struct {
	Region
	Href string
}

// MapChart colors the departments of the France map on a linear scale from
// zero to the largest value. Departments without data get the disabled color.
type MapChart struct {
	deps        Deps
	baseURL     string
	transform   string
	departments []string
	low, high   colorful.Color
	disabled    colorful.Color
	data        transform.GeoMap
	tag         string
	links       *Links
}

func (m *MapChart) Kind() string { return KindMapChart }

func (m *MapChart) Configure(a Attributes) error {
	var err error
	if m.baseURL, err = a.require(KindMapChart, "url"); err != nil {
		return err
	}
	if m.transform, err = a.require(KindMapChart, "transform"); err != nil {
		return err
	}
	if _, ok := m.deps.Transforms.Lookup(m.transform); !ok {
		return badAttribute("transform", m.transform)
	}

	m.departments = DefaultDepartments
	if a.Has("departments") {
		m.departments = nil
		for _, d := range strings.Split(a["departments"], ",") {
			d = strings.TrimSpace(d)
			if !geoIsoPattern.MatchString(d) {
				return badAttribute("departments", d)
			}
			m.departments = append(m.departments, d)
		}
	}

	for _, c := range []struct {
		key, def string
		dst      *colorful.Color
	}{
		{"min-color", mapMinColor, &m.low},
		{"max-color", mapMaxColor, &m.high},
		{"disabled-color", mapDisabledColor, &m.disabled},
	} {
		col, err := colorful.Hex("#" + strings.TrimPrefix(a.Get(c.key, c.def), "#"))
		if err != nil {
			return badAttribute(c.key, a[c.key])
		}
		*c.dst = col
	}
	return nil
}

// SetLinks makes every department a link that selects it.
func (m *MapChart) SetLinks(l *Links) { m.links = l }

func (m *MapChart) UpdateData(ctx context.Context, sel Selection) error {
	m.data = nil
	m.tag = sel.Tag
	path := m.baseURL
	if sel.Tag != "" {
		path += "/" + sel.Tag
	}
	data, err := m.deps.Source.Fetch(ctx, path)
	if err != nil {
		return err
	}
	out, err := m.deps.Transforms.Apply(m.transform, data)
	if err != nil {
		return err
	}
	geo, ok := out.(transform.GeoMap)
	if !ok {
		return unexpected(KindMapChart, out)
	}
	m.data = geo
	return nil
}

// Region returns the department iso from the last fetched data.
func (m *MapChart) Region(iso string) (Region, bool) {
	v, ok := m.data[iso]
	if !ok {
		return Region{}, false
	}
	return Region{Iso: iso, Name: v.Name, Value: v.Value}, true
}

// Fill returns the color of a department for the current data.
func (m *MapChart) Fill(iso string) string {
	v, ok := m.data[iso]
	if !ok {
		return m.disabled.Hex()
	}
	top := m.data.Max()
	var t float64
	if top > 0 {
		t = v.Value / top
	}
	return m.low.BlendRgb(m.high, t).Clamped().Hex()
}

func (m *MapChart) Render(w io.Writer) error {
	if len(m.data) == 0 {
		return placeholder(w)
	}

	var rules strings.Builder
	seen := make(map[string]bool, len(m.departments))
	for _, d := range m.departments {
		seen[d] = true
		fmt.Fprintf(&rules, "#%s { fill: %s; }\n", d, m.Fill(d))
	}
	regions := make([]regionItem, 0, len(m.data))
	for iso, v := range m.data {
		if !geoIsoPattern.MatchString(iso) {
			continue
		}
		if !seen[iso] {
			fmt.Fprintf(&rules, "#%s { fill: %s; }\n", iso, m.Fill(iso))
		}
		regions = append(regions, regionItem{
			Region: Region{Iso: iso, Name: v.Name, Value: v.Value},
			Href:   m.links.Href("tag", m.tag, "region", iso),
		})
	}
	sort.Slice(regions, func(i, j int) bool { return regions[i].Iso < regions[j].Iso })

	return mapTmpl.Execute(w, struct {
		Rules   template.CSS
		Regions []regionItem
		Max     string
	}{
		Rules:   template.CSS(rules.String()),
		Regions: regions,
		Max:     transform.FormatNumber(m.data.Max()),
	})
}
