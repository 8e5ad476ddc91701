package widget

import (
	"context"
	"html/template"
	"io"

	"golang.org/x/sync/errgroup"
)

const (
	nationalTitle = "Compte National"
	nationalKey   = "gn"
)

var breadcrumbsTmpl = template.Must(template.New("map-breadcrumbs").Parse(`<div id="map-rs-ariane">
    <ol class="fr-breadcrumb__list">
        <li><a id="map-back-to-france" class="fr-breadcrumb__link" href="{{.Back}}">France</a></li>
        <li><a class="fr-breadcrumb__link" aria-current="page"><div id="selected-map-region-title">{{.Crumb}}</div></a></li>
    </ol>
</div>
<h3 class="chart-title">{{.Title}}</h3>
`))

// MapGroup is a map-parent: a map chart on one side and the detail of the
// selected region on the other. Tag changes reload the map only.
type MapGroup struct {
	tags   *TagSelectGroup
	chart  *MapChart
	detail *MapDetail
	crumb  string
	title  string
	tag    string
	links  *Links
}

// NewMapGroup wires a map with its optional tag group and detail panel.
func NewMapGroup(chart *MapChart, tags *TagSelectGroup, detail *MapDetail) *MapGroup {
	return &MapGroup{tags: tags, chart: chart, detail: detail, title: nationalTitle}
}

func (g *MapGroup) Kind() string { return KindMapParent }

func (g *MapGroup) Configure(Attributes) error { return nil }

// SetLinks points the tags, the departments and the breadcrumb at l.
func (g *MapGroup) SetLinks(l *Links) {
	g.links = l
	g.chart.SetLinks(l)
	if g.tags != nil {
		g.tags.SetLinks(l)
	}
}

// AcceptsTag reports whether the map can be reloaded with tag.
func (g *MapGroup) AcceptsTag(tag string) bool {
	if tag == "" {
		return true
	}
	return g.tags != nil && g.tags.has(tag)
}

// Init loads the map with the default tag and the detail with the national
// figures.
func (g *MapGroup) Init(ctx context.Context) error {
	return g.Select(ctx, "", "")
}

// Select loads the map with tag, the default one when empty, and the
// detail of region, the national figures when empty. A region detail waits
// for the map, which names the region.
func (g *MapGroup) Select(ctx context.Context, tag, region string) error {
	if tag == "" && g.tags != nil {
		tag = g.tags.DefaultTag()
	}
	if region != "" {
		mapErr := g.UpdateData(ctx, Selection{Tag: tag})
		if err := g.SelectRegion(ctx, region, ""); err != nil {
			return err
		}
		return mapErr
	}
	var eg errgroup.Group
	eg.Go(func() error { return g.UpdateData(ctx, Selection{Tag: tag}) })
	eg.Go(func() error { return g.BackToFrance(ctx) })
	return eg.Wait()
}

func (g *MapGroup) UpdateData(ctx context.Context, sel Selection) error {
	g.tag = sel.Tag
	if g.tags != nil {
		if err := g.tags.UpdateData(ctx, sel); err != nil {
			return err
		}
	}
	return g.chart.UpdateData(ctx, sel)
}

// SelectRegion shows the detail of one department. The name is taken from
// the map data when the caller has none.
func (g *MapGroup) SelectRegion(ctx context.Context, iso, name string) error {
	if g.detail == nil {
		return nil
	}
	if name == "" {
		name = iso
		if r, ok := g.chart.Region(iso); ok && r.Name != "" {
			name = r.Name
		}
	}
	g.crumb, g.title = name, name
	return g.detail.UpdateData(ctx, Selection{Tag: iso})
}

// BackToFrance resets the detail to the national figures.
func (g *MapGroup) BackToFrance(ctx context.Context) error {
	if g.detail == nil {
		return nil
	}
	g.crumb, g.title = "", nationalTitle
	return g.detail.UpdateData(ctx, Selection{Tag: nationalKey})
}

// Title is the heading of the detail panel.
func (g *MapGroup) Title() string { return g.title }

func (g *MapGroup) Render(w io.Writer) error {
	if _, err := io.WriteString(w, `<div class="map-parent">`+"\n"); err != nil {
		return err
	}
	if g.tags != nil {
		if err := g.tags.Render(w); err != nil {
			return err
		}
	}
	if err := g.chart.Render(w); err != nil {
		return err
	}
	if g.detail != nil {
		if err := breadcrumbsTmpl.Execute(w, struct{ Back, Crumb, Title string }{
			g.links.Href("tag", g.tag), g.crumb, g.title,
		}); err != nil {
			return err
		}
		if err := g.detail.Render(w); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</div>\n")
	return err
}
