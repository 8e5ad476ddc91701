package http_server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dayanaadylkhanova/barnum/internal/service"
	"github.com/dayanaadylkhanova/barnum/internal/widget"
)

var layoutTmpl = template.Must(template.New("layout").Parse(`<!DOCTYPE html>
<html lang="fr" data-fr-scheme="system">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} | Baromètre numérique de la Gendarmerie nationale</title>
</head>
<body>
<header class="fr-header">
<nav class="fr-nav" role="navigation" aria-label="Menu principal">
<ul class="fr-nav__list">
{{- range .Nav}}
<li class="fr-nav__item"><a class="fr-nav__link" href="{{.Path}}"{{if .Current}} aria-current="page"{{end}}>{{.Title}}</a></li>
{{- end}}
</ul>
</nav>
</header>
<main class="fr-container">
<h1>{{.Title}}</h1>
{{- range .Sections}}
<section id="{{.ID}}" class="fr-mb-6w">
<h2>{{.Title}}</h2>
{{.Body}}
</section>
{{- end}}
</main>
</body>
</html>
`))

var statusTmpl = template.Must(template.New("status").Parse(`<!DOCTYPE html>
<html lang="fr">
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<main class="fr-container">
<h1>{{.Title}}</h1>
<p>{{.Text}}</p>
<p><a href="/">Retour à l'accueil</a></p>
</main>
</body>
</html>
`))

type statusPage struct {
	Title string
	Text  string
}

var (
	notFoundPage = statusPage{
		Title: "Page non trouvée",
		Text:  "La page que vous cherchez est introuvable.",
	}
	offlinePage = statusPage{
		Title: "Service momentanément indisponible",
		Text:  "Le baromètre est en maintenance, merci de réessayer plus tard.",
	}
	badSelectionPage = statusPage{
		Title: "Sélection invalide",
		Text:  "La période ou le territoire demandé n'existe pas.",
	}
)

var errBadSelection = errors.New("bad page selection")

func renderStatusPage(p statusPage) []byte {
	var buf bytes.Buffer
	_ = statusTmpl.Execute(&buf, p)
	return buf.Bytes()
}

type navItem struct {
	Path    string
	Title   string
	Current bool
}

type renderedSection struct {
	ID    string
	Title string
	Body  template.HTML
}

// group is a chart-parent or map-parent.
type group interface {
	widget.Widget
	Init(ctx context.Context) error
	SetLinks(l *widget.Links)
	AcceptsTag(tag string) bool
}

// pageSelection is the choice made in one section of a page: a tag, a
// date range, or a department of a map.
type pageSelection struct {
	section int
	sel     widget.Selection
	region  string
}

func noSelection() pageSelection { return pageSelection{section: -1} }

// parsePageSelection reads ?section=&tag=&start=&end=&region=. Without a
// section every group shows its initial selection.
func parsePageSelection(q url.Values, sections int) (pageSelection, error) {
	raw := q.Get("section")
	if raw == "" {
		return noSelection(), nil
	}
	i, err := strconv.Atoi(raw)
	if err != nil || i < 0 || i >= sections {
		return noSelection(), fmt.Errorf("%w: section %q", errBadSelection, raw)
	}
	ps := pageSelection{
		section: i,
		sel:     widget.Selection{Tag: q.Get("tag"), Start: q.Get("start"), End: q.Get("end")},
		region:  q.Get("region"),
	}
	if (ps.sel.Start == "") != (ps.sel.End == "") {
		return noSelection(), fmt.Errorf("%w: start and end go together", errBadSelection)
	}
	if ps.sel.HasDates() {
		for _, d := range []string{ps.sel.Start, ps.sel.End} {
			if _, err := service.ParseDate(d); err != nil {
				return noSelection(), fmt.Errorf("%w: %w", errBadSelection, err)
			}
		}
	}
	if ps.region != "" && !widget.ValidRegion(ps.region) {
		return noSelection(), fmt.Errorf("%w: region %q", errBadSelection, ps.region)
	}
	return ps, nil
}

func sectionLinks(path string, i int) *widget.Links {
	return &widget.Links{
		Path:   path,
		Fixed:  url.Values{"section": {strconv.Itoa(i)}},
		Anchor: sectionID(i),
	}
}

func sectionID(i int) string { return "section-" + strconv.Itoa(i) }

// load initializes g, or applies ps when it targets g.
func load(ctx context.Context, g group, ps pageSelection, i int) error {
	if ps.section != i {
		return g.Init(ctx)
	}
	switch x := g.(type) {
	case *widget.MapGroup:
		return x.Select(ctx, ps.sel.Tag, ps.region)
	case *widget.Group:
		return x.Select(ctx, ps.sel)
	default:
		return g.Init(ctx)
	}
}

// checkSelection rejects a selection the targeted group cannot show.
func checkSelection(groups []group, ps pageSelection) error {
	if ps.section < 0 {
		return nil
	}
	g := groups[ps.section]
	if !g.AcceptsTag(ps.sel.Tag) {
		return fmt.Errorf("%w: tag %q", errBadSelection, ps.sel.Tag)
	}
	if _, isMap := g.(*widget.MapGroup); isMap && ps.sel.HasDates() {
		return fmt.Errorf("%w: a map takes no dates", errBadSelection)
	}
	if _, isMap := g.(*widget.MapGroup); !isMap && ps.region != "" {
		return fmt.Errorf("%w: region outside a map", errBadSelection)
	}
	return nil
}

// buildSection configures the widgets of s and wraps them in their parent.
func buildSection(deps widget.Deps, s Section) (group, error) {
	members := make([]widget.Widget, 0, len(s.Widgets))
	for _, spec := range s.Widgets {
		w, err := widget.Build(spec.Kind, deps, spec.Attrs)
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", s.Title, err)
		}
		members = append(members, w)
	}

	if !s.Map {
		g := widget.NewGroup(members...)
		if s.DefaultTag != "" {
			if err := g.Configure(widget.Attributes{"default-tag": s.DefaultTag}); err != nil {
				return nil, err
			}
		}
		return g, nil
	}

	var (
		chart  *widget.MapChart
		tags   *widget.TagSelectGroup
		detail *widget.MapDetail
	)
	for _, m := range members {
		switch x := m.(type) {
		case *widget.MapChart:
			chart = x
		case *widget.TagSelectGroup:
			tags = x
		case *widget.MapDetail:
			detail = x
		}
	}
	if chart == nil {
		return nil, fmt.Errorf("section %q: %w: map-parent needs a map-chart", s.Title, widget.ErrMissingAttribute)
	}
	return widget.NewMapGroup(chart, tags, detail), nil
}

// renderPage loads every section at once. A section that fails to load
// still renders, with placeholders.
func (s *Server) renderPage(ctx context.Context, p Page, ps pageSelection) ([]byte, error) {
	groups := make([]group, len(p.Sections))
	for i, sec := range p.Sections {
		g, err := buildSection(s.deps, sec)
		if err != nil {
			return nil, err
		}
		g.SetLinks(sectionLinks(p.Path, i))
		groups[i] = g
	}
	if err := checkSelection(groups, ps); err != nil {
		return nil, err
	}

	sections := make([]renderedSection, len(p.Sections))
	var eg errgroup.Group
	for i, g := range groups {
		sec := p.Sections[i]
		eg.Go(func() error {
			if err := load(ctx, g, ps, i); err != nil {
				s.log.Warn("section update", zap.String("page", p.Path), zap.String("section", sec.Title), zap.Error(err))
			}
			var buf bytes.Buffer
			if err := g.Render(&buf); err != nil {
				return err
			}
			sections[i] = renderedSection{ID: sectionID(i), Title: sec.Title, Body: template.HTML(buf.String())}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	nav := make([]navItem, len(s.pages))
	for i, np := range s.pages {
		nav[i] = navItem{Path: np.Path, Title: np.Title, Current: np.Path == p.Path}
	}
	var buf bytes.Buffer
	err := layoutTmpl.Execute(&buf, struct {
		Title    string
		Nav      []navItem
		Sections []renderedSection
	}{p.Title, nav, sections})
	return buf.Bytes(), err
}

func (s *Server) handlePage(p Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ps, err := parsePageSelection(r.URL.Query(), len(p.Sections))
		var body []byte
		if err == nil {
			body, err = s.renderPage(r.Context(), p, ps)
		}
		if errors.Is(err, errBadSelection) {
			writeHTML(w, http.StatusBadRequest, renderStatusPage(badSelectionPage))
			return
		}
		if err != nil {
			s.log.Error("page render", zap.String("page", p.Path), zap.String("request_id", requestID(r)), zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeHTML(w, http.StatusOK, body)
	}
}
