package widget

import (
	"context"
	"html/template"
	"io"
	"strings"

	"github.com/dayanaadylkhanova/barnum/internal/transform"
)

// Map detail renderers, selected with data-render-fct.
const (
	DetailPerceval  = "perceval"
	DetailPPEL      = "pre-plainte-en-ligne"
	DetailTwitter   = "twitter"
	DetailSPPlus    = "service-public-plus"
	rhoneAlias      = "FR-RHONE"
	rhoneDepartment = "FR-69"
	noTerritoryData = "Pas de données dans ce territoire"
)

// countDetail is the figure shown by the perceval, pre-plainte and service
// public+ detail panels.
type countDetail struct {
	Empty string
	Value string
	Text  string
}

var countDetailTmpl = template.Must(template.New("count-detail").Parse(`<div class="map-detail">
{{- if .Empty}}
<p>{{.Empty}}</p>
{{- else}}
<p class="fr-display-xs">{{.Value}}</p>
<p>{{.Text}}</p>
{{- end}}
</div>
`))

var twitterDetailTmpl = template.Must(template.New("twitter-detail").Parse(`<div class="map-detail">
{{- if .Empty}}
<p>Pas de données disponibles</p>
{{- else}}
<p class="fr-display-xs">{{.Followers}}</p>
<p>
    abonnements au compte Twitter<br>
    <a href="{{.PageURL}}" target="_blank">{{.PageName}}</a>
</p>
<br>
<p class="fr-display-xs">{{.Tweets}}</p>
<p>Tweets</p>
{{- end}}
</div>
`))

type detailRenderer func(w io.Writer, data any) error

var detailRenderers = map[string]detailRenderer{
	DetailPerceval: countRenderer("n_signalements", false, countTexts{
		empty:    noTerritoryData,
		one:      "signalement dans ce territoire",
		many:     "signalements dans ce territoire",
		national: "signalements au total",
	}),
	DetailPPEL: countRenderer("n_preplaintes", false, countTexts{
		empty:    noTerritoryData,
		one:      "pré-plainte déposée dans ce territoire",
		many:     "pré-plaintes déposées dans ce territoire",
		national: "pré-plaintes déposées au total",
	}),
	DetailSPPlus: countRenderer("exp_count", true, countTexts{
		empty:    "Aucune expérience partagée dans ce territoire",
		one:      "expérience partagée dans ce territoire",
		many:     "expériences partagées dans ce territoire",
		national: "expériences non rattachées à un département",
	}),
	DetailTwitter: renderTwitterDetail,
}

type countTexts struct {
	empty, one, many, national string
}

// countRenderer renders a lookup record holding a count field. A record
// without geo_dpt_iso is the national total.
func countRenderer(field string, raw bool, texts countTexts) detailRenderer {
	return func(w io.Writer, data any) error {
		obj, err := transform.Object(data)
		if err != nil {
			return err
		}
		n, ok := transform.Number(obj[field])
		if !ok || n == 0 {
			return countDetailTmpl.Execute(w, countDetail{Empty: texts.empty})
		}
		d := countDetail{Value: transform.FormatNumber(n)}
		if raw {
			d.Value = transform.Text(obj[field])
		}
		switch {
		case transform.Text(obj["geo_dpt_iso"]) == "":
			d.Text = texts.national
		case n > 1:
			d.Text = texts.many
		default:
			d.Text = texts.one
		}
		return countDetailTmpl.Execute(w, d)
	}
}

func renderTwitterDetail(w io.Writer, data any) error {
	rows, err := transform.Rows(data)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return twitterDetailTmpl.Execute(w, struct{ Empty bool }{true})
	}
	r := rows[0]
	followers, _ := transform.Number(r["n_followers"])
	tweets, _ := transform.Number(r["n_tweets"])
	return twitterDetailTmpl.Execute(w, struct {
		Empty     bool
		Followers string
		Tweets    string
		PageName  string
		PageURL   template.URL
	}{
		Followers: transform.FormatNumber(followers),
		Tweets:    transform.FormatNumber(tweets),
		PageName:  transform.Text(r["page_name"]),
		PageURL:   safeURL(transform.Text(r["page_url"])),
	})
}

func safeURL(u string) template.URL {
	if strings.HasPrefix(u, "https://") || strings.HasPrefix(u, "http://") {
		return template.URL(u)
	}
	return "#"
}

// MapDetail shows the figures of the selected region next to a map.
type MapDetail struct {
	deps     Deps
	baseURL  string
	renderer string
	render   detailRenderer
	data     any
	loaded   bool
}

func (m *MapDetail) Kind() string { return KindMapDetail }

func (m *MapDetail) Configure(a Attributes) error {
	var err error
	if m.baseURL, err = a.require(KindMapDetail, "url"); err != nil {
		return err
	}
	if m.renderer, err = a.require(KindMapDetail, "render-fct"); err != nil {
		return err
	}
	r, ok := detailRenderers[m.renderer]
	if !ok {
		return badAttribute("render-fct", m.renderer)
	}
	m.render = r
	return nil
}

// UpdateData loads the detail of the region whose iso code is the
// selection tag.
func (m *MapDetail) UpdateData(ctx context.Context, sel Selection) error {
	m.data, m.loaded = nil, false
	iso := sel.Tag
	if m.renderer == DetailPerceval && iso == rhoneAlias {
		iso = rhoneDepartment
	}
	data, err := m.deps.Source.Fetch(ctx, m.baseURL+"/"+iso)
	if err != nil {
		return err
	}
	m.data, m.loaded = data, true
	return nil
}

func (m *MapDetail) Render(w io.Writer) error {
	if !m.loaded {
		return placeholder(w)
	}
	return m.render(w, m.data)
}
