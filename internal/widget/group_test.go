package widget

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBuild(t *testing.T, deps Deps, kind string, attrs Attributes) Widget {
	t.Helper()
	w, err := Build(kind, deps, attrs)
	require.NoError(t, err)
	return w
}

func TestGroup_InitAndBroadcast(t *testing.T) {
	deps, src := newTestDeps(t)
	tags := mustBuild(t, deps, KindTagSelectGroup, Attributes{"tags": "years:2023+", "default-tag": "2024"})
	chart := mustBuild(t, deps, KindCategoryChart, Attributes{"url": "/api/site-web/ville", "transform": "siteWebCategoryVille"})
	figure := mustBuild(t, deps, KindFeatureFigure, Attributes{"url": "/api/site-web/n-visites-total"})
	g := NewGroup(tags, chart, figure)

	rows := []any{map[string]any{"geo_city": "Paris", "n_visits": 3.0}}
	src.EXPECT().Fetch(gomock.Any(), "/api/site-web/ville/2024").Return(rows, nil)
	src.EXPECT().Fetch(gomock.Any(), "/api/site-web/n-visites-total/2024").Return(map[string]any{"value": 3.0}, nil)
	require.NoError(t, g.Init(context.Background()))

	src.EXPECT().Fetch(gomock.Any(), "/api/site-web/ville/2023").Return(rows, nil)
	src.EXPECT().Fetch(gomock.Any(), "/api/site-web/n-visites-total/2023").Return(map[string]any{"value": 1.0}, nil)
	require.NoError(t, g.UpdateData(context.Background(), Selection{Tag: "2023"}))

	out := renderString(t, g)
	assert.True(t, strings.HasPrefix(out, `<div class="chart-parent">`))
	assert.Contains(t, out, `aria-pressed="true" target="_self" data-tag="2023"`)
	assert.Contains(t, out, "Paris")
	assert.Contains(t, out, `<div class="fr-display-xl">1</div>`)
}

func TestGroup_CalendarDates(t *testing.T) {
	deps, src := newTestDeps(t)
	cal := mustBuild(t, deps, KindStartEndCalendar, Attributes{"date-start": "2022-04-24", "date-end": "2022-05-01"})
	tl := mustBuild(t, deps, KindTimelineChart, Attributes{
		"url": "/api/pre-plainte-en-ligne/preplaintes-timeline", "label-key": "time_dim", "value-key": "n_preplaintes",
	})
	g := NewGroup(cal, tl)

	src.EXPECT().Fetch(gomock.Any(), "/api/pre-plainte-en-ligne/preplaintes-timeline/2022-04-24/2022-05-01").
		Return([]any{map[string]any{"time_dim": "2022-04-24", "n_preplaintes": 2.0}}, nil)
	require.NoError(t, g.Init(context.Background()))
	assert.Equal(t, 1, tl.(*TimelineChart).series.Len())
}

func TestGroup_OneFailureDoesNotStopOthers(t *testing.T) {
	deps, src := newTestDeps(t)
	a := mustBuild(t, deps, KindFeatureFigure, Attributes{"url": "/api/a"})
	b := mustBuild(t, deps, KindFeatureFigure, Attributes{"url": "/api/b"})
	g := NewGroup(a, b)

	src.EXPECT().Fetch(gomock.Any(), "/api/a").Return(nil, ErrFetch)
	src.EXPECT().Fetch(gomock.Any(), "/api/b").Return(map[string]any{"value": 7.0}, nil)
	err := g.Broadcast(context.Background(), Selection{})
	assert.True(t, errors.Is(err, ErrFetch))

	assert.Contains(t, renderString(t, a), Placeholder)
	assert.Contains(t, renderString(t, b), ">7<")
}

func TestMapGroup_RegionSelection(t *testing.T) {
	deps, src := newTestDeps(t)
	tags := mustBuild(t, deps, KindTagSelectGroup, Attributes{"tags": "twitter,facebook", "default-tag": "twitter"}).(*TagSelectGroup)
	chart := mustBuild(t, deps, KindMapChart, Attributes{"url": "/api/perceval/map", "transform": "percevalMap"}).(*MapChart)
	detail := mustBuild(t, deps, KindMapDetail, Attributes{"url": "/api/perceval/map-detail", "render-fct": DetailPerceval}).(*MapDetail)
	g := NewMapGroup(chart, tags, detail)

	src.EXPECT().Fetch(gomock.Any(), "/api/perceval/map/twitter").Return([]any{
		map[string]any{"geo_dpt_iso": "FR-69", "geo_dpt_name": "Rhône", "n_signalements": 10.0},
	}, nil)
	src.EXPECT().Fetch(gomock.Any(), "/api/perceval/map-detail/gn").Return(map[string]any{"n_signalements": 100.0}, nil)
	require.NoError(t, g.Init(context.Background()))
	assert.Equal(t, "Compte National", g.Title())
	assert.Contains(t, renderString(t, g), "signalements au total")

	src.EXPECT().Fetch(gomock.Any(), "/api/perceval/map-detail/FR-69").
		Return(map[string]any{"geo_dpt_iso": "FR-69", "n_signalements": 10.0}, nil)
	require.NoError(t, g.SelectRegion(context.Background(), "FR-69", ""))
	assert.Equal(t, "Rhône", g.Title())
	out := renderString(t, g)
	assert.Contains(t, out, `<div id="selected-map-region-title">Rhône</div>`)
	assert.Contains(t, out, "signalements dans ce territoire")

	src.EXPECT().Fetch(gomock.Any(), "/api/perceval/map/facebook").Return([]any{}, nil)
	require.NoError(t, g.UpdateData(context.Background(), Selection{Tag: "facebook"}))
	assert.Equal(t, "Rhône", g.Title())

	src.EXPECT().Fetch(gomock.Any(), "/api/perceval/map-detail/gn").Return(map[string]any{"n_signalements": 100.0}, nil)
	require.NoError(t, g.BackToFrance(context.Background()))
	assert.Equal(t, "Compte National", g.Title())
}

func TestGroup_Select(t *testing.T) {
	deps, src := newTestDeps(t)
	tags := mustBuild(t, deps, KindTagSelectGroup, Attributes{"tags": "week,month,year", "default-tag": "month"})
	chart := mustBuild(t, deps, KindCategoryChart, Attributes{"url": "/api/perceval/age-category", "transform": "percevalAgeCat"})
	g := NewGroup(tags, chart)

	assert.True(t, g.AcceptsTag(""))
	assert.True(t, g.AcceptsTag("year"))
	assert.False(t, g.AcceptsTag("day"))
	assert.False(t, g.AcceptsTag("../x"))

	rows := []any{map[string]any{"age_cat": "15-24", "n_signalements": 1.0}}
	src.EXPECT().Fetch(gomock.Any(), "/api/perceval/age-category/month").Return(rows, nil)
	require.NoError(t, g.Select(context.Background(), Selection{}))

	src.EXPECT().Fetch(gomock.Any(), "/api/perceval/age-category/year").Return(rows, nil)
	require.NoError(t, g.Select(context.Background(), Selection{Tag: "year"}))
	assert.Contains(t, renderString(t, g), `aria-pressed="true" target="_self" data-tag="year"`)

	src.EXPECT().Fetch(gomock.Any(), "/api/perceval/age-category/2022-05-01/2022-05-01").Return(rows, nil)
	require.NoError(t, g.Select(context.Background(), Selection{Start: "2022-05-01", End: "2022-04-01"}))
}

func TestGroup_SelectKeepsCalendarWithoutDates(t *testing.T) {
	deps, src := newTestDeps(t)
	cal := mustBuild(t, deps, KindStartEndCalendar, Attributes{"date-start": "2022-04-24", "date-end": "2022-05-01"})
	chart := mustBuild(t, deps, KindCategoryChart, Attributes{"url": "/api/ma-gendarmerie/n-contact-category", "transform": "maGendarmerieNContactMotif"})
	g := NewGroup(cal, chart)
	assert.False(t, g.AcceptsTag("week"))

	src.EXPECT().Fetch(gomock.Any(), "/api/ma-gendarmerie/n-contact-category/2022-04-24/2022-05-01").Return([]any{}, nil)
	require.NoError(t, g.Select(context.Background(), Selection{}))

	src.EXPECT().Fetch(gomock.Any(), "/api/ma-gendarmerie/n-contact-category/2022-01-01/2022-02-01").Return([]any{}, nil)
	require.NoError(t, g.Select(context.Background(), Selection{Start: "2022-01-01", End: "2022-02-01"}))
	start, end := cal.(*StartEndCalendar).Range()
	assert.Equal(t, "2022-01-01", start)
	assert.Equal(t, "2022-02-01", end)
}

func TestMapGroup_Select(t *testing.T) {
	deps, src := newTestDeps(t)
	tags := mustBuild(t, deps, KindTagSelectGroup, Attributes{"tags": "week,month", "default-tag": "month"}).(*TagSelectGroup)
	chart := mustBuild(t, deps, KindMapChart, Attributes{"url": "/api/perceval/map", "transform": "percevalMap"}).(*MapChart)
	detail := mustBuild(t, deps, KindMapDetail, Attributes{"url": "/api/perceval/map-detail", "render-fct": DetailPerceval}).(*MapDetail)
	g := NewMapGroup(chart, tags, detail)
	g.SetLinks(&Links{Path: "/perceval", Fixed: url.Values{"section": {"0"}}})

	assert.True(t, g.AcceptsTag("week"))
	assert.False(t, g.AcceptsTag("year"))

	src.EXPECT().Fetch(gomock.Any(), "/api/perceval/map/week").Return([]any{
		map[string]any{"geo_dpt_iso": "FR-69", "geo_dpt_name": "Rhône", "n_signalements": 10.0},
	}, nil)
	src.EXPECT().Fetch(gomock.Any(), "/api/perceval/map-detail/FR-69").
		Return(map[string]any{"geo_dpt_iso": "FR-69", "n_signalements": 10.0}, nil)
	require.NoError(t, g.Select(context.Background(), "week", "FR-69"))
	assert.Equal(t, "Rhône", g.Title())

	out := renderString(t, g)
	assert.Contains(t, out, `href="/perceval?region=FR-69&amp;section=0&amp;tag=week"`)
	assert.Contains(t, out, `id="map-back-to-france" class="fr-breadcrumb__link" href="/perceval?section=0&amp;tag=week"`)
	assert.Contains(t, out, `href="/perceval?section=0&amp;tag=month"`)
	assert.Contains(t, out, "signalements dans ce territoire")
}
