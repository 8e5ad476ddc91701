package widget

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dayanaadylkhanova/barnum/internal/transform"
)

func TestCategoryChart_URL(t *testing.T) {
	tests := []struct {
		name  string
		attrs Attributes
		sel   Selection
		want  string
	}{
		{"plain", Attributes{}, Selection{}, "/api/site-web/ville"},
		{"period tag", Attributes{}, Selection{Tag: "week"}, "/api/site-web/ville/week"},
		{"year tag", Attributes{}, Selection{Tag: "2021"}, "/api/site-web/ville/2021"},
		{"dates", Attributes{}, Selection{Tag: "week", Start: "2022-01-01", End: "2022-02-01"}, "/api/site-web/ville/2022-01-01/2022-02-01"},
		{"max results", Attributes{"max-results": "5"}, Selection{}, "/api/site-web/ville?maxResults=5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps, src := newTestDeps(t)
			attrs := Attributes{"url": "/api/site-web/ville", "transform": "siteWebCategoryVille"}
			for k, v := range tt.attrs {
				attrs[k] = v
			}
			w, err := Build(KindCategoryChart, deps, attrs)
			require.NoError(t, err)

			src.EXPECT().Fetch(gomock.Any(), tt.want).Return([]any{}, nil)
			require.NoError(t, w.UpdateData(context.Background(), tt.sel))
		})
	}
}

func TestCategoryChart_Render(t *testing.T) {
	deps, src := newTestDeps(t)
	w, err := Build(KindCategoryChart, deps, Attributes{"url": "/api/site-web/ville", "transform": "siteWebCategoryVille"})
	require.NoError(t, err)

	src.EXPECT().Fetch(gomock.Any(), "/api/site-web/ville").Return([]any{
		map[string]any{"geo_city": "Paris", "n_visits": 75.0},
		map[string]any{"geo_city": "Lyon", "n_visits": 25.0},
		map[string]any{"geo_city": "Tulle", "n_visits": 0.0},
	}, nil)
	require.NoError(t, w.UpdateData(context.Background(), Selection{}))

	var buf bytes.Buffer
	require.NoError(t, w.Render(&buf))
	out := buf.String()
	assert.Contains(t, out, "Paris")
	assert.Contains(t, out, "75.0%")
	assert.Contains(t, out, "Lyon")
	assert.NotContains(t, out, "Tulle")
	assert.Contains(t, out, "chart-col-1")
	assert.NotContains(t, out, "chart-col-2")

	var again bytes.Buffer
	require.NoError(t, w.Render(&again))
	assert.Equal(t, out, again.String())
}

func TestCategoryChart_Columns(t *testing.T) {
	deps, src := newTestDeps(t)
	w, err := Build(KindCategoryChart, deps, Attributes{"url": "/api/site-web/pays", "transform": "siteWebCategoryPays"})
	require.NoError(t, err)

	rows := make([]any, 25)
	for i := range rows {
		rows[i] = map[string]any{"geo_country": fmt.Sprintf("pays-%d", i), "n_visits": 4.0}
	}
	src.EXPECT().Fetch(gomock.Any(), "/api/site-web/pays").Return(rows, nil)
	require.NoError(t, w.UpdateData(context.Background(), Selection{}))

	cols := w.(*CategoryChart).columns()
	require.Len(t, cols, 3)
	assert.Len(t, cols[0].Items, 10)
	assert.Len(t, cols[1].Items, 10)
	assert.Len(t, cols[2].Items, 5)
	assert.True(t, strings.HasSuffix(cols[2].Class, "chart-col-3"))
}

func TestCategoryChart_ColumnsSkipHiddenBlock(t *testing.T) {
	c := &CategoryChart{}
	for i := range 23 {
		perc := 0.05
		if i >= 10 && i < 20 {
			perc = 0
		}
		c.bars = append(c.bars, transform.Bar{Label: fmt.Sprintf("b%d", i), Value: perc * 100, Perc: perc})
	}

	cols := c.columns()
	require.Len(t, cols, 2)
	assert.Len(t, cols[0].Items, 10)
	assert.Len(t, cols[1].Items, 3)
	assert.True(t, strings.HasSuffix(cols[0].Class, "chart-col-1"))
	assert.True(t, strings.HasSuffix(cols[1].Class, "chart-col-3"))
}

func TestCategoryChart_FetchErrorRendersPlaceholder(t *testing.T) {
	deps, src := newTestDeps(t)
	w, err := Build(KindCategoryChart, deps, Attributes{"url": "/api/x", "transform": "siteWebSources"})
	require.NoError(t, err)

	src.EXPECT().Fetch(gomock.Any(), "/api/x").Return(nil, ErrFetch)
	err = w.UpdateData(context.Background(), Selection{})
	assert.True(t, errors.Is(err, ErrFetch))

	var buf bytes.Buffer
	require.NoError(t, w.Render(&buf))
	assert.Contains(t, buf.String(), "Données non disponibles")
}
