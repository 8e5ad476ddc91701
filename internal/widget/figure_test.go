package widget

import (
	"bytes"
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dayanaadylkhanova/barnum/internal/transform"
)

func renderString(t *testing.T, w Widget) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, w.Render(&buf))
	return buf.String()
}

func TestFeatureFigure_Field(t *testing.T) {
	deps, src := newTestDeps(t)
	w, err := Build(KindFeatureFigure, deps, Attributes{"url": "/api/perceval/n-signalements-total", "field": "n_signalements_total"})
	require.NoError(t, err)
	assert.Contains(t, renderString(t, w), "...")

	src.EXPECT().Fetch(gomock.Any(), "/api/perceval/n-signalements-total").
		Return(map[string]any{"n_signalements_total": 516957.0}, nil)
	require.NoError(t, w.UpdateData(context.Background(), Selection{}))

	out := renderString(t, w)
	assert.Contains(t, out, `class="fr-display-xl"`)
	assert.Contains(t, out, transform.FormatNumber(516957))
}

func TestFeatureFigure_TransformWithTag(t *testing.T) {
	deps, src := newTestDeps(t)
	w, err := Build(KindFeatureFigure, deps, Attributes{
		"url":          "/api/perceval/montant-moyen",
		"field":        "montant_moyen",
		"transform":    "formatEuro",
		"display-size": "sm",
	})
	require.NoError(t, err)

	src.EXPECT().Fetch(gomock.Any(), "/api/perceval/montant-moyen/week").
		Return(map[string]any{"montant_moyen": 12.5}, nil)
	require.NoError(t, w.UpdateData(context.Background(), Selection{Tag: "week"}))

	out := renderString(t, w)
	assert.Contains(t, out, `class="fr-display-sm"`)
	assert.Contains(t, out, transform.FormatEuro(12.5))
}

func TestFeatureFigure_WholeResponseTransform(t *testing.T) {
	deps, src := newTestDeps(t)
	w, err := Build(KindFeatureFigure, deps, Attributes{"url": "/api/site-web/duree", "transform": "formatDuration"})
	require.NoError(t, err)

	src.EXPECT().Fetch(gomock.Any(), "/api/site-web/duree").
		Return(map[string]any{"minutes": 3.0, "seconds": 12.0}, nil)
	require.NoError(t, w.UpdateData(context.Background(), Selection{}))
	assert.Contains(t, renderString(t, w), "3 min. 12 s.")
}

func TestFeatureFigure_MissingFieldRendersPlaceholder(t *testing.T) {
	deps, src := newTestDeps(t)
	w, err := Build(KindFeatureFigure, deps, Attributes{"url": "/api/x"})
	require.NoError(t, err)

	src.EXPECT().Fetch(gomock.Any(), "/api/x").Return(map[string]any{}, nil)
	require.NoError(t, w.UpdateData(context.Background(), Selection{}))
	assert.Contains(t, renderString(t, w), Placeholder)
}

func TestFeatureFigure_BadDisplaySize(t *testing.T) {
	deps, _ := newTestDeps(t)
	_, err := Build(KindFeatureFigure, deps, Attributes{"url": "/api/x", "display-size": "xxl"})
	assert.ErrorIs(t, err, ErrBadAttribute)
}
