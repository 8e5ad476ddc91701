package widget

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dayanaadylkhanova/barnum/internal/transform"
)

func newDetail(t *testing.T, url, fct string) (*MapDetail, *MockSource) {
	t.Helper()
	deps, src := newTestDeps(t)
	w, err := Build(KindMapDetail, deps, Attributes{"url": url, "render-fct": fct})
	require.NoError(t, err)
	return w.(*MapDetail), src
}

func TestMapDetail_Perceval(t *testing.T) {
	tests := []struct {
		name string
		data map[string]any
		want string
	}{
		{"national", map[string]any{"n_signalements": 516957.0}, "signalements au total"},
		{"plural", map[string]any{"geo_dpt_iso": "FR-69", "n_signalements": 12.0}, "signalements dans ce territoire"},
		{"singular", map[string]any{"geo_dpt_iso": "FR-48", "n_signalements": 1.0}, "signalement dans ce territoire"},
		{"empty", map[string]any{}, "Pas de données dans ce territoire"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, src := newDetail(t, "/api/perceval/map-detail", DetailPerceval)
			src.EXPECT().Fetch(gomock.Any(), "/api/perceval/map-detail/FR-69").Return(tt.data, nil)
			require.NoError(t, d.UpdateData(context.Background(), Selection{Tag: "FR-69"}))
			assert.Contains(t, renderString(t, d), tt.want)
		})
	}
}

func TestMapDetail_PercevalRhoneAlias(t *testing.T) {
	d, src := newDetail(t, "/api/perceval/map-detail", DetailPerceval)
	src.EXPECT().Fetch(gomock.Any(), "/api/perceval/map-detail/FR-69").Return(map[string]any{}, nil)
	require.NoError(t, d.UpdateData(context.Background(), Selection{Tag: "FR-RHONE"}))
}

func TestMapDetail_PPELKeepsRhone(t *testing.T) {
	d, src := newDetail(t, "/api/pre-plainte-en-ligne/map-detail", DetailPPEL)
	src.EXPECT().Fetch(gomock.Any(), "/api/pre-plainte-en-ligne/map-detail/FR-RHONE").
		Return(map[string]any{"geo_dpt_iso": "FR-RHONE", "n_preplaintes": 2000.0}, nil)
	require.NoError(t, d.UpdateData(context.Background(), Selection{Tag: "FR-RHONE"}))

	out := renderString(t, d)
	assert.Contains(t, out, transform.FormatNumber(2000))
	assert.Contains(t, out, "pré-plaintes déposées dans ce territoire")
}

func TestMapDetail_ServicePublicPlus(t *testing.T) {
	d, src := newDetail(t, "/api/service-public-plus/map-detail", DetailSPPlus)
	src.EXPECT().Fetch(gomock.Any(), "/api/service-public-plus/map-detail/gn").
		Return(map[string]any{"exp_count": 42.0}, nil)
	require.NoError(t, d.UpdateData(context.Background(), Selection{Tag: "gn"}))

	out := renderString(t, d)
	assert.Contains(t, out, ">42<")
	assert.Contains(t, out, "expériences non rattachées à un département")
}

func TestMapDetail_Twitter(t *testing.T) {
	d, src := newDetail(t, "/api/reseaux-sociaux/n-followers-map-detail/twitter", DetailTwitter)
	src.EXPECT().Fetch(gomock.Any(), "/api/reseaux-sociaux/n-followers-map-detail/twitter/FR-33").Return([]any{
		map[string]any{"n_followers": 1500.0, "n_tweets": 300.0, "page_name": "Gendarmerie de la Gironde", "page_url": "https://twitter.com/Gendarmerie033"},
	}, nil)
	require.NoError(t, d.UpdateData(context.Background(), Selection{Tag: "FR-33"}))

	out := renderString(t, d)
	assert.Contains(t, out, `href="https://twitter.com/Gendarmerie033"`)
	assert.Contains(t, out, "Gendarmerie de la Gironde")
	assert.Contains(t, out, "abonnements au compte Twitter")

	src.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return([]any{}, nil)
	require.NoError(t, d.UpdateData(context.Background(), Selection{Tag: "FR-48"}))
	assert.Contains(t, renderString(t, d), "Pas de données disponibles")
}

func TestMapDetail_UnsafeURL(t *testing.T) {
	assert.Equal(t, "#", string(safeURL("javascript:alert(1)")))
}

func TestMapDetail_UnknownRenderer(t *testing.T) {
	deps, _ := newTestDeps(t)
	_, err := Build(KindMapDetail, deps, Attributes{"url": "/api/x", "render-fct": "facebook"})
	assert.ErrorIs(t, err, ErrBadAttribute)
}
