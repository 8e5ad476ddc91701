package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dayanaadylkhanova/barnum/internal/entity"
	"github.com/dayanaadylkhanova/barnum/internal/relabel"
)

func TestRegistry_Names(t *testing.T) {
	r := NewRegistry(relabel.Default())
	for _, name := range []string{
		"maGendarmerieNContactMotif", "percevalAgeCat", "percevalMap", "ppelPersonType", "ppelMap",
		"siteWebCategoryVille", "siteWebCategoryRegion", "siteWebCategoryPays", "siteWebSousSites",
		"siteWebSources", "siteWebCategoryDevice", "siteWebCategoryOS", "siteWebCategoryBrowser",
		"recrutementFichesMetiers", "recrutementFeminisation", "recrutementFeminisationPercMilitaire",
		"recrutementFeminisationPercCivil", "socialNetworkMap", "socialNetworkFollowers",
		"spplusPercentageResponse", "spplusMap", "spplusStructures", "spplusTags", "iggnManquements",
		"formatNumber", "formatEuro",
	} {
		_, ok := r.Lookup(name)
		assert.True(t, ok, name)
	}
	assert.IsNonDecreasing(t, r.Names())
}

func TestRegistry_UnknownName(t *testing.T) {
	_, err := NewRegistry(relabel.Default()).Apply("nope", nil)
	assert.ErrorIs(t, err, ErrUnknownTransform)
}

func TestRegistry_WrongInput(t *testing.T) {
	r := NewRegistry(relabel.Default())
	_, err := r.Apply("percevalAgeCat", "not rows")
	assert.ErrorIs(t, err, ErrUnexpectedInput)
	_, err = r.Apply("formatNumber", entity.Row{})
	assert.ErrorIs(t, err, ErrUnexpectedInput)
}

func TestRegistry_ContactMotifRelabels(t *testing.T) {
	in := []any{
		map[string]any{"category": "victime", "n_contact": 30.0},
		map[string]any{"category": "nouveau_motif", "n_contact": 10.0},
	}
	out, err := NewRegistry(relabel.Default()).Apply("maGendarmerieNContactMotif", in)
	require.NoError(t, err)
	got := out.([]Bar)
	assert.Equal(t, "Je suis victime", got[0].Label)
	assert.Equal(t, "nouveau_motif", got[1].Label)
	assert.Equal(t, "victime", in[0].(map[string]any)["category"])
}

func TestRegistry_RegionUnknown(t *testing.T) {
	out, err := NewRegistry(relabel.Default()).Apply("siteWebCategoryRegion", []entity.Row{
		{"geo_region_name": "Bretagne", "n_visits": 5.0},
		{"geo_region_name": nil, "n_visits": 5.0},
	})
	require.NoError(t, err)
	got := out.([]Bar)
	assert.Equal(t, "Bretagne", got[0].Label)
	assert.Equal(t, "Inconnu", got[1].Label)
}

func TestRegistry_FichesMetiersFiltersRareVisits(t *testing.T) {
	out, err := NewRegistry(relabel.Default()).Apply("recrutementFichesMetiers", []entity.Row{
		{"metier_name": "Gendarme", "n_visits": 90.0},
		{"metier_name": "Cuisinier", "n_visits": 10.0},
		{"metier_name": "Pilote", "n_visits": 10.0 + 0.5},
	})
	require.NoError(t, err)
	got := out.([]Bar)
	require.Len(t, got, 2)
	assert.Equal(t, "Pilote", got[1].Label)
}

func effectifs() []entity.Row {
	return []entity.Row{
		{"genre": "femme", "statut": "militaire", "categorie": "Officier de gendarmerie", "effectifs": 1000.0},
		{"genre": "homme", "statut": "militaire", "categorie": "Officier de gendarmerie", "effectifs": 4000.0},
		{"genre": "femme", "statut": "militaire", "categorie": "Gendarme adjoint volontaire", "effectifs": 300.0},
		{"genre": "homme", "statut": "militaire", "categorie": "Gendarme adjoint volontaire", "effectifs": 700.0},
		{"genre": "femme", "statut": "civil", "categorie": "Personnel civil", "effectifs": 6.0},
		{"genre": "homme", "statut": "civil", "categorie": "Personnel civil", "effectifs": 4.0},
	}
}

func TestRegistry_RecrutementFeminisation(t *testing.T) {
	out, err := NewRegistry(relabel.Default()).Apply("recrutementFeminisation", effectifs())
	require.NoError(t, err)
	got := out.([]Bar)
	require.Len(t, got, 4)
	assert.Equal(t, "Officier de gendarmerie", got[0].Label)
	assert.Equal(t, "20%", got[0].ValueText)
	assert.True(t, got[1].Break)
	assert.True(t, got[2].Break)
	assert.Equal(t, "Gendarme adjoint volontaire", got[3].Label)
	assert.Equal(t, 30.0, got[3].Value)
}

func TestRegistry_FeminisationPercentage(t *testing.T) {
	r := NewRegistry(relabel.Default())
	out, err := r.Apply("recrutementFeminisationPercCivil", effectifs())
	require.NoError(t, err)
	assert.Equal(t, "60 %", plain(out.(string)))

	out, err = r.Apply("recrutementFeminisationPercMilitaire", []entity.Row{})
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestRegistry_SocialNetworkFollowers(t *testing.T) {
	out, err := NewRegistry(relabel.Default()).Apply("socialNetworkFollowers", []entity.Row{
		{"page_name": "Gendarmerie nationale", "page_url": "https://twitter.com/Gendarmerie", "n_followers": 1234567.0},
	})
	require.NoError(t, err)
	got := out.([]Bar)
	assert.Equal(t, "1 234 567", plain(got[0].ValueText))
	assert.Equal(t, "https://twitter.com/Gendarmerie", got[0].LabelURL)
}

func TestRegistry_SpplusTags(t *testing.T) {
	in := []entity.Row{
		{"tag": "tag_relation", "pos_count": 1.0, "med_count": 1.0, "neg_count": 2.0},
		{"tag": "tag_simplicite", "pos_count": 3.0, "med_count": 1.0, "neg_count": 0.0},
	}
	out, err := NewRegistry(relabel.Default()).Apply("spplusTags", in)
	require.NoError(t, err)
	got := out.([]Bar)
	assert.Equal(t, "Simplicité", got[0].Label)
	assert.InDelta(t, 0.75, got[0].Perc, 1e-9)
	assert.Equal(t, "Relation", got[1].Label)
	assert.InDelta(t, 0.25, got[1].Perc, 1e-9)
	_, mutated := in[0]["tagName"]
	assert.False(t, mutated)
}

func TestRegistry_SpplusPercentageResponse(t *testing.T) {
	out, err := NewRegistry(relabel.Default()).Apply("spplusPercentageResponse",
		map[string]any{"exp_count": 200.0, "exp_answered_count": 150.0})
	require.NoError(t, err)
	assert.Equal(t, "75 %", plain(out.(string)))
}

func TestRegistry_IggnManquements(t *testing.T) {
	r := NewRegistry(relabel.Default())

	out, err := r.Apply("iggnManquements", map[string]any{})
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = r.Apply("iggnManquements", map[string]any{"pourcentage_manquements": 0.2})
	require.NoError(t, err)
	got := out.([]Bar)
	require.Len(t, got, 2)
	assert.Equal(t, "Manquements non-avérés", got[0].Label)
	assert.InDelta(t, 0.8, got[0].Perc, 1e-9)
	assert.Equal(t, "Manquements avérés", got[1].Label)
}

func TestRegistry_Pure(t *testing.T) {
	r := NewRegistry(relabel.Default())
	in := []entity.Row{
		{"device_type": "N/A", "n_visits": 150.0},
		{"device_type": "Tablette", "n_visits": 300.0},
	}
	a, err := r.Apply("siteWebCategoryDevice", in)
	require.NoError(t, err)
	b, err := r.Apply("siteWebCategoryDevice", in)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, "N/A", in[0]["device_type"])
}
