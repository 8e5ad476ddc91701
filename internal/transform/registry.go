// Package transform reshapes API rows into chart inputs. Every function is
// pure: inputs are never modified and equal inputs give equal outputs.
package transform

import (
	"fmt"
	"sort"

	"github.com/dayanaadylkhanova/barnum/internal/entity"
	"github.com/dayanaadylkhanova/barnum/internal/relabel"
)

// Func reshapes a decoded API response: a list of rows, a single row or a
// scalar depending on the transform.
type Func func(in any) (any, error)

// Registry maps transform names, as used by the data-transform widget
// attribute, to their functions. It cannot be changed once built.
type Registry struct {
	funcs map[string]Func
}

func NewRegistry(labels relabel.Set) Registry {
	f := map[string]Func{
		"formatNumber":   scalar(FormatNumber),
		"formatEuro":     scalar(FormatEuro),
		"formatDuration": formatDuration,

		"maGendarmerieNContactMotif": relabeledBars(labels.ContactMotif, "category", "n_contact"),
		"percevalAgeCat":             bars("age_cat", "n_signalements"),
		"percevalMap":                geo("n_signalements"),
		"ppelPersonType":             relabeledBars(labels.PersonType, "type_personne", "n_preplaintes"),
		"ppelMap":                    geo("n_preplaintes"),
		"siteWebCategoryVille":       bars("geo_city", "n_visits"),
		"siteWebCategoryRegion":      barsReplacing("geo_region_name", "n_visits", "", "Inconnu"),
		"siteWebCategoryPays":        bars("geo_country", "n_visits"),
		"siteWebSousSites":           barsReplacing("subsite", "n_visits", "N/A", "Autres"),
		"siteWebSources":             barsReplacing("src", "n_visits", "N/A", "Autres"),
		"siteWebCategoryDevice":      barsReplacing("device_type", "n_visits", "N/A", "Autres"),
		"siteWebCategoryOS":          barsReplacing("os_group", "n_visits", "N/A", "Autres"),
		"siteWebCategoryBrowser":     barsReplacing("browser_group", "n_visits", "N/A", "Autres"),

		"recrutementFichesMetiers":             recrutementFichesMetiers,
		"recrutementFeminisation":              recrutementFeminisation,
		"recrutementFeminisationPercMilitaire": feminisationPercentage("militaire"),
		"recrutementFeminisationPercCivil":     feminisationPercentage("civil"),

		"socialNetworkMap":       geo("n_followers"),
		"socialNetworkFollowers": socialNetworkFollowers,

		"spplusPercentageResponse": spplusPercentageResponse,
		"spplusMap":                geo("exp_count"),
		"spplusStructures":         spplusStructures,
		"spplusTags":               spplusTags(labels.ServicePlusTag),

		"iggnManquements": iggnManquements,
	}
	return Registry{funcs: f}
}

func (r Registry) Lookup(name string) (Func, bool) {
	f, ok := r.funcs[name]
	return f, ok
}

// Apply runs the named transform on in.
func (r Registry) Apply(name string, in any) (any, error) {
	f, ok := r.funcs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransform, name)
	}
	return f(in)
}

// Names lists the registered transforms, sorted.
func (r Registry) Names() []string {
	out := make([]string, 0, len(r.funcs))
	for k := range r.funcs {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func scalar(format func(float64) string) Func {
	return func(in any) (any, error) {
		n, ok := Number(in)
		if !ok {
			return nil, fmt.Errorf("%w: %T is not a number", ErrUnexpectedInput, in)
		}
		return format(n), nil
	}
}

func formatDuration(in any) (any, error) {
	obj, err := Object(in)
	if err != nil {
		return nil, err
	}
	return FormatDuration(obj), nil
}

func bars(labelKey, valueKey string) Func {
	return func(in any) (any, error) {
		rows, err := Rows(in)
		if err != nil {
			return nil, err
		}
		return VerticalBar(rows, labelKey, valueKey, ""), nil
	}
}

func barsReplacing(labelKey, valueKey, old, repl string) Func {
	return func(in any) (any, error) {
		rows, err := Rows(in)
		if err != nil {
			return nil, err
		}
		return ReplaceLabel(VerticalBar(rows, labelKey, valueKey, ""), old, repl), nil
	}
}

func relabeledBars(t relabel.Table, labelKey, valueKey string) Func {
	return func(in any) (any, error) {
		rows, err := Rows(in)
		if err != nil {
			return nil, err
		}
		return VerticalBar(t.Rows(rows, labelKey), labelKey, valueKey, ""), nil
	}
}

func geo(valueKey string) Func {
	return func(in any) (any, error) {
		rows, err := Rows(in)
		if err != nil {
			return nil, err
		}
		return GeoMapOf(rows, valueKey), nil
	}
}

func recrutementFichesMetiers(in any) (any, error) {
	rows, err := Rows(in)
	if err != nil {
		return nil, err
	}
	// Fiches with a handful of visits were not really used.
	kept := make([]entity.Row, 0, len(rows))
	for _, r := range rows {
		if n, _ := Number(r["n_visits"]); n > 10 {
			kept = append(kept, r)
		}
	}
	return VerticalBar(kept, "metier_name", "n_visits", ""), nil
}

// feminisationOrder is the display order of the military categories, nil
// entries are separators.
var feminisationOrder = []*string{
	ptr("Officier de gendarmerie"),
	ptr("Sous-officier de gendarmerie"),
	nil,
	ptr("Officier du corps technique et administratif"),
	ptr("Sous-officier du corps de soutien technique et administratif de la gendarmerie"),
	nil,
	ptr("Gendarme adjoint volontaire"),
}

func ptr(s string) *string { return &s }

func recrutementFeminisation(in any) (any, error) {
	rows, err := Rows(in)
	if err != nil {
		return nil, err
	}
	type counts struct{ men, women float64 }
	byCategory := map[string]*counts{}
	for _, r := range rows {
		if Text(r["statut"]) != "militaire" {
			continue
		}
		cat := Text(r["categorie"])
		c, ok := byCategory[cat]
		if !ok {
			c = &counts{}
			byCategory[cat] = c
		}
		n, _ := Number(r["effectifs"])
		switch Text(r["genre"]) {
		case "femme":
			c.women = n
		case "homme":
			c.men = n
		}
	}

	out := make([]Bar, 0, len(feminisationOrder))
	for _, label := range feminisationOrder {
		if label == nil {
			out = append(out, Bar{Break: true})
			continue
		}
		c, ok := byCategory[*label]
		if !ok {
			continue
		}
		var perc float64
		if c.men+c.women > 0 {
			perc = c.women / (c.men + c.women)
		}
		out = append(out, Bar{
			Label:     *label,
			Perc:      perc,
			Value:     roundTo(100*perc, 0),
			ValueText: fmt.Sprintf("%.0f%%", 100*perc),
		})
	}
	return out, nil
}

func feminisationPercentage(statut string) Func {
	return func(in any) (any, error) {
		rows, err := Rows(in)
		if err != nil {
			return nil, err
		}
		var women, men float64
		for _, r := range rows {
			if Text(r["statut"]) != statut {
				continue
			}
			n, _ := Number(r["effectifs"])
			switch Text(r["genre"]) {
			case "femme":
				women = n
			case "homme":
				men = n
			}
		}
		if women > 0 && men > 0 {
			return FormatPercentage(women / (women + men)), nil
		}
		return "", nil
	}
}

func socialNetworkFollowers(in any) (any, error) {
	rows, err := Rows(in)
	if err != nil {
		return nil, err
	}
	out := VerticalBar(rows, "page_name", "n_followers", "")
	for i := range out {
		out[i].ValueText = FormatNumber(out[i].OriginalValue)
		out[i].LabelURL = Text(rows[i]["page_url"])
	}
	return out, nil
}

func spplusPercentageResponse(in any) (any, error) {
	obj, err := Object(in)
	if err != nil {
		return nil, err
	}
	answered, _ := Number(obj["exp_answered_count"])
	total, ok := Number(obj["exp_count"])
	if !ok || total == 0 {
		return "", nil
	}
	return FormatPercentage(answered / total), nil
}

func spplusStructures(in any) (any, error) {
	rows, err := Rows(in)
	if err != nil {
		return nil, err
	}
	out := VerticalBar(rows, "typologie_structure", "exp_count", "")
	for i := range out {
		out[i].ValueText = FormatNumber(out[i].OriginalValue)
	}
	return out, nil
}

func spplusTags(tags relabel.Table) Func {
	return func(in any) (any, error) {
		rows, err := Rows(in)
		if err != nil {
			return nil, err
		}
		withTotals := make([]entity.Row, len(rows))
		for i, r := range rows {
			pos, _ := Number(r["pos_count"])
			med, _ := Number(r["med_count"])
			neg, _ := Number(r["neg_count"])
			c := r.Clone()
			c["tagName"] = tags.Label(Text(r["tag"]))
			c["total_tag_count"] = pos + med + neg
			withTotals[i] = c
		}
		out := VerticalBar(withTotals, "tagName", "pos_count", "total_tag_count")
		sort.SliceStable(out, func(i, j int) bool { return out[i].Perc > out[j].Perc })
		return out, nil
	}
}

func iggnManquements(in any) (any, error) {
	obj, err := Object(in)
	if err != nil {
		return nil, err
	}
	p, ok := Number(obj["pourcentage_manquements"])
	if len(obj) == 0 || !ok {
		return []Bar{}, nil
	}
	return VerticalBar([]entity.Row{
		{"label": "Manquements non-avérés", "value": 1 - p},
		{"label": "Manquements avérés", "value": p},
	}, "label", "value", ""), nil
}
