package http_server

import (
	"github.com/dayanaadylkhanova/barnum/internal/widget"
)

// WidgetSpec declares one widget of a page section.
type WidgetSpec struct {
	Kind  string
	Attrs widget.Attributes
}

// Section is one chart group of a page. Map sections become a map-parent,
// the others a chart-parent.
type Section struct {
	Title string
	Map   bool
	// DefaultTag overrides the default tag of the section tag group.
	DefaultTag string
	Widgets    []WidgetSpec
}

type Page struct {
	Path     string
	Title    string
	Sections []Section
}

func figure(url, field, transform string) WidgetSpec {
	a := widget.Attributes{"url": url}
	if field != "" {
		a["field"] = field
	}
	if transform != "" {
		a["transform"] = transform
	}
	return WidgetSpec{Kind: widget.KindFeatureFigure, Attrs: a}
}

func category(url, transform string) WidgetSpec {
	return WidgetSpec{Kind: widget.KindCategoryChart, Attrs: widget.Attributes{"url": url, "transform": transform}}
}

func limitedCategory(url, transform, maxResults string) WidgetSpec {
	w := category(url, transform)
	w.Attrs["max-results"] = maxResults
	return w
}

func timeline(url, labelKey, valueKey string) WidgetSpec {
	return WidgetSpec{Kind: widget.KindTimelineChart, Attrs: widget.Attributes{"url": url, "label-key": labelKey, "value-key": valueKey}}
}

func tags(spec, def string) WidgetSpec {
	return WidgetSpec{Kind: widget.KindTagSelectGroup, Attrs: widget.Attributes{"tags": spec, "default-tag": def}}
}

func calendar(timespan string) WidgetSpec {
	return WidgetSpec{Kind: widget.KindStartEndCalendar, Attrs: widget.Attributes{"timespan": timespan}}
}

func geoMap(url, transform, detailURL, renderFct string) []WidgetSpec {
	return []WidgetSpec{
		{Kind: widget.KindMapChart, Attrs: widget.Attributes{"url": url, "transform": transform}},
		{Kind: widget.KindMapDetail, Attrs: widget.Attributes{"url": detailURL, "render-fct": renderFct}},
	}
}

const periodTags = "week,month,year"

// Pages lists the dashboard pages in navigation order.
func Pages() []Page {
	return []Page{
		{
			Path:  "/",
			Title: "Baromètre numérique",
			Sections: []Section{
				{Title: "Chiffres clés", Widgets: []WidgetSpec{
					figure("/api/ma-gendarmerie/n-contact-total", "n_contact_total", ""),
					figure("/api/perceval/n-signalements-total", "n_signalements_total", ""),
					figure("/api/pre-plainte-en-ligne/n-preplaintes-total", "n_preplaintes_total", ""),
					figure("/api/reseaux-sociaux/n-followers-twitter", "value", ""),
				}},
			},
		},
		{
			Path:  "/ma-gendarmerie",
			Title: "Ma Gendarmerie",
			Sections: []Section{
				{Title: "Nombre total de contacts", Widgets: []WidgetSpec{
					figure("/api/ma-gendarmerie/n-contact-total", "n_contact_total", ""),
				}},
				{Title: "Motifs de contact", Widgets: []WidgetSpec{
					calendar("month"),
					category("/api/ma-gendarmerie/n-contact-category", "maGendarmerieNContactMotif"),
				}},
				{Title: "Évolution du nombre de contacts", Widgets: []WidgetSpec{
					calendar("month"),
					timeline("/api/ma-gendarmerie/n-contact-timeline", "time_dim", "cnt"),
				}},
				{Title: "Affluence quotidienne", DefaultTag: "daily-affluence", Widgets: []WidgetSpec{
					timeline("/api/ma-gendarmerie/affluence/daily-affluence", "hour", "n_contact"),
				}},
			},
		},
		{
			Path:  "/perceval",
			Title: "Perceval",
			Sections: []Section{
				{Title: "Signalements", Widgets: []WidgetSpec{
					figure("/api/perceval/n-signalements-total", "n_signalements_total", ""),
					figure("/api/perceval/montant-moyen", "montant_moy", "formatEuro"),
				}},
				{Title: "Évolution des signalements", Widgets: []WidgetSpec{
					tags(periodTags, "month"),
					timeline("/api/perceval/signalements-timeline", "time_dim", "n_signalements"),
				}},
				{Title: "Âge des victimes", Widgets: []WidgetSpec{
					tags(periodTags, "month"),
					category("/api/perceval/age-category", "percevalAgeCat"),
				}},
				{Title: "Signalements par département", Map: true, Widgets: geoMap(
					"/api/perceval/map", "percevalMap", "/api/perceval/map-detail", widget.DetailPerceval)},
			},
		},
		{
			Path:  "/pre-plainte-en-ligne",
			Title: "Pré-plainte en ligne",
			Sections: []Section{
				{Title: "Pré-plaintes", Widgets: []WidgetSpec{
					figure("/api/pre-plainte-en-ligne/n-preplaintes-total", "n_preplaintes_total", ""),
					figure("/api/pre-plainte-en-ligne/duree-moyenne", "duree_moyenne", "formatDuration"),
				}},
				{Title: "Évolution des pré-plaintes", Widgets: []WidgetSpec{
					calendar("month"),
					timeline("/api/pre-plainte-en-ligne/preplaintes-timeline", "time_dim", "n_preplaintes"),
				}},
				{Title: "Types de plaignants", Widgets: []WidgetSpec{
					calendar("month"),
					category("/api/pre-plainte-en-ligne/person-type", "ppelPersonType"),
				}},
				{Title: "Pré-plaintes par département", Map: true, Widgets: geoMap(
					"/api/pre-plainte-en-ligne/map", "ppelMap", "/api/pre-plainte-en-ligne/map-detail", widget.DetailPPEL)},
			},
		},
		{
			Path:  "/site-web",
			Title: "Site web",
			Sections: []Section{
				{Title: "Visites", Widgets: []WidgetSpec{
					figure("/api/site-web/n-visites-total", "n_visits", ""),
				}},
				{Title: "Évolution des visites", Widgets: []WidgetSpec{
					tags("day,"+periodTags, "week"),
					timeline("/api/site-web/n-visits-timeline", "time_dim", "n_visits"),
				}},
				{Title: "Provenance géographique", Widgets: []WidgetSpec{
					tags(periodTags, "month"),
					category("/api/site-web/n-visits-geo/ville", "siteWebCategoryVille"),
					category("/api/site-web/n-visits-geo/region", "siteWebCategoryRegion"),
					limitedCategory("/api/site-web/n-visits-geo/pays", "siteWebCategoryPays", "20"),
				}},
				{Title: "Sous-sites et sources", Widgets: []WidgetSpec{
					tags(periodTags, "month"),
					category("/api/site-web/n-visits-subsite", "siteWebSousSites"),
					category("/api/site-web/n-visits-source", "siteWebSources"),
				}},
				{Title: "Appareils", Widgets: []WidgetSpec{
					tags(periodTags, "month"),
					category("/api/site-web/n-visits-dispositif/device", "siteWebCategoryDevice"),
					category("/api/site-web/n-visits-dispositif/os", "siteWebCategoryOS"),
					category("/api/site-web/n-visits-dispositif/browser", "siteWebCategoryBrowser"),
				}},
			},
		},
		{
			Path:  "/recrutement",
			Title: "Recrutement",
			Sections: []Section{
				{Title: "Visites de l'espace recrutement", Widgets: []WidgetSpec{
					figure("/api/site-web/recrutement/n-visits-total", "visit_count", ""),
				}},
				{Title: "Fiches métiers les plus consultées", Widgets: []WidgetSpec{
					calendar("month"),
					limitedCategory("/api/site-web/recrutement/fiches-metier", "recrutementFichesMetiers", "20"),
				}},
				{Title: "Évolution des visites", Widgets: []WidgetSpec{
					calendar("year"),
					timeline("/api/site-web/recrutement/n-visits-timeline", "time_dim", "visit_count"),
				}},
				{Title: "Féminisation des effectifs", Widgets: []WidgetSpec{
					tags("years:2019-2022", "2022"),
					figure("/api/site-web/recrutement/effectifs", "", "recrutementFeminisationPercMilitaire"),
					figure("/api/site-web/recrutement/effectifs", "", "recrutementFeminisationPercCivil"),
					category("/api/site-web/recrutement/effectifs-categorie", "recrutementFeminisation"),
				}},
			},
		},
		{
			Path:  "/reseaux-sociaux",
			Title: "Réseaux sociaux",
			Sections: []Section{
				{Title: "Abonnements Twitter", Widgets: []WidgetSpec{
					figure("/api/reseaux-sociaux/n-followers-twitter", "value", ""),
				}},
				{Title: "Comptes départementaux", Map: true, Widgets: append(
					[]WidgetSpec{tags("twitter", "twitter")},
					geoMap("/api/reseaux-sociaux/n-followers-map", "socialNetworkMap",
						"/api/reseaux-sociaux/n-followers-map-detail/twitter", widget.DetailTwitter)...)},
				{Title: "Comptes nationaux Twitter", Widgets: []WidgetSpec{
					category("/api/reseaux-sociaux/n-followers-not-geo/twitter", "socialNetworkFollowers"),
				}},
				{Title: "Chaînes YouTube", Widgets: []WidgetSpec{
					category("/api/reseaux-sociaux/n-followers-not-geo/youtube", "socialNetworkFollowers"),
				}},
			},
		},
		{
			Path:  "/service-public-plus",
			Title: "Services Publics+",
			Sections: []Section{
				{Title: "Expériences partagées", Widgets: []WidgetSpec{
					figure("/api/service-public-plus/total", "exp_count", ""),
					figure("/api/service-public-plus/total", "", "spplusPercentageResponse"),
				}},
				{Title: "Expériences par département", Map: true, Widgets: geoMap(
					"/api/service-public-plus/map", "spplusMap", "/api/service-public-plus/map-detail", widget.DetailSPPlus)},
				{Title: "Évolution des expériences", Widgets: []WidgetSpec{
					calendar("year"),
					timeline("/api/service-public-plus/timeline", "time_dim", "exp_count"),
				}},
				{Title: "Structures et thématiques", Widgets: []WidgetSpec{
					category("/api/service-public-plus/structure", "spplusStructures"),
					category("/api/service-public-plus/tags", "spplusTags"),
				}},
			},
		},
		{
			Path:  "/iggn",
			Title: "IGGN",
			Sections: []Section{
				{Title: "Réclamations", Widgets: []WidgetSpec{
					tags("years:2021-2022", "2022"),
					figure("/api/iggn/n-reclamations", "n_reclamations", ""),
					category("/api/iggn/perc-manquements", "iggnManquements"),
				}},
			},
		},
	}
}
