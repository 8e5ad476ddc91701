package service

import "github.com/dayanaadylkhanova/barnum/internal/relabel"

func recrutementEndpoints(_ relabel.Set) []Endpoint {
	const topic = "site-web/recrutement"
	return []Endpoint{
		{
			Topic:   topic,
			Path:    "n-visits-total",
			Summary: "Nombre de visites du sous-site recrutement sur l'année choisie",
			Shape:   ShapeFirst,
			Year:    YearQuery,
			Build: func(r Request) Query {
				return Query{
					SQL: `select sum(visit_count) as visit_count
from atinternet_visits_per_subsite
where subsite = 'recrutement' and extract(year from month) = $1`,
					Args: []any{r.Year},
				}
			},
		},
		{
			Topic:   topic,
			Path:    "fiches-metier/{start}/{end}",
			Summary: "Nombre de visites par fiche métier",
			Window:  WindowDates,
			Limited: true,
			Build:   monthlyTop("recrutement_visits_per_metier", "metier_name"),
		},
		{
			Topic:   topic,
			Path:    "n-visits-timeline/{start}/{end}",
			Summary: "Nombre de visites du sous-site recrutement par unité de temps",
			Window:  WindowDates,
			Build: func(r Request) Query {
				return Query{
					SQL: `select date_trunc($3, datetime) as time_dim, sum(visit_count) as visit_count
from atinternet_visits_per_hour
where subsite = 'recrutement' and $1 <= datetime and datetime < $2
group by time_dim
order by time_dim asc`,
					Args: append(rangeArgs(r), string(r.Granularity)),
				}
			},
		},
		{
			Topic:   topic,
			Path:    "effectifs/{year}",
			Summary: "Effectifs au 31/12 de l'année choisie, par genre et statut",
			Year:    YearPath,
			Build: func(r Request) Query {
				return Query{
					SQL: `select genre, type_personnel as statut, sum(effectifs) as effectifs
from iggn_effectifs_clean
where annee = $1
group by genre, statut`,
					Args: []any{r.Year},
				}
			},
		},
		{
			Topic:   topic,
			Path:    "effectifs-categorie/{year}",
			Summary: "Effectifs au 31/12 de l'année choisie, par genre, statut et catégorie",
			Year:    YearPath,
			Build: func(r Request) Query {
				return Query{
					SQL: `select genre, type_personnel as statut, categorie, sum(effectifs) as effectifs
from iggn_effectifs_clean
where annee = $1
group by genre, statut, categorie`,
					Args: []any{r.Year},
				}
			},
		},
	}
}
