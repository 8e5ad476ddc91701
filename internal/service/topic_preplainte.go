package service

import (
	"fmt"

	"github.com/dayanaadylkhanova/barnum/internal/relabel"
)

func preplainteEndpoints(_ relabel.Set) []Endpoint {
	const topic = "pre-plainte-en-ligne"
	return []Endpoint{
		{
			Topic:   topic,
			Path:    "n-preplaintes-total",
			Summary: "Nombre total de pré-plaintes depuis le lancement",
			Shape:   ShapeFirst,
			Build: func(Request) Query {
				return Query{SQL: `select sum(n_preplaintes) as n_preplaintes_total from ppel_daily`}
			},
		},
		{
			Topic:   topic,
			Path:    "preplaintes-timeline/{start}/{end}",
			Summary: "Nombre de pré-plaintes par unité de temps",
			Window:  WindowDates,
			Build: func(r Request) Query {
				return Query{
					SQL: fmt.Sprintf(`select %s as time_dim, sum(n_preplaintes) as n_preplaintes
from ppel_daily
where $1 <= date and date < $2
group by time_dim
order by time_dim asc`, DailyTable.Expr(r.Granularity)),
					Args: rangeArgs(r),
				}
			},
		},
		{
			Topic:   topic,
			Path:    "duree-moyenne",
			Summary: "Durée moyenne de saisie d'une pré-plainte",
			Shape:   ShapeFirst,
			Build: func(Request) Query {
				return Query{SQL: `select avg(duree_moy) as duree_moyenne from ppel_person_type`}
			},
		},
		{
			Topic:   topic,
			Path:    "person-type/{start}/{end}",
			Summary: "Nombre de pré-plaintes par type de personne",
			Window:  WindowDates,
			Build: func(r Request) Query {
				return Query{
					SQL: `select type_personne, sum(n_preplaintes) as n_preplaintes
from ppel_person_type
where $1 <= month and month < $2
group by type_personne
order by n_preplaintes desc`,
					Args: rangeArgs(r),
				}
			},
		},
		{
			Topic:   topic,
			Path:    "map",
			Summary: "Nombre de pré-plaintes par département",
			Build: func(Request) Query {
				return Query{SQL: `select dpt_code, geo_dpt_iso, geo_dpt_name, sum(n_preplaintes) as n_preplaintes
from ppel_geo
group by dpt_code, geo_dpt_iso, geo_dpt_name
order by n_preplaintes desc`}
			},
		},
		{
			Topic:    topic,
			Path:     "map-detail/{geoIso}",
			Summary:  "Nombre de pré-plaintes dans un département, ou au total avec gn",
			Shape:    ShapeLookup,
			KeyParam: "geoIso",
			KeyRule:  geoKeyRule,
			Build: func(r Request) Query {
				if r.Key == NationalKey {
					return Query{SQL: `select sum(n_preplaintes) as n_preplaintes from ppel_geo`}
				}
				return Query{
					SQL: `select dpt_code, geo_dpt_iso, geo_dpt_name, sum(n_preplaintes) as n_preplaintes
from ppel_geo
where geo_dpt_iso = $1
group by dpt_code, geo_dpt_iso, geo_dpt_name`,
					Args: []any{r.Key},
				}
			},
		},
	}
}
