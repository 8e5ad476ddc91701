package service

import (
	"fmt"
	"time"

	"github.com/dayanaadylkhanova/barnum/internal/entity"
	"github.com/dayanaadylkhanova/barnum/internal/relabel"
)

// NationalKey selects the nation-wide aggregate on map-detail routes.
const NationalKey = "gn"

const geoKeyRule = "required,max=32"

var percevalAnchor = time.Date(2022, time.February, 1, 11, 0, 0, 0, time.UTC)

func percevalEndpoints(labels relabel.Set) []Endpoint {
	const topic = "perceval"
	return []Endpoint{
		{
			Topic:   topic,
			Path:    "n-signalements-total",
			Summary: "Nombre total de signalements depuis le lancement",
			Shape:   ShapeFirst,
			Build: func(Request) Query {
				return Query{SQL: `select sum(count) as n_signalements_total from perceval_monthly`}
			},
		},
		{
			Topic:   topic,
			Path:    "signalements-timeline/{timespan}",
			Summary: "Nombre et montant des signalements par unité de temps",
			Window:  WindowPeriod,
			Periods: []entity.Period{entity.PeriodWeek, entity.PeriodMonth, entity.PeriodYear},
			Anchor:  percevalAnchor,
			Build: func(r Request) Query {
				return Query{
					SQL: fmt.Sprintf(`select %s as time_dim, sum(count) as n_signalements, sum(amount) as amount
from perceval_daily
where $1 <= date and date < $2
group by time_dim
order by time_dim asc`, DailyTable.Expr(r.Granularity)),
					Args: rangeArgs(r),
				}
			},
		},
		{
			Topic:   topic,
			Path:    "montant-moyen",
			Summary: "Montant moyen des signalements",
			Shape:   ShapeFirst,
			Build: func(Request) Query {
				return Query{SQL: `select avg(avg_amount) as montant_moy from perceval_monthly`}
			},
		},
		{
			Topic:    topic,
			Path:     "age-category/{timespan}",
			Summary:  "Nombre de signalements par tranche d'âge",
			Window:   WindowPeriod,
			Anchor:   percevalAnchor,
			Relabels: []Relabel{{Column: "age_cat", Table: labels.AgeCategory}},
			Build: func(r Request) Query {
				return Query{
					SQL: `select age_cat, sum(count) as n_signalements
from perceval_age_cat
where $1 <= month and month < $2
group by age_cat
order by age_cat asc`,
					Args: rangeArgs(r),
				}
			},
		},
		{
			Topic:   topic,
			Path:    "map",
			Summary: "Nombre de signalements par département",
			Build: func(Request) Query {
				return Query{SQL: `select dpt_code, geo_dpt_iso, geo_dpt_name, sum(count) as n_signalements
from perceval_geo
group by dpt_code, geo_dpt_iso, geo_dpt_name
order by n_signalements desc`}
			},
		},
		{
			Topic:    topic,
			Path:     "map-detail/{geoIso}",
			Summary:  "Nombre de signalements dans un département, ou au total avec gn",
			Shape:    ShapeLookup,
			KeyParam: "geoIso",
			KeyRule:  geoKeyRule,
			Build: func(r Request) Query {
				if r.Key == NationalKey {
					return Query{SQL: `select sum(count) as n_signalements from perceval_geo`}
				}
				return Query{
					SQL: `select dpt_code, geo_dpt_iso, geo_dpt_name, sum(count) as n_signalements
from perceval_geo
where geo_dpt_iso = $1
group by dpt_code, geo_dpt_iso, geo_dpt_name`,
					Args: []any{r.Key},
				}
			},
		},
	}
}
