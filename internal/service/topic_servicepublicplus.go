package service

import (
	"fmt"

	"github.com/dayanaadylkhanova/barnum/internal/relabel"
)

func servicePublicPlusEndpoints(_ relabel.Set) []Endpoint {
	const topic = "service-public-plus"
	return []Endpoint{
		{
			Topic:   topic,
			Path:    "total",
			Summary: "Nombre d'expériences partagées et délais de réponse",
			Shape:   ShapeFirst,
			Build: func(Request) Query {
				return Query{SQL: `select exp_count, exp_pos_count, exp_moy_count, exp_neg_count,
	exp_answered_count, avg_days_to_response, p75_days_to_response
from exp_total`}
			},
		},
		{
			Topic:   topic,
			Path:    "map",
			Summary: "Nombre d'expériences par département",
			Build: func(Request) Query {
				return Query{SQL: `select geo_dpt_iso, geo_dpt_name, exp_count from exp_geo where geo_dpt_iso is not null`}
			},
		},
		{
			Topic:    topic,
			Path:     "map-detail/{geoIso}",
			Summary:  "Nombre d'expériences dans un département, ou non rattachées avec gn",
			Shape:    ShapeLookup,
			KeyParam: "geoIso",
			KeyRule:  geoKeyRule,
			Build: func(r Request) Query {
				if r.Key == NationalKey {
					return Query{SQL: `select geo_dpt_iso, geo_dpt_name, exp_count from exp_geo where geo_dpt_iso is null`}
				}
				return Query{
					SQL:  `select geo_dpt_iso, geo_dpt_name, exp_count from exp_geo where geo_dpt_iso = $1`,
					Args: []any{r.Key},
				}
			},
		},
		{
			Topic:   topic,
			Path:    "timeline/{start}/{end}",
			Summary: "Nombre d'expériences par unité de temps",
			Window:  WindowDates,
			Build: func(r Request) Query {
				return Query{
					SQL: fmt.Sprintf(`select %s as time_dim, sum(exp_count) as exp_count
from exp_count_day
where $1 <= date and date < $2
group by time_dim
order by time_dim asc`, DailyTable.Expr(r.Granularity)),
					Args: rangeArgs(r),
				}
			},
		},
		{
			Topic:   topic,
			Path:    "structure",
			Summary: "Nombre d'expériences par typologie de structure",
			Build: func(Request) Query {
				return Query{SQL: `select typologie_structure, exp_count from exp_typologie order by exp_count desc`}
			},
		},
		{
			Topic:   topic,
			Path:    "tags",
			Summary: "Répartition des avis par thème",
			Build: func(Request) Query {
				return Query{SQL: `select tag, pos_count, med_count, neg_count, total_count from exp_tags`}
			},
		},
	}
}
