package service

import (
	"fmt"
	"time"

	"github.com/dayanaadylkhanova/barnum/internal/relabel"
)

var siteWebAnchor = time.Date(2022, time.May, 15, 11, 0, 0, 0, time.UTC)

type geoBreakdown struct {
	kind    string
	table   string
	columns string
}

var siteWebGeo = []geoBreakdown{
	{kind: "ville", table: "atinternet_visits_per_geo_city", columns: "geo_city"},
	{kind: "region", table: "atinternet_visits_per_geo_region", columns: "geo_region_name, geo_region_iso"},
	{kind: "pays", table: "atinternet_visits_per_geo_country", columns: "geo_country"},
}

func siteWebEndpoints(labels relabel.Set) []Endpoint {
	const topic = "site-web"
	eps := []Endpoint{
		{
			Topic:   topic,
			Path:    "n-visites-total",
			Summary: "Nombre total de visites sur l'année choisie (année en cours par défaut)",
			Shape:   ShapeFirst,
			Year:    YearQuery,
			Build: func(r Request) Query {
				return Query{
					SQL: `select sum(visit_count) as n_visits
from atinternet_visits_per_hour
where extract(year from datetime) = $1`,
					Args: []any{r.Year},
				}
			},
		},
		{
			Topic:   topic,
			Path:    "n-visits-timeline/{timespan}",
			Summary: "Nombre de visites par unité de temps",
			Window:  WindowPeriod,
			Anchor:  siteWebAnchor,
			Build: func(r Request) Query {
				return Query{
					SQL: fmt.Sprintf(`select %s as time_dim, sum(visit_count) as n_visits
from atinternet_visits_per_hour
where $1 <= datetime and datetime < $2
group by time_dim
order by time_dim asc`, HourlyTable.Expr(r.Granularity)),
					Args: rangeArgs(r),
				}
			},
		},
	}

	for _, g := range siteWebGeo {
		eps = append(eps, Endpoint{
			Topic:   topic,
			Path:    "n-visits-geo/" + g.kind + "/{timespan}",
			Summary: "Nombre de visites par " + g.kind,
			Window:  WindowPeriod,
			Anchor:  siteWebAnchor,
			Limited: true,
			Build: func(r Request) Query {
				return Query{
					SQL: fmt.Sprintf(`select %[1]s, sum(visit_count) as n_visits
from %[2]s
where $1 <= month and month < $2
group by %[1]s
order by n_visits desc
limit $3`, g.columns, g.table),
					Args: append(rangeArgs(r), r.Limit),
				}
			},
		})
	}

	eps = append(eps,
		Endpoint{
			Topic:    topic,
			Path:     "n-visits-subsite/{timespan}",
			Summary:  "Nombre de visites par sous-site",
			Window:   WindowPeriod,
			Anchor:   siteWebAnchor,
			Limited:  true,
			Relabels: []Relabel{{Column: "subsite", Table: labels.Subsite}},
			Build:    monthlyTop("atinternet_visits_per_page", "subsite"),
		},
		Endpoint{
			Topic:    topic,
			Path:     "n-visits-source/{timespan}",
			Summary:  "Nombre de visites par source de trafic",
			Window:   WindowPeriod,
			Anchor:   siteWebAnchor,
			Limited:  true,
			Relabels: []Relabel{{Column: "src", Table: labels.TrafficSource}},
			Build:    monthlyTop("atinternet_visits_per_source", "src"),
		},
	)

	devices := []struct {
		kind, column string
		relabel      []Relabel
	}{
		{kind: "device", column: "device_type", relabel: []Relabel{{Column: "device_type", Table: labels.DeviceType}}},
		{kind: "os", column: "os_group"},
		{kind: "browser", column: "browser_group"},
	}
	for _, d := range devices {
		column := d.column
		eps = append(eps, Endpoint{
			Topic:    topic,
			Path:     "n-visits-dispositif/" + d.kind + "/{timespan}",
			Summary:  "Nombre de visites par " + column + " (au moins 100 visites)",
			Window:   WindowPeriod,
			Anchor:   siteWebAnchor,
			Limited:  true,
			Relabels: d.relabel,
			Build: func(r Request) Query {
				return Query{
					SQL: fmt.Sprintf(`with t as (
	select %[1]s, sum(visit_count) as n_visits
	from atinternet_visits_per_device
	where $1 <= month and month < $2
	group by %[1]s
	order by n_visits desc
)
select * from t
where n_visits >= 100
limit $3`, column),
					Args: append(rangeArgs(r), r.Limit),
				}
			},
		})
	}
	return eps
}

// monthlyTop builds a top-N visit count grouped by column over a monthly table.
func monthlyTop(table, column string) func(Request) Query {
	sql := fmt.Sprintf(`select %[1]s, sum(visit_count) as n_visits
from %[2]s
where $1 <= month and month < $2
group by %[1]s
order by n_visits desc
limit $3`, column, table)
	return func(r Request) Query {
		return Query{SQL: sql, Args: append(rangeArgs(r), r.Limit)}
	}
}
