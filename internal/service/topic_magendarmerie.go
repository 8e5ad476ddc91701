package service

import (
	"fmt"

	"github.com/dayanaadylkhanova/barnum/internal/relabel"
)

func maGendarmerieEndpoints(_ relabel.Set) []Endpoint {
	const topic = "ma-gendarmerie"
	return []Endpoint{
		{
			Topic:   topic,
			Path:    "n-contact-total",
			Summary: "Nombre total de contacts depuis le lancement",
			Shape:   ShapeFirst,
			Build: func(Request) Query {
				return Query{SQL: `select n_contact as n_contact_total from easiware_n_contacts_total`}
			},
		},
		{
			Topic:   topic,
			Path:    "n-contact-category/{start}/{end}",
			Summary: "Nombre de contacts par motif",
			Window:  WindowDates,
			Build: func(r Request) Query {
				return Query{
					SQL: `select category, sum(n_contact) as n_contact
from easiware_n_contacts_category
where $1 <= month and month < $2
group by category
order by n_contact desc`,
					Args: rangeArgs(r),
				}
			},
		},
		{
			Topic:   topic,
			Path:    "n-contact-timeline/{start}/{end}",
			Summary: "Nombre de contacts par unité de temps",
			Window:  WindowDates,
			Build: func(r Request) Query {
				return Query{
					SQL: fmt.Sprintf(`select %s as time_dim, sum(n_contact) as cnt
from easiware_n_contacts_date
where $1 <= date and date < $2
group by time_dim
order by time_dim asc`, ContactsTable.Expr(r.Granularity)),
					Args: rangeArgs(r),
				}
			},
		},
		{
			Topic:   topic,
			Path:    "affluence/daily-affluence",
			Summary: "Nombre moyen de contacts par heure de la journée",
			Build: func(Request) Query {
				return Query{SQL: `select hour, n_contact from easiware_n_contacts_hour order by hour asc`}
			},
		},
	}
}
