package service

import "github.com/dayanaadylkhanova/barnum/internal/relabel"

func iggnEndpoints(_ relabel.Set) []Endpoint {
	const topic = "iggn"
	return []Endpoint{
		{
			Topic:   topic,
			Path:    "n-reclamations/{year}",
			Summary: "Nombre de réclamations reçues par l'IGGN sur l'année choisie",
			Shape:   ShapeLookup,
			Year:    YearPath,
			Build: func(r Request) Query {
				return Query{
					SQL:  `select n_reclamations from iggn_nb_reclamations where annee = $1`,
					Args: []any{r.Year},
				}
			},
		},
		{
			Topic:   topic,
			Path:    "perc-manquements/{year}",
			Summary: "Part des réclamations avec manquement avéré sur l'année choisie",
			Shape:   ShapeLookup,
			Year:    YearPath,
			Build: func(r Request) Query {
				return Query{
					SQL:  `select pourcentage_manquements from iggn_pourcentage_manquements where annee = $1`,
					Args: []any{r.Year},
				}
			},
		},
	}
}
