package relabel

// Set groups every relabel table the dashboard knows about.
type Set struct {
	Subsite        Table
	TrafficSource  Table
	DeviceType     Table
	AgeCategory    Table
	ContactMotif   Table
	PersonType     Table
	ServicePlusTag Table
}

// Default returns the tables used in production.
func Default() Set {
	return Set{
		Subsite: NewTable(map[string]string{
			"recrutement":        "Recrutement",
			"national":           "National",
			"ecoles (cegn)":      "Écoles (CEGN)",
			"pjgn":               "Pôle Judiciaire (PJGN)",
			"gign":               "Groupe d'Intervention (GIGN)",
			"garde republicaine": "Garde Républicaine",
			"eogn":               "École des Officiers (EOGN)",
		}),
		TrafficSource: NewTable(map[string]string{
			"Search engines": "Moteurs de recherche",
			"Direct traffic": "Trafic direct",
			"Social media":   "Réseaux sociaux",
			"Referrer sites": "Sites référents",
			"gie-sog-gav":    "Divers - Recrutement",
			"Portal sites":   "Divers - Gouvernement",
		}),
		DeviceType: NewTable(map[string]string{
			"Mobile Phone":  "Téléphone portable",
			"Desktop":       "Ordinateur de bureau",
			"Tablet":        "Tablette",
			"TV":            "Télévision",
			"Media Player":  "Lecteur multimédia",
			"Games Console": "Console de jeux",
		}),
		// the warehouse stores the youngest bucket as "00"
		AgeCategory: NewTable(map[string]string{
			"00": "00-14",
		}),
		ContactMotif: NewTable(map[string]string{
			"demande_info": "Je m'informe",
			"signalement":  "Je signale",
			"victime":      "Je suis victime",
		}),
		PersonType: NewTable(map[string]string{
			"physique": "Personne physique",
			"morale":   "Personne morale",
			"unknown":  "Inconnu",
		}),
		ServicePlusTag: NewTable(map[string]string{
			"tag_accessibilite": "Accessibilité",
			"tag_explication":   "Explication",
			"tag_relation":      "Relation",
			"tag_reactivite":    "Réactivité",
			"tag_simplicite":    "Simplicité",
		}),
	}
}
