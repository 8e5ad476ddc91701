package service

import "github.com/dayanaadylkhanova/barnum/internal/relabel"

const reseauKeyRule = "required,oneof=twitter youtube"

func reseauxSociauxEndpoints(_ relabel.Set) []Endpoint {
	const topic = "reseaux-sociaux"
	return []Endpoint{
		{
			Topic:   topic,
			Path:    "n-followers-twitter",
			Summary: "Nombre total d'abonnés Twitter",
			Shape:   ShapeFirst,
			Build: func(Request) Query {
				return Query{SQL: `select sum(n_followers) as value from reseaux_sociaux_followers where reseau = 'twitter'`}
			},
		},
		{
			Topic:    topic,
			Path:     "n-followers-map/{reseau}",
			Summary:  "Nombre d'abonnés des comptes départementaux",
			KeyParam: "reseau",
			KeyRule:  reseauKeyRule,
			Build: func(r Request) Query {
				return Query{
					SQL: `select geo_dpt_iso, geo_dpt_name, page_name, sum(n_followers) as n_followers
from reseaux_sociaux_followers
where reseau = $1
group by geo_dpt_iso, geo_dpt_name, page_name`,
					Args: []any{r.Key},
				}
			},
		},
		{
			Topic:    topic,
			Path:     "n-followers-map-detail/twitter/{geoIso}",
			Summary:  "Compte Twitter d'un département, ou comptes nationaux avec gn",
			KeyParam: "geoIso",
			KeyRule:  geoKeyRule,
			Build: func(r Request) Query {
				if r.Key == NationalKey {
					return Query{SQL: `select reseau, page_url, page_name, n_followers, n_tweets
from reseaux_sociaux_followers
where (page_name = 'Gendarmerie nationale' or page_name = 'Gendarmerie Nationale')
	and reseau = 'twitter'
order by reseau`}
				}
				return Query{
					SQL: `select reseau, page_url, page_name, n_followers, n_tweets
from reseaux_sociaux_followers
where geo_dpt_iso = $1 and reseau = 'twitter'
order by reseau`,
					Args: []any{r.Key},
				}
			},
		},
		{
			Topic:    topic,
			Path:     "n-followers-not-geo/{reseau}",
			Summary:  "Nombre d'abonnés des comptes non rattachés à un département",
			KeyParam: "reseau",
			KeyRule:  reseauKeyRule,
			Build: func(r Request) Query {
				return Query{
					SQL: `select page_url, page_name, n_followers
from reseaux_sociaux_followers
where reseau = $1 and geo_dpt_iso is null
order by n_followers desc`,
					Args: []any{r.Key},
				}
			},
		},
		{
			Topic:    topic,
			Path:     "stats-yt/{pageUrl}",
			Summary:  "Statistiques d'une chaîne YouTube",
			Shape:    ShapeLookup,
			KeyParam: "pageUrl",
			KeyRule:  "required,max=512",
			Build: func(r Request) Query {
				return Query{
					SQL:  `select page_name, page_url, n_followers, n_videos, n_views from youtube_followers where page_url = $1`,
					Args: []any{r.Key},
				}
			},
		},
	}
}
