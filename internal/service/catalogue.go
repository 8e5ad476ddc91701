package service

import (
	"sort"
	"time"

	"github.com/dayanaadylkhanova/barnum/internal/entity"
	"github.com/dayanaadylkhanova/barnum/internal/relabel"
)

// Shape tells how the rows of a query are returned to the client.
type Shape int

const (
	// ShapeRows returns every row, an empty list when there are none.
	ShapeRows Shape = iota
	// ShapeFirst returns the first row, an empty object when there are none.
	ShapeFirst
	// ShapeLookup returns the first row and fails with ErrUnknownLookupKey
	// when there are none.
	ShapeLookup
)

// Window is the kind of time bounds an endpoint accepts.
type Window int

const (
	WindowNone Window = iota
	// WindowPeriod takes a {timespan} tag resolved against the reference instant.
	WindowPeriod
	// WindowDates takes explicit {start} and {end} path dates.
	WindowDates
)

// YearSource is where a year argument comes from.
type YearSource int

const (
	YearNone YearSource = iota
	// YearPath is a required {year} path parameter.
	YearPath
	// YearQuery is an optional ?year= parameter defaulting to the current year.
	YearQuery
)

// Relabel rewrites one string column of the result rows.
type Relabel struct {
	Column string
	Table  relabel.Table
}

// Request carries the resolved arguments of one endpoint call.
type Request struct {
	Range       entity.TimeRange
	Granularity entity.Granularity
	Limit       int
	Year        int
	Key         string
}

// Endpoint is one route of the statistics API and the query behind it.
type Endpoint struct {
	Topic string
	// Path is a chi pattern relative to /api/<Topic>. Bounds use the
	// {timespan}, {start}, {end} and {year} parameter names.
	Path    string
	Summary string
	Shape   Shape
	Window  Window
	// Periods restricts the accepted timespan tags, nil accepts all four.
	Periods []entity.Period
	// Anchor is the reference instant of period windows, zero means DefaultAnchor.
	Anchor  time.Time
	Limited bool
	Year    YearSource
	// KeyParam names the path parameter validated with KeyRule.
	KeyParam string
	KeyRule  string
	Relabels []Relabel
	Build    func(Request) Query
}

// Name is the stable identifier of the endpoint, e.g. "perceval/map".
func (e Endpoint) Name() string { return e.Topic + "/" + e.Path }

func (e Endpoint) anchor() time.Time {
	if e.Anchor.IsZero() {
		return DefaultAnchor
	}
	return e.Anchor
}

func (e Endpoint) accepts(p entity.Period) bool {
	if e.Periods == nil {
		return true
	}
	for _, ok := range e.Periods {
		if ok == p {
			return true
		}
	}
	return false
}

// Catalogue is the immutable list of API endpoints.
type Catalogue struct {
	endpoints []Endpoint
	byName    map[string]int
}

func NewCatalogue(labels relabel.Set) Catalogue {
	var eps []Endpoint
	eps = append(eps, maGendarmerieEndpoints(labels)...)
	eps = append(eps, percevalEndpoints(labels)...)
	eps = append(eps, preplainteEndpoints(labels)...)
	eps = append(eps, siteWebEndpoints(labels)...)
	eps = append(eps, recrutementEndpoints(labels)...)
	eps = append(eps, reseauxSociauxEndpoints(labels)...)
	eps = append(eps, servicePublicPlusEndpoints(labels)...)
	eps = append(eps, iggnEndpoints(labels)...)

	byName := make(map[string]int, len(eps))
	for i, e := range eps {
		byName[e.Name()] = i
	}
	return Catalogue{endpoints: eps, byName: byName}
}

// Endpoints returns a copy of the catalogue entries in declaration order.
func (c Catalogue) Endpoints() []Endpoint {
	out := make([]Endpoint, len(c.endpoints))
	copy(out, c.endpoints)
	return out
}

func (c Catalogue) Lookup(name string) (Endpoint, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Endpoint{}, false
	}
	return c.endpoints[i], true
}

// Topics lists the distinct topics, sorted.
func (c Catalogue) Topics() []string {
	seen := map[string]struct{}{}
	var out []string
	for _, e := range c.endpoints {
		if _, ok := seen[e.Topic]; ok {
			continue
		}
		seen[e.Topic] = struct{}{}
		out = append(out, e.Topic)
	}
	sort.Strings(out)
	return out
}

// rangeArgs is the common [start, end) argument pair.
func rangeArgs(r Request) []any { return []any{r.Range.Start, r.Range.End} }
