// Package widget renders dashboard charts as HTML fragments. A widget is
// configured from its data-* attributes, fetches its data from the API on
// UpdateData and draws the last fetched state on Render.
package widget

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/dayanaadylkhanova/barnum/internal/transform"
)

var (
	ErrUnknownKind      = errors.New("unknown widget kind")
	ErrMissingAttribute = errors.New("missing widget attribute")
	ErrBadAttribute     = errors.New("invalid widget attribute")
	ErrUnexpectedData   = errors.New("unexpected widget data")
)

const (
	KindCategoryChart    = "category-chart"
	KindTimelineChart    = "timeline-chart"
	KindFeatureFigure    = "feature-figure"
	KindMapChart         = "map-chart"
	KindMapDetail        = "map-detail"
	KindTagSelectGroup   = "tag-select-group"
	KindStartEndCalendar = "start-end-calendar"
	KindChartParent      = "chart-parent"
	KindMapParent        = "map-parent"
)

// Placeholder is rendered by data widgets that have nothing to show.
const Placeholder = `<p style="text-align: center;">Données non disponibles</p>`

type Widget interface {
	Kind() string
	Configure(Attributes) error
	UpdateData(ctx context.Context, sel Selection) error
	// Render writes the whole fragment. Rendering twice gives the same output.
	Render(w io.Writer) error
}

// Selection is the payload of an update-data event: a tag (period, year,
// network or region code) and optional calendar bounds.
type Selection struct {
	Tag   string
	Start string
	End   string
}

func (s Selection) HasDates() bool { return s.Start != "" && s.End != "" }

// Attributes are the data-* attributes of a widget, keyed without the prefix.
type Attributes map[string]string

// AttributesFromQuery reads attributes from URL query values. A "data-"
// prefix is accepted and dropped.
func AttributesFromQuery(q url.Values) Attributes {
	a := make(Attributes, len(q))
	for k, v := range q {
		if len(v) == 0 {
			continue
		}
		a[strings.TrimPrefix(k, "data-")] = v[0]
	}
	return a
}

func (a Attributes) Get(key, def string) string {
	if v, ok := a[key]; ok && v != "" {
		return v
	}
	return def
}

func (a Attributes) Has(key string) bool {
	v, ok := a[key]
	return ok && v != ""
}

func (a Attributes) require(kind, key string) (string, error) {
	v := a[key]
	if v == "" {
		return "", fmt.Errorf("%w: %s needs data-%s", ErrMissingAttribute, kind, key)
	}
	return v, nil
}

// Deps are the collaborators shared by every widget.
type Deps struct {
	Source     Source
	Transforms transform.Registry
	// Now is the clock of calendar and year tags, time.Now when nil.
	Now func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

// New builds an unconfigured widget of the given kind.
func New(kind string, deps Deps) (Widget, error) {
	switch kind {
	case KindCategoryChart:
		return &CategoryChart{deps: deps}, nil
	case KindTimelineChart:
		return &TimelineChart{deps: deps}, nil
	case KindFeatureFigure:
		return &FeatureFigure{deps: deps}, nil
	case KindMapChart:
		return &MapChart{deps: deps}, nil
	case KindMapDetail:
		return &MapDetail{deps: deps}, nil
	case KindTagSelectGroup:
		return &TagSelectGroup{deps: deps}, nil
	case KindStartEndCalendar:
		return &StartEndCalendar{deps: deps}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// Build creates and configures a widget in one step.
func Build(kind string, deps Deps, attrs Attributes) (Widget, error) {
	w, err := New(kind, deps)
	if err != nil {
		return nil, err
	}
	if err := w.Configure(attrs); err != nil {
		return nil, err
	}
	return w, nil
}

// Kinds lists the leaf widget kinds New can build.
func Kinds() []string {
	return []string{
		KindCategoryChart, KindTimelineChart, KindFeatureFigure, KindMapChart,
		KindMapDetail, KindTagSelectGroup, KindStartEndCalendar,
	}
}
