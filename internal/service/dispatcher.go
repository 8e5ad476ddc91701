package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/dayanaadylkhanova/barnum/internal/entity"
)

const (
	DefaultMaxResults = 10
	MaxResultsCap     = 50
)

// Params are the raw request values of one endpoint call, as read from the
// URL. Empty fields are absent.
type Params struct {
	Timespan   string
	Start      string `validate:"omitempty,max=35"`
	End        string `validate:"omitempty,max=35"`
	Year       string `validate:"omitempty,number,len=4"`
	MaxResults string `validate:"omitempty,number"`
	Key        string
}

// Result holds either a list of rows or a single object.
type Result struct {
	Rows   []entity.Row
	Object entity.Row
	Single bool
}

type Dispatcher struct {
	store    StatsReaderPort
	validate *validator.Validate
	now      func() time.Time
	// ref, when set, replaces every endpoint anchor.
	ref func() time.Time
}

type Option func(*Dispatcher)

// WithClock sets the wall clock used for the current year and live references.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) { d.now = now }
}

// WithReferenceTime pins the end of every period window to t.
func WithReferenceTime(t time.Time) Option {
	return func(d *Dispatcher) { d.ref = func() time.Time { return t } }
}

// WithLiveReference ends period windows at the current time.
func WithLiveReference() Option {
	return func(d *Dispatcher) { d.ref = func() time.Time { return d.now() } }
}

func NewDispatcher(store StatsReaderPort, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		store:    store,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Dispatch resolves the arguments of ep from p, runs its query and shapes
// the rows. Exactly one read is issued per call.
func (d *Dispatcher) Dispatch(ctx context.Context, ep Endpoint, p Params) (Result, error) {
	req, err := d.request(ep, p)
	if err != nil {
		return Result{}, err
	}

	q := ep.Build(req)
	if q.Name == "" {
		q.Name = ep.Name()
	}
	rows, err := d.store.Select(ctx, q)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %s: %w", ErrUpstreamStore, q.Name, err)
	}
	for _, rl := range ep.Relabels {
		rows = rl.Table.Rows(rows, rl.Column)
	}

	switch ep.Shape {
	case ShapeFirst:
		if len(rows) == 0 {
			return Result{Object: entity.Row{}, Single: true}, nil
		}
		return Result{Object: rows[0], Single: true}, nil
	case ShapeLookup:
		if len(rows) == 0 {
			return Result{}, fmt.Errorf("%w: %s", ErrUnknownLookupKey, ep.Name())
		}
		return Result{Object: rows[0], Single: true}, nil
	default:
		if rows == nil {
			rows = []entity.Row{}
		}
		return Result{Rows: rows}, nil
	}
}

func (d *Dispatcher) request(ep Endpoint, p Params) (Request, error) {
	if err := d.validate.Struct(p); err != nil {
		return Request{}, invalidParam(err)
	}

	var req Request
	switch ep.Window {
	case WindowPeriod:
		period := entity.Period(p.Timespan)
		if !ep.accepts(period) {
			return Request{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, p.Timespan)
		}
		r, err := Resolve(period, d.reference(ep))
		if err != nil {
			return Request{}, err
		}
		req.Range = r
	case WindowDates:
		start, err := ParseDate(p.Start)
		if err != nil {
			return Request{}, fmt.Errorf("%w: start: %v", ErrInvalidParam, err)
		}
		end, err := ParseDate(p.End)
		if err != nil {
			return Request{}, fmt.Errorf("%w: end: %v", ErrInvalidParam, err)
		}
		r, err := entity.NewTimeRange(start, end)
		if err != nil {
			return Request{}, fmt.Errorf("%w: %w", ErrInvalidParam, err)
		}
		req.Range = r
	}
	if ep.Window != WindowNone {
		req.Granularity = SelectGranularity(req.Range.Start, req.Range.End)
	}

	if ep.Limited {
		n, err := maxResults(p.MaxResults)
		if err != nil {
			return Request{}, err
		}
		req.Limit = n
	}

	switch ep.Year {
	case YearPath:
		if p.Year == "" {
			return Request{}, fmt.Errorf("%w: year is required", ErrInvalidParam)
		}
		req.Year, _ = strconv.Atoi(p.Year)
	case YearQuery:
		req.Year = d.now().Year()
		if p.Year != "" {
			req.Year, _ = strconv.Atoi(p.Year)
		}
	}

	if ep.KeyParam != "" {
		if err := d.validate.Var(p.Key, ep.KeyRule); err != nil {
			return Request{}, fmt.Errorf("%w: %s %q", ErrInvalidParam, ep.KeyParam, p.Key)
		}
		req.Key = p.Key
	}
	return req, nil
}

func (d *Dispatcher) reference(ep Endpoint) time.Time {
	if d.ref != nil {
		return d.ref()
	}
	return ep.anchor()
}

// ParseDate accepts a calendar date (2006-01-02, read as UTC midnight) or an
// RFC3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("bad date %q", s)
}

func maxResults(s string) (int, error) {
	if s == "" {
		return DefaultMaxResults, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: maxResults must be a positive integer", ErrInvalidParam)
	}
	return min(n, MaxResultsCap), nil
}

func invalidParam(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidParam, err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, strings.ToLower(fe.Field()[:1])+fe.Field()[1:])
	}
	return fmt.Errorf("%w: %s", ErrInvalidParam, strings.Join(fields, ", "))
}
