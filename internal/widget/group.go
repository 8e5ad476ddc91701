package widget

import (
	"context"
	"io"

	"golang.org/x/sync/errgroup"
)

// Group is a chart-parent: it loads its children with the default tag of
// its tag select group and forwards every later selection to all of them.
type Group struct {
	members    []Widget
	tags       *TagSelectGroup
	calendar   *StartEndCalendar
	defaultTag string
}

// NewGroup wraps configured widgets. A tag select group or calendar among
// them drives the selection of the others.
func NewGroup(members ...Widget) *Group {
	g := &Group{members: members}
	for _, m := range members {
		switch x := m.(type) {
		case *TagSelectGroup:
			g.tags = x
			g.defaultTag = x.DefaultTag()
		case *StartEndCalendar:
			g.calendar = x
		}
	}
	return g
}

func (g *Group) Kind() string { return KindChartParent }

// Configure accepts a default-tag that overrides the one of the tag group.
func (g *Group) Configure(a Attributes) error {
	g.defaultTag = a.Get("default-tag", g.defaultTag)
	return nil
}

// SetLinks points the tag buttons and the calendar at l.
func (g *Group) SetLinks(l *Links) {
	if g.tags != nil {
		g.tags.SetLinks(l)
	}
	if g.calendar != nil {
		g.calendar.SetLinks(l)
	}
}

// AcceptsTag reports whether tag can be selected in this group. Only the
// empty tag is accepted without a tag select group.
func (g *Group) AcceptsTag(tag string) bool {
	if tag == "" {
		return true
	}
	return g.tags != nil && g.tags.has(tag)
}

// Init loads every member with the initial selection.
func (g *Group) Init(ctx context.Context) error {
	return g.Select(ctx, Selection{})
}

// Select fills the blanks of sel from the initial selection and broadcasts
// it. An end date before the start is moved to the start.
func (g *Group) Select(ctx context.Context, sel Selection) error {
	if sel.Tag == "" {
		sel.Tag = g.defaultTag
	}
	switch {
	case sel.HasDates():
		if sel.End < sel.Start {
			sel.End = sel.Start
		}
	case g.calendar != nil:
		sel.Start, sel.End = g.calendar.Range()
	default:
		sel.Start, sel.End = "", ""
	}
	return g.Broadcast(ctx, sel)
}

func (g *Group) UpdateData(ctx context.Context, sel Selection) error {
	return g.Broadcast(ctx, sel)
}

// Broadcast sends sel to all members at once and waits for them. It
// returns the first error, members that failed render the placeholder.
func (g *Group) Broadcast(ctx context.Context, sel Selection) error {
	var eg errgroup.Group
	for _, m := range g.members {
		eg.Go(func() error { return m.UpdateData(ctx, sel) })
	}
	return eg.Wait()
}

func (g *Group) Render(w io.Writer) error {
	if _, err := io.WriteString(w, `<div class="chart-parent">`+"\n"); err != nil {
		return err
	}
	for _, m := range g.members {
		if err := m.Render(w); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</div>\n")
	return err
}
