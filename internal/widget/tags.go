package widget

import (
	"context"
	"html/template"
	"io"
	"strconv"
	"strings"
)

// maxYearTags bounds a years:a-b range.
const maxYearTags = 100

var tagLabels = map[string]string{
	"day":      "1 jour",
	"week":     "1 sem.",
	"month":    "1 mois",
	"year":     "1 an",
	"twitter":  "Twitter",
	"facebook": "Facebook",
}

var tagsTmpl = template.Must(template.New(KindTagSelectGroup).Parse(`<ul class="fr-tags-group period-tags">
{{- range .}}
  <li>
    <a href="{{.Href}}" class="fr-tag fr-tag--sm" aria-pressed="{{.Pressed}}" target="_self" data-tag="{{.Tag}}">{{.Label}}</a>
  </li>
{{- end}}
</ul>
`))

type tagItem struct {
	Href    string
	Tag     string
	Label   string
	Pressed bool
}

// TagSelectGroup is the row of buttons that picks the period, year or
// network of the charts of a group.
type TagSelectGroup struct {
	deps       Deps
	tags       []string
	defaultTag string
	selected   string
	links      *Links
}

func (t *TagSelectGroup) Kind() string { return KindTagSelectGroup }

func (t *TagSelectGroup) Configure(a Attributes) error {
	tags, err := parseTags(a.Get("tags", ""), t.deps.now().Year())
	if err != nil {
		return err
	}
	t.tags = tags
	t.defaultTag = a.Get("default-tag", "")
	t.selected = t.defaultTag
	return nil
}

// DefaultTag is the tag a group loads its children with.
func (t *TagSelectGroup) DefaultTag() string { return t.defaultTag }

func (t *TagSelectGroup) has(tag string) bool {
	for _, x := range t.tags {
		if x == tag {
			return true
		}
	}
	return false
}

// SetLinks makes every button a link to its selection.
func (t *TagSelectGroup) SetLinks(l *Links) { t.links = l }

// UpdateData marks the selected tag, nothing is fetched.
func (t *TagSelectGroup) UpdateData(_ context.Context, sel Selection) error {
	if sel.Tag != "" {
		t.selected = sel.Tag
	}
	return nil
}

func (t *TagSelectGroup) Render(w io.Writer) error {
	items := make([]tagItem, len(t.tags))
	for i, tag := range t.tags {
		items[i] = tagItem{Href: t.links.Href("tag", tag), Tag: tag, Label: TagLabel(tag), Pressed: tag == t.selected}
	}
	return tagsTmpl.Execute(w, items)
}

// TagLabel is the button text of a tag. Years and unknown tags are shown
// as is.
func TagLabel(tag string) string {
	if l, ok := tagLabels[tag]; ok {
		return l
	}
	return tag
}

// parseTags reads data-tags: "years:2015+" up to the current year,
// "years:2015-2020", or a comma separated list.
func parseTags(spec string, currentYear int) ([]string, error) {
	if spec == "" {
		return []string{}, nil
	}
	years, ok := strings.CutPrefix(spec, "years:")
	if !ok {
		tags := strings.Split(spec, ",")
		for i := range tags {
			tags[i] = strings.TrimSpace(tags[i])
		}
		return tags, nil
	}

	var from, to int
	var err error
	if start, open := strings.CutSuffix(years, "+"); open {
		if from, err = strconv.Atoi(start); err != nil {
			return nil, badAttribute("tags", spec)
		}
		to = currentYear
	} else {
		a, b, found := strings.Cut(years, "-")
		if !found {
			return nil, badAttribute("tags", spec)
		}
		if from, err = strconv.Atoi(a); err != nil {
			return nil, badAttribute("tags", spec)
		}
		if to, err = strconv.Atoi(b); err != nil {
			return nil, badAttribute("tags", spec)
		}
	}
	if to-from >= maxYearTags {
		return nil, badAttribute("tags", spec)
	}

	tags := []string{}
	for y := from; y <= to; y++ {
		tags = append(tags, strconv.Itoa(y))
	}
	return tags, nil
}
