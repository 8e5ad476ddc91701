package widget

import (
	"context"
	"html/template"
	"io"

	"github.com/dayanaadylkhanova/barnum/internal/transform"
)

const loadingText = "..."

var figureTmpl = template.Must(template.New(KindFeatureFigure).Parse(
	`<div class="fr-display-{{.Size}}">{{.Text}}</div>` + "\n"))

var displaySizes = map[string]bool{"xs": true, "sm": true, "md": true, "lg": true, "xl": true}

// FeatureFigure shows one headline number.
type FeatureFigure struct {
	deps        Deps
	baseURL     string
	field       string
	fieldSet    bool
	transform   string
	displaySize string
	text        string
}

func (f *FeatureFigure) Kind() string { return KindFeatureFigure }

func (f *FeatureFigure) Configure(a Attributes) error {
	var err error
	if f.baseURL, err = a.require(KindFeatureFigure, "url"); err != nil {
		return err
	}
	f.field = a.Get("field", "value")
	f.fieldSet = a.Has("field")
	f.transform = a.Get("transform", "")
	if f.transform != "" {
		if _, ok := f.deps.Transforms.Lookup(f.transform); !ok {
			return badAttribute("transform", f.transform)
		}
	}
	f.displaySize = a.Get("display-size", "xl")
	if !displaySizes[f.displaySize] {
		return badAttribute("display-size", f.displaySize)
	}
	f.text = loadingText
	return nil
}

func (f *FeatureFigure) UpdateData(ctx context.Context, sel Selection) error {
	f.text = ""
	path := f.baseURL
	if sel.Tag != "" {
		path += "/" + sel.Tag
	}
	data, err := f.deps.Source.Fetch(ctx, path)
	if err != nil {
		return err
	}
	text, err := f.figure(data)
	if err != nil {
		return err
	}
	f.text = text
	return nil
}

// figure applies the custom transform to the selected field, or to the
// whole response when no field was given. Without a transform the field is
// formatted as a number.
func (f *FeatureFigure) figure(data any) (string, error) {
	var in any = data
	if f.transform == "" || f.fieldSet {
		obj, err := transform.Object(data)
		if err != nil {
			return "", err
		}
		in = obj[f.field]
	}
	if f.transform == "" {
		n, ok := transform.Number(in)
		if !ok {
			return "", nil
		}
		return transform.FormatNumber(n), nil
	}
	out, err := f.deps.Transforms.Apply(f.transform, in)
	if err != nil {
		return "", err
	}
	s, ok := out.(string)
	if !ok {
		return "", unexpected(KindFeatureFigure, out)
	}
	return s, nil
}

func (f *FeatureFigure) Render(w io.Writer) error {
	if f.text == "" {
		return placeholder(w)
	}
	return figureTmpl.Execute(w, struct{ Size, Text string }{f.displaySize, f.text})
}
