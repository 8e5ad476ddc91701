package widget

import (
	"net/url"
	"sort"
)

// Links builds the hrefs that reload a page with another selection for one
// of its groups. A nil *Links renders "#".
type Links struct {
	Path string
	// Fixed is sent with every link, e.g. the section the group belongs to.
	Fixed  url.Values
	Anchor string
}

// Href returns the link for key/value pairs. Empty values are left out.
func (l *Links) Href(kv ...string) string {
	if l == nil {
		return "#"
	}
	q := url.Values{}
	for k, v := range l.Fixed {
		q[k] = append([]string(nil), v...)
	}
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] != "" {
			q.Set(kv[i], kv[i+1])
		}
	}
	href := l.Path
	if enc := q.Encode(); enc != "" {
		href += "?" + enc
	}
	if l.Anchor != "" {
		href += "#" + l.Anchor
	}
	return href
}

// Action is the target of a GET form, the fixed values go in hidden inputs.
func (l *Links) Action() string {
	if l == nil {
		return ""
	}
	if l.Anchor != "" {
		return l.Path + "#" + l.Anchor
	}
	return l.Path
}

type hiddenField struct{ Name, Value string }

func (l *Links) hidden() []hiddenField {
	if l == nil {
		return nil
	}
	keys := make([]string, 0, len(l.Fixed))
	for k := range l.Fixed {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var out []hiddenField
	for _, k := range keys {
		for _, v := range l.Fixed[k] {
			out = append(out, hiddenField{k, v})
		}
	}
	return out
}

// ValidRegion reports whether iso can be sent to a map detail.
func ValidRegion(iso string) bool {
	return geoIsoPattern.MatchString(iso) || iso == rhoneAlias
}
