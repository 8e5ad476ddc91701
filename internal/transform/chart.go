package transform

import (
	"github.com/dayanaadylkhanova/barnum/internal/entity"
)

// Bar is one row of a category chart. Value is the percentage shown as the
// bar width, Perc the underlying ratio.
type Bar struct {
	Label         string  `json:"label,omitempty"`
	Value         float64 `json:"value"`
	ValueText     string  `json:"valueText,omitempty"`
	Perc          float64 `json:"perc"`
	OriginalValue float64 `json:"originalValue"`
	LabelURL      string  `json:"labelUrl,omitempty"`
	// Break renders a separator instead of a bar.
	Break bool `json:"break,omitempty"`
}

// Series is the labels/values pair of a horizontal or timeline chart.
type Series struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

func (s Series) Len() int { return len(s.Labels) }

type GeoValue struct {
	Name  string  `json:"geo_dpt_name"`
	Value float64 `json:"value"`
}

// GeoMap is keyed by ISO 3166-2 department code.
type GeoMap map[string]GeoValue

// Max returns the largest value of the map, 0 when it is empty.
func (m GeoMap) Max() float64 {
	var top float64
	for _, v := range m {
		if v.Value > top {
			top = v.Value
		}
	}
	return top
}

// VerticalBar turns rows into category chart bars. Without totalKey each
// percentage is relative to the sum of valueKey over all rows, with it each
// row is relative to its own total.
func VerticalBar(rows []entity.Row, labelKey, valueKey, totalKey string) []Bar {
	var sum float64
	for _, r := range rows {
		v, _ := Number(r[valueKey])
		sum += v
	}

	out := make([]Bar, 0, len(rows))
	for _, r := range rows {
		v, _ := Number(r[valueKey])
		total := sum
		if totalKey != "" {
			total, _ = Number(r[totalKey])
		}
		var perc float64
		if total != 0 {
			perc = v / total
		}
		out = append(out, Bar{
			Label:         Text(r[labelKey]),
			Value:         roundTo(100*perc, 1),
			ValueText:     oneDecimal(100*perc) + "%",
			Perc:          perc,
			OriginalValue: v,
		})
	}
	return out
}

// HorizontalBar splits rows into parallel label and value lists.
func HorizontalBar(rows []entity.Row, labelKey, valueKey string) Series {
	s := Series{Labels: make([]string, len(rows)), Values: make([]float64, len(rows))}
	for i, r := range rows {
		s.Labels[i] = Text(r[labelKey])
		s.Values[i], _ = Number(r[valueKey])
	}
	return s
}

// GeoMapOf indexes rows by geo_dpt_iso. Rows without a code are skipped.
func GeoMapOf(rows []entity.Row, valueKey string) GeoMap {
	out := make(GeoMap, len(rows))
	for _, r := range rows {
		iso := Text(r["geo_dpt_iso"])
		if iso == "" {
			continue
		}
		v, _ := Number(r[valueKey])
		out[iso] = GeoValue{Name: Text(r["geo_dpt_name"]), Value: v}
	}
	return out
}

// ReplaceLabel returns bars with every old label set to repl.
func ReplaceLabel(bars []Bar, old, repl string) []Bar {
	out := make([]Bar, len(bars))
	for i, b := range bars {
		if !b.Break && b.Label == old {
			b.Label = repl
		}
		out[i] = b
	}
	return out
}

func roundTo(f float64, decimals int) float64 {
	p := 1.0
	for i := 0; i < decimals; i++ {
		p *= 10
	}
	return float64(int64(f*p+0.5)) / p
}
