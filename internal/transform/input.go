package transform

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	gojson "github.com/goccy/go-json"

	"github.com/dayanaadylkhanova/barnum/internal/entity"
)

var (
	ErrUnexpectedInput  = errors.New("unexpected transform input")
	ErrUnknownTransform = errors.New("unknown transform")
)

// Rows reads a list of records, either typed rows or decoded JSON.
func Rows(in any) ([]entity.Row, error) {
	switch x := in.(type) {
	case nil:
		return []entity.Row{}, nil
	case []entity.Row:
		return x, nil
	case []map[string]any:
		out := make([]entity.Row, len(x))
		for i, m := range x {
			out[i] = entity.Row(m)
		}
		return out, nil
	case []any:
		out := make([]entity.Row, 0, len(x))
		for _, v := range x {
			m, ok := v.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: list item %T", ErrUnexpectedInput, v)
			}
			out = append(out, entity.Row(m))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %T is not a list", ErrUnexpectedInput, in)
	}
}

// Object reads a single record.
func Object(in any) (entity.Row, error) {
	switch x := in.(type) {
	case nil:
		return entity.Row{}, nil
	case entity.Row:
		return x, nil
	case map[string]any:
		return entity.Row(x), nil
	default:
		return nil, fmt.Errorf("%w: %T is not an object", ErrUnexpectedInput, in)
	}
}

// Number reads a numeric value. Numeric strings are accepted since the
// warehouse driver of some deployments sends decimals as text.
func Number(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case int32:
		return float64(x), true
	case uint32:
		return float64(x), true
	case gojson.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(x, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Text reads a label value. Missing and null values read as "".
func Text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case time.Time:
		return x.Format(time.RFC3339)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}
