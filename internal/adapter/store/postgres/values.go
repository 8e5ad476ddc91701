package postgres

import (
	"math/big"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// normalizeValue turns a decoded column value into a JSON friendly one.
// Dates become calendar strings, timestamps are moved to UTC, numerics become
// numbers and intervals are split into their non-zero clock parts.
func normalizeValue(oid uint32, v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case time.Time:
		if oid == pgtype.DateOID {
			return x.Format(time.DateOnly)
		}
		return x.UTC()
	case pgtype.Numeric:
		return numericValue(x)
	case pgtype.Interval:
		return intervalValue(x)
	case []byte:
		return string(x)
	case int32:
		return int64(x)
	case int16:
		return int64(x)
	case float32:
		return float64(x)
	default:
		return v
	}
}

func numericValue(n pgtype.Numeric) any {
	if !n.Valid || n.NaN {
		return nil
	}
	if n.Exp >= 0 && n.Int != nil {
		i := new(big.Int).Mul(n.Int, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n.Exp)), nil))
		if i.IsInt64() {
			return i.Int64()
		}
	}
	f, err := n.Float64Value()
	if err != nil || !f.Valid {
		return nil
	}
	return f.Float64
}

func intervalValue(iv pgtype.Interval) any {
	if !iv.Valid {
		return nil
	}
	d := time.Duration(iv.Microseconds) * time.Microsecond
	parts := map[string]any{}
	add := func(k string, n int64) {
		if n != 0 {
			parts[k] = n
		}
	}
	add("months", int64(iv.Months))
	add("days", int64(iv.Days))
	add("hours", int64(d/time.Hour))
	add("minutes", int64(d%time.Hour/time.Minute))
	add("seconds", int64(d%time.Minute/time.Second))
	add("milliseconds", int64(d%time.Second/time.Millisecond))
	return parts
}
