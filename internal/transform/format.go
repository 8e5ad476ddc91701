package transform

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const nbsp = "\u00a0"

var fr = message.NewPrinter(language.French)

// FormatNumber renders the integer part of n with French digit grouping.
func FormatNumber(n float64) string {
	return fr.Sprint(number.Decimal(math.Floor(n), number.MaxFractionDigits(0)))
}

// FormatPercentage renders a ratio as a rounded French percentage, 0.42 → "42 %".
func FormatPercentage(ratio float64) string {
	return fr.Sprint(number.Decimal(math.Round(ratio*100), number.MaxFractionDigits(0))) + nbsp + "%"
}

// FormatEuro renders an amount with two decimals and the euro sign.
func FormatEuro(n float64) string {
	return fr.Sprint(number.Decimal(n, number.Scale(2))) + nbsp + "€"
}

// FormatDuration renders a decoded interval as minutes and seconds. Durations
// of an hour or more are not expected and render as "...".
func FormatDuration(parts map[string]any) string {
	if h, ok := Number(parts["hours"]); ok && h != 0 {
		return "..."
	}
	m, _ := Number(parts["minutes"])
	s, _ := Number(parts["seconds"])
	return strconv.Itoa(int(m)) + " min. " + strconv.Itoa(int(s)) + " s."
}

func oneDecimal(f float64) string { return strconv.FormatFloat(f, 'f', 1, 64) }
