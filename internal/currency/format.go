// Package currency renders amounts for display. Stored and transmitted
// amounts stay plain integers; formatting is presentation only.
package currency

import (
	"strconv"
	"strings"
)

var symbols = map[string]string{
	"NGN": "₦",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
}

// Format renders an integer amount in en-NG style: currency symbol,
// digits grouped in threes, no decimal part. Unknown codes fall back to
// the code itself as a prefix.
func Format(code string, amount int64) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	symbol, ok := symbols[code]
	if !ok {
		symbol = code + " "
	}

	negative := amount < 0
	if negative {
		amount = -amount
	}

	grouped := groupThousands(strconv.FormatInt(amount, 10))
	if negative {
		return "-" + symbol + grouped
	}
	return symbol + grouped
}

// FormatNGN is the common case: the naira sign with grouped digits.
func FormatNGN(amount int64) string {
	return Format("NGN", amount)
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
