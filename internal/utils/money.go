package utils

import (
	"strings"

	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain"
)

// FormatMoney renders an amount with thousand separators, e.g. "ETB 3,000.00".
func FormatMoney(m domain.Money, currency string) string {
	s := m.String()
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	out := sign + formatThousand(whole) + "." + frac
	if currency == "" {
		return out
	}
	return currency + " " + out
}

func formatThousand(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var out strings.Builder
	for i, c := range digits {
		if i != 0 && (len(digits)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(c)
	}
	return out.String()
}
