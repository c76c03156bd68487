package dms

import "strings"

// Locale describes the decimal and thousands separators of a numeric
// convention.
type Locale struct {
	Decimal   rune
	Thousands rune
}

var (
	// DotDecimal is the convention Parse expects: 1,234.5.
	DotDecimal = Locale{Decimal: '.', Thousands: ','}
	// CommaDecimal is the continental convention: 1.234,5.
	CommaDecimal = Locale{Decimal: ',', Thousands: '.'}
)

// ToLocale rewrites a string produced by this package, which uses '.' for
// decimals and ',' for thousands, into the locale's convention.
func (l Locale) ToLocale(s string) string {
	return swap(s, '.', ',', l.Decimal, l.Thousands)
}

// FromLocale rewrites a string in the locale's convention into the one
// Parse accepts.
func (l Locale) FromLocale(s string) string {
	return swap(s, l.Decimal, l.Thousands, '.', ',')
}

func swap(s string, fromDec, fromThou, toDec, toThou rune) string {
	if fromDec == 0 || fromThou == 0 || toDec == 0 || toThou == 0 {
		return s
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case fromDec:
			return toDec
		case fromThou:
			return toThou
		}
		return r
	}, s)
}
