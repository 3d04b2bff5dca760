// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"math"
	"strings"

	"coop-budget/internal/report"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders amounts with the grouping and decimal marks of a locale.
type Formatter struct {
	p        *message.Printer
	currency string
}

func NewFormatter(lang language.Tag, currency string) *Formatter {
	return &Formatter{p: message.NewPrinter(lang), currency: currency}
}

// ParseLocale parses a BCP 47 tag such as "fr" or "en-US". Unknown or empty
// tags fall back to French.
func ParseLocale(s string) language.Tag {
	if strings.TrimSpace(s) == "" {
		return language.French
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.French
	}
	return tag
}

// Amount formats a money amount rounded to cents, e.g. "1,234.50 MAD".
func (f *Formatter) Amount(x float64) string {
	s := f.number(x)
	if f.currency == "" {
		return s
	}
	return s + " " + f.currency
}

// Signed is Amount with an explicit "+" on positive amounts.
func (f *Formatter) Signed(x float64) string {
	if x > 0 {
		return "+" + f.Amount(x)
	}
	return f.Amount(x)
}

// Quantity formats a unit count, without decimals when it is whole.
func (f *Formatter) Quantity(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return report.FormatMoney(x)
	}
	if x == math.Trunc(x) {
		return f.p.Sprintf("%.0f", x)
	}
	return f.p.Sprintf("%.2f", x)
}

func (f *Formatter) number(x float64) string {
	m, ok := report.Money(x)
	if !ok {
		return report.FormatMoney(x)
	}
	return f.p.Sprintf("%.2f", m.InexactFloat64())
}
