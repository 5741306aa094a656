package timecalc

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// FormatDuration returns a compact label such as "1h 30m" or "45s".
func FormatDuration(d time.Duration) string {
	seconds := clampSeconds(d)
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if m > 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%ds", s)
}

// FormatDurationHHMMSS formats d as HH:MM:SS. Negative durations render as zero.
func FormatDurationHHMMSS(d time.Duration) string {
	seconds := clampSeconds(d)
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatDurationHM formats d as "HHhMM", e.g. "08h05".
func FormatDurationHM(d time.Duration) string {
	seconds := clampSeconds(d)
	return fmt.Sprintf("%02dh%02d", seconds/3600, (seconds%3600)/60)
}

func clampSeconds(d time.Duration) int64 {
	if d < 0 {
		return 0
	}
	return int64(d / time.Second)
}

// FormatNumber renders x with a fixed number of decimals using pt-BR
// separators ("1.234,57"). NaN and infinities render as zero.
func FormatNumber(x float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	x = finite(x)
	pow := math.Pow(10, float64(decimals))
	x = math.Round(x*pow) / pow
	if x == 0 {
		x = 0 // drops the sign of -0
	}
	return printer.Sprintf(fmt.Sprintf("%%.%df", decimals), x)
}

// FormatCurrency renders x as Brazilian reais, e.g. "R$ 1.234,56".
func FormatCurrency(x float64) string {
	s := FormatNumber(x, 2)
	if neg, ok := strings.CutPrefix(s, "-"); ok {
		return "-R$ " + neg
	}
	return "R$ " + s
}

// Money formats a decimal amount as currency.
func Money(d decimal.Decimal) string {
	return FormatCurrency(d.Round(2).InexactFloat64())
}

// Number formats a decimal with the given precision.
func Number(d decimal.Decimal, decimals int) string {
	return FormatNumber(d.InexactFloat64(), decimals)
}

func finite(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return x
}
