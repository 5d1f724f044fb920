// Package typeset formats scalars and intervals into strings following APA
// typographic conventions. All functions are pure and stateless.
package typeset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/simone-mordue/papaja/domain/core"
)

// NotAvailable is the fixed marker rendered for NaN or missing input.
const NotAvailable = "NA"

// Interval kinds understood by PrintInterval.
const (
	KindCI  = "CI"
	KindHDI = "HDI"
)

// Number configures scalar formatting.
type Number struct {
	Digits      int    // fractional digits retained
	BigMark     string // thousands separator, empty for none
	DecimalMark string // decimal point substitution, empty means "."
	LeadingZero bool   // keep the leading zero before the decimal point
}

// DefaultNumber returns the documented formatting defaults.
func DefaultNumber() Number {
	return Number{Digits: 2, BigMark: ",", DecimalMark: ".", LeadingZero: true}
}

// Printnum rounds value to f.Digits fractional digits using
// round-half-to-even and renders it with the configured separators. NaN
// yields the NotAvailable marker, never an error.
//
// Suppressing the leading zero is valid only for values whose magnitude is
// known to stay within [-1, 1]; the caller is responsible for that
// precondition.
func Printnum(value float64, f Number) string {
	if math.IsNaN(value) {
		return NotAvailable
	}
	if math.IsInf(value, 0) {
		if value > 0 {
			return "Inf"
		}
		return "-Inf"
	}

	digits := f.Digits
	if digits < 0 {
		digits = 0
	}
	mark := f.DecimalMark
	if mark == "" {
		mark = "."
	}

	scale := math.Pow(10, float64(digits))
	rounded := math.RoundToEven(value*scale) / scale
	s := strconv.FormatFloat(rounded, 'f', digits, 64)

	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}

	intPart := s
	fracPart := ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		intPart, fracPart = s[:dot], s[dot+1:]
	}

	suppressZero := !f.LeadingZero && digits > 0 && intPart == "0"
	out := ""
	if !suppressZero {
		out = groupDigits(intPart, f.BigMark)
	}
	if digits > 0 {
		out += mark + fracPart
	}
	if negative {
		out = "-" + out
	}
	return out
}

// groupDigits inserts sep between every three digits of an integer string.
func groupDigits(s, sep string) string {
	if sep == "" || len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// Printp typesets a p value with three fractional digits, suppressed leading
// zero, and the conventional boundary cases. Values outside [0, 1] are a
// domain error; NaN yields the NotAvailable marker.
func Printp(p float64) (string, error) {
	return PrintpWith(p, 3, ".")
}

// PrintpWith is Printp with explicit digits and decimal mark. Leading-zero
// suppression is always on for p values.
func PrintpWith(p float64, digits int, decimalMark string) (string, error) {
	if math.IsNaN(p) {
		return NotAvailable, nil
	}
	if p < 0 || p > 1 {
		return "", core.NewDomainError("p value", p, "[0, 1]")
	}
	if p < 0.001 {
		return "< " + strings.Replace(".001", ".", nonEmptyMark(decimalMark), 1), nil
	}
	if p > 0.999 {
		return "> " + strings.Replace(".999", ".", nonEmptyMark(decimalMark), 1), nil
	}
	return Printnum(p, Number{Digits: digits, DecimalMark: decimalMark, LeadingZero: false}), nil
}

func nonEmptyMark(mark string) string {
	if mark == "" {
		return "."
	}
	return mark
}

// PrintInterval renders a two-sided interval as
// "[<kind> <level>%: <lower>, <upper>]". confLevel must lie in (0, 1).
func PrintInterval(lower, upper, confLevel float64, kind string, f Number) (string, error) {
	if confLevel <= 0 || confLevel >= 1 {
		return "", core.NewDomainError("confidence level", confLevel, "(0, 1)")
	}
	// Round away float artifacts like 0.95*100 = 95.00000000000001 before
	// the shortest-form render.
	level := math.Round(confLevel*100*1e8) / 1e8
	levelStr := strconv.FormatFloat(level, 'f', -1, 64)
	return fmt.Sprintf("[%s %s%%: %s, %s]",
		kind, levelStr, Printnum(lower, f), Printnum(upper, f)), nil
}

// PrintConfint renders a frequentist confidence interval.
func PrintConfint(lower, upper, confLevel float64, f Number) (string, error) {
	return PrintInterval(lower, upper, confLevel, KindCI, f)
}

// PrintHDInt renders a Bayesian highest-density interval.
func PrintHDInt(lower, upper, credLevel float64, f Number) (string, error) {
	return PrintInterval(lower, upper, credLevel, KindHDI, f)
}
