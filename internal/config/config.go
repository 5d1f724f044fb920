package config

import (
	"os"
	"strconv"

	"github.com/simone-mordue/papaja/domain/core"
)

// IntervalType selects the interval flavor reported next to point estimates.
type IntervalType string

const (
	IntervalCI  IntervalType = "CI"  // frequentist confidence interval
	IntervalHDI IntervalType = "HDI" // Bayesian highest-density interval
)

// Options holds the recognized reporting configuration. All fields have
// documented defaults; see Default.
type Options struct {
	Digits       int          // fractional digits retained by numeric formatting
	BigMark      string       // thousands-separator string
	DecimalMark  string       // decimal-point substitution string
	LeadingZero  bool         // keep the leading zero before the decimal point
	ConfLevel    float64      // interval confidence/credibility level, in (0,1)
	IntervalType IntervalType // CI or HDI
	Standardized bool         // strip transformation wrappers from term names
}

// Default returns the documented default options.
func Default() Options {
	return Options{
		Digits:       2,
		BigMark:      ",",
		DecimalMark:  ".",
		LeadingZero:  true,
		ConfLevel:    0.95,
		IntervalType: IntervalCI,
	}
}

// Validate checks option domains.
func (o Options) Validate() error {
	if o.Digits < 0 {
		return core.NewDomainError("digits", float64(o.Digits), "[0, inf)")
	}
	if o.ConfLevel <= 0 || o.ConfLevel >= 1 {
		return core.NewDomainError("confidence level", o.ConfLevel, "(0, 1)")
	}
	if o.IntervalType != IntervalCI && o.IntervalType != IntervalHDI {
		return core.NewInvalidTermError("interval type must be CI or HDI, got " + string(o.IntervalType))
	}
	return nil
}

// FromEnv reads options from PAPAJA_* environment variables on top of the
// defaults. Used by the CLI and server; library callers pass Options directly.
func FromEnv() (Options, error) {
	o := Default()

	if v := os.Getenv("PAPAJA_DIGITS"); v != "" {
		digits, err := strconv.Atoi(v)
		if err != nil {
			return o, core.NewInvalidTermError("PAPAJA_DIGITS must be an integer, got " + v)
		}
		o.Digits = digits
	}
	if v := os.Getenv("PAPAJA_BIG_MARK"); v != "" {
		o.BigMark = v
	}
	if v := os.Getenv("PAPAJA_DECIMAL_MARK"); v != "" {
		o.DecimalMark = v
	}
	if v := os.Getenv("PAPAJA_LEADING_ZERO"); v != "" {
		keep, err := strconv.ParseBool(v)
		if err != nil {
			return o, core.NewInvalidTermError("PAPAJA_LEADING_ZERO must be a boolean, got " + v)
		}
		o.LeadingZero = keep
	}
	if v := os.Getenv("PAPAJA_CONF_LEVEL"); v != "" {
		level, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return o, core.NewInvalidTermError("PAPAJA_CONF_LEVEL must be a number, got " + v)
		}
		o.ConfLevel = level
	}
	if v := os.Getenv("PAPAJA_INTERVAL_TYPE"); v != "" {
		o.IntervalType = IntervalType(v)
	}
	if v := os.Getenv("PAPAJA_STANDARDIZED"); v != "" {
		std, err := strconv.ParseBool(v)
		if err != nil {
			return o, core.NewInvalidTermError("PAPAJA_STANDARDIZED must be a boolean, got " + v)
		}
		o.Standardized = std
	}

	return o, o.Validate()
}
