// Package tidy implements the tidying collaborator: one tidier per variant,
// each turning an analysis result into ordered rows of the shared column
// vocabulary. Tidiers derive missing statistics (p-values, confidence
// bounds) from the fields that are present, using the matching sampling
// distribution.
package tidy

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/simone-mordue/papaja/domain/apa"
)

// unexpectedVariant reports an adapter wired to the wrong tag. This is a
// registry wiring bug, not a dispatch failure.
func unexpectedVariant(tidier string, result apa.AnalysisResult) error {
	return fmt.Errorf("%s tidier received variant %q", tidier, result.Tag())
}

// studentP returns the two-sided p-value of a t statistic with nu degrees
// of freedom.
func studentP(t, nu float64) float64 {
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: nu}
	return 2 * dist.CDF(-math.Abs(t))
}

// studentQuantile returns the critical t value for a two-sided interval at
// the given confidence level.
func studentQuantile(confLevel, nu float64) float64 {
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: nu}
	return dist.Quantile(1 - (1-confLevel)/2)
}

// defaultTerm substitutes a fallback for an empty term label.
func defaultTerm(term, fallback string) string {
	if term == "" {
		return fallback
	}
	return term
}
