package tidy

import (
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/simone-mordue/papaja/domain/apa"
	"github.com/simone-mordue/papaja/internal/config"
)

// ChiSquare tidies chi-square tests into a single row. The sample size is
// carried on the row so the assembler can report it inside the statistic,
// per the χ²(df, n = N) convention.
type ChiSquare struct{}

// NewChiSquare creates the chi-square tidier.
func NewChiSquare() *ChiSquare {
	return &ChiSquare{}
}

// Tidy produces the test row. A missing p-value is derived from the χ²
// statistic and its degrees of freedom; Cramér's V, when reported, becomes
// the bounded effect-size estimate.
func (*ChiSquare) Tidy(result apa.AnalysisResult, _ config.Options) ([]apa.Row, error) {
	res, ok := result.(apa.ChiSquareResult)
	if !ok {
		return nil, unexpectedVariant("chisq", result)
	}

	row := apa.Row{
		Term:      defaultTerm(res.Term, "chi squared"),
		Kind:      apa.RowTerm,
		StatLabel: "χ²",
		Statistic: apa.Float(res.Statistic),
		DF:        apa.Float(res.DF),
		PValue:    res.PValue,
	}
	if res.N > 0 {
		row.N = apa.Float(float64(res.N))
	}
	if row.PValue == nil && res.DF > 0 {
		dist := distuv.ChiSquared{K: res.DF}
		row.PValue = apa.Float(1 - dist.CDF(res.Statistic))
	}
	if res.CramersV != nil {
		row.Estimate = res.CramersV
		row.Bounded = true // Cramér's V stays within [0, 1]
	}

	return []apa.Row{row}, nil
}

// Glance returns no model-level rows.
func (*ChiSquare) Glance(apa.AnalysisResult, config.Options) ([]apa.Row, error) {
	return nil, nil
}
