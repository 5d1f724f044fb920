package tidy

import (
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/simone-mordue/papaja/domain/apa"
	"github.com/simone-mordue/papaja/internal/config"
)

// Anova tidies analysis-of-variance tables into per-effect rows.
type Anova struct{}

// NewAnova creates the ANOVA tidier.
func NewAnova() *Anova {
	return &Anova{}
}

// Tidy produces one row per effect. Missing p-values are derived from the F
// statistic and its degrees of freedom. When sums of squares are available,
// eta squared is reported as the effect-size estimate.
func (*Anova) Tidy(result apa.AnalysisResult, _ config.Options) ([]apa.Row, error) {
	res, ok := result.(apa.AnovaResult)
	if !ok {
		return nil, unexpectedVariant("anova", result)
	}

	rows := make([]apa.Row, 0, len(res.Terms))
	for _, term := range res.Terms {
		row := apa.Row{
			Term:      term.Term,
			Kind:      apa.RowTerm,
			StatLabel: "F",
			Statistic: term.Statistic,
			DF:        apa.Float(term.DF),
			DF2:       apa.Float(res.ResidualDF),
			PValue:    term.PValue,
		}

		if row.PValue == nil && term.Statistic != nil && term.DF > 0 && res.ResidualDF > 0 {
			dist := distuv.F{D1: term.DF, D2: res.ResidualDF}
			row.PValue = apa.Float(1 - dist.CDF(*term.Statistic))
		}

		if term.SumSq != nil && res.ResidualSumSq != nil && *term.SumSq+*res.ResidualSumSq > 0 {
			eta := *term.SumSq / (*term.SumSq + *res.ResidualSumSq)
			row.Estimate = apa.Float(eta)
			row.Bounded = true // eta squared stays within [0, 1]
		}

		rows = append(rows, row)
	}
	return rows, nil
}

// Glance returns no model-level rows.
func (*Anova) Glance(apa.AnalysisResult, config.Options) ([]apa.Row, error) {
	return nil, nil
}
