package tidy

import (
	"github.com/simone-mordue/papaja/domain/apa"
	"github.com/simone-mordue/papaja/internal/config"
)

// BayesFactor tidies Bayesian estimates. The interval kind is forced to HDI
// regardless of the configured interval type.
type BayesFactor struct{}

// NewBayesFactor creates the Bayes-factor tidier.
func NewBayesFactor() *BayesFactor {
	return &BayesFactor{}
}

// Tidy produces the posterior estimate row with its highest-density
// interval. No frequentist statistic exists, so the row is estimate-only.
func (*BayesFactor) Tidy(result apa.AnalysisResult, _ config.Options) ([]apa.Row, error) {
	res, ok := result.(apa.BayesFactorResult)
	if !ok {
		return nil, unexpectedVariant("bayes_factor", result)
	}

	row := apa.Row{
		Term:         defaultTerm(res.Term, "difference"),
		Kind:         apa.RowTerm,
		Estimate:     apa.Float(res.Estimate),
		ConfLow:      apa.Float(res.HDILow),
		ConfHigh:     apa.Float(res.HDIHigh),
		ConfLevel:    apa.Float(res.CredLevel),
		IntervalKind: "HDI",
	}
	return []apa.Row{row}, nil
}

// Glance reports the Bayes factor itself as a model-level estimate.
func (*BayesFactor) Glance(result apa.AnalysisResult, _ config.Options) ([]apa.Row, error) {
	res, ok := result.(apa.BayesFactorResult)
	if !ok {
		return nil, unexpectedVariant("bayes_factor", result)
	}
	if res.BF == nil {
		return nil, nil
	}
	return []apa.Row{{Term: "bayes_factor", Kind: apa.RowModelFit, Estimate: res.BF}}, nil
}
