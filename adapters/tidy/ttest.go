package tidy

import (
	"github.com/simone-mordue/papaja/domain/apa"
	"github.com/simone-mordue/papaja/internal/config"
)

// TTest tidies t-test results into a single comparison row.
type TTest struct{}

// NewTTest creates the t-test tidier.
func NewTTest() *TTest {
	return &TTest{}
}

// Tidy produces the comparison row. A missing p-value is derived from the t
// statistic and its degrees of freedom; missing interval bounds are derived
// from the estimate and standard error at the configured level.
func (*TTest) Tidy(result apa.AnalysisResult, opts config.Options) ([]apa.Row, error) {
	res, ok := result.(apa.TTestResult)
	if !ok {
		return nil, unexpectedVariant("ttest", result)
	}

	row := apa.Row{
		Term:      defaultTerm(res.Term, "mean difference"),
		Kind:      apa.RowTerm,
		StatLabel: "t",
		Estimate:  res.Estimate,
		ConfLow:   res.ConfLow,
		ConfHigh:  res.ConfHigh,
		ConfLevel: res.ConfLevel,
		Statistic: res.Statistic,
		DF:        res.DF,
		PValue:    res.PValue,
	}

	if row.PValue == nil && res.Statistic != nil && res.DF != nil {
		row.PValue = apa.Float(studentP(*res.Statistic, *res.DF))
	}

	if (row.ConfLow == nil || row.ConfHigh == nil) &&
		res.Estimate != nil && res.StdError != nil && res.DF != nil {
		margin := studentQuantile(opts.ConfLevel, *res.DF) * *res.StdError
		row.ConfLow = apa.Float(*res.Estimate - margin)
		row.ConfHigh = apa.Float(*res.Estimate + margin)
		row.ConfLevel = apa.Float(opts.ConfLevel)
	}

	return []apa.Row{row}, nil
}

// Glance returns no model-level rows; a t-test has no fit measures.
func (*TTest) Glance(apa.AnalysisResult, config.Options) ([]apa.Row, error) {
	return nil, nil
}
