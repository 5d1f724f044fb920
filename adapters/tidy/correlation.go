package tidy

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/simone-mordue/papaja/domain/apa"
	"github.com/simone-mordue/papaja/internal/config"
)

// Correlation tidies product-moment correlation results.
type Correlation struct{}

// NewCorrelation creates the correlation tidier.
func NewCorrelation() *Correlation {
	return &Correlation{}
}

// Tidy produces the correlation row. The t statistic is derived from r and
// n when absent, the p-value from t and df, and the interval bounds via the
// Fisher z transformation at the configured level.
func (*Correlation) Tidy(result apa.AnalysisResult, opts config.Options) ([]apa.Row, error) {
	res, ok := result.(apa.CorrelationResult)
	if !ok {
		return nil, unexpectedVariant("correlation", result)
	}

	row := apa.Row{
		Term:      defaultTerm(res.Term, "cor"),
		Kind:      apa.RowTerm,
		StatLabel: "t",
		Bounded:   true, // r stays within [-1, 1]
		Estimate:  res.Estimate,
		ConfLow:   res.ConfLow,
		ConfHigh:  res.ConfHigh,
		ConfLevel: res.ConfLevel,
		Statistic: res.Statistic,
		DF:        res.DF,
		PValue:    res.PValue,
	}

	if row.Statistic == nil && res.Estimate != nil && res.N > 2 {
		r := *res.Estimate
		if math.Abs(r) < 1 {
			df := float64(res.N - 2)
			t := r * math.Sqrt(df) / math.Sqrt(1-r*r)
			row.Statistic = apa.Float(t)
			row.DF = apa.Float(df)
		}
	}
	if row.DF == nil && res.N > 2 {
		row.DF = apa.Float(float64(res.N - 2))
	}
	if row.PValue == nil && row.Statistic != nil && row.DF != nil {
		row.PValue = apa.Float(studentP(*row.Statistic, *row.DF))
	}

	if (row.ConfLow == nil || row.ConfHigh == nil) && res.Estimate != nil && res.N > 3 {
		lo, hi := fisherInterval(*res.Estimate, res.N, opts.ConfLevel)
		row.ConfLow = apa.Float(lo)
		row.ConfHigh = apa.Float(hi)
		row.ConfLevel = apa.Float(opts.ConfLevel)
	}

	return []apa.Row{row}, nil
}

// Glance returns no model-level rows.
func (*Correlation) Glance(apa.AnalysisResult, config.Options) ([]apa.Row, error) {
	return nil, nil
}

// fisherInterval computes the confidence interval of r via the Fisher z
// transformation with standard error 1/sqrt(n-3).
func fisherInterval(r float64, n int, confLevel float64) (lower, upper float64) {
	z := math.Atanh(r)
	se := 1 / math.Sqrt(float64(n-3))
	crit := distuv.Normal{Mu: 0, Sigma: 1}.Quantile(1 - (1-confLevel)/2)
	return math.Tanh(z - crit*se), math.Tanh(z + crit*se)
}
