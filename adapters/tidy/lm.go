package tidy

import (
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/simone-mordue/papaja/domain/apa"
	"github.com/simone-mordue/papaja/internal/config"
)

// LinearModel tidies fitted linear regressions: per-coefficient rows via
// Tidy, model-level fit measures via Glance.
type LinearModel struct{}

// NewLinearModel creates the linear-model tidier.
func NewLinearModel() *LinearModel {
	return &LinearModel{}
}

// Tidy produces one row per coefficient. Missing t statistics are derived
// from estimate and standard error, p-values from t and the residual df,
// and interval bounds from the standard error at the configured level.
func (*LinearModel) Tidy(result apa.AnalysisResult, opts config.Options) ([]apa.Row, error) {
	res, ok := result.(apa.LinearModelResult)
	if !ok {
		return nil, unexpectedVariant("lm", result)
	}

	rows := make([]apa.Row, 0, len(res.Coefficients))
	for _, coef := range res.Coefficients {
		df := coef.DF
		if df == nil && res.ResidualDF > 0 {
			df = apa.Float(res.ResidualDF)
		}

		row := apa.Row{
			Term:      coef.Term,
			Kind:      apa.RowTerm,
			StatLabel: "t",
			Estimate:  apa.Float(coef.Estimate),
			ConfLow:   coef.ConfLow,
			ConfHigh:  coef.ConfHigh,
			Statistic: coef.Statistic,
			DF:        df,
			PValue:    coef.PValue,
		}

		if row.Statistic == nil && coef.StdError != nil && *coef.StdError > 0 {
			row.Statistic = apa.Float(coef.Estimate / *coef.StdError)
		}
		if row.PValue == nil && row.Statistic != nil && df != nil {
			row.PValue = apa.Float(studentP(*row.Statistic, *df))
		}
		if (row.ConfLow == nil || row.ConfHigh == nil) && coef.StdError != nil && df != nil {
			margin := studentQuantile(opts.ConfLevel, *df) * *coef.StdError
			row.ConfLow = apa.Float(coef.Estimate - margin)
			row.ConfHigh = apa.Float(coef.Estimate + margin)
			row.ConfLevel = apa.Float(opts.ConfLevel)
		}

		rows = append(rows, row)
	}
	return rows, nil
}

// Glance produces the model-level rows: R², adjusted R², the model F test,
// and information criteria. Rows without an inferential test carry only an
// estimate.
func (*LinearModel) Glance(result apa.AnalysisResult, _ config.Options) ([]apa.Row, error) {
	res, ok := result.(apa.LinearModelResult)
	if !ok {
		return nil, unexpectedVariant("lm", result)
	}

	var rows []apa.Row
	if res.RSquared != nil {
		rows = append(rows, apa.Row{
			Term: "r_squared", Kind: apa.RowModelFit,
			Estimate: res.RSquared, Bounded: true,
		})
	}
	if res.AdjRSquared != nil {
		rows = append(rows, apa.Row{
			Term: "adj_r_squared", Kind: apa.RowModelFit,
			Estimate: res.AdjRSquared, Bounded: true,
		})
	}
	if res.FStatistic != nil && res.FDF1 != nil && res.FDF2 != nil {
		row := apa.Row{
			Term: "model", Kind: apa.RowModelFit,
			StatLabel: "F",
			Statistic: res.FStatistic,
			DF:        res.FDF1,
			DF2:       res.FDF2,
		}
		dist := distuv.F{D1: *res.FDF1, D2: *res.FDF2}
		row.PValue = apa.Float(1 - dist.CDF(*res.FStatistic))
		rows = append(rows, row)
	}
	if res.AIC != nil {
		rows = append(rows, apa.Row{Term: "aic", Kind: apa.RowModelFit, Estimate: res.AIC})
	}
	if res.BIC != nil {
		rows = append(rows, apa.Row{Term: "bic", Kind: apa.RowModelFit, Estimate: res.BIC})
	}
	return rows, nil
}
