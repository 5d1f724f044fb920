// Package summarize implements the summarization collaborator: it refines
// coarse raw-sample objects into specific analysis-result variants that the
// dispatcher can resolve directly.
package summarize

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/simone-mordue/papaja/domain/apa"
	"github.com/simone-mordue/papaja/domain/core"
)

// Summarizer refines coarse sample variants into test-result variants.
type Summarizer struct{}

// NewSummarizer creates the summarization collaborator.
func NewSummarizer() *Summarizer {
	return &Summarizer{}
}

// Summarize refines result into a more specific variant for re-dispatch.
func (s *Summarizer) Summarize(result apa.AnalysisResult) (apa.AnalysisResult, error) {
	switch res := result.(type) {
	case apa.SampleComparison:
		return s.welchTTest(res)
	case apa.PairedSamples:
		return s.pearson(res)
	case apa.GroupedSamples:
		return s.onewayAnova(res)
	default:
		return nil, core.NewUnsupportedVariantError(string(result.Tag()))
	}
}

// welchTTest computes Welch's two-sample t-test with the
// Welch-Satterthwaite degrees of freedom. Interval bounds are left to the
// tidier, which derives them at the configured confidence level.
func (s *Summarizer) welchTTest(res apa.SampleComparison) (apa.AnalysisResult, error) {
	x, y := res.X.Values, res.Y.Values
	if len(x) < 2 || len(y) < 2 {
		return nil, core.NewInsufficientDataError(2, minInt(len(x), len(y)))
	}

	meanX, _ := stats.Mean(x)
	meanY, _ := stats.Mean(y)
	varX, _ := stats.SampleVariance(x)
	varY, _ := stats.SampleVariance(y)
	n1, n2 := float64(len(x)), float64(len(y))

	se := math.Sqrt(varX/n1 + varY/n2)
	if se == 0 {
		return nil, fmt.Errorf("%w: zero variance in both samples", core.ErrInsufficientData)
	}
	estimate := meanX - meanY
	t := estimate / se
	df := math.Pow(varX/n1+varY/n2, 2) /
		(math.Pow(varX/n1, 2)/(n1-1) + math.Pow(varY/n2, 2)/(n2-1))
	p := 2 * distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}.CDF(-math.Abs(t))

	return apa.TTestResult{
		Method:    "Welch two-sample t-test",
		Term:      comparisonTerm(res.X.Name, res.Y.Name),
		Estimate:  apa.Float(estimate),
		StdError:  apa.Float(se),
		Statistic: apa.Float(t),
		DF:        apa.Float(df),
		PValue:    apa.Float(p),
		N:         len(x) + len(y),
	}, nil
}

// pearson computes the product-moment correlation of two aligned samples.
// The derived t statistic, p-value, and interval are left to the tidier.
func (s *Summarizer) pearson(res apa.PairedSamples) (apa.AnalysisResult, error) {
	if len(res.X) != len(res.Y) {
		return nil, fmt.Errorf("%w: samples have lengths %d and %d",
			core.ErrInsufficientData, len(res.X), len(res.Y))
	}
	if len(res.X) < 4 {
		return nil, core.NewInsufficientDataError(4, len(res.X))
	}

	r, err := stats.Correlation(res.X, res.Y)
	if err != nil {
		return nil, fmt.Errorf("correlation: %w", err)
	}

	return apa.CorrelationResult{
		Method:   "Pearson product-moment correlation",
		Term:     comparisonTerm(res.XName, res.YName),
		Estimate: apa.Float(r),
		N:        len(res.X),
	}, nil
}

// onewayAnova computes a one-way between-groups analysis of variance.
func (s *Summarizer) onewayAnova(res apa.GroupedSamples) (apa.AnalysisResult, error) {
	if len(res.Groups) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 groups, got %d",
			core.ErrInsufficientData, len(res.Groups))
	}

	var all []float64
	for _, g := range res.Groups {
		if len(g.Values) < 2 {
			return nil, core.NewInsufficientDataError(2, len(g.Values))
		}
		all = append(all, g.Values...)
	}
	grandMean, _ := stats.Mean(all)

	ssBetween := 0.0
	ssWithin := 0.0
	for _, g := range res.Groups {
		groupMean, _ := stats.Mean(g.Values)
		ssBetween += float64(len(g.Values)) * (groupMean - grandMean) * (groupMean - grandMean)
		for _, v := range g.Values {
			ssWithin += (v - groupMean) * (v - groupMean)
		}
	}

	dfBetween := float64(len(res.Groups) - 1)
	dfWithin := float64(len(all) - len(res.Groups))
	if ssWithin == 0 || dfWithin <= 0 {
		return nil, fmt.Errorf("%w: no within-group variance", core.ErrInsufficientData)
	}

	f := (ssBetween / dfBetween) / (ssWithin / dfWithin)
	p := 1 - distuv.F{D1: dfBetween, D2: dfWithin}.CDF(f)

	term := res.Outcome
	if term == "" {
		term = "group"
	}
	return apa.AnovaResult{
		Terms: []apa.AnovaTerm{{
			Term:      term,
			SumSq:     apa.Float(ssBetween),
			DF:        dfBetween,
			Statistic: apa.Float(f),
			PValue:    apa.Float(p),
		}},
		ResidualDF:    dfWithin,
		ResidualSumSq: apa.Float(ssWithin),
	}, nil
}

// comparisonTerm builds a raw comparison label from two sample names.
func comparisonTerm(x, y string) string {
	if x == "" || y == "" {
		return ""
	}
	return fmt.Sprintf("%s - %s", x, y)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
