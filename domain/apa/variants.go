package apa

// ============================================================================
// VARIANT TAGS
// ============================================================================

// VariantTag identifies which statistical procedure produced an analysis
// result. The tag alone determines dispatch; handler resolution never
// inspects the concrete type beyond its tag.
type VariantTag string

const (
	// Direct variants: a registered tidier produces the canonical table.
	VariantTTest       VariantTag = "ttest"
	VariantCorrelation VariantTag = "correlation"
	VariantAnova       VariantTag = "anova"
	VariantLinearModel VariantTag = "lm"
	VariantChiSquare   VariantTag = "chisq"
	VariantBayesFactor VariantTag = "bayes_factor"

	// Coarse variants: raw samples refined by the summarization collaborator
	// into one of the direct variants, then re-dispatched.
	VariantSampleComparison VariantTag = "sample_comparison"
	VariantPairedSamples    VariantTag = "paired_samples"
	VariantGroupedSamples   VariantTag = "grouped_samples"
)

// AnalysisResult is the tagged, opaque input from a statistics procedure.
// Read-only to the reporting core.
type AnalysisResult interface {
	Tag() VariantTag
}

// ============================================================================
// DIRECT VARIANTS
// ============================================================================

// TTestResult holds the output of a one- or two-sample t-test. Optional
// fields are nil when the producing procedure did not report them; the tidier
// derives what it can from the fields that are present.
type TTestResult struct {
	Method    string   `json:"method,omitempty"` // e.g. "Welch two-sample t-test"
	Term      string   `json:"term,omitempty"`   // comparison label, defaults to "mean difference"
	Estimate  *float64 `json:"estimate,omitempty"`
	StdError  *float64 `json:"std_error,omitempty"`
	Statistic *float64 `json:"statistic,omitempty"`
	DF        *float64 `json:"df,omitempty"`
	PValue    *float64 `json:"p_value,omitempty"`
	ConfLow   *float64 `json:"conf_low,omitempty"`
	ConfHigh  *float64 `json:"conf_high,omitempty"`
	ConfLevel *float64 `json:"conf_level,omitempty"` // level of a supplied interval
	N         int      `json:"n,omitempty"`
}

func (TTestResult) Tag() VariantTag { return VariantTTest }

// CorrelationResult holds a product-moment correlation. Estimate is r and is
// bounded within [-1, 1].
type CorrelationResult struct {
	Method    string   `json:"method,omitempty"`
	Term      string   `json:"term,omitempty"` // pair label, defaults to "cor"
	Estimate  *float64 `json:"estimate,omitempty"`
	Statistic *float64 `json:"statistic,omitempty"`
	DF        *float64 `json:"df,omitempty"`
	PValue    *float64 `json:"p_value,omitempty"`
	ConfLow   *float64 `json:"conf_low,omitempty"`
	ConfHigh  *float64 `json:"conf_high,omitempty"`
	ConfLevel *float64 `json:"conf_level,omitempty"` // level of a supplied interval
	N         int      `json:"n,omitempty"`
}

func (CorrelationResult) Tag() VariantTag { return VariantCorrelation }

// AnovaTerm is one effect row of an ANOVA table.
type AnovaTerm struct {
	Term      string   `json:"term"`
	SumSq     *float64 `json:"sum_sq,omitempty"`
	DF        float64  `json:"df"`
	Statistic *float64 `json:"statistic,omitempty"` // F
	PValue    *float64 `json:"p_value,omitempty"`
}

// AnovaResult holds a one- or multi-way analysis of variance.
type AnovaResult struct {
	Terms         []AnovaTerm `json:"terms"`
	ResidualDF    float64     `json:"residual_df"`
	ResidualSumSq *float64    `json:"residual_sum_sq,omitempty"`
}

func (AnovaResult) Tag() VariantTag { return VariantAnova }

// Coefficient is one predictor row of a fitted linear model.
type Coefficient struct {
	Term      string   `json:"term"`
	Estimate  float64  `json:"estimate"`
	StdError  *float64 `json:"std_error,omitempty"`
	Statistic *float64 `json:"statistic,omitempty"` // t
	DF        *float64 `json:"df,omitempty"`        // residual df when reported per-term
	PValue    *float64 `json:"p_value,omitempty"`
	ConfLow   *float64 `json:"conf_low,omitempty"`
	ConfHigh  *float64 `json:"conf_high,omitempty"`
}

// LinearModelResult holds a fitted linear regression: per-coefficient rows
// plus model-level fit measures.
type LinearModelResult struct {
	Coefficients []Coefficient `json:"coefficients"`
	ResidualDF   float64       `json:"residual_df"`
	RSquared     *float64      `json:"r_squared,omitempty"`
	AdjRSquared  *float64      `json:"adj_r_squared,omitempty"`
	Sigma        *float64      `json:"sigma,omitempty"`
	FStatistic   *float64      `json:"f_statistic,omitempty"`
	FDF1         *float64      `json:"f_df1,omitempty"`
	FDF2         *float64      `json:"f_df2,omitempty"`
	AIC          *float64      `json:"aic,omitempty"`
	BIC          *float64      `json:"bic,omitempty"`
	N            int           `json:"n,omitempty"`
}

func (LinearModelResult) Tag() VariantTag { return VariantLinearModel }

// ChiSquareResult holds a chi-square test of independence or goodness of fit.
type ChiSquareResult struct {
	Term      string   `json:"term,omitempty"` // defaults to "chi squared"
	Statistic float64  `json:"statistic"`
	DF        float64  `json:"df"`
	PValue    *float64 `json:"p_value,omitempty"`
	N         int      `json:"n"`
	CramersV  *float64 `json:"cramers_v,omitempty"` // effect size, bounded in [0, 1]
}

func (ChiSquareResult) Tag() VariantTag { return VariantChiSquare }

// BayesFactorResult holds a Bayesian estimate with a highest-density interval.
type BayesFactorResult struct {
	Term      string   `json:"term,omitempty"` // defaults to "difference"
	Estimate  float64  `json:"estimate"`       // posterior point estimate
	HDILow    float64  `json:"hdi_low"`
	HDIHigh   float64  `json:"hdi_high"`
	CredLevel float64  `json:"cred_level"` // credibility mass of the HDI, in (0,1)
	BF        *float64 `json:"bf,omitempty"`
}

func (BayesFactorResult) Tag() VariantTag { return VariantBayesFactor }

// ============================================================================
// COARSE VARIANTS (refined via summarization, then re-dispatched)
// ============================================================================

// Sample is a named vector of raw observations.
type Sample struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// SampleComparison carries two independent raw samples. The summarization
// collaborator refines it into a Welch t-test result.
type SampleComparison struct {
	X Sample `json:"x"`
	Y Sample `json:"y"`
}

func (SampleComparison) Tag() VariantTag { return VariantSampleComparison }

// PairedSamples carries two aligned raw samples. Refined into a correlation
// result.
type PairedSamples struct {
	XName string    `json:"x_name,omitempty"`
	YName string    `json:"y_name,omitempty"`
	X     []float64 `json:"x"`
	Y     []float64 `json:"y"`
}

func (PairedSamples) Tag() VariantTag { return VariantPairedSamples }

// GroupedSamples carries k named raw samples of one outcome. Refined into a
// one-way ANOVA result.
type GroupedSamples struct {
	Outcome string   `json:"outcome,omitempty"`
	Groups  []Sample `json:"groups"`
}

func (GroupedSamples) Tag() VariantTag { return VariantGroupedSamples }
