// Package papaja converts heterogeneous statistical-analysis results into a
// canonical report structure and typesets its numbers into APA-style
// strings. The public entry point is Print; reusable pipelines are built
// with NewPrinter.
package papaja

import (
	"github.com/simone-mordue/papaja/adapters/summarize"
	"github.com/simone-mordue/papaja/adapters/tidy"
	"github.com/simone-mordue/papaja/app"
	"github.com/simone-mordue/papaja/domain/apa"
	"github.com/simone-mordue/papaja/internal/config"
)

// Interval kinds accepted by WithIntervalType.
const (
	CI  = config.IntervalCI
	HDI = config.IntervalHDI
)

// Option adjusts the reporting configuration.
type Option func(*settings)

type settings struct {
	opts   config.Options
	labels apa.Labels
}

// WithDigits sets the fractional digits retained by numeric formatting.
func WithDigits(n int) Option {
	return func(s *settings) { s.opts.Digits = n }
}

// WithBigMark sets the thousands-separator string.
func WithBigMark(mark string) Option {
	return func(s *settings) { s.opts.BigMark = mark }
}

// WithDecimalMark sets the decimal-point substitution string.
func WithDecimalMark(mark string) Option {
	return func(s *settings) { s.opts.DecimalMark = mark }
}

// WithLeadingZero controls whether a leading zero is kept before the
// decimal point for unbounded values.
func WithLeadingZero(keep bool) Option {
	return func(s *settings) { s.opts.LeadingZero = keep }
}

// WithConfLevel sets the interval confidence/credibility level, in (0,1).
func WithConfLevel(level float64) Option {
	return func(s *settings) { s.opts.ConfLevel = level }
}

// WithIntervalType selects CI or HDI interval rendering.
func WithIntervalType(t config.IntervalType) Option {
	return func(s *settings) { s.opts.IntervalType = t }
}

// WithStandardized strips transformation wrappers from term names and marks
// them in display labels.
func WithStandardized(on bool) Option {
	return func(s *settings) { s.opts.Standardized = on }
}

// WithLabels attaches display labels, keyed by term identifier. Labels are
// display-only and never consulted by numeric or dispatch logic.
func WithLabels(labels map[string]string) Option {
	return func(s *settings) {
		if s.labels == nil {
			s.labels = make(apa.Labels, len(labels))
		}
		for k, v := range labels {
			s.labels[k] = v
		}
	}
}

// WithOptions replaces the whole option set, e.g. one built by
// config.FromEnv.
func WithOptions(opts config.Options) Option {
	return func(s *settings) { s.opts = opts }
}

// DefaultRegistry binds every supported variant tag to its handler: direct
// tidiers for test results, the summarization collaborator for raw-sample
// variants. Generic untyped containers are deliberately not registered.
func DefaultRegistry() *app.Registry {
	r := app.NewRegistry()

	r.Register(apa.VariantTTest, app.NewTidyHandler("t-test", tidy.NewTTest()))
	r.Register(apa.VariantCorrelation, app.NewTidyHandler("correlation", tidy.NewCorrelation()))
	r.Register(apa.VariantAnova, app.NewTidyHandler("ANOVA", tidy.NewAnova()))
	r.Register(apa.VariantLinearModel, app.NewTidyHandler("linear model", tidy.NewLinearModel()))
	r.Register(apa.VariantChiSquare, app.NewTidyHandler("chi-square test", tidy.NewChiSquare()))
	r.Register(apa.VariantBayesFactor, app.NewTidyHandler("Bayesian estimate", tidy.NewBayesFactor()))

	refine := app.NewRefineHandler(summarize.NewSummarizer())
	r.Register(apa.VariantSampleComparison, refine)
	r.Register(apa.VariantPairedSamples, refine)
	r.Register(apa.VariantGroupedSamples, refine)

	return r
}

// NewPrinter builds a reusable pipeline over the default registry.
func NewPrinter(options ...Option) (*app.Printer, error) {
	s := settings{opts: config.Default()}
	for _, o := range options {
		o(&s)
	}
	return app.NewPrinter(DefaultRegistry(), s.opts, s.labels)
}

// Print converts one analysis result into APA report strings under the
// given options.
func Print(result apa.AnalysisResult, options ...Option) (*apa.Result, error) {
	printer, err := NewPrinter(options...)
	if err != nil {
		return nil, err
	}
	return printer.Print(result)
}
