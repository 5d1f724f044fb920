package ports

import (
	"github.com/simone-mordue/papaja/domain/apa"
)

// SummarizerPort refines a coarse analysis object into a more specific
// variant, exposing a tag the dispatcher can resolve directly.
type SummarizerPort interface {
	Summarize(result apa.AnalysisResult) (apa.AnalysisResult, error)
}
