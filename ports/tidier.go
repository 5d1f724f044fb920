package ports

import (
	"github.com/simone-mordue/papaja/domain/apa"
	"github.com/simone-mordue/papaja/internal/config"
)

// TidierPort turns one analysis-result variant into ordered per-term rows of
// the shared column vocabulary. Glance returns model-level rows (fit-quality
// measures); variants without model-level output return an empty slice.
//
// Calls are single blocking operations: a failure propagates immediately and
// no partial table is produced.
type TidierPort interface {
	Tidy(result apa.AnalysisResult, opts config.Options) ([]apa.Row, error)
	Glance(result apa.AnalysisResult, opts config.Options) ([]apa.Row, error)
}
