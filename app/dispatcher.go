package app

import (
	"fmt"

	"github.com/simone-mordue/papaja/domain/apa"
	"github.com/simone-mordue/papaja/domain/core"
	"github.com/simone-mordue/papaja/internal/config"
	"github.com/simone-mordue/papaja/ports"
)

// maxChainDepth bounds refine-and-redispatch chains. Two steps suffice for
// every registered chain; the guard catches a summarizer that returns its
// own tag.
const maxChainDepth = 4

// Normalization is a handler outcome. Exactly one field is set: Tables for a
// direct handler, Refined for a chained handler requesting re-dispatch.
type Normalization struct {
	Tables  *apa.TableSet
	Refined apa.AnalysisResult
}

// Handler resolves one variant tag into a canonical table set, or into a
// refined result to dispatch again.
type Handler interface {
	Normalize(result apa.AnalysisResult, opts config.Options) (Normalization, error)
}

// TidyHandler adapts a tidier collaborator into a direct handler: per-term
// rows from Tidy, model-level rows from Glance as a second table part.
type TidyHandler struct {
	name   string
	tidier ports.TidierPort
}

// NewTidyHandler creates a direct handler named after its analysis kind.
func NewTidyHandler(name string, tidier ports.TidierPort) *TidyHandler {
	return &TidyHandler{name: name, tidier: tidier}
}

// Normalize produces the canonical table set for result.
func (h *TidyHandler) Normalize(result apa.AnalysisResult, opts config.Options) (Normalization, error) {
	rows, err := h.tidier.Tidy(result, opts)
	if err != nil {
		return Normalization{}, fmt.Errorf("tidy %s: %w", h.name, err)
	}
	glanceRows, err := h.tidier.Glance(result, opts)
	if err != nil {
		return Normalization{}, fmt.Errorf("glance %s: %w", h.name, err)
	}

	set := apa.NewTableSet()
	set.Add("terms", apa.NewTable(h.name, rows))
	if len(glanceRows) > 0 {
		set.Add("model", apa.NewTable(h.name+" model fit", glanceRows))
	}
	return Normalization{Tables: set}, nil
}

// RefineHandler adapts the summarization collaborator into a chained
// handler: the refined object exposes a more specific tag and is dispatched
// again.
type RefineHandler struct {
	summarizer ports.SummarizerPort
}

// NewRefineHandler creates a chained handler.
func NewRefineHandler(summarizer ports.SummarizerPort) *RefineHandler {
	return &RefineHandler{summarizer: summarizer}
}

// Normalize refines the coarse result for re-dispatch.
func (h *RefineHandler) Normalize(result apa.AnalysisResult, _ config.Options) (Normalization, error) {
	refined, err := h.summarizer.Summarize(result)
	if err != nil {
		return Normalization{}, fmt.Errorf("summarize %s: %w", result.Tag(), err)
	}
	return Normalization{Refined: refined}, nil
}

// Registry maps variant tags to handlers. The registry is closed: extension
// means registering a new tag, never runtime type inspection. Loosely
// structured generic containers are deliberately never registered.
type Registry struct {
	handlers map[apa.VariantTag]Handler
}

// NewRegistry creates an empty handler registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[apa.VariantTag]Handler)}
}

// Register binds a handler to a variant tag, replacing any previous binding.
func (r *Registry) Register(tag apa.VariantTag, h Handler) {
	r.handlers[tag] = h
}

// Tags returns the registered variant tags.
func (r *Registry) Tags() []apa.VariantTag {
	tags := make([]apa.VariantTag, 0, len(r.handlers))
	for tag := range r.handlers {
		tags = append(tags, tag)
	}
	return tags
}

// Normalize resolves result to a canonical table set, following
// refine-and-redispatch chains. An unregistered tag fails with an
// unsupported-variant error naming the tag.
func (r *Registry) Normalize(result apa.AnalysisResult, opts config.Options) (*apa.TableSet, error) {
	current := result
	for depth := 0; depth < maxChainDepth; depth++ {
		handler, ok := r.handlers[current.Tag()]
		if !ok {
			return nil, core.NewUnsupportedVariantError(string(current.Tag()))
		}

		outcome, err := handler.Normalize(current, opts)
		if err != nil {
			return nil, err
		}
		if outcome.Tables != nil {
			return outcome.Tables, nil
		}
		if outcome.Refined == nil {
			return nil, fmt.Errorf("handler for tag %q produced neither table nor refinement", current.Tag())
		}
		current = outcome.Refined
	}
	return nil, fmt.Errorf("dispatch chain exceeded %d steps starting from tag %q", maxChainDepth, result.Tag())
}
