package app

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/simone-mordue/papaja/domain/apa"
	"github.com/simone-mordue/papaja/internal/config"
)

// batchConcurrency bounds concurrent invocations in PrintAll. The pipeline
// is pure, so invocations need no synchronization beyond the bound.
const batchConcurrency = 4

// Printer is the reporting pipeline: dispatch, canonicalize, typeset,
// assemble. It holds no mutable state across invocations.
type Printer struct {
	registry *Registry
	opts     config.Options
	labels   apa.Labels
}

// NewPrinter creates a printer over a handler registry. Options are
// validated once here; every invocation then runs under them unchanged.
func NewPrinter(registry *Registry, opts config.Options, labels apa.Labels) (*Printer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Printer{registry: registry, opts: opts, labels: labels}, nil
}

// Options returns the printer's configuration.
func (p *Printer) Options() config.Options {
	return p.opts
}

// Print runs one full pipeline invocation. Any fatal condition aborts the
// invocation; no partially-built result is ever returned.
func (p *Printer) Print(result apa.AnalysisResult) (*apa.Result, error) {
	tables, err := p.registry.Normalize(result, p.opts)
	if err != nil {
		return nil, err
	}
	return NewAssembler(p.opts, p.labels).Assemble(tables)
}

// PrintAll runs independent invocations concurrently under a weighted
// semaphore. Results and errors are indexed like inputs; a failed input
// yields a nil result and its error, never a partial result.
func (p *Printer) PrintAll(ctx context.Context, inputs []apa.AnalysisResult) ([]*apa.Result, []error) {
	out := make([]*apa.Result, len(inputs))
	errs := make([]error, len(inputs))

	sem := semaphore.NewWeighted(batchConcurrency)
	var wg sync.WaitGroup
	for i, input := range inputs {
		if err := sem.Acquire(ctx, 1); err != nil {
			errs[i] = err
			continue
		}
		wg.Add(1)
		go func(i int, input apa.AnalysisResult) {
			defer wg.Done()
			defer sem.Release(1)
			out[i], errs[i] = p.Print(input)
		}(i, input)
	}
	wg.Wait()

	return out, errs
}
