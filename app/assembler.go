package app

import (
	"fmt"
	"math"
	"strings"

	"github.com/simone-mordue/papaja/domain/apa"
	"github.com/simone-mordue/papaja/internal/canon"
	"github.com/simone-mordue/papaja/internal/config"
	"github.com/simone-mordue/papaja/internal/typeset"
)

// modelFitGroup is the nested key holding model-level entries.
const modelFitGroup = "modelfit"

// fullResultJoin separates the point estimate from its inferential
// statistic in merged full-result strings: estimate first, then statistic.
const fullResultJoin = ", "

// AssemblyState tracks assembly progress. Finalized is terminal; the
// returned container is immutable thereafter.
type AssemblyState int

const (
	StateEmpty AssemblyState = iota
	StateTableAssigned
	StateLabelsAttached
	StateStatsExtracted
	StateFinalized
)

// Assembler combines a canonical table set, canonicalized term names, and
// typeset strings into the four-field result container. Re-running assembly
// on the same table set is idempotent.
type Assembler struct {
	opts   config.Options
	labels apa.Labels

	state     AssemblyState
	tables    *apa.TableSet
	estimate  *apa.ResultMap
	statistic *apa.ResultMap
}

// NewAssembler creates an assembler under the supplied configuration.
// User-supplied labels override derived display labels; they are
// display-only and never consulted by numeric logic.
func NewAssembler(opts config.Options, labels apa.Labels) *Assembler {
	return &Assembler{opts: opts, labels: labels}
}

// State returns the current assembly state.
func (a *Assembler) State() AssemblyState {
	return a.state
}

// Assemble runs the full state machine over the table set and returns the
// finalized result. Every invocation starts fresh, so assembling the same
// table set twice yields identical output.
func (a *Assembler) Assemble(tables *apa.TableSet) (*apa.Result, error) {
	a.state = StateEmpty
	a.estimate = apa.NewResultMap()
	a.statistic = apa.NewResultMap()

	if err := a.assignTables(tables); err != nil {
		return nil, err
	}
	a.attachLabels()
	if err := a.extractStats(); err != nil {
		return nil, err
	}
	return a.finalize()
}

// assignTables canonicalizes the primary table's raw terms and rewrites its
// rows under the canonical identifier names. Model-level tables already
// carry generated identifier terms.
func (a *Assembler) assignTables(tables *apa.TableSet) error {
	if tables == nil || tables.Len() == 0 {
		return fmt.Errorf("no canonical table to assemble")
	}

	primary := tables.Primary()
	rawTerms := make([]string, len(primary.Rows))
	for i, row := range primary.Rows {
		rawTerms[i] = row.Term
	}
	names, displayLabels, err := canon.Canonicalize(rawTerms, a.opts.Standardized)
	if err != nil {
		return err
	}

	out := apa.NewTableSet()
	for _, name := range tables.Names() {
		src, _ := tables.Get(name)
		copied := apa.NewTable(src.Name, append([]apa.Row(nil), src.Rows...))
		copied.Labels = make(apa.Labels, len(src.Labels))
		for k, v := range src.Labels {
			copied.Labels[k] = v
		}
		out.Add(name, copied)
	}

	rewritten := out.Primary()
	for i := range rewritten.Rows {
		rewritten.Rows[i].Term = names[i]
		if _, ok := rewritten.Labels[names[i]]; !ok {
			rewritten.Labels[names[i]] = displayLabels[i]
		}
	}

	a.tables = out
	a.state = StateTableAssigned
	return nil
}

// attachLabels merges user-supplied variable labels into each table, keyed
// by term identifier. Labels affect display only.
func (a *Assembler) attachLabels() {
	for _, name := range a.tables.Names() {
		table, _ := a.tables.Get(name)
		for key, label := range a.labels {
			table.Labels[key] = label
		}
	}
	a.state = StateLabelsAttached
}

// extractStats typesets each row into estimate and statistic entries. A
// field absent in a row is omitted from the corresponding mapping, never
// filled with a placeholder.
func (a *Assembler) extractStats() error {
	primary := a.tables.Primary()
	for _, row := range primary.Rows {
		if err := a.extractRow(a.estimate, a.statistic, row); err != nil {
			return err
		}
	}

	if model, ok := a.tables.Get("model"); ok {
		estGroup := apa.NewResultMap()
		statGroup := apa.NewResultMap()
		for _, row := range model.Rows {
			if err := a.extractRow(estGroup, statGroup, row); err != nil {
				return err
			}
		}
		if estGroup.Len() > 0 {
			a.estimate.SetGroup(modelFitGroup, estGroup)
		}
		if statGroup.Len() > 0 {
			a.statistic.SetGroup(modelFitGroup, statGroup)
		}
	}

	a.state = StateStatsExtracted
	return nil
}

// extractRow typesets one row into the given estimate/statistic maps.
func (a *Assembler) extractRow(estimate, statistic *apa.ResultMap, row apa.Row) error {
	est, err := a.estimateString(row)
	if err != nil {
		return err
	}
	if est != "" {
		estimate.Set(row.Term, apa.TypesetValue(est))
	}

	stat, err := a.statisticString(row)
	if err != nil {
		return err
	}
	if stat != "" {
		statistic.Set(row.Term, apa.TypesetValue(stat))
	}
	return nil
}

// finalize merges estimate and statistic into the full result by key union
// and seals the container.
func (a *Assembler) finalize() (*apa.Result, error) {
	result := &apa.Result{
		Estimate:   a.estimate,
		Statistic:  a.statistic,
		FullResult: mergeFull(a.estimate, a.statistic),
		Tables:     a.tables,
	}
	a.state = StateFinalized
	return result, nil
}

// mergeFull computes the key-union merge: where a term exists in both maps
// the strings are concatenated estimate-first; where it exists in only one,
// that value is carried unchanged. Nested groups merge recursively.
func mergeFull(estimate, statistic *apa.ResultMap) *apa.ResultMap {
	full := apa.NewResultMap()

	for _, key := range estimate.Keys() {
		if group, ok := estimate.Group(key); ok {
			statGroup, hasStat := statistic.Group(key)
			if !hasStat {
				statGroup = apa.NewResultMap()
			}
			full.SetGroup(key, mergeFull(group, statGroup))
			continue
		}
		est, _ := estimate.Get(key)
		if stat, ok := statistic.Get(key); ok {
			full.Set(key, apa.TypesetValue(string(est)+fullResultJoin+string(stat)))
		} else {
			full.Set(key, est)
		}
	}

	for _, key := range statistic.Keys() {
		if estimate.Has(key) {
			continue
		}
		if group, ok := statistic.Group(key); ok {
			full.SetGroup(key, mergeFull(apa.NewResultMap(), group))
			continue
		}
		stat, _ := statistic.Get(key)
		full.Set(key, stat)
	}

	return full
}

// estimateString typesets the point estimate and, when interval bounds are
// present, the accompanying interval. Empty means no estimate fields exist.
func (a *Assembler) estimateString(row apa.Row) (string, error) {
	if row.Estimate == nil && (row.ConfLow == nil || row.ConfHigh == nil) {
		return "", nil
	}

	parts := make([]string, 0, 2)
	if row.Estimate != nil {
		parts = append(parts, typeset.Printnum(*row.Estimate, a.numberFor(row)))
	}
	if row.ConfLow != nil && row.ConfHigh != nil {
		kind := row.IntervalKind
		if kind == "" {
			kind = string(a.opts.IntervalType)
		}
		level := a.opts.ConfLevel
		if row.ConfLevel != nil {
			level = *row.ConfLevel
		}
		interval, err := typeset.PrintInterval(*row.ConfLow, *row.ConfHigh, level, kind, a.numberFor(row))
		if err != nil {
			return "", err
		}
		parts = append(parts, interval)
	}
	return strings.Join(parts, " "), nil
}

// statisticString typesets the inferential statistic: symbol, parenthesized
// degrees of freedom (and n for chi-square), value, and p. Empty means no
// inferential fields exist.
func (a *Assembler) statisticString(row apa.Row) (string, error) {
	if row.Statistic == nil && row.PValue == nil {
		return "", nil
	}

	parts := make([]string, 0, 2)
	if row.Statistic != nil {
		label := row.StatLabel
		if label == "" {
			label = "statistic"
		}
		if row.DF != nil {
			inner := a.dfString(*row.DF)
			switch {
			case row.N != nil:
				inner += ", n = " + typeset.Printnum(*row.N, a.countNumber())
			case row.DF2 != nil:
				inner += ", " + a.dfString(*row.DF2)
			}
			label += "(" + inner + ")"
		}
		parts = append(parts, label+" = "+typeset.Printnum(*row.Statistic, a.statNumber()))
	}

	if row.PValue != nil {
		p, err := typeset.PrintpWith(*row.PValue, 3, a.opts.DecimalMark)
		if err != nil {
			return "", err
		}
		if strings.HasPrefix(p, "<") || strings.HasPrefix(p, ">") {
			parts = append(parts, "p "+p)
		} else {
			parts = append(parts, "p = "+p)
		}
	}

	return strings.Join(parts, ", "), nil
}

// dfString renders degrees of freedom: whole values without decimals,
// fractional values (Welch corrections) at the configured precision.
func (a *Assembler) dfString(df float64) string {
	digits := 0
	if df != math.Trunc(df) {
		digits = a.opts.Digits
	}
	return typeset.Printnum(df, typeset.Number{
		Digits:      digits,
		BigMark:     a.opts.BigMark,
		DecimalMark: a.opts.DecimalMark,
		LeadingZero: true,
	})
}

// numberFor returns the scalar format for a row's estimate columns. Bounded
// estimates (correlations, proportions, R²) always drop the leading zero.
func (a *Assembler) numberFor(row apa.Row) typeset.Number {
	return typeset.Number{
		Digits:      a.opts.Digits,
		BigMark:     a.opts.BigMark,
		DecimalMark: a.opts.DecimalMark,
		LeadingZero: a.opts.LeadingZero && !row.Bounded,
	}
}

// statNumber returns the format for test-statistic values.
func (a *Assembler) statNumber() typeset.Number {
	return typeset.Number{
		Digits:      a.opts.Digits,
		BigMark:     a.opts.BigMark,
		DecimalMark: a.opts.DecimalMark,
		LeadingZero: true,
	}
}

// countNumber returns the format for sample counts.
func (a *Assembler) countNumber() typeset.Number {
	return typeset.Number{Digits: 0, BigMark: a.opts.BigMark, LeadingZero: true}
}
