package apa

// TableKind marks an annotated canonical table, distinguishing it from a
// plain table of values.
const TableKind = "apa_results_table"

// RowKind distinguishes per-term rows from model-level rows.
type RowKind string

const (
	RowTerm     RowKind = "term"      // predictor, interaction, or comparison
	RowModelFit RowKind = "model_fit" // fit-quality measure, no inferential test
)

// Row is one entry of the canonical table: a fixed vocabulary of statistic
// columns with optional values. A nil field means the producing procedure did
// not report that statistic; it is omitted downstream, never filled with a
// placeholder.
type Row struct {
	Term      string   `json:"term"`
	Estimate  *float64 `json:"estimate,omitempty"`
	ConfLow   *float64 `json:"conf_low,omitempty"`
	ConfHigh  *float64 `json:"conf_high,omitempty"`
	Statistic *float64 `json:"statistic,omitempty"`
	DF        *float64 `json:"df,omitempty"`
	DF2       *float64 `json:"df2,omitempty"` // denominator df for F statistics
	PValue    *float64 `json:"p_value,omitempty"`
	N         *float64 `json:"n,omitempty"` // reported inside the statistic for chi-square

	// StatLabel is the typographic symbol of the test statistic (t, r, F, χ²).
	StatLabel string `json:"stat_label,omitempty"`

	// ConfLevel is the level the interval columns were computed at. Nil means
	// the configured level applies. IntervalKind overrides the configured
	// interval flavor (Bayesian rows force HDI); empty means use configured.
	ConfLevel    *float64 `json:"conf_level,omitempty"`
	IntervalKind string   `json:"interval_kind,omitempty"`

	// Bounded marks estimates whose magnitude is known to stay within [-1, 1]
	// (correlations, proportions, R²), which makes leading-zero suppression
	// valid for them.
	Bounded bool `json:"bounded,omitempty"`

	Kind RowKind `json:"kind"`
}

// Float returns a pointer to v. Convenience for building rows and variants.
func Float(v float64) *float64 { return &v }

// Labels maps a term identifier to a human-readable annotation. Display-only:
// labels never participate in dispatch or numeric computation.
type Labels map[string]string

// Table is the normalized, row-per-term representation shared by all
// variants after tidying, annotated with display labels.
type Table struct {
	Kind   string `json:"kind"`
	Name   string `json:"name"`
	Rows   []Row  `json:"rows"`
	Labels Labels `json:"labels,omitempty"`
}

// NewTable creates an annotated canonical table.
func NewTable(name string, rows []Row) *Table {
	return &Table{Kind: TableKind, Name: name, Rows: rows}
}

// TableSet is a named, insertion-ordered collection of canonical tables.
// Single-part analyses hold one table; multi-part analyses (e.g. regression
// coefficients plus model fit) hold several.
type TableSet struct {
	names  []string
	tables map[string]*Table
}

// NewTableSet creates an empty table set.
func NewTableSet() *TableSet {
	return &TableSet{tables: make(map[string]*Table)}
}

// Add appends a table under name, replacing any previous table of that name
// while keeping its original position.
func (s *TableSet) Add(name string, t *Table) {
	if _, exists := s.tables[name]; !exists {
		s.names = append(s.names, name)
	}
	s.tables[name] = t
}

// Get returns the table stored under name.
func (s *TableSet) Get(name string) (*Table, bool) {
	t, ok := s.tables[name]
	return t, ok
}

// Names returns the table names in insertion order.
func (s *TableSet) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Primary returns the first table added, or nil for an empty set.
func (s *TableSet) Primary() *Table {
	if len(s.names) == 0 {
		return nil
	}
	return s.tables[s.names[0]]
}

// Len returns the number of tables.
func (s *TableSet) Len() int {
	return len(s.names)
}
