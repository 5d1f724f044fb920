package apa

import (
	"bytes"
	"encoding/json"
)

// TypesetValue is a formatted, display-ready string derived from one or more
// numeric inputs under a fixed configuration. Once produced it is never
// recomputed.
type TypesetValue string

// String returns the typeset string.
func (v TypesetValue) String() string { return string(v) }

// ResultMap is an insertion-ordered mapping from canonical term name to
// TypesetValue, with optional nested sub-mappings (e.g. model-fit measures
// under "modelfit"). Key order is significant and preserved end-to-end.
type ResultMap struct {
	keys   []string
	values map[string]TypesetValue
	groups map[string]*ResultMap
}

// NewResultMap creates an empty ordered result map.
func NewResultMap() *ResultMap {
	return &ResultMap{
		values: make(map[string]TypesetValue),
		groups: make(map[string]*ResultMap),
	}
}

// Set stores a typeset value under key, appending the key on first use.
func (m *ResultMap) Set(key string, value TypesetValue) {
	if _, ok := m.values[key]; !ok {
		if _, grp := m.groups[key]; !grp {
			m.keys = append(m.keys, key)
		}
	}
	m.values[key] = value
}

// SetGroup stores a nested sub-mapping under key.
func (m *ResultMap) SetGroup(key string, group *ResultMap) {
	if _, ok := m.groups[key]; !ok {
		if _, val := m.values[key]; !val {
			m.keys = append(m.keys, key)
		}
	}
	m.groups[key] = group
}

// Get returns the scalar value stored under key.
func (m *ResultMap) Get(key string) (TypesetValue, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Group returns the nested sub-mapping stored under key.
func (m *ResultMap) Group(key string) (*ResultMap, bool) {
	g, ok := m.groups[key]
	return g, ok
}

// Has reports whether key is present as either a scalar or a group.
func (m *ResultMap) Has(key string) bool {
	if _, ok := m.values[key]; ok {
		return true
	}
	_, ok := m.groups[key]
	return ok
}

// Keys returns all keys (scalar and group) in insertion order.
func (m *ResultMap) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of keys.
func (m *ResultMap) Len() int {
	return len(m.keys)
}

// MarshalJSON renders the map as a JSON object in insertion order.
func (m *ResultMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		if g, ok := m.groups[key]; ok {
			nested, err := g.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(nested)
			continue
		}
		v, err := json.Marshal(m.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Result is the output container of the reporting pipeline: estimates,
// inferential statistics, their merged full report strings, and the
// annotated canonical table(s). Constructed fresh per invocation, immutable
// once returned, never persisted.
type Result struct {
	Estimate   *ResultMap `json:"estimate"`
	Statistic  *ResultMap `json:"statistic"`
	FullResult *ResultMap `json:"full_result"`
	Tables     *TableSet  `json:"-"`
}

// Table returns the primary canonical table.
func (r *Result) Table() *Table {
	if r.Tables == nil {
		return nil
	}
	return r.Tables.Primary()
}

// MarshalJSON renders the four-field shape consumed by downstream table and
// plot collaborators. Multi-part tables marshal as a named object.
func (r *Result) MarshalJSON() ([]byte, error) {
	tables := make(map[string]*Table, r.Tables.Len())
	for _, name := range r.Tables.Names() {
		t, _ := r.Tables.Get(name)
		tables[name] = t
	}
	type alias struct {
		Estimate   *ResultMap        `json:"estimate"`
		Statistic  *ResultMap        `json:"statistic"`
		FullResult *ResultMap        `json:"full_result"`
		Table      map[string]*Table `json:"table"`
	}
	return json.Marshal(alias{
		Estimate:   r.Estimate,
		Statistic:  r.Statistic,
		FullResult: r.FullResult,
		Table:      tables,
	})
}
