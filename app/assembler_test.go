package app_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/simone-mordue/papaja/app"
	"github.com/simone-mordue/papaja/domain/apa"
	"github.com/simone-mordue/papaja/internal/config"
)

func termTables(rows ...apa.Row) *apa.TableSet {
	set := apa.NewTableSet()
	set.Add("terms", apa.NewTable("test", rows))
	return set
}

func getString(t *testing.T, m *apa.ResultMap, key string) string {
	t.Helper()
	v, ok := m.Get(key)
	if !ok {
		t.Fatalf("key %q missing, have %v", key, m.Keys())
	}
	return string(v)
}

func TestAssembleTypesetsEstimateAndStatistic(t *testing.T) {
	asm := app.NewAssembler(config.Default(), nil)
	result, err := asm.Assemble(termTables(apa.Row{
		Term:      "Treatment:Dose",
		Kind:      apa.RowTerm,
		Estimate:  apa.Float(1.2),
		ConfLow:   apa.Float(0.4),
		ConfHigh:  apa.Float(2.0),
		StatLabel: "t",
		Statistic: apa.Float(2.53),
		DF:        apa.Float(17.42),
		PValue:    apa.Float(0.021),
	}))
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if asm.State() != app.StateFinalized {
		t.Errorf("state = %d, want finalized", asm.State())
	}

	if got, want := getString(t, result.Estimate, "treatment_x_dose"), "1.20 [CI 95%: 0.40, 2.00]"; got != want {
		t.Errorf("estimate = %q, want %q", got, want)
	}
	if got, want := getString(t, result.Statistic, "treatment_x_dose"), "t(17.42) = 2.53, p = .021"; got != want {
		t.Errorf("statistic = %q, want %q", got, want)
	}
	want := "1.20 [CI 95%: 0.40, 2.00], t(17.42) = 2.53, p = .021"
	if got := getString(t, result.FullResult, "treatment_x_dose"); got != want {
		t.Errorf("full result = %q, want %q", got, want)
	}
}

func TestAssembleKeyUnion(t *testing.T) {
	// One estimate-only row and one statistic-only row: both keys survive
	// the merge with their single value unchanged.
	asm := app.NewAssembler(config.Default(), nil)
	result, err := asm.Assemble(termTables(
		apa.Row{
			Term:     "difference",
			Kind:     apa.RowTerm,
			Estimate: apa.Float(0.52),
			ConfLow:  apa.Float(0.1),
			ConfHigh: apa.Float(0.9),
		},
		apa.Row{
			Term:      "contrast",
			Kind:      apa.RowTerm,
			StatLabel: "t",
			Statistic: apa.Float(1.96),
			DF:        apa.Float(40),
			PValue:    apa.Float(0.057),
		},
	))
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	if result.Estimate.Has("contrast") {
		t.Error("statistic-only row leaked into estimate map")
	}
	if result.Statistic.Has("difference") {
		t.Error("estimate-only row leaked into statistic map")
	}
	if got, want := getString(t, result.FullResult, "difference"), "0.52 [CI 95%: 0.10, 0.90]"; got != want {
		t.Errorf("full[difference] = %q, want %q", got, want)
	}
	if got, want := getString(t, result.FullResult, "contrast"), "t(40) = 1.96, p = .057"; got != want {
		t.Errorf("full[contrast] = %q, want %q", got, want)
	}
}

func TestAssembleModelFitGroup(t *testing.T) {
	set := termTables(apa.Row{
		Term:     "dose",
		Kind:     apa.RowTerm,
		Estimate: apa.Float(0.8),
	})
	set.Add("model", apa.NewTable("model fit", []apa.Row{
		{Term: "r_squared", Kind: apa.RowModelFit, Estimate: apa.Float(0.42), Bounded: true},
		{
			Term:      "model",
			Kind:      apa.RowModelFit,
			StatLabel: "F",
			Statistic: apa.Float(12.64),
			DF:        apa.Float(1),
			DF2:       apa.Float(17),
			PValue:    apa.Float(0.0024),
		},
	}))

	asm := app.NewAssembler(config.Default(), nil)
	result, err := asm.Assemble(set)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	group, ok := result.FullResult.Group("modelfit")
	if !ok {
		t.Fatalf("modelfit group missing, keys %v", result.FullResult.Keys())
	}
	if got, want := getString(t, group, "r_squared"), ".42"; got != want {
		t.Errorf("modelfit r_squared = %q, want %q", got, want)
	}
	if got, want := getString(t, group, "model"), "F(1, 17) = 12.64, p = .002"; got != want {
		t.Errorf("modelfit model = %q, want %q", got, want)
	}
}

func TestAssembleBoundedRowDropsLeadingZero(t *testing.T) {
	asm := app.NewAssembler(config.Default(), nil)
	result, err := asm.Assemble(termTables(apa.Row{
		Term:     "effect",
		Kind:     apa.RowTerm,
		Estimate: apa.Float(0.34),
		ConfLow:  apa.Float(0.02),
		ConfHigh: apa.Float(0.61),
		Bounded:  true,
	}))
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if got, want := getString(t, result.Estimate, "effect"), ".34 [CI 95%: .02, .61]"; got != want {
		t.Errorf("estimate = %q, want %q", got, want)
	}
}

func TestAssembleRowIntervalOverridesOptions(t *testing.T) {
	// A Bayesian row carries its own kind and level; the configured 95% CI
	// must not leak into its interval.
	asm := app.NewAssembler(config.Default(), nil)
	result, err := asm.Assemble(termTables(apa.Row{
		Term:         "difference",
		Kind:         apa.RowTerm,
		Estimate:     apa.Float(0.52),
		ConfLow:      apa.Float(0.1),
		ConfHigh:     apa.Float(0.9),
		ConfLevel:    apa.Float(0.89),
		IntervalKind: "HDI",
	}))
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if got, want := getString(t, result.Estimate, "difference"), "0.52 [HDI 89%: 0.10, 0.90]"; got != want {
		t.Errorf("estimate = %q, want %q", got, want)
	}
}

func TestAssembleUserLabelsOverrideDerived(t *testing.T) {
	asm := app.NewAssembler(config.Default(), apa.Labels{"dose": "Dose (mg)"})
	result, err := asm.Assemble(termTables(apa.Row{
		Term:     "dose",
		Kind:     apa.RowTerm,
		Estimate: apa.Float(1.0),
	}))
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	table := result.Tables.Primary()
	if got := table.Labels["dose"]; got != "Dose (mg)" {
		t.Errorf("label = %q, want %q", got, "Dose (mg)")
	}
}

func TestAssembleIsIdempotent(t *testing.T) {
	set := termTables(apa.Row{
		Term:      "treatment - control",
		Kind:      apa.RowTerm,
		Estimate:  apa.Float(1.2),
		ConfLow:   apa.Float(0.4),
		ConfHigh:  apa.Float(2.0),
		StatLabel: "t",
		Statistic: apa.Float(2.53),
		DF:        apa.Float(17.42),
		PValue:    apa.Float(0.021),
	})

	asm := app.NewAssembler(config.Default(), nil)
	first, err := asm.Assemble(set)
	if err != nil {
		t.Fatalf("first Assemble: %v", err)
	}
	second, err := asm.Assemble(set)
	if err != nil {
		t.Fatalf("second Assemble: %v", err)
	}

	a, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal first: %v", err)
	}
	b, err := json.Marshal(second)
	if err != nil {
		t.Fatalf("marshal second: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Errorf("re-assembly differs:\n%s\n%s", a, b)
	}
}

func TestAssembleEmptyTableSetFails(t *testing.T) {
	asm := app.NewAssembler(config.Default(), nil)
	if _, err := asm.Assemble(apa.NewTableSet()); err == nil {
		t.Fatal("expected error for empty table set")
	}
	if _, err := asm.Assemble(nil); err == nil {
		t.Fatal("expected error for nil table set")
	}
}
