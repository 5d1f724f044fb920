package app_test

import (
	"context"
	"testing"

	"github.com/simone-mordue/papaja/adapters/tidy"
	"github.com/simone-mordue/papaja/app"
	"github.com/simone-mordue/papaja/domain/apa"
	"github.com/simone-mordue/papaja/internal/config"
)

func ttestRegistry() *app.Registry {
	registry := app.NewRegistry()
	registry.Register(apa.VariantTTest, app.NewTidyHandler("t-test", tidy.NewTTest()))
	return registry
}

func TestNewPrinterRejectsInvalidOptions(t *testing.T) {
	opts := config.Default()
	opts.ConfLevel = 1.5
	if _, err := app.NewPrinter(ttestRegistry(), opts, nil); err == nil {
		t.Fatal("expected error for confidence level outside (0,1)")
	}
}

func TestPrintAllKeepsInputOrderAndIsolatesFailures(t *testing.T) {
	printer, err := app.NewPrinter(ttestRegistry(), config.Default(), nil)
	if err != nil {
		t.Fatalf("NewPrinter: %v", err)
	}

	inputs := []apa.AnalysisResult{
		apa.TTestResult{Term: "a", Statistic: apa.Float(2.0), DF: apa.Float(10), PValue: apa.Float(0.07)},
		apa.ChiSquareResult{Statistic: 4.66, DF: 1, N: 30}, // unregistered here
		apa.TTestResult{Term: "c", Statistic: apa.Float(1.0), DF: apa.Float(20), PValue: apa.Float(0.33)},
	}

	results, errs := printer.PrintAll(context.Background(), inputs)
	if len(results) != 3 || len(errs) != 3 {
		t.Fatalf("got %d results, %d errors", len(results), len(errs))
	}

	if errs[0] != nil || results[0] == nil {
		t.Errorf("inputs[0]: result %v, err %v", results[0], errs[0])
	}
	if errs[1] == nil || results[1] != nil {
		t.Errorf("inputs[1]: want failure without partial result, got %v, %v", results[1], errs[1])
	}
	if errs[2] != nil || results[2] == nil {
		t.Errorf("inputs[2]: result %v, err %v", results[2], errs[2])
	}

	if _, ok := results[0].Statistic.Get("a"); !ok {
		t.Errorf("results[0] keys = %v", results[0].Statistic.Keys())
	}
	if _, ok := results[2].Statistic.Get("c"); !ok {
		t.Errorf("results[2] keys = %v", results[2].Statistic.Keys())
	}
}
