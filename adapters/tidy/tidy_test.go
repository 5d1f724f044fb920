package tidy_test

import (
	"math"
	"testing"

	"github.com/simone-mordue/papaja/adapters/tidy"
	"github.com/simone-mordue/papaja/domain/apa"
	"github.com/simone-mordue/papaja/internal/config"
)

const tol = 1e-6

func approx(t *testing.T, name string, got *float64, want float64) {
	t.Helper()
	if got == nil {
		t.Fatalf("%s is nil, want %v", name, want)
	}
	if math.Abs(*got-want) > tol {
		t.Errorf("%s = %v, want %v", name, *got, want)
	}
}

func TestTTestTidyPassesFieldsThrough(t *testing.T) {
	rows, err := tidy.NewTTest().Tidy(apa.TTestResult{
		Term:      "treatment - control",
		Estimate:  apa.Float(1.2),
		Statistic: apa.Float(2.53),
		DF:        apa.Float(17.42),
		PValue:    apa.Float(0.021),
		ConfLow:   apa.Float(0.4),
		ConfHigh:  apa.Float(2.0),
	}, config.Default())
	if err != nil {
		t.Fatalf("Tidy: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	row := rows[0]
	if row.Term != "treatment - control" || row.StatLabel != "t" {
		t.Errorf("unexpected row header: %+v", row)
	}
	approx(t, "p", row.PValue, 0.021)
	approx(t, "conf low", row.ConfLow, 0.4)
}

func TestTTestTidyDerivesPValueAndInterval(t *testing.T) {
	rows, err := tidy.NewTTest().Tidy(apa.TTestResult{
		Estimate:  apa.Float(1.0),
		StdError:  apa.Float(0.5),
		Statistic: apa.Float(2.0),
		DF:        apa.Float(10),
	}, config.Default())
	if err != nil {
		t.Fatalf("Tidy: %v", err)
	}
	row := rows[0]
	if row.Term != "mean difference" {
		t.Errorf("term = %q, want default", row.Term)
	}
	// two-sided p for t = 2.0, df = 10
	if row.PValue == nil || math.Abs(*row.PValue-0.07339) > 1e-4 {
		t.Errorf("p = %v, want approx .073", row.PValue)
	}
	// t_crit(0.975, 10) = 2.2281
	if row.ConfLow == nil || row.ConfHigh == nil {
		t.Fatal("interval not derived")
	}
	if math.Abs(*row.ConfHigh-(1.0+2.228139*0.5)) > 1e-4 {
		t.Errorf("conf high = %v", *row.ConfHigh)
	}
	approx(t, "conf level", row.ConfLevel, 0.95)
}

func TestCorrelationTidyDerivesStatistics(t *testing.T) {
	rows, err := tidy.NewCorrelation().Tidy(apa.CorrelationResult{
		Term:     "x - y",
		Estimate: apa.Float(0.5),
		N:        30,
	}, config.Default())
	if err != nil {
		t.Fatalf("Tidy: %v", err)
	}
	row := rows[0]
	if !row.Bounded {
		t.Error("correlation row must be bounded")
	}
	approx(t, "df", row.DF, 28)
	// t = r*sqrt(n-2)/sqrt(1-r^2) = 0.5*sqrt(28)/sqrt(0.75)
	approx(t, "t", row.Statistic, 0.5*math.Sqrt(28)/math.Sqrt(0.75))
	if row.PValue == nil || *row.PValue > 0.01 || *row.PValue <= 0 {
		t.Errorf("p = %v, want a small positive value", row.PValue)
	}
	if row.ConfLow == nil || row.ConfHigh == nil {
		t.Fatal("Fisher interval not derived")
	}
	if *row.ConfLow >= 0.5 || *row.ConfHigh <= 0.5 {
		t.Errorf("interval [%v, %v] does not bracket r", *row.ConfLow, *row.ConfHigh)
	}
}

func TestAnovaTidyDerivesEtaSquaredAndP(t *testing.T) {
	rows, err := tidy.NewAnova().Tidy(apa.AnovaResult{
		Terms: []apa.AnovaTerm{
			{Term: "Dose", SumSq: apa.Float(30), DF: 1, Statistic: apa.Float(12.64)},
			{Term: "Dose:Sex", SumSq: apa.Float(5), DF: 1, Statistic: apa.Float(2.11)},
		},
		ResidualDF:    17,
		ResidualSumSq: apa.Float(40),
	}, config.Default())
	if err != nil {
		t.Fatalf("Tidy: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	approx(t, "eta squared", rows[0].Estimate, 30.0/70.0)
	if !rows[0].Bounded {
		t.Error("eta squared row must be bounded")
	}
	approx(t, "df2", rows[0].DF2, 17)
	if rows[0].PValue == nil || *rows[0].PValue > 0.01 {
		t.Errorf("p = %v, want < .01 for F = 12.64", rows[0].PValue)
	}
	if rows[1].PValue == nil || *rows[1].PValue < 0.05 {
		t.Errorf("p = %v, want > .05 for F = 2.11", rows[1].PValue)
	}
}

func TestLinearModelTidyAndGlance(t *testing.T) {
	res := apa.LinearModelResult{
		Coefficients: []apa.Coefficient{
			{Term: "(Intercept)", Estimate: 2.5, StdError: apa.Float(0.8)},
			{Term: "dose", Estimate: 0.9, StdError: apa.Float(0.25)},
		},
		ResidualDF:  18,
		RSquared:    apa.Float(0.42),
		AdjRSquared: apa.Float(0.39),
		FStatistic:  apa.Float(12.96),
		FDF1:        apa.Float(1),
		FDF2:        apa.Float(18),
		AIC:         apa.Float(52.3),
		BIC:         apa.Float(55.1),
	}

	rows, err := tidy.NewLinearModel().Tidy(res, config.Default())
	if err != nil {
		t.Fatalf("Tidy: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	approx(t, "t", rows[1].Statistic, 0.9/0.25)
	approx(t, "df", rows[1].DF, 18)
	if rows[1].PValue == nil || rows[1].ConfLow == nil || rows[1].ConfHigh == nil {
		t.Fatalf("derived fields missing: %+v", rows[1])
	}

	glance, err := tidy.NewLinearModel().Glance(res, config.Default())
	if err != nil {
		t.Fatalf("Glance: %v", err)
	}
	if len(glance) != 5 {
		t.Fatalf("got %d glance rows, want 5", len(glance))
	}
	wantTerms := []string{"r_squared", "adj_r_squared", "model", "aic", "bic"}
	for i, want := range wantTerms {
		if glance[i].Term != want {
			t.Errorf("glance[%d].Term = %q, want %q", i, glance[i].Term, want)
		}
	}
	if !glance[0].Bounded {
		t.Error("r_squared row must be bounded")
	}
	if glance[2].PValue == nil || *glance[2].PValue > 0.01 {
		t.Errorf("model p = %v, want < .01", glance[2].PValue)
	}
}

func TestChiSquareTidyDerivesPValue(t *testing.T) {
	rows, err := tidy.NewChiSquare().Tidy(apa.ChiSquareResult{
		Statistic: 4.66,
		DF:        1,
		N:         30,
		CramersV:  apa.Float(0.39),
	}, config.Default())
	if err != nil {
		t.Fatalf("Tidy: %v", err)
	}
	row := rows[0]
	if row.Term != "chi squared" || row.StatLabel != "χ²" {
		t.Errorf("unexpected row header: %+v", row)
	}
	approx(t, "n", row.N, 30)
	// P(chi2_1 > 4.66) = 0.0309
	if row.PValue == nil || math.Abs(*row.PValue-0.030884) > 1e-4 {
		t.Errorf("p = %v, want approx .031", row.PValue)
	}
	if !row.Bounded {
		t.Error("Cramér's V row must be bounded")
	}
	approx(t, "cramers v", row.Estimate, 0.39)
}

func TestBayesFactorTidyForcesHDI(t *testing.T) {
	rows, err := tidy.NewBayesFactor().Tidy(apa.BayesFactorResult{
		Estimate:  0.52,
		HDILow:    0.1,
		HDIHigh:   0.9,
		CredLevel: 0.89,
		BF:        apa.Float(3.2),
	}, config.Default())
	if err != nil {
		t.Fatalf("Tidy: %v", err)
	}
	row := rows[0]
	if row.IntervalKind != "HDI" {
		t.Errorf("interval kind = %q, want HDI", row.IntervalKind)
	}
	approx(t, "cred level", row.ConfLevel, 0.89)
	if row.Statistic != nil || row.PValue != nil {
		t.Errorf("posterior row must be estimate-only: %+v", row)
	}

	glance, err := tidy.NewBayesFactor().Glance(apa.BayesFactorResult{
		Estimate: 0.52, HDILow: 0.1, HDIHigh: 0.9, CredLevel: 0.89, BF: apa.Float(3.2),
	}, config.Default())
	if err != nil {
		t.Fatalf("Glance: %v", err)
	}
	if len(glance) != 1 || glance[0].Term != "bayes_factor" {
		t.Fatalf("unexpected glance rows: %+v", glance)
	}
}

func TestTidyRejectsWrongVariant(t *testing.T) {
	if _, err := tidy.NewTTest().Tidy(apa.ChiSquareResult{}, config.Default()); err == nil {
		t.Error("ttest tidier accepted a chi-square result")
	}
	if _, err := tidy.NewAnova().Tidy(apa.TTestResult{}, config.Default()); err == nil {
		t.Error("anova tidier accepted a t-test result")
	}
}
