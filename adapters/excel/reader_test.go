package excel_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/simone-mordue/papaja/adapters/excel"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestReadDataCSV(t *testing.T) {
	path := writeCSV(t, "treatment,control,group\n5.1,4.2,a\n6.2,4.8,a\n5.8,,b\n")

	dataset, err := excel.NewDataReader(path).ReadData()
	if err != nil {
		t.Fatalf("ReadData: %v", err)
	}

	if len(dataset.Headers) != 3 || dataset.Headers[0] != "treatment" {
		t.Fatalf("headers = %v", dataset.Headers)
	}

	x, err := dataset.NumericColumn("treatment")
	if err != nil {
		t.Fatalf("NumericColumn: %v", err)
	}
	if len(x) != 3 || x[0] != 5.1 {
		t.Errorf("treatment = %v", x)
	}

	// empty cells are skipped, not treated as zero
	y, err := dataset.NumericColumn("control")
	if err != nil {
		t.Fatalf("NumericColumn: %v", err)
	}
	if len(y) != 2 {
		t.Errorf("control = %v, want 2 values", y)
	}
}

func TestNumericColumnErrors(t *testing.T) {
	path := writeCSV(t, "score,label\n1.5,a\n2.5,b\n")
	dataset, err := excel.NewDataReader(path).ReadData()
	if err != nil {
		t.Fatalf("ReadData: %v", err)
	}

	if _, err := dataset.NumericColumn("missing"); err == nil {
		t.Error("missing column accepted")
	}
	if _, err := dataset.NumericColumn("label"); err == nil {
		t.Error("non-numeric column accepted")
	}
}

func TestSplitBy(t *testing.T) {
	path := writeCSV(t, "score,dose\n2.1,low\n2.4,low\n3.5,mid\n3.8,mid\n5.1,high\n4.8,high\n")
	dataset, err := excel.NewDataReader(path).ReadData()
	if err != nil {
		t.Fatalf("ReadData: %v", err)
	}

	levels, groups, err := dataset.SplitBy("score", "dose")
	if err != nil {
		t.Fatalf("SplitBy: %v", err)
	}
	want := []string{"low", "mid", "high"}
	if len(levels) != 3 {
		t.Fatalf("levels = %v", levels)
	}
	for i, lvl := range want {
		if levels[i] != lvl {
			t.Errorf("levels[%d] = %q, want %q", i, levels[i], lvl)
		}
		if len(groups[lvl]) != 2 {
			t.Errorf("group %q = %v, want 2 values", lvl, groups[lvl])
		}
	}
}

func TestReadDataMissingFile(t *testing.T) {
	if _, err := excel.NewDataReader("/nonexistent/data.xlsx").ReadData(); err == nil {
		t.Error("missing file accepted")
	}
}
