package miner

import (
	"os"
	"path"
	"testing"

	"sigpat/share/global/enum"
	"sigpat/utils"
)

func TestFitDegenerateInput(t *testing.T) {
	// n=0或m=0:返回空模型,不报错
	for _, d := range []*Dataset{
		NewDatasetFromRows(nil, 0),
		NewDatasetFromRows([][]int{nil, nil}, 0),
	} {
		result, err := Fit(enum.FWER, d, nil, DefaultOptions())
		if err != nil {
			t.Fatalf("degenerate input must not fail: %v", err)
		}
		if len(result.Models) != 1 || result.Models[0].NumPatterns() != 0 {
			t.Fatal("degenerate input should give one empty model")
		}
	}
}

func TestFitParameterValidation(t *testing.T) {
	d := NewDatasetFromRows([][]int{{0, 1}, {0, 1}}, 2)
	cases := []Options{
		{Alpha: 1.5},
		{Alpha: -0.1},
		{MinSupport: -1},
		{MaxFactorSize: 13}, // 超过硬上限12
		{MaxFactorSize: -2},
		{MaxFactorWidth: -1},
	}
	for i, opts := range cases {
		if _, err := Fit(enum.FWER, d, nil, opts); err != utils.ErrParameter {
			t.Fatalf("case %d should fail with ErrParameter, got %v", i, err)
		}
	}
}

func TestFitLabelSizeMismatch(t *testing.T) {
	d := NewDatasetFromRows([][]int{{0}, {1}, {0, 1}}, 2)
	if _, err := Fit(enum.FWER, d, []int{0, 1}, DefaultOptions()); err != utils.ErrLabelSize {
		t.Fatalf("label size mismatch should fail, got %v", err)
	}
}

func TestFactorGraphExport(t *testing.T) {
	d := testDataset()
	m := NewModel(d.SingletonFreqs(), d.NumRows, 8, 50)
	m.InsertPattern(empiricalFreq(d, []int{0, 1}), []int{0, 1}, 4, 8.5)

	outPath := path.Join(t.TempDir(), "factors.dot")
	m.ToFactorGraph(outPath)
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("dot file not written: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("dot file empty")
	}
	t.Log(string(data))
}
