package miner

import (
	"math"
	"testing"

	"github.com/yourbasic/bit"
)

func TestDatasetFromRows(t *testing.T) {
	d := NewDatasetFromRows([][]int{{0, 2}, {1, 2}, {2}, nil}, 0)
	if d.NumRows != 4 || d.NumCols != 3 {
		t.Fatalf("shape got %dx%d", d.NumRows, d.NumCols)
	}
	if d.SingletonSupport(2) != 3 || d.SingletonSupport(0) != 1 {
		t.Fatal("singleton supports wrong")
	}
	freqs := d.SingletonFreqs()
	if math.Abs(freqs[2]-0.75) > 1e-12 {
		t.Fatalf("freq got %v", freqs[2])
	}
}

func TestDatasetFromMatrix(t *testing.T) {
	d := NewDatasetFromMatrix([][]bool{
		{true, false, true},
		{false, true, true},
	})
	if d.NumRows != 2 || d.NumCols != 3 {
		t.Fatalf("shape got %dx%d", d.NumRows, d.NumCols)
	}
	if d.SingletonSupport(2) != 2 {
		t.Fatal("column 2 should appear twice")
	}
}

func TestGroupMasks(t *testing.T) {
	values, masks := GroupMasks([]int{2, 0, 2, 1, 0})
	if len(values) != 3 || values[0] != 0 || values[1] != 1 || values[2] != 2 {
		t.Fatalf("values got %v", values)
	}
	if masks[0].Size() != 2 || !masks[0].Contains(1) || !masks[0].Contains(4) {
		t.Fatal("mask for label 0 wrong")
	}
	if masks[1].Size() != 1 || !masks[1].Contains(3) {
		t.Fatal("mask for label 1 wrong")
	}
}

func TestMaskedFreqs(t *testing.T) {
	d := NewDatasetFromRows([][]int{{0}, {0, 1}, {1}, {1}}, 2)
	mask := bit.New(0, 1) // 前两行
	freqs := d.MaskedFreqs(mask, bit.New())
	if math.Abs(freqs[0]-1.0) > 1e-12 || math.Abs(freqs[1]-0.5) > 1e-12 {
		t.Fatalf("masked freqs got %v", freqs)
	}
}
