package miner

import (
	"math"
	"testing"
)

// testDataset 8行4列的小数据集,列0,1强相关
func testDataset() *Dataset {
	rows := [][]int{
		{0, 1, 2},
		{0, 1},
		{0, 1, 3},
		{0, 1, 2, 3},
		{2},
		{3},
		{0, 2},
		{1, 3},
	}
	return NewDatasetFromRows(rows, 4)
}

func empiricalFreq(d *Dataset, items []int) float64 {
	rows := d.SingletonRows[items[0]]
	scratch := NewScratch()
	cur := scratch.RowsA
	cur.SetAnd(rows, rows)
	for _, col := range items[1:] {
		cur.SetAnd(cur, d.SingletonRows[col])
	}
	return float64(cur.Size()) / float64(d.NumRows)
}

func TestEmptyModelExpectation(t *testing.T) {
	d := testDataset()
	m := NewModel(d.SingletonFreqs(), d.NumRows, 8, 50)
	// 无模式时就是独立模型,期望为频率乘积
	want := d.SingletonFreqs()[0] * d.SingletonFreqs()[1]
	got := m.Expectation([]int{0, 1}, nil)
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestInsertPatternMatchesMarginals(t *testing.T) {
	d := testDataset()
	freqs := d.SingletonFreqs()
	m := NewModel(freqs, d.NumRows, 8, 50)

	items := []int{0, 1}
	freq := empiricalFreq(d, items)
	if !m.InsertPattern(freq, items, int(freq*float64(d.NumRows)), 7.2) {
		t.Fatal("insert should succeed")
	}
	// 插入后模式与单例边际都要匹配经验值
	if got := m.Expectation(items, nil); math.Abs(got-freq) > 1e-6 {
		t.Fatalf("pattern marginal got %v want %v", got, freq)
	}
	for _, col := range items {
		if got := m.Expectation([]int{col}, nil); math.Abs(got-freqs[col]) > 1e-6 {
			t.Fatalf("singleton %d marginal got %v want %v", col, got, freqs[col])
		}
	}
	// 未触及的列不受影响
	if got := m.Expectation([]int{2}, nil); math.Abs(got-freqs[2]) > 1e-12 {
		t.Fatalf("untouched singleton got %v want %v", got, freqs[2])
	}
	// 接受时刻的score要随模式一起保留
	if got := m.Patterns()[0].Score; got != 7.2 {
		t.Fatalf("pattern score got %v want 7.2", got)
	}
}

func TestMergeFactors(t *testing.T) {
	d := testDataset()
	freqs := d.SingletonFreqs()
	m := NewModel(freqs, d.NumRows, 8, 50)

	pat01 := []int{0, 1}
	pat23 := []int{2, 3}
	pat12 := []int{1, 2}
	f01 := empiricalFreq(d, pat01)
	f23 := empiricalFreq(d, pat23)
	f12 := empiricalFreq(d, pat12)

	if !m.InsertPattern(f01, pat01, 0, 0) || !m.InsertPattern(f23, pat23, 0, 0) {
		t.Fatal("independent inserts should succeed")
	}
	if len(m.Factors()) != 2 {
		t.Fatalf("expect 2 factors, got %d", len(m.Factors()))
	}
	// 第三个模式桥接两个因子,合并成一个
	if !m.InsertPattern(f12, pat12, 0, 0) {
		t.Fatal("bridge insert should succeed")
	}
	factors := m.Factors()
	if len(factors) != 1 {
		t.Fatalf("expect merged single factor, got %d", len(factors))
	}
	if len(factors[0].Patterns) != 3 {
		t.Fatalf("merged factor should hold 3 patterns, got %d", len(factors[0].Patterns))
	}
	// 合并重拟合后全部约束边际仍匹配
	for _, tc := range []struct {
		items []int
		want  float64
	}{{pat01, f01}, {pat23, f23}, {pat12, f12}} {
		if got := m.Expectation(tc.items, nil); math.Abs(got-tc.want) > 1e-5 {
			t.Fatalf("pattern %v marginal got %v want %v", tc.items, got, tc.want)
		}
	}
	for col := 0; col < 4; col++ {
		if got := m.Expectation([]int{col}, nil); math.Abs(got-freqs[col]) > 1e-5 {
			t.Fatalf("singleton %d marginal got %v want %v", col, got, freqs[col])
		}
	}
}

func TestForbiddenSizeCap(t *testing.T) {
	d := testDataset()
	m := NewModel(d.SingletonFreqs(), d.NumRows, 1, 50)
	sc := newModelScratch()

	if m.IsForbidden([]int{0, 1}, sc) {
		t.Fatal("first pattern should be allowed")
	}
	if !m.InsertPattern(0.5, []int{0, 1}, 4, 0) {
		t.Fatal("first insert should succeed")
	}
	// maxFactorSize=1:第二条会进同一因子的模式被禁止
	if !m.IsForbidden([]int{1, 2}, sc) {
		t.Fatal("second pattern into same factor should be forbidden")
	}
	if m.InsertPattern(0.25, []int{1, 2}, 2, 0) {
		t.Fatal("forbidden insert must be refused")
	}
	// 不相交因子不受影响
	if m.IsForbidden([]int{2, 3}, sc) {
		t.Fatal("disjoint pattern should be allowed")
	}
	if m.NumPatterns() != 1 {
		t.Fatalf("model should hold 1 pattern, got %d", m.NumPatterns())
	}
}

func TestForbiddenWidthCap(t *testing.T) {
	d := testDataset()
	m := NewModel(d.SingletonFreqs(), d.NumRows, 8, 3)
	sc := newModelScratch()

	if !m.InsertPattern(0.5, []int{0, 1}, 4, 0) {
		t.Fatal("width 2 insert should succeed")
	}
	if !m.InsertPattern(0.375, []int{1, 2}, 3, 0) {
		t.Fatal("width 3 merge should succeed")
	}
	// 再并入列3会把因子宽度推到4,超限
	if !m.IsForbidden([]int{2, 3}, sc) {
		t.Fatal("width 4 merge should be forbidden")
	}
	// IsForbidden无副作用
	if m.NumPatterns() != 2 {
		t.Fatalf("IsForbidden must not mutate, got %d patterns", m.NumPatterns())
	}
}

func TestModelAppendOnly(t *testing.T) {
	d := testDataset()
	m := NewModel(d.SingletonFreqs(), d.NumRows, 8, 50)
	prev := 0
	for _, items := range [][]int{{0, 1}, {2, 3}, {1, 2}} {
		m.InsertPattern(empiricalFreq(d, items), items, 0, 0)
		if m.NumPatterns() < prev {
			t.Fatal("pattern count must never decrease")
		}
		prev = m.NumPatterns()
	}
	ps := m.Patterns()
	if len(ps) != 3 {
		t.Fatalf("expect 3 accepted patterns, got %d", len(ps))
	}
	for i, p := range ps {
		if p.PatternId != i {
			t.Fatalf("patterns should keep insertion order")
		}
	}
}
