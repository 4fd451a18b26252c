package miner

import (
	"math/bits"

	"github.com/yourbasic/bit"
)

// FactorPattern 因子内的一条约束模式
type FactorPattern struct {
	Items []int   // 全局列下标,升序
	Freq  float64 // 经验频率,拟合目标
}

// Factor 最大熵模型的一个局部因子。
// 因子内分布 p(x) ∝ ∏_i u_i^{x_i} · ∏_k θ_k^{1[x⊇P_k]},u_i以q_i=u_i/(1+u_i)存储。
// 利用 ∏θ^{1[·]} = Σ_B ∏_{k∈B}(θ_k−1)·1[x⊇U_B] 展开,
// 任意边际归结为2^k个单元的加权和,k为模式数,受MaxMaxentFactorSize约束。
type Factor struct {
	Singletons *bit.Set // V,全局列下标
	Patterns   []FactorPattern

	items   []int     // V升序
	qTarget []float64 // 单例拟合目标(经验频率),与items对齐
	q       []float64 // 单例系数
	theta   []float64 // 模式系数

	// 单元表。下标B是模式子集位图,U_B为B内模式的并集。
	cellUnion []*bit.Set // U_B,全局列下标
	cellNew   [][]int    // U_B 相对 U_{B去掉最低位} 新增列的因子内位置
	cellCoef  []float64  // ∏_{k∈B}(θ_k−1) · ∏_{i∈U_B} q_i
	z         float64    // Σ_B cellCoef[B],空集边际
}

// posOf 全局列下标在因子内的位置,不存在返回-1
func (f *Factor) posOf(col int) int {
	lo, hi := 0, len(f.items)
	for lo < hi {
		mid := (lo + hi) / 2
		if f.items[mid] < col {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(f.items) && f.items[lo] == col {
		return lo
	}
	return -1
}

// rebuildStructure 构建单元表的结构部分,只依赖模式集合
func (f *Factor) rebuildStructure() {
	k := len(f.Patterns)
	numCells := 1 << k
	f.cellUnion = make([]*bit.Set, numCells)
	f.cellNew = make([][]int, numCells)
	f.cellCoef = make([]float64, numCells)
	f.cellUnion[0] = bit.New()
	for B := 1; B < numCells; B++ {
		lb := bits.TrailingZeros(uint(B))
		prev := B &^ (1 << lb)
		union := bit.New()
		f.cellUnion[prev].Visit(func(n int) bool {
			union.Add(n)
			return false
		})
		var added []int
		for _, col := range f.Patterns[lb].Items {
			if !union.Contains(col) {
				union.Add(col)
				added = append(added, f.posOf(col))
			}
		}
		f.cellUnion[B] = union
		f.cellNew[B] = added
	}
}

// rebuildCoefs 按当前q和θ重算单元系数与配分和
func (f *Factor) rebuildCoefs() {
	f.cellCoef[0] = 1
	z := 1.0
	for B := 1; B < len(f.cellCoef); B++ {
		lb := bits.TrailingZeros(uint(B))
		prev := B &^ (1 << lb)
		coef := f.cellCoef[prev] * (f.theta[lb] - 1)
		for _, pos := range f.cellNew[B] {
			coef *= f.q[pos]
		}
		f.cellCoef[B] = coef
		z += coef
	}
	f.z = z
}

// Marginal 因子内子集sub(全局列下标,须属于V)整体为1的概率
func (f *Factor) Marginal(sub []int) float64 {
	if len(sub) == 0 {
		return 1
	}
	num := 0.0
	for B := 0; B < len(f.cellCoef); B++ {
		t := f.cellCoef[B]
		if t == 0 {
			continue
		}
		for _, col := range sub {
			if !f.cellUnion[B].Contains(col) {
				t *= f.q[f.posOf(col)]
			}
		}
		num += t
	}
	return clampProb(num / f.z)
}

// singletonMarginal 因子内位置pos对应单例的边际
func (f *Factor) singletonMarginal(pos int) float64 {
	col := f.items[pos]
	num := 0.0
	for B := 0; B < len(f.cellCoef); B++ {
		t := f.cellCoef[B]
		if !f.cellUnion[B].Contains(col) {
			t *= f.q[pos]
		}
		num += t
	}
	return clampProb(num / f.z)
}

// patternMarginal 第k条模式的边际
func (f *Factor) patternMarginal(k int) float64 {
	num := 0.0
	for B := 0; B < len(f.cellCoef); B++ {
		t := f.cellCoef[B]
		if t == 0 {
			continue
		}
		for _, col := range f.Patterns[k].Items {
			if !f.cellUnion[B].Contains(col) {
				t *= f.q[f.posOf(col)]
			}
		}
		num += t
	}
	return clampProb(num / f.z)
}

func clampProb(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
