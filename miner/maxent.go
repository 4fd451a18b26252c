package miner

import (
	"github.com/yourbasic/bit"

	"sigpat/mine_config"
	"sigpat/share/global/model/mine"
	"sigpat/utils"
)

// Model 因子化的最大熵零模型。
// 因子的单例集互不相交,未被任何因子覆盖的列等价于一个宽度1、无模式的隐式因子,
// 其边际就是该列的经验频率。模型只增不减:插入模式会合并因子,因子从不拆分。
type Model struct {
	numRows        int
	numCols        int
	freqs          []float64 // 各列经验频率
	maxFactorSize  int
	maxFactorWidth int

	factorOf []int     // 列 -> factors下标,-1表示隐式因子
	factors  []*Factor // 合并后留下nil洞,洞不复用

	accepted []mine.Pattern // 插入顺序的全部模式
	pool     *inferPool
}

// NewModel 构造初始模型:每列一个隐式单例因子,无任何模式
func NewModel(freqs []float64, numRows, maxFactorSize, maxFactorWidth int) *Model {
	factorOf := make([]int, len(freqs))
	for i := range factorOf {
		factorOf[i] = -1
	}
	return &Model{
		numRows:        numRows,
		numCols:        len(freqs),
		freqs:          freqs,
		maxFactorSize:  maxFactorSize,
		maxFactorWidth: maxFactorWidth,
		factorOf:       factorOf,
		pool:           newInferPool(maxFactorWidth + 1),
	}
}

// NumRows 模型对应的行数(分组时为组内行数)
func (m *Model) NumRows() int {
	return m.numRows
}

// Expectation 项集items在当前模型下整体为1的概率。
// 与items相交的因子各自给出条件边际,互不相交的因子贡献1。
// ctx为nil时从共享池中取一个推断上下文。
func (m *Model) Expectation(items []int, ctx *InferCtx) float64 {
	if ctx == nil {
		ctx = m.pool.Get()
		defer m.pool.Put(ctx)
	}
	p := 1.0
	ctx.seen = ctx.seen[:0]
	for _, col := range items {
		fid := m.factorOf[col]
		if fid < 0 {
			p *= m.freqs[col]
			continue
		}
		dup := false
		for _, s := range ctx.seen {
			if s == fid {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		ctx.seen = append(ctx.seen, fid)
		f := m.factors[fid]
		ctx.sub = ctx.sub[:0]
		for _, j := range items {
			if f.Singletons.Contains(j) {
				ctx.sub = append(ctx.sub, j)
			}
		}
		p *= f.Marginal(ctx.sub)
	}
	return p
}

// IsForbidden 插入items是否会让合并后的因子超过模式数或宽度上限。
// 无副作用,缓冲由调用方提供。
func (m *Model) IsForbidden(items []int, sc *ModelScratch) bool {
	size, width := m.mergedShape(items, sc)
	return size > m.maxFactorSize || width > m.maxFactorWidth
}

// mergedShape 计算插入items后覆盖它的合并因子的(模式数,宽度)
func (m *Model) mergedShape(items []int, sc *ModelScratch) (int, int) {
	utils.ClearSet(sc.width)
	sc.seen = sc.seen[:0]
	size := 1 // items自身
	for _, col := range items {
		sc.width.Add(col)
		fid := m.factorOf[col]
		if fid < 0 {
			continue
		}
		dup := false
		for _, s := range sc.seen {
			if s == fid {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		sc.seen = append(sc.seen, fid)
		f := m.factors[fid]
		size += len(f.Patterns)
		f.Singletons.Visit(func(n int) bool {
			sc.width.Add(n)
			return false
		})
	}
	return size, sc.width.Size()
}

// InsertPattern 把模式items以经验频率freq插入模型,score是接受时刻的-log p值:
// 合并所有与items相交的因子,重新拟合系数。违反上限时拒绝并返回false。
func (m *Model) InsertPattern(freq float64, items []int, support int, score float64) bool {
	sc := newModelScratch()
	if m.IsForbidden(items, sc) {
		return false
	}

	// 汇总被合并的旧因子
	merged := &Factor{Singletons: bit.New()}
	for _, col := range items {
		merged.Singletons.Add(col)
	}
	for _, fid := range distinctFactors(m.factorOf, items) {
		old := m.factors[fid]
		old.Singletons.Visit(func(n int) bool {
			merged.Singletons.Add(n)
			return false
		})
		merged.Patterns = append(merged.Patterns, old.Patterns...)
		m.factors[fid] = nil
	}
	merged.Patterns = append(merged.Patterns, FactorPattern{Items: items, Freq: freq})

	merged.items = utils.SetToSlice(merged.Singletons)
	merged.qTarget = make([]float64, len(merged.items))
	for pos, col := range merged.items {
		merged.qTarget[pos] = m.freqs[col]
	}
	merged.refit(mine_config.FitTolerance, mine_config.FitMaxIter)

	fid := len(m.factors)
	m.factors = append(m.factors, merged)
	for _, col := range merged.items {
		m.factorOf[col] = fid
	}

	m.accepted = append(m.accepted, mine.Pattern{
		PatternId: len(m.accepted),
		Str:       mine.ItemsToStr(items, nil),
		Items:     items,
		Support:   support,
		Frequency: freq,
		Score:     score,
	})
	return true
}

// distinctFactors 按首次出现顺序收集items触及的因子下标
func distinctFactors(factorOf []int, items []int) []int {
	var ans []int
	for _, col := range items {
		fid := factorOf[col]
		if fid < 0 {
			continue
		}
		dup := false
		for _, s := range ans {
			if s == fid {
				dup = true
				break
			}
		}
		if !dup {
			ans = append(ans, fid)
		}
	}
	return ans
}

// Patterns 按插入顺序返回已接受的模式
func (m *Model) Patterns() []mine.Pattern {
	ans := make([]mine.Pattern, len(m.accepted))
	copy(ans, m.accepted)
	return ans
}

// NumPatterns 已接受模式数
func (m *Model) NumPatterns() int {
	return len(m.accepted)
}

// Factors 当前全部活跃因子,测试与导出用
func (m *Model) Factors() []*Factor {
	var ans []*Factor
	for _, f := range m.factors {
		if f != nil {
			ans = append(ans, f)
		}
	}
	return ans
}
