package miner

import (
	"math"

	"sigpat/mine_config"
)

// LordState LORD序贯FDR控制的α投资状态。
// 财富w在两次拒绝之间可为负,拒绝规则严格使用 p < α_i。
type LordState struct {
	alpha  float64
	w0     float64
	b0     float64
	w      float64 // 当前财富
	wTau   float64 // 上次拒绝时刻的财富
	tau    int64   // 上次拒绝的步下标,初始0
	i      int64   // 当前步下标,从1开始
	alphaI float64 // 当前检验水平
}

func NewLordState(alpha float64) *LordState {
	w0 := alpha * mine_config.LordWealthFactor
	l := &LordState{
		alpha: alpha,
		w0:    w0,
		b0:    alpha - w0,
		w:     w0,
		wTau:  w0,
		tau:   0,
		i:     1,
	}
	l.alphaI = l.xi(l.i-l.tau) * l.wTau
	return l
}

// xi 花费日程 ξ(k) = (6/(π²k²))·(α/b0)/(1+log k)
func (l *LordState) xi(k int64) float64 {
	fk := float64(k)
	return (6 / (math.Pi * math.Pi * fk * fk)) * (l.alpha / l.b0) / (1 + math.Log(fk))
}

// Level 当前检验水平α_i
func (l *LordState) Level() float64 {
	return l.alphaI
}

// Wealth 当前财富,调试与测试用
func (l *LordState) Wealth() float64 {
	return l.w
}

// Test 检验一个p值并推进状态,返回是否拒绝原假设
func (l *LordState) Test(p float64) bool {
	reject := p < l.alphaI
	if reject {
		l.tau = l.i
		l.wTau = l.w
	}
	l.i++
	l.alphaI = l.xi(l.i-l.tau) * l.wTau
	l.w -= l.alphaI
	if reject {
		l.w += l.b0
	}
	return reject
}
