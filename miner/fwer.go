package miner

import (
	"math"
)

// LogFwerAdjustment 第k层检验的log阈值:
// log α − k(1 + log m − log k)
// 用Stirling界近似第k层binom(m,k)个假设的Bonferroni校正。
func LogFwerAdjustment(alpha float64, k, m int) float64 {
	if k < 1 {
		k = 1
	}
	if m < 1 {
		m = 1
	}
	return math.Log(alpha) - float64(k)*(1+math.Log(float64(m))-math.Log(float64(k)))
}

// fwerState FWER模式下的共享状态。
// layer是当前最低检验层,随被接受模式的最大长度单调增长,只在report阶段更新。
type fwerState struct {
	alpha float64
	m     int
	layer int
}

func newFwerState(alpha float64, m int) *fwerState {
	return &fwerState{alpha: alpha, m: m, layer: 1}
}

// threshold 长度k的候选需要跨过的pv下限(-log阈值,非负)
func (f *fwerState) threshold(k int) float64 {
	if k < f.layer {
		k = f.layer
	}
	return -LogFwerAdjustment(f.alpha, k, f.m)
}

// advance 接受长度k的模式后推进layer,只增不减
func (f *fwerState) advance(k int) {
	if k > f.layer {
		f.layer = k
	}
}
