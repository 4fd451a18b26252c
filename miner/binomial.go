package miner

import (
	"math"

	"sigpat/mine_config"
)

// BinomialLogTail 计算 log P(X >= s), X ~ Binomial(n, p),结果<=0。
// n小于ExactTailLimit时在log空间精确求和,否则用Chernoff界 -n*KL(s/n||p)。
// p越界时被截断到[0,1],不抛错。
func BinomialLogTail(s int, p float64, n int) float64 {
	if p < 0 || math.IsNaN(p) {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	if n < 0 {
		n = 0
	}
	if s <= 0 {
		return 0
	}
	if s > n {
		return mine_config.LogPvalFloor
	}
	// 数值边界,直接给解析极限
	if p == 0 {
		return mine_config.LogPvalFloor
	}
	if p == 1 {
		return 0
	}

	if n < mine_config.ExactTailLimit {
		return exactLogUpperTail(s, p, n)
	}
	return chernoffLogUpperTail(s, p, n)
}

// exactLogUpperTail 精确求和。只在均值远侧直接求和,近侧利用
// P(X>=s) = 1 - P(X<=s-1) 对较小的下尾求和后取补,保证数值范围。
func exactLogUpperTail(s int, p float64, n int) float64 {
	mean := float64(n) * p
	if float64(s) > mean {
		return logSumPmfRange(s, n, p, n)
	}
	// s在均值左侧,下尾是小端
	lower := logSumPmfRange(0, s-1, p, n)
	if lower >= 0 {
		return mine_config.LogPvalFloor // 下尾已占满概率,上尾为0
	}
	diff := -math.Expm1(lower) // 1 - e^lower
	if diff <= 0 {
		return mine_config.LogPvalFloor
	}
	res := math.Log(diff)
	if res > 0 {
		res = 0
	}
	return res
}

// logSumPmfRange log Σ_{k=lo..hi} C(n,k) p^k (1-p)^(n-k),log空间累加
func logSumPmfRange(lo, hi int, p float64, n int) float64 {
	if lo < 0 {
		lo = 0
	}
	if hi > n {
		hi = n
	}
	if lo > hi {
		return mine_config.LogPvalFloor
	}
	logP := math.Log(p)
	logQ := math.Log1p(-p)
	acc := math.Inf(-1)
	for k := lo; k <= hi; k++ {
		term := logChoose(n, k) + float64(k)*logP + float64(n-k)*logQ
		acc = logAdd(acc, term)
	}
	if acc > 0 {
		acc = 0
	}
	if math.IsInf(acc, -1) {
		return mine_config.LogPvalFloor
	}
	return acc
}

// chernoffLogUpperTail Chernoff界,只对均值右侧给出界,左侧不足为奇返回0
func chernoffLogUpperTail(s int, p float64, n int) float64 {
	q := float64(s) / float64(n)
	if q <= p {
		return 0
	}
	return -float64(n) * klBernoulli(q, p)
}

// klBernoulli KL(q||p),约定0*log0=0
func klBernoulli(q, p float64) float64 {
	kl := 0.0
	if q > 0 {
		kl += q * math.Log(q/p)
	}
	if q < 1 {
		kl += (1 - q) * math.Log((1-q)/(1-p))
	}
	return kl
}

func logChoose(n, k int) float64 {
	a, _ := math.Lgamma(float64(n + 1))
	b, _ := math.Lgamma(float64(k + 1))
	c, _ := math.Lgamma(float64(n - k + 1))
	return a - b - c
}

// logAdd log(e^a + e^b),避免上溢
func logAdd(a, b float64) float64 {
	if math.IsInf(a, -1) {
		return b
	}
	if math.IsInf(b, -1) {
		return a
	}
	if a < b {
		a, b = b, a
	}
	return a + math.Log1p(math.Exp(b-a))
}
