package miner

import (
	"math"
	"testing"
)

// directUpperTail 直接按定义求和,测试参照
func directUpperTail(s int, p float64, n int) float64 {
	sum := 0.0
	for k := s; k <= n; k++ {
		sum += math.Exp(logChoose(n, k)) * math.Pow(p, float64(k)) * math.Pow(1-p, float64(n-k))
	}
	return sum
}

func TestBinomialExactGrid(t *testing.T) {
	for _, n := range []int{1, 5, 10, 20, 30} {
		for _, p := range []float64{0.1, 0.3, 0.5, 0.7, 0.9} {
			for s := 0; s <= n; s++ {
				got := math.Exp(BinomialLogTail(s, p, n))
				want := directUpperTail(s, p, n)
				if math.Abs(got-want) > 1e-6 {
					t.Fatalf("n=%d p=%v s=%d: got %v want %v", n, p, s, got, want)
				}
			}
		}
	}
}

func TestBinomialSymmetry(t *testing.T) {
	// P(X>=s; n,p) + P(Y>=n-s+1; n,1-p) = 1,在均值附近两侧都可精确求和
	for _, n := range []int{10, 20, 49} {
		for _, p := range []float64{0.3, 0.5, 0.7} {
			mean := int(float64(n) * p)
			for _, s := range []int{mean - 1, mean, mean + 1} {
				if s < 1 || s > n {
					continue
				}
				a := math.Exp(BinomialLogTail(s, p, n))
				b := math.Exp(BinomialLogTail(n-s+1, 1-p, n))
				if math.Abs(a+b-1) > 1e-6 {
					t.Fatalf("n=%d p=%v s=%d: %v + %v != 1", n, p, s, a, b)
				}
			}
		}
	}
}

func TestBinomialEdgeCases(t *testing.T) {
	if got := BinomialLogTail(0, 0.5, 10); got != 0 {
		t.Fatalf("s=0 should give log1=0, got %v", got)
	}
	if got := BinomialLogTail(11, 0.5, 10); got >= -1e100 {
		t.Fatalf("s>n should give floor, got %v", got)
	}
	if got := BinomialLogTail(1, 0, 10); got >= -1e100 {
		t.Fatalf("p=0,s>0 should give floor, got %v", got)
	}
	if got := BinomialLogTail(10, 1, 10); got != 0 {
		t.Fatalf("p=1 should give 0, got %v", got)
	}
	// p越界截断,不抛错
	if got := BinomialLogTail(5, 1.5, 10); got != 0 {
		t.Fatalf("p>1 clamps to 1, got %v", got)
	}
	if got := BinomialLogTail(0, -0.5, 10); got != 0 {
		t.Fatalf("p<0 clamps to 0, got %v", got)
	}
}

func TestChernoffSide(t *testing.T) {
	// 均值左侧不足为奇,返回0
	if got := BinomialLogTail(10, 0.5, 100); got != 0 {
		t.Fatalf("left of mean should be 0, got %v", got)
	}
	// 右侧是上界:-n*KL >= 真实log尾概率
	n, p, s := 100, 0.2, 40
	bound := BinomialLogTail(s, p, n)
	exact := math.Log(directUpperTail(s, p, n))
	if bound < exact {
		t.Fatalf("chernoff bound %v below exact %v", bound, exact)
	}
	if bound >= 0 {
		t.Fatalf("right tail should be negative, got %v", bound)
	}
	t.Log("chernoff:", bound, "exact:", exact)
}
