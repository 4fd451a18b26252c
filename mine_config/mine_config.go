package mine_config

import (
	"math"
	"runtime"
)

const GinPort = "19124"

const MAXCpuNum = 16

// WorkerNum 打分worker数,取硬件并行度
func WorkerNum() int {
	n := runtime.NumCPU()
	if n > MAXCpuNum {
		return MAXCpuNum
	}
	if n < 1 {
		return 1
	}
	return n
}

// 挖掘参数默认值
const (
	DefaultAlpha          = 0.05
	DefaultMinSupport     = 2
	DefaultMaxFactorSize  = 8
	DefaultMaxFactorWidth = 50
)

// MaxMaxentFactorSize 单因子模式数的硬上限,因子内推断对模式数是指数级的
const MaxMaxentFactorSize = 12

// LordWealthFactor LORD初始财富占alpha的比例 w0 = alpha*factor
const LordWealthFactor = 0.5

// 无预算时的哨兵值
const (
	NoLimit        = math.MaxInt64
	NoTimeLimitSec = math.MaxFloat64
)

// 拟合相关
const (
	FitTolerance = 1e-9
	FitMaxIter   = 200
)

// LogPvalFloor log概率的下界,代替-Inf,保证下游比较不出NaN
const LogPvalFloor = -math.MaxFloat64 / 2

// ExactTailLimit 小于该n用精确求和,否则用Chernoff界
const ExactTailLimit = 50

// 结果输出
const (
	ResultDir = "result"
)
