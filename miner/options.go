package miner

import (
	"math"

	"sigpat/mine_config"
	"sigpat/utils"
)

// Options 挖掘参数,零值字段取默认
type Options struct {
	Alpha          float64 // 目标错误率(FWER的α或FDR目标)
	MinSupport     int     // 模式的最小绝对行数
	MaxFactorSize  int     // 单因子模式数上限,硬上限12
	MaxFactorWidth int     // 单因子单例数上限
	MaxExpansions  int64   // 节点扩展预算,0表示不限
	MaxDiscoveries int64   // 模式数预算,0表示不限
	MaxSeconds     float64 // 墙钟预算,0表示不限
	Workers        int     // 打分并发度,0取硬件并行度
}

// DefaultOptions 默认参数
func DefaultOptions() Options {
	return Options{
		Alpha:          mine_config.DefaultAlpha,
		MinSupport:     mine_config.DefaultMinSupport,
		MaxFactorSize:  mine_config.DefaultMaxFactorSize,
		MaxFactorWidth: mine_config.DefaultMaxFactorWidth,
	}
}

// normalize 补齐零值并校验。Workers与三项预算非正时取默认(预算即不限);
// 其余参数非法直接报错,不做静默修正
func (o Options) normalize() (Options, error) {
	if o.Alpha == 0 {
		o.Alpha = mine_config.DefaultAlpha
	}
	if o.MaxFactorSize == 0 {
		o.MaxFactorSize = mine_config.DefaultMaxFactorSize
	}
	if o.MaxFactorWidth == 0 {
		o.MaxFactorWidth = mine_config.DefaultMaxFactorWidth
	}
	if o.MinSupport == 0 {
		o.MinSupport = mine_config.DefaultMinSupport
	}
	if o.Workers <= 0 {
		o.Workers = mine_config.WorkerNum()
	}
	if o.MaxExpansions <= 0 {
		o.MaxExpansions = mine_config.NoLimit
	}
	if o.MaxDiscoveries <= 0 {
		o.MaxDiscoveries = mine_config.NoLimit
	}
	if o.MaxSeconds <= 0 {
		o.MaxSeconds = mine_config.NoTimeLimitSec
	}

	if o.Alpha <= 0 || o.Alpha >= 1 || math.IsNaN(o.Alpha) {
		return o, utils.ErrParameter
	}
	if o.MinSupport < 0 {
		return o, utils.ErrParameter
	}
	if o.MaxFactorSize < 1 || o.MaxFactorSize > mine_config.MaxMaxentFactorSize {
		return o, utils.ErrParameter
	}
	if o.MaxFactorWidth < 1 {
		return o, utils.ErrParameter
	}
	return o, nil
}
