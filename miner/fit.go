package miner

import (
	"sigpat/share/base/logger"
	"sigpat/share/global/enum"
	"sigpat/share/global/model/mine"
)

// FitResult 一次挖掘的结果:每组一个拟合好的模型,单组时长度1
type FitResult struct {
	Models      []*Model
	GroupValues []int // 多组时各模型对应的标签值,单组为nil
	Expansions  int64
	Discoveries int64
}

// Patterns 汇总全部组的已接受模式,带组下标
func (r *FitResult) Patterns() []mine.Pattern {
	var ans []mine.Pattern
	for g, model := range r.Models {
		for _, p := range model.Patterns() {
			p.Group = g
			ans = append(ans, p)
		}
	}
	return ans
}

// Fit 显著模式挖掘入口。
// adjustment取enum.FWER或enum.FDR;labels为nil时单组。
// 参数非法返回错误;空数据集(n=0或m=0)返回空模型,不报错。
func Fit(adjustment string, data *Dataset, labels []int, opts Options) (*FitResult, error) {
	return FitTask(0, adjustment, data, labels, opts, nil)
}

// FitTask 带任务号与停止信号的挖掘入口,服务端用
func FitTask(taskId int64, adjustment string, data *Dataset, labels []int, opts Options, stopFn func() bool) (*FitResult, error) {
	opts, err := opts.normalize()
	if err != nil {
		return nil, err
	}
	adjustment = enum.CheckAdjustment(adjustment)

	models, masks, sizes, err := buildGroupModels(data, labels, opts)
	if err != nil {
		return nil, err
	}
	result := &FitResult{Models: models}
	if labels != nil {
		values, _ := GroupMasks(labels)
		result.GroupValues = values
	}

	// 退化输入直接返回空模型
	if data.NumRows == 0 || data.NumCols == 0 {
		logger.Infof("taskId:%v, 数据集为空,返回空模型", taskId)
		return result, nil
	}

	scratches := make([]*Scratch, opts.Workers)
	for i := range scratches {
		scratches[i] = NewScratch()
	}

	t := &discoverer{
		taskId:     taskId,
		adjustment: adjustment,
		data:       data,
		opts:       opts,
		models:     models,
		masks:      masks,
		sizes:      sizes,
		fwer:       newFwerState(opts.Alpha, data.NumCols),
		lord:       NewLordState(opts.Alpha),
		scratches:  scratches,
		stopFn:     stopFn,
	}
	t.run()
	result.Expansions = t.expansions
	result.Discoveries = t.discoveries
	logger.Infof("taskId:%v, 模式发现完成, 扩展:%v, 模式:%v", taskId, t.expansions, t.discoveries)
	return result, nil
}
