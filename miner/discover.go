package miner

import (
	"math"
	"runtime/debug"
	"sort"
	"sync"
	"time"

	"github.com/yourbasic/bit"

	"sigpat/share/base/logger"
	"sigpat/share/global/enum"
	"sigpat/utils"
)

// discoverer 逐层BFS的模式发现器。
// 主循环单线程管理队列;一层内的候选并行打分;report阶段单线程改写模型与检验状态,
// 批内按score降序、同分按项集字典序,保证固定输入下结果可复现。
type discoverer struct {
	taskId     int64
	adjustment string
	data       *Dataset
	opts       Options

	models []*Model
	masks  []*bit.Set // 每组行掩码,单组时为nil单元素
	sizes  []int      // 每组行数

	fwer *fwerState
	lord *LordState

	scratches []*Scratch

	expansions  int64
	discoveries int64
	startTime   time.Time
	stopFn      func() bool
	stopped     bool
}

// run 执行发现主循环,返回接受的模式总数
func (t *discoverer) run() int64 {
	t.startTime = time.Now()
	currLayer := t.pruneRoots(rootCandidates(t.data))
	layerNo := 1
	for len(currLayer) > 0 {
		if t.exhausted() {
			break
		}
		t.scoreBatch(currLayer)
		t.expansions += int64(len(currLayer))

		// report按score降序,同分按项集字典序
		order := make([]*Candidate, len(currLayer))
		copy(order, currLayer)
		sort.SliceStable(order, func(i, j int) bool {
			if order[i].Score != order[j].Score {
				return order[i].Score > order[j].Score
			}
			return utils.LessItems(order[i].Items, order[j].Items)
		})
		for _, cand := range order {
			if t.stopped || t.discoveries >= t.opts.MaxDiscoveries {
				break
			}
			if cand.Score <= 0 {
				continue
			}
			t.report(cand)
		}
		logger.Infof("taskId:%v, 第%v层打分完成, 候选:%v, 累计扩展:%v, 累计模式:%v",
			t.taskId, layerNo, len(currLayer), t.expansions, t.discoveries)

		currLayer = t.expand(currLayer)
		layerNo++
	}
	return t.discoveries
}

// pruneRoots 单例层直接用支持度剪枝
func (t *discoverer) pruneRoots(roots []*Candidate) []*Candidate {
	ans := make([]*Candidate, 0, len(roots))
	for _, cand := range roots {
		if cand.Support < t.opts.MinSupport {
			continue
		}
		ans = append(ans, cand)
	}
	return ans
}

// exhausted 预算检查,只在批边界调用
func (t *discoverer) exhausted() bool {
	if t.stopped {
		return true
	}
	if t.stopFn != nil && t.stopFn() {
		logger.Infof("taskId:%v, 收到停止信号,终止模式发现", t.taskId)
		t.stopped = true
		return true
	}
	if t.expansions >= t.opts.MaxExpansions {
		logger.Infof("taskId:%v, 扩展数达到预算%v", t.taskId, t.opts.MaxExpansions)
		return true
	}
	if t.discoveries >= t.opts.MaxDiscoveries {
		logger.Infof("taskId:%v, 模式数达到预算%v", t.taskId, t.opts.MaxDiscoveries)
		return true
	}
	if time.Since(t.startTime).Seconds() >= t.opts.MaxSeconds {
		logger.Infof("taskId:%v, 运行时间达到预算%vs", t.taskId, t.opts.MaxSeconds)
		return true
	}
	return false
}

// scoreBatch 一层候选并行打分,worker各自持有scratch,模型在本批内只读
func (t *discoverer) scoreBatch(batch []*Candidate) {
	workers := utils.Min(t.opts.Workers, len(batch))
	if workers < 1 {
		workers = 1
	}
	ch := make(chan *Candidate, len(batch))
	for _, cand := range batch {
		ch <- cand
	}
	close(ch)
	wg := sync.WaitGroup{}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		sc := t.scratches[w]
		go func(sc *Scratch) {
			defer func() {
				wg.Done()
				if err := recover(); err != nil {
					s := string(debug.Stack())
					logger.Errorf("recover.err:%v, stack:\n%v", err, s)
				}
			}()
			for cand := range ch {
				t.scoreCandidate(cand, sc)
			}
		}(sc)
	}
	wg.Wait()
}

// scoreCandidate 给单个候选打分。
// 支持度不足或全部组都forbidden时置infeasible,两者对子树都是单调的,可整棵剪掉。
func (t *discoverer) scoreCandidate(cand *Candidate, sc *Scratch) {
	cand.materializeRows(t.data)
	if cand.Support < t.opts.MinSupport {
		cand.infeasible = true
		return
	}

	numGroups := len(t.models)
	cand.groupPv = make([]float64, numGroups)
	cand.groupSupp = make([]int, numGroups)
	allForbidden := true
	for g := 0; g < numGroups; g++ {
		if t.models[g].IsForbidden(cand.Items, sc.Forbid) {
			continue
		}
		allForbidden = false
		supp := cand.Support
		if t.masks[g] != nil {
			utils.IntersectInto(sc.RowsA, cand.Rows, t.masks[g])
			supp = sc.RowsA.Size()
		}
		cand.groupSupp[g] = supp
		expect := t.models[g].Expectation(cand.Items, sc.Infer)
		cand.groupPv[g] = -BinomialLogTail(supp, expect, t.sizes[g])
	}
	if allForbidden {
		cand.infeasible = true
		return
	}

	cand.Score = t.scoreFromPv(cand)
}

// scoreFromPv 按校正方式把各组pv聚合成score,0表示本轮不可报告
func (t *discoverer) scoreFromPv(cand *Candidate) float64 {
	switch t.adjustment {
	case enum.FDR:
		// 无望候选预筛:pv不超过-logα的直接丢弃
		filter := -math.Log(t.lord.alpha)
		best := 0.0
		for _, pv := range cand.groupPv {
			if pv > best {
				best = pv
			}
		}
		if best <= filter {
			return 0
		}
		return best
	default: // FWER
		th := t.fwer.threshold(len(cand.Items))
		if len(t.models) == 1 {
			pv := cand.groupPv[0]
			if pv >= th {
				return pv
			}
			return 0
		}
		score := 0.0
		qualifies := false
		for _, pv := range cand.groupPv {
			if pv >= th {
				qualifies = true
			}
			if pv > th {
				score += pv - th
			}
		}
		if !qualifies {
			return 0
		}
		if score == 0 {
			score = math.SmallestNonzeroFloat64
		}
		return score
	}
}

// report 单线程报告阶段:用当前模型重算pv再过阈值,通过则插入模型。
// 模型在上一批report中可能已经变化,这里的重算等价于对仍在队列的候选做惰性重打分。
func (t *discoverer) report(cand *Candidate) {
	switch t.adjustment {
	case enum.FDR:
		t.reportFdr(cand)
	default:
		t.reportFwer(cand)
	}
}

func (t *discoverer) reportFwer(cand *Candidate) {
	th := t.fwer.threshold(len(cand.Items))
	inserted := false
	for g := range t.models {
		if t.discoveries >= t.opts.MaxDiscoveries {
			break
		}
		pv, ok := t.rescore(cand, g)
		if !ok || pv < th {
			continue
		}
		freq := float64(cand.groupSupp[g]) / float64(t.sizes[g])
		if !t.models[g].InsertPattern(freq, cand.Items, cand.groupSupp[g], pv) {
			continue
		}
		inserted = true
		t.discoveries++
		logger.Infof("taskId:%v, find pattern: %v, group: %v, support: %v, pv: %.4f, threshold: %.4f",
			t.taskId, cand.Items, g, cand.groupSupp[g], pv, th)
	}
	if inserted {
		t.fwer.advance(len(cand.Items))
	}
}

func (t *discoverer) reportFdr(cand *Candidate) {
	for g := range t.models {
		if t.discoveries >= t.opts.MaxDiscoveries {
			break
		}
		pv, ok := t.rescore(cand, g)
		if !ok {
			continue
		}
		p := math.Exp(-pv)
		if !t.lord.Test(p) {
			continue
		}
		freq := float64(cand.groupSupp[g]) / float64(t.sizes[g])
		if !t.models[g].InsertPattern(freq, cand.Items, cand.groupSupp[g], pv) {
			continue
		}
		t.discoveries++
		logger.Infof("taskId:%v, find pattern: %v, group: %v, support: %v, pv: %.4f, lord level: %v",
			t.taskId, cand.Items, g, cand.groupSupp[g], pv, t.lord.Level())
	}
}

// rescore 在report阶段用当前模型重算组g的pv,forbidden时返回false
func (t *discoverer) rescore(cand *Candidate, g int) (float64, bool) {
	sc := t.scratches[0]
	if t.models[g].IsForbidden(cand.Items, sc.Forbid) {
		return 0, false
	}
	expect := t.models[g].Expectation(cand.Items, sc.Infer)
	pv := -BinomialLogTail(cand.groupSupp[g], expect, t.sizes[g])
	return pv, true
}

// expand 生成下一层:非剪枝节点追加更大的单例
func (t *discoverer) expand(currLayer []*Candidate) []*Candidate {
	var next []*Candidate
	for _, cand := range currLayer {
		if cand.infeasible {
			continue
		}
		for col := cand.last() + 1; col < t.data.NumCols; col++ {
			if t.data.SingletonSupport(col) < t.opts.MinSupport {
				continue
			}
			next = append(next, cand.child(col))
		}
	}
	return next
}
