package miner

import (
	"github.com/yourbasic/bit"

	"sigpat/utils"
)

// Candidate 搜索格点上的一个候选模式。
// 子节点只追加比当前项集末尾更大的单例,保证每个项集只被枚举一次。
type Candidate struct {
	Items   []int    // 升序项集
	Rows    *bit.Set // rows_S,懒计算
	Support int
	Score   float64 // 非负log p值,0表示不可用

	// 懒计算行集用:父节点行集与扩展列,打分阶段求交
	parentRows *bit.Set
	ext        int

	// 多组打分结果,单组时长度1
	groupPv   []float64
	groupSupp []int

	// infeasible 支持度不足或被caps禁止,整棵子树可剪
	infeasible bool
}

// rootCandidates 全部单例候选
func rootCandidates(d *Dataset) []*Candidate {
	roots := make([]*Candidate, d.NumCols)
	for col := 0; col < d.NumCols; col++ {
		rows := bit.New()
		utils.CopyInto(rows, d.SingletonRows[col])
		roots[col] = &Candidate{
			Items:   []int{col},
			Rows:    rows,
			Support: rows.Size(),
		}
	}
	return roots
}

// child 以单例col扩展候选,行集留到打分阶段求交
func (c *Candidate) child(col int) *Candidate {
	return &Candidate{
		Items:      utils.AppendSorted(c.Items, col),
		parentRows: c.Rows,
		ext:        col,
	}
}

// last 项集末尾的单例
func (c *Candidate) last() int {
	return c.Items[len(c.Items)-1]
}

// materializeRows 子候选在打分阶段求出自己的行集
func (c *Candidate) materializeRows(d *Dataset) {
	if c.Rows != nil {
		return
	}
	rows := bit.New()
	utils.IntersectInto(rows, c.parentRows, d.SingletonRows[c.ext])
	c.Rows = rows
	c.Support = rows.Size()
	c.parentRows = nil
}
