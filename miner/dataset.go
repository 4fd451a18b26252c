package miner

import (
	"github.com/yourbasic/bit"

	"sigpat/utils"
)

// Dataset 二值数据集的行集合视图。核心只依赖两种操作:
// 任意列子集的支持度(行集合交集大小),以及每行包含的列下标。
type Dataset struct {
	NumRows     int
	NumCols     int
	ColumnNames []string

	// SingletonRows 列下标 -> 含该列的行集合
	SingletonRows []*bit.Set
}

// NewDatasetFromRows 由"每行含有的列下标"构造数据集。
// numCols<=0时取行中出现的最大列下标+1。行内下标无需有序,重复会被忽略。
func NewDatasetFromRows(rows [][]int, numCols int) *Dataset {
	maxCol := -1
	for _, row := range rows {
		for _, col := range row {
			if col > maxCol {
				maxCol = col
			}
		}
	}
	if numCols <= maxCol+1 {
		numCols = maxCol + 1
	}
	if numCols < 0 {
		numCols = 0
	}
	d := &Dataset{
		NumRows:       len(rows),
		NumCols:       numCols,
		SingletonRows: make([]*bit.Set, numCols),
	}
	for col := 0; col < numCols; col++ {
		d.SingletonRows[col] = bit.New()
	}
	for rowId, row := range rows {
		for _, col := range row {
			if col >= 0 {
				d.SingletonRows[col].Add(rowId)
			}
		}
	}
	return d
}

// NewDatasetFromMatrix 由n×m布尔矩阵构造数据集
func NewDatasetFromMatrix(matrix [][]bool) *Dataset {
	numCols := 0
	for _, row := range matrix {
		if len(row) > numCols {
			numCols = len(row)
		}
	}
	d := &Dataset{
		NumRows:       len(matrix),
		NumCols:       numCols,
		SingletonRows: make([]*bit.Set, numCols),
	}
	for col := 0; col < numCols; col++ {
		d.SingletonRows[col] = bit.New()
	}
	for rowId, row := range matrix {
		for col, v := range row {
			if v {
				d.SingletonRows[col].Add(rowId)
			}
		}
	}
	return d
}

// SingletonSupport 单列支持度
func (d *Dataset) SingletonSupport(col int) int {
	return d.SingletonRows[col].Size()
}

// SingletonFreqs 各列经验频率,空数据集时全0
func (d *Dataset) SingletonFreqs() []float64 {
	freqs := make([]float64, d.NumCols)
	if d.NumRows == 0 {
		return freqs
	}
	for col := 0; col < d.NumCols; col++ {
		freqs[col] = float64(d.SingletonRows[col].Size()) / float64(d.NumRows)
	}
	return freqs
}

// MaskedFreqs mask内各列经验频率,用于分组模型初始化
func (d *Dataset) MaskedFreqs(mask *bit.Set, scratch *bit.Set) []float64 {
	freqs := make([]float64, d.NumCols)
	maskSize := mask.Size()
	if maskSize == 0 {
		return freqs
	}
	for col := 0; col < d.NumCols; col++ {
		utils.IntersectInto(scratch, d.SingletonRows[col], mask)
		freqs[col] = float64(scratch.Size()) / float64(maskSize)
	}
	return freqs
}

// GroupMasks 按标签生成每组的行掩码,返回有序的标签值和对应掩码
func GroupMasks(labels []int) ([]int, []*bit.Set) {
	byLabel := make(map[int]*bit.Set)
	for rowId, label := range labels {
		if _, ok := byLabel[label]; !ok {
			byLabel[label] = bit.New()
		}
		byLabel[label].Add(rowId)
	}
	values := utils.SortedKeys(byLabel)
	masks := make([]*bit.Set, len(values))
	for i, label := range values {
		masks[i] = byLabel[label]
	}
	return values, masks
}
