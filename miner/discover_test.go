package miner

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"sigpat/share/global/enum"
)

// blockDataset 20×20,两个10×10全1块,无交叉
func blockDataset() *Dataset {
	rows := make([][]int, 20)
	for r := 0; r < 10; r++ {
		row := make([]int, 10)
		for c := 0; c < 10; c++ {
			row[c] = c
		}
		rows[r] = row
	}
	for r := 10; r < 20; r++ {
		row := make([]int, 10)
		for c := 0; c < 10; c++ {
			row[c] = 10 + c
		}
		rows[r] = row
	}
	return NewDatasetFromRows(rows, 20)
}

func TestBlockDiagonalFwer(t *testing.T) {
	Convey("块对角数据集上的FWER挖掘", t, func() {
		d := blockDataset()
		opts := DefaultOptions()
		opts.Workers = 4
		result, err := Fit(enum.FWER, d, nil, opts)
		So(err, ShouldBeNil)
		patterns := result.Patterns()
		So(len(patterns), ShouldBeGreaterThan, 0)

		Convey("没有跨块模式,每个模式都落在单个块内", func() {
			block1, block2 := 0, 0
			for _, p := range patterns {
				inBlock1, inBlock2 := false, false
				for _, item := range p.Items {
					if item < 10 {
						inBlock1 = true
					} else {
						inBlock2 = true
					}
				}
				So(inBlock1 && inBlock2, ShouldBeFalse)
				if inBlock1 {
					block1++
				}
				if inBlock2 {
					block2++
				}
				// 块内项集的支持度恒为10,score是接受时刻的-log p值
				So(p.Support, ShouldEqual, 10)
				So(p.Score, ShouldBeGreaterThan, 0)
			}
			Convey("两个块都被发现了结构", func() {
				So(block1, ShouldBeGreaterThan, 0)
				So(block2, ShouldBeGreaterThan, 0)
			})
		})
	})
}

func TestAlphaTiny(t *testing.T) {
	Convey("alpha趋0时不接受任何模式", t, func() {
		d := blockDataset()
		opts := DefaultOptions()
		opts.Alpha = 1e-300
		for _, adjustment := range []string{enum.FWER, enum.FDR} {
			result, err := Fit(adjustment, d, nil, opts)
			So(err, ShouldBeNil)
			So(len(result.Patterns()), ShouldEqual, 0)
		}
	})
}

func TestBudgets(t *testing.T) {
	Convey("预算约束", t, func() {
		d := blockDataset()

		Convey("max_discoveries=1时至多接受1个模式", func() {
			opts := DefaultOptions()
			opts.MaxDiscoveries = 1
			result, err := Fit(enum.FWER, d, nil, opts)
			So(err, ShouldBeNil)
			So(result.Discoveries, ShouldBeLessThanOrEqualTo, 1)
			So(len(result.Patterns()), ShouldBeLessThanOrEqualTo, 1)
		})

		Convey("max_expansions限制扩展,批边界检查,至多超出一批", func() {
			opts := DefaultOptions()
			opts.MaxExpansions = 5
			result, err := Fit(enum.FWER, d, nil, opts)
			So(err, ShouldBeNil)
			// 第一层20个候选作为一批跑完,之后停止
			So(result.Expansions, ShouldBeLessThanOrEqualTo, 25)
		})
	})
}

func TestMinSupportInvariant(t *testing.T) {
	Convey("接受的模式支持度不低于min_support", t, func() {
		d := blockDataset()
		opts := DefaultOptions()
		opts.MinSupport = 5
		for _, adjustment := range []string{enum.FWER, enum.FDR} {
			result, err := Fit(adjustment, d, nil, opts)
			So(err, ShouldBeNil)
			for _, p := range result.Patterns() {
				So(p.Support, ShouldBeGreaterThanOrEqualTo, 5)
			}
		}
	})
}

func TestFactorCapInvariant(t *testing.T) {
	Convey("终止时每个因子的模式数与宽度都不超限", t, func() {
		d := blockDataset()
		opts := DefaultOptions()
		opts.MaxFactorSize = 2
		opts.MaxFactorWidth = 8
		result, err := Fit(enum.FWER, d, nil, opts)
		So(err, ShouldBeNil)
		for _, model := range result.Models {
			for _, f := range model.Factors() {
				So(len(f.Patterns), ShouldBeLessThanOrEqualTo, 2)
				So(f.Singletons.Size(), ShouldBeLessThanOrEqualTo, 8)
			}
		}
	})
}

func TestDeterminism(t *testing.T) {
	Convey("相同输入与参数下两次运行结果完全一致", t, func() {
		d := blockDataset()
		opts := DefaultOptions()
		opts.Workers = 4
		for _, adjustment := range []string{enum.FWER, enum.FDR} {
			r1, err1 := Fit(adjustment, d, nil, opts)
			r2, err2 := Fit(adjustment, d, nil, opts)
			So(err1, ShouldBeNil)
			So(err2, ShouldBeNil)
			p1, p2 := r1.Patterns(), r2.Patterns()
			So(len(p1), ShouldEqual, len(p2))
			for i := range p1 {
				So(p1[i].Str, ShouldEqual, p2[i].Str)
				So(p1[i].Support, ShouldEqual, p2[i].Support)
				So(p1[i].Group, ShouldEqual, p2[i].Group)
			}
		}
	})
}

func TestSingleLabelEqualsSingleGroup(t *testing.T) {
	Convey("只有一个标签值的多组模式与单组结果一致", t, func() {
		d := blockDataset()
		labels := make([]int, d.NumRows)
		opts := DefaultOptions()
		for _, adjustment := range []string{enum.FWER, enum.FDR} {
			single, err1 := Fit(adjustment, d, nil, opts)
			grouped, err2 := Fit(adjustment, d, labels, opts)
			So(err1, ShouldBeNil)
			So(err2, ShouldBeNil)
			So(len(grouped.Models), ShouldEqual, 1)
			p1, p2 := single.Patterns(), grouped.Patterns()
			So(len(p1), ShouldEqual, len(p2))
			for i := range p1 {
				So(p1[i].Str, ShouldEqual, p2[i].Str)
				So(p1[i].Support, ShouldEqual, p2[i].Support)
			}
		}
	})
}

// groupDataset 100行:组0里列{0,1}完美共现,组1里列{2,3}完美共现,
// 各组内富集的两列频率为0.5,另两列约0.25,跨块列对从不共现
func groupDataset() (*Dataset, []int) {
	rows := make([][]int, 100)
	labels := make([]int, 100)
	for r := 0; r < 50; r++ {
		labels[r] = 0
		switch {
		case r < 25:
			rows[r] = []int{0, 1}
		case r%2 == 0:
			rows[r] = []int{2}
		default:
			rows[r] = []int{3}
		}
	}
	for r := 50; r < 100; r++ {
		labels[r] = 1
		switch {
		case r < 75:
			rows[r] = []int{2, 3}
		case r%2 == 0:
			rows[r] = []int{0}
		default:
			rows[r] = []int{1}
		}
	}
	return NewDatasetFromRows(rows, 4), labels
}

func TestGroupMode(t *testing.T) {
	Convey("分组模式:各组各自发现自己的富集模式", t, func() {
		d, labels := groupDataset()
		opts := DefaultOptions()
		opts.Alpha = 0.05
		result, err := Fit(enum.FWER, d, labels, opts)
		So(err, ShouldBeNil)
		So(len(result.Models), ShouldEqual, 2)

		has01InG0, has23InG1 := false, false
		for _, p := range result.Patterns() {
			if p.Group == 0 && len(p.Items) == 2 && p.Items[0] == 0 && p.Items[1] == 1 {
				has01InG0 = true
			}
			if p.Group == 1 && len(p.Items) == 2 && p.Items[0] == 2 && p.Items[1] == 3 {
				has23InG1 = true
			}
			// 组0的模型里不该出现{2,3},组1里不该出现{0,1}
			if p.Group == 0 {
				So(p.Str, ShouldNotEqual, "c2 ^ c3")
			}
			if p.Group == 1 {
				So(p.Str, ShouldNotEqual, "c0 ^ c1")
			}
		}
		So(has01InG0, ShouldBeTrue)
		So(has23InG1, ShouldBeTrue)
	})
}

func TestNoiseInvariants(t *testing.T) {
	Convey("伪随机噪声数据上跑完不违反任何不变量", t, func() {
		// 固定线性同余序列生成确定性的0/1矩阵,约20%密度
		state := uint64(20240817)
		next := func() uint64 {
			state = state*6364136223846793005 + 1442695040888963407
			return state >> 33
		}
		rows := make([][]int, 60)
		for r := range rows {
			var row []int
			for c := 0; c < 20; c++ {
				if next()%5 == 0 {
					row = append(row, c)
				}
			}
			rows[r] = row
		}
		d := NewDatasetFromRows(rows, 20)
		opts := DefaultOptions()
		opts.Alpha = 0.01
		opts.MaxSeconds = 30
		for _, adjustment := range []string{enum.FWER, enum.FDR} {
			result, err := Fit(adjustment, d, nil, opts)
			So(err, ShouldBeNil)
			for _, p := range result.Patterns() {
				So(p.Support, ShouldBeGreaterThanOrEqualTo, opts.MinSupport)
			}
			for _, model := range result.Models {
				for _, f := range model.Factors() {
					So(len(f.Patterns), ShouldBeLessThanOrEqualTo, opts.MaxFactorSize)
					So(f.Singletons.Size(), ShouldBeLessThanOrEqualTo, opts.MaxFactorWidth)
				}
			}
		}
	})
}
