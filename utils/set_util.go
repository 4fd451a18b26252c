package utils

import (
	"github.com/yourbasic/bit"
)

// IntersectInto dst = a ∩ b,复用dst避免热路径分配
func IntersectInto(dst, a, b *bit.Set) *bit.Set {
	return dst.SetAnd(a, b)
}

// CopyInto dst = src
func CopyInto(dst, src *bit.Set) *bit.Set {
	return dst.SetAnd(src, src)
}

// ClearSet 原地清空,复用底层存储
func ClearSet(s *bit.Set) *bit.Set {
	return s.SetAndNot(s, s)
}

// SetToSlice 按升序导出集合元素
func SetToSlice(s *bit.Set) []int {
	ans := make([]int, 0, s.Size())
	s.Visit(func(n int) bool {
		ans = append(ans, n)
		return false
	})
	return ans
}

// SetOf 由元素构造集合
func SetOf(items ...int) *bit.Set {
	return bit.New(items...)
}

// UnionSorted 两个升序项集求并,结果仍升序
func UnionSorted(a, b []int) []int {
	ans := make([]int, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			ans = append(ans, a[i])
			i++
		case a[i] > b[j]:
			ans = append(ans, b[j])
			j++
		default:
			ans = append(ans, a[i])
			i++
			j++
		}
	}
	ans = append(ans, a[i:]...)
	ans = append(ans, b[j:]...)
	return ans
}

// ContainsSorted 升序项集中是否含有item
func ContainsSorted(items []int, item int) bool {
	lo, hi := 0, len(items)
	for lo < hi {
		mid := (lo + hi) / 2
		if items[mid] < item {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo < len(items) && items[lo] == item
}

// AppendSorted 升序项集追加一个更大的元素,调用方保证item大于末尾
func AppendSorted(items []int, item int) []int {
	ans := make([]int, 0, len(items)+1)
	ans = append(ans, items...)
	return append(ans, item)
}

// LessItems 项集字典序比较,用于确定性排序
func LessItems(a, b []int) bool {
	n := Min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
