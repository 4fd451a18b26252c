package utils

import (
	"sort"

	"golang.org/x/exp/maps"
)

type Number interface {
	~int | ~int32 | ~int64 | ~float64 | ~float32
}

func Max[N Number](a, b N) N {
	if a > b {
		return a
	}
	return b
}

func Min[N Number](a, b N) N {
	if a < b {
		return a
	}
	return b
}

// Distinct 去重,保持首次出现顺序
func Distinct[T comparable](s []T) []T {
	seen := make(map[T]struct{}, len(s))
	ans := make([]T, 0, len(s))
	for _, v := range s {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		ans = append(ans, v)
	}
	return ans
}

// SortedKeys 取map的key并排序,保证遍历顺序确定
func SortedKeys[M ~map[int]V, V any](m M) []int {
	keys := maps.Keys(m)
	sort.Ints(keys)
	return keys
}
