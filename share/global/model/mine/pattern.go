package mine

import (
	"strconv"
	"strings"
)

// Pattern 被接受的显著模式
type Pattern struct {
	PatternId int      `json:"-"`
	Str       string   `json:"pattern"` // "c1 ^ c4 ^ c9"形式
	Items     []int    `json:"items"`   // 列下标,升序
	ItemNames []string `json:"itemNames,omitempty"`
	Support   int      `json:"support"`
	Frequency float64  `json:"frequency"` // 插入模型时的经验频率(组内支持度/组内行数)
	Score     float64  `json:"score"`     // -log p值,越大越显著
	Group     int      `json:"group"`     // 多组时所属组,单组恒为0
}

// ItemsToStr 将一个项集转换成展示用字符串
func ItemsToStr(items []int, names []string) string {
	parts := make([]string, len(items))
	for i, item := range items {
		if names != nil && item < len(names) && names[item] != "" {
			parts[i] = names[item]
		} else {
			parts[i] = "c" + strconv.Itoa(item)
		}
	}
	return strings.Join(parts, " ^ ")
}
