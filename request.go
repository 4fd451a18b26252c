package main

// SigPatRequest 挖掘请求。路径指向服务可见的本地文件。
type SigPatRequest struct {
	Transactions   string  `json:"transactions"` // 事务文件,每行为该行含有的列下标
	Matrix         string  `json:"matrix"`       // 或者:带表头的0/1矩阵csv,与transactions二选一
	Labels         string  `json:"labels"`       // 可选,每行一个整数标签
	Adjustment     string  `json:"adjustment"`   // fwer|fdr,默认fwer
	Alpha          float64 `json:"alpha"`
	MinSupport     int     `json:"minSupport"`
	MaxFactorSize  int     `json:"maxFactorSize"`
	MaxFactorWidth int     `json:"maxFactorWidth"`
	MaxExpansions  int64   `json:"maxExpansions"`
	MaxDiscoveries int64   `json:"maxDiscoveries"`
	MaxSeconds     float64 `json:"maxSeconds"`
	RowFilter      string  `json:"rowFilter"` // 可选,对列名的布尔表达式,只保留为真的行
	DotPath        string  `json:"dotPath"`   // 可选,因子图dot输出路径
}
