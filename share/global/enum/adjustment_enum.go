package enum

import "sigpat/share/base/logger"

// 多重检验校正方式
// FWER 族错误率,逐层log-Bonferroni阈值
// FDR 错误发现率,LORD序贯检验
const (
	FWER = "fwer"
	FDR  = "fdr"
)

// CheckAdjustment 校验请求中的校正方式,非法时回退FWER
func CheckAdjustment(s string) string {
	switch s {
	case FWER, FDR:
		return s
	case "":
		return FWER
	default:
		logger.Errorf("UNKNOWN adjustment:%s", s)
		return FWER
	}
}
