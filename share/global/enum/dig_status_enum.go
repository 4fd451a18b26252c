package enum

/*
digStatus模式挖掘状态：
DIG_EXEC 挖掘中
DIG_FINISH 挖掘完成
DIG_FAIL 挖掘失败
*/

const (
	DIG_EXEC   = "DIG_EXEC"
	DIG_FINISH = "DIG_FINISH"
	DIG_FAIL   = "DIG_FAIL"
)
