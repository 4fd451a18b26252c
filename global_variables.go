package main

import (
	"strconv"

	cmap "github.com/orcaman/concurrent-map"

	"sigpat/share/global/enum"
)

// globalVariable [taskId, *GlobalV] 任务注册表
var globalVariable = cmap.New()

// GlobalV 一次挖掘任务的全局状态
type GlobalV struct {
	TaskId     int64
	Status     string
	StopTask   bool
	NumRows    int
	NumCols    int
	NumGroups  int
	Adjustment string
}

func InitGv(taskId int64) *GlobalV {
	gv := &GlobalV{
		TaskId: taskId,
		Status: enum.DIG_EXEC,
	}
	globalVariable.Set(strconv.FormatInt(taskId, 10), gv)
	return gv
}

func GetGv(taskId int64) *GlobalV {
	if v, ok := globalVariable.Get(strconv.FormatInt(taskId, 10)); ok {
		return v.(*GlobalV)
	}
	return nil
}

// Stop 协作式停止信号,发现器在批边界检查
func (gv *GlobalV) Stop() bool {
	return gv.StopTask
}

// ClearMemory 任务结束后清理注册表
func ClearMemory(taskId int64) {
	globalVariable.Remove(strconv.FormatInt(taskId, 10))
}
