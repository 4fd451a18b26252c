package logger

import (
	"time"

	"go.uber.org/zap"
)

var logLevel = "info"

// InitLogger 初始化全局日志
// level: 日志级别 debug/info/warn/error
// name: 项目名称
// logPath: 日志目录
// maxAge: 日志最大存在时间,单位:天
// rotationTime: 日志切分时间,单位:小时
// rotationSize: 日志切分大小,单位:MB
// dsn: sentry上报地址,为空则不上报
func InitLogger(level, name, logPath string, maxAge, rotationTime time.Duration, rotationSize uint32, dsn string) {
	if len(level) != 0 {
		logLevel = level
	}
	initZap(name, logPath, maxAge, rotationTime, rotationSize, dsn)
}

func Debugf(template string, args ...interface{}) {
	zap.S().Debugf(template, args...)
}

func Infof(template string, args ...interface{}) {
	zap.S().Infof(template, args...)
}

func Warnf(template string, args ...interface{}) {
	zap.S().Warnf(template, args...)
}

func Errorf(template string, args ...interface{}) {
	zap.S().Errorf(template, args...)
}

func Error(args ...interface{}) {
	zap.S().Error(args...)
}

func Sync() {
	_ = zap.S().Sync()
}
