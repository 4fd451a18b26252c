package logger

import (
	"os"
	"path"
	"strings"
	"time"

	"github.com/LinkinStars/golang-util/gu"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// projectName 项目名称,用于命名日志文件和截短调用路径
var projectName = "sigpat"

// initZap 初始化zap日志配置
// name: 项目名称
// logPath: 日志打印目录
// maxAge: 日志最大存在时间,单位:天
// rotationTime: 日志切分时间,单位:小时
// rotationSize: 日志切分大小,单位:MB
func initZap(name, logPath string, maxAge, rotationTime time.Duration, rotationSize uint32, dsn string) {
	if len(name) != 0 {
		projectName = name
	}

	maxAge = maxAge * 24 * time.Hour
	rotationTime = rotationTime * time.Hour
	if rotationSize == 0 {
		rotationSize = 1024 //1G
	}
	rotationSizeMB := int64(rotationSize) * 1024 * 1024
	// 创建日志存放目录
	if err := gu.CreateDirIfNotExist(logPath); err != nil {
		panic(err)
	}
	logPath = path.Join(logPath, projectName)

	// error日志文件配置
	errWriter, err := rotatelogs.New(
		logPath+"_err_%Y-%m-%d.log",
		rotatelogs.WithLinkName(logPath+"_err_last.log"), // 软链,指向最新日志文件
		rotatelogs.WithMaxAge(maxAge),
		rotatelogs.WithRotationTime(rotationTime),
		rotatelogs.WithRotationSize(rotationSizeMB),
	)
	if err != nil {
		panic(err)
	}

	// info日志文件配置
	infoWriter, err := rotatelogs.New(
		logPath+"_info_%Y-%m-%d.log",
		rotatelogs.WithLinkName(logPath+"_info_last.log"), // 软链,指向最新日志文件
		rotatelogs.WithMaxAge(maxAge),
		rotatelogs.WithRotationTime(rotationTime),
		rotatelogs.WithRotationSize(rotationSizeMB),
	)
	if err != nil {
		panic(err)
	}

	highPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl > zapcore.WarnLevel
	})
	lowPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= parseLevel(logLevel)
	})

	// 控制台输出设置
	consoleDebugging := zapcore.Lock(os.Stdout)
	consoleEncoderConfig := zap.NewDevelopmentEncoderConfig()
	consoleEncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	consoleEncoderConfig.EncodeTime = timeEncoder
	consoleEncoderConfig.EncodeCaller = shortCallerEncoder
	consoleEncoder := zapcore.NewConsoleEncoder(consoleEncoderConfig)

	// 文件输出设置
	errorCore := zapcore.AddSync(errWriter)
	infoCore := zapcore.AddSync(infoWriter)
	fileEncodeConfig := zap.NewProductionEncoderConfig()
	fileEncodeConfig.EncodeTime = timeEncoder
	fileEncodeConfig.EncodeCaller = shortCallerEncoder
	fileEncoder := zapcore.NewJSONEncoder(fileEncodeConfig)

	cores := []zapcore.Core{
		zapcore.NewCore(fileEncoder, errorCore, highPriority),
		zapcore.NewCore(fileEncoder, infoCore, lowPriority),
		zapcore.NewCore(consoleEncoder, consoleDebugging, parseLevel(logLevel)),
	}
	if len(dsn) != 0 {
		if sentryCore, err := newSentryCoreFromDsn(dsn); err == nil {
			cores = append(cores, sentryCore)
		}
	}
	core := zapcore.NewTee(cores...)

	logger := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1), zap.Development())
	// 替换全局日志
	zap.ReplaceGlobals(logger)

	// 将系统输出重定向到zap中,保证所有异常均能打印到文件
	if _, err := zap.RedirectStdLogAt(logger, zapcore.ErrorLevel); err != nil {
		panic(err)
	}
}

// shortCallerEncoder 自定义打印路径,根据项目名截短输出
func shortCallerEncoder(caller zapcore.EntryCaller, enc zapcore.PrimitiveArrayEncoder) {
	str := caller.String()
	index := strings.Index(str, projectName)
	if index == -1 {
		enc.AppendString(caller.FullPath())
	} else {
		index = index + len(projectName) + 1
		enc.AppendString(str[index:])
	}
}

// timeEncoder 格式化日志时间,官方的不好看
func timeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("2006-01-02 15:04:05.000"))
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
