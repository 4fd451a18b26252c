package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/gin-gonic/gin"

	"sigpat/mine_config"
	"sigpat/share/base/config"
	"sigpat/share/base/logger"
	"sigpat/share/global/db"
	"sigpat/share/global/enum"
	"sigpat/share/global/model/mine"
)

func main() {
	request, oneShot := parseFlags()
	if oneShot {
		runOnce(request)
		return
	}

	go func() {
		err := http.ListenAndServe(":8082", nil)
		if err != nil {
			fmt.Printf("http.ListenAndServe failed, err:%s", err)
		}
	}()

	// 一些初始化配置
	config.InitConfig()
	all := config.All
	l := all.Logger
	ss := all.Server
	logger.InitLogger(l.Level, "sigpat", l.Path, l.MaxAge, l.RotationTime, l.RotationSize, ss.SentryDsn)
	if err := db.InitDB(); err != nil {
		logger.Errorf("数据库初始化失败:%v", err)
	}
	r := gin.Default()

	r.POST("/sigpat", start)

	address := ":" + mine_config.GinPort
	if ss.HttpPort != "" {
		address = ":" + ss.HttpPort
	}
	r.Run(address)
}

func start(c *gin.Context) {
	var requestJson SigPatRequest
	if err := c.ShouldBindJSON(&requestJson); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		fmt.Println("_____________________请求异常:")
		fmt.Println(err)
		return
	}
	p, patterns, t, e := DigPatterns(&requestJson)
	if e != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"error":   e.Error(),
		})
	} else {
		c.JSON(http.StatusOK, gin.H{
			"success":      true,
			"result_path":  p,
			"patterns":     patterns,
			"pattern_size": len(patterns),
			"spent_time":   t,
		})
	}
}

// parseFlags 解析命令行。给了--transactions或--matrix时走单次CLI模式
func parseFlags() (*SigPatRequest, bool) {
	transactions := flag.String("transactions", "", "事务文件路径,每行为该行含有的列下标")
	matrix := flag.String("matrix", "", "0/1矩阵csv路径,与--transactions二选一")
	labels := flag.String("labels", "", "标签文件路径,可选")
	alpha := flag.Float64("alpha", 0, "目标错误率")
	useFwer := flag.Bool("fwer", false, "用FWER校正(默认)")
	useFdr := flag.Bool("fdr", false, "用FDR校正(LORD)")
	minSupport := flag.Int("min-support", 0, "模式最小绝对行数")
	maxFactorSize := flag.Int("max-factor-size", 0, "单因子模式数上限")
	maxFactorWidth := flag.Int("max-factor-width", 0, "单因子单例数上限")
	maxExpansions := flag.Int64("max-expansions", 0, "节点扩展预算")
	maxDiscoveries := flag.Int64("max-discoveries", 0, "模式数预算")
	maxSeconds := flag.Float64("max-seconds", 0, "墙钟预算,秒")
	rowFilter := flag.String("row-filter", "", "行过滤布尔表达式")
	dotPath := flag.String("dot", "", "因子图dot输出路径")
	flag.Parse()

	request := &SigPatRequest{
		Transactions:   *transactions,
		Matrix:         *matrix,
		Labels:         *labels,
		Alpha:          *alpha,
		MinSupport:     *minSupport,
		MaxFactorSize:  *maxFactorSize,
		MaxFactorWidth: *maxFactorWidth,
		MaxExpansions:  *maxExpansions,
		MaxDiscoveries: *maxDiscoveries,
		MaxSeconds:     *maxSeconds,
		RowFilter:      *rowFilter,
		DotPath:        *dotPath,
	}
	if *useFdr && !*useFwer {
		request.Adjustment = enum.FDR
	} else {
		request.Adjustment = enum.FWER
	}
	return request, *transactions != "" || *matrix != ""
}

// runOnce 单次CLI模式:挖完输出JSON {patterns, executiontime} 退出
func runOnce(request *SigPatRequest) {
	logger.InitLogger("warn", "sigpat", "./log", 1, 24, 0, "")

	_, patterns, spent, err := DigPatterns(request)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if patterns == nil {
		patterns = []mine.Pattern{}
	}
	out, err := json.Marshal(map[string]interface{}{
		"patterns":      patterns,
		"executiontime": spent,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
