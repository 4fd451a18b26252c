package main

import (
	"fmt"
	"os"
	"path"
	"strconv"
	"time"

	mapset "github.com/deckarep/golang-set"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"sigpat/mine_config"
	"sigpat/miner"
	"sigpat/share/base/config"
	"sigpat/share/base/logger"
	"sigpat/share/global/db"
	"sigpat/share/global/enum"
	"sigpat/share/global/model/mine"
	"sigpat/share/global/model/po"
	"sigpat/utils"
)

// DigPatterns 一次完整的模式挖掘任务:读数据、挖掘、落盘
func DigPatterns(request *SigPatRequest) (string, []mine.Pattern, int64, error) {
	startTime := time.Now().UnixMilli()
	taskId := startTime
	logger.Infof("模式挖掘开始")

	gv := InitGv(taskId)
	defer ClearMemory(taskId)

	rows, labels, names, err := loadRequestData(request)
	if err != nil {
		gv.Status = enum.DIG_FAIL
		return "", nil, 0, err
	}

	dataset := miner.NewDatasetFromRows(rows, len(names))
	dataset.ColumnNames = names
	gv.NumRows = dataset.NumRows
	gv.NumCols = dataset.NumCols
	gv.Adjustment = enum.CheckAdjustment(request.Adjustment)

	opts := optionsFromRequest(request)
	printParamTable(taskId, gv.Adjustment, opts)

	if dataset.NumRows == 0 || dataset.NumCols == 0 {
		logger.Infof("taskId:%v, 数据集为空,不需要进行模式挖掘", taskId)
		gv.Status = enum.DIG_FINISH
		return "", nil, time.Now().UnixMilli() - startTime, nil
	}

	result, err := miner.FitTask(taskId, gv.Adjustment, dataset, labels, opts, gv.Stop)
	if err != nil {
		gv.Status = enum.DIG_FAIL
		return "", nil, 0, err
	}

	gv.NumGroups = len(result.Models)
	patterns := result.Patterns()
	for i := range patterns {
		patterns[i].Str = mine.ItemsToStr(patterns[i].Items, names)
	}

	// 多组时同一项集可能在多个组被接受,统计一下不同项集数
	distinct := mapset.NewSet()
	for _, p := range patterns {
		distinct.Add(p.Str)
	}
	logger.Infof("taskId:%v, 模式挖掘已完成,耗时%dms, 模式:%v, 不同项集:%v",
		taskId, time.Now().UnixMilli()-startTime, len(patterns), distinct.Cardinality())

	resultPath := writeResultCsv(taskId, patterns)
	printPatternTable(patterns)

	if config.All != nil && config.All.Miner.SavePatternsToDB && db.DB != nil {
		savePatternsToDB(taskId, patterns)
	}
	if request.DotPath != "" {
		for g, model := range result.Models {
			outPath := request.DotPath
			if len(result.Models) > 1 {
				outPath = fmt.Sprintf("%s.g%d", outPath, g)
			}
			model.ToFactorGraph(outPath)
		}
	}

	gv.Status = enum.DIG_FINISH
	return resultPath, patterns, time.Now().UnixMilli() - startTime, nil
}

func loadRequestData(request *SigPatRequest) ([][]int, []int, []string, error) {
	var rows [][]int
	var names []string
	var err error
	if request.Matrix != "" {
		rows, names, err = LoadCsvMatrix(request.Matrix)
	} else {
		rows, err = LoadTransactions(request.Transactions)
	}
	if err != nil {
		return nil, nil, nil, err
	}

	var labels []int
	if request.Labels != "" {
		labels, err = LoadLabels(request.Labels)
		if err != nil {
			return nil, nil, nil, err
		}
		if len(labels) != len(rows) {
			return nil, nil, nil, utils.ErrLabelSize
		}
	}

	numCols := 0
	for _, row := range rows {
		for _, col := range row {
			if col+1 > numCols {
				numCols = col + 1
			}
		}
	}
	if len(names) > numCols {
		numCols = len(names)
	}
	rows, labels, err = FilterRows(rows, labels, names, numCols, request.RowFilter)
	if err != nil {
		return nil, nil, nil, err
	}
	return rows, labels, names, nil
}

// optionsFromRequest 请求参数为0的字段取配置默认值
func optionsFromRequest(request *SigPatRequest) miner.Options {
	opts := miner.Options{
		Alpha:          request.Alpha,
		MinSupport:     request.MinSupport,
		MaxFactorSize:  request.MaxFactorSize,
		MaxFactorWidth: request.MaxFactorWidth,
		MaxExpansions:  request.MaxExpansions,
		MaxDiscoveries: request.MaxDiscoveries,
		MaxSeconds:     request.MaxSeconds,
	}
	defaults := config.MinerDefaults
	if defaults == nil {
		return opts
	}
	if opts.Alpha == 0 {
		opts.Alpha = defaults.Alpha
	}
	if opts.MinSupport == 0 {
		opts.MinSupport = defaults.MinSupport
	}
	if opts.MaxFactorSize == 0 {
		opts.MaxFactorSize = defaults.MaxFactorSize
	}
	if opts.MaxFactorWidth == 0 {
		opts.MaxFactorWidth = defaults.MaxFactorWidth
	}
	if opts.MaxExpansions == 0 {
		opts.MaxExpansions = defaults.MaxExpansions
	}
	if opts.MaxDiscoveries == 0 {
		opts.MaxDiscoveries = defaults.MaxDiscoveries
	}
	if opts.MaxSeconds == 0 {
		opts.MaxSeconds = defaults.MaxSeconds
	}
	return opts
}

// printParamTable 任务参数表打印到stderr
func printParamTable(taskId int64, adjustment string, opts miner.Options) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stderr)
	t.SetTitle("SIGPAT TASK PARAMETERS")
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Parameter", Align: text.AlignCenter, AlignHeader: text.AlignCenter, WidthMax: 20, WidthMin: 20},
		{Name: "Value", AlignHeader: text.AlignCenter, WidthMax: 30, WidthMin: 30}})
	t.AppendHeader(table.Row{"Parameter", "Value"})
	t.AppendRow(table.Row{"taskId", taskId})
	t.AppendRow(table.Row{"adjustment", adjustment})
	t.AppendRow(table.Row{"alpha", opts.Alpha})
	t.AppendRow(table.Row{"minSupport", opts.MinSupport})
	t.AppendRow(table.Row{"maxFactorSize", opts.MaxFactorSize})
	t.AppendRow(table.Row{"maxFactorWidth", opts.MaxFactorWidth})
	t.Render()
}

// printPatternTable 挖掘结果表打印到stderr
func printPatternTable(patterns []mine.Pattern) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stderr)
	t.SetTitle("DISCOVERED PATTERNS")
	t.AppendHeader(table.Row{"Pattern", "Group", "Support", "Frequency"})
	for _, p := range patterns {
		t.AppendRow(table.Row{p.Str, p.Group, p.Support, fmt.Sprintf("%.4f", p.Frequency)})
	}
	t.Render()
}

// writeResultCsv 结果写到 result/<taskId>.csv
func writeResultCsv(taskId int64, patterns []mine.Pattern) string {
	var data [][]string
	data = append(data, []string{"pattern", "group", "support", "frequency", "score"})
	for _, pattern := range patterns {
		data = append(data, []string{
			pattern.Str,
			strconv.Itoa(pattern.Group),
			strconv.Itoa(pattern.Support),
			strconv.FormatFloat(pattern.Frequency, 'f', -1, 64),
			strconv.FormatFloat(pattern.Score, 'f', -1, 64),
		})
	}
	resultDir := mine_config.ResultDir
	if config.All != nil && config.All.Miner.ResultDir != "" {
		resultDir = config.All.Miner.ResultDir
	}
	p := path.Join(resultDir, strconv.FormatInt(taskId, 10)+".csv")
	if err := utils.CreateCsv(p, data); err != nil {
		logger.Errorf("taskId:%v, 结果文件写出失败:%v", taskId, err)
		return ""
	}
	return p
}

// savePatternsToDB 结果落库
func savePatternsToDB(taskId int64, patterns []mine.Pattern) {
	pos := make([]po.Pattern, 0, len(patterns))
	for _, pattern := range patterns {
		itemsJson := "["
		for i, item := range pattern.Items {
			if i > 0 {
				itemsJson += ","
			}
			itemsJson += strconv.Itoa(item)
		}
		itemsJson += "]"
		pos = append(pos, po.Pattern{
			TaskId:    taskId,
			GroupId:   pattern.Group,
			Pattern:   pattern.Str,
			ItemsJson: itemsJson,
			Support:   pattern.Support,
			Frequency: pattern.Frequency,
			Score:     pattern.Score,
		})
	}
	if len(pos) == 0 {
		return
	}
	if err := po.CreatePatterns(&pos, db.DB); err != nil {
		logger.Errorf("taskId:%v, 模式落库失败:%v", taskId, err)
	}
}
