package main

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/Knetic/govaluate"

	"sigpat/share/base/logger"
	"sigpat/utils"
)

// LoadTransactions 读事务文件:每行为该行含有的列下标,空格或逗号分隔,空行为空事务
func LoadTransactions(path string) ([][]int, error) {
	f, err := os.Open(path)
	if err != nil {
		logger.Errorf("打开事务文件失败:%v, err:%v", path, err)
		return nil, utils.ErrOpenTxn
	}
	defer f.Close()

	var rows [][]int
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			rows = append(rows, nil)
			continue
		}
		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ' ' || r == ',' || r == '\t'
		})
		row := make([]int, 0, len(fields))
		for _, field := range fields {
			col, err := strconv.Atoi(field)
			if err != nil {
				logger.Errorf("事务文件解析失败:%v, 字段:%v", path, field)
				return nil, utils.ErrParseTxn
			}
			row = append(row, col)
		}
		// 同一行内重复的列下标只记一次
		rows = append(rows, utils.Distinct(row))
	}
	if err = scanner.Err(); err != nil {
		return nil, utils.ErrParseTxn
	}
	return rows, nil
}

// LoadCsvMatrix 读带表头的0/1矩阵csv,返回每行的列下标集合与列名
func LoadCsvMatrix(path string) ([][]int, []string, error) {
	data, err := utils.GetCsvData(path)
	if err != nil {
		return nil, nil, err
	}
	if len(data) == 0 {
		return nil, nil, nil
	}
	names := data[0]
	rows := make([][]int, 0, len(data)-1)
	for _, record := range data[1:] {
		var row []int
		for col, cell := range record {
			cell = strings.TrimSpace(cell)
			if cell == "1" || strings.EqualFold(cell, "true") {
				row = append(row, col)
			}
		}
		rows = append(rows, row)
	}
	return rows, names, nil
}

// LoadLabels 读标签文件,每行一个整数
func LoadLabels(path string) ([]int, error) {
	f, err := os.Open(path)
	if err != nil {
		logger.Errorf("打开标签文件失败:%v, err:%v", path, err)
		return nil, utils.ErrOpenTxn
	}
	defer f.Close()

	var labels []int
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		label, err := strconv.Atoi(line)
		if err != nil {
			return nil, utils.ErrParseTxn
		}
		labels = append(labels, label)
	}
	if err = scanner.Err(); err != nil {
		return nil, utils.ErrParseTxn
	}
	return labels, nil
}

// FilterRows 用布尔表达式过滤行,表达式里的变量是列名(缺省c0..cN),取值0/1。
// 返回保留的行与同步过滤后的标签。
func FilterRows(rows [][]int, labels []int, names []string, numCols int, expr string) ([][]int, []int, error) {
	if expr == "" {
		return rows, labels, nil
	}
	evaluable, err := govaluate.NewEvaluableExpression(expr)
	if err != nil {
		logger.Errorf("行过滤表达式解析失败:%v, err:%v", expr, err)
		return nil, nil, utils.ErrRowFilter
	}

	nameOf := func(col int) string {
		if names != nil && col < len(names) && names[col] != "" {
			return names[col]
		}
		return "c" + strconv.Itoa(col)
	}

	var keptRows [][]int
	var keptLabels []int
	params := make(map[string]interface{}, numCols)
	for rowId, row := range rows {
		for col := 0; col < numCols; col++ {
			params[nameOf(col)] = float64(0)
		}
		for _, col := range row {
			params[nameOf(col)] = float64(1)
		}
		result, err := evaluable.Evaluate(params)
		if err != nil {
			logger.Errorf("行过滤表达式求值失败:%v, row:%v, err:%v", expr, rowId, err)
			return nil, nil, utils.ErrRowFilter
		}
		keep, ok := result.(bool)
		if !ok {
			return nil, nil, utils.ErrRowFilter
		}
		if keep {
			keptRows = append(keptRows, row)
			if labels != nil {
				keptLabels = append(keptLabels, labels[rowId])
			}
		}
	}
	if labels == nil {
		keptLabels = nil
	}
	return keptRows, keptLabels, nil
}
