package utils

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// GetCsvData 读取整个csv文件
func GetCsvData(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		fmt.Println("opens a csv failed, err:", err)
		return nil, ErrOpenCsv
	}
	defer f.Close()
	reader := csv.NewReader(f)
	preData, err := reader.ReadAll()
	if err != nil {
		fmt.Println("read a csv failed, err:", err)
		return nil, ErrReadCsv
	}
	return preData, nil
}

// CreateCsv 写出csv结果文件,目录不存在时先创建
func CreateCsv(path string, data [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	csvFile, err := os.Create(path)
	if err != nil {
		return err
	}
	defer csvFile.Close()
	w := csv.NewWriter(csvFile)
	if err = w.WriteAll(data); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
