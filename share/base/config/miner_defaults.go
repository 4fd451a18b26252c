package config

import (
	"fmt"
	"os"
	"path"

	"gopkg.in/yaml.v3"
)

// MinerDefaults 挖掘参数默认值,config-miner-defaults.yml中可覆盖
var MinerDefaults *MinerDefaultConfig

type MinerDefaultConfig struct {
	Alpha          float64 `yaml:"alpha"`
	MinSupport     int     `yaml:"min_support"`
	MaxFactorSize  int     `yaml:"max_factor_size"`
	MaxFactorWidth int     `yaml:"max_factor_width"`
	MaxExpansions  int64   `yaml:"max_expansions"`
	MaxDiscoveries int64   `yaml:"max_discoveries"`
	MaxSeconds     float64 `yaml:"max_seconds"`
}

// initMinerDefaults 读取挖掘参数默认值,文件不存在时用内置默认
func initMinerDefaults() {
	MinerDefaults = &MinerDefaultConfig{
		Alpha:          0.05,
		MinSupport:     2,
		MaxFactorSize:  8,
		MaxFactorWidth: 50,
	}
	p := path.Join(DefaultPath, "config-miner-defaults.yml")
	exists, _ := isExists(p)
	if !exists {
		return
	}
	data, err := os.ReadFile(p)
	if err != nil {
		panic(err)
	}
	if err = yaml.Unmarshal(data, MinerDefaults); err != nil {
		panic(err)
	}
	fmt.Printf("miner defaults:\n%+v\n", *MinerDefaults)
}
