package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"sigpat/share/base/config"
	"sigpat/share/base/logger"
)

// DB 全局gorm连接,未配置pg时为nil
var DB *gorm.DB

// InitDB 按pg_config初始化数据库连接,host为空表示不落库
func InitDB() error {
	pg := config.All.Pg
	if pg.Host == "" {
		logger.Infof("pg_config未配置,模式结果不落库")
		return nil
	}
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		pg.Host, pg.User, pg.Password, pg.DB, pg.Port)
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	if pg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pg.MaxOpenConns)
	}
	if pg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(pg.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)
	DB = gdb
	return nil
}
