package po

import (
	"gorm.io/gorm"
)

// Pattern 持久化的模式记录
type Pattern struct {
	Id        int64   `gorm:"column:id;primaryKey;autoIncrement"`
	TaskId    int64   `gorm:"column:task_id"`
	GroupId   int     `gorm:"column:group_id"`
	Pattern   string  `gorm:"column:pattern"`
	ItemsJson string  `gorm:"column:items_json"`
	Support   int     `gorm:"column:support"`
	Frequency float64 `gorm:"column:frequency"`
	Score     float64 `gorm:"column:score"`
}

func (Pattern) TableName() string {
	return "sigpat_pattern"
}

func CreatePattern(p *Pattern, db *gorm.DB) error {
	return db.Create(p).Error
}

func CreatePatterns(ps *[]Pattern, db *gorm.DB) error {
	return db.CreateInBatches(ps, 100).Error
}

func DeleteTaskPatterns(taskId int64, db *gorm.DB) error {
	return db.Where("task_id = ?", taskId).Delete(&Pattern{}).Error
}
