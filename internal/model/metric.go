package model

import (
	"time"
)

// Metric 同一 (activity_id, name, unit_norm) 在同一个 Europe/London 日历日内最多一行。
// unit 保留调用方原始值（可为空），unit_norm 与 metric_day 为写入时冗余的匹配键，
// 唯一索引 idx_metric_key_day 兜底并发写入。
type Metric struct {
	ID         uint64    `gorm:"primaryKey"`
	ActivityID uint64    `gorm:"not null;uniqueIndex:idx_metric_key_day"`
	Name       string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_metric_key_day"`
	Unit       *string   `gorm:"type:varchar(20)"`
	UnitNorm   string    `gorm:"type:varchar(20);not null;default:'';uniqueIndex:idx_metric_key_day;column:unit_norm"`
	Value      float64   `gorm:"not null"`
	MetricDay  string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_metric_key_day;column:metric_day"`
	RecordedAt time.Time `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Metric) TableName() string {
	return "metrics"
}
