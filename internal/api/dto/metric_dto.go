package dto

import "time"

// CreateMetricDTO 上报指标，recorded_at 由服务端时钟决定，不接受客户端时间
type CreateMetricDTO struct {
	Name  string   `json:"name" binding:"required" validate:"min=1,max=50"`
	Unit  *string  `json:"unit,omitempty" validate:"omitempty,max=20"`
	Value *float64 `json:"value" binding:"required"`
}

// UpdateMetricDTO 直接修改指标（不走当日归并逻辑）
type UpdateMetricDTO struct {
	Name       *string  `json:"name,omitempty" validate:"omitempty,min=1,max=50"`
	Unit       *string  `json:"unit,omitempty" validate:"omitempty,max=20"`
	Value      *float64 `json:"value,omitempty"`
	RecordedAt *string  `json:"recorded_at,omitempty"`
}

// MetricDTO 指标
type MetricDTO struct {
	ID         uint64    `json:"id"`
	ActivityID uint64    `json:"activity_id"`
	Name       string    `json:"name"`
	Unit       *string   `json:"unit,omitempty"`
	Value      float64   `json:"value"`
	RecordedAt time.Time `json:"recorded_at"`
}

// RecordMetricResultDTO 上报结果，created 区分当日首次写入与当日覆盖
type RecordMetricResultDTO struct {
	Metric  *MetricDTO `json:"metric"`
	Created bool       `json:"created"`
}
