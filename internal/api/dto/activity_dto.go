package dto

import "time"

// CreateActivityDTO 创建活动
type CreateActivityDTO struct {
	Type      string   `json:"type" binding:"required" validate:"min=1,max=50"`
	StartedAt string   `json:"started_at" binding:"required" validate:"required"`
	EndedAt   *string  `json:"ended_at,omitempty"`
	Notes     *string  `json:"notes,omitempty" validate:"omitempty,max=500"`
	Tags      []string `json:"tags,omitempty" validate:"omitempty,dive,min=1,max=30"`
}

// UpdateActivityDTO 修改活动，未提供的字段保持不变
type UpdateActivityDTO struct {
	Type      *string  `json:"type,omitempty" validate:"omitempty,min=1,max=50"`
	StartedAt *string  `json:"started_at,omitempty"`
	EndedAt   *string  `json:"ended_at,omitempty"`
	Notes     *string  `json:"notes,omitempty" validate:"omitempty,max=500"`
	Tags      []string `json:"tags,omitempty" validate:"omitempty,dive,min=1,max=30"`
}

// ListActivitiesDTO 活动列表查询条件
type ListActivitiesDTO struct {
	From *string `form:"from"`
	To   *string `form:"to"`
	Type *string `form:"type" validate:"omitempty,min=1,max=50"`
	Take *int    `form:"take" validate:"omitempty,min=1,max=100"`
	Skip *int    `form:"skip" validate:"omitempty,min=0,max=10000"`
}

// ActivityDTO 活动
type ActivityDTO struct {
	ID        uint64      `json:"id"`
	UserID    uint64      `json:"user_id"`
	Type      string      `json:"type"`
	StartedAt time.Time   `json:"started_at"`
	EndedAt   *time.Time  `json:"ended_at,omitempty"`
	Notes     *string     `json:"notes,omitempty"`
	Tags      []string    `json:"tags"`
	Metrics   []MetricDTO `json:"metrics"`
	CreatedAt time.Time   `json:"created_at"`
}

// ActivityListDTO 活动列表
type ActivityListDTO struct {
	Items []*ActivityDTO `json:"items"`
}
