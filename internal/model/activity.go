package model

import (
	"time"
)

type Activity struct {
	ID        uint64     `gorm:"primaryKey"`
	UserID    uint64     `gorm:"not null;index:idx_user_started"`
	Type      string     `gorm:"type:varchar(50);not null"`
	StartedAt time.Time  `gorm:"not null;index:idx_user_started"`
	EndedAt   *time.Time
	Notes     *string `gorm:"type:varchar(500)"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Metrics []Metric      `gorm:"foreignKey:ActivityID;references:ID"`
	Tags    []ActivityTag `gorm:"foreignKey:ActivityID;references:ID"`
}

func (Activity) TableName() string {
	return "activities"
}
