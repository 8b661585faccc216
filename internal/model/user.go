package model

import (
	"time"
)

type User struct {
	ID        uint64 `gorm:"primaryKey"`
	Email     string `gorm:"type:varchar(100);uniqueIndex:idx_email"`
	Password  string `gorm:"type:varchar(255)"`
	Name      string `gorm:"type:varchar(50)"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Activities []Activity `gorm:"foreignKey:UserID;references:ID"`
}

func (User) TableName() string {
	return "users"
}
