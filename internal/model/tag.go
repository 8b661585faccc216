package model

type Tag struct {
	ID    uint64 `gorm:"primaryKey"`
	Label string `gorm:"type:varchar(30);uniqueIndex:idx_label;not null"`
}

func (Tag) TableName() string {
	return "tags"
}
