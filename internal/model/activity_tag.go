package model

type ActivityTag struct {
	ID         uint64 `gorm:"primaryKey"`
	ActivityID uint64 `gorm:"not null;uniqueIndex:idx_activity_tag"`
	TagID      uint64 `gorm:"not null;uniqueIndex:idx_activity_tag"`

	Tag Tag `gorm:"foreignKey:TagID;references:ID"`
}

func (ActivityTag) TableName() string {
	return "activity_tags"
}
