package repository

import (
	"Fitboard/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// ActivityFilter 活动查询条件
type ActivityFilter struct {
	Type *string
	From *time.Time
	To   *time.Time
	Take int
	Skip int
}

type ActivityRepo interface {
	ListActivities(ctx context.Context, userID uint64, filter *ActivityFilter) ([]*model.Activity, error)
	GetOwnedActivity(ctx context.Context, id uint64, userID uint64) (*model.Activity, error)
	CreateActivity(ctx context.Context, activity *model.Activity, labels []string) error
	UpdateActivity(ctx context.Context, activity *model.Activity, labels []string) error
	DeleteActivity(ctx context.Context, id uint64) error
}

type ActivityRepoImpl struct {
	db *gorm.DB
}

func NewActivityRepo(db *gorm.DB) ActivityRepo {
	return &ActivityRepoImpl{db: db}
}

func (s *ActivityRepoImpl) ListActivities(ctx context.Context, userID uint64, filter *ActivityFilter) ([]*model.Activity, error) {
	activities := make([]*model.Activity, 0)

	query := s.db.WithContext(ctx).
		Preload("Metrics").
		Preload("Tags.Tag").
		Where("user_id = ?", userID)

	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.From != nil {
		query = query.Where("started_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("started_at <= ?", *filter.To)
	}

	result := query.
		Order("started_at DESC").
		Limit(filter.Take).
		Offset(filter.Skip).
		Find(&activities)
	if result.Error != nil {
		return nil, result.Error
	}
	return activities, nil
}

func (s *ActivityRepoImpl) GetOwnedActivity(ctx context.Context, id uint64, userID uint64) (*model.Activity, error) {
	activity := &model.Activity{}
	result := s.db.WithContext(ctx).
		Preload("Metrics").
		Preload("Tags.Tag").
		Where("id = ? AND user_id = ?", id, userID).
		First(activity)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return activity, nil
}

// CreateActivity 创建活动并按 label 挂载标签，标签不存在时先建
func (s *ActivityRepoImpl) CreateActivity(ctx context.Context, activity *model.Activity, labels []string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if result := tx.Create(activity); result.Error != nil {
			return result.Error
		}
		return attachTags(tx, activity.ID, labels)
	})
}

// UpdateActivity 更新活动字段，labels 非 nil 时全量替换标签
func (s *ActivityRepoImpl) UpdateActivity(ctx context.Context, activity *model.Activity, labels []string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Activity{}).
			Where("id = ?", activity.ID).
			Select("type", "started_at", "ended_at", "notes").
			Updates(activity)
		if result.Error != nil {
			return result.Error
		}

		if labels == nil {
			return nil
		}

		if result = tx.Where("activity_id = ?", activity.ID).Delete(&model.ActivityTag{}); result.Error != nil {
			return result.Error
		}
		return attachTags(tx, activity.ID, labels)
	})
}

// DeleteActivity 级联删除指标与标签关联
func (s *ActivityRepoImpl) DeleteActivity(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if result := tx.Where("activity_id = ?", id).Delete(&model.Metric{}); result.Error != nil {
			return result.Error
		}
		if result := tx.Where("activity_id = ?", id).Delete(&model.ActivityTag{}); result.Error != nil {
			return result.Error
		}
		result := tx.Delete(&model.Activity{}, id)
		return result.Error
	})
}

func attachTags(tx *gorm.DB, activityID uint64, labels []string) error {
	for _, label := range labels {
		tag := &model.Tag{}
		if result := tx.Where(model.Tag{Label: label}).FirstOrCreate(tag); result.Error != nil {
			return result.Error
		}
		link := &model.ActivityTag{ActivityID: activityID, TagID: tag.ID}
		if result := tx.Where(model.ActivityTag{ActivityID: activityID, TagID: tag.ID}).
			FirstOrCreate(link); result.Error != nil {
			return result.Error
		}
	}
	return nil
}
