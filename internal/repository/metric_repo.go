package repository

import (
	"Fitboard/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

// DailyTotal 某个 Europe/London 日历日内的指标合计
type DailyTotal struct {
	Day   string  `gorm:"column:metric_day"`
	Total float64 `gorm:"column:total"`
}

// DuplicateKey 同键同日出现多行的异常键
type DuplicateKey struct {
	ActivityID uint64 `gorm:"column:activity_id"`
	Name       string `gorm:"column:name"`
	UnitNorm   string `gorm:"column:unit_norm"`
	MetricDay  string `gorm:"column:metric_day"`
}

type MetricRepo interface {
	ReconcileDaily(ctx context.Context, metric *model.Metric) (bool, error)
	GetOwnedMetric(ctx context.Context, id uint64, userID uint64) (*model.Metric, error)
	UpdateMetric(ctx context.Context, metric *model.Metric) error
	DeleteMetric(ctx context.Context, id uint64) error
	GetDailyTotals(ctx context.Context, userID uint64, name string, unitNorm string, sinceDay string) ([]*DailyTotal, error)
	GetDuplicateKeys(ctx context.Context) ([]*DuplicateKey, error)
	ResolveDuplicates(ctx context.Context, key *DuplicateKey) (int64, error)
}

type MetricRepoImpl struct {
	db *gorm.DB
}

func NewMetricRepo(db *gorm.DB) MetricRepo {
	return &MetricRepoImpl{db: db}
}

// ReconcileDaily 维持 (activity_id, name, unit_norm) 键在单个日历日内至多一行。
// 查找、覆盖+清理、插入在同一事务内完成；unit_norm 与 metric_day 已由调用方算好。
// 返回 true 表示当日首次写入（新建），false 表示覆盖已有行。
// 并发的首次写入由 idx_metric_key_day 唯一索引兜底，落败方收到 gorm.ErrDuplicatedKey。
func (s *MetricRepoImpl) ReconcileDaily(ctx context.Context, metric *model.Metric) (bool, error) {
	created := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows := make([]*model.Metric, 0)
		result := tx.
			Where("activity_id = ? AND name = ? AND unit_norm = ? AND metric_day = ?",
				metric.ActivityID, metric.Name, metric.UnitNorm, metric.MetricDay).
			Order("recorded_at DESC").
			Find(&rows)
		if result.Error != nil {
			return result.Error
		}

		if len(rows) == 0 {
			if result = tx.Create(metric); result.Error != nil {
				return result.Error
			}
			created = true
			return nil
		}

		// 保留 recorded_at 最新的一行，覆盖其内容
		keep := rows[0]
		result = tx.Model(&model.Metric{}).
			Where("id = ?", keep.ID).
			Updates(map[string]interface{}{
				"name":        metric.Name,
				"unit":        metric.Unit,
				"unit_norm":   metric.UnitNorm,
				"value":       metric.Value,
				"recorded_at": metric.RecordedAt,
			})
		if result.Error != nil {
			return result.Error
		}

		// 清理同键同日的其余行（历史数据异常自愈）
		result = tx.
			Where("activity_id = ? AND name = ? AND unit_norm = ? AND metric_day = ? AND id <> ?",
				metric.ActivityID, metric.Name, metric.UnitNorm, metric.MetricDay, keep.ID).
			Delete(&model.Metric{})
		if result.Error != nil {
			return result.Error
		}

		metric.ID = keep.ID
		metric.CreatedAt = keep.CreatedAt
		return nil
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

func (s *MetricRepoImpl) GetOwnedMetric(ctx context.Context, id uint64, userID uint64) (*model.Metric, error) {
	metric := &model.Metric{}
	result := s.db.WithContext(ctx).
		Joins("JOIN activities ON activities.id = metrics.activity_id").
		Where("metrics.id = ? AND activities.user_id = ?", id, userID).
		First(metric)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return metric, nil
}

func (s *MetricRepoImpl) UpdateMetric(ctx context.Context, metric *model.Metric) error {
	result := s.db.WithContext(ctx).Model(&model.Metric{}).
		Where("id = ?", metric.ID).
		Updates(map[string]interface{}{
			"name":        metric.Name,
			"unit":        metric.Unit,
			"unit_norm":   metric.UnitNorm,
			"value":       metric.Value,
			"metric_day":  metric.MetricDay,
			"recorded_at": metric.RecordedAt,
		})
	return result.Error
}

func (s *MetricRepoImpl) DeleteMetric(ctx context.Context, id uint64) error {
	result := s.db.WithContext(ctx).Delete(&model.Metric{}, id)
	return result.Error
}

// GetDailyTotals 取某用户某个指标键自 sinceDay 起的按日合计，metric_day 为 ISO 日期可直接字符串比较
func (s *MetricRepoImpl) GetDailyTotals(ctx context.Context, userID uint64, name string, unitNorm string, sinceDay string) ([]*DailyTotal, error) {
	totals := make([]*DailyTotal, 0)
	result := s.db.WithContext(ctx).Model(&model.Metric{}).
		Select("metrics.metric_day AS metric_day, SUM(metrics.value) AS total").
		Joins("JOIN activities ON activities.id = metrics.activity_id").
		Where("activities.user_id = ? AND metrics.name = ? AND metrics.unit_norm = ? AND metrics.metric_day >= ?",
			userID, name, unitNorm, sinceDay).
		Group("metrics.metric_day").
		Order("metrics.metric_day ASC").
		Scan(&totals)
	if result.Error != nil {
		return nil, result.Error
	}
	return totals, nil
}

func (s *MetricRepoImpl) GetDuplicateKeys(ctx context.Context) ([]*DuplicateKey, error) {
	keys := make([]*DuplicateKey, 0)
	result := s.db.WithContext(ctx).Model(&model.Metric{}).
		Select("activity_id, name, unit_norm, metric_day").
		Group("activity_id, name, unit_norm, metric_day").
		Having("COUNT(*) > 1").
		Scan(&keys)
	if result.Error != nil {
		return nil, result.Error
	}
	return keys, nil
}

// ResolveDuplicates 保留同键同日 recorded_at 最新的一行，删除其余行，返回删除数
func (s *MetricRepoImpl) ResolveDuplicates(ctx context.Context, key *DuplicateKey) (int64, error) {
	var removed int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		keep := &model.Metric{}
		result := tx.
			Where("activity_id = ? AND name = ? AND unit_norm = ? AND metric_day = ?",
				key.ActivityID, key.Name, key.UnitNorm, key.MetricDay).
			Order("recorded_at DESC").
			First(keep)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return nil
			}
			return result.Error
		}

		result = tx.
			Where("activity_id = ? AND name = ? AND unit_norm = ? AND metric_day = ? AND id <> ?",
				key.ActivityID, key.Name, key.UnitNorm, key.MetricDay, keep.ID).
			Delete(&model.Metric{})
		if result.Error != nil {
			return result.Error
		}
		removed = result.RowsAffected
		return nil
	})
	return removed, err
}
