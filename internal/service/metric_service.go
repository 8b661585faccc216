package service

import (
	"Fitboard/internal/api/dto"
	"Fitboard/internal/model"
	"Fitboard/internal/repository"
	"context"
	"errors"
	"time"

	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

// londonLocation 指标按日归并使用的固定时区，业务规则，不随用户所在地变化
var londonLocation *time.Location

func init() {
	loc, err := time.LoadLocation("Europe/London")
	if err != nil {
		panic(err)
	}
	londonLocation = loc
}

type MetricService interface {
	RecordMetric(ctx context.Context, userID uint64, activityID uint64, metricDTO *dto.CreateMetricDTO) (*dto.RecordMetricResultDTO, error)
	UpdateMetric(ctx context.Context, userID uint64, metricID uint64, metricDTO *dto.UpdateMetricDTO) (*dto.MetricDTO, error)
	DeleteMetric(ctx context.Context, userID uint64, metricID uint64) error
}

type MetricServiceImpl struct {
	activityRepo repository.ActivityRepo
	metricRepo   repository.MetricRepo
	nowFn        func() time.Time
}

func NewMetricService(activityRepo repository.ActivityRepo, metricRepo repository.MetricRepo) MetricService {
	return &MetricServiceImpl{
		activityRepo: activityRepo,
		metricRepo:   metricRepo,
		nowFn:        time.Now,
	}
}

// RecordMetric 上报指标。同一 (活动, name, 归一化 unit) 键在同一个伦敦日历日内
// 只保留一行：当日已有记录则覆盖其值和时间，否则新建。recorded_at 取服务端时钟。
// 返回值中 Created 区分新建与覆盖。并发首次写入冲突以 ErrMetricConflict 暴露，
// 由 handler 重试一次，重试会命中已存在的行走覆盖分支。
func (s *MetricServiceImpl) RecordMetric(ctx context.Context, userID uint64, activityID uint64, metricDTO *dto.CreateMetricDTO) (*dto.RecordMetricResultDTO, error) {
	activity, err := s.activityRepo.GetOwnedActivity(ctx, activityID, userID)
	if err != nil {
		return nil, err
	}
	if activity == nil {
		return nil, ErrActivityNotFound
	}

	now := s.nowFn()
	metric := &model.Metric{
		ActivityID: activityID,
		Name:       metricDTO.Name,
		Unit:       metricDTO.Unit,
		UnitNorm:   normalizeUnit(metricDTO.Unit),
		Value:      *metricDTO.Value,
		MetricDay:  londonDay(now),
		RecordedAt: now,
	}

	created, err := s.metricRepo.ReconcileDaily(ctx, metric)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrMetricConflict
		}
		return nil, err
	}

	result := &dto.RecordMetricResultDTO{Created: created}
	result.Metric = &dto.MetricDTO{}
	if err = copier.Copy(result.Metric, metric); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateMetric 按 id 直接修改，不做当日归并；修改 unit 或 recorded_at 时
// 重算匹配键，撞上唯一索引按冲突处理
func (s *MetricServiceImpl) UpdateMetric(ctx context.Context, userID uint64, metricID uint64, metricDTO *dto.UpdateMetricDTO) (*dto.MetricDTO, error) {
	metric, err := s.metricRepo.GetOwnedMetric(ctx, metricID, userID)
	if err != nil {
		return nil, err
	}
	if metric == nil {
		return nil, ErrMetricNotFound
	}

	if metricDTO.Name != nil {
		metric.Name = *metricDTO.Name
	}
	if metricDTO.Unit != nil {
		metric.Unit = metricDTO.Unit
		metric.UnitNorm = normalizeUnit(metricDTO.Unit)
	}
	if metricDTO.Value != nil {
		metric.Value = *metricDTO.Value
	}
	if metricDTO.RecordedAt != nil {
		recordedAt, err := time.Parse(time.RFC3339, *metricDTO.RecordedAt)
		if err != nil {
			return nil, ErrParamInvalid
		}
		metric.RecordedAt = recordedAt
		metric.MetricDay = londonDay(recordedAt)
	}

	if err = s.metricRepo.UpdateMetric(ctx, metric); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrMetricConflict
		}
		return nil, err
	}

	metricResult := &dto.MetricDTO{}
	if err = copier.Copy(metricResult, metric); err != nil {
		return nil, err
	}
	return metricResult, nil
}

func (s *MetricServiceImpl) DeleteMetric(ctx context.Context, userID uint64, metricID uint64) error {
	metric, err := s.metricRepo.GetOwnedMetric(ctx, metricID, userID)
	if err != nil {
		return err
	}
	if metric == nil {
		return ErrMetricNotFound
	}
	return s.metricRepo.DeleteMetric(ctx, metric.ID)
}

// normalizeUnit 缺省与空串都视为无单位
func normalizeUnit(unit *string) string {
	if unit == nil {
		return ""
	}
	return *unit
}

// londonDay 取时间点落在 Europe/London 时区的日历日
func londonDay(t time.Time) string {
	return t.In(londonLocation).Format(time.DateOnly)
}
