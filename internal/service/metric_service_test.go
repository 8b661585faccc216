package service

import (
	"Fitboard/internal/api/dto"
	"Fitboard/internal/model"
	"Fitboard/internal/repository"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newMetricService(db *gorm.DB, now time.Time) (*MetricServiceImpl, *time.Time) {
	clock := now
	svc := &MetricServiceImpl{
		activityRepo: repository.NewActivityRepo(db),
		metricRepo:   repository.NewMetricRepo(db),
		nowFn:        func() time.Time { return clock },
	}
	return svc, &clock
}

func TestRecordMetricFirstOfDay(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "runner@example.com")
	activity := createTestActivity(t, db, user.ID, "run", mustParse(t, "2025-01-01T09:00:00Z"))

	svc, _ := newMetricService(db, mustParse(t, "2025-01-01T10:00:00Z"))
	result, err := svc.RecordMetric(context.Background(), user.ID, activity.ID, &dto.CreateMetricDTO{
		Name:  "steps",
		Unit:  strPtr("count"),
		Value: floatPtr(1000),
	})
	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.Equal(t, "steps", result.Metric.Name)
	assert.Equal(t, float64(1000), result.Metric.Value)
	assert.Equal(t, int64(1), countMetrics(t, db, activity.ID))

	var row model.Metric
	require.NoError(t, db.First(&row, result.Metric.ID).Error)
	assert.Equal(t, "2025-01-01", row.MetricDay)
	assert.Equal(t, "count", row.UnitNorm)
}

func TestRecordMetricOverwritesSameDay(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "runner@example.com")
	activity := createTestActivity(t, db, user.ID, "run", mustParse(t, "2025-01-01T09:00:00Z"))

	svc, clock := newMetricService(db, mustParse(t, "2025-01-01T10:00:00Z"))
	first, err := svc.RecordMetric(context.Background(), user.ID, activity.ID, &dto.CreateMetricDTO{
		Name:  "steps",
		Unit:  strPtr("count"),
		Value: floatPtr(1000),
	})
	require.NoError(t, err)
	require.True(t, first.Created)

	*clock = mustParse(t, "2025-01-01T20:00:00Z")
	second, err := svc.RecordMetric(context.Background(), user.ID, activity.ID, &dto.CreateMetricDTO{
		Name:  "steps",
		Unit:  strPtr("count"),
		Value: floatPtr(1500),
	})
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, first.Metric.ID, second.Metric.ID)
	assert.Equal(t, float64(1500), second.Metric.Value)
	assert.Equal(t, int64(1), countMetrics(t, db, activity.ID))

	var row model.Metric
	require.NoError(t, db.First(&row, first.Metric.ID).Error)
	assert.Equal(t, float64(1500), row.Value)
	assert.True(t, row.RecordedAt.Equal(mustParse(t, "2025-01-01T20:00:00Z")))
}

func TestRecordMetricDayRollover(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "runner@example.com")
	activity := createTestActivity(t, db, user.ID, "run", mustParse(t, "2025-01-01T09:00:00Z"))

	// 冬令时伦敦与 UTC 一致，跨过午夜即换日
	svc, clock := newMetricService(db, mustParse(t, "2025-01-01T23:30:00Z"))
	first, err := svc.RecordMetric(context.Background(), user.ID, activity.ID, &dto.CreateMetricDTO{
		Name:  "steps",
		Unit:  strPtr("count"),
		Value: floatPtr(1000),
	})
	require.NoError(t, err)
	require.True(t, first.Created)

	*clock = mustParse(t, "2025-01-02T00:30:00Z")
	second, err := svc.RecordMetric(context.Background(), user.ID, activity.ID, &dto.CreateMetricDTO{
		Name:  "steps",
		Unit:  strPtr("count"),
		Value: floatPtr(200),
	})
	require.NoError(t, err)
	assert.True(t, second.Created)
	assert.NotEqual(t, first.Metric.ID, second.Metric.ID)
	assert.Equal(t, int64(2), countMetrics(t, db, activity.ID))

	var rows []model.Metric
	require.NoError(t, db.Where("activity_id = ?", activity.ID).Order("metric_day").Find(&rows).Error)
	require.Len(t, rows, 2)
	assert.Equal(t, "2025-01-01", rows[0].MetricDay)
	assert.Equal(t, "2025-01-02", rows[1].MetricDay)
}

func TestRecordMetricSummerTimeDay(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "runner@example.com")
	activity := createTestActivity(t, db, user.ID, "run", mustParse(t, "2025-06-01T09:00:00Z"))

	// 夏令时伦敦为 UTC+1，UTC 的 23:30 已属次日
	svc, _ := newMetricService(db, mustParse(t, "2025-06-01T23:30:00Z"))
	result, err := svc.RecordMetric(context.Background(), user.ID, activity.ID, &dto.CreateMetricDTO{
		Name:  "distance",
		Unit:  strPtr("km"),
		Value: floatPtr(5),
	})
	require.NoError(t, err)

	var row model.Metric
	require.NoError(t, db.First(&row, result.Metric.ID).Error)
	assert.Equal(t, "2025-06-02", row.MetricDay)
}

func TestRecordMetricNilAndEmptyUnitSameKey(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "runner@example.com")
	activity := createTestActivity(t, db, user.ID, "run", mustParse(t, "2025-01-01T09:00:00Z"))

	svc, clock := newMetricService(db, mustParse(t, "2025-01-01T10:00:00Z"))
	first, err := svc.RecordMetric(context.Background(), user.ID, activity.ID, &dto.CreateMetricDTO{
		Name:  "mood",
		Unit:  nil,
		Value: floatPtr(3),
	})
	require.NoError(t, err)
	require.True(t, first.Created)

	*clock = mustParse(t, "2025-01-01T12:00:00Z")
	second, err := svc.RecordMetric(context.Background(), user.ID, activity.ID, &dto.CreateMetricDTO{
		Name:  "mood",
		Unit:  strPtr(""),
		Value: floatPtr(4),
	})
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, int64(1), countMetrics(t, db, activity.ID))

	// 覆盖后保留最后一次提交的原始 unit
	var row model.Metric
	require.NoError(t, db.First(&row, first.Metric.ID).Error)
	require.NotNil(t, row.Unit)
	assert.Equal(t, "", *row.Unit)
	assert.Equal(t, "", row.UnitNorm)
}

func TestRecordMetricUnrelatedKeysUntouched(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "runner@example.com")
	activity := createTestActivity(t, db, user.ID, "run", mustParse(t, "2025-01-01T09:00:00Z"))
	other := createTestActivity(t, db, user.ID, "walk", mustParse(t, "2025-01-01T11:00:00Z"))

	svc, _ := newMetricService(db, mustParse(t, "2025-01-01T10:00:00Z"))
	ctx := context.Background()
	_, err := svc.RecordMetric(ctx, user.ID, activity.ID, &dto.CreateMetricDTO{Name: "steps", Unit: strPtr("count"), Value: floatPtr(1000)})
	require.NoError(t, err)
	_, err = svc.RecordMetric(ctx, user.ID, activity.ID, &dto.CreateMetricDTO{Name: "calories", Unit: strPtr("kcal"), Value: floatPtr(300)})
	require.NoError(t, err)
	// 同名不同单位是不同键
	_, err = svc.RecordMetric(ctx, user.ID, activity.ID, &dto.CreateMetricDTO{Name: "steps", Unit: nil, Value: floatPtr(7)})
	require.NoError(t, err)
	_, err = svc.RecordMetric(ctx, user.ID, other.ID, &dto.CreateMetricDTO{Name: "steps", Unit: strPtr("count"), Value: floatPtr(50)})
	require.NoError(t, err)

	assert.Equal(t, int64(3), countMetrics(t, db, activity.ID))
	assert.Equal(t, int64(1), countMetrics(t, db, other.ID))

	var steps model.Metric
	require.NoError(t, db.Where("activity_id = ? AND name = ? AND unit_norm = ?", activity.ID, "steps", "count").First(&steps).Error)
	assert.Equal(t, float64(1000), steps.Value)
}

func TestRecordMetricActivityNotOwned(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	intruder := createTestUser(t, db, "intruder@example.com")
	activity := createTestActivity(t, db, owner.ID, "run", mustParse(t, "2025-01-01T09:00:00Z"))

	svc, _ := newMetricService(db, mustParse(t, "2025-01-01T10:00:00Z"))
	_, err := svc.RecordMetric(context.Background(), intruder.ID, activity.ID, &dto.CreateMetricDTO{
		Name:  "steps",
		Unit:  strPtr("count"),
		Value: floatPtr(1000),
	})
	assert.ErrorIs(t, err, ErrActivityNotFound)

	_, err = svc.RecordMetric(context.Background(), owner.ID, activity.ID+100, &dto.CreateMetricDTO{
		Name:  "steps",
		Unit:  strPtr("count"),
		Value: floatPtr(1000),
	})
	assert.ErrorIs(t, err, ErrActivityNotFound)
}

// 历史脏数据同键同日多行时，覆盖写保留 recorded_at 最新的一行并清掉其余
func TestRecordMetricCollapsesLegacyDuplicates(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "runner@example.com")
	activity := createTestActivity(t, db, user.ID, "run", mustParse(t, "2025-01-01T09:00:00Z"))

	require.NoError(t, db.Exec("DROP INDEX idx_metric_key_day").Error)
	older := model.Metric{ActivityID: activity.ID, Name: "steps", Unit: strPtr("count"), UnitNorm: "count",
		Value: 100, MetricDay: "2025-01-01", RecordedAt: mustParse(t, "2025-01-01T08:00:00Z")}
	newer := model.Metric{ActivityID: activity.ID, Name: "steps", Unit: strPtr("count"), UnitNorm: "count",
		Value: 200, MetricDay: "2025-01-01", RecordedAt: mustParse(t, "2025-01-01T09:00:00Z")}
	require.NoError(t, db.Create(&older).Error)
	require.NoError(t, db.Create(&newer).Error)

	svc, _ := newMetricService(db, mustParse(t, "2025-01-01T10:00:00Z"))
	result, err := svc.RecordMetric(context.Background(), user.ID, activity.ID, &dto.CreateMetricDTO{
		Name:  "steps",
		Unit:  strPtr("count"),
		Value: floatPtr(300),
	})
	require.NoError(t, err)
	assert.False(t, result.Created)
	assert.Equal(t, newer.ID, result.Metric.ID)
	assert.Equal(t, int64(1), countMetrics(t, db, activity.ID))
}

// conflictOnceMetricRepo 首次 ReconcileDaily 模拟并发落败撞唯一索引，之后委托真实实现
type conflictOnceMetricRepo struct {
	repository.MetricRepo
	calls int
}

func (s *conflictOnceMetricRepo) ReconcileDaily(ctx context.Context, metric *model.Metric) (bool, error) {
	s.calls++
	if s.calls == 1 {
		return false, gorm.ErrDuplicatedKey
	}
	return s.MetricRepo.ReconcileDaily(ctx, metric)
}

func TestRecordMetricConflictThenRetryLandsOnWinnerRow(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "runner@example.com")
	activity := createTestActivity(t, db, user.ID, "run", mustParse(t, "2025-01-01T09:00:00Z"))
	ctx := context.Background()

	// 竞争的胜方已落库
	winner, _ := newMetricService(db, mustParse(t, "2025-01-01T10:00:00Z"))
	won, err := winner.RecordMetric(ctx, user.ID, activity.ID, &dto.CreateMetricDTO{
		Name:  "steps",
		Unit:  strPtr("count"),
		Value: floatPtr(1000),
	})
	require.NoError(t, err)
	require.True(t, won.Created)

	fakeRepo := &conflictOnceMetricRepo{MetricRepo: repository.NewMetricRepo(db)}
	loser := &MetricServiceImpl{
		activityRepo: repository.NewActivityRepo(db),
		metricRepo:   fakeRepo,
		nowFn:        func() time.Time { return mustParse(t, "2025-01-01T10:00:01Z") },
	}

	// 败方首次写入以冲突暴露
	_, err = loser.RecordMetric(ctx, user.ID, activity.ID, &dto.CreateMetricDTO{
		Name:  "steps",
		Unit:  strPtr("count"),
		Value: floatPtr(1500),
	})
	assert.ErrorIs(t, err, ErrMetricConflict)

	// 重试命中胜方的行，走覆盖分支
	result, err := loser.RecordMetric(ctx, user.ID, activity.ID, &dto.CreateMetricDTO{
		Name:  "steps",
		Unit:  strPtr("count"),
		Value: floatPtr(1500),
	})
	require.NoError(t, err)
	assert.False(t, result.Created)
	assert.Equal(t, won.Metric.ID, result.Metric.ID)
	assert.Equal(t, float64(1500), result.Metric.Value)
	assert.Equal(t, 2, fakeRepo.calls)
	assert.Equal(t, int64(1), countMetrics(t, db, activity.ID))
}

func TestMetricUniqueIndexRejectsDuplicateKey(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "runner@example.com")
	activity := createTestActivity(t, db, user.ID, "run", mustParse(t, "2025-01-01T09:00:00Z"))

	first := model.Metric{ActivityID: activity.ID, Name: "steps", Unit: strPtr("count"), UnitNorm: "count",
		Value: 100, MetricDay: "2025-01-01", RecordedAt: mustParse(t, "2025-01-01T08:00:00Z")}
	require.NoError(t, db.Create(&first).Error)

	dup := model.Metric{ActivityID: activity.ID, Name: "steps", Unit: strPtr("count"), UnitNorm: "count",
		Value: 200, MetricDay: "2025-01-01", RecordedAt: mustParse(t, "2025-01-01T09:00:00Z")}
	err := db.Create(&dup).Error
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
}

func TestUpdateMetricRecomputesKey(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "runner@example.com")
	activity := createTestActivity(t, db, user.ID, "run", mustParse(t, "2025-01-01T09:00:00Z"))

	svc, _ := newMetricService(db, mustParse(t, "2025-01-01T10:00:00Z"))
	created, err := svc.RecordMetric(context.Background(), user.ID, activity.ID, &dto.CreateMetricDTO{
		Name:  "distance",
		Unit:  strPtr("km"),
		Value: floatPtr(5),
	})
	require.NoError(t, err)

	updated, err := svc.UpdateMetric(context.Background(), user.ID, created.Metric.ID, &dto.UpdateMetricDTO{
		Unit:       strPtr("mi"),
		Value:      floatPtr(3.1),
		RecordedAt: strPtr("2025-06-01T23:30:00Z"),
	})
	require.NoError(t, err)
	assert.Equal(t, float64(3.1), updated.Value)

	var row model.Metric
	require.NoError(t, db.First(&row, created.Metric.ID).Error)
	assert.Equal(t, "mi", row.UnitNorm)
	assert.Equal(t, "2025-06-02", row.MetricDay)
}

func TestUpdateMetricInvalidTime(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "runner@example.com")
	activity := createTestActivity(t, db, user.ID, "run", mustParse(t, "2025-01-01T09:00:00Z"))

	svc, _ := newMetricService(db, mustParse(t, "2025-01-01T10:00:00Z"))
	created, err := svc.RecordMetric(context.Background(), user.ID, activity.ID, &dto.CreateMetricDTO{
		Name:  "steps",
		Unit:  strPtr("count"),
		Value: floatPtr(1000),
	})
	require.NoError(t, err)

	_, err = svc.UpdateMetric(context.Background(), user.ID, created.Metric.ID, &dto.UpdateMetricDTO{
		RecordedAt: strPtr("not-a-time"),
	})
	assert.ErrorIs(t, err, ErrParamInvalid)
}

func TestDeleteMetricOwnership(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	intruder := createTestUser(t, db, "intruder@example.com")
	activity := createTestActivity(t, db, owner.ID, "run", mustParse(t, "2025-01-01T09:00:00Z"))

	svc, _ := newMetricService(db, mustParse(t, "2025-01-01T10:00:00Z"))
	created, err := svc.RecordMetric(context.Background(), owner.ID, activity.ID, &dto.CreateMetricDTO{
		Name:  "steps",
		Unit:  strPtr("count"),
		Value: floatPtr(1000),
	})
	require.NoError(t, err)

	err = svc.DeleteMetric(context.Background(), intruder.ID, created.Metric.ID)
	assert.ErrorIs(t, err, ErrMetricNotFound)
	assert.Equal(t, int64(1), countMetrics(t, db, activity.ID))

	require.NoError(t, svc.DeleteMetric(context.Background(), owner.ID, created.Metric.ID))
	assert.Equal(t, int64(0), countMetrics(t, db, activity.ID))
}
