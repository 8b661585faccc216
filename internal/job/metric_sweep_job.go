package job

import (
	"Fitboard/internal/pkg/logger"
	"Fitboard/internal/repository"
	"context"
	log "log/slog"

	"github.com/google/uuid"
)

// MetricSweepJob 每日巡检指标表，清理同键同日残留的重复行。
// 正常写入路径由唯一索引保证不会产生重复，这里兜底历史数据异常。
type MetricSweepJob struct {
	metricRepo repository.MetricRepo
}

func NewMetricSweepJob(metricRepo repository.MetricRepo) *MetricSweepJob {
	return &MetricSweepJob{metricRepo: metricRepo}
}

func (s *MetricSweepJob) Run() {
	ctx := logger.WithTraceID(context.Background(), "job-"+uuid.NewString())

	keys, err := s.metricRepo.GetDuplicateKeys(ctx)
	if err != nil {
		log.ErrorContext(ctx, "scan duplicate metric keys error", "err", err)
		return
	}
	if len(keys) == 0 {
		log.InfoContext(ctx, "metric sweep finished, no duplicates")
		return
	}

	var removed int64
	for _, key := range keys {
		count, err := s.metricRepo.ResolveDuplicates(ctx, key)
		if err != nil {
			log.ErrorContext(ctx, "resolve duplicate metrics error",
				"activity_id", key.ActivityID, "name", key.Name, "day", key.MetricDay, "err", err)
			continue
		}
		removed += count
	}

	log.InfoContext(ctx, "metric sweep finished", "keys", len(keys), "removed", removed)
}
