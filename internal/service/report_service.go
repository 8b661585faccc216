package service

import (
	"Fitboard/internal/api/dto"
	"Fitboard/internal/repository"
	"context"
	"time"
)

const defaultSeriesDays = 7

type ReportService interface {
	GetSummary(ctx context.Context, userID uint64, queryDTO *dto.SummaryQueryDTO) (*dto.SummaryDTO, error)
	GetDailySeries(ctx context.Context, userID uint64, queryDTO *dto.DailySeriesQueryDTO) (*dto.DailySeriesDTO, error)
}

type ReportServiceImpl struct {
	activityRepo repository.ActivityRepo
	metricRepo   repository.MetricRepo
	nowFn        func() time.Time
}

func NewReportService(activityRepo repository.ActivityRepo, metricRepo repository.MetricRepo) ReportService {
	return &ReportServiceImpl{
		activityRepo: activityRepo,
		metricRepo:   metricRepo,
		nowFn:        time.Now,
	}
}

// GetSummary 汇总区间内的活动数、按类型的次数/分钟数、按 name:unit 的指标总量
func (s *ReportServiceImpl) GetSummary(ctx context.Context, userID uint64, queryDTO *dto.SummaryQueryDTO) (*dto.SummaryDTO, error) {
	from, err := parseTimePtr(queryDTO.From)
	if err != nil {
		return nil, err
	}
	to, err := parseTimePtr(queryDTO.To)
	if err != nil {
		return nil, err
	}

	activities, err := s.activityRepo.ListActivities(ctx, userID, &repository.ActivityFilter{
		From: from,
		To:   to,
		Take: -1,
	})
	if err != nil {
		return nil, err
	}

	summary := &dto.SummaryDTO{
		From:            queryDTO.From,
		To:              queryDTO.To,
		TotalActivities: len(activities),
		ByType:          make(map[string]*dto.TypeStatDTO),
		Metrics:         make([]*dto.MetricTotalDTO, 0),
	}

	metricTotals := make(map[string]*dto.MetricTotalDTO)
	for _, activity := range activities {
		stat := summary.ByType[activity.Type]
		if stat == nil {
			stat = &dto.TypeStatDTO{}
			summary.ByType[activity.Type] = stat
		}
		stat.Count++
		if activity.EndedAt != nil {
			minutes := activity.EndedAt.Sub(activity.StartedAt).Minutes()
			if minutes > 0 {
				stat.Minutes += minutes
			}
		}

		for _, metric := range activity.Metrics {
			unit := normalizeUnit(metric.Unit)
			key := metric.Name + ":" + unit
			total := metricTotals[key]
			if total == nil {
				total = &dto.MetricTotalDTO{Name: metric.Name, Unit: unit}
				metricTotals[key] = total
				summary.Metrics = append(summary.Metrics, total)
			}
			total.Total += metric.Value
		}
	}
	return summary, nil
}

// GetDailySeries 取某个指标键最近 N 天的按日合计，日界按 Europe/London 计算
func (s *ReportServiceImpl) GetDailySeries(ctx context.Context, userID uint64, queryDTO *dto.DailySeriesQueryDTO) (*dto.DailySeriesDTO, error) {
	days := queryDTO.Days
	if days == 0 {
		days = defaultSeriesDays
	}

	unitNorm := normalizeUnit(queryDTO.Unit)
	sinceDay := londonDay(s.nowFn().AddDate(0, 0, -(days - 1)))

	totals, err := s.metricRepo.GetDailyTotals(ctx, userID, queryDTO.Name, unitNorm, sinceDay)
	if err != nil {
		return nil, err
	}

	series := &dto.DailySeriesDTO{
		Name:   queryDTO.Name,
		Unit:   unitNorm,
		Days:   days,
		Points: make([]*dto.DailyPointDTO, 0, len(totals)),
	}
	for _, total := range totals {
		series.Points = append(series.Points, &dto.DailyPointDTO{Day: total.Day, Total: total.Total})
	}
	return series, nil
}
