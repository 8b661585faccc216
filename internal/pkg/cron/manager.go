package cron

import (
	"Fitboard/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

// 指标巡检放在凌晨低峰时段执行
const metricSweepSchedule = "0 30 3 * * *"

// Manager 定时任务引擎，持有所有注册的后台任务
type Manager struct {
	engine         *cron.Cron
	metricSweepJob *job.MetricSweepJob
}

func NewCronManager(metricSweepJob *job.MetricSweepJob) *Manager {
	return &Manager{
		engine:         cron.New(cron.WithSeconds()),
		metricSweepJob: metricSweepJob,
	}
}

// Start 注册任务并启动调度
func (s *Manager) Start() error {
	if _, err := s.engine.AddJob(metricSweepSchedule, s.metricSweepJob); err != nil {
		return err
	}
	log.Info("Cron 定时任务引擎启动", "metric_sweep", metricSweepSchedule)
	s.engine.Start()
	return nil
}

// Stop 停止调度，已在执行中的任务不被打断
func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	s.engine.Stop()
}
