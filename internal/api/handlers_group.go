package api

import "Fitboard/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	UserHandler     *handler.UserHandler
	ActivityHandler *handler.ActivityHandler
	MetricHandler   *handler.MetricHandler
	ReportHandler   *handler.ReportHandler
}
