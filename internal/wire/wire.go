package wire

import (
	"Fitboard/internal/api"
	"Fitboard/internal/api/handler"
	"Fitboard/internal/job"
	"Fitboard/internal/pkg/cron"
	"Fitboard/internal/repository"
	"Fitboard/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	CronMgr *cron.Manager
}

func BuildApplication(db *gorm.DB) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	activityRepo := repository.NewActivityRepo(db)
	metricRepo := repository.NewMetricRepo(db)

	userService := service.NewUserService(userRepo)
	activityService := service.NewActivityService(activityRepo)
	metricService := service.NewMetricService(activityRepo, metricRepo)
	reportService := service.NewReportService(activityRepo, metricRepo)

	handlers := &api.HandlersGroup{
		UserHandler:     handler.NewUserHandler(userService),
		ActivityHandler: handler.NewActivityHandler(activityService),
		MetricHandler:   handler.NewMetricHandler(metricService),
		ReportHandler:   handler.NewReportHandler(reportService),
	}

	router := api.SetupRouter(handlers, db)

	metricSweepJob := job.NewMetricSweepJob(metricRepo)
	cronMgr := cron.NewCronManager(metricSweepJob)

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cronMgr,
	}, nil
}
