package api

import (
	"Fitboard/internal/api/config"
	"Fitboard/internal/api/middleware"
	"Fitboard/internal/pkg/consts"
	"Fitboard/internal/pkg/logger"
	"Fitboard/internal/pkg/response"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRouter(group *HandlersGroup, db *gorm.DB) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	rateLimitCfg := config.Cfg.RateLimit

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		apiGroup.GET("/ready", func(c *gin.Context) {
			sqlDB, err := db.DB()
			if err == nil {
				err = sqlDB.PingContext(c.Request.Context())
			}
			if err != nil {
				response.Fail(c, response.InternalServerError, "数据库未就绪")
				return
			}
			response.Success(c, nil)
		})

		userGroup := apiGroup.Group("/user")
		userGroup.Use(middleware.RateLimitMiddleware(consts.RateLimitAuthKey, rateLimitCfg.AuthPerMinute))
		{
			// 无需登录即可访问的接口
			userGroup.POST("/register", group.UserHandler.Register)
			userGroup.POST("/login", group.UserHandler.Login)

			authGroup := userGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/logout", group.UserHandler.Logout)
				authGroup.GET("/info", group.UserHandler.GetUserInfo)
			}
		}

		apiLimited := apiGroup.Group("")
		apiLimited.Use(middleware.RateLimitMiddleware(consts.RateLimitAPIKey, rateLimitCfg.APIPerMinute))
		apiLimited.Use(middleware.AuthMiddleware())

		activityGroup := apiLimited.Group("/activities")
		{
			activityGroup.GET("", group.ActivityHandler.ListActivities)
			activityGroup.POST("", group.ActivityHandler.CreateActivity)
			activityGroup.GET("/:activity_id", group.ActivityHandler.GetActivity)
			activityGroup.PUT("/:activity_id", group.ActivityHandler.UpdateActivity)
			activityGroup.DELETE("/:activity_id", group.ActivityHandler.DeleteActivity)

			activityGroup.POST("/:activity_id/metrics", group.MetricHandler.RecordMetric)
		}

		metricGroup := apiLimited.Group("/metrics")
		{
			metricGroup.PUT("/:metric_id", group.MetricHandler.UpdateMetric)
			metricGroup.DELETE("/:metric_id", group.MetricHandler.DeleteMetric)
		}

		reportGroup := apiLimited.Group("/reports")
		{
			reportGroup.GET("/summary", group.ReportHandler.GetSummary)
			reportGroup.GET("/metrics/daily", group.ReportHandler.GetDailySeries)
		}
	}

	return r
}
