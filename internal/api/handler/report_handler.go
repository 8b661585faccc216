package handler

import (
	"Fitboard/internal/api/dto"
	"Fitboard/internal/pkg/response"
	"Fitboard/internal/pkg/util"
	"Fitboard/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportSvc service.ReportService
}

func NewReportHandler(reportSvc service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

func (s *ReportHandler) GetSummary(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var queryDTO dto.SummaryQueryDTO
	err := c.ShouldBindQuery(&queryDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	summary, err := s.reportSvc.GetSummary(c.Request.Context(), userID, &queryDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, summary)
}

func (s *ReportHandler) GetDailySeries(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var queryDTO dto.DailySeriesQueryDTO
	err := c.ShouldBindQuery(&queryDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&queryDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}
	series, err := s.reportSvc.GetDailySeries(c.Request.Context(), userID, &queryDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, series)
}
