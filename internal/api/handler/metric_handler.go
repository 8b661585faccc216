package handler

import (
	"Fitboard/internal/api/dto"
	"Fitboard/internal/pkg/response"
	"Fitboard/internal/pkg/util"
	"Fitboard/internal/service"
	"errors"

	"github.com/gin-gonic/gin"
)

type MetricHandler struct {
	metricSvc service.MetricService
}

func NewMetricHandler(metricSvc service.MetricService) *MetricHandler {
	return &MetricHandler{metricSvc: metricSvc}
}

// RecordMetric 当日归并写入。并发首次写入撞唯一索引时重试一次，
// 重试会命中已存在的行并走覆盖分支。
func (s *MetricHandler) RecordMetric(c *gin.Context) {
	userID := c.GetUint64("user_id")
	activityID, err := parseIDParam(c, "activity_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	var createDTO dto.CreateMetricDTO
	if err = c.ShouldBind(&createDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&createDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	result, err := s.metricSvc.RecordMetric(c.Request.Context(), userID, activityID, &createDTO)
	if errors.Is(err, service.ErrMetricConflict) {
		result, err = s.metricSvc.RecordMetric(c.Request.Context(), userID, activityID, &createDTO)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *MetricHandler) UpdateMetric(c *gin.Context) {
	userID := c.GetUint64("user_id")
	metricID, err := parseIDParam(c, "metric_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	var updateDTO dto.UpdateMetricDTO
	if err = c.ShouldBind(&updateDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&updateDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}
	metricDTO, err := s.metricSvc.UpdateMetric(c.Request.Context(), userID, metricID, &updateDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, metricDTO)
}

func (s *MetricHandler) DeleteMetric(c *gin.Context) {
	userID := c.GetUint64("user_id")
	metricID, err := parseIDParam(c, "metric_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err = s.metricSvc.DeleteMetric(c.Request.Context(), userID, metricID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
