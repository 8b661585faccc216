package handler

import (
	"Fitboard/internal/api/dto"
	"Fitboard/internal/pkg/response"
	"Fitboard/internal/pkg/util"
	"Fitboard/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ActivityHandler struct {
	activitySvc service.ActivityService
}

func NewActivityHandler(activitySvc service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activitySvc: activitySvc}
}

func (s *ActivityHandler) ListActivities(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var listDTO dto.ListActivitiesDTO
	err := c.ShouldBindQuery(&listDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&listDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}
	list, err := s.activitySvc.ListActivities(c.Request.Context(), userID, &listDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *ActivityHandler) CreateActivity(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var createDTO dto.CreateActivityDTO
	err := c.ShouldBind(&createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&createDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}
	activityDTO, err := s.activitySvc.CreateActivity(c.Request.Context(), userID, &createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, activityDTO)
}

func (s *ActivityHandler) GetActivity(c *gin.Context) {
	userID := c.GetUint64("user_id")
	activityID, err := parseIDParam(c, "activity_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	activityDTO, err := s.activitySvc.GetActivity(c.Request.Context(), userID, activityID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, activityDTO)
}

func (s *ActivityHandler) UpdateActivity(c *gin.Context) {
	userID := c.GetUint64("user_id")
	activityID, err := parseIDParam(c, "activity_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	var updateDTO dto.UpdateActivityDTO
	if err = c.ShouldBind(&updateDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&updateDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}
	activityDTO, err := s.activitySvc.UpdateActivity(c.Request.Context(), userID, activityID, &updateDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, activityDTO)
}

func (s *ActivityHandler) DeleteActivity(c *gin.Context) {
	userID := c.GetUint64("user_id")
	activityID, err := parseIDParam(c, "activity_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err = s.activitySvc.DeleteActivity(c.Request.Context(), userID, activityID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func parseIDParam(c *gin.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}
