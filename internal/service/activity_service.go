package service

import (
	"Fitboard/internal/api/dto"
	"Fitboard/internal/model"
	"Fitboard/internal/repository"
	"context"
	"time"

	"github.com/jinzhu/copier"
)

const defaultListTake = 50

type ActivityService interface {
	ListActivities(ctx context.Context, userID uint64, listDTO *dto.ListActivitiesDTO) (*dto.ActivityListDTO, error)
	CreateActivity(ctx context.Context, userID uint64, createDTO *dto.CreateActivityDTO) (*dto.ActivityDTO, error)
	GetActivity(ctx context.Context, userID uint64, id uint64) (*dto.ActivityDTO, error)
	UpdateActivity(ctx context.Context, userID uint64, id uint64, updateDTO *dto.UpdateActivityDTO) (*dto.ActivityDTO, error)
	DeleteActivity(ctx context.Context, userID uint64, id uint64) error
}

type ActivityServiceImpl struct {
	activityRepo repository.ActivityRepo
}

func NewActivityService(activityRepo repository.ActivityRepo) ActivityService {
	return &ActivityServiceImpl{activityRepo: activityRepo}
}

func (s *ActivityServiceImpl) ListActivities(ctx context.Context, userID uint64, listDTO *dto.ListActivitiesDTO) (*dto.ActivityListDTO, error) {
	filter := &repository.ActivityFilter{
		Type: listDTO.Type,
		Take: defaultListTake,
	}
	if listDTO.Take != nil {
		filter.Take = *listDTO.Take
	}
	if listDTO.Skip != nil {
		filter.Skip = *listDTO.Skip
	}

	from, err := parseTimePtr(listDTO.From)
	if err != nil {
		return nil, err
	}
	to, err := parseTimePtr(listDTO.To)
	if err != nil {
		return nil, err
	}
	filter.From = from
	filter.To = to

	activities, err := s.activityRepo.ListActivities(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.ActivityDTO, 0, len(activities))
	for _, activity := range activities {
		item, err := toActivityDTO(activity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return &dto.ActivityListDTO{Items: items}, nil
}

func (s *ActivityServiceImpl) CreateActivity(ctx context.Context, userID uint64, createDTO *dto.CreateActivityDTO) (*dto.ActivityDTO, error) {
	startedAt, err := time.Parse(time.RFC3339, createDTO.StartedAt)
	if err != nil {
		return nil, ErrParamInvalid
	}
	endedAt, err := parseTimePtr(createDTO.EndedAt)
	if err != nil {
		return nil, err
	}
	if endedAt != nil && endedAt.Before(startedAt) {
		return nil, ErrTimeRangeInvalid
	}

	activity := &model.Activity{
		UserID:    userID,
		Type:      createDTO.Type,
		StartedAt: startedAt,
		EndedAt:   endedAt,
		Notes:     createDTO.Notes,
	}
	if err = s.activityRepo.CreateActivity(ctx, activity, createDTO.Tags); err != nil {
		return nil, err
	}

	return s.GetActivity(ctx, userID, activity.ID)
}

func (s *ActivityServiceImpl) GetActivity(ctx context.Context, userID uint64, id uint64) (*dto.ActivityDTO, error) {
	activity, err := s.activityRepo.GetOwnedActivity(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if activity == nil {
		return nil, ErrActivityNotFound
	}
	return toActivityDTO(activity)
}

func (s *ActivityServiceImpl) UpdateActivity(ctx context.Context, userID uint64, id uint64, updateDTO *dto.UpdateActivityDTO) (*dto.ActivityDTO, error) {
	activity, err := s.activityRepo.GetOwnedActivity(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if activity == nil {
		return nil, ErrActivityNotFound
	}

	if updateDTO.Type != nil {
		activity.Type = *updateDTO.Type
	}
	if updateDTO.StartedAt != nil {
		startedAt, err := time.Parse(time.RFC3339, *updateDTO.StartedAt)
		if err != nil {
			return nil, ErrParamInvalid
		}
		activity.StartedAt = startedAt
	}
	if updateDTO.EndedAt != nil {
		endedAt, err := parseTimePtr(updateDTO.EndedAt)
		if err != nil {
			return nil, err
		}
		activity.EndedAt = endedAt
	}
	if updateDTO.Notes != nil {
		activity.Notes = updateDTO.Notes
	}
	if activity.EndedAt != nil && activity.EndedAt.Before(activity.StartedAt) {
		return nil, ErrTimeRangeInvalid
	}

	if err = s.activityRepo.UpdateActivity(ctx, activity, updateDTO.Tags); err != nil {
		return nil, err
	}

	return s.GetActivity(ctx, userID, id)
}

func (s *ActivityServiceImpl) DeleteActivity(ctx context.Context, userID uint64, id uint64) error {
	activity, err := s.activityRepo.GetOwnedActivity(ctx, id, userID)
	if err != nil {
		return err
	}
	if activity == nil {
		return ErrActivityNotFound
	}
	return s.activityRepo.DeleteActivity(ctx, activity.ID)
}

func toActivityDTO(activity *model.Activity) (*dto.ActivityDTO, error) {
	activityDTO := &dto.ActivityDTO{
		ID:        activity.ID,
		UserID:    activity.UserID,
		Type:      activity.Type,
		StartedAt: activity.StartedAt,
		EndedAt:   activity.EndedAt,
		Notes:     activity.Notes,
		CreatedAt: activity.CreatedAt,
	}

	activityDTO.Tags = make([]string, 0, len(activity.Tags))
	for _, link := range activity.Tags {
		activityDTO.Tags = append(activityDTO.Tags, link.Tag.Label)
	}

	activityDTO.Metrics = make([]dto.MetricDTO, 0, len(activity.Metrics))
	for _, metric := range activity.Metrics {
		metricDTO := dto.MetricDTO{}
		if err := copier.Copy(&metricDTO, &metric); err != nil {
			return nil, err
		}
		activityDTO.Metrics = append(activityDTO.Metrics, metricDTO)
	}
	return activityDTO, nil
}

func parseTimePtr(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, *value)
	if err != nil {
		return nil, ErrParamInvalid
	}
	return &parsed, nil
}
