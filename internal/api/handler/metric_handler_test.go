package handler

import (
	"Fitboard/internal/api/dto"
	"Fitboard/internal/service"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// conflictingMetricService 前 conflicts 次 RecordMetric 返回写入冲突，之后返回覆盖结果
type conflictingMetricService struct {
	conflicts int
	calls     int
}

func (s *conflictingMetricService) RecordMetric(ctx context.Context, userID uint64, activityID uint64, metricDTO *dto.CreateMetricDTO) (*dto.RecordMetricResultDTO, error) {
	s.calls++
	if s.calls <= s.conflicts {
		return nil, service.ErrMetricConflict
	}
	return &dto.RecordMetricResultDTO{
		Metric: &dto.MetricDTO{
			ID:         7,
			ActivityID: activityID,
			Name:       metricDTO.Name,
			Unit:       metricDTO.Unit,
			Value:      *metricDTO.Value,
		},
		Created: false,
	}, nil
}

func (s *conflictingMetricService) UpdateMetric(ctx context.Context, userID uint64, metricID uint64, metricDTO *dto.UpdateMetricDTO) (*dto.MetricDTO, error) {
	return nil, service.ErrMetricNotFound
}

func (s *conflictingMetricService) DeleteMetric(ctx context.Context, userID uint64, metricID uint64) error {
	return service.ErrMetricNotFound
}

type recordMetricEnvelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    *struct {
		Metric  *dto.MetricDTO `json:"metric"`
		Created bool           `json:"created"`
	} `json:"data"`
}

func postRecordMetric(t *testing.T, metricSvc service.MetricService) *recordMetricEnvelope {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	h := NewMetricHandler(metricSvc)
	r.POST("/api/activities/:activity_id/metrics", func(c *gin.Context) {
		c.Set("user_id", uint64(1))
		h.RecordMetric(c)
	})

	body := strings.NewReader(`{"name":"steps","unit":"count","value":1500}`)
	req := httptest.NewRequest(http.MethodPost, "/api/activities/3/metrics", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	envelope := &recordMetricEnvelope{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), envelope))
	return envelope
}

func TestRecordMetricHandlerRetriesConflictOnce(t *testing.T) {
	metricSvc := &conflictingMetricService{conflicts: 1}

	envelope := postRecordMetric(t, metricSvc)

	assert.Equal(t, 2, metricSvc.calls)
	assert.Equal(t, 200, envelope.Code)
	require.NotNil(t, envelope.Data)
	assert.False(t, envelope.Data.Created)
	assert.Equal(t, float64(1500), envelope.Data.Metric.Value)
}

func TestRecordMetricHandlerSurfacesPersistentConflict(t *testing.T) {
	metricSvc := &conflictingMetricService{conflicts: 2}

	envelope := postRecordMetric(t, metricSvc)

	// 只重试一次，连续冲突按 409 返回
	assert.Equal(t, 2, metricSvc.calls)
	assert.Equal(t, 409, envelope.Code)
	assert.Nil(t, envelope.Data)
}
