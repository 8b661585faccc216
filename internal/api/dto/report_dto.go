package dto

// SummaryQueryDTO 汇总报表查询条件
type SummaryQueryDTO struct {
	From *string `form:"from"`
	To   *string `form:"to"`
}

// TypeStatDTO 按活动类型统计
type TypeStatDTO struct {
	Count   int     `json:"count"`
	Minutes float64 `json:"minutes"`
}

// MetricTotalDTO 按 name:unit 汇总的指标总量
type MetricTotalDTO struct {
	Name  string  `json:"name"`
	Unit  string  `json:"unit"`
	Total float64 `json:"total"`
}

// SummaryDTO 汇总报表
type SummaryDTO struct {
	From            *string                 `json:"from"`
	To              *string                 `json:"to"`
	TotalActivities int                     `json:"total_activities"`
	ByType          map[string]*TypeStatDTO `json:"by_type"`
	Metrics         []*MetricTotalDTO       `json:"metrics"`
}

// DailySeriesQueryDTO 按日序列查询条件，趋势图数据源
type DailySeriesQueryDTO struct {
	Name string  `form:"name" binding:"required" validate:"min=1,max=50"`
	Unit *string `form:"unit" validate:"omitempty,max=20"`
	Days int     `form:"days" validate:"omitempty,oneof=7 30"`
}

// DailyPointDTO 单日数据点，day 为 Europe/London 日历日
type DailyPointDTO struct {
	Day   string  `json:"day"`
	Total float64 `json:"total"`
}

// DailySeriesDTO 按日序列
type DailySeriesDTO struct {
	Name   string           `json:"name"`
	Unit   string           `json:"unit"`
	Days   int              `json:"days"`
	Points []*DailyPointDTO `json:"points"`
}
