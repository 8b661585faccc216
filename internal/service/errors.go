package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	Conflict            = 409
	InternalServerError = 500
)

var (
	ErrParamInvalid         = errors.New("参数错误")
	ErrUserNotFound         = errors.New("用户不存在")
	ErrUserEmailExist       = errors.New("邮箱已被注册")
	ErrCredentialsIncorrect = errors.New("邮箱或密码错误")
	ErrActivityNotFound     = errors.New("活动不存在")
	ErrMetricNotFound       = errors.New("指标不存在")
	ErrMetricConflict       = errors.New("指标写入冲突，请重试")
	ErrTimeRangeInvalid     = errors.New("时间范围无效")
	UnauthorizedError       = errors.New("权限不足")
	UnExpectedError         = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:         BadRequest,
	ErrUserNotFound:         NotFound,
	ErrUserEmailExist:       Conflict,
	ErrCredentialsIncorrect: Unauthorized,
	ErrActivityNotFound:     NotFound,
	ErrMetricNotFound:       NotFound,
	ErrMetricConflict:       Conflict,
	ErrTimeRangeInvalid:     BadRequest,
	UnauthorizedError:       Unauthorized,
	UnExpectedError:         InternalServerError,
}
