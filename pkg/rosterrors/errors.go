// Package rosterrors 提供统一的错误处理框架
package rosterrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code 错误码，枚举与排班引擎的错误分类一一对应
type Code string

const (
	CodeInvalidInput     Code = "INVALID_INPUT"
	CodeMissingTeam      Code = "MISSING_TEAM"
	CodeUnderstaffed     Code = "UNDERSTAFFED"
	CodeSolverInfeasible Code = "SOLVER_INFEASIBLE"
	CodeInternal         Code = "INTERNAL_ERROR"
	CodeNotFound         Code = "NOT_FOUND"
)

// AppError 应用错误
type AppError struct {
	Code       Code                   `json:"code"`
	Message    string                 `json:"message"`
	Details    string                 `json:"details,omitempty"`
	HTTPStatus int                    `json:"-"`
	Cause      error                  `json:"-"`
	Fields     map[string]interface{} `json:"fields,omitempty"`
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap 返回底层错误
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithCause 添加原因
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithField 添加字段
func (e *AppError) WithField(key string, value interface{}) *AppError {
	if e.Fields == nil {
		e.Fields = make(map[string]interface{})
	}
	e.Fields[key] = value
	return e
}

// New 创建新错误
func New(code Code, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

func codeToHTTPStatus(code Code) int {
	switch code {
	case CodeInvalidInput, CodeMissingTeam:
		return http.StatusBadRequest
	case CodeUnderstaffed:
		return http.StatusUnprocessableEntity
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Is 检查错误是否为特定类型
func Is(err error, code Code) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// GetHTTPStatus 获取HTTP状态码
func GetHTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// InvalidInput 创建输入无效错误
func InvalidInput(reason string) *AppError {
	return New(CodeInvalidInput, reason)
}

// MissingTeam 创建 team 模式缺少 team 字段的错误，命名出错的员工
func MissingTeam(employeeID string) *AppError {
	return New(CodeMissingTeam, fmt.Sprintf("employee %q has no team assigned", employeeID)).
		WithField("employee_id", employeeID)
}

// ValidationErrors 用于 team 模式累积 Understaffed 校验错误
type ValidationErrors struct {
	Details []string `json:"details"`
}

// Add 追加一条人类可读的校验错误描述
func (ve *ValidationErrors) Add(format string, args ...interface{}) {
	ve.Details = append(ve.Details, fmt.Sprintf(format, args...))
}

// HasErrors 检查是否已有校验错误
func (ve *ValidationErrors) HasErrors() bool {
	return len(ve.Details) > 0
}

// FailureDocument 是 team 模式向外暴露的失败响应体，携带一条汇总错误和逐条的明细说明
type FailureDocument struct {
	Error   string   `json:"error"`
	Details []string `json:"details"`
}

// ToFailureDocument 转换为外部接口约定的失败响应体
func (ve *ValidationErrors) ToFailureDocument() *FailureDocument {
	return &FailureDocument{
		Error:   "Failed to generate roster due to understaffing",
		Details: ve.Details,
	}
}
