package service

import "errors"

// 业务错误分级。服务层对可预期的失败返回哨兵错误，
// 传输层将其映射为统一响应包与 HTTP 状态码；
// 非预期错误（存储不可达等）原样上抛，由传输层兜底为 500。
var (
	// ErrValidation 表示输入缺失或格式非法（400）。
	ErrValidation = errors.New("validation failed")
	// ErrConflict 表示唯一性约束冲突（注册路由映射为 400）。
	ErrConflict = errors.New("conflict")
	// ErrAuth 表示凭证错误或令牌无效（401）。
	ErrAuth = errors.New("invalid credentials")
	// ErrForbidden 表示已认证但非资源属主（403）。
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound 表示目标实体不存在（404）。
	ErrNotFound = errors.New("not found")
)
