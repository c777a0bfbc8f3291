package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resumade/internal/service"
)

// Envelope 是所有响应的统一外壳。
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// 对外暴露的错误码，对应 internal/service 的错误分级。
const (
	CodeValidation = "validation_error"
	CodeConflict   = "conflict"
	CodeAuth       = "auth_error"
	CodeForbidden  = "forbidden"
	CodeNotFound   = "not_found"
	CodeInternal   = "internal_error"
)

// OK 输出成功响应。
func OK(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{Success: true, Data: data})
}

// Fail 输出失败响应。
func Fail(c *gin.Context, status int, code, msg string) {
	c.JSON(status, Envelope{Success: false, Error: code, Message: msg})
}

// AbortUnauthorized 终止请求并返回 401。
func AbortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, Envelope{Success: false, Error: CodeAuth, Message: "unauthorized"})
}

func BadRequest(c *gin.Context, msg string) { Fail(c, http.StatusBadRequest, CodeValidation, msg) }
func Unauthorized(c *gin.Context)           { Fail(c, http.StatusUnauthorized, CodeAuth, "invalid credentials") }
func Forbidden(c *gin.Context, msg string)  { Fail(c, http.StatusForbidden, CodeForbidden, msg) }
func NotFound(c *gin.Context, msg string)   { Fail(c, http.StatusNotFound, CodeNotFound, msg) }
func Conflict(c *gin.Context, msg string)   { Fail(c, http.StatusConflict, CodeConflict, msg) }
func Internal(c *gin.Context, msg string)   { Fail(c, http.StatusInternalServerError, CodeInternal, msg) }

// FailFromError 将服务层哨兵错误映射为响应包与状态码。
// 注册路由的邮箱冲突按路由表映射为 400（而非 409）。
func FailFromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		Fail(c, http.StatusBadRequest, CodeValidation, err.Error())
	case errors.Is(err, service.ErrConflict):
		Fail(c, http.StatusBadRequest, CodeConflict, err.Error())
	case errors.Is(err, service.ErrAuth):
		Fail(c, http.StatusUnauthorized, CodeAuth, err.Error())
	case errors.Is(err, service.ErrForbidden):
		Fail(c, http.StatusForbidden, CodeForbidden, err.Error())
	case errors.Is(err, service.ErrNotFound):
		Fail(c, http.StatusNotFound, CodeNotFound, err.Error())
	default:
		Internal(c, "internal error")
	}
}
