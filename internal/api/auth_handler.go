package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"resumade/internal/api/middleware"
	"resumade/internal/service"
)

// AuthHandler 处理注册、登录与当前用户资料。
type AuthHandler struct {
	users                 *service.UserService
	redis                 redis.UniversalClient
	logger                *slog.Logger
	loginRateLimitPerHour int
	loginLockThreshold    int
	loginLockTTL          time.Duration
}

// NewAuthHandler 构造认证处理器。
func NewAuthHandler(users *service.UserService, redisClient redis.UniversalClient, logger *slog.Logger, loginRateLimitPerHour, loginLockThreshold int, loginLockTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		users:                 users,
		redis:                 redisClient,
		logger:                logger,
		loginRateLimitPerHour: loginRateLimitPerHour,
		loginLockThreshold:    loginLockThreshold,
		loginLockTTL:          loginLockTTL,
	}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required,max=128"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// Register 创建新用户账号，返回不含密码的用户视图。
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	logger := h.loggerFromContext(c).With(slog.String("email", req.Email))

	user, err := h.users.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrConflict) {
			logger.Info("register conflict: email already registered")
		} else if !errors.Is(err, service.ErrValidation) {
			logger.Error("register failed", slog.Any("error", err))
		}
		FailFromError(c, err)
		return
	}

	logger.Info("user registered", slog.Uint64("user_id", uint64(user.ID)))
	OK(c, http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	User  *service.PublicUser `json:"user"`
	Token string              `json:"token"`
}

// Login 校验口令并返回用户与令牌。
func (h *AuthHandler) Login(c *gin.Context) {
	ip := c.ClientIP()
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	email := strings.ToLower(strings.TrimSpace(req.Email))
	logger := h.loggerFromContext(c).With(slog.String("email", email))

	// 速率限制：每 IP+邮箱 每小时 N 次
	rateKey := "rate:login:" + ip + ":" + email + ":" + time.Now().UTC().Format("2006010215")
	count, err := incrWithTTL(ctx, h.redis, rateKey, time.Hour)
	if err != nil {
		count = 0
	}
	if h.loginRateLimitPerHour > 0 && count > int64(h.loginRateLimitPerHour) {
		c.JSON(http.StatusTooManyRequests, Envelope{Success: false, Error: CodeAuth, Message: "rate limit exceeded"})
		return
	}

	// 锁定检查
	lockKey := "lock:login:" + email
	if ttl, _ := h.redis.TTL(ctx, lockKey).Result(); ttl > 0 {
		c.JSON(http.StatusTooManyRequests, Envelope{Success: false, Error: CodeAuth, Message: "account temporarily locked"})
		return
	}

	user, token, err := h.users.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			logger.Info("login failed: user not found")
			_ = h.incrementLoginFail(ctx, email)
			Unauthorized(c)
		case errors.Is(err, service.ErrAuth):
			logger.Info("login failed: password mismatch")
			_ = h.incrementLoginFail(ctx, email)
			Unauthorized(c)
		case errors.Is(err, service.ErrValidation):
			FailFromError(c, err)
		default:
			logger.Error("login failed", slog.Any("error", err))
			Internal(c, "internal error")
		}
		return
	}

	// 登录成功：清理失败计数
	_ = h.redis.Del(ctx, "lock:login:fail:"+email).Err()

	logger.Info("user logged in", slog.Uint64("user_id", uint64(user.ID)))
	OK(c, http.StatusOK, loginResponse{User: user, Token: token})
}

// Me 返回当前用户资料。
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		if !errors.Is(err, service.ErrNotFound) {
			h.loggerFromContext(c).Error("query current user failed", slog.Any("error", err))
		}
		FailFromError(c, err)
		return
	}

	OK(c, http.StatusOK, user)
}

type updateMeRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// UpdateMe 更新当前用户的姓名/邮箱。标识、创建时间与密码不可经此路径修改。
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	var req updateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	user, err := h.users.Update(c.Request.Context(), userID, service.UserUpdate{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		if !errors.Is(err, service.ErrValidation) && !errors.Is(err, service.ErrConflict) && !errors.Is(err, service.ErrNotFound) {
			h.loggerFromContext(c).Error("update current user failed", slog.Any("error", err))
		}
		FailFromError(c, err)
		return
	}

	OK(c, http.StatusOK, user)
}

func (h *AuthHandler) loggerFromContext(c *gin.Context) *slog.Logger {
	if logger := middleware.LoggerFromContext(c); logger != nil {
		return logger
	}
	if h.logger != nil {
		return h.logger
	}
	return slog.Default()
}

func (h *AuthHandler) incrementLoginFail(ctx context.Context, email string) error {
	failKey := "lock:login:fail:" + email
	count, err := h.redis.Incr(ctx, failKey).Result()
	if err != nil {
		return err
	}
	if count == 1 {
		_ = h.redis.Expire(ctx, failKey, h.loginLockTTL).Err()
	}
	if h.loginLockThreshold > 0 && count >= int64(h.loginLockThreshold) {
		_ = h.redis.Set(ctx, "lock:login:"+email, "1", h.loginLockTTL).Err()
	}
	return nil
}
