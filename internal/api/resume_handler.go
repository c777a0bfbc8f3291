package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"gorm.io/datatypes"

	"resumade/internal/api/middleware"
	"resumade/internal/database"
	"resumade/internal/resume"
	"resumade/internal/service"
	"resumade/internal/storage"
	"resumade/internal/tasks"
)

// ResumeHandler 负责处理与简历相关的 API 请求。
// 所有按 ID 的读/改/删操作都先经属主校验。
type ResumeHandler struct {
	resumes     *service.ResumeService
	guard       *service.Guard
	asynqClient *asynq.Client
	storage     *storage.Client
	logger      *slog.Logger
}

// NewResumeHandler 构造 ResumeHandler。
func NewResumeHandler(resumes *service.ResumeService, guard *service.Guard, asynqClient *asynq.Client, storageClient *storage.Client, logger *slog.Logger) *ResumeHandler {
	return &ResumeHandler{
		resumes:     resumes,
		guard:       guard,
		asynqClient: asynqClient,
		storage:     storageClient,
		logger:      logger,
	}
}

type createResumeRequest struct {
	Title      string         `json:"title"`
	TemplateID string         `json:"template_id" binding:"required"`
	Content    resume.Content `json:"content"`
}

type updateResumeRequest struct {
	Title      *string         `json:"title"`
	TemplateID *string         `json:"template_id"`
	Content    *resume.Content `json:"content"`
}

type resumeResponse struct {
	ID         uint           `json:"id"`
	UserID     uint           `json:"user_id"`
	Title      string         `json:"title"`
	TemplateID string         `json:"template_id"`
	Content    datatypes.JSON `json:"content"`
	PdfReady   bool           `json:"pdf_ready"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

func newResumeResponse(rec database.Resume) resumeResponse {
	return resumeResponse{
		ID:         rec.ID,
		UserID:     rec.UserID,
		Title:      rec.Title,
		TemplateID: rec.TemplateID,
		Content:    rec.Content,
		PdfReady:   rec.PdfKey != "",
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
	}
}

// CreateResume 保存一份新简历；归属用户强制为当前调用者。
func (h *ResumeHandler) CreateResume(c *gin.Context) {
	var req createResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	rec, err := h.resumes.Create(c.Request.Context(), userID, req.Title, req.TemplateID, req.Content)
	if err != nil {
		if !errors.Is(err, service.ErrValidation) {
			middleware.LoggerFromContext(c).Error("create resume failed", slog.Any("error", err))
		}
		FailFromError(c, err)
		return
	}

	OK(c, http.StatusCreated, newResumeResponse(*rec))
}

// ListResumes 列出当前用户的全部简历；没有简历时返回空列表。
func (h *ResumeHandler) ListResumes(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	records, err := h.resumes.ListByUser(c.Request.Context(), userID)
	if err != nil {
		middleware.LoggerFromContext(c).Error("list resumes failed", slog.Any("error", err))
		Internal(c, "failed to list resumes")
		return
	}

	items := make([]resumeResponse, 0, len(records))
	for _, r := range records {
		items = append(items, newResumeResponse(r))
	}

	OK(c, http.StatusOK, items)
}

// GetResume 返回指定 ID 的简历（仅属主可见）。
func (h *ResumeHandler) GetResume(c *gin.Context) {
	rec, ok := h.authorizedResume(c)
	if !ok {
		return
	}
	OK(c, http.StatusOK, newResumeResponse(*rec))
}

// UpdateResume 替换指定简历的给定字段。
func (h *ResumeHandler) UpdateResume(c *gin.Context) {
	var req updateResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	rec, ok := h.authorizedResume(c)
	if !ok {
		return
	}

	updated, err := h.resumes.Update(c.Request.Context(), rec.ID, service.ResumeUpdate{
		Title:      req.Title,
		TemplateID: req.TemplateID,
		Content:    req.Content,
	})
	if err != nil {
		if !errors.Is(err, service.ErrValidation) && !errors.Is(err, service.ErrNotFound) {
			middleware.LoggerFromContext(c).Error("update resume failed", slog.Any("error", err))
		}
		FailFromError(c, err)
		return
	}

	OK(c, http.StatusOK, newResumeResponse(*updated))
}

// DeleteResume 删除指定简历及其已导出的 PDF 产物。
func (h *ResumeHandler) DeleteResume(c *gin.Context) {
	rec, ok := h.authorizedResume(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := h.resumes.Delete(ctx, rec.ID); err != nil {
		if !errors.Is(err, service.ErrNotFound) {
			middleware.LoggerFromContext(c).Error("delete resume failed", slog.Any("error", err))
		}
		FailFromError(c, err)
		return
	}

	if rec.PdfKey != "" && h.storage != nil {
		if err := h.storage.DeleteObject(ctx, rec.PdfKey); err != nil && !storage.IsNoSuchKey(err) {
			middleware.LoggerFromContext(c).Warn("delete exported pdf failed",
				slog.String("object_key", rec.PdfKey),
				slog.Any("error", err),
			)
		}
	}

	OK(c, http.StatusOK, gin.H{"deleted": true})
}

// ExportResume 将 PDF 导出任务入队并立即返回 202。
func (h *ResumeHandler) ExportResume(c *gin.Context) {
	rec, ok := h.authorizedResume(c)
	if !ok {
		return
	}

	correlationID := middleware.GetCorrelationID(c)
	task, err := tasks.NewPDFExportTask(rec.ID, correlationID)
	if err != nil {
		Internal(c, "failed to create task")
		return
	}

	info, err := h.asynqClient.Enqueue(task, asynq.MaxRetry(5))
	if err != nil {
		middleware.LoggerFromContext(c).Error("enqueue pdf export failed", slog.Any("error", err))
		Internal(c, "failed to enqueue pdf export")
		return
	}

	OK(c, http.StatusAccepted, gin.H{"task_id": info.ID})
}

// GetExportLink 生成已导出 PDF 的预签名下载链接；尚未导出时返回 409。
func (h *ResumeHandler) GetExportLink(c *gin.Context) {
	rec, ok := h.authorizedResume(c)
	if !ok {
		return
	}

	if rec.PdfKey == "" {
		Conflict(c, "pdf not ready")
		return
	}

	signedURL, err := h.storage.GeneratePresignedURL(c.Request.Context(), rec.PdfKey, 5*time.Minute)
	if err != nil {
		middleware.LoggerFromContext(c).Error("presign pdf failed", slog.Any("error", err))
		Internal(c, "failed to generate download link")
		return
	}

	OK(c, http.StatusOK, gin.H{"url": signedURL})
}

// authorizedResume 解析路径 ID 并做属主校验；失败时已写响应。
func (h *ResumeHandler) authorizedResume(c *gin.Context) (*database.Resume, bool) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return nil, false
	}

	resumeID, err := parseIDParam(c, "id")
	if err != nil {
		BadRequest(c, "invalid resume id")
		return nil, false
	}

	rec, err := h.guard.Authorize(c.Request.Context(), resumeID, userID)
	if err != nil {
		if !errors.Is(err, service.ErrNotFound) && !errors.Is(err, service.ErrForbidden) {
			middleware.LoggerFromContext(c).Error("ownership check failed", slog.Any("error", err))
		}
		FailFromError(c, err)
		return nil, false
	}
	return rec, true
}
