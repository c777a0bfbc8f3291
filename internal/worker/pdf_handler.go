package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"gorm.io/gorm"

	"resumade/internal/database"
	"resumade/internal/pdf"
	"resumade/internal/resume"
	"resumade/internal/storage"
	"resumade/internal/tasks"
)

// PDFTaskHandler 负责消费 PDF 导出任务。
type PDFTaskHandler struct {
	db      *gorm.DB
	storage *storage.Client
	logger  *slog.Logger
}

// NewPDFTaskHandler 创建任务处理器。
func NewPDFTaskHandler(db *gorm.DB, storageClient *storage.Client, logger *slog.Logger) *PDFTaskHandler {
	return &PDFTaskHandler{
		db:      db,
		storage: storageClient,
		logger:  logger,
	}
}

// ProcessTask 实现 asynq.Handler：取简历、渲染模板、打印 PDF、上传并回写对象键。
func (h *PDFTaskHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload tasks.PDFExportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		h.logger.Error("unmarshal task payload failed", slog.Any("error", err))
		return err
	}

	log := h.logger.With(
		slog.String("correlation_id", payload.CorrelationID),
		slog.Int("resume_id", int(payload.ResumeID)),
	)
	log.Info("starting pdf export task")

	var rec database.Resume
	if err := h.db.WithContext(ctx).First(&rec, payload.ResumeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 简历在任务入队后被删除：跳过而不是重试。
			log.Warn("resume not found, skipping task")
			return nil
		}
		log.Error("query resume failed", slog.Any("error", err))
		return err
	}

	var content resume.Content
	if err := json.Unmarshal(rec.Content, &content); err != nil {
		log.Error("decode resume content failed", slog.Any("error", err))
		return fmt.Errorf("decode content: %w", err)
	}

	data := renderData{
		Title:   rec.Title,
		Content: content,
	}
	if content.PersonalInfo.PhotoKey != "" {
		url, err := h.storage.GeneratePresignedURL(ctx, content.PersonalInfo.PhotoKey, 10*time.Minute)
		if err != nil {
			if !storage.IsNoSuchKey(err) {
				log.Error("presign photo failed", slog.Any("error", err))
				return err
			}
			log.Warn("photo object missing, rendering without it")
		} else {
			data.PhotoURL = url
		}
	}

	html, err := RenderHTML(rec.TemplateID, data)
	if err != nil {
		log.Error("render resume html failed", slog.Any("error", err))
		return err
	}

	pdfBytes, err := pdf.GeneratePDFFromHTML(html)
	if err != nil {
		log.Error("generate pdf failed", slog.Any("error", err))
		return err
	}

	objectKey := fmt.Sprintf("resume-pdfs/%d/%d.pdf", rec.UserID, rec.ID)
	reader := bytes.NewReader(pdfBytes)
	if _, err := h.storage.UploadFile(ctx, objectKey, reader, int64(len(pdfBytes)), "application/pdf"); err != nil {
		log.Error("upload pdf failed", slog.Any("error", err))
		return err
	}

	if err := h.db.WithContext(ctx).Model(&database.Resume{}).
		Where("id = ?", rec.ID).
		Update("pdf_key", objectKey).Error; err != nil {
		log.Error("record pdf key failed", slog.Any("error", err))
		return err
	}

	log.Info("pdf export completed", slog.String("object_key", objectKey))
	return nil
}
