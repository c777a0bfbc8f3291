package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dutchcoders/go-clamd"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"resumade/internal/storage"
)

const maxPhotoBytes = 5 * 1024 * 1024

// PhotoHandler 负责简历头像的上传与访问，上传前经 clamd 扫描。
type PhotoHandler struct {
	Storage   *storage.Client
	Logger    *slog.Logger
	ClamdAddr string
}

// NewPhotoHandler 返回 PhotoHandler 实例。
func NewPhotoHandler(storageClient *storage.Client, logger *slog.Logger, clamdAddr string) *PhotoHandler {
	return &PhotoHandler{
		Storage:   storageClient,
		Logger:    logger,
		ClamdAddr: clamdAddr,
	}
}

// UploadPhoto 处理受保护的头像上传。
func (h *PhotoHandler) UploadPhoto(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "missing file")
		return
	}
	if file.Size > maxPhotoBytes {
		BadRequest(c, "file too large")
		return
	}

	contentType := file.Header.Get("Content-Type")
	switch contentType {
	case "image/png", "image/jpeg", "image/webp":
	default:
		BadRequest(c, "unsupported content type")
		return
	}

	fileReader, err := file.Open()
	if err != nil {
		Internal(c, "failed to open file")
		return
	}

	clamdClient := clamd.NewClamd(h.ClamdAddr)
	abortChan := make(chan bool)
	scanChan, err := clamdClient.ScanStream(fileReader, abortChan)
	fileReader.Close()
	if err != nil {
		h.Logger.Error("scan file", slog.String("error", err.Error()))
		Internal(c, "failed to scan file")
		return
	}
	defer close(abortChan)

	for result := range scanChan {
		if result.Status != clamd.RES_OK {
			BadRequest(c, "malicious file detected")
			return
		}
	}

	fileReader, err = file.Open()
	if err != nil {
		Internal(c, "failed to reopen file")
		return
	}
	defer fileReader.Close()

	objectKey := fmt.Sprintf("user-photos/%d/%s", userID, uuid.NewString())
	if _, err := h.Storage.UploadFile(c.Request.Context(), objectKey, fileReader, file.Size, contentType); err != nil {
		h.Logger.Error("upload photo", slog.String("error", err.Error()))
		Internal(c, "failed to upload photo")
		return
	}

	OK(c, http.StatusCreated, gin.H{"object_key": objectKey})
}

// GetPhotoURL 生成头像的预签名访问链接，仅限本人的对象键。
func (h *PhotoHandler) GetPhotoURL(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	objectKey := strings.TrimSpace(c.Query("key"))
	prefix := fmt.Sprintf("user-photos/%d/", userID)
	if objectKey == "" || !strings.HasPrefix(objectKey, prefix) || strings.Contains(objectKey, "..") {
		BadRequest(c, "invalid object key")
		return
	}

	signedURL, err := h.Storage.GeneratePresignedURL(c.Request.Context(), objectKey, 10*time.Minute)
	if err != nil {
		if storage.IsNoSuchKey(err) {
			NotFound(c, "photo not found")
			return
		}
		h.Logger.Error("presign photo", slog.String("error", err.Error()))
		Internal(c, "failed to generate photo link")
		return
	}

	OK(c, http.StatusOK, gin.H{"url": signedURL})
}
