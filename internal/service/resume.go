package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"resumade/internal/database"
	"resumade/internal/resume"
)

// ResumeService 负责简历记录的增删改查。每份简历恰好归属一个用户。
type ResumeService struct {
	db *gorm.DB
}

// NewResumeService 构造 ResumeService。
func NewResumeService(db *gorm.DB) *ResumeService {
	return &ResumeService{db: db}
}

// ResumeUpdate 描述更新时允许替换的字段，nil 表示保留原值。
type ResumeUpdate struct {
	Title      *string
	TemplateID *string
	Content    *resume.Content
}

func marshalContent(content resume.Content) (datatypes.JSON, error) {
	content.EnsureItemIDs()
	data, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("encode content: %w", err)
	}
	return datatypes.JSON(data), nil
}

// Create 持久化一份新简历。userID 与 templateID 必填。
func (s *ResumeService) Create(ctx context.Context, userID uint, title, templateID string, content resume.Content) (*database.Resume, error) {
	if userID == 0 {
		return nil, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	if strings.TrimSpace(templateID) == "" {
		return nil, fmt.Errorf("%w: template id is required", ErrValidation)
	}

	encoded, err := marshalContent(content)
	if err != nil {
		return nil, err
	}

	rec := database.Resume{
		Title:      title,
		TemplateID: templateID,
		Content:    encoded,
		UserID:     userID,
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, fmt.Errorf("create resume: %w", err)
	}
	return &rec, nil
}

// ResumeByID 按标识查询简历。
func (s *ResumeService) ResumeByID(ctx context.Context, id uint) (*database.Resume, error) {
	var rec database.Resume
	if err := s.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: resume %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("query resume: %w", err)
	}
	return &rec, nil
}

// ListByUser 返回某用户的全部简历；没有简历时返回空列表而非错误。
func (s *ResumeService) ListByUser(ctx context.Context, userID uint) ([]database.Resume, error) {
	var records []database.Resume
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}
	return records, nil
}

// Update 替换给定字段并刷新 updated_at。先取记录再写入，
// 「不存在」与「值未变化」不会混为同一种失败。
func (s *ResumeService) Update(ctx context.Context, id uint, upd ResumeUpdate) (*database.Resume, error) {
	if upd.Title == nil && upd.TemplateID == nil && upd.Content == nil {
		return nil, fmt.Errorf("%w: no updatable fields provided", ErrValidation)
	}

	rec, err := s.ResumeByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if upd.Title != nil {
		updates["title"] = *upd.Title
	}
	if upd.TemplateID != nil {
		if strings.TrimSpace(*upd.TemplateID) == "" {
			return nil, fmt.Errorf("%w: template id must not be empty", ErrValidation)
		}
		updates["template_id"] = *upd.TemplateID
	}
	if upd.Content != nil {
		encoded, err := marshalContent(*upd.Content)
		if err != nil {
			return nil, err
		}
		updates["content"] = encoded
	}

	if err := s.db.WithContext(ctx).Model(rec).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update resume: %w", err)
	}
	if err := s.db.WithContext(ctx).First(rec, rec.ID).Error; err != nil {
		return nil, fmt.Errorf("reload resume: %w", err)
	}
	return rec, nil
}

// Delete 删除简历；目标不存在时返回 ErrNotFound。
func (s *ResumeService) Delete(ctx context.Context, id uint) error {
	if _, err := s.ResumeByID(ctx, id); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&database.Resume{}, id).Error; err != nil {
		return fmt.Errorf("delete resume: %w", err)
	}
	return nil
}

// SetPdfKey 记录导出产物在对象存储中的键。
func (s *ResumeService) SetPdfKey(ctx context.Context, id uint, key string) error {
	return s.db.WithContext(ctx).Model(&database.Resume{}).
		Where("id = ?", id).
		Update("pdf_key", key).Error
}
