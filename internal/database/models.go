package database

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User 表示系统中的账号信息。密码仅以 bcrypt 哈希落库。
type User struct {
	gorm.Model
	Email        string   `gorm:"uniqueIndex;size:255"`
	Name         string   `gorm:"size:128"`
	PasswordHash string   `gorm:"size:255"`
	Resumes      []Resume `gorm:"constraint:OnDelete:CASCADE"`
}

// Resume 表示用户创建的简历。Content 为结构化 JSONB（见 internal/resume）。
type Resume struct {
	gorm.Model
	Title      string         `gorm:"size:255"`
	TemplateID string         `gorm:"size:64"`
	Content    datatypes.JSON `gorm:"type:jsonb"`
	UserID     uint           `gorm:"index;not null"`
	User       User           `gorm:"constraint:OnDelete:CASCADE"`
	PdfKey     string         `gorm:"size:512"`
}
