package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"resumade/internal/auth"
	"resumade/internal/database"
)

// MinPasswordLength 是注册时允许的最短密码长度。
const MinPasswordLength = 6

// UserService 负责账号注册、登录、查询与资料更新。
// 密码永远不出现在任何对外结果中。
type UserService struct {
	db     *gorm.DB
	hasher *auth.Hasher
	tokens *auth.TokenService
}

// NewUserService 构造 UserService。
func NewUserService(db *gorm.DB, hasher *auth.Hasher, tokens *auth.TokenService) *UserService {
	return &UserService{db: db, hasher: hasher, tokens: tokens}
}

// PublicUser 是剔除密码后的用户视图。
type PublicUser struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserUpdate 描述资料更新允许修改的字段。
// 标识、创建时间与密码不在此路径内，契约层面即排除。
type UserUpdate struct {
	Name  *string
	Email *string
}

func newPublicUser(u database.User) *PublicUser {
	return &PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// Register 创建新账号。邮箱冲突时失败且不改变任何状态。
func (s *UserService) Register(ctx context.Context, name, email, password string) (*PublicUser, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrValidation)
	}
	if len(password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, MinPasswordLength)
	}

	var existing database.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("register lookup: %w", err)
	}

	hashed, err := s.hasher.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := database.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return newPublicUser(user), nil
}

// Login 校验凭证并签发访问令牌。
func (s *UserService) Login(ctx context.Context, email, password string) (*PublicUser, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	var user database.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", fmt.Errorf("%w: no account for email", ErrNotFound)
		}
		return nil, "", fmt.Errorf("login lookup: %w", err)
	}

	if !s.hasher.CheckPasswordHash(password, user.PasswordHash) {
		return nil, "", ErrAuth
	}

	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	return newPublicUser(user), token, nil
}

// GetByID 按标识查询用户。
func (s *UserService) GetByID(ctx context.Context, id uint) (*PublicUser, error) {
	var user database.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	return newPublicUser(user), nil
}

// Update 更新姓名/邮箱。先取记录再写入，将「不存在」与「值未变化」区分开。
func (s *UserService) Update(ctx context.Context, id uint, upd UserUpdate) (*PublicUser, error) {
	if upd.Name == nil && upd.Email == nil {
		return nil, fmt.Errorf("%w: no updatable fields provided", ErrValidation)
	}

	var user database.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("query user: %w", err)
	}

	updates := map[string]any{}
	if upd.Name != nil {
		if strings.TrimSpace(*upd.Name) == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrValidation)
		}
		updates["name"] = strings.TrimSpace(*upd.Name)
	}
	if upd.Email != nil {
		email := strings.TrimSpace(*upd.Email)
		if email == "" {
			return nil, fmt.Errorf("%w: email must not be empty", ErrValidation)
		}
		var existing database.User
		err := s.db.WithContext(ctx).Where("email = ? AND id <> ?", email, id).First(&existing).Error
		switch {
		case err == nil:
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, fmt.Errorf("update lookup: %w", err)
		}
		updates["email"] = email
	}

	if err := s.db.WithContext(ctx).Model(&user).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, fmt.Errorf("reload user: %w", err)
	}
	return newPublicUser(user), nil
}
