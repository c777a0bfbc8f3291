package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher 使用 bcrypt 进行单向密码哈希，工作因子可配置。
type Hasher struct {
	cost int
}

// NewHasher 构造 Hasher；cost 超出 bcrypt 合法范围时回退到默认值。
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// HashPassword 使用 bcrypt 生成密码哈希。
func (h *Hasher) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(bytes), nil
}

// CheckPasswordHash 校验密码是否匹配哈希。
func (h *Hasher) CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
