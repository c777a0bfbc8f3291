package main

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"resumade/internal/auth"
	"resumade/internal/config"
	"resumade/internal/database"
)

// 管理工具：绕过 HTTP 接口直接创建账号（例如内部演示环境初始化）。
// 初始密码随机生成并打印一次，由使用者自行保存。
func main() {
	var (
		name  = flag.String("name", "", "显示名称（必填）")
		email = flag.String("email", "", "登录邮箱（必填）")
	)
	flag.Parse()

	n := strings.TrimSpace(*name)
	e := strings.TrimSpace(*email)
	if n == "" || e == "" {
		log.Fatal("missing required flags: --name and --email")
	}

	cfg := config.MustLoad()

	db, err := database.InitDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	if err := db.AutoMigrate(&database.User{}, &database.Resume{}); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}

	var existing database.User
	switch err := db.Where("email = ?", e).First(&existing).Error; {
	case err == nil:
		log.Fatalf("user with email %q already exists (id=%d)", e, existing.ID)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		log.Fatalf("query user: %v", err)
	}

	password, err := generatePassword()
	if err != nil {
		log.Fatalf("generate password: %v", err)
	}

	hasher := auth.NewHasher(cfg.Auth.BcryptCost)
	hashed, err := hasher.HashPassword(password)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	user := database.User{Name: n, Email: e, PasswordHash: hashed}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("create user: %v", err)
	}

	fmt.Printf("created user id=%d email=%s\n", user.ID, user.Email)
	fmt.Printf("initial password: %s\n", password)
}

func generatePassword() (string, error) {
	buf := make([]byte, 18)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
