package etadmin

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmptyPassword 密码为空
var ErrEmptyPassword = errors.New("password cannot be empty")

// Admin 后台管理员
type Admin struct {
	ID           int64
	Username     string
	PasswordHash string
	Email        string
	FullName     string
	IsActive     bool
	LastLogin    *time.Time
	CreatedAt    time.Time
}

// CheckPassword 校验明文密码
func (a *Admin) CheckPassword(plain string) bool {
	if a.PasswordHash == "" || plain == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(plain)) == nil
}

// HashPassword 生成 bcrypt 哈希
func HashPassword(plain string) (string, error) {
	if plain == "" {
		return "", ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password failed: %w", err)
	}
	return string(hash), nil
}
