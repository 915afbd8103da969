package mdadmin

import (
	"context"
	"time"

	"kcstudio/storefront/internal/app/domains/entity/etadmin"
	"kcstudio/storefront/internal/app/domains/repo/rpadmin"
	"kcstudio/storefront/internal/app/pkg/authx"
)

// AdminModule 管理员模块（账号 + 令牌）
type AdminModule struct {
	adminRepo rpadmin.AdminRepository
	tokens    *authx.TokenIssuer
}

// NewAdminModule 创建管理员模块
func NewAdminModule(adminRepo rpadmin.AdminRepository, tokens *authx.TokenIssuer) *AdminModule {
	return &AdminModule{
		adminRepo: adminRepo,
		tokens:    tokens,
	}
}

// FindActive 查询启用的管理员
func (m *AdminModule) FindActive(ctx context.Context, username string) (*etadmin.Admin, error) {
	return m.adminRepo.GetActiveByUsername(ctx, username)
}

// TouchLastLogin 记录登录时间
func (m *AdminModule) TouchLastLogin(ctx context.Context, adminID int64, at time.Time) error {
	return m.adminRepo.TouchLastLogin(ctx, adminID, at)
}

// IssueToken 签发令牌
func (m *AdminModule) IssueToken(admin *etadmin.Admin) (string, time.Time, error) {
	return m.tokens.Issue(admin.ID, admin.Username, admin.Email)
}

// ParseToken 校验令牌
func (m *AdminModule) ParseToken(token string) (*authx.Claims, error) {
	return m.tokens.Parse(token)
}

// CreateAdmin 新建管理员（密码已哈希）
func (m *AdminModule) CreateAdmin(ctx context.Context, admin *etadmin.Admin) error {
	return m.adminRepo.Create(ctx, admin)
}

// ListAdmins 全部管理员
func (m *AdminModule) ListAdmins(ctx context.Context) ([]*etadmin.Admin, error) {
	return m.adminRepo.List(ctx)
}
