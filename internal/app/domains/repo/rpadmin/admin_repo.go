package rpadmin

import (
	"context"
	"time"

	"kcstudio/storefront/internal/app/domains/entity/etadmin"
)

// AdminRepository 管理员仓储接口
type AdminRepository interface {
	// GetActiveByUsername 查询启用状态的管理员，不存在返回 (nil, nil)
	GetActiveByUsername(ctx context.Context, username string) (*etadmin.Admin, error)

	// TouchLastLogin 记录登录时间
	TouchLastLogin(ctx context.Context, adminID int64, at time.Time) error

	// Create 新建管理员
	Create(ctx context.Context, admin *etadmin.Admin) error

	// List 全部管理员
	List(ctx context.Context) ([]*etadmin.Admin, error)
}
