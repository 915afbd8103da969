package rpproduct

import (
	"context"

	"kcstudio/storefront/internal/app/domains/entity/etproduct"
)

// ProductRepository 图库仓储接口
type ProductRepository interface {
	// InsertIgnore 写入图库，image_url 重复时忽略；在独立保存点内执行，失败不影响外层事务
	InsertIgnore(ctx context.Context, product *etproduct.Product) error

	// ListActive 上架作品，按创建时间倒序
	ListActive(ctx context.Context, limit int) ([]*etproduct.Product, error)

	// GetActive 按ID查询上架作品，不存在返回 (nil, nil)
	GetActive(ctx context.Context, id int64) (*etproduct.Product, error)
}
