package mdproduct

import (
	"context"

	"kcstudio/storefront/internal/app/domains/entity/etproduct"
	"kcstudio/storefront/internal/app/domains/repo/rpproduct"
)

// GalleryLimit 图库一次最多返回的作品数
const GalleryLimit = 50

// ProductModule 图库模块
type ProductModule struct {
	productRepo rpproduct.ProductRepository
}

// NewProductModule 创建图库模块
func NewProductModule(productRepo rpproduct.ProductRepository) *ProductModule {
	return &ProductModule{productRepo: productRepo}
}

// ListGallery 最新上架作品
func (m *ProductModule) ListGallery(ctx context.Context) ([]*etproduct.Product, error) {
	return m.productRepo.ListActive(ctx, GalleryLimit)
}

// ListAll 全部上架作品（运维工具使用）
func (m *ProductModule) ListAll(ctx context.Context) ([]*etproduct.Product, error) {
	return m.productRepo.ListActive(ctx, 0)
}

// GetProduct 单个上架作品，不存在返回 (nil, nil)
func (m *ProductModule) GetProduct(ctx context.Context, id int64) (*etproduct.Product, error) {
	return m.productRepo.GetActive(ctx, id)
}
