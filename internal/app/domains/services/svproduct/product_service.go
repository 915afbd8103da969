package svproduct

import (
	"context"
	"fmt"

	"kcstudio/storefront/internal/app/domains/entity/etproduct"
	"kcstudio/storefront/internal/app/domains/modules/mdproduct"
	"kcstudio/storefront/internal/app/pkg/errorx"
)

// ProductService 图库服务
type ProductService struct {
	productModule *mdproduct.ProductModule
}

// NewProductService 创建图库服务实例
func NewProductService(productModule *mdproduct.ProductModule) *ProductService {
	return &ProductService{productModule: productModule}
}

// ListGallery 图库列表，最新的在前
func (s *ProductService) ListGallery(ctx context.Context) ([]*etproduct.Product, error) {
	products, err := s.productModule.ListGallery(ctx)
	if err != nil {
		return nil, fmt.Errorf("list gallery failed: %w", err)
	}
	return products, nil
}

// ListAll 全部上架作品
func (s *ProductService) ListAll(ctx context.Context) ([]*etproduct.Product, error) {
	products, err := s.productModule.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products failed: %w", err)
	}
	return products, nil
}

// GetProduct 单个作品，不存在或已下架返回 ErrProductNotFound
func (s *ProductService) GetProduct(ctx context.Context, id int64) (*etproduct.Product, error) {
	product, err := s.productModule.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product failed: %w", err)
	}
	if product == nil {
		return nil, errorx.ErrProductNotFound
	}
	return product, nil
}
