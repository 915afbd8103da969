package rpproduct

import (
	"context"
	"errors"

	"kcstudio/storefront/common/entity"
	"kcstudio/storefront/internal/app/domains/entity/etproduct"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductRepositoryImpl 图库仓储实现（MySQL）
type ProductRepositoryImpl struct {
	db *gorm.DB
}

// NewProductRepository 创建图库仓储实例，db 可以是事务句柄
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &ProductRepositoryImpl{db: db}
}

// InsertIgnore 在事务内为嵌套保存点，事务外为独立事务
func (r *ProductRepositoryImpl) InsertIgnore(ctx context.Context, product *etproduct.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		po := &entity.Product{
			ImageURL:  product.ImageURL,
			Shape:     product.Shape,
			BasePrice: product.BasePrice,
			IsActive:  true,
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(po).Error; err != nil {
			return err
		}
		product.ID = po.ID
		return nil
	})
}

// ListActive 查询上架作品
func (r *ProductRepositoryImpl) ListActive(ctx context.Context, limit int) ([]*etproduct.Product, error) {
	var pos []entity.Product
	q := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&pos).Error; err != nil {
		return nil, err
	}

	products := make([]*etproduct.Product, 0, len(pos))
	for i := range pos {
		products = append(products, toDomainModel(&pos[i]))
	}
	return products, nil
}

// GetActive 查询单个上架作品
func (r *ProductRepositoryImpl) GetActive(ctx context.Context, id int64) (*etproduct.Product, error) {
	var po entity.Product
	err := r.db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&po).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toDomainModel(&po), nil
}

func toDomainModel(po *entity.Product) *etproduct.Product {
	return &etproduct.Product{
		ID:        po.ID,
		ImageURL:  po.ImageURL,
		Shape:     po.Shape,
		BasePrice: po.BasePrice,
		IsActive:  po.IsActive,
		CreatedAt: po.CreatedAt,
	}
}
