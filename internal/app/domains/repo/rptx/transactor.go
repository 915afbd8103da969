package rptx

import (
	"context"

	"kcstudio/storefront/internal/app/domains/repo/rporder"
	"kcstudio/storefront/internal/app/domains/repo/rpproduct"

	"gorm.io/gorm"
)

// Repos 绑定在同一事务上的仓储
type Repos struct {
	Orders   rporder.OrderRepository
	Products rpproduct.ProductRepository
}

// Transactor 事务执行器，fn 返回错误时整体回滚
type Transactor interface {
	InTx(ctx context.Context, fn func(ctx context.Context, repos Repos) error) error
}

// GormTransactor 基于 gorm 的事务实现
type GormTransactor struct {
	db *gorm.DB
}

// NewGormTransactor 创建事务执行器
func NewGormTransactor(db *gorm.DB) *GormTransactor {
	return &GormTransactor{db: db}
}

// InTx 开启事务执行 fn
func (t *GormTransactor) InTx(ctx context.Context, fn func(ctx context.Context, repos Repos) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, Repos{
			Orders:   rporder.NewOrderRepository(tx),
			Products: rpproduct.NewProductRepository(tx),
		})
	})
}
