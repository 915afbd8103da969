package rporder

import (
	"context"

	"kcstudio/storefront/internal/app/domains/entity/etorder"
)

// OrderRepository 订单仓储接口
// 查询不到时返回 (nil, nil)，更新不到时返回 (false, nil)
type OrderRepository interface {
	// UpsertCustomer 按 whatsapp 查找客户，存在则更新联系方式，否则新建；返回客户ID
	UpsertCustomer(ctx context.Context, customer *etorder.Customer) (int64, error)

	// Create 写入订单行，回填 order.ID
	Create(ctx context.Context, order *etorder.Order) error

	// CreateItem 写入订单明细，回填 item.ID
	CreateItem(ctx context.Context, orderID int64, item *etorder.Item) error

	// GetByNumber 按订单号查询，包含客户信息和明细
	GetByNumber(ctx context.Context, orderNumber string) (*etorder.Order, error)

	// GetByID 按ID查询订单（不含明细）
	GetByID(ctx context.Context, orderID int64) (*etorder.Order, error)

	// GetByPaymentID 按支付网关 intent ID 查询订单（不含明细）
	GetByPaymentID(ctx context.Context, paymentID string) (*etorder.Order, error)

	// List 后台订单列表，按创建时间倒序
	List(ctx context.Context, filter etorder.ListFilter) ([]*etorder.Summary, int64, error)

	// UpdateStatus 覆盖订单状态和备注
	UpdateStatus(ctx context.Context, change etorder.StatusChange) (bool, error)

	// UpdatePayment 更新支付相关字段
	UpdatePayment(ctx context.Context, orderID int64, change etorder.PaymentChange) (bool, error)

	// Stats 后台统计
	Stats(ctx context.Context) (*etorder.Stats, error)
}
