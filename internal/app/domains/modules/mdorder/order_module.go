package mdorder

import (
	"context"

	"kcstudio/storefront/internal/app/domains/entity/etorder"
	"kcstudio/storefront/internal/app/domains/repo/rporder"
	"kcstudio/storefront/internal/app/domains/repo/rptx"
	"kcstudio/storefront/internal/app/pkg/idgen"
)

// OrderModule 订单模块（业务编排层）
type OrderModule struct {
	tx        rptx.Transactor
	orderRepo rporder.OrderRepository
	numbers   *idgen.OrderNumberGenerator
}

// NewOrderModule 创建订单模块
func NewOrderModule(
	tx rptx.Transactor,
	orderRepo rporder.OrderRepository,
	numbers *idgen.OrderNumberGenerator,
) *OrderModule {
	return &OrderModule{
		tx:        tx,
		orderRepo: orderRepo,
		numbers:   numbers,
	}
}

// InTx 在单个事务中执行下单步骤
func (m *OrderModule) InTx(ctx context.Context, fn func(ctx context.Context, repos rptx.Repos) error) error {
	return m.tx.InTx(ctx, fn)
}

// NextOrderNumber 分配订单号
func (m *OrderModule) NextOrderNumber() string {
	return m.numbers.Next()
}

// GetOrderByNumber 查询订单详情
func (m *OrderModule) GetOrderByNumber(ctx context.Context, orderNumber string) (*etorder.Order, error) {
	return m.orderRepo.GetByNumber(ctx, orderNumber)
}

// GetOrder 按ID查询
func (m *OrderModule) GetOrder(ctx context.Context, orderID int64) (*etorder.Order, error) {
	return m.orderRepo.GetByID(ctx, orderID)
}

// GetOrderByPaymentID 按支付ID查询
func (m *OrderModule) GetOrderByPaymentID(ctx context.Context, paymentID string) (*etorder.Order, error) {
	return m.orderRepo.GetByPaymentID(ctx, paymentID)
}

// ListOrders 查询订单列表
func (m *OrderModule) ListOrders(ctx context.Context, filter etorder.ListFilter) ([]*etorder.Summary, int64, error) {
	return m.orderRepo.List(ctx, filter)
}

// UpdateStatus 更新订单状态
func (m *OrderModule) UpdateStatus(ctx context.Context, change etorder.StatusChange) (bool, error) {
	return m.orderRepo.UpdateStatus(ctx, change)
}

// UpdatePayment 更新支付状态
func (m *OrderModule) UpdatePayment(ctx context.Context, orderID int64, change etorder.PaymentChange) (bool, error) {
	return m.orderRepo.UpdatePayment(ctx, orderID, change)
}

// Stats 后台统计
func (m *OrderModule) Stats(ctx context.Context) (*etorder.Stats, error) {
	return m.orderRepo.Stats(ctx)
}
