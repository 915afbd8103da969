package mdpayment

import (
	"context"
	"fmt"

	"kcstudio/storefront/internal/app/domains/entity/etpayment"
	"kcstudio/storefront/internal/app/domains/repo/rppayment"
	"kcstudio/storefront/internal/app/pkg/errorx"
)

// Gateway 支付网关
type Gateway interface {
	CreateIntent(ctx context.Context, p etpayment.IntentParams) (*etpayment.Intent, error)
	GetIntent(ctx context.Context, id string) (*etpayment.Intent, error)
	Refund(ctx context.Context, p etpayment.RefundParams) (*etpayment.Refund, error)
	ParseWebhook(payload []byte, signature string) (*etpayment.Event, error)
}

// PaymentModule 支付模块（网关调用 + 事件留档）
type PaymentModule struct {
	gateway   Gateway
	eventRepo rppayment.PaymentEventRepository
	currency  string
}

// NewPaymentModule 创建支付模块，gateway 为 nil 时所有网关操作返回 ErrPaymentNotEnabled
func NewPaymentModule(gateway Gateway, eventRepo rppayment.PaymentEventRepository, currency string) *PaymentModule {
	if currency == "" {
		currency = "usd"
	}
	return &PaymentModule{
		gateway:   gateway,
		eventRepo: eventRepo,
		currency:  currency,
	}
}

// CreateIntent 按模块币种创建 intent
func (m *PaymentModule) CreateIntent(ctx context.Context, amountCents int64, orderID, email string) (*etpayment.Intent, error) {
	if m.gateway == nil {
		return nil, errorx.ErrPaymentNotEnabled
	}
	return m.gateway.CreateIntent(ctx, etpayment.IntentParams{
		AmountCents:   amountCents,
		Currency:      m.currency,
		OrderID:       orderID,
		CustomerEmail: email,
	})
}

// GetIntent 查询 intent
func (m *PaymentModule) GetIntent(ctx context.Context, id string) (*etpayment.Intent, error) {
	if m.gateway == nil {
		return nil, errorx.ErrPaymentNotEnabled
	}
	return m.gateway.GetIntent(ctx, id)
}

// Refund 退款
func (m *PaymentModule) Refund(ctx context.Context, p etpayment.RefundParams) (*etpayment.Refund, error) {
	if m.gateway == nil {
		return nil, errorx.ErrPaymentNotEnabled
	}
	return m.gateway.Refund(ctx, p)
}

// VerifyWebhook 验签失败统一返回 ErrInvalidSignature
func (m *PaymentModule) VerifyWebhook(payload []byte, signature string) (*etpayment.Event, error) {
	if m.gateway == nil {
		return nil, errorx.ErrPaymentNotEnabled
	}
	ev, err := m.gateway.ParseWebhook(payload, signature)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errorx.ErrInvalidSignature, err)
	}
	return ev, nil
}

// EventSeen 事件是否已处理过
func (m *PaymentModule) EventSeen(ctx context.Context, eventID string) (bool, error) {
	return m.eventRepo.Exists(ctx, eventID)
}

// RecordEvent 留档，返回是否首次收到
func (m *PaymentModule) RecordEvent(ctx context.Context, ev *etpayment.Event) (bool, error) {
	return m.eventRepo.Save(ctx, ev)
}
