package svpayment

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"kcstudio/storefront/common/model"
	"kcstudio/storefront/internal/app/domains/entity/etorder"
	"kcstudio/storefront/internal/app/domains/entity/etpayment"
	"kcstudio/storefront/internal/app/domains/modules/mdnotify"
	"kcstudio/storefront/internal/app/domains/modules/mdorder"
	"kcstudio/storefront/internal/app/domains/modules/mdpayment"
	"kcstudio/storefront/internal/app/pkg/errorx"
	"kcstudio/storefront/internal/app/pkg/logger"
	"kcstudio/storefront/internal/app/pkg/money"
)

// 网关支付成功后写入订单的支付方式
const paymentMethodStripe = "stripe"

// PaymentService 支付服务（网关透传 + 订单支付状态同步）
type PaymentService struct {
	paymentModule *mdpayment.PaymentModule
	orderModule   *mdorder.OrderModule
	notifyModule  *mdnotify.NotifyModule
	logger        logger.Logger
}

// NewPaymentService 创建支付服务实例
func NewPaymentService(
	paymentModule *mdpayment.PaymentModule,
	orderModule *mdorder.OrderModule,
	notifyModule *mdnotify.NotifyModule,
	log logger.Logger,
) *PaymentService {
	return &PaymentService{
		paymentModule: paymentModule,
		orderModule:   orderModule,
		notifyModule:  notifyModule,
		logger:        log,
	}
}

// CreateIntent 创建支付意图，金额低于 0.50 拒绝
func (s *PaymentService) CreateIntent(ctx context.Context, amount float64, orderID, customerEmail string) (*etpayment.Intent, error) {
	if money.BelowMinimum(amount) {
		return nil, errorx.ErrAmountTooSmall
	}

	intent, err := s.paymentModule.CreateIntent(ctx, money.ToCents(amount), orderID, customerEmail)
	if err != nil {
		return nil, fmt.Errorf("create payment intent failed: %w", err)
	}
	s.logger.InfoContext(ctx, "payment intent created",
		"payment_intent_id", intent.ID,
		"order_id", orderID,
		"amount_cents", intent.AmountCents,
	)
	return intent, nil
}

// ConfirmPayment 查询网关确认支付结果，成功则订单置为 paid/processing
func (s *PaymentService) ConfirmPayment(ctx context.Context, intentID string, orderID int64) (*etorder.Order, error) {
	intent, err := s.paymentModule.GetIntent(ctx, intentID)
	if err != nil {
		return nil, fmt.Errorf("retrieve payment intent failed: %w", err)
	}
	if intent.Status != etpayment.IntentStatusSucceeded {
		return nil, errorx.BadRequest("payment not completed", errorx.ErrorDetail{
			Path: "status",
			Info: intent.Status,
		})
	}

	return s.settle(ctx, orderID, intentID, etorder.PaymentChange{
		PaymentStatus: etorder.PaymentStatusPaid,
		PaymentID:     intentID,
		PaymentMethod: paymentMethodStripe,
		OrderStatus:   etorder.OrderStatusProcessing,
	})
}

// HandleWebhook 处理已验签的网关事件
// 事件在订单更新成功后才留档，更新失败时网关重投仍会被处理
// 重复事件直接忽略；找不到订单只记日志，避免网关无限重试
func (s *PaymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.paymentModule.VerifyWebhook(payload, signature)
	if err != nil {
		s.logger.WarnContext(ctx, "webhook signature rejected", "error", err)
		return err
	}

	seen, err := s.paymentModule.EventSeen(ctx, event.ID)
	if err != nil {
		return fmt.Errorf("check payment event failed: %w", err)
	}
	if seen {
		s.logger.InfoContext(ctx, "duplicate webhook event ignored", "event_id", event.ID, "type", event.Type)
		return nil
	}

	if err := s.applyEvent(ctx, event); err != nil {
		return err
	}

	if _, err := s.paymentModule.RecordEvent(ctx, event); err != nil {
		return fmt.Errorf("record payment event failed: %w", err)
	}
	return nil
}

func (s *PaymentService) applyEvent(ctx context.Context, event *etpayment.Event) error {
	var change etorder.PaymentChange
	switch event.Type {
	case etpayment.EventIntentSucceeded:
		change = etorder.PaymentChange{
			PaymentStatus: etorder.PaymentStatusPaid,
			PaymentID:     event.IntentID,
			OrderStatus:   etorder.OrderStatusProcessing,
		}
	case etpayment.EventIntentFailed:
		change = etorder.PaymentChange{
			PaymentStatus: etorder.PaymentStatusFailed,
			PaymentID:     event.IntentID,
		}
	default:
		s.logger.InfoContext(ctx, "unhandled webhook event", "event_id", event.ID, "type", event.Type)
		return nil
	}

	orderID, _ := strconv.ParseInt(event.OrderID, 10, 64)
	if _, err := s.settle(ctx, orderID, event.IntentID, change); err != nil {
		if errors.Is(err, errorx.ErrOrderNotFound) {
			s.logger.WarnContext(ctx, "webhook event has no matching order",
				"event_id", event.ID,
				"payment_intent_id", event.IntentID,
				"order_id", event.OrderID,
			)
			return nil
		}
		return err
	}
	return nil
}

// GetPayment 查询支付详情
func (s *PaymentService) GetPayment(ctx context.Context, intentID string) (*etpayment.Intent, error) {
	intent, err := s.paymentModule.GetIntent(ctx, intentID)
	if err != nil {
		return nil, fmt.Errorf("retrieve payment intent failed: %w", err)
	}
	return intent, nil
}

// Refund 发起退款，amount 为 nil 表示全额；关联订单置为 refunded
func (s *PaymentService) Refund(ctx context.Context, intentID string, amount *float64, reason string) (*etpayment.Refund, error) {
	params := etpayment.RefundParams{
		PaymentIntentID: intentID,
		Reason:          reason,
	}
	if params.Reason == "" {
		params.Reason = etpayment.DefaultRefundReason
	}
	if amount != nil {
		// 0 分在网关侧表示全额退款，部分退款至少 1 分
		cents := money.ToCents(*amount)
		if cents < 1 {
			return nil, errorx.BadRequest("refund amount too small", errorx.ErrorDetail{
				Path: "amount",
				Info: "must be at least 0.01",
			})
		}
		params.AmountCents = cents
	}

	refund, err := s.paymentModule.Refund(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("create refund failed: %w", err)
	}
	s.logger.InfoContext(ctx, "refund created",
		"payment_intent_id", intentID,
		"refund_id", refund.ID,
		"amount_cents", refund.AmountCents,
	)

	if _, err := s.settle(ctx, 0, intentID, etorder.PaymentChange{PaymentStatus: etorder.PaymentStatusRefunded}); err != nil {
		if !errors.Is(err, errorx.ErrOrderNotFound) {
			return nil, err
		}
		s.logger.WarnContext(ctx, "refund has no matching order", "payment_intent_id", intentID)
	}
	return refund, nil
}

// settle 定位订单（优先 orderID，其次 payment_id）并写入支付变更，随后广播
func (s *PaymentService) settle(ctx context.Context, orderID int64, intentID string, change etorder.PaymentChange) (*etorder.Order, error) {
	order, err := s.locate(ctx, orderID, intentID)
	if err != nil {
		return nil, err
	}

	found, err := s.orderModule.UpdatePayment(ctx, order.ID, change)
	if err != nil {
		return nil, fmt.Errorf("update order payment failed: %w", err)
	}
	if !found {
		return nil, errorx.ErrOrderNotFound
	}

	updated, err := s.orderModule.GetOrder(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("reload order failed: %w", err)
	}
	if updated == nil {
		return nil, errorx.ErrOrderNotFound
	}

	ctx = logger.WithOrderNumber(ctx, updated.OrderNumber)
	s.logger.InfoContext(ctx, "order payment updated",
		"order_id", updated.ID,
		"payment_status", updated.PaymentStatus,
		"order_status", updated.OrderStatus,
	)
	if err := s.notifyModule.PublishOrderEvent(ctx, model.OrderEventPaymentChange, updated); err != nil {
		s.logger.WarnContext(ctx, "publish payment event failed", "error", err)
	}
	return updated, nil
}

func (s *PaymentService) locate(ctx context.Context, orderID int64, intentID string) (*etorder.Order, error) {
	if orderID > 0 {
		order, err := s.orderModule.GetOrder(ctx, orderID)
		if err != nil {
			return nil, fmt.Errorf("get order failed: %w", err)
		}
		if order != nil {
			return order, nil
		}
	}
	if intentID != "" {
		order, err := s.orderModule.GetOrderByPaymentID(ctx, intentID)
		if err != nil {
			return nil, fmt.Errorf("get order by payment id failed: %w", err)
		}
		if order != nil {
			return order, nil
		}
	}
	return nil, errorx.ErrOrderNotFound
}
