package svnotify

import (
	"context"
	"fmt"
	"strings"

	"kcstudio/storefront/common/model"
	"kcstudio/storefront/internal/app/pkg/logger"
	"kcstudio/storefront/internal/app/pkg/money"
)

// Sender 通知发送通道（WhatsApp 网关等）
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// Message 待发送的通知
type Message struct {
	OrderNumber string `json:"order_number"`
	Whatsapp    string `json:"whatsapp"`
	Text        string `json:"text"`
}

// NotifyService 新订单通知服务
// 职责：
// 1. 校验 notifier 从队列取到的任务
// 2. 渲染通知文本并交给 Sender
type NotifyService struct {
	sender Sender
	logger logger.Logger
}

// NewNotifyService 创建通知服务，sender 为 nil 时只记日志
func NewNotifyService(sender Sender, log logger.Logger) *NotifyService {
	return &NotifyService{
		sender: sender,
		logger: log,
	}
}

// HandleJob 处理一条新订单通知
// 返回 error 表示需要重试（不 ACK，等待 TTR 重新投递）
func (s *NotifyService) HandleJob(ctx context.Context, job *model.OrderNotifyJob) error {
	ctx = logger.WithRequestID(ctx, job.RequestID)
	ctx = logger.WithOrderNumber(ctx, job.OrderNumber)

	msg := &Message{
		OrderNumber: job.OrderNumber,
		Whatsapp:    job.Whatsapp,
		Text:        FormatOrderCreated(job),
	}

	if s.sender == nil {
		s.logger.InfoContext(ctx, "order notification (no sender configured)", "text", msg.Text)
		return nil
	}

	if err := s.sender.Send(ctx, msg); err != nil {
		s.logger.ErrorContext(ctx, "send order notification failed", "error", err)
		return fmt.Errorf("send notification failed: %w", err)
	}

	s.logger.InfoContext(ctx, "order notification sent", "order_id", job.OrderID)
	return nil
}

// Validate 校验任务必填字段，失败的任务直接丢弃
func Validate(job *model.OrderNotifyJob) error {
	if job.ActionType != model.ActionTypeOrderCreated {
		return fmt.Errorf("unsupported action_type %q", job.ActionType)
	}
	if job.OrderNumber == "" {
		return fmt.Errorf("order_number is required")
	}
	return nil
}

// FormatOrderCreated 渲染新订单通知文本
func FormatOrderCreated(job *model.OrderNotifyJob) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Nuevo pedido %s\n", job.OrderNumber)
	fmt.Fprintf(&b, "Cliente: %s\n", job.CustomerName)
	fmt.Fprintf(&b, "WhatsApp: %s\n", job.Whatsapp)
	if job.City != "" {
		fmt.Fprintf(&b, "Ciudad: %s\n", job.City)
	}
	fmt.Fprintf(&b, "Artículos: %d\n", job.ItemCount)
	fmt.Fprintf(&b, "Total: $%.2f", money.Round2(job.TotalAmount))
	return b.String()
}
