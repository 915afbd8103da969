package mdnotify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"kcstudio/storefront/common/model"
	"kcstudio/storefront/internal/app/domains/entity/etorder"
	"kcstudio/storefront/internal/app/pkg/logger"
)

// Subscription 事件订阅
type Subscription interface {
	Messages() <-chan string
	Close() error
}

// EventBus 事件广播（Redis Pub/Sub 或进程内实现）
type EventBus interface {
	Publish(ctx context.Context, channel string, message string) error
	Subscribe(ctx context.Context, channel string) (Subscription, error)
}

// JobQueue 任务队列（Lmstfy）
type JobQueue interface {
	Publish(ctx context.Context, queue string, data interface{}) (string, error)
}

// NotifyModule 通知模块
// 职责：
// 1. 订单事件广播（后台实时订单流、支付结果 Smart Wait）
// 2. 新订单通知任务投递（由 notifier 进程消费）
type NotifyModule struct {
	bus       EventBus
	queue     JobQueue
	queueName string
	logger    logger.Logger
}

// NewNotifyModule 创建通知模块，bus/queue 为 nil 时对应能力关闭
func NewNotifyModule(bus EventBus, queue JobQueue, queueName string, log logger.Logger) *NotifyModule {
	return &NotifyModule{
		bus:       bus,
		queue:     queue,
		queueName: queueName,
		logger:    log,
	}
}

// BusEnabled 是否配置了事件广播
func (m *NotifyModule) BusEnabled() bool {
	return m.bus != nil
}

// PublishOrderEvent 广播订单事件，支付变更同时发到订单专属频道
func (m *NotifyModule) PublishOrderEvent(ctx context.Context, eventType string, order *etorder.Order) error {
	if m.bus == nil || order == nil {
		return nil
	}

	event := model.OrderEvent{
		Type:          eventType,
		OrderID:       order.ID,
		OrderNumber:   order.OrderNumber,
		OrderStatus:   string(order.OrderStatus),
		PaymentStatus: string(order.PaymentStatus),
		TotalAmount:   order.TotalAmount,
		Timestamp:     time.Now().Unix(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order event failed: %w", err)
	}

	if err := m.bus.Publish(ctx, model.ChannelOrderEvents, string(payload)); err != nil {
		return fmt.Errorf("publish order event failed: %w", err)
	}
	if eventType == model.OrderEventPaymentChange && order.OrderNumber != "" {
		if err := m.bus.Publish(ctx, model.PaymentChannel(order.OrderNumber), string(payload)); err != nil {
			return fmt.Errorf("publish payment event failed: %w", err)
		}
	}
	return nil
}

// EnqueueOrderCreated 投递新订单通知任务
func (m *NotifyModule) EnqueueOrderCreated(ctx context.Context, order *etorder.Order) error {
	if m.queue == nil || order == nil {
		return nil
	}

	job := model.OrderNotifyJob{
		RequestID:   uuid.New().String(),
		ActionType:  model.ActionTypeOrderCreated,
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		ItemCount:   len(order.Items),
		TotalAmount: order.TotalAmount,
		CreatedAt:   order.CreatedAt.Unix(),
	}
	if c := order.Customer; c != nil {
		job.CustomerName = c.Name
		job.Whatsapp = c.Whatsapp
		job.City = c.City
	}

	jobID, err := m.queue.Publish(ctx, m.queueName, job)
	if err != nil {
		return err
	}
	m.logger.DebugContext(ctx, "order notify job enqueued", "job_id", jobID, "queue", m.queueName)
	return nil
}

// WaitPaymentChange 等待订单支付状态变化（Smart Wait）
// 先确认订阅再调用 recheck，避免漏掉订阅前已发生的变化；recheck 返回 true 表示无需再等
func (m *NotifyModule) WaitPaymentChange(ctx context.Context, orderNumber string, timeout time.Duration, recheck func(ctx context.Context) (bool, error)) error {
	if m.bus == nil || timeout <= 0 {
		return nil
	}

	sub, err := m.bus.Subscribe(ctx, model.PaymentChannel(orderNumber))
	if err != nil {
		return err
	}
	defer sub.Close()

	done, err := recheck(ctx)
	if err != nil || done {
		return err
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	select {
	case <-sub.Messages():
		return nil
	case <-timeoutCtx.Done():
		// 超时只代表没有变化
		return nil
	}
}

// SubscribeOrderEvents 订阅全量订单事件（后台实时订单流）
func (m *NotifyModule) SubscribeOrderEvents(ctx context.Context) (Subscription, error) {
	if m.bus == nil {
		return nil, fmt.Errorf("event bus not configured")
	}
	return m.bus.Subscribe(ctx, model.ChannelOrderEvents)
}
