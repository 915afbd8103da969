package model

// OrderEvent 订单变更事件，经 Redis PubSub 广播
// 频道：orders:events（后台实时面板）与 order:payment:{order_number}（支付结果等待）
type OrderEvent struct {
	Type          string  `json:"type"`
	OrderID       int64   `json:"order_id"`
	OrderNumber   string  `json:"order_number"`
	OrderStatus   string  `json:"order_status,omitempty"`
	PaymentStatus string  `json:"payment_status,omitempty"`
	TotalAmount   float64 `json:"total_amount,omitempty"`
	Timestamp     int64   `json:"timestamp"`
}

// 事件类型常量
const (
	OrderEventCreated       = "order.created"
	OrderEventStatusChanged = "order.status_changed"
	OrderEventPaymentChange = "order.payment_changed"
)

// 频道命名
const ChannelOrderEvents = "orders:events"

// PaymentChannel 返回单个订单的支付结果频道
func PaymentChannel(orderNumber string) string {
	return "order:payment:" + orderNumber
}
