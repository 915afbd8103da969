package etpayment

import "encoding/json"

// Intent 支付网关 PaymentIntent 快照
type Intent struct {
	ID            string
	ClientSecret  string
	AmountCents   int64
	Currency      string
	Status        string
	Created       int64
	ReceiptEmail  string
	PaymentMethod string
	Metadata      map[string]string
}

// 网关 intent 状态
const (
	IntentStatusSucceeded = "succeeded"
)

// IntentParams 创建 intent 参数
type IntentParams struct {
	AmountCents   int64
	Currency      string
	OrderID       string
	CustomerEmail string
}

// Refund 退款结果
type Refund struct {
	ID          string
	Status      string
	AmountCents int64
}

// RefundParams 退款参数，AmountCents 为 0 表示全额
type RefundParams struct {
	PaymentIntentID string
	AmountCents     int64
	Reason          string
}

// 默认退款原因
const DefaultRefundReason = "requested_by_customer"

// Webhook 事件类型
const (
	EventIntentSucceeded = "payment_intent.succeeded"
	EventIntentFailed    = "payment_intent.payment_failed"
)

// Event 已验签的 webhook 事件
type Event struct {
	ID       string
	Type     string
	IntentID string
	// OrderID 取自 intent metadata.orderId
	OrderID string
	Raw     json.RawMessage
}
