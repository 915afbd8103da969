package model

// OrderNotifyJob 新订单通知任务（标准化）
// 用于 apiserver → notifier 的 lmstfy 消息传递
type OrderNotifyJob struct {
	RequestID    string  `json:"request_id"`    // 下单请求 ID（链路追踪）
	ActionType   string  `json:"action_type"`   // 固定为 order_created
	OrderID      int64   `json:"order_id"`      // 订单 ID
	OrderNumber  string  `json:"order_number"`  // 订单号
	CustomerName string  `json:"customer_name"` // 客户姓名
	Whatsapp     string  `json:"whatsapp"`      // 客户 WhatsApp
	City         string  `json:"city"`
	ItemCount    int     `json:"item_count"`
	TotalAmount  float64 `json:"total_amount"`
	CreatedAt    int64   `json:"created_at"` // Unix timestamp
}

// ActionTypeOrderCreated 新订单通知
const ActionTypeOrderCreated = "order_created"
