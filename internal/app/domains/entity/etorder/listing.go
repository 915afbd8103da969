package etorder

import "time"

// Summary 后台订单列表行
type Summary struct {
	ID            int64
	OrderNumber   string
	TotalAmount   float64
	PaymentStatus PaymentStatus
	OrderStatus   OrderStatus
	CreatedAt     time.Time
	CustomerName  string
	Whatsapp      string
	Address       string
	City          string
	ItemsCount    int64
}

// ListFilter 列表过滤条件，Status 为空表示不过滤
type ListFilter struct {
	Status OrderStatus
	Offset int
	Limit  int // <=0 表示不分页
}

// Stats 后台统计
type Stats struct {
	TotalOrders      int64
	TotalCustomers   int64
	TotalProducts    int64
	TotalRevenue     float64
	PendingOrders    int64
	ProcessingOrders int64
	DeliveredOrders  int64
	TodayOrders      int64
}

// StatusChange 订单状态变更
type StatusChange struct {
	OrderID int64
	Status  OrderStatus
	Notes   *string
}

// PaymentChange 支付状态变更，空字段不更新
type PaymentChange struct {
	PaymentStatus PaymentStatus
	PaymentID     string
	PaymentMethod string
	OrderStatus   OrderStatus
}
