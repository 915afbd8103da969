package response

import "time"

// LoginResponse 登录响应
type LoginResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	Admin     AdminResponse `json:"admin"`
}

// AdminResponse 管理员信息，不含密码
type AdminResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// StatsResponse 后台统计
type StatsResponse struct {
	TotalOrders      int64   `json:"total_orders"`
	TotalCustomers   int64   `json:"total_customers"`
	TotalProducts    int64   `json:"total_products"`
	TotalRevenue     float64 `json:"total_revenue"`
	PendingOrders    int64   `json:"pending_orders"`
	ProcessingOrders int64   `json:"processing_orders"`
	DeliveredOrders  int64   `json:"delivered_orders"`
	TodayOrders      int64   `json:"today_orders"`
}

// OrderListResponse 后台订单列表
type OrderListResponse struct {
	Orders     []*OrderSummaryResponse `json:"orders"`
	Pagination PaginationResponse      `json:"pagination"`
}

// OrderSummaryResponse 订单列表行
type OrderSummaryResponse struct {
	ID            int64     `json:"id"`
	OrderNumber   string    `json:"order_number"`
	Total         float64   `json:"total"`
	PaymentStatus string    `json:"payment_status"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	CustomerName  string    `json:"customer_name"`
	Whatsapp      string    `json:"whatsapp"`
	Address       string    `json:"address"`
	City          string    `json:"city"`
	ItemsCount    int64     `json:"items_count"`
}

// PaginationResponse 分页信息
type PaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}
