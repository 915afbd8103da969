package request

// LoginRequest 管理员登录
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required" example:"admin123"`
}

// ListOrdersQuery 后台订单列表查询参数
type ListOrdersQuery struct {
	Status string `form:"status" example:"pending"`
	Page   int    `form:"page" example:"1"`
	Limit  int    `form:"limit" example:"20"`
}

// UpdateOrderStatusRequest 更新订单状态
type UpdateOrderStatusRequest struct {
	Status string  `json:"status" binding:"required" example:"processing"`
	Notes  *string `json:"notes" example:"printing today"`
}

// MarkPaidRequest 标记已支付
type MarkPaidRequest struct {
	PaymentID string `json:"paymentId" example:"pi_3Nx..."`
}
