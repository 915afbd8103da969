package request

// CreatePaymentIntentRequest 创建支付意图
type CreatePaymentIntentRequest struct {
	Amount        float64    `json:"amount" binding:"required" example:"5"`
	OrderID       FlexibleID `json:"orderId" example:"42"`
	CustomerEmail string     `json:"customerEmail" example:"ana@example.com"`
}

// ConfirmPaymentRequest 确认支付
type ConfirmPaymentRequest struct {
	PaymentIntentID string     `json:"paymentIntentId" binding:"required" example:"pi_3Nx..."`
	OrderID         FlexibleID `json:"orderId" binding:"required" example:"42"`
}

// RefundRequest 退款
type RefundRequest struct {
	PaymentIntentID string   `json:"paymentIntentId" binding:"required" example:"pi_3Nx..."`
	Amount          *float64 `json:"amount" binding:"omitempty,gt=0" example:"2.5"`
	Reason          string   `json:"reason" binding:"omitempty,oneof=duplicate fraudulent requested_by_customer" example:"requested_by_customer"`
}
