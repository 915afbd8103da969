package response

// PaymentIntentResponse 创建支付意图响应
type PaymentIntentResponse struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
}

// ConfirmPaymentResponse 确认支付响应
type ConfirmPaymentResponse struct {
	PaymentStatus string `json:"paymentStatus"`
	OrderStatus   string `json:"orderStatus"`
}

// PaymentDetailResponse 支付详情
type PaymentDetailResponse struct {
	ID           string  `json:"id"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
	Status       string  `json:"status"`
	Created      int64   `json:"created"`
	ReceiptEmail string  `json:"receipt_email"`
}

// RefundResponse 退款响应
type RefundResponse struct {
	RefundID string  `json:"refundId"`
	Status   string  `json:"status"`
	Amount   float64 `json:"amount"`
}

// WebhookAck webhook 回执
type WebhookAck struct {
	Received bool `json:"received"`
}
