package response

import "time"

// CreateOrderResponse 创建订单响应
type CreateOrderResponse struct {
	OrderNumber string `json:"orderNumber" example:"ORD-1718000000123-K3J9X2Q7M"`
	OrderID     int64  `json:"orderId" example:"42"`
}

// OrderResponse 订单详情（DTO），包含客户联系方式
type OrderResponse struct {
	ID            int64                `json:"id"`
	OrderNumber   string               `json:"order_number"`
	TotalAmount   float64              `json:"total_amount"`
	PaymentMethod string               `json:"payment_method"`
	PaymentID     string               `json:"payment_id,omitempty"`
	PaymentStatus string               `json:"payment_status"`
	OrderStatus   string               `json:"order_status"`
	Notes         string               `json:"notes,omitempty"`
	CustomerName  string               `json:"customer_name"`
	Email         string               `json:"email"`
	Whatsapp      string               `json:"whatsapp"`
	Address       string               `json:"address"`
	City          string               `json:"city"`
	PostalCode    string               `json:"postal_code"`
	Items         []*OrderItemResponse `json:"items"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// OrderItemResponse 订单明细（DTO）
type OrderItemResponse struct {
	ID              int64   `json:"id"`
	ProductImage    string  `json:"product_image"`
	Shape           string  `json:"shape"`
	BackgroundColor string  `json:"background_color"`
	Quantity        int     `json:"quantity"`
	UnitPrice       float64 `json:"unit_price"`
	Subtotal        float64 `json:"subtotal"`
}
