package request

// CreateOrderRequest 创建订单请求
type CreateOrderRequest struct {
	Customer      *Customer    `json:"customer" binding:"required"`
	Items         []*OrderItem `json:"items" binding:"required,min=1,dive,required"`
	TotalAmount   float64      `json:"totalAmount" binding:"gte=0" example:"5"`
	PaymentMethod string       `json:"paymentMethod" example:"pending"`
}

// Customer 客户信息
type Customer struct {
	Whatsapp   string `json:"whatsapp" binding:"required" example:"50312345678"`
	Name       string `json:"name" binding:"required" example:"Ana"`
	Email      string `json:"email" binding:"omitempty,email" example:"ana@example.com"`
	Address    string `json:"address" example:"Col. Escalon"`
	City       string `json:"city" example:"San Salvador"`
	PostalCode string `json:"postalCode" example:"01101"`
}

// OrderItem 购物车商品
type OrderItem struct {
	Shape    *Shape  `json:"shape" binding:"required"`
	Color    string  `json:"color" example:"#FFB6C1"`
	Quantity int     `json:"quantity" binding:"min=1" example:"2"`
	Total    float64 `json:"total" binding:"gte=0" example:"5"`
	// Image data URL 或 http(s) URL
	Image string `json:"image" binding:"required"`
}

// Shape 形状
type Shape struct {
	ID    string  `json:"id" binding:"required" example:"round"`
	Price float64 `json:"price" binding:"gte=0" example:"2.5"`
}
