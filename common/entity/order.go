package entity

import "time"

// Order 订单实体
type Order struct {
	ID            int64   `gorm:"column:id;primaryKey;autoIncrement"`
	CustomerID    int64   `gorm:"column:customer_id;not null;index:idx_customer"`
	OrderNumber   string  `gorm:"column:order_number;type:varchar(64);not null;uniqueIndex:uk_order_number"`
	TotalAmount   float64 `gorm:"column:total_amount;type:decimal(10,2);not null"`
	PaymentMethod string  `gorm:"column:payment_method;type:varchar(32)"`
	PaymentID     string  `gorm:"column:payment_id;type:varchar(128);index:idx_payment_id"`

	// 状态
	PaymentStatus string  `gorm:"column:payment_status;type:varchar(16);not null;default:'pending'"`
	OrderStatus   string  `gorm:"column:order_status;type:varchar(16);not null;default:'pending';index:idx_status_created"`
	Notes         *string `gorm:"column:notes;type:text"`

	CreatedAt time.Time `gorm:"column:created_at;not null;index:idx_status_created"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// OrderItem 订单明细，创建后不再修改
type OrderItem struct {
	ID              int64     `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID         int64     `gorm:"column:order_id;not null;index:idx_order"`
	ProductImage    string    `gorm:"column:product_image;type:text"`
	Shape           string    `gorm:"column:shape;type:varchar(32);not null"`
	BackgroundColor string    `gorm:"column:background_color;type:varchar(16)"`
	Quantity        int       `gorm:"column:quantity;not null"`
	UnitPrice       float64   `gorm:"column:unit_price;type:decimal(10,2);not null"`
	Subtotal        float64   `gorm:"column:subtotal;type:decimal(10,2);not null"`
	CreatedAt       time.Time `gorm:"column:created_at;not null"`
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}

// 订单状态常量
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusReady      = "ready"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// 支付状态常量
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)
