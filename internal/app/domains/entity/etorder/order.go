package etorder

import (
	"errors"
	"strings"
	"time"
)

// 错误定义
var (
	ErrInvalidWhatsapp = errors.New("customer whatsapp cannot be empty")
	ErrInvalidName     = errors.New("customer name cannot be empty")
	ErrEmptyItems      = errors.New("order must contain at least one item")
	ErrInvalidQuantity = errors.New("item quantity must be at least 1")
	ErrInvalidShape    = errors.New("item shape cannot be empty")
	ErrMissingImage    = errors.New("item image cannot be empty")
	ErrInvalidAmount   = errors.New("amount cannot be negative")
)

// Order 订单聚合根（领域对象）
type Order struct {
	ID            int64         // 订单ID（自增）
	OrderNumber   string        // 对外订单号 ORD-...
	Customer      *Customer     // 下单客户
	Items         []*Item       // 订单明细
	TotalAmount   float64       // 订单总额
	PaymentMethod string        // 支付方式
	PaymentID     string        // 支付网关 intent ID
	PaymentStatus PaymentStatus // 支付状态
	OrderStatus   OrderStatus   // 订单状态
	Notes         string        // 后台备注
	CreatedAt     time.Time     // 创建时间
	UpdatedAt     time.Time     // 更新时间
}

// Customer 客户，以 whatsapp 唯一标识
type Customer struct {
	ID         int64
	Whatsapp   string
	Name       string
	Email      string
	Address    string
	City       string
	PostalCode string
}

// Item 订单明细（值对象），创建后不可变
type Item struct {
	ID              int64
	Shape           string
	UnitPrice       float64
	BackgroundColor string
	Quantity        int
	Subtotal        float64 // 由调用方计算，不做校验
	// ImageSource 客户端提交的图片（data URL 或远程 URL），仅在创建时使用
	ImageSource string
	// ProductImage 落库的图片地址，可能为空
	ProductImage string
}

// OrderStatus 订单状态
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusReady      OrderStatus = "ready"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// OrderStatuses 全部订单状态
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusReady,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// IsValid 是否为已知订单状态
func (s OrderStatus) IsValid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// PaymentStatus 支付状态
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// NewOrder 创建订单（工厂方法），订单号和ID在持久化时分配
func NewOrder(customer *Customer, items []*Item, totalAmount float64, paymentMethod string) (*Order, error) {
	if customer == nil || strings.TrimSpace(customer.Whatsapp) == "" {
		return nil, ErrInvalidWhatsapp
	}
	if strings.TrimSpace(customer.Name) == "" {
		return nil, ErrInvalidName
	}
	if len(items) == 0 {
		return nil, ErrEmptyItems
	}
	for _, it := range items {
		if it.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		if it.Shape == "" {
			return nil, ErrInvalidShape
		}
		if it.ImageSource == "" {
			return nil, ErrMissingImage
		}
	}
	if totalAmount < 0 {
		return nil, ErrInvalidAmount
	}

	now := time.Now()
	return &Order{
		Customer:      customer,
		Items:         items,
		TotalAmount:   totalAmount,
		PaymentMethod: paymentMethod,
		PaymentStatus: PaymentStatusPending,
		OrderStatus:   OrderStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// IsPaymentSettled 支付状态已脱离 pending
func (o *Order) IsPaymentSettled() bool {
	return o.PaymentStatus != PaymentStatusPending
}
