package entity

import (
	"time"

	"gorm.io/datatypes"
)

// PaymentEvent 支付网关 webhook 事件留档
type PaymentEvent struct {
	ID              int64          `gorm:"column:id;primaryKey;autoIncrement"`
	EventID         string         `gorm:"column:event_id;type:varchar(128);not null;uniqueIndex:uk_event_id"`
	Type            string         `gorm:"column:type;type:varchar(64);not null"`
	PaymentIntentID string         `gorm:"column:payment_intent_id;type:varchar(128);index:idx_intent"`
	Payload         datatypes.JSON `gorm:"column:payload;type:json"`
	CreatedAt       time.Time      `gorm:"column:created_at;not null"`
}

// TableName 指定表名
func (PaymentEvent) TableName() string {
	return "payment_events"
}

// All 返回需要迁移的全部表
func All() []interface{} {
	return []interface{}{
		&Customer{},
		&Order{},
		&OrderItem{},
		&Product{},
		&Admin{},
		&PaymentEvent{},
	}
}
