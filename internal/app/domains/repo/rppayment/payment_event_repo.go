package rppayment

import (
	"context"

	"kcstudio/storefront/common/entity"
	"kcstudio/storefront/internal/app/domains/entity/etpayment"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PaymentEventRepository webhook 事件留档
type PaymentEventRepository interface {
	// Save 写入事件，event_id 重复时忽略；返回是否为新事件
	Save(ctx context.Context, event *etpayment.Event) (bool, error)
	// Exists 事件是否已留档
	Exists(ctx context.Context, eventID string) (bool, error)
}

// PaymentEventRepositoryImpl 留档实现（MySQL）
type PaymentEventRepositoryImpl struct {
	db *gorm.DB
}

// NewPaymentEventRepository 创建留档仓储实例
func NewPaymentEventRepository(db *gorm.DB) PaymentEventRepository {
	return &PaymentEventRepositoryImpl{db: db}
}

// Save 写入事件
func (r *PaymentEventRepositoryImpl) Save(ctx context.Context, event *etpayment.Event) (bool, error) {
	payload := datatypes.JSON(event.Raw)
	if len(payload) == 0 {
		payload = datatypes.JSON("{}")
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entity.PaymentEvent{
			EventID:         event.ID,
			Type:            event.Type,
			PaymentIntentID: event.IntentID,
			Payload:         payload,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Exists 按 event_id 查询是否已留档
func (r *PaymentEventRepositoryImpl) Exists(ctx context.Context, eventID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.PaymentEvent{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
