package entity

import "time"

// Product 作品墙记录（下单图片的冗余快照）
type Product struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	ImageURL  string    `gorm:"column:image_url;type:varchar(512);not null;uniqueIndex:uk_image_url"`
	Shape     string    `gorm:"column:shape;type:varchar(32);not null"`
	BasePrice float64   `gorm:"column:base_price;type:decimal(10,2);not null"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;not null;index:idx_created_at"`
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
