package entity

import "time"

// Customer 客户实体，whatsapp 为业务唯一键
type Customer struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name       string    `gorm:"column:name;type:varchar(255);not null"`
	Email      string    `gorm:"column:email;type:varchar(255)"`
	Whatsapp   string    `gorm:"column:whatsapp;type:varchar(32);uniqueIndex:uk_whatsapp;not null"`
	Address    string    `gorm:"column:address;type:varchar(512)"`
	City       string    `gorm:"column:city;type:varchar(128)"`
	PostalCode string    `gorm:"column:postal_code;type:varchar(32)"`
	CreatedAt  time.Time `gorm:"column:created_at;not null"`
	UpdatedAt  time.Time `gorm:"column:updated_at;not null"`
}

// TableName 指定表名
func (Customer) TableName() string {
	return "customers"
}
