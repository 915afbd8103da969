package entity

import "time"

// Admin 后台管理员
type Admin struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement"`
	Username  string     `gorm:"column:username;type:varchar(64);uniqueIndex:uk_username;not null"`
	Password  string     `gorm:"column:password;type:varchar(255);not null"`
	Email     string     `gorm:"column:email;type:varchar(255)"`
	FullName  string     `gorm:"column:full_name;type:varchar(255)"`
	IsActive  bool       `gorm:"column:is_active;not null;default:true"`
	LastLogin *time.Time `gorm:"column:last_login"`
	CreatedAt time.Time  `gorm:"column:created_at;not null"`
}

// TableName 指定表名
func (Admin) TableName() string {
	return "admins"
}
