package rpadmin

import (
	"context"
	"errors"
	"time"

	"kcstudio/storefront/common/entity"
	"kcstudio/storefront/internal/app/domains/entity/etadmin"

	"gorm.io/gorm"
)

// AdminRepositoryImpl 管理员仓储实现（MySQL）
type AdminRepositoryImpl struct {
	db *gorm.DB
}

// NewAdminRepository 创建管理员仓储实例
func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &AdminRepositoryImpl{db: db}
}

// GetActiveByUsername 查询启用状态的管理员
func (r *AdminRepositoryImpl) GetActiveByUsername(ctx context.Context, username string) (*etadmin.Admin, error) {
	var po entity.Admin
	err := r.db.WithContext(ctx).
		Where("username = ? AND is_active = ?", username, true).
		First(&po).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toDomainModel(&po), nil
}

// TouchLastLogin 记录登录时间
func (r *AdminRepositoryImpl) TouchLastLogin(ctx context.Context, adminID int64, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&entity.Admin{}).
		Where("id = ?", adminID).
		Update("last_login", at).Error
}

// Create 新建管理员，IsActive=false 时建后再禁用
func (r *AdminRepositoryImpl) Create(ctx context.Context, admin *etadmin.Admin) error {
	po := &entity.Admin{
		Username: admin.Username,
		Password: admin.PasswordHash,
		Email:    admin.Email,
		FullName: admin.FullName,
		IsActive: true,
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(po).Error; err != nil {
			return err
		}
		if !admin.IsActive {
			if err := tx.Model(po).Update("is_active", false).Error; err != nil {
				return err
			}
		}
		admin.ID = po.ID
		admin.CreatedAt = po.CreatedAt
		return nil
	})
}

// List 全部管理员
func (r *AdminRepositoryImpl) List(ctx context.Context) ([]*etadmin.Admin, error) {
	var pos []entity.Admin
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&pos).Error; err != nil {
		return nil, err
	}
	admins := make([]*etadmin.Admin, 0, len(pos))
	for i := range pos {
		admins = append(admins, toDomainModel(&pos[i]))
	}
	return admins, nil
}

func toDomainModel(po *entity.Admin) *etadmin.Admin {
	return &etadmin.Admin{
		ID:           po.ID,
		Username:     po.Username,
		PasswordHash: po.Password,
		Email:        po.Email,
		FullName:     po.FullName,
		IsActive:     po.IsActive,
		LastLogin:    po.LastLogin,
		CreatedAt:    po.CreatedAt,
	}
}
