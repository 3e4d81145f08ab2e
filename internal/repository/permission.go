package repository

import (
	"context"
	"errors"

	"github.com/moisicmo/dinokids-serve-sub000/internal/model"

	"gorm.io/gorm"
)

// PermissionRepository 权限仓储接口
type PermissionRepository interface {
	Create(ctx context.Context, permission *model.Permission) error
	GetByID(ctx context.Context, id string) (*model.Permission, error)
	GetByActionAndSubject(ctx context.Context, roleID string, action model.Action, subject model.Subject) (*model.Permission, error)
	Update(ctx context.Context, permission *model.Permission) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, roleID string, offset, limit int) ([]model.Permission, int64, error)

	// ListActiveByRole 获取角色的全部启用权限及条件，每次鉴权新鲜加载
	ListActiveByRole(ctx context.Context, roleID string) ([]model.Permission, error)

	// 条件管理
	ReplaceConditions(ctx context.Context, permissionID string, conditions []model.PermissionCondition) error
}

// permissionRepository 权限仓储实现
type permissionRepository struct {
	db *gorm.DB
}

// NewPermissionRepository 创建权限仓储实例
func NewPermissionRepository(db *gorm.DB) PermissionRepository {
	return &permissionRepository{db: db}
}

// Create 创建权限及其条件
func (r *permissionRepository) Create(ctx context.Context, permission *model.Permission) error {
	return r.db.WithContext(ctx).Create(permission).Error
}

// GetByID 通过ID获取权限，包含条件
func (r *permissionRepository) GetByID(ctx context.Context, id string) (*model.Permission, error) {
	var permission model.Permission
	if err := r.db.WithContext(ctx).
		Preload("Conditions").
		Where("id = ?", id).
		First(&permission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &permission, nil
}

// GetByActionAndSubject 通过操作和主体获取角色下的权限
func (r *permissionRepository) GetByActionAndSubject(ctx context.Context, roleID string, action model.Action, subject model.Subject) (*model.Permission, error) {
	var permission model.Permission
	if err := r.db.WithContext(ctx).
		Where("role_id = ? AND action = ? AND subject = ?", roleID, action, subject).
		First(&permission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &permission, nil
}

// Update 更新权限
func (r *permissionRepository) Update(ctx context.Context, permission *model.Permission) error {
	return r.db.WithContext(ctx).Omit("Conditions").Save(permission).Error
}

// Delete 删除权限及其条件
func (r *permissionRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("permission_id = ?", id).Delete(&model.PermissionCondition{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Permission{}, "id = ?", id).Error
	})
}

// List 获取角色的权限列表
func (r *permissionRepository) List(ctx context.Context, roleID string, offset, limit int) ([]model.Permission, int64, error) {
	var permissions []model.Permission
	var total int64

	if err := r.db.WithContext(ctx).Model(&model.Permission{}).Where("role_id = ?", roleID).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := r.db.WithContext(ctx).
		Preload("Conditions").
		Where("role_id = ?", roleID).
		Offset(offset).Limit(limit).
		Find(&permissions).Error; err != nil {
		return nil, 0, err
	}

	return permissions, total, nil
}

// ListActiveByRole 获取角色的全部启用权限及条件
func (r *permissionRepository) ListActiveByRole(ctx context.Context, roleID string) ([]model.Permission, error) {
	var permissions []model.Permission
	err := r.db.WithContext(ctx).
		Preload("Conditions", func(db *gorm.DB) *gorm.DB {
			return db.Order("permission_conditions.created_at ASC")
		}).
		Where("role_id = ? AND active = ?", roleID, true).
		Order("created_at ASC").
		Find(&permissions).Error
	return permissions, err
}

// ReplaceConditions 整体重设权限的条件
func (r *permissionRepository) ReplaceConditions(ctx context.Context, permissionID string, conditions []model.PermissionCondition) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("permission_id = ?", permissionID).Delete(&model.PermissionCondition{}).Error; err != nil {
			return err
		}
		for i := range conditions {
			conditions[i].PermissionID = permissionID
		}
		if len(conditions) == 0 {
			return nil
		}
		return tx.Create(&conditions).Error
	})
}
