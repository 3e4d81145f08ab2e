package repository

import (
	"context"
	"errors"

	"github.com/moisicmo/dinokids-serve-sub000/internal/model"
	"github.com/moisicmo/dinokids-serve-sub000/pkg/ability"

	"gorm.io/gorm"
)

// StaffRepository 员工仓储接口
type StaffRepository interface {
	Create(ctx context.Context, staff *model.Staff) error
	GetByID(ctx context.Context, id string) (*model.Staff, error)
	GetByEmail(ctx context.Context, email string) (*model.Staff, error)
	// GetWithAccess 获取员工及其角色与分校分配，供授权上下文构建使用
	GetWithAccess(ctx context.Context, id string) (*model.Staff, error)
	Update(ctx context.Context, staff *model.Staff) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ability.ListFilter, offset, limit int) ([]model.Staff, int64, error)
	// ReplaceBranches 重设员工的分校分配
	ReplaceBranches(ctx context.Context, staff *model.Staff, branches []model.Branch) error
}

// staffRepository 员工仓储实现
type staffRepository struct {
	db *gorm.DB
}

// NewStaffRepository 创建员工仓储实例
func NewStaffRepository(db *gorm.DB) StaffRepository {
	return &staffRepository{db: db}
}

// Create 创建员工
func (r *staffRepository) Create(ctx context.Context, staff *model.Staff) error {
	return r.db.WithContext(ctx).Create(staff).Error
}

// GetByID 通过ID获取员工
func (r *staffRepository) GetByID(ctx context.Context, id string) (*model.Staff, error) {
	var staff model.Staff
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&staff).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &staff, nil
}

// GetByEmail 通过邮箱获取员工
func (r *staffRepository) GetByEmail(ctx context.Context, email string) (*model.Staff, error) {
	var staff model.Staff
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&staff).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &staff, nil
}

// GetWithAccess 获取员工及其角色与分校分配
func (r *staffRepository) GetWithAccess(ctx context.Context, id string) (*model.Staff, error) {
	var staff model.Staff
	if err := r.db.WithContext(ctx).
		Preload("Role").
		Preload("Branches").
		Where("id = ?", id).
		First(&staff).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &staff, nil
}

// Update 更新员工
func (r *staffRepository) Update(ctx context.Context, staff *model.Staff) error {
	return r.db.WithContext(ctx).Save(staff).Error
}

// Delete 删除员工
func (r *staffRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 清除分校分配
		if err := tx.Exec("DELETE FROM staff_branches WHERE staff_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Staff{}, "id = ?", id).Error
	})
}

// List 获取员工列表，施加ABAC投影过滤
func (r *staffRepository) List(ctx context.Context, filter ability.ListFilter, offset, limit int) ([]model.Staff, int64, error) {
	var staffs []model.Staff
	var total int64

	query := ApplyAbilityFilter(r.db.WithContext(ctx).Model(&model.Staff{}), filter)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Preload("Role").Offset(offset).Limit(limit).Find(&staffs).Error; err != nil {
		return nil, 0, err
	}

	return staffs, total, nil
}

// ReplaceBranches 重设员工的分校分配
func (r *staffRepository) ReplaceBranches(ctx context.Context, staff *model.Staff, branches []model.Branch) error {
	return r.db.WithContext(ctx).Model(staff).Association("Branches").Replace(branches)
}
