package repository

import (
	"context"
	"errors"

	"github.com/moisicmo/dinokids-serve-sub000/internal/model"
	"github.com/moisicmo/dinokids-serve-sub000/pkg/ability"

	"gorm.io/gorm"
)

// BranchRepository 分校仓储接口
type BranchRepository interface {
	Create(ctx context.Context, branch *model.Branch) error
	GetByID(ctx context.Context, id string) (*model.Branch, error)
	GetByName(ctx context.Context, name string) (*model.Branch, error)
	Update(ctx context.Context, branch *model.Branch) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ability.ListFilter, offset, limit int) ([]model.Branch, int64, error)
}

// branchRepository 分校仓储实现
type branchRepository struct {
	db *gorm.DB
}

// NewBranchRepository 创建分校仓储实例
func NewBranchRepository(db *gorm.DB) BranchRepository {
	return &branchRepository{db: db}
}

// Create 创建分校
func (r *branchRepository) Create(ctx context.Context, branch *model.Branch) error {
	return r.db.WithContext(ctx).Create(branch).Error
}

// GetByID 通过ID获取分校
func (r *branchRepository) GetByID(ctx context.Context, id string) (*model.Branch, error) {
	var branch model.Branch
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&branch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &branch, nil
}

// GetByName 通过名称获取分校
func (r *branchRepository) GetByName(ctx context.Context, name string) (*model.Branch, error) {
	var branch model.Branch
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&branch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &branch, nil
}

// Update 更新分校
func (r *branchRepository) Update(ctx context.Context, branch *model.Branch) error {
	return r.db.WithContext(ctx).Save(branch).Error
}

// Delete 删除分校
func (r *branchRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Branch{}, "id = ?", id).Error
}

// List 获取分校列表，施加ABAC投影过滤
func (r *branchRepository) List(ctx context.Context, filter ability.ListFilter, offset, limit int) ([]model.Branch, int64, error) {
	var branches []model.Branch
	var total int64

	query := ApplyAbilityFilter(r.db.WithContext(ctx).Model(&model.Branch{}), filter)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Offset(offset).Limit(limit).Find(&branches).Error; err != nil {
		return nil, 0, err
	}

	return branches, total, nil
}
