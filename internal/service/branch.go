package service

import (
	"context"
	"errors"

	"github.com/moisicmo/dinokids-serve-sub000/internal/model"
	"github.com/moisicmo/dinokids-serve-sub000/internal/repository"
	"github.com/moisicmo/dinokids-serve-sub000/pkg/ability"
)

var (
	// ErrBranchNotFound 分校不存在
	ErrBranchNotFound = errors.New("分校不存在")
	// ErrBranchNameExists 分校名称已存在
	ErrBranchNameExists = errors.New("分校名称已存在")
)

// BranchService 分校服务接口
type BranchService interface {
	Create(ctx context.Context, branch *model.Branch) error
	GetByID(ctx context.Context, id string) (*model.Branch, error)
	Update(ctx context.Context, branch *model.Branch) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ability.ListFilter, offset, limit int) ([]model.Branch, int64, error)
}

// branchService 分校服务实现
type branchService struct {
	branchRepo repository.BranchRepository
}

// NewBranchService 创建分校服务实例
func NewBranchService(branchRepo repository.BranchRepository) BranchService {
	return &branchService{branchRepo: branchRepo}
}

// Create 创建分校
func (s *branchService) Create(ctx context.Context, branch *model.Branch) error {
	existing, err := s.branchRepo.GetByName(ctx, branch.Name)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrBranchNameExists
	}

	return s.branchRepo.Create(ctx, branch)
}

// GetByID 获取分校
func (s *branchService) GetByID(ctx context.Context, id string) (*model.Branch, error) {
	branch, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, ErrBranchNotFound
	}
	return branch, nil
}

// Update 更新分校
func (s *branchService) Update(ctx context.Context, branch *model.Branch) error {
	existing, err := s.branchRepo.GetByID(ctx, branch.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrBranchNotFound
	}

	// 检查新名称是否与其他分校冲突
	if branch.Name != existing.Name {
		nameExists, err := s.branchRepo.GetByName(ctx, branch.Name)
		if err != nil {
			return err
		}
		if nameExists != nil && nameExists.ID != branch.ID {
			return ErrBranchNameExists
		}
	}

	return s.branchRepo.Update(ctx, branch)
}

// Delete 删除分校
func (s *branchService) Delete(ctx context.Context, id string) error {
	existing, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrBranchNotFound
	}

	return s.branchRepo.Delete(ctx, id)
}

// List 获取分校列表
func (s *branchService) List(ctx context.Context, filter ability.ListFilter, offset, limit int) ([]model.Branch, int64, error) {
	return s.branchRepo.List(ctx, filter, offset, limit)
}
