package service

import (
	"context"
	"errors"

	"github.com/moisicmo/dinokids-serve-sub000/internal/model"
	"github.com/moisicmo/dinokids-serve-sub000/internal/repository"
)

var (
	// ErrRoleNotFound 角色不存在
	ErrRoleNotFound = errors.New("角色不存在")
	// ErrRoleNameTaken 角色名称已被使用
	ErrRoleNameTaken = errors.New("角色名称已被使用")
	// ErrRoleIsSystem 系统内置角色不可修改
	ErrRoleIsSystem = errors.New("系统内置角色不可修改")
)

// RoleService 角色服务接口
type RoleService interface {
	Create(ctx context.Context, role *model.Role) error
	GetByID(ctx context.Context, id string) (*model.Role, error)
	Update(ctx context.Context, role *model.Role) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, offset, limit int) ([]model.Role, int64, error)
}

// roleService 角色服务实现
type roleService struct {
	roleRepo repository.RoleRepository
}

// NewRoleService 创建角色服务实例
func NewRoleService(roleRepo repository.RoleRepository) RoleService {
	return &roleService{roleRepo: roleRepo}
}

// Create 创建角色
func (s *roleService) Create(ctx context.Context, role *model.Role) error {
	existing, err := s.roleRepo.GetByName(ctx, role.Name)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrRoleNameTaken
	}
	return s.roleRepo.Create(ctx, role)
}

// GetByID 获取角色及其权限集
func (s *roleService) GetByID(ctx context.Context, id string) (*model.Role, error) {
	role, err := s.roleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, ErrRoleNotFound
	}
	return role, nil
}

// Update 更新角色
func (s *roleService) Update(ctx context.Context, role *model.Role) error {
	existing, err := s.roleRepo.GetByID(ctx, role.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrRoleNotFound
	}
	if existing.IsSystem {
		return ErrRoleIsSystem
	}

	if role.Name != existing.Name {
		dup, err := s.roleRepo.GetByName(ctx, role.Name)
		if err != nil {
			return err
		}
		if dup != nil {
			return ErrRoleNameTaken
		}
	}

	existing.Name = role.Name
	existing.Description = role.Description
	return s.roleRepo.Update(ctx, existing)
}

// Delete 删除角色及其权限
func (s *roleService) Delete(ctx context.Context, id string) error {
	role, err := s.roleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if role == nil {
		return ErrRoleNotFound
	}
	if role.IsSystem {
		return ErrRoleIsSystem
	}
	return s.roleRepo.Delete(ctx, id)
}

// List 获取角色列表
func (s *roleService) List(ctx context.Context, offset, limit int) ([]model.Role, int64, error) {
	return s.roleRepo.List(ctx, offset, limit)
}
