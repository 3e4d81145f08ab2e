package service

import (
	"context"
	"errors"

	"github.com/moisicmo/dinokids-serve-sub000/internal/model"
	"github.com/moisicmo/dinokids-serve-sub000/internal/repository"
)

var (
	// ErrPermissionNotFound 权限不存在
	ErrPermissionNotFound = errors.New("权限不存在")
	// ErrPermissionExists 该角色已有相同操作与主体的权限
	ErrPermissionExists = errors.New("该角色已有相同操作与主体的权限")
	// ErrInvalidAction 操作类型无效
	ErrInvalidAction = errors.New("操作类型无效")
	// ErrInvalidSubject 主体类型无效
	ErrInvalidSubject = errors.New("主体类型无效")
)

// PermissionService 权限服务接口
type PermissionService interface {
	Create(ctx context.Context, permission *model.Permission) error
	GetByID(ctx context.Context, id string) (*model.Permission, error)
	Update(ctx context.Context, permission *model.Permission) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, roleID string, offset, limit int) ([]model.Permission, int64, error)

	// ReplaceConditions 整体重设权限的条件集
	ReplaceConditions(ctx context.Context, permissionID string, conditions []model.PermissionCondition) error
}

// permissionService 权限服务实现
type permissionService struct {
	permissionRepo repository.PermissionRepository
	roleRepo       repository.RoleRepository
}

// NewPermissionService 创建权限服务实例
func NewPermissionService(permissionRepo repository.PermissionRepository, roleRepo repository.RoleRepository) PermissionService {
	return &permissionService{
		permissionRepo: permissionRepo,
		roleRepo:       roleRepo,
	}
}

// Create 创建权限，写入时校验操作与主体合法性
func (s *permissionService) Create(ctx context.Context, permission *model.Permission) error {
	if !permission.Action.Valid() {
		return ErrInvalidAction
	}
	if !permission.Subject.Valid() {
		return ErrInvalidSubject
	}

	role, err := s.roleRepo.GetByID(ctx, permission.RoleID)
	if err != nil {
		return err
	}
	if role == nil {
		return ErrRoleNotFound
	}

	existing, err := s.permissionRepo.GetByActionAndSubject(ctx, permission.RoleID, permission.Action, permission.Subject)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrPermissionExists
	}

	return s.permissionRepo.Create(ctx, permission)
}

// GetByID 获取权限及其条件
func (s *permissionService) GetByID(ctx context.Context, id string) (*model.Permission, error) {
	permission, err := s.permissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if permission == nil {
		return nil, ErrPermissionNotFound
	}
	return permission, nil
}

// Update 更新权限，写入时校验操作与主体合法性
func (s *permissionService) Update(ctx context.Context, permission *model.Permission) error {
	if !permission.Action.Valid() {
		return ErrInvalidAction
	}
	if !permission.Subject.Valid() {
		return ErrInvalidSubject
	}

	existing, err := s.permissionRepo.GetByID(ctx, permission.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrPermissionNotFound
	}

	// 操作或主体变更时检查唯一约束
	if permission.Action != existing.Action || permission.Subject != existing.Subject {
		dup, err := s.permissionRepo.GetByActionAndSubject(ctx, existing.RoleID, permission.Action, permission.Subject)
		if err != nil {
			return err
		}
		if dup != nil {
			return ErrPermissionExists
		}
	}

	existing.Action = permission.Action
	existing.Subject = permission.Subject
	existing.Inverted = permission.Inverted
	existing.Reason = permission.Reason
	existing.Active = permission.Active
	return s.permissionRepo.Update(ctx, existing)
}

// Delete 删除权限及其条件
func (s *permissionService) Delete(ctx context.Context, id string) error {
	permission, err := s.permissionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if permission == nil {
		return ErrPermissionNotFound
	}
	return s.permissionRepo.Delete(ctx, id)
}

// List 获取角色的权限列表
func (s *permissionService) List(ctx context.Context, roleID string, offset, limit int) ([]model.Permission, int64, error) {
	role, err := s.roleRepo.GetByID(ctx, roleID)
	if err != nil {
		return nil, 0, err
	}
	if role == nil {
		return nil, 0, ErrRoleNotFound
	}
	return s.permissionRepo.List(ctx, roleID, offset, limit)
}

// ReplaceConditions 整体重设权限的条件集
// 条件值以原样字符串存储，写入时不做解析，编译期再做占位符替换与降级
func (s *permissionService) ReplaceConditions(ctx context.Context, permissionID string, conditions []model.PermissionCondition) error {
	permission, err := s.permissionRepo.GetByID(ctx, permissionID)
	if err != nil {
		return err
	}
	if permission == nil {
		return ErrPermissionNotFound
	}
	return s.permissionRepo.ReplaceConditions(ctx, permissionID, conditions)
}
