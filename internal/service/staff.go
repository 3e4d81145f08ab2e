package service

import (
	"context"
	"errors"

	"github.com/moisicmo/dinokids-serve-sub000/internal/model"
	"github.com/moisicmo/dinokids-serve-sub000/internal/repository"
	"github.com/moisicmo/dinokids-serve-sub000/pkg/ability"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrStaffNotFound 员工不存在
	ErrStaffNotFound = errors.New("员工不存在")
	// ErrStaffEmailExists 员工邮箱已存在
	ErrStaffEmailExists = errors.New("员工邮箱已存在")
)

// StaffService 员工服务接口
type StaffService interface {
	Create(ctx context.Context, staff *model.Staff, password string, branchIDs []string) error
	GetByID(ctx context.Context, id string) (*model.Staff, error)
	Update(ctx context.Context, staff *model.Staff) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ability.ListFilter, offset, limit int) ([]model.Staff, int64, error)
	// AssignBranches 重设员工的分校分配
	AssignBranches(ctx context.Context, staffID string, branchIDs []string) error
}

// staffService 员工服务实现
type staffService struct {
	staffRepo  repository.StaffRepository
	roleRepo   repository.RoleRepository
	branchRepo repository.BranchRepository
}

// NewStaffService 创建员工服务实例
func NewStaffService(staffRepo repository.StaffRepository, roleRepo repository.RoleRepository, branchRepo repository.BranchRepository) StaffService {
	return &staffService{
		staffRepo:  staffRepo,
		roleRepo:   roleRepo,
		branchRepo: branchRepo,
	}
}

// Create 创建员工并分配分校
func (s *staffService) Create(ctx context.Context, staff *model.Staff, password string, branchIDs []string) error {
	existing, err := s.staffRepo.GetByEmail(ctx, staff.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrStaffEmailExists
	}

	role, err := s.roleRepo.GetByID(ctx, staff.RoleID)
	if err != nil {
		return err
	}
	if role == nil {
		return ErrRoleNotFound
	}

	branches, err := s.resolveBranches(ctx, branchIDs)
	if err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	staff.Password = string(hashed)
	staff.Branches = branches

	return s.staffRepo.Create(ctx, staff)
}

// GetByID 获取员工及其访问信息
func (s *staffService) GetByID(ctx context.Context, id string) (*model.Staff, error) {
	staff, err := s.staffRepo.GetWithAccess(ctx, id)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, ErrStaffNotFound
	}
	return staff, nil
}

// Update 更新员工
func (s *staffService) Update(ctx context.Context, staff *model.Staff) error {
	existing, err := s.staffRepo.GetByID(ctx, staff.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrStaffNotFound
	}

	// 检查新邮箱是否与其他员工冲突
	if staff.Email != existing.Email {
		emailExists, err := s.staffRepo.GetByEmail(ctx, staff.Email)
		if err != nil {
			return err
		}
		if emailExists != nil && emailExists.ID != staff.ID {
			return ErrStaffEmailExists
		}
	}

	// 密码不经由本方法修改
	staff.Password = existing.Password

	return s.staffRepo.Update(ctx, staff)
}

// Delete 删除员工
func (s *staffService) Delete(ctx context.Context, id string) error {
	existing, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrStaffNotFound
	}

	return s.staffRepo.Delete(ctx, id)
}

// List 获取员工列表
func (s *staffService) List(ctx context.Context, filter ability.ListFilter, offset, limit int) ([]model.Staff, int64, error) {
	return s.staffRepo.List(ctx, filter, offset, limit)
}

// AssignBranches 重设员工的分校分配
func (s *staffService) AssignBranches(ctx context.Context, staffID string, branchIDs []string) error {
	staff, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		return err
	}
	if staff == nil {
		return ErrStaffNotFound
	}

	branches, err := s.resolveBranches(ctx, branchIDs)
	if err != nil {
		return err
	}

	return s.staffRepo.ReplaceBranches(ctx, staff, branches)
}

// resolveBranches 校验并加载分校集合
func (s *staffService) resolveBranches(ctx context.Context, branchIDs []string) ([]model.Branch, error) {
	branches := make([]model.Branch, 0, len(branchIDs))
	for _, id := range branchIDs {
		branch, err := s.branchRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if branch == nil {
			return nil, ErrBranchNotFound
		}
		branches = append(branches, *branch)
	}
	return branches, nil
}
