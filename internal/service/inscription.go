package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/moisicmo/dinokids-serve-sub000/internal/model"
	"github.com/moisicmo/dinokids-serve-sub000/internal/repository"
	"github.com/moisicmo/dinokids-serve-sub000/pkg/ability"
)

var (
	// ErrInscriptionNotFound 报名不存在
	ErrInscriptionNotFound = errors.New("报名不存在")
	// ErrAlreadyInscribed 学生在该学年期间已报名
	ErrAlreadyInscribed = errors.New("学生在该学年期间已报名")
)

// InscriptionService 报名服务接口
type InscriptionService interface {
	// Create 创建报名并同时开立报名费欠费
	Create(ctx context.Context, inscription *model.Inscription) error
	GetByID(ctx context.Context, id string) (*model.Inscription, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ability.ListFilter, offset, limit int) ([]model.Inscription, int64, error)
}

// inscriptionService 报名服务实现
type inscriptionService struct {
	inscriptionRepo repository.InscriptionRepository
	studentRepo     repository.StudentRepository
	branchRepo      repository.BranchRepository
}

// NewInscriptionService 创建报名服务实例
func NewInscriptionService(
	inscriptionRepo repository.InscriptionRepository,
	studentRepo repository.StudentRepository,
	branchRepo repository.BranchRepository,
) InscriptionService {
	return &inscriptionService{
		inscriptionRepo: inscriptionRepo,
		studentRepo:     studentRepo,
		branchRepo:      branchRepo,
	}
}

// Create 创建报名并同时开立报名费欠费
func (s *inscriptionService) Create(ctx context.Context, inscription *model.Inscription) error {
	student, err := s.studentRepo.GetByID(ctx, inscription.StudentID)
	if err != nil {
		return err
	}
	if student == nil {
		return ErrStudentNotFound
	}

	branch, err := s.branchRepo.GetByID(ctx, inscription.BranchID)
	if err != nil {
		return err
	}
	if branch == nil {
		return ErrBranchNotFound
	}

	existing, err := s.inscriptionRepo.GetByStudentAndGestion(ctx, inscription.StudentID, inscription.Gestion)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrAlreadyInscribed
	}

	debt := &model.Debt{
		StudentID: inscription.StudentID,
		BranchID:  inscription.BranchID,
		Concept:   fmt.Sprintf("报名费 %s", inscription.Gestion),
		Amount:    inscription.Price,
		Balance:   inscription.Price,
		Gestion:   inscription.Gestion,
	}
	return s.inscriptionRepo.CreateWithDebt(ctx, inscription, debt)
}

// GetByID 获取报名
func (s *inscriptionService) GetByID(ctx context.Context, id string) (*model.Inscription, error) {
	inscription, err := s.inscriptionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inscription == nil {
		return nil, ErrInscriptionNotFound
	}
	return inscription, nil
}

// Delete 删除报名
func (s *inscriptionService) Delete(ctx context.Context, id string) error {
	existing, err := s.inscriptionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrInscriptionNotFound
	}

	return s.inscriptionRepo.Delete(ctx, id)
}

// List 获取报名列表
func (s *inscriptionService) List(ctx context.Context, filter ability.ListFilter, offset, limit int) ([]model.Inscription, int64, error) {
	return s.inscriptionRepo.List(ctx, filter, offset, limit)
}
