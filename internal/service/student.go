package service

import (
	"context"
	"errors"

	"github.com/moisicmo/dinokids-serve-sub000/internal/model"
	"github.com/moisicmo/dinokids-serve-sub000/internal/repository"
	"github.com/moisicmo/dinokids-serve-sub000/pkg/ability"
)

var (
	// ErrStudentNotFound 学生不存在
	ErrStudentNotFound = errors.New("学生不存在")
	// ErrStudentCodeExists 学号已存在
	ErrStudentCodeExists = errors.New("学号已存在")
	// ErrTutorNotFound 监护人不存在
	ErrTutorNotFound = errors.New("监护人不存在")
)

// StudentService 学生服务接口
type StudentService interface {
	Create(ctx context.Context, student *model.Student) error
	GetByID(ctx context.Context, id string) (*model.Student, error)
	Update(ctx context.Context, student *model.Student) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ability.ListFilter, offset, limit int) ([]model.Student, int64, error)

	// 监护人管理
	CreateTutor(ctx context.Context, tutor *model.Tutor) error
	GetTutor(ctx context.Context, id string) (*model.Tutor, error)
	UpdateTutor(ctx context.Context, tutor *model.Tutor) error
	ListTutors(ctx context.Context, offset, limit int) ([]model.Tutor, int64, error)
}

// studentService 学生服务实现
type studentService struct {
	studentRepo repository.StudentRepository
	tutorRepo   repository.TutorRepository
	branchRepo  repository.BranchRepository
}

// NewStudentService 创建学生服务实例
func NewStudentService(studentRepo repository.StudentRepository, tutorRepo repository.TutorRepository, branchRepo repository.BranchRepository) StudentService {
	return &studentService{
		studentRepo: studentRepo,
		tutorRepo:   tutorRepo,
		branchRepo:  branchRepo,
	}
}

// Create 创建学生
func (s *studentService) Create(ctx context.Context, student *model.Student) error {
	existing, err := s.studentRepo.GetByCode(ctx, student.Code)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrStudentCodeExists
	}

	branch, err := s.branchRepo.GetByID(ctx, student.BranchID)
	if err != nil {
		return err
	}
	if branch == nil {
		return ErrBranchNotFound
	}

	if student.TutorID != nil {
		tutor, err := s.tutorRepo.GetByID(ctx, *student.TutorID)
		if err != nil {
			return err
		}
		if tutor == nil {
			return ErrTutorNotFound
		}
	}

	return s.studentRepo.Create(ctx, student)
}

// GetByID 获取学生
func (s *studentService) GetByID(ctx context.Context, id string) (*model.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, ErrStudentNotFound
	}
	return student, nil
}

// Update 更新学生
func (s *studentService) Update(ctx context.Context, student *model.Student) error {
	existing, err := s.studentRepo.GetByID(ctx, student.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrStudentNotFound
	}

	// 检查新学号是否与其他学生冲突
	if student.Code != existing.Code {
		codeExists, err := s.studentRepo.GetByCode(ctx, student.Code)
		if err != nil {
			return err
		}
		if codeExists != nil && codeExists.ID != student.ID {
			return ErrStudentCodeExists
		}
	}

	return s.studentRepo.Update(ctx, student)
}

// Delete 删除学生
func (s *studentService) Delete(ctx context.Context, id string) error {
	existing, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrStudentNotFound
	}

	return s.studentRepo.Delete(ctx, id)
}

// List 获取学生列表
func (s *studentService) List(ctx context.Context, filter ability.ListFilter, offset, limit int) ([]model.Student, int64, error) {
	return s.studentRepo.List(ctx, filter, offset, limit)
}

// CreateTutor 创建监护人
func (s *studentService) CreateTutor(ctx context.Context, tutor *model.Tutor) error {
	return s.tutorRepo.Create(ctx, tutor)
}

// GetTutor 获取监护人
func (s *studentService) GetTutor(ctx context.Context, id string) (*model.Tutor, error) {
	tutor, err := s.tutorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tutor == nil {
		return nil, ErrTutorNotFound
	}
	return tutor, nil
}

// UpdateTutor 更新监护人
func (s *studentService) UpdateTutor(ctx context.Context, tutor *model.Tutor) error {
	existing, err := s.tutorRepo.GetByID(ctx, tutor.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrTutorNotFound
	}

	return s.tutorRepo.Update(ctx, tutor)
}

// ListTutors 获取监护人列表
func (s *studentService) ListTutors(ctx context.Context, offset, limit int) ([]model.Tutor, int64, error) {
	return s.tutorRepo.List(ctx, offset, limit)
}
