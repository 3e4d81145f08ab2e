package repository

import (
	"context"
	"errors"

	"github.com/moisicmo/dinokids-serve-sub000/internal/model"
	"github.com/moisicmo/dinokids-serve-sub000/pkg/ability"

	"gorm.io/gorm"
)

// StudentRepository 学生仓储接口
type StudentRepository interface {
	Create(ctx context.Context, student *model.Student) error
	GetByID(ctx context.Context, id string) (*model.Student, error)
	GetByCode(ctx context.Context, code string) (*model.Student, error)
	Update(ctx context.Context, student *model.Student) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ability.ListFilter, offset, limit int) ([]model.Student, int64, error)
}

// studentRepository 学生仓储实现
type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository 创建学生仓储实例
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

// Create 创建学生
func (r *studentRepository) Create(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

// GetByID 通过ID获取学生
func (r *studentRepository) GetByID(ctx context.Context, id string) (*model.Student, error) {
	var student model.Student
	if err := r.db.WithContext(ctx).
		Preload("Tutor").
		Where("id = ?", id).
		First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &student, nil
}

// GetByCode 通过学号获取学生
func (r *studentRepository) GetByCode(ctx context.Context, code string) (*model.Student, error) {
	var student model.Student
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &student, nil
}

// Update 更新学生
func (r *studentRepository) Update(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Save(student).Error
}

// Delete 删除学生
func (r *studentRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Student{}, "id = ?", id).Error
}

// List 获取学生列表，施加ABAC投影过滤
func (r *studentRepository) List(ctx context.Context, filter ability.ListFilter, offset, limit int) ([]model.Student, int64, error) {
	var students []model.Student
	var total int64

	query := ApplyAbilityFilter(r.db.WithContext(ctx).Model(&model.Student{}), filter)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Preload("Tutor").Offset(offset).Limit(limit).Find(&students).Error; err != nil {
		return nil, 0, err
	}

	return students, total, nil
}

// TutorRepository 监护人仓储接口
type TutorRepository interface {
	Create(ctx context.Context, tutor *model.Tutor) error
	GetByID(ctx context.Context, id string) (*model.Tutor, error)
	Update(ctx context.Context, tutor *model.Tutor) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, offset, limit int) ([]model.Tutor, int64, error)
}

// tutorRepository 监护人仓储实现
type tutorRepository struct {
	db *gorm.DB
}

// NewTutorRepository 创建监护人仓储实例
func NewTutorRepository(db *gorm.DB) TutorRepository {
	return &tutorRepository{db: db}
}

// Create 创建监护人
func (r *tutorRepository) Create(ctx context.Context, tutor *model.Tutor) error {
	return r.db.WithContext(ctx).Create(tutor).Error
}

// GetByID 通过ID获取监护人
func (r *tutorRepository) GetByID(ctx context.Context, id string) (*model.Tutor, error) {
	var tutor model.Tutor
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&tutor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tutor, nil
}

// Update 更新监护人
func (r *tutorRepository) Update(ctx context.Context, tutor *model.Tutor) error {
	return r.db.WithContext(ctx).Save(tutor).Error
}

// Delete 删除监护人
func (r *tutorRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Tutor{}, "id = ?", id).Error
}

// List 获取监护人列表
func (r *tutorRepository) List(ctx context.Context, offset, limit int) ([]model.Tutor, int64, error) {
	var tutors []model.Tutor
	var total int64

	if err := r.db.WithContext(ctx).Model(&model.Tutor{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := r.db.WithContext(ctx).Offset(offset).Limit(limit).Find(&tutors).Error; err != nil {
		return nil, 0, err
	}

	return tutors, total, nil
}
