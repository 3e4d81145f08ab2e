package repository

import (
	"context"
	"errors"

	"github.com/moisicmo/dinokids-serve-sub000/internal/model"
	"github.com/moisicmo/dinokids-serve-sub000/pkg/ability"

	"gorm.io/gorm"
)

// InscriptionRepository 报名仓储接口
type InscriptionRepository interface {
	// CreateWithDebt 在同一事务中创建报名和对应的欠费记录
	CreateWithDebt(ctx context.Context, inscription *model.Inscription, debt *model.Debt) error
	GetByID(ctx context.Context, id string) (*model.Inscription, error)
	GetByStudentAndGestion(ctx context.Context, studentID, gestion string) (*model.Inscription, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ability.ListFilter, offset, limit int) ([]model.Inscription, int64, error)
}

// inscriptionRepository 报名仓储实现
type inscriptionRepository struct {
	db *gorm.DB
}

// NewInscriptionRepository 创建报名仓储实例
func NewInscriptionRepository(db *gorm.DB) InscriptionRepository {
	return &inscriptionRepository{db: db}
}

// CreateWithDebt 在同一事务中创建报名和对应的欠费记录
func (r *inscriptionRepository) CreateWithDebt(ctx context.Context, inscription *model.Inscription, debt *model.Debt) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(inscription).Error; err != nil {
			return err
		}
		debt.InscriptionID = &inscription.ID
		return tx.Create(debt).Error
	})
}

// GetByID 通过ID获取报名
func (r *inscriptionRepository) GetByID(ctx context.Context, id string) (*model.Inscription, error) {
	var inscription model.Inscription
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Where("id = ?", id).
		First(&inscription).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &inscription, nil
}

// GetByStudentAndGestion 获取学生在某学年期间的报名
func (r *inscriptionRepository) GetByStudentAndGestion(ctx context.Context, studentID, gestion string) (*model.Inscription, error) {
	var inscription model.Inscription
	if err := r.db.WithContext(ctx).
		Where("student_id = ? AND gestion = ?", studentID, gestion).
		First(&inscription).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &inscription, nil
}

// Delete 删除报名
func (r *inscriptionRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Inscription{}, "id = ?", id).Error
}

// List 获取报名列表，施加ABAC投影过滤
func (r *inscriptionRepository) List(ctx context.Context, filter ability.ListFilter, offset, limit int) ([]model.Inscription, int64, error) {
	var inscriptions []model.Inscription
	var total int64

	query := ApplyAbilityFilter(r.db.WithContext(ctx).Model(&model.Inscription{}), filter)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Preload("Student").Offset(offset).Limit(limit).Find(&inscriptions).Error; err != nil {
		return nil, 0, err
	}

	return inscriptions, total, nil
}
