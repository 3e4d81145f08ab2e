package repository

import (
	"context"
	"errors"

	"github.com/moisicmo/dinokids-serve-sub000/internal/model"
	"github.com/moisicmo/dinokids-serve-sub000/pkg/ability"

	"gorm.io/gorm"
)

// PaymentRepository 支付仓储接口
type PaymentRepository interface {
	GetByID(ctx context.Context, id string) (*model.Payment, error)
	List(ctx context.Context, filter ability.ListFilter, offset, limit int) ([]model.Payment, int64, error)
	ListByDebt(ctx context.Context, debtID string) ([]model.Payment, error)
}

// paymentRepository 支付仓储实现
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository 创建支付仓储实例
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

// GetByID 通过ID获取支付
func (r *paymentRepository) GetByID(ctx context.Context, id string) (*model.Payment, error) {
	var payment model.Payment
	if err := r.db.WithContext(ctx).
		Preload("Debt").
		Where("id = ?", id).
		First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

// List 获取支付列表，施加ABAC投影过滤
func (r *paymentRepository) List(ctx context.Context, filter ability.ListFilter, offset, limit int) ([]model.Payment, int64, error) {
	var payments []model.Payment
	var total int64

	query := ApplyAbilityFilter(r.db.WithContext(ctx).Model(&model.Payment{}), filter)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Offset(offset).Limit(limit).Find(&payments).Error; err != nil {
		return nil, 0, err
	}

	return payments, total, nil
}

// ListByDebt 获取某欠费的全部支付记录
func (r *paymentRepository) ListByDebt(ctx context.Context, debtID string) ([]model.Payment, error) {
	var payments []model.Payment
	err := r.db.WithContext(ctx).
		Where("debt_id = ?", debtID).
		Order("paid_at ASC").
		Find(&payments).Error
	return payments, err
}
