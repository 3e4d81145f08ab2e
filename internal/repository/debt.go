package repository

import (
	"context"
	"errors"

	"github.com/moisicmo/dinokids-serve-sub000/internal/model"
	"github.com/moisicmo/dinokids-serve-sub000/pkg/ability"

	"gorm.io/gorm"
)

// DebtRepository 欠费仓储接口
type DebtRepository interface {
	Create(ctx context.Context, debt *model.Debt) error
	GetByID(ctx context.Context, id string) (*model.Debt, error)
	Update(ctx context.Context, debt *model.Debt) error
	List(ctx context.Context, filter ability.ListFilter, offset, limit int) ([]model.Debt, int64, error)
	// RegisterPayment 在同一事务中登记支付、扣减余额并在结清时开具发票
	RegisterPayment(ctx context.Context, debt *model.Debt, payment *model.Payment, invoice *model.Invoice) error
}

// debtRepository 欠费仓储实现
type debtRepository struct {
	db *gorm.DB
}

// NewDebtRepository 创建欠费仓储实例
func NewDebtRepository(db *gorm.DB) DebtRepository {
	return &debtRepository{db: db}
}

// Create 创建欠费
func (r *debtRepository) Create(ctx context.Context, debt *model.Debt) error {
	return r.db.WithContext(ctx).Create(debt).Error
}

// GetByID 通过ID获取欠费
func (r *debtRepository) GetByID(ctx context.Context, id string) (*model.Debt, error) {
	var debt model.Debt
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Where("id = ?", id).
		First(&debt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &debt, nil
}

// Update 更新欠费
func (r *debtRepository) Update(ctx context.Context, debt *model.Debt) error {
	return r.db.WithContext(ctx).Save(debt).Error
}

// List 获取欠费列表，施加ABAC投影过滤
func (r *debtRepository) List(ctx context.Context, filter ability.ListFilter, offset, limit int) ([]model.Debt, int64, error) {
	var debts []model.Debt
	var total int64

	query := ApplyAbilityFilter(r.db.WithContext(ctx).Model(&model.Debt{}), filter)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Preload("Student").Offset(offset).Limit(limit).Find(&debts).Error; err != nil {
		return nil, 0, err
	}

	return debts, total, nil
}

// RegisterPayment 在同一事务中登记支付、扣减余额并在结清时开具发票
func (r *debtRepository) RegisterPayment(ctx context.Context, debt *model.Debt, payment *model.Payment, invoice *model.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Debt{}).
			Where("id = ?", debt.ID).
			Updates(map[string]any{"balance": debt.Balance, "settled": debt.Settled}).Error; err != nil {
			return err
		}
		if invoice != nil {
			invoice.PaymentID = payment.ID
			return tx.Create(invoice).Error
		}
		return nil
	})
}
