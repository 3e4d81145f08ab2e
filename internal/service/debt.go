package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/moisicmo/dinokids-serve-sub000/internal/model"
	"github.com/moisicmo/dinokids-serve-sub000/internal/repository"
	"github.com/moisicmo/dinokids-serve-sub000/pkg/ability"
)

var (
	// ErrDebtNotFound 欠费不存在
	ErrDebtNotFound = errors.New("欠费不存在")
	// ErrDebtSettled 欠费已结清
	ErrDebtSettled = errors.New("欠费已结清")
	// ErrInvalidPaymentAmount 支付金额无效
	ErrInvalidPaymentAmount = errors.New("支付金额无效")
	// ErrPaymentNotFound 支付记录不存在
	ErrPaymentNotFound = errors.New("支付记录不存在")
	// ErrInvoiceNotFound 发票不存在
	ErrInvoiceNotFound = errors.New("发票不存在")
)

// DebtService 欠费与支付服务接口
type DebtService interface {
	Create(ctx context.Context, debt *model.Debt) error
	GetByID(ctx context.Context, id string) (*model.Debt, error)
	List(ctx context.Context, filter ability.ListFilter, offset, limit int) ([]model.Debt, int64, error)

	// RegisterPayment 登记支付；结清时开具发票并归档单据正文
	RegisterPayment(ctx context.Context, debtID, staffID string, amount float64, method string) (*model.Payment, error)
	GetPayment(ctx context.Context, id string) (*model.Payment, error)
	ListPayments(ctx context.Context, filter ability.ListFilter, offset, limit int) ([]model.Payment, int64, error)

	// 发票
	GetInvoice(ctx context.Context, id string) (*model.Invoice, error)
	GetInvoiceDocument(ctx context.Context, invoiceID string) (*model.InvoiceDocument, error)
	ListInvoices(ctx context.Context, filter ability.ListFilter, offset, limit int) ([]model.Invoice, int64, error)
}

// debtService 欠费与支付服务实现
type debtService struct {
	debtRepo            repository.DebtRepository
	paymentRepo         repository.PaymentRepository
	invoiceRepo         repository.InvoiceRepository
	invoiceDocumentRepo repository.InvoiceDocumentRepository
	studentRepo         repository.StudentRepository
}

// NewDebtService 创建欠费与支付服务实例
func NewDebtService(
	debtRepo repository.DebtRepository,
	paymentRepo repository.PaymentRepository,
	invoiceRepo repository.InvoiceRepository,
	invoiceDocumentRepo repository.InvoiceDocumentRepository,
	studentRepo repository.StudentRepository,
) DebtService {
	return &debtService{
		debtRepo:            debtRepo,
		paymentRepo:         paymentRepo,
		invoiceRepo:         invoiceRepo,
		invoiceDocumentRepo: invoiceDocumentRepo,
		studentRepo:         studentRepo,
	}
}

// Create 创建欠费
func (s *debtService) Create(ctx context.Context, debt *model.Debt) error {
	student, err := s.studentRepo.GetByID(ctx, debt.StudentID)
	if err != nil {
		return err
	}
	if student == nil {
		return ErrStudentNotFound
	}

	if debt.Amount <= 0 {
		return ErrInvalidPaymentAmount
	}
	debt.Balance = debt.Amount
	debt.Settled = false

	return s.debtRepo.Create(ctx, debt)
}

// GetByID 获取欠费
func (s *debtService) GetByID(ctx context.Context, id string) (*model.Debt, error) {
	debt, err := s.debtRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if debt == nil {
		return nil, ErrDebtNotFound
	}
	return debt, nil
}

// List 获取欠费列表
func (s *debtService) List(ctx context.Context, filter ability.ListFilter, offset, limit int) ([]model.Debt, int64, error) {
	return s.debtRepo.List(ctx, filter, offset, limit)
}

// RegisterPayment 登记支付；结清时开具发票并归档单据正文
func (s *debtService) RegisterPayment(ctx context.Context, debtID, staffID string, amount float64, method string) (*model.Payment, error) {
	debt, err := s.debtRepo.GetByID(ctx, debtID)
	if err != nil {
		return nil, err
	}
	if debt == nil {
		return nil, ErrDebtNotFound
	}
	if debt.Settled {
		return nil, ErrDebtSettled
	}
	if amount <= 0 || amount > debt.Balance {
		return nil, ErrInvalidPaymentAmount
	}

	payment := &model.Payment{
		DebtID:  debt.ID,
		StaffID: staffID,
		Amount:  amount,
		Method:  method,
		PaidAt:  time.Now(),
	}

	debt.Balance -= amount
	debt.Settled = debt.Balance == 0

	// 结清时开具发票头
	var invoice *model.Invoice
	if debt.Settled {
		seq, err := s.invoiceRepo.NextNumber(ctx)
		if err != nil {
			return nil, err
		}
		invoice = &model.Invoice{
			Number:   fmt.Sprintf("INV-%d-%06d", time.Now().Year(), seq),
			Total:    debt.Amount,
			IssuedAt: time.Now(),
		}
	}

	if err := s.debtRepo.RegisterPayment(ctx, debt, payment, invoice); err != nil {
		return nil, err
	}

	// 单据正文写入MongoDB，供渲染层取用
	if invoice != nil {
		doc := &model.InvoiceDocument{
			InvoiceID:   invoice.ID,
			Number:      invoice.Number,
			ContentType: "application/json",
			Payload: map[string]any{
				"debt_id":    debt.ID,
				"student_id": debt.StudentID,
				"concept":    debt.Concept,
				"gestion":    debt.Gestion,
				"total":      debt.Amount,
				"paid_at":    payment.PaidAt,
			},
		}
		if err := s.invoiceDocumentRepo.Save(ctx, doc); err != nil {
			return nil, err
		}
	}

	return payment, nil
}

// GetPayment 获取支付记录
func (s *debtService) GetPayment(ctx context.Context, id string) (*model.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	return payment, nil
}

// ListPayments 获取支付列表
func (s *debtService) ListPayments(ctx context.Context, filter ability.ListFilter, offset, limit int) ([]model.Payment, int64, error) {
	return s.paymentRepo.List(ctx, filter, offset, limit)
}

// GetInvoice 获取发票头
func (s *debtService) GetInvoice(ctx context.Context, id string) (*model.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, ErrInvoiceNotFound
	}
	return invoice, nil
}

// GetInvoiceDocument 获取发票单据正文
func (s *debtService) GetInvoiceDocument(ctx context.Context, invoiceID string) (*model.InvoiceDocument, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, ErrInvoiceNotFound
	}

	doc, err := s.invoiceDocumentRepo.GetByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrInvoiceNotFound
	}
	return doc, nil
}

// ListInvoices 获取发票列表
func (s *debtService) ListInvoices(ctx context.Context, filter ability.ListFilter, offset, limit int) ([]model.Invoice, int64, error) {
	return s.invoiceRepo.List(ctx, filter, offset, limit)
}
