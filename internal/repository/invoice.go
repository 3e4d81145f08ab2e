package repository

import (
	"context"
	"errors"
	"time"

	"github.com/moisicmo/dinokids-serve-sub000/internal/model"
	"github.com/moisicmo/dinokids-serve-sub000/pkg/ability"
	"github.com/moisicmo/dinokids-serve-sub000/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// InvoiceRepository 发票头仓储接口
type InvoiceRepository interface {
	GetByID(ctx context.Context, id string) (*model.Invoice, error)
	GetByNumber(ctx context.Context, number string) (*model.Invoice, error)
	List(ctx context.Context, filter ability.ListFilter, offset, limit int) ([]model.Invoice, int64, error)
	// NextNumber 返回下一个发票编号序数
	NextNumber(ctx context.Context) (int64, error)
}

// invoiceRepository 发票头仓储实现
type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository 创建发票头仓储实例
func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

// GetByID 通过ID获取发票头
func (r *invoiceRepository) GetByID(ctx context.Context, id string) (*model.Invoice, error) {
	var invoice model.Invoice
	if err := r.db.WithContext(ctx).
		Preload("Payment").
		Where("id = ?", id).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

// GetByNumber 通过编号获取发票头
func (r *invoiceRepository) GetByNumber(ctx context.Context, number string) (*model.Invoice, error) {
	var invoice model.Invoice
	if err := r.db.WithContext(ctx).Where("number = ?", number).First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

// List 获取发票列表，施加ABAC投影过滤
func (r *invoiceRepository) List(ctx context.Context, filter ability.ListFilter, offset, limit int) ([]model.Invoice, int64, error) {
	var invoices []model.Invoice
	var total int64

	query := ApplyAbilityFilter(r.db.WithContext(ctx).Model(&model.Invoice{}), filter)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Offset(offset).Limit(limit).Find(&invoices).Error; err != nil {
		return nil, 0, err
	}

	return invoices, total, nil
}

// NextNumber 返回下一个发票编号序数
func (r *invoiceRepository) NextNumber(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Invoice{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count + 1, nil
}

// InvoiceDocumentRepository 发票单据正文仓储接口（MongoDB）
type InvoiceDocumentRepository interface {
	Save(ctx context.Context, doc *model.InvoiceDocument) error
	GetByInvoiceID(ctx context.Context, invoiceID string) (*model.InvoiceDocument, error)
}

// invoiceDocumentRepository 发票单据正文仓储实现
type invoiceDocumentRepository struct {
	collection *mongo.Collection
}

// NewInvoiceDocumentRepository 创建发票单据正文仓储实例
func NewInvoiceDocumentRepository(client *database.MongoClient) InvoiceDocumentRepository {
	return &invoiceDocumentRepository{
		collection: client.Collection("invoice_documents"),
	}
}

// Save 保存发票单据正文
func (r *invoiceDocumentRepository) Save(ctx context.Context, doc *model.InvoiceDocument) error {
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, doc)
	return err
}

// GetByInvoiceID 通过发票ID获取单据正文
func (r *invoiceDocumentRepository) GetByInvoiceID(ctx context.Context, invoiceID string) (*model.InvoiceDocument, error) {
	var doc model.InvoiceDocument
	err := r.collection.FindOne(ctx, bson.M{"invoice_id": invoiceID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}
