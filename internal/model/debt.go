package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Debt 欠费实体；余额由支付登记维护
type Debt struct {
	ID            string       `gorm:"type:uuid;primary_key" json:"id"`
	StudentID     string       `gorm:"type:uuid;not null" json:"student_id"`
	BranchID      string       `gorm:"type:uuid;not null" json:"branch_id"`
	InscriptionID *string      `gorm:"type:uuid" json:"inscription_id"`             // 关联报名，可为空（如月费）
	Concept       string       `gorm:"type:varchar(200);not null" json:"concept"`   // 费用说明
	Amount        float64      `gorm:"type:numeric(12,2);not null" json:"amount"`   // 总额
	Balance       float64      `gorm:"type:numeric(12,2);not null" json:"balance"`  // 剩余欠额
	Settled       bool         `gorm:"type:boolean;default:false" json:"settled"`   // 是否已结清
	Gestion       string       `gorm:"type:varchar(20);not null" json:"gestion"`    // 学年期间
	Student       *Student     `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Inscription   *Inscription `gorm:"foreignKey:InscriptionID" json:"-"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// Payment 支付登记实体
type Payment struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	DebtID    string    `gorm:"type:uuid;not null" json:"debt_id"`
	StaffID   string    `gorm:"type:uuid;not null" json:"staff_id"`        // 收款员工
	Amount    float64   `gorm:"type:numeric(12,2);not null" json:"amount"` // 支付金额
	Method    string    `gorm:"type:varchar(30);not null" json:"method"`   // 支付方式：cash/card/transfer/qr
	PaidAt    time.Time `gorm:"not null" json:"paid_at"`                   // 支付时间
	Debt      *Debt     `gorm:"foreignKey:DebtID" json:"debt,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Invoice 发票头实体；渲染后的单据正文存MongoDB
type Invoice struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	PaymentID string    `gorm:"type:uuid;not null;uniqueIndex" json:"payment_id"`
	Number    string    `gorm:"type:varchar(30);not null;uniqueIndex" json:"number"` // 发票编号
	Total     float64   `gorm:"type:numeric(12,2);not null" json:"total"`
	IssuedAt  time.Time `gorm:"not null" json:"issued_at"`
	Payment   *Payment  `gorm:"foreignKey:PaymentID" json:"payment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InvoiceDocument 发票单据正文，存储于MongoDB
type InvoiceDocument struct {
	InvoiceID   string         `bson:"invoice_id" json:"invoice_id"`
	Number      string         `bson:"number" json:"number"`
	ContentType string         `bson:"content_type" json:"content_type"`
	Payload     map[string]any `bson:"payload" json:"payload"` // 渲染层需要的明细快照
	CreatedAt   time.Time      `bson:"created_at" json:"created_at"`
}

// BeforeCreate GORM的钩子，在创建记录前自动生成UUID
func (d *Debt) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	return nil
}

// BeforeCreate GORM的钩子，在创建记录前自动生成UUID
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// BeforeCreate GORM的钩子，在创建记录前自动生成UUID
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return nil
}

// TableName 指定表名
func (Debt) TableName() string {
	return "debts"
}

// TableName 指定表名
func (Payment) TableName() string {
	return "payments"
}

// TableName 指定表名
func (Invoice) TableName() string {
	return "invoices"
}
