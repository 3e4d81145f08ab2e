package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Action 操作类型
type Action string

const (
	ActionManage Action = "manage" // 通配操作，覆盖该主体的所有操作
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Valid 检查操作类型是否在目录中
func (a Action) Valid() bool {
	switch a {
	case ActionManage, ActionCreate, ActionRead, ActionUpdate, ActionDelete:
		return true
	}
	return false
}

// Subject 资源主体类型
type Subject string

const (
	SubjectAll         Subject = "all" // 通配主体
	SubjectBranch      Subject = "branch"
	SubjectStaff       Subject = "staff"
	SubjectStudent     Subject = "student"
	SubjectTutor       Subject = "tutor"
	SubjectRoom        Subject = "room"
	SubjectBooking     Subject = "booking"
	SubjectInscription Subject = "inscription"
	SubjectDebt        Subject = "debt"
	SubjectPayment     Subject = "payment"
	SubjectInvoice     Subject = "invoice"
	SubjectRole        Subject = "role"
	SubjectPermission  Subject = "permission"
)

// Valid 检查主体类型是否在目录中
func (s Subject) Valid() bool {
	switch s {
	case SubjectAll, SubjectBranch, SubjectStaff, SubjectStudent, SubjectTutor,
		SubjectRoom, SubjectBooking, SubjectInscription, SubjectDebt,
		SubjectPayment, SubjectInvoice, SubjectRole, SubjectPermission:
		return true
	}
	return false
}

// Operator 条件操作符类型
type Operator string

const (
	OperatorEqual              Operator = "eq"      // 等于
	OperatorNotEqual           Operator = "ne"      // 不等于
	OperatorIn                 Operator = "in"      // 在列表中
	OperatorNotIn              Operator = "nin"     // 不在列表中
	OperatorGreaterThan        Operator = "gt"      // 大于
	OperatorGreaterThanOrEqual Operator = "gte"     // 大于等于
	OperatorLessThan           Operator = "lt"      // 小于
	OperatorLessThanOrEqual    Operator = "lte"     // 小于等于
	OperatorBetween            Operator = "between" // 闭区间
)

// Valid 检查操作符是否在目录中
func (o Operator) Valid() bool {
	switch o {
	case OperatorEqual, OperatorNotEqual, OperatorIn, OperatorNotIn,
		OperatorGreaterThan, OperatorGreaterThanOrEqual,
		OperatorLessThan, OperatorLessThanOrEqual, OperatorBetween:
		return true
	}
	return false
}

// Permission 权限实体，挂在角色下；条件为合取（全部满足才适用）
type Permission struct {
	ID         string                `gorm:"type:uuid;primary_key" json:"id"`
	RoleID     string                `gorm:"type:uuid;not null;uniqueIndex:idx_role_action_subject,priority:1" json:"role_id"`
	Action     Action                `gorm:"type:varchar(20);not null;uniqueIndex:idx_role_action_subject,priority:2" json:"action"`
	Subject    Subject               `gorm:"type:varchar(50);not null;uniqueIndex:idx_role_action_subject,priority:3" json:"subject"`
	Inverted   bool                  `gorm:"type:boolean;default:false" json:"inverted"`       // 为true时表示显式拒绝
	Reason     string                `gorm:"type:varchar(500)" json:"reason"`                  // 拒绝时返回的原因说明
	Active     bool                  `gorm:"type:boolean;default:true" json:"active"`          // 软禁用标志
	Conditions []PermissionCondition `gorm:"foreignKey:PermissionID" json:"conditions"`        // 权限条件
	Role       *Role                 `gorm:"foreignKey:RoleID" json:"-"`
	CreatedAt  time.Time             `json:"created_at"`
	UpdatedAt  time.Time             `json:"updated_at"`
}

// PermissionCondition 权限条件实体
type PermissionCondition struct {
	ID           string      `gorm:"type:uuid;primary_key" json:"id"`
	PermissionID string      `gorm:"type:uuid;not null" json:"permission_id"`
	Field        string      `gorm:"type:varchar(100);not null" json:"field"`   // 字段名；hour/year/gestion为动态字段
	Operator     Operator    `gorm:"type:varchar(20);not null" json:"operator"` // 操作符
	Value        string      `gorm:"type:text;not null" json:"value"`           // 值，JSON字面量或带{{placeholder}}的模板
	Permission   *Permission `gorm:"foreignKey:PermissionID" json:"-"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// BeforeCreate GORM的钩子，在创建记录前自动生成UUID
func (p *Permission) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// BeforeCreate GORM的钩子，在创建记录前自动生成UUID
func (c *PermissionCondition) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// TableName 指定表名
func (Permission) TableName() string {
	return "permissions"
}

// TableName 指定表名
func (PermissionCondition) TableName() string {
	return "permission_conditions"
}
