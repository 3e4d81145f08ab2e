package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Staff 员工实体；角色与分校分配是运行时上下文中roleId/branchIds的来源
type Staff struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	Email     string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"` // 登录邮箱
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`                 // bcrypt散列
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`              // 名
	LastName  string    `gorm:"type:varchar(100);not null" json:"last_name"`         // 姓
	Phone     string    `gorm:"type:varchar(30)" json:"phone"`                       // 联系电话
	RoleID    string    `gorm:"type:uuid;not null" json:"role_id"`                   // 所属角色
	Role      *Role     `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	Branches  []Branch  `gorm:"many2many:staff_branches;" json:"branches,omitempty"` // 分配的分校集
	Active    bool      `gorm:"type:boolean;default:true" json:"active"`             // 是否在职
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BranchIDs 返回员工分配的分校ID列表
func (s *Staff) BranchIDs() []string {
	ids := make([]string, len(s.Branches))
	for i, b := range s.Branches {
		ids[i] = b.ID
	}
	return ids
}

// BeforeCreate GORM的钩子，在创建记录前自动生成UUID
func (s *Staff) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

// TableName 指定表名
func (Staff) TableName() string {
	return "staffs"
}
