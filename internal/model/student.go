package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Student 学生实体
type Student struct {
	ID        string     `gorm:"type:uuid;primary_key" json:"id"`
	Code      string     `gorm:"type:varchar(30);not null;uniqueIndex" json:"code"` // 学号
	Name      string     `gorm:"type:varchar(100);not null" json:"name"`            // 名
	LastName  string     `gorm:"type:varchar(100);not null" json:"last_name"`       // 姓
	Birthdate *time.Time `json:"birthdate"`                                         // 出生日期
	BranchID  string     `gorm:"type:uuid;not null" json:"branch_id"`               // 所属分校
	Branch    *Branch    `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	TutorID   *string    `gorm:"type:uuid" json:"tutor_id"` // 监护人，可为空
	Tutor     *Tutor     `gorm:"foreignKey:TutorID" json:"tutor,omitempty"`
	Active    bool       `gorm:"type:boolean;default:true" json:"active"` // 是否在读
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Tutor 监护人实体
type Tutor struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`      // 名
	LastName  string    `gorm:"type:varchar(100);not null" json:"last_name"` // 姓
	Phone     string    `gorm:"type:varchar(30)" json:"phone"`               // 联系电话
	Email     string    `gorm:"type:varchar(255)" json:"email"`              // 邮箱
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate GORM的钩子，在创建记录前自动生成UUID
func (s *Student) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

// BeforeCreate GORM的钩子，在创建记录前自动生成UUID
func (t *Tutor) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

// TableName 指定表名
func (Student) TableName() string {
	return "students"
}

// TableName 指定表名
func (Tutor) TableName() string {
	return "tutors"
}
