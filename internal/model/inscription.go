package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Inscription 报名实体，学生在某分校某学年期间的注册记录
type Inscription struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	StudentID string    `gorm:"type:uuid;not null;uniqueIndex:idx_student_gestion,priority:1" json:"student_id"`
	BranchID  string    `gorm:"type:uuid;not null" json:"branch_id"`
	Gestion   string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_student_gestion,priority:2" json:"gestion"` // 学年期间
	Price     float64   `gorm:"type:numeric(12,2);not null" json:"price"`                                            // 报名费
	StaffID   string    `gorm:"type:uuid;not null" json:"staff_id"`                                                  // 经办员工
	Student   *Student  `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Branch    *Branch   `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate GORM的钩子，在创建记录前自动生成UUID
func (i *Inscription) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return nil
}

// TableName 指定表名
func (Inscription) TableName() string {
	return "inscriptions"
}
