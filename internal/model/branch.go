package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Branch 分校实体
type Branch struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"` // 分校名称，全局唯一
	Address   string    `gorm:"type:varchar(255)" json:"address"`                   // 地址
	Phone     string    `gorm:"type:varchar(30)" json:"phone"`                      // 联系电话
	Active    bool      `gorm:"type:boolean;default:true" json:"active"`            // 是否营业中
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate GORM的钩子，在创建记录前自动生成UUID
func (b *Branch) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

// TableName 指定表名
func (Branch) TableName() string {
	return "branches"
}
