package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role 角色实体
type Role struct {
	ID          string       `gorm:"type:uuid;primary_key" json:"id"`
	Name        string       `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"` // 角色名称，全局唯一
	Description string       `gorm:"type:text" json:"description"`                       // 角色描述
	IsSystem    bool         `gorm:"type:boolean;default:false" json:"is_system"`        // 是否为系统角色
	Permissions []Permission `gorm:"foreignKey:RoleID" json:"permissions"`               // 角色的权限集
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// BeforeCreate GORM的钩子，在创建记录前自动生成UUID
func (r *Role) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// TableName 指定表名
func (Role) TableName() string {
	return "roles"
}
