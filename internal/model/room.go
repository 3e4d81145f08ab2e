package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Room 教室实体
type Room struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	BranchID  string    `gorm:"type:uuid;not null;uniqueIndex:idx_branch_room_name,priority:1" json:"branch_id"` // 所属分校
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_branch_room_name,priority:2" json:"name"`
	Capacity  int       `gorm:"type:int;default:0" json:"capacity"` // 容纳人数
	Branch    *Branch   `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Booking 排课预约实体，把学生安排到教室的某个时段
type Booking struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	RoomID    string    `gorm:"type:uuid;not null" json:"room_id"`
	StudentID string    `gorm:"type:uuid;not null" json:"student_id"`
	Weekday   int       `gorm:"type:int;not null" json:"weekday"`         // 0=周日 ... 6=周六
	StartHour int       `gorm:"type:int;not null" json:"start_hour"`      // 起始小时（含）
	EndHour   int       `gorm:"type:int;not null" json:"end_hour"`        // 结束小时（不含）
	Gestion   string    `gorm:"type:varchar(20);not null" json:"gestion"` // 学年期间，如"2025-II"
	Room      *Room     `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Student   *Student  `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate GORM的钩子，在创建记录前自动生成UUID
func (r *Room) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// BeforeCreate GORM的钩子，在创建记录前自动生成UUID
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

// TableName 指定表名
func (Room) TableName() string {
	return "rooms"
}

// TableName 指定表名
func (Booking) TableName() string {
	return "bookings"
}
