package repository

import (
	"context"
	"errors"

	"github.com/moisicmo/dinokids-serve-sub000/internal/model"
	"github.com/moisicmo/dinokids-serve-sub000/pkg/ability"

	"gorm.io/gorm"
)

// RoomRepository 教室仓储接口
type RoomRepository interface {
	Create(ctx context.Context, room *model.Room) error
	GetByID(ctx context.Context, id string) (*model.Room, error)
	GetByName(ctx context.Context, branchID, name string) (*model.Room, error)
	Update(ctx context.Context, room *model.Room) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ability.ListFilter, offset, limit int) ([]model.Room, int64, error)
}

// roomRepository 教室仓储实现
type roomRepository struct {
	db *gorm.DB
}

// NewRoomRepository 创建教室仓储实例
func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepository{db: db}
}

// Create 创建教室
func (r *roomRepository) Create(ctx context.Context, room *model.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

// GetByID 通过ID获取教室
func (r *roomRepository) GetByID(ctx context.Context, id string) (*model.Room, error) {
	var room model.Room
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &room, nil
}

// GetByName 通过分校和名称获取教室
func (r *roomRepository) GetByName(ctx context.Context, branchID, name string) (*model.Room, error) {
	var room model.Room
	if err := r.db.WithContext(ctx).Where("branch_id = ? AND name = ?", branchID, name).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &room, nil
}

// Update 更新教室
func (r *roomRepository) Update(ctx context.Context, room *model.Room) error {
	return r.db.WithContext(ctx).Save(room).Error
}

// Delete 删除教室
func (r *roomRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Room{}, "id = ?", id).Error
}

// List 获取教室列表，施加ABAC投影过滤
func (r *roomRepository) List(ctx context.Context, filter ability.ListFilter, offset, limit int) ([]model.Room, int64, error) {
	var rooms []model.Room
	var total int64

	query := ApplyAbilityFilter(r.db.WithContext(ctx).Model(&model.Room{}), filter)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Offset(offset).Limit(limit).Find(&rooms).Error; err != nil {
		return nil, 0, err
	}

	return rooms, total, nil
}

// BookingRepository 排课预约仓储接口
type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	Update(ctx context.Context, booking *model.Booking) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ability.ListFilter, offset, limit int) ([]model.Booking, int64, error)
	// ListOverlaps 查询教室在某星期日与时段重叠的预约，排除指定ID
	ListOverlaps(ctx context.Context, roomID string, weekday, startHour, endHour int, gestion, excludeID string) ([]model.Booking, error)
}

// bookingRepository 排课预约仓储实现
type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository 创建排课预约仓储实例
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

// Create 创建预约
func (r *bookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

// GetByID 通过ID获取预约
func (r *bookingRepository) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	var booking model.Booking
	if err := r.db.WithContext(ctx).
		Preload("Room").
		Preload("Student").
		Where("id = ?", id).
		First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

// Update 更新预约
func (r *bookingRepository) Update(ctx context.Context, booking *model.Booking) error {
	return r.db.WithContext(ctx).Save(booking).Error
}

// Delete 删除预约
func (r *bookingRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Booking{}, "id = ?", id).Error
}

// List 获取预约列表，施加ABAC投影过滤
func (r *bookingRepository) List(ctx context.Context, filter ability.ListFilter, offset, limit int) ([]model.Booking, int64, error) {
	var bookings []model.Booking
	var total int64

	query := ApplyAbilityFilter(r.db.WithContext(ctx).Model(&model.Booking{}), filter)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Preload("Room").Preload("Student").Offset(offset).Limit(limit).Find(&bookings).Error; err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

// ListOverlaps 查询教室在某星期日与时段重叠的预约
func (r *bookingRepository) ListOverlaps(ctx context.Context, roomID string, weekday, startHour, endHour int, gestion, excludeID string) ([]model.Booking, error) {
	var bookings []model.Booking
	query := r.db.WithContext(ctx).
		Where("room_id = ? AND weekday = ? AND gestion = ?", roomID, weekday, gestion).
		Where("start_hour < ? AND end_hour > ?", endHour, startHour)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Find(&bookings).Error
	return bookings, err
}
