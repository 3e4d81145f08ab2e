package service

import (
	"context"
	"errors"

	"github.com/moisicmo/dinokids-serve-sub000/internal/model"
	"github.com/moisicmo/dinokids-serve-sub000/internal/repository"
	"github.com/moisicmo/dinokids-serve-sub000/pkg/ability"
)

var (
	// ErrRoomNotFound 教室不存在
	ErrRoomNotFound = errors.New("教室不存在")
	// ErrRoomNameExists 教室名称已存在
	ErrRoomNameExists = errors.New("教室名称已存在")
	// ErrBookingNotFound 预约不存在
	ErrBookingNotFound = errors.New("预约不存在")
	// ErrBookingConflict 预约时段与已有排课冲突
	ErrBookingConflict = errors.New("预约时段与已有排课冲突")
	// ErrInvalidTimeRange 无效的时段
	ErrInvalidTimeRange = errors.New("无效的时段")
)

// RoomService 教室与排课服务接口
type RoomService interface {
	Create(ctx context.Context, room *model.Room) error
	GetByID(ctx context.Context, id string) (*model.Room, error)
	Update(ctx context.Context, room *model.Room) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ability.ListFilter, offset, limit int) ([]model.Room, int64, error)

	// 排课预约
	CreateBooking(ctx context.Context, booking *model.Booking) error
	GetBooking(ctx context.Context, id string) (*model.Booking, error)
	DeleteBooking(ctx context.Context, id string) error
	ListBookings(ctx context.Context, filter ability.ListFilter, offset, limit int) ([]model.Booking, int64, error)
}

// roomService 教室与排课服务实现
type roomService struct {
	roomRepo    repository.RoomRepository
	bookingRepo repository.BookingRepository
	studentRepo repository.StudentRepository
	branchRepo  repository.BranchRepository
}

// NewRoomService 创建教室与排课服务实例
func NewRoomService(
	roomRepo repository.RoomRepository,
	bookingRepo repository.BookingRepository,
	studentRepo repository.StudentRepository,
	branchRepo repository.BranchRepository,
) RoomService {
	return &roomService{
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
		studentRepo: studentRepo,
		branchRepo:  branchRepo,
	}
}

// Create 创建教室
func (s *roomService) Create(ctx context.Context, room *model.Room) error {
	branch, err := s.branchRepo.GetByID(ctx, room.BranchID)
	if err != nil {
		return err
	}
	if branch == nil {
		return ErrBranchNotFound
	}

	existing, err := s.roomRepo.GetByName(ctx, room.BranchID, room.Name)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrRoomNameExists
	}

	return s.roomRepo.Create(ctx, room)
}

// GetByID 获取教室
func (s *roomService) GetByID(ctx context.Context, id string) (*model.Room, error) {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

// Update 更新教室
func (s *roomService) Update(ctx context.Context, room *model.Room) error {
	existing, err := s.roomRepo.GetByID(ctx, room.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrRoomNotFound
	}

	// 检查新名称是否与同分校其他教室冲突
	if room.Name != existing.Name {
		nameExists, err := s.roomRepo.GetByName(ctx, room.BranchID, room.Name)
		if err != nil {
			return err
		}
		if nameExists != nil && nameExists.ID != room.ID {
			return ErrRoomNameExists
		}
	}

	return s.roomRepo.Update(ctx, room)
}

// Delete 删除教室
func (s *roomService) Delete(ctx context.Context, id string) error {
	existing, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrRoomNotFound
	}

	return s.roomRepo.Delete(ctx, id)
}

// List 获取教室列表
func (s *roomService) List(ctx context.Context, filter ability.ListFilter, offset, limit int) ([]model.Room, int64, error) {
	return s.roomRepo.List(ctx, filter, offset, limit)
}

// CreateBooking 创建排课预约，检测时段冲突
func (s *roomService) CreateBooking(ctx context.Context, booking *model.Booking) error {
	if booking.StartHour >= booking.EndHour || booking.Weekday < 0 || booking.Weekday > 6 {
		return ErrInvalidTimeRange
	}

	room, err := s.roomRepo.GetByID(ctx, booking.RoomID)
	if err != nil {
		return err
	}
	if room == nil {
		return ErrRoomNotFound
	}

	student, err := s.studentRepo.GetByID(ctx, booking.StudentID)
	if err != nil {
		return err
	}
	if student == nil {
		return ErrStudentNotFound
	}

	overlaps, err := s.bookingRepo.ListOverlaps(ctx, booking.RoomID, booking.Weekday, booking.StartHour, booking.EndHour, booking.Gestion, "")
	if err != nil {
		return err
	}
	if len(overlaps) > 0 {
		return ErrBookingConflict
	}

	return s.bookingRepo.Create(ctx, booking)
}

// GetBooking 获取预约
func (s *roomService) GetBooking(ctx context.Context, id string) (*model.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}

// DeleteBooking 删除预约
func (s *roomService) DeleteBooking(ctx context.Context, id string) error {
	existing, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrBookingNotFound
	}

	return s.bookingRepo.Delete(ctx, id)
}

// ListBookings 获取预约列表
func (s *roomService) ListBookings(ctx context.Context, filter ability.ListFilter, offset, limit int) ([]model.Booking, int64, error) {
	return s.bookingRepo.List(ctx, filter, offset, limit)
}
