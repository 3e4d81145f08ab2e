package service

import (
	"context"
	"errors"
	"testing"

	"github.com/moisicmo/dinokids-serve-sub000/internal/model"
)

func newRoomFixture() (RoomService, *fakeBookingRepo) {
	roomRepo := &fakeRoomRepo{rooms: map[string]*model.Room{
		"room-1": {ID: "room-1", BranchID: "branch-1", Name: "A-101", Capacity: 12},
	}}
	bookingRepo := &fakeBookingRepo{}
	studentRepo := &fakeStudentRepo{students: map[string]*model.Student{
		"student-1": {ID: "student-1", BranchID: "branch-1"},
	}}
	branchRepo := &fakeBranchRepo{branches: map[string]*model.Branch{
		"branch-1": {ID: "branch-1", Name: "中心分校"},
	}}
	return NewRoomService(roomRepo, bookingRepo, studentRepo, branchRepo), bookingRepo
}

func TestCreateBookingValidation(t *testing.T) {
	svc, _ := newRoomFixture()

	tests := []struct {
		name    string
		booking model.Booking
		wantErr error
	}{
		{"inverted range", model.Booking{RoomID: "room-1", StudentID: "student-1", Weekday: 1, StartHour: 18, EndHour: 8, Gestion: "2026"}, ErrInvalidTimeRange},
		{"zero length range", model.Booking{RoomID: "room-1", StudentID: "student-1", Weekday: 1, StartHour: 8, EndHour: 8, Gestion: "2026"}, ErrInvalidTimeRange},
		{"bad weekday", model.Booking{RoomID: "room-1", StudentID: "student-1", Weekday: 7, StartHour: 8, EndHour: 10, Gestion: "2026"}, ErrInvalidTimeRange},
		{"unknown room", model.Booking{RoomID: "ghost", StudentID: "student-1", Weekday: 1, StartHour: 8, EndHour: 10, Gestion: "2026"}, ErrRoomNotFound},
		{"unknown student", model.Booking{RoomID: "room-1", StudentID: "ghost", Weekday: 1, StartHour: 8, EndHour: 10, Gestion: "2026"}, ErrStudentNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.booking
			if err := svc.CreateBooking(context.Background(), &b); !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateBooking() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateBookingConflict(t *testing.T) {
	svc, bookingRepo := newRoomFixture()

	first := &model.Booking{ID: "booking-1", RoomID: "room-1", StudentID: "student-1", Weekday: 1, StartHour: 8, EndHour: 10, Gestion: "2026"}
	if err := svc.CreateBooking(context.Background(), first); err != nil {
		t.Fatalf("CreateBooking() error = %v", err)
	}

	tests := []struct {
		name       string
		start, end int
		weekday    int
		gestion    string
		wantErr    error
	}{
		{"overlapping start", 9, 11, 1, "2026", ErrBookingConflict},
		{"fully contained", 8, 9, 1, "2026", ErrBookingConflict},
		{"containing", 7, 12, 1, "2026", ErrBookingConflict},
		{"adjacent after is free", 10, 12, 1, "2026", nil},
		{"adjacent before is free", 6, 8, 1, "2026", nil},
		{"other weekday is free", 8, 10, 2, "2026", nil},
		{"other gestion is free", 8, 10, 1, "2027", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := len(bookingRepo.bookings)
			b := &model.Booking{RoomID: "room-1", StudentID: "student-1", Weekday: tt.weekday, StartHour: tt.start, EndHour: tt.end, Gestion: tt.gestion}
			err := svc.CreateBooking(context.Background(), b)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateBooking() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil && len(bookingRepo.bookings) != before {
				t.Error("conflicting booking must not be persisted")
			}
		})
	}
}
