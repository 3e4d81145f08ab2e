package service

import (
	"context"

	"github.com/moisicmo/dinokids-serve-sub000/internal/model"
	"github.com/moisicmo/dinokids-serve-sub000/pkg/ability"
)

// 基于内存映射的仓储假实现，覆盖服务层测试需要的路径

type fakeStaffRepo struct {
	staffs map[string]*model.Staff
}

func (f *fakeStaffRepo) Create(ctx context.Context, staff *model.Staff) error {
	f.staffs[staff.ID] = staff
	return nil
}

func (f *fakeStaffRepo) GetByID(ctx context.Context, id string) (*model.Staff, error) {
	return f.staffs[id], nil
}

func (f *fakeStaffRepo) GetByEmail(ctx context.Context, email string) (*model.Staff, error) {
	for _, s := range f.staffs {
		if s.Email == email {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeStaffRepo) GetWithAccess(ctx context.Context, id string) (*model.Staff, error) {
	return f.staffs[id], nil
}

func (f *fakeStaffRepo) Update(ctx context.Context, staff *model.Staff) error {
	f.staffs[staff.ID] = staff
	return nil
}

func (f *fakeStaffRepo) Delete(ctx context.Context, id string) error {
	delete(f.staffs, id)
	return nil
}

func (f *fakeStaffRepo) List(ctx context.Context, filter ability.ListFilter, offset, limit int) ([]model.Staff, int64, error) {
	return nil, 0, nil
}

func (f *fakeStaffRepo) ReplaceBranches(ctx context.Context, staff *model.Staff, branches []model.Branch) error {
	staff.Branches = branches
	return nil
}

type fakePermissionRepo struct {
	permissions []model.Permission
}

func (f *fakePermissionRepo) Create(ctx context.Context, permission *model.Permission) error {
	f.permissions = append(f.permissions, *permission)
	return nil
}

func (f *fakePermissionRepo) GetByID(ctx context.Context, id string) (*model.Permission, error) {
	for i := range f.permissions {
		if f.permissions[i].ID == id {
			return &f.permissions[i], nil
		}
	}
	return nil, nil
}

func (f *fakePermissionRepo) GetByActionAndSubject(ctx context.Context, roleID string, action model.Action, subject model.Subject) (*model.Permission, error) {
	for i := range f.permissions {
		p := &f.permissions[i]
		if p.RoleID == roleID && p.Action == action && p.Subject == subject {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePermissionRepo) Update(ctx context.Context, permission *model.Permission) error {
	return nil
}

func (f *fakePermissionRepo) Delete(ctx context.Context, id string) error {
	return nil
}

func (f *fakePermissionRepo) List(ctx context.Context, roleID string, offset, limit int) ([]model.Permission, int64, error) {
	return f.permissions, int64(len(f.permissions)), nil
}

func (f *fakePermissionRepo) ListActiveByRole(ctx context.Context, roleID string) ([]model.Permission, error) {
	active := make([]model.Permission, 0, len(f.permissions))
	for _, p := range f.permissions {
		if p.RoleID == roleID && p.Active {
			active = append(active, p)
		}
	}
	return active, nil
}

func (f *fakePermissionRepo) ReplaceConditions(ctx context.Context, permissionID string, conditions []model.PermissionCondition) error {
	return nil
}

type fakeStudentRepo struct {
	students map[string]*model.Student
}

func (f *fakeStudentRepo) Create(ctx context.Context, student *model.Student) error {
	f.students[student.ID] = student
	return nil
}

func (f *fakeStudentRepo) GetByID(ctx context.Context, id string) (*model.Student, error) {
	return f.students[id], nil
}

func (f *fakeStudentRepo) GetByCode(ctx context.Context, code string) (*model.Student, error) {
	for _, s := range f.students {
		if s.Code == code {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeStudentRepo) Update(ctx context.Context, student *model.Student) error {
	f.students[student.ID] = student
	return nil
}

func (f *fakeStudentRepo) Delete(ctx context.Context, id string) error {
	delete(f.students, id)
	return nil
}

func (f *fakeStudentRepo) List(ctx context.Context, filter ability.ListFilter, offset, limit int) ([]model.Student, int64, error) {
	return nil, 0, nil
}

type fakeBranchRepo struct {
	branches map[string]*model.Branch
}

func (f *fakeBranchRepo) Create(ctx context.Context, branch *model.Branch) error {
	f.branches[branch.ID] = branch
	return nil
}

func (f *fakeBranchRepo) GetByID(ctx context.Context, id string) (*model.Branch, error) {
	return f.branches[id], nil
}

func (f *fakeBranchRepo) GetByName(ctx context.Context, name string) (*model.Branch, error) {
	for _, b := range f.branches {
		if b.Name == name {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeBranchRepo) Update(ctx context.Context, branch *model.Branch) error {
	f.branches[branch.ID] = branch
	return nil
}

func (f *fakeBranchRepo) Delete(ctx context.Context, id string) error {
	delete(f.branches, id)
	return nil
}

func (f *fakeBranchRepo) List(ctx context.Context, filter ability.ListFilter, offset, limit int) ([]model.Branch, int64, error) {
	return nil, 0, nil
}

type fakeRoomRepo struct {
	rooms map[string]*model.Room
}

func (f *fakeRoomRepo) Create(ctx context.Context, room *model.Room) error {
	f.rooms[room.ID] = room
	return nil
}

func (f *fakeRoomRepo) GetByID(ctx context.Context, id string) (*model.Room, error) {
	return f.rooms[id], nil
}

func (f *fakeRoomRepo) GetByName(ctx context.Context, branchID, name string) (*model.Room, error) {
	for _, r := range f.rooms {
		if r.BranchID == branchID && r.Name == name {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeRoomRepo) Update(ctx context.Context, room *model.Room) error {
	f.rooms[room.ID] = room
	return nil
}

func (f *fakeRoomRepo) Delete(ctx context.Context, id string) error {
	delete(f.rooms, id)
	return nil
}

func (f *fakeRoomRepo) List(ctx context.Context, filter ability.ListFilter, offset, limit int) ([]model.Room, int64, error) {
	return nil, 0, nil
}

type fakeBookingRepo struct {
	bookings []*model.Booking
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *model.Booking) error {
	f.bookings = append(f.bookings, booking)
	return nil
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	for _, b := range f.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingRepo) Update(ctx context.Context, booking *model.Booking) error {
	return nil
}

func (f *fakeBookingRepo) Delete(ctx context.Context, id string) error {
	for i, b := range f.bookings {
		if b.ID == id {
			f.bookings = append(f.bookings[:i], f.bookings[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeBookingRepo) List(ctx context.Context, filter ability.ListFilter, offset, limit int) ([]model.Booking, int64, error) {
	return nil, 0, nil
}

func (f *fakeBookingRepo) ListOverlaps(ctx context.Context, roomID string, weekday, startHour, endHour int, gestion, excludeID string) ([]model.Booking, error) {
	var overlaps []model.Booking
	for _, b := range f.bookings {
		if b.ID == excludeID || b.RoomID != roomID || b.Weekday != weekday || b.Gestion != gestion {
			continue
		}
		if b.StartHour < endHour && b.EndHour > startHour {
			overlaps = append(overlaps, *b)
		}
	}
	return overlaps, nil
}

type fakeDebtRepo struct {
	debts map[string]*model.Debt
}

func (f *fakeDebtRepo) Create(ctx context.Context, debt *model.Debt) error {
	f.debts[debt.ID] = debt
	return nil
}

func (f *fakeDebtRepo) GetByID(ctx context.Context, id string) (*model.Debt, error) {
	return f.debts[id], nil
}

func (f *fakeDebtRepo) Update(ctx context.Context, debt *model.Debt) error {
	f.debts[debt.ID] = debt
	return nil
}

func (f *fakeDebtRepo) List(ctx context.Context, filter ability.ListFilter, offset, limit int) ([]model.Debt, int64, error) {
	return nil, 0, nil
}

func (f *fakeDebtRepo) RegisterPayment(ctx context.Context, debt *model.Debt, payment *model.Payment, invoice *model.Invoice) error {
	if payment.ID == "" {
		payment.ID = "payment-" + debt.ID
	}
	f.debts[debt.ID] = debt
	if invoice != nil {
		invoice.ID = "invoice-" + debt.ID
		invoice.PaymentID = payment.ID
	}
	return nil
}

type fakePaymentRepo struct{}

func (f *fakePaymentRepo) GetByID(ctx context.Context, id string) (*model.Payment, error) {
	return nil, nil
}

func (f *fakePaymentRepo) List(ctx context.Context, filter ability.ListFilter, offset, limit int) ([]model.Payment, int64, error) {
	return nil, 0, nil
}

func (f *fakePaymentRepo) ListByDebt(ctx context.Context, debtID string) ([]model.Payment, error) {
	return nil, nil
}

type fakeInvoiceRepo struct {
	count int64
}

func (f *fakeInvoiceRepo) GetByID(ctx context.Context, id string) (*model.Invoice, error) {
	return nil, nil
}

func (f *fakeInvoiceRepo) GetByNumber(ctx context.Context, number string) (*model.Invoice, error) {
	return nil, nil
}

func (f *fakeInvoiceRepo) List(ctx context.Context, filter ability.ListFilter, offset, limit int) ([]model.Invoice, int64, error) {
	return nil, 0, nil
}

func (f *fakeInvoiceRepo) NextNumber(ctx context.Context) (int64, error) {
	f.count++
	return f.count, nil
}

type fakeInvoiceDocumentRepo struct {
	docs map[string]*model.InvoiceDocument
}

func (f *fakeInvoiceDocumentRepo) Save(ctx context.Context, doc *model.InvoiceDocument) error {
	f.docs[doc.InvoiceID] = doc
	return nil
}

func (f *fakeInvoiceDocumentRepo) GetByInvoiceID(ctx context.Context, invoiceID string) (*model.InvoiceDocument, error) {
	return f.docs[invoiceID], nil
}

type fakeInscriptionRepo struct {
	inscriptions map[string]*model.Inscription
	debts        []*model.Debt
}

func (f *fakeInscriptionRepo) CreateWithDebt(ctx context.Context, inscription *model.Inscription, debt *model.Debt) error {
	if inscription.ID == "" {
		inscription.ID = "inscription-" + inscription.StudentID
	}
	debt.InscriptionID = &inscription.ID
	f.inscriptions[inscription.ID] = inscription
	f.debts = append(f.debts, debt)
	return nil
}

func (f *fakeInscriptionRepo) GetByID(ctx context.Context, id string) (*model.Inscription, error) {
	return f.inscriptions[id], nil
}

func (f *fakeInscriptionRepo) GetByStudentAndGestion(ctx context.Context, studentID, gestion string) (*model.Inscription, error) {
	for _, ins := range f.inscriptions {
		if ins.StudentID == studentID && ins.Gestion == gestion {
			return ins, nil
		}
	}
	return nil, nil
}

func (f *fakeInscriptionRepo) Delete(ctx context.Context, id string) error {
	delete(f.inscriptions, id)
	return nil
}

func (f *fakeInscriptionRepo) List(ctx context.Context, filter ability.ListFilter, offset, limit int) ([]model.Inscription, int64, error) {
	return nil, 0, nil
}
