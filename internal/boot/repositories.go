package boot

import (
	"github.com/moisicmo/dinokids-serve-sub000/internal/repository"
	"github.com/moisicmo/dinokids-serve-sub000/pkg/database"

	"gorm.io/gorm"
)

// Repositories 包含所有仓储实例
type Repositories struct {
	BranchRepo          repository.BranchRepository
	RoleRepo            repository.RoleRepository
	PermissionRepo      repository.PermissionRepository
	StaffRepo           repository.StaffRepository
	StudentRepo         repository.StudentRepository
	TutorRepo           repository.TutorRepository
	RoomRepo            repository.RoomRepository
	BookingRepo         repository.BookingRepository
	InscriptionRepo     repository.InscriptionRepository
	DebtRepo            repository.DebtRepository
	PaymentRepo         repository.PaymentRepository
	InvoiceRepo         repository.InvoiceRepository
	InvoiceDocumentRepo repository.InvoiceDocumentRepository
}

// InitRepositories 初始化所有仓储实例
func InitRepositories(db *gorm.DB, mongodb *database.MongoClient) *Repositories {
	return &Repositories{
		BranchRepo:          repository.NewBranchRepository(db),
		RoleRepo:            repository.NewRoleRepository(db),
		PermissionRepo:      repository.NewPermissionRepository(db),
		StaffRepo:           repository.NewStaffRepository(db),
		StudentRepo:         repository.NewStudentRepository(db),
		TutorRepo:           repository.NewTutorRepository(db),
		RoomRepo:            repository.NewRoomRepository(db),
		BookingRepo:         repository.NewBookingRepository(db),
		InscriptionRepo:     repository.NewInscriptionRepository(db),
		DebtRepo:            repository.NewDebtRepository(db),
		PaymentRepo:         repository.NewPaymentRepository(db),
		InvoiceRepo:         repository.NewInvoiceRepository(db),
		InvoiceDocumentRepo: repository.NewInvoiceDocumentRepository(mongodb),
	}
}
