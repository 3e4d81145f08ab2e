package boot

import (
	"github.com/moisicmo/dinokids-serve-sub000/internal/service"
	"github.com/moisicmo/dinokids-serve-sub000/pkg/config"
	"github.com/moisicmo/dinokids-serve-sub000/pkg/redis"
)

// Services 包含所有服务实例
type Services struct {
	AuthService          service.AuthService
	AuthorizationService service.AuthorizationService
	BranchService        service.BranchService
	StaffService         service.StaffService
	StudentService       service.StudentService
	RoomService          service.RoomService
	InscriptionService   service.InscriptionService
	DebtService          service.DebtService
	RoleService          service.RoleService
	PermissionService    service.PermissionService
}

// InitServices 初始化所有服务实例
func InitServices(cfg *config.Config, repos *Repositories, redisClient *redis.Client) *Services {
	// 授权决策记录到结构化日志
	observer := service.NewLogObserver()

	authService := service.NewAuthService(repos.StaffRepo, redisClient, cfg.JWT)
	authorizationService := service.NewAuthorizationService(
		repos.StaffRepo,
		repos.PermissionRepo,
		repos.BranchRepo,
		repos.StudentRepo,
		repos.TutorRepo,
		repos.RoomRepo,
		repos.BookingRepo,
		repos.InscriptionRepo,
		repos.DebtRepo,
		repos.PaymentRepo,
		repos.InvoiceRepo,
		repos.RoleRepo,
		observer,
	)

	branchService := service.NewBranchService(repos.BranchRepo)
	staffService := service.NewStaffService(repos.StaffRepo, repos.RoleRepo, repos.BranchRepo)
	studentService := service.NewStudentService(repos.StudentRepo, repos.TutorRepo, repos.BranchRepo)
	roomService := service.NewRoomService(repos.RoomRepo, repos.BookingRepo, repos.StudentRepo, repos.BranchRepo)
	inscriptionService := service.NewInscriptionService(repos.InscriptionRepo, repos.StudentRepo, repos.BranchRepo)
	debtService := service.NewDebtService(
		repos.DebtRepo,
		repos.PaymentRepo,
		repos.InvoiceRepo,
		repos.InvoiceDocumentRepo,
		repos.StudentRepo,
	)
	roleService := service.NewRoleService(repos.RoleRepo)
	permissionService := service.NewPermissionService(repos.PermissionRepo, repos.RoleRepo)

	return &Services{
		AuthService:          authService,
		AuthorizationService: authorizationService,
		BranchService:        branchService,
		StaffService:         staffService,
		StudentService:       studentService,
		RoomService:          roomService,
		InscriptionService:   inscriptionService,
		DebtService:          debtService,
		RoleService:          roleService,
		PermissionService:    permissionService,
	}
}
