package boot

import (
	v1 "github.com/moisicmo/dinokids-serve-sub000/api/v1"
	"github.com/moisicmo/dinokids-serve-sub000/pkg/middleware"
	"github.com/moisicmo/dinokids-serve-sub000/pkg/router"

	"github.com/gin-gonic/gin"
)

// Handlers 包含所有HTTP处理器
type Handlers struct {
	AuthHandler        *v1.AuthHandler
	BranchHandler      *v1.BranchHandler
	StaffHandler       *v1.StaffHandler
	StudentHandler     *v1.StudentHandler
	RoomHandler        *v1.RoomHandler
	InscriptionHandler *v1.InscriptionHandler
	DebtHandler        *v1.DebtHandler
	RoleHandler        *v1.RoleHandler
	PermissionHandler  *v1.PermissionHandler
}

// InitHandlers 初始化所有HTTP处理器
func InitHandlers(services *Services) *Handlers {
	return &Handlers{
		AuthHandler:        v1.NewAuthHandler(services.AuthService),
		BranchHandler:      v1.NewBranchHandler(services.BranchService),
		StaffHandler:       v1.NewStaffHandler(services.StaffService),
		StudentHandler:     v1.NewStudentHandler(services.StudentService),
		RoomHandler:        v1.NewRoomHandler(services.RoomService),
		InscriptionHandler: v1.NewInscriptionHandler(services.InscriptionService),
		DebtHandler:        v1.NewDebtHandler(services.DebtService),
		RoleHandler:        v1.NewRoleHandler(services.RoleService),
		PermissionHandler:  v1.NewPermissionHandler(services.PermissionService),
	}
}

// InitRouter 初始化路由
func InitRouter(engine *gin.Engine, services *Services, handlers *Handlers) *router.Router {
	authMiddleware := middleware.NewAuthMiddleware(services.AuthService)
	guard := middleware.NewGuard(services.AuthorizationService)

	r := router.NewRouter(
		engine,
		authMiddleware,
		guard,
		handlers.AuthHandler,
		handlers.BranchHandler,
		handlers.StaffHandler,
		handlers.StudentHandler,
		handlers.RoomHandler,
		handlers.InscriptionHandler,
		handlers.DebtHandler,
		handlers.RoleHandler,
		handlers.PermissionHandler,
	)
	r.RegisterRoutes()
	return r
}
