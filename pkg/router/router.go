package router

import (
	"net/http"

	v1 "github.com/moisicmo/dinokids-serve-sub000/api/v1"
	"github.com/moisicmo/dinokids-serve-sub000/pkg/middleware"

	"github.com/gin-gonic/gin"
)

// Router 路由管理器
type Router struct {
	engine             *gin.Engine
	authMiddleware     *middleware.AuthMiddleware
	guard              *middleware.Guard
	authHandler        *v1.AuthHandler
	branchHandler      *v1.BranchHandler
	staffHandler       *v1.StaffHandler
	studentHandler     *v1.StudentHandler
	roomHandler        *v1.RoomHandler
	inscriptionHandler *v1.InscriptionHandler
	debtHandler        *v1.DebtHandler
	roleHandler        *v1.RoleHandler
	permissionHandler  *v1.PermissionHandler
}

// NewRouter 创建路由管理器实例
func NewRouter(
	engine *gin.Engine,
	authMiddleware *middleware.AuthMiddleware,
	guard *middleware.Guard,
	authHandler *v1.AuthHandler,
	branchHandler *v1.BranchHandler,
	staffHandler *v1.StaffHandler,
	studentHandler *v1.StudentHandler,
	roomHandler *v1.RoomHandler,
	inscriptionHandler *v1.InscriptionHandler,
	debtHandler *v1.DebtHandler,
	roleHandler *v1.RoleHandler,
	permissionHandler *v1.PermissionHandler,
) *Router {
	return &Router{
		engine:             engine,
		authMiddleware:     authMiddleware,
		guard:              guard,
		authHandler:        authHandler,
		branchHandler:      branchHandler,
		staffHandler:       staffHandler,
		studentHandler:     studentHandler,
		roomHandler:        roomHandler,
		inscriptionHandler: inscriptionHandler,
		debtHandler:        debtHandler,
		roleHandler:        roleHandler,
		permissionHandler:  permissionHandler,
	}
}

// RegisterRoutes 注册所有路由
func (r *Router) RegisterRoutes() {
	// 健康检查
	r.engine.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	// API v1
	api := r.engine.Group("/api/v1")
	{
		r.authHandler.Register(api, r.authMiddleware)
		r.branchHandler.Register(api, r.authMiddleware, r.guard)
		r.staffHandler.Register(api, r.authMiddleware, r.guard)
		r.studentHandler.Register(api, r.authMiddleware, r.guard)
		r.roomHandler.Register(api, r.authMiddleware, r.guard)
		r.inscriptionHandler.Register(api, r.authMiddleware, r.guard)
		r.debtHandler.Register(api, r.authMiddleware, r.guard)
		r.roleHandler.Register(api, r.authMiddleware, r.guard)
		r.permissionHandler.Register(api, r.authMiddleware, r.guard)
	}
}
