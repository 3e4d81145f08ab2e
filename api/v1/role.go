package v1

import (
	"net/http"

	"github.com/moisicmo/dinokids-serve-sub000/internal/model"
	"github.com/moisicmo/dinokids-serve-sub000/internal/service"
	"github.com/moisicmo/dinokids-serve-sub000/pkg/api"
	"github.com/moisicmo/dinokids-serve-sub000/pkg/middleware"

	"github.com/gin-gonic/gin"
)

// RoleHandler 角色处理器
type RoleHandler struct {
	roleService service.RoleService
}

// NewRoleHandler 创建角色处理器实例
func NewRoleHandler(roleService service.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

// Register 注册路由
func (h *RoleHandler) Register(r *gin.RouterGroup, authMiddleware *middleware.AuthMiddleware, guard *middleware.Guard) {
	roles := r.Group("/roles", authMiddleware.HandleAuth())
	{
		roles.POST("",
			guard.Check(middleware.Requirement{Action: model.ActionCreate, Subject: model.SubjectRole}),
			h.CreateRole)
		roles.GET("/:id",
			guard.Check(middleware.Requirement{Action: model.ActionRead, Subject: model.SubjectRole, Param: "id"}),
			h.GetRole)
		roles.PUT("/:id",
			guard.Check(middleware.Requirement{Action: model.ActionUpdate, Subject: model.SubjectRole, Param: "id"}),
			h.UpdateRole)
		roles.DELETE("/:id",
			guard.Check(middleware.Requirement{Action: model.ActionDelete, Subject: model.SubjectRole, Param: "id"}),
			h.DeleteRole)
		roles.GET("",
			guard.Check(middleware.Requirement{Action: model.ActionRead, Subject: model.SubjectRole}),
			h.ListRoles)
	}
}

// RoleRequest 角色请求
type RoleRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreateRole 创建角色
func (h *RoleHandler) CreateRole(c *gin.Context) {
	var req RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Error(c, http.StatusBadRequest, "参数错误", err)
		return
	}

	role := &model.Role{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := h.roleService.Create(c.Request.Context(), role); err != nil {
		if err == service.ErrRoleNameTaken {
			api.Error(c, http.StatusConflict, "角色名已存在", err)
			return
		}
		api.Error(c, http.StatusInternalServerError, "创建角色失败", err)
		return
	}

	api.Success(c, role)
}

// GetRole 获取角色及其权限集
func (h *RoleHandler) GetRole(c *gin.Context) {
	role, err := h.roleService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if err == service.ErrRoleNotFound {
			api.Error(c, http.StatusNotFound, "角色不存在", err)
			return
		}
		api.Error(c, http.StatusInternalServerError, "获取角色失败", err)
		return
	}

	api.Success(c, role)
}

// UpdateRole 更新角色
func (h *RoleHandler) UpdateRole(c *gin.Context) {
	var req RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Error(c, http.StatusBadRequest, "参数错误", err)
		return
	}

	role := &model.Role{
		ID:          c.Param("id"),
		Name:        req.Name,
		Description: req.Description,
	}

	if err := h.roleService.Update(c.Request.Context(), role); err != nil {
		switch err {
		case service.ErrRoleNotFound:
			api.Error(c, http.StatusNotFound, "角色不存在", err)
		case service.ErrRoleNameTaken:
			api.Error(c, http.StatusConflict, "角色名已存在", err)
		case service.ErrRoleIsSystem:
			api.Error(c, http.StatusForbidden, "系统角色不可修改", err)
		default:
			api.Error(c, http.StatusInternalServerError, "更新角色失败", err)
		}
		return
	}

	api.Success(c, role)
}

// DeleteRole 删除角色及其权限
func (h *RoleHandler) DeleteRole(c *gin.Context) {
	if err := h.roleService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		switch err {
		case service.ErrRoleNotFound:
			api.Error(c, http.StatusNotFound, "角色不存在", err)
		case service.ErrRoleIsSystem:
			api.Error(c, http.StatusForbidden, "系统角色不可删除", err)
		default:
			api.Error(c, http.StatusInternalServerError, "删除角色失败", err)
		}
		return
	}

	api.Success(c, gin.H{
		"message": "角色已删除",
		"role_id": c.Param("id"),
	})
}

// ListRoles 获取角色列表
func (h *RoleHandler) ListRoles(c *gin.Context) {
	offset, limit := parsePagination(c)
	roles, total, err := h.roleService.List(c.Request.Context(), offset, limit)
	if err != nil {
		api.Error(c, http.StatusInternalServerError, "获取角色列表失败", err)
		return
	}

	api.Success(c, gin.H{"items": roles, "total": total})
}
