package v1

import (
	"net/http"

	"github.com/moisicmo/dinokids-serve-sub000/internal/model"
	"github.com/moisicmo/dinokids-serve-sub000/internal/service"
	"github.com/moisicmo/dinokids-serve-sub000/pkg/api"
	"github.com/moisicmo/dinokids-serve-sub000/pkg/middleware"

	"github.com/gin-gonic/gin"
)

// PermissionHandler 权限处理器
type PermissionHandler struct {
	permissionService service.PermissionService
}

// NewPermissionHandler 创建权限处理器实例
func NewPermissionHandler(permissionService service.PermissionService) *PermissionHandler {
	return &PermissionHandler{permissionService: permissionService}
}

// Register 注册路由
func (h *PermissionHandler) Register(r *gin.RouterGroup, authMiddleware *middleware.AuthMiddleware, guard *middleware.Guard) {
	permissions := r.Group("/permissions", authMiddleware.HandleAuth())
	{
		permissions.POST("",
			guard.Check(middleware.Requirement{Action: model.ActionCreate, Subject: model.SubjectPermission}),
			h.CreatePermission)
		permissions.GET("/:id",
			guard.Check(middleware.Requirement{Action: model.ActionRead, Subject: model.SubjectPermission, Param: "id"}),
			h.GetPermission)
		permissions.PUT("/:id",
			guard.Check(middleware.Requirement{Action: model.ActionUpdate, Subject: model.SubjectPermission, Param: "id"}),
			h.UpdatePermission)
		permissions.DELETE("/:id",
			guard.Check(middleware.Requirement{Action: model.ActionDelete, Subject: model.SubjectPermission, Param: "id"}),
			h.DeletePermission)
		permissions.GET("",
			guard.Check(middleware.Requirement{Action: model.ActionRead, Subject: model.SubjectPermission}),
			h.ListPermissions)

		// 条件整体重设
		permissions.PUT("/:id/conditions",
			guard.Check(middleware.Requirement{Action: model.ActionUpdate, Subject: model.SubjectPermission, Param: "id"}),
			h.ReplaceConditions)
	}
}

// ConditionRequest 权限条件请求项
type ConditionRequest struct {
	Field    string `json:"field" binding:"required"`
	Operator string `json:"operator" binding:"required"`
	Value    string `json:"value" binding:"required"`
}

// CreatePermissionRequest 创建权限请求
type CreatePermissionRequest struct {
	RoleID     string             `json:"role_id" binding:"required"`
	Action     string             `json:"action" binding:"required"`
	Subject    string             `json:"subject" binding:"required"`
	Inverted   bool               `json:"inverted"`
	Reason     string             `json:"reason"`
	Conditions []ConditionRequest `json:"conditions"`
}

// CreatePermission 创建权限
func (h *PermissionHandler) CreatePermission(c *gin.Context) {
	var req CreatePermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Error(c, http.StatusBadRequest, "参数错误", err)
		return
	}

	permission := &model.Permission{
		RoleID:     req.RoleID,
		Action:     model.Action(req.Action),
		Subject:    model.Subject(req.Subject),
		Inverted:   req.Inverted,
		Reason:     req.Reason,
		Active:     true,
		Conditions: toConditions(req.Conditions),
	}

	if err := h.permissionService.Create(c.Request.Context(), permission); err != nil {
		switch err {
		case service.ErrInvalidAction, service.ErrInvalidSubject:
			api.Error(c, http.StatusBadRequest, "参数错误", err)
		case service.ErrRoleNotFound:
			api.Error(c, http.StatusBadRequest, "角色不存在", err)
		case service.ErrPermissionExists:
			api.Error(c, http.StatusConflict, "该角色已有同操作同主体的权限", err)
		default:
			api.Error(c, http.StatusInternalServerError, "创建权限失败", err)
		}
		return
	}

	api.Success(c, permission)
}

// GetPermission 获取权限及其条件
func (h *PermissionHandler) GetPermission(c *gin.Context) {
	permission, err := h.permissionService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if err == service.ErrPermissionNotFound {
			api.Error(c, http.StatusNotFound, "权限不存在", err)
			return
		}
		api.Error(c, http.StatusInternalServerError, "获取权限失败", err)
		return
	}

	api.Success(c, permission)
}

// UpdatePermissionRequest 更新权限请求
type UpdatePermissionRequest struct {
	Action   string `json:"action" binding:"required"`
	Subject  string `json:"subject" binding:"required"`
	Inverted bool   `json:"inverted"`
	Reason   string `json:"reason"`
	Active   bool   `json:"active"`
}

// UpdatePermission 更新权限
func (h *PermissionHandler) UpdatePermission(c *gin.Context) {
	var req UpdatePermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Error(c, http.StatusBadRequest, "参数错误", err)
		return
	}

	permission := &model.Permission{
		ID:       c.Param("id"),
		Action:   model.Action(req.Action),
		Subject:  model.Subject(req.Subject),
		Inverted: req.Inverted,
		Reason:   req.Reason,
		Active:   req.Active,
	}

	if err := h.permissionService.Update(c.Request.Context(), permission); err != nil {
		switch err {
		case service.ErrInvalidAction, service.ErrInvalidSubject:
			api.Error(c, http.StatusBadRequest, "参数错误", err)
		case service.ErrPermissionNotFound:
			api.Error(c, http.StatusNotFound, "权限不存在", err)
		case service.ErrPermissionExists:
			api.Error(c, http.StatusConflict, "该角色已有同操作同主体的权限", err)
		default:
			api.Error(c, http.StatusInternalServerError, "更新权限失败", err)
		}
		return
	}

	api.Success(c, permission)
}

// DeletePermission 删除权限及其条件
func (h *PermissionHandler) DeletePermission(c *gin.Context) {
	if err := h.permissionService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if err == service.ErrPermissionNotFound {
			api.Error(c, http.StatusNotFound, "权限不存在", err)
			return
		}
		api.Error(c, http.StatusInternalServerError, "删除权限失败", err)
		return
	}

	api.Success(c, gin.H{
		"message":       "权限已删除",
		"permission_id": c.Param("id"),
	})
}

// ListPermissions 获取角色的权限列表
func (h *PermissionHandler) ListPermissions(c *gin.Context) {
	roleID := c.Query("role_id")
	if roleID == "" {
		api.Error(c, http.StatusBadRequest, "缺少 role_id 参数", nil)
		return
	}

	offset, limit := parsePagination(c)
	permissions, total, err := h.permissionService.List(c.Request.Context(), roleID, offset, limit)
	if err != nil {
		if err == service.ErrRoleNotFound {
			api.Error(c, http.StatusNotFound, "角色不存在", err)
			return
		}
		api.Error(c, http.StatusInternalServerError, "获取权限列表失败", err)
		return
	}

	api.Success(c, gin.H{"items": permissions, "total": total})
}

// ReplaceConditionsRequest 条件整体重设请求
type ReplaceConditionsRequest struct {
	Conditions []ConditionRequest `json:"conditions" binding:"required"`
}

// ReplaceConditions 整体重设权限的条件集
func (h *PermissionHandler) ReplaceConditions(c *gin.Context) {
	var req ReplaceConditionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Error(c, http.StatusBadRequest, "参数错误", err)
		return
	}

	if err := h.permissionService.ReplaceConditions(c.Request.Context(), c.Param("id"), toConditions(req.Conditions)); err != nil {
		if err == service.ErrPermissionNotFound {
			api.Error(c, http.StatusNotFound, "权限不存在", err)
			return
		}
		api.Error(c, http.StatusInternalServerError, "重设条件失败", err)
		return
	}

	api.Success(c, gin.H{
		"message":       "条件已重设",
		"permission_id": c.Param("id"),
	})
}

// toConditions 转换条件请求项
func toConditions(reqs []ConditionRequest) []model.PermissionCondition {
	conditions := make([]model.PermissionCondition, 0, len(reqs))
	for _, r := range reqs {
		conditions = append(conditions, model.PermissionCondition{
			Field:    r.Field,
			Operator: model.Operator(r.Operator),
			Value:    r.Value,
		})
	}
	return conditions
}
