package v1

import (
	"net/http"

	"github.com/moisicmo/dinokids-serve-sub000/internal/model"
	"github.com/moisicmo/dinokids-serve-sub000/internal/service"
	"github.com/moisicmo/dinokids-serve-sub000/pkg/middleware"

	"github.com/gin-gonic/gin"
)

// StaffHandler 员工处理器
type StaffHandler struct {
	staffService service.StaffService
}

// NewStaffHandler 创建员工处理器实例
func NewStaffHandler(staffService service.StaffService) *StaffHandler {
	return &StaffHandler{staffService: staffService}
}

// Register 注册路由
func (h *StaffHandler) Register(r *gin.RouterGroup, authMiddleware *middleware.AuthMiddleware, guard *middleware.Guard) {
	staffs := r.Group("/staffs", authMiddleware.HandleAuth())
	{
		staffs.POST("",
			guard.Check(middleware.Requirement{Action: model.ActionCreate, Subject: model.SubjectStaff}),
			h.CreateStaff)
		staffs.GET("/:id",
			guard.Check(middleware.Requirement{Action: model.ActionRead, Subject: model.SubjectStaff, Param: "id"}),
			h.GetStaff)
		staffs.PUT("/:id",
			guard.Check(middleware.Requirement{Action: model.ActionUpdate, Subject: model.SubjectStaff, Param: "id"}),
			h.UpdateStaff)
		staffs.DELETE("/:id",
			guard.Check(middleware.Requirement{Action: model.ActionDelete, Subject: model.SubjectStaff, Param: "id"}),
			h.DeleteStaff)
		staffs.GET("",
			guard.Check(middleware.Requirement{Action: model.ActionRead, Subject: model.SubjectStaff}),
			h.ListStaffs)

		// 分校指派
		staffs.PUT("/:id/branches",
			guard.Check(middleware.Requirement{Action: model.ActionUpdate, Subject: model.SubjectStaff, Param: "id"}),
			h.AssignBranches)
	}
}

// CreateStaffRequest 创建员工请求
type CreateStaffRequest struct {
	Email     string   `json:"email" binding:"required,email"`
	Password  string   `json:"password" binding:"required,min=8"`
	Name      string   `json:"name" binding:"required"`
	LastName  string   `json:"last_name" binding:"required"`
	Phone     string   `json:"phone"`
	RoleID    string   `json:"role_id" binding:"required"`
	BranchIDs []string `json:"branch_ids"`
}

// CreateStaff 创建员工
func (h *StaffHandler) CreateStaff(c *gin.Context) {
	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	staff := &model.Staff{
		Email:    req.Email,
		Name:     req.Name,
		LastName: req.LastName,
		Phone:    req.Phone,
		RoleID:   req.RoleID,
		Active:   true,
	}

	if err := h.staffService.Create(c.Request.Context(), staff, req.Password, req.BranchIDs); err != nil {
		switch err {
		case service.ErrStaffEmailExists:
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case service.ErrRoleNotFound, service.ErrBranchNotFound:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, staff)
}

// GetStaff 获取员工
func (h *StaffHandler) GetStaff(c *gin.Context) {
	staff, err := h.staffService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if err == service.ErrStaffNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, staff)
}

// UpdateStaffRequest 更新员工请求
type UpdateStaffRequest struct {
	Name     string `json:"name" binding:"required"`
	LastName string `json:"last_name" binding:"required"`
	Phone    string `json:"phone"`
	RoleID   string `json:"role_id" binding:"required"`
	Active   bool   `json:"active"`
}

// UpdateStaff 更新员工
func (h *StaffHandler) UpdateStaff(c *gin.Context) {
	var req UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	staff := &model.Staff{
		ID:       c.Param("id"),
		Name:     req.Name,
		LastName: req.LastName,
		Phone:    req.Phone,
		RoleID:   req.RoleID,
		Active:   req.Active,
	}

	if err := h.staffService.Update(c.Request.Context(), staff); err != nil {
		switch err {
		case service.ErrStaffNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case service.ErrRoleNotFound:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, staff)
}

// DeleteStaff 删除员工
func (h *StaffHandler) DeleteStaff(c *gin.Context) {
	if err := h.staffService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if err == service.ErrStaffNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// ListStaffs 获取员工列表，按调用者能力投影过滤
func (h *StaffHandler) ListStaffs(c *gin.Context) {
	ab := middleware.MustGetAbility(c)
	filter := ab.ListFilter(model.SubjectStaff).Sanitize(model.SubjectStaff)

	offset, limit := parsePagination(c)
	staffs, total, err := h.staffService.List(c.Request.Context(), filter, offset, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": staffs, "total": total})
}

// AssignBranchesRequest 分校指派请求
type AssignBranchesRequest struct {
	BranchIDs []string `json:"branch_ids" binding:"required"`
}

// AssignBranches 整体重设员工的分校指派
func (h *StaffHandler) AssignBranches(c *gin.Context) {
	var req AssignBranchesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.staffService.AssignBranches(c.Request.Context(), c.Param("id"), req.BranchIDs); err != nil {
		switch err {
		case service.ErrStaffNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case service.ErrBranchNotFound:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "branches assigned"})
}
