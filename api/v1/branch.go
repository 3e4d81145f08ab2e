package v1

import (
	"net/http"

	"github.com/moisicmo/dinokids-serve-sub000/internal/model"
	"github.com/moisicmo/dinokids-serve-sub000/internal/service"
	"github.com/moisicmo/dinokids-serve-sub000/pkg/middleware"

	"github.com/gin-gonic/gin"
)

// BranchHandler 分校处理器
type BranchHandler struct {
	branchService service.BranchService
}

// NewBranchHandler 创建分校处理器实例
func NewBranchHandler(branchService service.BranchService) *BranchHandler {
	return &BranchHandler{branchService: branchService}
}

// Register 注册路由
func (h *BranchHandler) Register(r *gin.RouterGroup, authMiddleware *middleware.AuthMiddleware, guard *middleware.Guard) {
	branches := r.Group("/branches", authMiddleware.HandleAuth())
	{
		branches.POST("",
			guard.Check(middleware.Requirement{Action: model.ActionCreate, Subject: model.SubjectBranch}),
			h.CreateBranch)
		branches.GET("/:id",
			guard.Check(middleware.Requirement{Action: model.ActionRead, Subject: model.SubjectBranch, Param: "id"}),
			h.GetBranch)
		branches.PUT("/:id",
			guard.Check(middleware.Requirement{Action: model.ActionUpdate, Subject: model.SubjectBranch, Param: "id"}),
			h.UpdateBranch)
		branches.DELETE("/:id",
			guard.Check(middleware.Requirement{Action: model.ActionDelete, Subject: model.SubjectBranch, Param: "id"}),
			h.DeleteBranch)
		branches.GET("",
			guard.Check(middleware.Requirement{Action: model.ActionRead, Subject: model.SubjectBranch}),
			h.ListBranches)
	}
}

// CreateBranchRequest 创建分校请求
type CreateBranchRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// CreateBranch 创建分校
func (h *BranchHandler) CreateBranch(c *gin.Context) {
	var req CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	branch := &model.Branch{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Active:  true,
	}

	if err := h.branchService.Create(c.Request.Context(), branch); err != nil {
		if err == service.ErrBranchNameExists {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, branch)
}

// GetBranch 获取分校
func (h *BranchHandler) GetBranch(c *gin.Context) {
	branch, err := h.branchService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if err == service.ErrBranchNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, branch)
}

// UpdateBranchRequest 更新分校请求
type UpdateBranchRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Active  bool   `json:"active"`
}

// UpdateBranch 更新分校
func (h *BranchHandler) UpdateBranch(c *gin.Context) {
	var req UpdateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	branch := &model.Branch{
		ID:      c.Param("id"),
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Active:  req.Active,
	}

	if err := h.branchService.Update(c.Request.Context(), branch); err != nil {
		switch err {
		case service.ErrBranchNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case service.ErrBranchNameExists:
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, branch)
}

// DeleteBranch 删除分校
func (h *BranchHandler) DeleteBranch(c *gin.Context) {
	if err := h.branchService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if err == service.ErrBranchNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// ListBranches 获取分校列表，按调用者能力投影过滤
func (h *BranchHandler) ListBranches(c *gin.Context) {
	ab := middleware.MustGetAbility(c)
	filter := ab.ListFilter(model.SubjectBranch).Sanitize(model.SubjectBranch)

	offset, limit := parsePagination(c)
	branches, total, err := h.branchService.List(c.Request.Context(), filter, offset, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": branches, "total": total})
}
