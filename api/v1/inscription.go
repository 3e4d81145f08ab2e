package v1

import (
	"net/http"

	"github.com/moisicmo/dinokids-serve-sub000/internal/model"
	"github.com/moisicmo/dinokids-serve-sub000/internal/service"
	"github.com/moisicmo/dinokids-serve-sub000/pkg/middleware"

	"github.com/gin-gonic/gin"
)

// InscriptionHandler 报名处理器
type InscriptionHandler struct {
	inscriptionService service.InscriptionService
}

// NewInscriptionHandler 创建报名处理器实例
func NewInscriptionHandler(inscriptionService service.InscriptionService) *InscriptionHandler {
	return &InscriptionHandler{inscriptionService: inscriptionService}
}

// Register 注册路由
func (h *InscriptionHandler) Register(r *gin.RouterGroup, authMiddleware *middleware.AuthMiddleware, guard *middleware.Guard) {
	inscriptions := r.Group("/inscriptions", authMiddleware.HandleAuth())
	{
		inscriptions.POST("",
			guard.Check(middleware.Requirement{Action: model.ActionCreate, Subject: model.SubjectInscription}),
			h.CreateInscription)
		inscriptions.GET("/:id",
			guard.Check(middleware.Requirement{Action: model.ActionRead, Subject: model.SubjectInscription, Param: "id"}),
			h.GetInscription)
		inscriptions.DELETE("/:id",
			guard.Check(middleware.Requirement{Action: model.ActionDelete, Subject: model.SubjectInscription, Param: "id"}),
			h.DeleteInscription)
		inscriptions.GET("",
			guard.Check(middleware.Requirement{Action: model.ActionRead, Subject: model.SubjectInscription}),
			h.ListInscriptions)
	}
}

// CreateInscriptionRequest 创建报名请求
type CreateInscriptionRequest struct {
	StudentID string  `json:"student_id" binding:"required"`
	BranchID  string  `json:"branch_id" binding:"required"`
	Gestion   string  `json:"gestion" binding:"required"`
	Price     float64 `json:"price" binding:"required,gt=0"`
}

// CreateInscription 创建报名，同一事务生成报名费欠费
func (h *InscriptionHandler) CreateInscription(c *gin.Context) {
	var req CreateInscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inscription := &model.Inscription{
		StudentID: req.StudentID,
		BranchID:  req.BranchID,
		Gestion:   req.Gestion,
		Price:     req.Price,
		StaffID:   middleware.GetStaffID(c),
	}

	if err := h.inscriptionService.Create(c.Request.Context(), inscription); err != nil {
		switch err {
		case service.ErrAlreadyInscribed:
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case service.ErrStudentNotFound, service.ErrBranchNotFound:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, inscription)
}

// GetInscription 获取报名
func (h *InscriptionHandler) GetInscription(c *gin.Context) {
	inscription, err := h.inscriptionService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if err == service.ErrInscriptionNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, inscription)
}

// DeleteInscription 删除报名
func (h *InscriptionHandler) DeleteInscription(c *gin.Context) {
	if err := h.inscriptionService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if err == service.ErrInscriptionNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// ListInscriptions 获取报名列表，按调用者能力投影过滤
func (h *InscriptionHandler) ListInscriptions(c *gin.Context) {
	ab := middleware.MustGetAbility(c)
	filter := ab.ListFilter(model.SubjectInscription).Sanitize(model.SubjectInscription)

	offset, limit := parsePagination(c)
	inscriptions, total, err := h.inscriptionService.List(c.Request.Context(), filter, offset, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": inscriptions, "total": total})
}
