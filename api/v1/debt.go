package v1

import (
	"net/http"

	"github.com/moisicmo/dinokids-serve-sub000/internal/model"
	"github.com/moisicmo/dinokids-serve-sub000/internal/service"
	"github.com/moisicmo/dinokids-serve-sub000/pkg/middleware"

	"github.com/gin-gonic/gin"
)

// DebtHandler 欠费、支付与发票处理器
type DebtHandler struct {
	debtService service.DebtService
}

// NewDebtHandler 创建欠费处理器实例
func NewDebtHandler(debtService service.DebtService) *DebtHandler {
	return &DebtHandler{debtService: debtService}
}

// Register 注册路由
func (h *DebtHandler) Register(r *gin.RouterGroup, authMiddleware *middleware.AuthMiddleware, guard *middleware.Guard) {
	debts := r.Group("/debts", authMiddleware.HandleAuth())
	{
		debts.POST("",
			guard.Check(middleware.Requirement{Action: model.ActionCreate, Subject: model.SubjectDebt}),
			h.CreateDebt)
		debts.GET("/:id",
			guard.Check(middleware.Requirement{Action: model.ActionRead, Subject: model.SubjectDebt, Param: "id"}),
			h.GetDebt)
		debts.GET("",
			guard.Check(middleware.Requirement{Action: model.ActionRead, Subject: model.SubjectDebt}),
			h.ListDebts)

		// 针对单笔欠费登记支付
		debts.POST("/:id/payments",
			guard.Check(
				middleware.Requirement{Action: model.ActionUpdate, Subject: model.SubjectDebt, Param: "id"},
				middleware.Requirement{Action: model.ActionCreate, Subject: model.SubjectPayment},
			),
			h.RegisterPayment)
	}

	payments := r.Group("/payments", authMiddleware.HandleAuth())
	{
		payments.GET("/:id",
			guard.Check(middleware.Requirement{Action: model.ActionRead, Subject: model.SubjectPayment, Param: "id"}),
			h.GetPayment)
		payments.GET("",
			guard.Check(middleware.Requirement{Action: model.ActionRead, Subject: model.SubjectPayment}),
			h.ListPayments)
	}

	invoices := r.Group("/invoices", authMiddleware.HandleAuth())
	{
		invoices.GET("/:id",
			guard.Check(middleware.Requirement{Action: model.ActionRead, Subject: model.SubjectInvoice, Param: "id"}),
			h.GetInvoice)
		invoices.GET("/:id/document",
			guard.Check(middleware.Requirement{Action: model.ActionRead, Subject: model.SubjectInvoice, Param: "id"}),
			h.GetInvoiceDocument)
		invoices.GET("",
			guard.Check(middleware.Requirement{Action: model.ActionRead, Subject: model.SubjectInvoice}),
			h.ListInvoices)
	}
}

// CreateDebtRequest 创建欠费请求
type CreateDebtRequest struct {
	StudentID string  `json:"student_id" binding:"required"`
	BranchID  string  `json:"branch_id" binding:"required"`
	Concept   string  `json:"concept" binding:"required"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	Gestion   string  `json:"gestion" binding:"required"`
}

// CreateDebt 创建欠费
func (h *DebtHandler) CreateDebt(c *gin.Context) {
	var req CreateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	debt := &model.Debt{
		StudentID: req.StudentID,
		BranchID:  req.BranchID,
		Concept:   req.Concept,
		Amount:    req.Amount,
		Gestion:   req.Gestion,
	}

	if err := h.debtService.Create(c.Request.Context(), debt); err != nil {
		switch err {
		case service.ErrStudentNotFound, service.ErrInvalidPaymentAmount:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, debt)
}

// GetDebt 获取欠费
func (h *DebtHandler) GetDebt(c *gin.Context) {
	debt, err := h.debtService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if err == service.ErrDebtNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, debt)
}

// ListDebts 获取欠费列表，按调用者能力投影过滤
func (h *DebtHandler) ListDebts(c *gin.Context) {
	ab := middleware.MustGetAbility(c)
	filter := ab.ListFilter(model.SubjectDebt).Sanitize(model.SubjectDebt)

	offset, limit := parsePagination(c)
	debts, total, err := h.debtService.List(c.Request.Context(), filter, offset, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": debts, "total": total})
}

// RegisterPaymentRequest 登记支付请求
type RegisterPaymentRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Method string  `json:"method" binding:"required"`
}

// RegisterPayment 登记支付，结清时自动开具发票
func (h *DebtHandler) RegisterPayment(c *gin.Context) {
	var req RegisterPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment, err := h.debtService.RegisterPayment(
		c.Request.Context(), c.Param("id"), middleware.GetStaffID(c), req.Amount, req.Method)
	if err != nil {
		switch err {
		case service.ErrDebtNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case service.ErrDebtSettled, service.ErrInvalidPaymentAmount:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, payment)
}

// GetPayment 获取支付记录
func (h *DebtHandler) GetPayment(c *gin.Context) {
	payment, err := h.debtService.GetPayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		if err == service.ErrPaymentNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, payment)
}

// ListPayments 获取支付列表，按调用者能力投影过滤
func (h *DebtHandler) ListPayments(c *gin.Context) {
	ab := middleware.MustGetAbility(c)
	filter := ab.ListFilter(model.SubjectPayment).Sanitize(model.SubjectPayment)

	offset, limit := parsePagination(c)
	payments, total, err := h.debtService.ListPayments(c.Request.Context(), filter, offset, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": payments, "total": total})
}

// GetInvoice 获取发票头
func (h *DebtHandler) GetInvoice(c *gin.Context) {
	invoice, err := h.debtService.GetInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		if err == service.ErrInvoiceNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// GetInvoiceDocument 获取发票单据正文
func (h *DebtHandler) GetInvoiceDocument(c *gin.Context) {
	doc, err := h.debtService.GetInvoiceDocument(c.Request.Context(), c.Param("id"))
	if err != nil {
		if err == service.ErrInvoiceNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, doc)
}

// ListInvoices 获取发票列表，按调用者能力投影过滤
func (h *DebtHandler) ListInvoices(c *gin.Context) {
	ab := middleware.MustGetAbility(c)
	filter := ab.ListFilter(model.SubjectInvoice).Sanitize(model.SubjectInvoice)

	offset, limit := parsePagination(c)
	invoices, total, err := h.debtService.ListInvoices(c.Request.Context(), filter, offset, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": invoices, "total": total})
}
