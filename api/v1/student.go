package v1

import (
	"net/http"
	"time"

	"github.com/moisicmo/dinokids-serve-sub000/internal/model"
	"github.com/moisicmo/dinokids-serve-sub000/internal/service"
	"github.com/moisicmo/dinokids-serve-sub000/pkg/middleware"

	"github.com/gin-gonic/gin"
)

// StudentHandler 学生与监护人处理器
type StudentHandler struct {
	studentService service.StudentService
}

// NewStudentHandler 创建学生处理器实例
func NewStudentHandler(studentService service.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

// Register 注册路由
func (h *StudentHandler) Register(r *gin.RouterGroup, authMiddleware *middleware.AuthMiddleware, guard *middleware.Guard) {
	students := r.Group("/students", authMiddleware.HandleAuth())
	{
		students.POST("",
			guard.Check(middleware.Requirement{Action: model.ActionCreate, Subject: model.SubjectStudent}),
			h.CreateStudent)
		students.GET("/:id",
			guard.Check(middleware.Requirement{Action: model.ActionRead, Subject: model.SubjectStudent, Param: "id"}),
			h.GetStudent)
		students.PUT("/:id",
			guard.Check(middleware.Requirement{Action: model.ActionUpdate, Subject: model.SubjectStudent, Param: "id"}),
			h.UpdateStudent)
		students.DELETE("/:id",
			guard.Check(middleware.Requirement{Action: model.ActionDelete, Subject: model.SubjectStudent, Param: "id"}),
			h.DeleteStudent)
		students.GET("",
			guard.Check(middleware.Requirement{Action: model.ActionRead, Subject: model.SubjectStudent}),
			h.ListStudents)
	}

	tutors := r.Group("/tutors", authMiddleware.HandleAuth())
	{
		tutors.POST("",
			guard.Check(middleware.Requirement{Action: model.ActionCreate, Subject: model.SubjectTutor}),
			h.CreateTutor)
		tutors.GET("/:id",
			guard.Check(middleware.Requirement{Action: model.ActionRead, Subject: model.SubjectTutor, Param: "id"}),
			h.GetTutor)
		tutors.PUT("/:id",
			guard.Check(middleware.Requirement{Action: model.ActionUpdate, Subject: model.SubjectTutor, Param: "id"}),
			h.UpdateTutor)
		tutors.GET("",
			guard.Check(middleware.Requirement{Action: model.ActionRead, Subject: model.SubjectTutor}),
			h.ListTutors)
	}
}

// CreateStudentRequest 创建学生请求
type CreateStudentRequest struct {
	Code      string `json:"code" binding:"required"`
	Name      string `json:"name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Birthdate string `json:"birthdate"`
	BranchID  string `json:"branch_id" binding:"required"`
	TutorID   string `json:"tutor_id"`
}

// CreateStudent 创建学生
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	var req CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	student := &model.Student{
		Code:     req.Code,
		Name:     req.Name,
		LastName: req.LastName,
		BranchID: req.BranchID,
		Active:   true,
	}
	if req.TutorID != "" {
		student.TutorID = &req.TutorID
	}
	if req.Birthdate != "" {
		birthdate, err := time.Parse("2006-01-02", req.Birthdate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid birthdate"})
			return
		}
		student.Birthdate = &birthdate
	}

	if err := h.studentService.Create(c.Request.Context(), student); err != nil {
		switch err {
		case service.ErrStudentCodeExists:
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case service.ErrBranchNotFound, service.ErrTutorNotFound:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, student)
}

// GetStudent 获取学生
func (h *StudentHandler) GetStudent(c *gin.Context) {
	student, err := h.studentService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if err == service.ErrStudentNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, student)
}

// UpdateStudentRequest 更新学生请求
type UpdateStudentRequest struct {
	Name     string `json:"name" binding:"required"`
	LastName string `json:"last_name" binding:"required"`
	BranchID string `json:"branch_id" binding:"required"`
	TutorID  string `json:"tutor_id"`
	Active   bool   `json:"active"`
}

// UpdateStudent 更新学生
func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	var req UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	student := &model.Student{
		ID:       c.Param("id"),
		Name:     req.Name,
		LastName: req.LastName,
		BranchID: req.BranchID,
		Active:   req.Active,
	}
	if req.TutorID != "" {
		student.TutorID = &req.TutorID
	}

	if err := h.studentService.Update(c.Request.Context(), student); err != nil {
		switch err {
		case service.ErrStudentNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case service.ErrBranchNotFound, service.ErrTutorNotFound:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, student)
}

// DeleteStudent 删除学生
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	if err := h.studentService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if err == service.ErrStudentNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// ListStudents 获取学生列表，按调用者能力投影过滤
func (h *StudentHandler) ListStudents(c *gin.Context) {
	ab := middleware.MustGetAbility(c)
	filter := ab.ListFilter(model.SubjectStudent).Sanitize(model.SubjectStudent)

	offset, limit := parsePagination(c)
	students, total, err := h.studentService.List(c.Request.Context(), filter, offset, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": students, "total": total})
}

// TutorRequest 监护人请求
type TutorRequest struct {
	Name     string `json:"name" binding:"required"`
	LastName string `json:"last_name" binding:"required"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

// CreateTutor 创建监护人
func (h *StudentHandler) CreateTutor(c *gin.Context) {
	var req TutorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tutor := &model.Tutor{
		Name:     req.Name,
		LastName: req.LastName,
		Phone:    req.Phone,
		Email:    req.Email,
	}

	if err := h.studentService.CreateTutor(c.Request.Context(), tutor); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, tutor)
}

// GetTutor 获取监护人
func (h *StudentHandler) GetTutor(c *gin.Context) {
	tutor, err := h.studentService.GetTutor(c.Request.Context(), c.Param("id"))
	if err != nil {
		if err == service.ErrTutorNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, tutor)
}

// UpdateTutor 更新监护人
func (h *StudentHandler) UpdateTutor(c *gin.Context) {
	var req TutorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tutor := &model.Tutor{
		ID:       c.Param("id"),
		Name:     req.Name,
		LastName: req.LastName,
		Phone:    req.Phone,
		Email:    req.Email,
	}

	if err := h.studentService.UpdateTutor(c.Request.Context(), tutor); err != nil {
		if err == service.ErrTutorNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, tutor)
}

// ListTutors 获取监护人列表
func (h *StudentHandler) ListTutors(c *gin.Context) {
	offset, limit := parsePagination(c)
	tutors, total, err := h.studentService.ListTutors(c.Request.Context(), offset, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": tutors, "total": total})
}
