package v1

import (
	"net/http"

	"github.com/moisicmo/dinokids-serve-sub000/internal/model"
	"github.com/moisicmo/dinokids-serve-sub000/internal/service"
	"github.com/moisicmo/dinokids-serve-sub000/pkg/middleware"

	"github.com/gin-gonic/gin"
)

// RoomHandler 教室与预约处理器
type RoomHandler struct {
	roomService service.RoomService
}

// NewRoomHandler 创建教室处理器实例
func NewRoomHandler(roomService service.RoomService) *RoomHandler {
	return &RoomHandler{roomService: roomService}
}

// Register 注册路由
func (h *RoomHandler) Register(r *gin.RouterGroup, authMiddleware *middleware.AuthMiddleware, guard *middleware.Guard) {
	rooms := r.Group("/rooms", authMiddleware.HandleAuth())
	{
		rooms.POST("",
			guard.Check(middleware.Requirement{Action: model.ActionCreate, Subject: model.SubjectRoom}),
			h.CreateRoom)
		rooms.GET("/:id",
			guard.Check(middleware.Requirement{Action: model.ActionRead, Subject: model.SubjectRoom, Param: "id"}),
			h.GetRoom)
		rooms.PUT("/:id",
			guard.Check(middleware.Requirement{Action: model.ActionUpdate, Subject: model.SubjectRoom, Param: "id"}),
			h.UpdateRoom)
		rooms.DELETE("/:id",
			guard.Check(middleware.Requirement{Action: model.ActionDelete, Subject: model.SubjectRoom, Param: "id"}),
			h.DeleteRoom)
		rooms.GET("",
			guard.Check(middleware.Requirement{Action: model.ActionRead, Subject: model.SubjectRoom}),
			h.ListRooms)
	}

	bookings := r.Group("/bookings", authMiddleware.HandleAuth())
	{
		bookings.POST("",
			guard.Check(middleware.Requirement{Action: model.ActionCreate, Subject: model.SubjectBooking}),
			h.CreateBooking)
		bookings.GET("/:id",
			guard.Check(middleware.Requirement{Action: model.ActionRead, Subject: model.SubjectBooking, Param: "id"}),
			h.GetBooking)
		bookings.DELETE("/:id",
			guard.Check(middleware.Requirement{Action: model.ActionDelete, Subject: model.SubjectBooking, Param: "id"}),
			h.DeleteBooking)
		bookings.GET("",
			guard.Check(middleware.Requirement{Action: model.ActionRead, Subject: model.SubjectBooking}),
			h.ListBookings)
	}
}

// RoomRequest 教室请求
type RoomRequest struct {
	BranchID string `json:"branch_id" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Capacity int    `json:"capacity" binding:"required,min=1"`
}

// CreateRoom 创建教室
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room := &model.Room{
		BranchID: req.BranchID,
		Name:     req.Name,
		Capacity: req.Capacity,
	}

	if err := h.roomService.Create(c.Request.Context(), room); err != nil {
		switch err {
		case service.ErrRoomNameExists:
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case service.ErrBranchNotFound:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, room)
}

// GetRoom 获取教室
func (h *RoomHandler) GetRoom(c *gin.Context) {
	room, err := h.roomService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if err == service.ErrRoomNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, room)
}

// UpdateRoom 更新教室
func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	var req RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room := &model.Room{
		ID:       c.Param("id"),
		BranchID: req.BranchID,
		Name:     req.Name,
		Capacity: req.Capacity,
	}

	if err := h.roomService.Update(c.Request.Context(), room); err != nil {
		switch err {
		case service.ErrRoomNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case service.ErrRoomNameExists:
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, room)
}

// DeleteRoom 删除教室
func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	if err := h.roomService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if err == service.ErrRoomNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// ListRooms 获取教室列表，按调用者能力投影过滤
func (h *RoomHandler) ListRooms(c *gin.Context) {
	ab := middleware.MustGetAbility(c)
	filter := ab.ListFilter(model.SubjectRoom).Sanitize(model.SubjectRoom)

	offset, limit := parsePagination(c)
	rooms, total, err := h.roomService.List(c.Request.Context(), filter, offset, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": rooms, "total": total})
}

// CreateBookingRequest 创建预约请求
type CreateBookingRequest struct {
	RoomID    string `json:"room_id" binding:"required"`
	StudentID string `json:"student_id" binding:"required"`
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	StartHour int    `json:"start_hour" binding:"min=0,max=23"`
	EndHour   int    `json:"end_hour" binding:"min=0,max=24"`
	Gestion   string `json:"gestion" binding:"required"`
}

// CreateBooking 创建预约，检测时段冲突
func (h *RoomHandler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking := &model.Booking{
		RoomID:    req.RoomID,
		StudentID: req.StudentID,
		Weekday:   req.Weekday,
		StartHour: req.StartHour,
		EndHour:   req.EndHour,
		Gestion:   req.Gestion,
	}

	if err := h.roomService.CreateBooking(c.Request.Context(), booking); err != nil {
		switch err {
		case service.ErrBookingConflict:
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case service.ErrInvalidTimeRange, service.ErrRoomNotFound, service.ErrStudentNotFound:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// GetBooking 获取预约
func (h *RoomHandler) GetBooking(c *gin.Context) {
	booking, err := h.roomService.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		if err == service.ErrBookingNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, booking)
}

// DeleteBooking 删除预约
func (h *RoomHandler) DeleteBooking(c *gin.Context) {
	if err := h.roomService.DeleteBooking(c.Request.Context(), c.Param("id")); err != nil {
		if err == service.ErrBookingNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// ListBookings 获取预约列表，按调用者能力投影过滤
func (h *RoomHandler) ListBookings(c *gin.Context) {
	ab := middleware.MustGetAbility(c)
	filter := ab.ListFilter(model.SubjectBooking).Sanitize(model.SubjectBooking)

	offset, limit := parsePagination(c)
	bookings, total, err := h.roomService.ListBookings(c.Request.Context(), filter, offset, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": bookings, "total": total})
}
