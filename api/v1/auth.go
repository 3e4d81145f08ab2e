package v1

import (
	"net/http"
	"strings"

	"github.com/moisicmo/dinokids-serve-sub000/internal/service"
	"github.com/moisicmo/dinokids-serve-sub000/pkg/middleware"

	"github.com/gin-gonic/gin"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler 创建认证处理器实例
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register 注册路由
func (h *AuthHandler) Register(r *gin.RouterGroup, authMiddleware *middleware.AuthMiddleware) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/logout", authMiddleware.HandleAuth(), h.Logout)
		auth.GET("/me", authMiddleware.HandleAuth(), h.Me)
	}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login 邮箱密码登录
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch err {
		case service.ErrInvalidCredentials:
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		case service.ErrStaffDisabled:
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// Logout 吊销当前访问令牌
func (h *AuthHandler) Logout(c *gin.Context) {
	token := extractBearer(c)
	if token == "" {
		if cookie, err := c.Cookie(middleware.CookieAccessToken); err == nil {
			token = cookie
		}
	}
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing token"})
		return
	}

	if err := h.authService.Logout(c.Request.Context(), token); err != nil {
		switch err {
		case service.ErrInvalidToken, service.ErrTokenRevoked:
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me 返回当前令牌声明
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"staff_id": claims.StaffID,
		"role_id":  claims.RoleID,
		"email":    claims.Email,
	})
}

// extractBearer 从Authorization头提取token
func extractBearer(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if auth != "" && strings.HasPrefix(auth, middleware.BearerSchema) {
		return auth[len(middleware.BearerSchema):]
	}
	return ""
}
