package middleware

import (
	"net/http"
	"strings"

	"github.com/moisicmo/dinokids-serve-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	// BearerSchema Bearer认证方案
	BearerSchema = "Bearer "
	// ContextKeyClaims 上下文中令牌声明的键
	ContextKeyClaims = "claims"
	// ContextKeyStaffID 上下文中员工ID的键
	ContextKeyStaffID = "staff_id"
	// CookieAccessToken Cookie中访问令牌的键
	CookieAccessToken = "access_token"
)

// AuthMiddleware 认证中间件
type AuthMiddleware struct {
	authService service.AuthService
}

// NewAuthMiddleware 创建认证中间件实例
func NewAuthMiddleware(authService service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// HandleAuth 处理认证
func (m *AuthMiddleware) HandleAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := m.extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			c.Abort()
			return
		}

		claims, err := m.authService.ValidateToken(c.Request.Context(), token)
		if err != nil {
			switch err {
			case service.ErrInvalidToken:
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			case service.ErrTokenRevoked:
				c.JSON(http.StatusUnauthorized, gin.H{"error": "token revoked"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to validate token"})
			}
			c.Abort()
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Set(ContextKeyStaffID, claims.StaffID)
		c.Next()
	}
}

// extractToken 从请求中提取token
func (m *AuthMiddleware) extractToken(c *gin.Context) string {
	// 1. 尝试从Authorization头获取
	auth := c.GetHeader("Authorization")
	if auth != "" && strings.HasPrefix(auth, BearerSchema) {
		return auth[len(BearerSchema):]
	}

	// 2. 尝试从Cookie获取
	if cookie, err := c.Cookie(CookieAccessToken); err == nil {
		return cookie
	}

	return ""
}
