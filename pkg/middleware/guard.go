package middleware

import (
	"errors"
	"net/http"

	"github.com/moisicmo/dinokids-serve-sub000/internal/model"
	"github.com/moisicmo/dinokids-serve-sub000/internal/service"
	"github.com/moisicmo/dinokids-serve-sub000/pkg/ability"

	"github.com/gin-gonic/gin"
)

// ContextKeyAbility 上下文中授权能力的键
const ContextKeyAbility = "ability"

// Requirement 路由的权限要求；Param非空时从路径参数取资源ID做实例级检查
type Requirement struct {
	Action  model.Action
	Subject model.Subject
	Param   string
}

// Guard 授权中间件，每次请求重新编译调用者的授权能力
type Guard struct {
	authorizationService service.AuthorizationService
}

// NewGuard 创建授权中间件实例
func NewGuard(authorizationService service.AuthorizationService) *Guard {
	return &Guard{authorizationService: authorizationService}
}

// Check 检查权限要求，通过后把授权能力存入上下文供处理器复用
func (g *Guard) Check(requirements ...Requirement) gin.HandlerFunc {
	return func(c *gin.Context) {
		staffID := GetStaffID(c)
		if staffID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			c.Abort()
			return
		}

		ab, err := g.authorizationService.BuildAbility(c.Request.Context(), staffID)
		if err != nil {
			if errors.Is(err, service.ErrNoRoleAssigned) {
				c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build ability"})
			}
			c.Abort()
			return
		}

		reqs := make([]service.Requirement, 0, len(requirements))
		for _, r := range requirements {
			req := service.Requirement{Action: r.Action, Subject: r.Subject}
			if r.Param != "" {
				req.ResourceID = c.Param(r.Param)
			}
			reqs = append(reqs, req)
		}

		if err := g.authorizationService.Authorize(c.Request.Context(), ab, reqs); err != nil {
			var forbidden *ability.ForbiddenError
			switch {
			case errors.As(err, &forbidden):
				c.JSON(http.StatusForbidden, gin.H{"error": forbidden.Error()})
			case errors.Is(err, service.ErrResourceNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to authorize"})
			}
			c.Abort()
			return
		}

		c.Set(ContextKeyAbility, ab)
		c.Next()
	}
}
