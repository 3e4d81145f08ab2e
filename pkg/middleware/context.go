package middleware

import (
	"github.com/moisicmo/dinokids-serve-sub000/internal/service"
	"github.com/moisicmo/dinokids-serve-sub000/pkg/ability"

	"github.com/gin-gonic/gin"
)

// GetClaims 从上下文中获取令牌声明
func GetClaims(c *gin.Context) *service.TokenClaims {
	if v, exists := c.Get(ContextKeyClaims); exists {
		if claims, ok := v.(*service.TokenClaims); ok {
			return claims
		}
	}
	return nil
}

// GetStaffID 从上下文中获取员工ID
func GetStaffID(c *gin.Context) string {
	if v, exists := c.Get(ContextKeyStaffID); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// GetAbility 从上下文中获取授权能力
func GetAbility(c *gin.Context) *ability.Ability {
	if v, exists := c.Get(ContextKeyAbility); exists {
		if ab, ok := v.(*ability.Ability); ok {
			return ab
		}
	}
	return nil
}

// MustGetAbility 从上下文中获取授权能力，如果不存在则panic
func MustGetAbility(c *gin.Context) *ability.Ability {
	ab := GetAbility(c)
	if ab == nil {
		panic("ability not found in context")
	}
	return ab
}
