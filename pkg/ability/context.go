package ability

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Context 授权运行时上下文，每次鉴权决策重新构建，不做跨请求缓存
type Context struct {
	UserID      string   `json:"userId"`      // 调用者ID
	BranchIDs   []string `json:"branchIds"`   // 调用者分配的分校ID集
	RoleID      string   `json:"roleId"`      // 调用者角色ID
	CurrentYear int      `json:"currentYear"` // 当前年份
	CurrentHour int      `json:"currentHour"` // 当前小时
}

// NewContext 基于调用者信息和当前时间构建运行时上下文
func NewContext(userID, roleID string, branchIDs []string, now time.Time) Context {
	return Context{
		UserID:      userID,
		RoleID:      roleID,
		BranchIDs:   branchIDs,
		CurrentYear: now.Year(),
		CurrentHour: now.Hour(),
	}
}

// placeholderValue 返回占位符键对应的上下文值
func (c Context) placeholderValue(key string) (any, bool) {
	switch key {
	case "userId":
		return c.UserID, true
	case "branchIds":
		return c.BranchIDs, true
	case "roleId":
		return c.RoleID, true
	case "currentYear":
		return c.CurrentYear, true
	case "currentHour":
		return c.CurrentHour, true
	}
	return nil, false
}

// placeholderKeys 占位符替换的固定顺序；替换对每个键幂等，顺序不影响结果
var placeholderKeys = []string{"userId", "branchIds", "roleId", "currentYear", "currentHour"}

// Substitute 把值字符串中的{{placeholder}}替换为JSON序列化后的上下文值
func (c Context) Substitute(value string) string {
	if !strings.Contains(value, "{{") {
		return value
	}
	for _, key := range placeholderKeys {
		token := "{{" + key + "}}"
		if !strings.Contains(value, token) {
			continue
		}
		v, ok := c.placeholderValue(key)
		if !ok {
			continue
		}
		serialized, err := json.Marshal(v)
		if err != nil {
			serialized = []byte(fmt.Sprintf("%v", v))
		}
		value = strings.ReplaceAll(value, token, string(serialized))
	}
	return value
}

// Resolve 先做占位符替换再尝试JSON解析；解析失败时保留原始字符串
func (c Context) Resolve(value string) any {
	substituted := c.Substitute(value)
	var parsed any
	if err := json.Unmarshal([]byte(substituted), &parsed); err != nil {
		return substituted
	}
	return parsed
}
