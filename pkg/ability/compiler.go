package ability

import (
	"github.com/moisicmo/dinokids-serve-sub000/internal/model"
)

// Rule 编译后的规则，权限集合在当前上下文下的按请求物化结果
type Rule struct {
	Action     model.Action  `json:"action"`
	Subject    model.Subject `json:"subject"`
	Inverted   bool          `json:"inverted"`
	Reason     string        `json:"reason,omitempty"`
	Conditions FilterMap     `json:"conditions"`
}

// Matches 判断规则是否覆盖给定的操作和主体；manage与all为通配
func (r Rule) Matches(action model.Action, subject model.Subject) bool {
	if r.Subject != subject && r.Subject != model.SubjectAll {
		return false
	}
	if r.Action != action && r.Action != model.ActionManage {
		return false
	}
	return true
}

// Compile 把调用者的有效权限集编译为可执行规则集。
// 动态遍历失败的权限整体排除；输出保持输入顺序。
// 结果依赖墙钟时间，必须每次决策重新编译，不可缓存
func Compile(permissions []model.Permission, ctx Context) []Rule {
	rules := make([]Rule, 0, len(permissions))
	for _, perm := range permissions {
		if !EvaluateDynamic(perm.Conditions, ctx) {
			continue
		}
		rules = append(rules, Rule{
			Action:     perm.Action,
			Subject:    perm.Subject,
			Inverted:   perm.Inverted,
			Reason:     perm.Reason,
			Conditions: ProjectStatic(perm.Conditions, ctx),
		})
	}
	return rules
}
