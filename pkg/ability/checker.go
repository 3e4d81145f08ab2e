package ability

import (
	"strings"

	"github.com/moisicmo/dinokids-serve-sub000/internal/model"
)

// ForbiddenError 授权拒绝错误，带存储的拒绝原因
type ForbiddenError struct {
	Reason string
}

// Error 实现error接口
func (e *ForbiddenError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return "没有权限执行此操作"
}

// Ability 一次请求内调用者的授权能力，由权限集和运行时上下文编译而来
type Ability struct {
	rules []Rule
	ctx   Context
}

// New 编译权限集并构建授权能力实例
func New(permissions []model.Permission, ctx Context) *Ability {
	return &Ability{
		rules: Compile(permissions, ctx),
		ctx:   ctx,
	}
}

// Rules 返回编译后的规则集
func (a *Ability) Rules() []Rule {
	return a.rules
}

// Context 返回编译时使用的运行时上下文
func (a *Ability) Context() Context {
	return a.ctx
}

// Can 判定是否允许对目标执行操作。target为资源属性快照，
// 类型级检查传nil。显式拒绝优先于任何允许规则
func (a *Ability) Can(action model.Action, subject model.Subject, target map[string]any) error {
	var allowed bool
	for _, rule := range a.rules {
		if !rule.Matches(action, subject) {
			continue
		}
		if rule.Inverted {
			// 拒绝规则只有条件可证实命中目标时才生效
			if len(rule.Conditions) == 0 || (target != nil && MatchTarget(rule.Conditions, target)) {
				return &ForbiddenError{Reason: rule.Reason}
			}
			continue
		}
		if allowed {
			continue
		}
		// 类型级检查时带条件的允许规则视为满足
		if target == nil || MatchTarget(rule.Conditions, target) {
			allowed = true
		}
	}
	if allowed {
		return nil
	}
	return &ForbiddenError{}
}

// MatchTarget 结构化测试过滤器映射是否命中目标属性快照；
// 空映射无条件满足，全部字段命中才算满足
func MatchTarget(conditions FilterMap, target map[string]any) bool {
	for field, fragment := range conditions {
		attr, ok := lookupAttribute(target, field)
		if !ok {
			return false
		}
		if !matchFragment(fragment, attr) {
			return false
		}
	}
	return true
}

// lookupAttribute 在属性快照中查找字段，兼容camelCase和snake_case键
func lookupAttribute(target map[string]any, field string) (any, bool) {
	if v, ok := target[field]; ok {
		return v, true
	}
	if v, ok := target[toSnakeCase(field)]; ok {
		return v, true
	}
	return nil, false
}

// matchFragment 按操作符语义测试单个过滤器片段
func matchFragment(fragment Filter, attr any) bool {
	for op, expected := range fragment {
		switch op {
		case "equals":
			if !valueEqual(attr, expected) {
				return false
			}
		case "not":
			if valueEqual(attr, expected) {
				return false
			}
		case "in":
			if !valueIn(attr, expected) {
				return false
			}
		case "notIn":
			if valueIn(attr, expected) {
				return false
			}
		case "gt":
			if compareValues(attr, expected) <= 0 {
				return false
			}
		case "gte":
			if compareValues(attr, expected) < 0 {
				return false
			}
		case "lt":
			if compareValues(attr, expected) >= 0 {
				return false
			}
		case "lte":
			if compareValues(attr, expected) > 0 {
				return false
			}
		default:
			// 未知操作符不参与判定
		}
	}
	return true
}

// valueEqual 判断两个值是否相等，数字按数值语义比较
func valueEqual(a, b any) bool {
	if na, okA := toFloat(a); okA {
		if nb, okB := toFloat(b); okB {
			return na == nb
		}
	}
	return a == b
}

// valueIn 判断值是否在列表中
func valueIn(attr, list any) bool {
	values, ok := list.([]any)
	if !ok {
		return valueEqual(attr, list)
	}
	for _, v := range values {
		if valueEqual(attr, v) {
			return true
		}
	}
	return false
}

// compareValues 比较两个值，数字按数值序，字符串按字典序
func compareValues(a, b any) int {
	if na, okA := toFloat(a); okA {
		if nb, okB := toFloat(b); okB {
			switch {
			case na < nb:
				return -1
			case na > nb:
				return 1
			}
			return 0
		}
	}
	if sa, okA := a.(string); okA {
		if sb, okB := b.(string); okB {
			return strings.Compare(sa, sb)
		}
	}
	return 0
}

// toFloat 数值归一化，整数和JSON数字都归到float64
func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// toSnakeCase 把camelCase字段名转为snake_case列名
func toSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
