package ability

import (
	"github.com/moisicmo/dinokids-serve-sub000/internal/model"
)

// ListFilter 列表查询的过滤投影结果：各允许规则条件的OR分支集合。
// NoRestrictions为true时列表查询必须完全省略ABAC过滤（全局读取）
type ListFilter struct {
	Or             []FilterMap `json:"or"`
	NoRestrictions bool        `json:"no_restrictions"`
}

// ListFilter 为列表查询投影目标主体的过滤器：取所有命中该主体的
// 允许规则，把它们的静态条件并为OR分支
func (a *Ability) ListFilter(subject model.Subject) ListFilter {
	branches := make([]FilterMap, 0)
	for _, rule := range a.rules {
		if rule.Inverted || !rule.Matches(model.ActionRead, subject) {
			continue
		}
		branches = append(branches, rule.Conditions)
	}
	return ListFilter{
		Or:             branches,
		NoRestrictions: allEmpty(branches),
	}
}

// allEmpty 结构化空判定：零分支为空，所有分支各自为空也为空；
// 只要有一个分支带键就不为空
func allEmpty(branches []FilterMap) bool {
	for _, branch := range branches {
		if len(branch) > 0 {
			return false
		}
	}
	return true
}

// Sanitize 按主体的字段白名单清洗过滤器：剥除不属于该资源类型的键，
// 剥除后变空的分支整体丢弃，防止同名键跨资源类型泄漏
func (f ListFilter) Sanitize(subject model.Subject) ListFilter {
	allowed := allowedFields(subject)
	branches := make([]FilterMap, 0, len(f.Or))
	for _, branch := range f.Or {
		cleaned := FilterMap{}
		for field, fragment := range branch {
			if allowed[field] {
				cleaned[field] = fragment
			}
		}
		if len(branch) == 0 || len(cleaned) > 0 {
			branches = append(branches, cleaned)
		}
	}
	return ListFilter{
		Or:             branches,
		NoRestrictions: allEmpty(branches),
	}
}

// allowedFields 各资源类型的过滤字段白名单；新增主体类型时编译期强制补全
func allowedFields(subject model.Subject) map[string]bool {
	switch subject {
	case model.SubjectBranch:
		return fieldSet("id", "name", "address", "phone", "active")
	case model.SubjectStaff:
		return fieldSet("id", "email", "name", "lastName", "phone", "roleId", "active")
	case model.SubjectStudent:
		return fieldSet("id", "code", "name", "lastName", "branchId", "tutorId", "active")
	case model.SubjectTutor:
		return fieldSet("id", "name", "lastName", "phone", "email")
	case model.SubjectRoom:
		return fieldSet("id", "branchId", "name", "capacity")
	case model.SubjectBooking:
		return fieldSet("id", "roomId", "studentId", "weekday", "startHour", "endHour", "gestion")
	case model.SubjectInscription:
		return fieldSet("id", "studentId", "branchId", "gestion", "price", "staffId")
	case model.SubjectDebt:
		return fieldSet("id", "studentId", "branchId", "inscriptionId", "concept", "amount", "balance", "settled", "gestion")
	case model.SubjectPayment:
		return fieldSet("id", "debtId", "staffId", "amount", "method")
	case model.SubjectInvoice:
		return fieldSet("id", "paymentId", "number", "total")
	case model.SubjectRole:
		return fieldSet("id", "name", "isSystem")
	case model.SubjectPermission:
		return fieldSet("id", "roleId", "action", "subject", "inverted", "active")
	case model.SubjectAll:
		return map[string]bool{}
	}
	return map[string]bool{}
}

// fieldSet 构建字段集合
func fieldSet(fields ...string) map[string]bool {
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return set
}
