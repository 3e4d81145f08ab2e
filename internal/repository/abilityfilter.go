package repository

import (
	"strings"

	"github.com/moisicmo/dinokids-serve-sub000/pkg/ability"

	"gorm.io/gorm"
)

// ApplyAbilityFilter 把ABAC投影过滤器并入gorm查询。
// NoRestrictions为true时不施加任何过滤（全局读取）；
// 含空分支的OR恒为真，同样不施加过滤
func ApplyAbilityFilter(db *gorm.DB, filter ability.ListFilter) *gorm.DB {
	if filter.NoRestrictions || len(filter.Or) == 0 {
		return db
	}
	for _, branch := range filter.Or {
		if len(branch) == 0 {
			return db
		}
	}

	base := db.Session(&gorm.Session{NewDB: true})
	grouped := branchQuery(base, filter.Or[0])
	for _, branch := range filter.Or[1:] {
		grouped = grouped.Or(branchQuery(base, branch))
	}
	return db.Where(grouped)
}

// branchQuery 把单个OR分支（字段条件的合取）转为gorm查询
func branchQuery(base *gorm.DB, branch ability.FilterMap) *gorm.DB {
	q := base
	for field, fragment := range branch {
		col := columnName(field)
		for op, value := range fragment {
			switch op {
			case "equals":
				q = q.Where(col+" = ?", value)
			case "not":
				q = q.Where(col+" <> ?", value)
			case "in":
				q = q.Where(col+" IN ?", toSlice(value))
			case "notIn":
				q = q.Where(col+" NOT IN ?", toSlice(value))
			case "gt":
				q = q.Where(col+" > ?", value)
			case "gte":
				q = q.Where(col+" >= ?", value)
			case "lt":
				q = q.Where(col+" < ?", value)
			case "lte":
				q = q.Where(col+" <= ?", value)
			}
		}
	}
	return q
}

// toSlice 把IN/NOT IN的值归一为切片
func toSlice(value any) []any {
	if list, ok := value.([]any); ok {
		return list
	}
	return []any{value}
}

// columnName 把camelCase过滤字段名转为snake_case列名
func columnName(field string) string {
	var b strings.Builder
	for i, r := range field {
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
