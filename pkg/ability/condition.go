package ability

import (
	"strconv"
	"strings"

	"github.com/moisicmo/dinokids-serve-sub000/internal/model"
)

// 动态条件字段，在编译时立即对运行时上下文求值，不进入查询过滤器
const (
	FieldHour    = "hour"    // 允许的小时闭区间
	FieldYear    = "year"    // 要求的年份
	FieldGestion = "gestion" // 要求包含当前年份的学年期间串
)

// IsDynamicField 判断字段是否为动态字段
func IsDynamicField(field string) bool {
	switch field {
	case FieldHour, FieldYear, FieldGestion:
		return true
	}
	return false
}

// Filter 单字段的持久化过滤器片段，操作符名到值的映射
type Filter map[string]any

// FilterMap 字段名到过滤器片段的映射；空映射表示无附加限制
type FilterMap map[string]Filter

// operatorNames 条件操作符到持久化过滤器操作符的映射表
var operatorNames = map[model.Operator]string{
	model.OperatorEqual:              "equals",
	model.OperatorNotEqual:           "not",
	model.OperatorIn:                 "in",
	model.OperatorNotIn:              "notIn",
	model.OperatorGreaterThan:        "gt",
	model.OperatorGreaterThanOrEqual: "gte",
	model.OperatorLessThan:           "lt",
	model.OperatorLessThanOrEqual:    "lte",
	model.OperatorBetween:            "range",
}

// EvaluateDynamic 对条件做动态遍历；任一动态条件不满足即整体返回false，
// 静态字段在本遍历中跳过。评估绝不抛错，坏数据走保守默认值
func EvaluateDynamic(conditions []model.PermissionCondition, ctx Context) bool {
	for _, cond := range conditions {
		switch cond.Field {
		case FieldHour:
			start, end := hourRange(ctx.Resolve(cond.Value))
			if ctx.CurrentHour < start || ctx.CurrentHour > end {
				return false
			}
		case FieldYear:
			year, ok := yearOf(ctx.Resolve(cond.Value))
			if !ok || year != ctx.CurrentYear {
				return false
			}
		case FieldGestion:
			gestion, ok := ctx.Resolve(cond.Value).(string)
			if !ok || !strings.Contains(gestion, strconv.Itoa(ctx.CurrentYear)) {
				return false
			}
		}
	}
	return true
}

// ProjectStatic 把静态条件投影为查询过滤器；动态字段跳过，
// 未知操作符的条件被丢弃，同一字段的多个操作符可以叠加
func ProjectStatic(conditions []model.PermissionCondition, ctx Context) FilterMap {
	filter := FilterMap{}
	for _, cond := range conditions {
		if IsDynamicField(cond.Field) {
			continue
		}
		name, ok := operatorNames[cond.Operator]
		if !ok {
			continue
		}
		value := ctx.Resolve(cond.Value)
		fragment := filter[cond.Field]
		if fragment == nil {
			fragment = Filter{}
		}
		if cond.Operator == model.OperatorBetween {
			if pair, ok := value.([]any); ok && len(pair) == 2 {
				fragment["gte"] = pair[0]
				fragment["lte"] = pair[1]
			} else {
				// 元数不对时退化为按操作符名原样挂载，绝不抛错
				fragment[name] = value
			}
		} else {
			fragment[name] = value
		}
		filter[cond.Field] = fragment
	}
	return filter
}

// hourRange 把条件值解析为[start,end]小时闭区间，解析失败退回[0,23]
func hourRange(value any) (int, int) {
	pair, ok := value.([]any)
	if !ok || len(pair) != 2 {
		return 0, 23
	}
	start, okStart := toInt(pair[0])
	end, okEnd := toInt(pair[1])
	if !okStart || !okEnd {
		return 0, 23
	}
	return start, end
}

// yearOf 把条件值解析为期望年份：数组取首元素，标量做数值强制转换
func yearOf(value any) (int, bool) {
	if arr, ok := value.([]any); ok {
		if len(arr) == 0 {
			return 0, false
		}
		value = arr[0]
	}
	return toInt(value)
}

// toInt 数值强制转换，支持JSON数字和数字字符串
func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}
