package ability

import (
	"github.com/moisicmo/dinokids-serve-sub000/internal/model"
)

// Decision 单次授权决策的观测记录
type Decision struct {
	UserID  string        `json:"user_id"`
	Action  model.Action  `json:"action"`
	Subject model.Subject `json:"subject"`
	Allowed bool          `json:"allowed"`
	Reason  string        `json:"reason,omitempty"`
}

// Observer 授权决策观察者，与判定逻辑解耦的观测挂钩
type Observer interface {
	// OnDecision 每次允许/拒绝判定后回调
	OnDecision(decision Decision)
}

// NopObserver 空观察者
type NopObserver struct{}

// OnDecision 空实现
func (NopObserver) OnDecision(Decision) {}
