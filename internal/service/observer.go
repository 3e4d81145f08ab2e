package service

import (
	"github.com/moisicmo/dinokids-serve-sub000/pkg/ability"
	"github.com/moisicmo/dinokids-serve-sub000/pkg/logger"
)

// LogObserver 把授权决策写入控制台日志的观察者
type LogObserver struct{}

// NewLogObserver 创建日志观察者实例
func NewLogObserver() ability.Observer {
	return LogObserver{}
}

// OnDecision 记录单次允许/拒绝判定
func (LogObserver) OnDecision(decision ability.Decision) {
	if decision.Allowed {
		logger.Debug("authz allow user=%s action=%s subject=%s", decision.UserID, decision.Action, decision.Subject)
		return
	}
	logger.Warn("authz deny user=%s action=%s subject=%s reason=%q", decision.UserID, decision.Action, decision.Subject, decision.Reason)
}
