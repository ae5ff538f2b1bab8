package order

import (
	"time"
)

// Status 订单状态
type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// AllStatuses 按生命周期顺序排列
var AllStatuses = []Status{StatusPending, StatusPaid, StatusShipped, StatusDelivered, StatusCancelled}

// transitions 合法的状态流转,delivered与cancelled为终态
var transitions = map[Status][]Status{
	StatusPending:   {StatusPaid, StatusCancelled},
	StatusPaid:      {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusDelivered},
	StatusDelivered: {},
	StatusCancelled: {},
}

// ParseStatus 解析状态字符串,空字符串返回ErrStatusRequired,未知值返回ErrUnknownStatus
func ParseStatus(s string) (Status, error) {
	if s == "" {
		return "", ErrStatusRequired
	}
	status := Status(s)
	if _, ok := transitions[status]; !ok {
		return "", ErrUnknownStatus.WithDetails("status=" + s)
	}
	return status, nil
}

// IsTerminal 是否为终态
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// StatusPolicy 状态流转策略
// Strict为false时任意已知状态之间都可切换
type StatusPolicy struct {
	Strict bool
}

// NewStatusPolicy 创建状态流转策略
func NewStatusPolicy(strict bool) StatusPolicy {
	return StatusPolicy{Strict: strict}
}

// CanTransition 检查from能否切换到to,相同状态视为允许(无操作)
func (p StatusPolicy) CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	if _, ok := transitions[to]; !ok {
		return false
	}
	if !p.Strict {
		return true
	}
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// TransitionTo 切换订单状态,返回状态是否实际发生变化
func (o *Order) TransitionTo(target Status, policy StatusPolicy) (bool, error) {
	if !policy.CanTransition(o.Status, target) {
		return false, ErrInvalidStatusTransition.WithDetails(string(o.Status) + " -> " + string(target))
	}
	if o.Status == target {
		return false, nil
	}
	o.Status = target
	o.UpdatedAt = time.Now()
	return true, nil
}
