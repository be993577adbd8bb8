package round

import "fmt"

// State 回合状态
type State int

const (
	// StateSetup 已创建，尚未调用 Setup
	StateSetup State = iota
	// StateInteracting 玩家正在分配参考
	StateInteracting
	// StateValidating 点击检查后的瞬时状态
	StateValidating
	// StateResolved 已给出判定，等待重试或确认
	StateResolved
	// StateClosed 已拆除
	StateClosed
)

// String 返回状态名称
func (s State) String() string {
	switch s {
	case StateSetup:
		return "setup"
	case StateInteracting:
		return "interacting"
	case StateValidating:
		return "validating"
	case StateResolved:
		return "resolved"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}
