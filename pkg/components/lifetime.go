package components

// LifetimeComponent 管理按帧计数的生命周期
// 用于爆炸等限时特效：Remaining 每个 tick 减 1，归零即过期
type LifetimeComponent struct {
	Remaining int // 剩余帧数
	Max       int // 最大帧数
}

// Tick 消耗一帧生命周期，返回是否已过期
func (l *LifetimeComponent) Tick() bool {
	l.Remaining--
	return l.Remaining <= 0
}
