package entities

import "github.com/decker502/planewar/pkg/components"

// Bullet 玩家子弹
// 以恒定速度上升，底部越过屏幕顶部后过期
type Bullet struct {
	base
	Velocity components.VelocityComponent
}

// Speed 返回上升速度（像素/tick）
func (b *Bullet) Speed() float64 {
	return -b.Velocity.VY
}

// Update 上升一个 tick
func (b *Bullet) Update() bool {
	b.Position.Move(b.Velocity)
	return b.Bounds().Bottom < 0
}
