package entities

import (
	"github.com/decker502/planewar/pkg/components"
	"github.com/decker502/planewar/pkg/config"
)

// Enemy 敌机
// 以出生时确定的速度匀速下落，顶部越过屏幕底部后过期
type Enemy struct {
	base
	Velocity components.VelocityComponent
	speed    int
}

// Speed 返回下落速度（像素/tick），出生后不变
func (e *Enemy) Speed() int {
	return e.speed
}

// Update 下落一个 tick
func (e *Enemy) Update() bool {
	e.Position.Move(e.Velocity)
	return e.Bounds().Top > float64(config.GameWindowHeight)
}
