package entities

import (
	"image/color"
	"math"

	"github.com/decker502/planewar/pkg/components"
	"github.com/decker502/planewar/pkg/ecs"
)

var (
	explosionColor      = color.NRGBA{R: 255, G: 200, B: 0, A: 255}
	explosionInnerColor = color.NRGBA{R: 255, G: 100, B: 0, A: 200}
)

// Explosion 玩家坠毁时的爆炸特效
//
// 中心固定，随剩余寿命线性缩小、变淡：
//
//	alpha  = floor(255 * remaining / max)
//	radius = floor(maxRadius * remaining / max)
//
// 首帧额外绘制一个橙色内圈。
type Explosion struct {
	id       ecs.EntityID
	Position components.PositionComponent
	Lifetime components.LifetimeComponent

	maxRadius   float64
	innerRadius float64
	radius      float64
	alpha       uint8
	firstFrame  bool
}

// ID 返回实体ID
func (e *Explosion) ID() ecs.EntityID {
	return e.id
}

// Update 消耗一帧寿命并重新计算半径和透明度
func (e *Explosion) Update() bool {
	e.firstFrame = false
	if e.Lifetime.Tick() {
		e.radius = 0
		e.alpha = 0
		return true
	}
	e.alpha = uint8(255 * e.Lifetime.Remaining / e.Lifetime.Max)
	e.radius = math.Floor(e.maxRadius * float64(e.Lifetime.Remaining) / float64(e.Lifetime.Max))
	return false
}

// Radius 返回当前半径
func (e *Explosion) Radius() float64 {
	return e.radius
}

// Alpha 返回当前不透明度
func (e *Explosion) Alpha() uint8 {
	return e.alpha
}

// Bounds 返回包围当前圆盘的正方形
func (e *Explosion) Bounds() components.AABB {
	return components.AABB{
		Left:   e.Position.X - e.radius,
		Top:    e.Position.Y - e.radius,
		Right:  e.Position.X + e.radius,
		Bottom: e.Position.Y + e.radius,
	}
}

// Visual 返回圆盘描述
func (e *Explosion) Visual() components.Visual {
	c := explosionColor
	c.A = e.alpha
	v := components.Visual{
		Kind:   components.VisualDisc,
		Radius: e.radius,
		Color:  c,
	}
	if e.firstFrame {
		v.InnerRadius = e.innerRadius
		v.InnerColor = explosionInnerColor
	}
	return v
}
