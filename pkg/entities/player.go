package entities

import (
	"github.com/decker502/planewar/pkg/components"
	"github.com/decker502/planewar/pkg/config"
)

// Player 玩家飞机
// 每局唯一，只能水平移动，碰撞盒始终完整地位于屏幕宽度内
type Player struct {
	base
	Speed float64 // 水平速度（像素/tick）

	input components.InputState
}

// SetInput 设置本 tick 的输入，下一次 Update 使用
func (p *Player) SetInput(input components.InputState) {
	p.input = input
}

// Update 根据左右方向键移动，并把位置限制在屏幕内
// 玩家不会自行过期
func (p *Player) Update() bool {
	if p.input.Left {
		p.Position.X -= p.Speed
	}
	if p.input.Right {
		p.Position.X += p.Speed
	}
	p.clamp()
	return false
}

func (p *Player) clamp() {
	half := p.Collision.Width / 2
	minX := half
	maxX := float64(config.GameWindowWidth) - half
	if minX > maxX {
		// 图像比屏幕还宽，只能居中
		p.Position.X = float64(config.GameWindowWidth) / 2
		return
	}
	if p.Position.X < minX {
		p.Position.X = minX
	}
	if p.Position.X > maxX {
		p.Position.X = maxX
	}
}

// Shoot 在机头（碰撞盒顶部中点）发射一颗子弹
// 子弹音效在子弹创建时播放
func (p *Player) Shoot(f *Factory) *Bullet {
	return f.NewBullet(p.Position.X, p.Bounds().Top)
}
