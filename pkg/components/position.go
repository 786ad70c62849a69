package components

// PositionComponent 存储实体中心点的屏幕坐标（像素）
type PositionComponent struct {
	X float64
	Y float64
}

// Move 按速度移动一个 tick
func (p *PositionComponent) Move(v VelocityComponent) {
	p.X += v.VX
	p.Y += v.VY
}
