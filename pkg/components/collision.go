package components

// CollisionComponent 定义实体的碰撞检测边界框
// 碰撞盒中心对齐实体位置，尺寸与精灵图像一致
type CollisionComponent struct {
	Width  float64 // 碰撞盒宽度（像素）
	Height float64 // 碰撞盒高度（像素）
}

// AABB 轴对齐边界框（屏幕坐标，Y 轴向下）
type AABB struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// BoundsAt 计算以 pos 为中心的碰撞盒
func (c CollisionComponent) BoundsAt(pos PositionComponent) AABB {
	return AABB{
		Left:   pos.X - c.Width/2,
		Top:    pos.Y - c.Height/2,
		Right:  pos.X + c.Width/2,
		Bottom: pos.Y + c.Height/2,
	}
}

// Overlaps 检查两个边界框是否重叠
// 仅边缘相接不算碰撞（重叠面积必须大于 0）
func (a AABB) Overlaps(b AABB) bool {
	return a.Left < b.Right &&
		b.Left < a.Right &&
		a.Top < b.Bottom &&
		b.Top < a.Bottom
}

// CenterX 返回边界框中心 X
func (a AABB) CenterX() float64 {
	return (a.Left + a.Right) / 2
}

// CenterY 返回边界框中心 Y
func (a AABB) CenterY() float64 {
	return (a.Top + a.Bottom) / 2
}
