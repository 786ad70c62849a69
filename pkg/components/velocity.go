package components

// VelocityComponent 存储实体每个 tick 的位移（像素/tick）
// 速度在实体创建时确定，之后不再修改
type VelocityComponent struct {
	VX float64
	VY float64
}
