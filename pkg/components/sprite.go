package components

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// SpriteComponent 存储实体的视觉表现(当前绘制的图像)
// Image 是资源层提供的不透明句柄，游戏逻辑不读取其内容，测试中可为 nil
type SpriteComponent struct {
	Image *ebiten.Image
}

// VisualKind 视觉表现类型
type VisualKind int

const (
	// VisualSprite 以实体中心绘制精灵图像
	VisualSprite VisualKind = iota
	// VisualDisc 绘制实心圆（爆炸特效）
	VisualDisc
)

// Visual 描述实体当前帧应如何绘制
// 由实体在每个 tick 后给出，渲染系统只读
type Visual struct {
	Kind  VisualKind
	Image *ebiten.Image // VisualSprite 使用

	// VisualDisc 使用
	Radius      float64
	Color       color.NRGBA
	InnerRadius float64     // 0 表示没有内圈
	InnerColor  color.NRGBA // 内圈颜色
}
