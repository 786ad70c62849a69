package systems

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// FontStyle 文本字号
type FontStyle int

const (
	// FontHUD 分数、倒计时等小字（30pt）
	FontHUD FontStyle = iota
	// FontTitle "Game Over" 大标题（80pt 粗体）
	FontTitle
)

// TextAlign 文本水平对齐方式
type TextAlign int

const (
	// AlignStart (x, y) 为文本左上角
	AlignStart TextAlign = iota
	// AlignCenter (x, y) 为文本中心
	AlignCenter
)

// Canvas 绘制目标
//
// 渲染系统只通过此接口绘制，桌面端由 EbitenCanvas 实现，
// 测试中使用记录调用的假实现。
type Canvas interface {
	// Clear 用纯色填充整个画面
	Clear(c color.Color)
	// DrawImage 以 (cx, cy) 为中心绘制图像
	DrawImage(img *ebiten.Image, cx, cy float64)
	// FillCircle 绘制实心圆
	FillCircle(cx, cy, r float64, c color.Color)
	// FillRect 绘制实心矩形，(x, y) 为左上角
	FillRect(x, y, w, h float64, c color.Color)
	// DrawText 绘制单行文本
	DrawText(s string, style FontStyle, c color.Color, x, y float64, align TextAlign)
}
