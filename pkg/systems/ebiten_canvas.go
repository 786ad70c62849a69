package systems

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// EbitenCanvas 基于 ebiten.Image 的 Canvas 实现
type EbitenCanvas struct {
	screen *ebiten.Image
	faces  map[FontStyle]*text.GoTextFace
}

// NewEbitenCanvas 创建画布
//
// 参数:
//   - hud: 分数和倒计时使用的字体
//   - title: 结束标题使用的字体
func NewEbitenCanvas(hud, title *text.GoTextFace) *EbitenCanvas {
	return &EbitenCanvas{
		faces: map[FontStyle]*text.GoTextFace{
			FontHUD:   hud,
			FontTitle: title,
		},
	}
}

// SetTarget 设置本帧的绘制目标（ebiten 每帧传入的 screen）
func (c *EbitenCanvas) SetTarget(screen *ebiten.Image) {
	c.screen = screen
}

// Clear 用纯色填充整个画面
func (c *EbitenCanvas) Clear(clr color.Color) {
	c.screen.Fill(clr)
}

// DrawImage 以 (cx, cy) 为中心绘制图像
func (c *EbitenCanvas) DrawImage(img *ebiten.Image, cx, cy float64) {
	if img == nil {
		return
	}
	bounds := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(cx-float64(bounds.Dx())/2, cy-float64(bounds.Dy())/2)
	c.screen.DrawImage(img, op)
}

// FillCircle 绘制实心圆（抗锯齿）
func (c *EbitenCanvas) FillCircle(cx, cy, r float64, clr color.Color) {
	if r <= 0 {
		return
	}
	vector.DrawFilledCircle(c.screen, float32(cx), float32(cy), float32(r), clr, true)
}

// FillRect 绘制实心矩形
func (c *EbitenCanvas) FillRect(x, y, w, h float64, clr color.Color) {
	vector.DrawFilledRect(c.screen, float32(x), float32(y), float32(w), float32(h), clr, false)
}

// DrawText 绘制单行文本
func (c *EbitenCanvas) DrawText(s string, style FontStyle, clr color.Color, x, y float64, align TextAlign) {
	face := c.faces[style]
	if face == nil {
		return
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	if align == AlignCenter {
		op.LayoutOptions.PrimaryAlign = text.AlignCenter   // 水平居中
		op.LayoutOptions.SecondaryAlign = text.AlignCenter // 垂直居中
	}
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(c.screen, s, face, op)
}
