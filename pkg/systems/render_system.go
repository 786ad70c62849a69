package systems

import (
	"fmt"
	"image/color"

	"github.com/decker502/planewar/pkg/components"
	"github.com/decker502/planewar/pkg/config"
	"github.com/decker502/planewar/pkg/ecs"
)

var (
	backgroundColor = color.Black
	textColor       = color.White
	gameOverColor   = color.NRGBA{R: 255, G: 0, B: 0, A: 255}
)

// RenderSystem 绘制游戏世界和 HUD
//
// 绘制顺序（从底到顶）：背景 → all 分组内的实体（按加入顺序）→ 分数 → 结束画面
type RenderSystem struct {
	entityManager *ecs.EntityManager
	gameOver      config.GameOverConfig
}

// NewRenderSystem 创建一个新的渲染系统
func NewRenderSystem(em *ecs.EntityManager, gameOver config.GameOverConfig) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
		gameOver:      gameOver,
	}
}

// DrawWorld 清屏并绘制所有实体
func (s *RenderSystem) DrawWorld(canvas Canvas) {
	canvas.Clear(backgroundColor)

	for _, e := range s.entityManager.GetEntities(ecs.GroupAll) {
		box := e.Bounds()
		drawVisual(canvas, e.Visual(), box.CenterX(), box.CenterY())
	}
}

func drawVisual(canvas Canvas, v components.Visual, cx, cy float64) {
	switch v.Kind {
	case components.VisualSprite:
		canvas.DrawImage(v.Image, cx, cy)
	case components.VisualDisc:
		canvas.FillCircle(cx, cy, v.Radius, v.Color)
		if v.InnerRadius > 0 {
			canvas.FillCircle(cx, cy, v.InnerRadius, v.InnerColor)
		}
	}
}

// DrawScore 在左上角绘制分数
func (s *RenderSystem) DrawScore(canvas Canvas, score int) {
	canvas.DrawText(fmt.Sprintf("Score: %d", score), FontHUD, textColor, 10, 10, AlignStart)
}

// DrawGameOver 绘制结束画面：半透明遮罩、标题、最终分数和退出倒计时
func (s *RenderSystem) DrawGameOver(canvas Canvas, score, countdown int) {
	w := float64(config.GameWindowWidth)
	h := float64(config.GameWindowHeight)

	canvas.FillRect(0, 0, w, h, color.NRGBA{A: s.gameOver.OverlayAlpha})
	canvas.DrawText("Game Over", FontTitle, gameOverColor, w/2, h/2-50, AlignCenter)
	canvas.DrawText(fmt.Sprintf("Final Score: %d", score), FontHUD, textColor, w/2, h/2+50, AlignCenter)
	canvas.DrawText(fmt.Sprintf("%s %d", s.gameOver.CountdownLabel, countdown), FontHUD, textColor, w/2, h-100, AlignCenter)
}
