// Package utils 提供通用工具函数
package utils

import (
	"image"

	"github.com/decker502/planewar/pkg/components"
	"github.com/decker502/planewar/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PollInput 读取当前 tick 的输入状态
//
// 键盘：
//   - ←/→ 或 A/D 按住移动
//   - 空格 每次按下发射一颗子弹
//   - Esc 退出
//
// 触摸（移动端）：按住屏幕左/右三分之一移动，点击中间三分之一发射。
// 关闭窗口请求映射为 Quit。
func PollInput() components.InputState {
	state := components.InputState{
		Quit:   ebiten.IsWindowBeingClosed(),
		Escape: inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		Left:   ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		Right:  ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD),
		Fire:   inpututil.IsKeyJustPressed(ebiten.KeySpace),
	}

	held := touchPoints(ebiten.AppendTouchIDs(nil))
	pressed := touchPoints(inpututil.AppendJustPressedTouchIDs(nil))
	left, right, fire := TouchControls(config.GameWindowWidth, held, pressed)

	state.Left = state.Left || left
	state.Right = state.Right || right
	state.Fire = state.Fire || fire
	return state
}

func touchPoints(ids []ebiten.TouchID) []image.Point {
	if len(ids) == 0 {
		return nil
	}
	points := make([]image.Point, 0, len(ids))
	for _, id := range ids {
		x, y := ebiten.TouchPosition(id)
		points = append(points, image.Pt(x, y))
	}
	return points
}

// TouchControls 把触摸点映射为方向和开火
//
// 参数:
//   - width: 逻辑屏幕宽度
//   - held: 所有按住的触摸点
//   - justPressed: 本 tick 新按下的触摸点
func TouchControls(width int, held, justPressed []image.Point) (left, right, fire bool) {
	third := width / 3
	for _, p := range held {
		switch {
		case p.X < third:
			left = true
		case p.X >= width-third:
			right = true
		}
	}
	for _, p := range justPressed {
		if p.X >= third && p.X < width-third {
			fire = true
		}
	}
	return left, right, fire
}
