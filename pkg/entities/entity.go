package entities

import (
	"github.com/decker502/planewar/pkg/components"
	"github.com/decker502/planewar/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
)

// SoundPlayer 音效播放接口（由 game.AudioManager 实现）
// 播放失败只返回 false，不影响游戏逻辑
type SoundPlayer interface {
	PlaySound(soundID string) bool
}

// IDAllocator 实体ID分配接口（由 ecs.EntityManager 实现）
type IDAllocator interface {
	CreateEntity() ecs.EntityID
}

// SpriteAsset 精灵图像及其碰撞尺寸
type SpriteAsset struct {
	Image  *ebiten.Image
	Width  float64
	Height float64
}

// NewSpriteAsset 使用图像自身尺寸创建精灵资源
func NewSpriteAsset(img *ebiten.Image) SpriteAsset {
	b := img.Bounds()
	return SpriteAsset{
		Image:  img,
		Width:  float64(b.Dx()),
		Height: float64(b.Dy()),
	}
}

// base 所有精灵实体共享的数据：ID、中心位置、碰撞盒、图像
type base struct {
	id        ecs.EntityID
	Position  components.PositionComponent
	Collision components.CollisionComponent
	Sprite    components.SpriteComponent
}

func newBase(id ecs.EntityID, x, y float64, sprite SpriteAsset) base {
	return base{
		id:        id,
		Position:  components.PositionComponent{X: x, Y: y},
		Collision: components.CollisionComponent{Width: sprite.Width, Height: sprite.Height},
		Sprite:    components.SpriteComponent{Image: sprite.Image},
	}
}

// ID 返回实体ID
func (b *base) ID() ecs.EntityID {
	return b.id
}

// Bounds 返回以当前位置为中心的碰撞盒
func (b *base) Bounds() components.AABB {
	return b.Collision.BoundsAt(b.Position)
}

// Visual 以精灵图像绘制
func (b *base) Visual() components.Visual {
	return components.Visual{
		Kind:  components.VisualSprite,
		Image: b.Sprite.Image,
	}
}
