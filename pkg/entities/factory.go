package entities

import (
	"log"
	"math/rand/v2"

	"github.com/decker502/planewar/pkg/components"
	"github.com/decker502/planewar/pkg/config"
)

// SpriteSet 游戏使用的三种精灵
type SpriteSet struct {
	Player SpriteAsset
	Enemy  SpriteAsset
	Bullet SpriteAsset
}

// Factory 创建游戏实体
//
// 只负责构造实体，不负责加入 EntityManager 的分组；
// 分组归属由场景决定。
type Factory struct {
	ids     IDAllocator
	cfg     *config.GameplayConfig
	sprites SpriteSet
	rng     *rand.Rand
	sounds  SoundPlayer
}

// NewFactory 创建实体工厂
//
// 参数:
//   - ids: 实体ID分配器
//   - cfg: 玩法配置
//   - sprites: 精灵资源
//   - rng: 随机数源（敌机出生位置与速度），测试中可固定种子
//   - sounds: 音效播放器，为 nil 时不播放
func NewFactory(ids IDAllocator, cfg *config.GameplayConfig, sprites SpriteSet, rng *rand.Rand, sounds SoundPlayer) *Factory {
	return &Factory{
		ids:     ids,
		cfg:     cfg,
		sprites: sprites,
		rng:     rng,
		sounds:  sounds,
	}
}

// NewPlayer 在屏幕底部中央创建玩家
func (f *Factory) NewPlayer() *Player {
	x := float64(config.GameWindowWidth / 2)
	y := float64(config.GameWindowHeight) - f.cfg.Player.BottomOffset
	return &Player{
		base:  newBase(f.ids.CreateEntity(), x, y, f.sprites.Player),
		Speed: f.cfg.Player.Speed,
	}
}

// NewEnemy 在屏幕上方随机位置创建敌机
// X ∈ [margin, W-margin]，速度 ∈ [SpeedMin, SpeedMax]，均为整数闭区间
func (f *Factory) NewEnemy() *Enemy {
	margin := f.cfg.Enemy.SpawnMargin
	x := margin + f.rng.IntN(config.GameWindowWidth-2*margin+1)
	speed := f.cfg.Enemy.SpeedMin + f.rng.IntN(f.cfg.Enemy.SpeedMax-f.cfg.Enemy.SpeedMin+1)
	return f.NewEnemyAt(float64(x), f.cfg.Enemy.SpawnY, speed)
}

// NewEnemyAt 在指定位置以指定速度创建敌机
func (f *Factory) NewEnemyAt(x, y float64, speed int) *Enemy {
	return &Enemy{
		base:     newBase(f.ids.CreateEntity(), x, y, f.sprites.Enemy),
		Velocity: components.VelocityComponent{VY: float64(speed)},
		speed:    speed,
	}
}

// NewBullet 以 (x, y) 为中心创建子弹，并播放发射音效
func (f *Factory) NewBullet(x, y float64) *Bullet {
	b := &Bullet{
		base:     newBase(f.ids.CreateEntity(), x, y, f.sprites.Bullet),
		Velocity: components.VelocityComponent{VY: -f.cfg.Bullet.Speed},
	}
	if f.sounds != nil && !f.sounds.PlaySound(config.SoundBulletFired) {
		log.Printf("[Factory] bullet sound unavailable")
	}
	return b
}

// NewExplosion 以 (x, y) 为中心创建满尺寸的爆炸
func (f *Factory) NewExplosion(x, y float64) *Explosion {
	lifetime := f.cfg.Explosion.Lifetime
	return &Explosion{
		id:          f.ids.CreateEntity(),
		Position:    components.PositionComponent{X: x, Y: y},
		Lifetime:    components.LifetimeComponent{Remaining: lifetime, Max: lifetime},
		maxRadius:   f.cfg.Explosion.Radius,
		innerRadius: f.cfg.Explosion.InnerRadius,
		radius:      f.cfg.Explosion.Radius,
		alpha:       255,
		firstFrame:  true,
	}
}
