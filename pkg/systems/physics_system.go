package systems

import (
	"log"

	"github.com/decker502/planewar/pkg/config"
	"github.com/decker502/planewar/pkg/ecs"
	"github.com/decker502/planewar/pkg/entities"
)

// CollisionResult 一次碰撞检测的结果
type CollisionResult struct {
	// Kills 被子弹击落的敌机数
	Kills int
	// PlayerHit 玩家是否在本 tick 撞上敌机
	PlayerHit bool
	// Explosion 玩家坠毁时生成的爆炸，否则为 nil
	Explosion *entities.Explosion
}

// PhysicsSystem 处理子弹、敌机和玩家之间的碰撞
//
// 子弹与敌机：双方都被移除，每对播放一次爆炸音效，不生成爆炸特效。
// 玩家与敌机：敌机保留，玩家被移除，在玩家中心生成爆炸特效。
type PhysicsSystem struct {
	entityManager *ecs.EntityManager
	factory       *entities.Factory
	sounds        entities.SoundPlayer
}

// NewPhysicsSystem 创建碰撞系统
func NewPhysicsSystem(em *ecs.EntityManager, f *entities.Factory, sounds entities.SoundPlayer) *PhysicsSystem {
	return &PhysicsSystem{
		entityManager: em,
		factory:       f,
		sounds:        sounds,
	}
}

// Update 执行本 tick 的碰撞检测
//
// 参数:
//   - player: 玩家飞机，已坠毁时传 nil（只检测子弹与敌机）
func (s *PhysicsSystem) Update(player *entities.Player) CollisionResult {
	var result CollisionResult

	hits := s.entityManager.GroupCollide(ecs.GroupBullets, ecs.GroupEnemies, true)
	for range hits {
		s.playSound(config.SoundExplosion)
		result.Kills++
	}

	if player == nil || !s.entityManager.IsAlive(player.ID()) {
		return result
	}
	if !s.entityManager.CollidesWithGroup(player, ecs.GroupEnemies) {
		return result
	}

	result.PlayerHit = true
	s.playSound(config.SoundExplosion)

	explosion := s.factory.NewExplosion(player.Position.X, player.Position.Y)
	s.entityManager.Add(explosion, ecs.GroupAll, ecs.GroupExplosions)
	s.entityManager.DestroyEntity(player.ID())
	result.Explosion = explosion

	log.Printf("[PhysicsSystem] Player %d destroyed at (%.0f, %.0f)", player.ID(), player.Position.X, player.Position.Y)
	return result
}

func (s *PhysicsSystem) playSound(soundID string) {
	if s.sounds == nil {
		return
	}
	s.sounds.PlaySound(soundID)
}
