package systems

import (
	"log"

	"github.com/decker502/planewar/pkg/config"
	"github.com/decker502/planewar/pkg/ecs"
	"github.com/decker502/planewar/pkg/entities"
)

// SpawnSystem 管理敌机的定时生成
//
// 计时器每 tick 加 1，达到当前间隔时生成一架敌机并清零。
// 间隔随分数线性缩短：
//
//	interval = max(MinInterval, BaseInterval - score/ScoreDivisor)
//
// 结束画面期间仍然生成（敌机不再移动）。
type SpawnSystem struct {
	entityManager *ecs.EntityManager
	factory       *entities.Factory
	cfg           config.SpawnConfig
	timer         int // 当前计时（tick）
}

// NewSpawnSystem 创建一个新的敌机生成系统
func NewSpawnSystem(em *ecs.EntityManager, f *entities.Factory, cfg config.SpawnConfig) *SpawnSystem {
	log.Printf("[SpawnSystem] Initialized with interval=%d, min=%d", cfg.BaseInterval, cfg.MinInterval)
	return &SpawnSystem{
		entityManager: em,
		factory:       f,
		cfg:           cfg,
	}
}

// Interval 返回给定分数下的生成间隔（tick）
// 默认配置下分数 500 时为 50，分数达到 700 后保持最小间隔 30
func (s *SpawnSystem) Interval(score int) int {
	return max(s.cfg.MinInterval, s.cfg.BaseInterval-score/s.cfg.ScoreDivisor)
}

// Timer 返回当前计时
func (s *SpawnSystem) Timer() int {
	return s.timer
}

// Update 推进计时器，到达间隔时生成敌机并加入 all 和 enemies 分组
// 返回本 tick 生成的敌机，没有生成时返回 nil
func (s *SpawnSystem) Update(score int) *entities.Enemy {
	s.timer++
	if s.timer < s.Interval(score) {
		return nil
	}
	s.timer = 0

	enemy := s.factory.NewEnemy()
	s.entityManager.Add(enemy, ecs.GroupAll, ecs.GroupEnemies)
	log.Printf("[SpawnSystem] Spawned enemy %d at x=%.0f speed=%d", enemy.ID(), enemy.Position.X, enemy.Speed())
	return enemy
}
