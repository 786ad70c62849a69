package scenes

import (
	"log"
	"math/rand/v2"

	"github.com/decker502/planewar/pkg/components"
	"github.com/decker502/planewar/pkg/config"
	"github.com/decker502/planewar/pkg/ecs"
	"github.com/decker502/planewar/pkg/entities"
	"github.com/decker502/planewar/pkg/systems"
)

// Audio 场景使用的音频接口（由 game.AudioManager 实现）
// 所有方法都不返回错误，失败时由实现方记录日志
type Audio interface {
	entities.SoundPlayer
	PlayMusic(musicID string) bool
	StopMusic()
}

// Phase 游戏阶段
type Phase int

const (
	// PhasePlaying 游戏进行中
	PhasePlaying Phase = iota
	// PhaseGameOver 玩家坠毁后的结束画面，只会进入一次
	PhaseGameOver
)

// String 返回阶段名称（用于日志）
func (p Phase) String() string {
	if p == PhaseGameOver {
		return "GameOver"
	}
	return "Playing"
}

// ShooterScene 一局游戏的全部状态
//
// 每个 tick 依次执行：
//  1. 输入：退出请求在本 tick 结束后生效；进行中按下开火发射子弹
//  2. 敌机生成计时
//  3. 进行中更新所有实体；结束画面只更新爆炸并累加计时
//  4. 碰撞检测与计分
//
// 绘制与 tick 分离，由 Draw 完成。
type ShooterScene struct {
	cfg           *config.GameplayConfig
	entityManager *ecs.EntityManager
	factory       *entities.Factory
	audio         Audio

	spawnSystem   *systems.SpawnSystem
	physicsSystem *systems.PhysicsSystem
	renderSystem  *systems.RenderSystem

	player  *entities.Player
	score   int
	phase   Phase
	elapsed int // 进入结束画面后经过的 tick 数
	quit    bool
	ticks   int
}

// NewShooterScene 创建一局新游戏，玩家位于屏幕底部中央
//
// 参数:
//   - cfg: 玩法配置
//   - sprites: 玩家、敌机、子弹的精灵
//   - rng: 敌机随机数源
//   - audio: 音频播放，不能为 nil（无声运行时使用 game.NopAudio）
func NewShooterScene(cfg *config.GameplayConfig, sprites entities.SpriteSet, rng *rand.Rand, audio Audio) *ShooterScene {
	em := ecs.NewEntityManager()
	factory := entities.NewFactory(em, cfg, sprites, rng, audio)

	s := &ShooterScene{
		cfg:           cfg,
		entityManager: em,
		factory:       factory,
		audio:         audio,
		spawnSystem:   systems.NewSpawnSystem(em, factory, cfg.Spawn),
		physicsSystem: systems.NewPhysicsSystem(em, factory, audio),
		renderSystem:  systems.NewRenderSystem(em, cfg.GameOver),
	}

	s.player = factory.NewPlayer()
	em.Add(s.player, ecs.GroupAll)

	log.Printf("[ShooterScene] New run, player %d at (%.0f, %.0f)", s.player.ID(), s.player.Position.X, s.player.Position.Y)
	return s
}

// Start 开始循环播放背景音乐
func (s *ShooterScene) Start() {
	if !s.audio.PlayMusic(config.SoundBackgroundMusic) {
		log.Printf("[ShooterScene] Background music unavailable, continuing without it")
	}
}

// Close 停止背景音乐
func (s *ShooterScene) Close() {
	s.audio.StopMusic()
	log.Printf("[ShooterScene] Closed after %d ticks, score=%d", s.ticks, s.score)
}

// Tick 推进一个 tick
// 结束后（Finished 返回 true）再调用不做任何事
func (s *ShooterScene) Tick(input components.InputState) {
	if s.Finished() {
		return
	}
	s.ticks++

	// 1. 输入
	if input.Quit || input.Escape {
		log.Printf("[ShooterScene] Quit requested at tick %d", s.ticks)
		s.quit = true
	}
	if input.Fire && s.phase == PhasePlaying {
		bullet := s.player.Shoot(s.factory)
		s.entityManager.Add(bullet, ecs.GroupAll, ecs.GroupBullets)
	}

	// 2. 敌机生成
	s.spawnSystem.Update(s.score)

	// 3. 更新实体
	switch s.phase {
	case PhasePlaying:
		s.player.SetInput(input)
		s.entityManager.UpdateGroup(ecs.GroupAll)
	case PhaseGameOver:
		s.entityManager.UpdateGroup(ecs.GroupExplosions)
		s.elapsed++
	}

	// 4. 碰撞
	var player *entities.Player
	if s.phase == PhasePlaying {
		player = s.player
	}
	result := s.physicsSystem.Update(player)
	s.score += result.Kills * s.cfg.Scoring.PointsPerKill

	if result.PlayerHit {
		s.phase = PhaseGameOver
		s.elapsed = 0
		log.Printf("[ShooterScene] Game over at tick %d, final score=%d", s.ticks, s.score)
	}
}

// Finished 返回游戏循环是否应当结束
// 收到退出请求，或结束画面持续满 DurationTicks
func (s *ShooterScene) Finished() bool {
	if s.quit {
		return true
	}
	return s.phase == PhaseGameOver && s.elapsed >= s.cfg.GameOver.DurationTicks
}

// Countdown 返回结束画面显示的剩余秒数
func (s *ShooterScene) Countdown() int {
	remaining := max(0, s.cfg.GameOver.DurationTicks-s.elapsed)
	return remaining/config.TicksPerSecond + 1
}

// Draw 绘制当前帧
func (s *ShooterScene) Draw(canvas systems.Canvas) {
	s.renderSystem.DrawWorld(canvas)
	s.renderSystem.DrawScore(canvas, s.score)
	if s.phase == PhaseGameOver {
		s.renderSystem.DrawGameOver(canvas, s.score, s.Countdown())
	}
}

// Score 返回当前分数
func (s *ShooterScene) Score() int {
	return s.score
}

// Phase 返回当前阶段
func (s *ShooterScene) Phase() Phase {
	return s.phase
}

// Elapsed 返回进入结束画面后经过的 tick 数
func (s *ShooterScene) Elapsed() int {
	return s.elapsed
}

// Ticks 返回已执行的 tick 数
func (s *ShooterScene) Ticks() int {
	return s.ticks
}

// Player 返回玩家飞机（坠毁后仍返回最后的状态）
func (s *ShooterScene) Player() *entities.Player {
	return s.player
}

// EntityManager 返回实体管理器
func (s *ShooterScene) EntityManager() *ecs.EntityManager {
	return s.entityManager
}
