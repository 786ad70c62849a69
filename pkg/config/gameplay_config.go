package config

import (
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// GameplayConfig 玩法数值配置
//
// 配置文件位置: data/gameplay.yaml
// 文件中缺省的字段保留 DefaultGameplayConfig 的值。
type GameplayConfig struct {
	Player    PlayerConfig    `yaml:"player"`
	Enemy     EnemyConfig     `yaml:"enemy"`
	Bullet    BulletConfig    `yaml:"bullet"`
	Explosion ExplosionConfig `yaml:"explosion"`
	Spawn     SpawnConfig     `yaml:"spawn"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	GameOver  GameOverConfig  `yaml:"gameOver"`
	Audio     AudioConfig     `yaml:"audio"`
}

// PlayerConfig 玩家飞机配置
type PlayerConfig struct {
	// Speed 水平移动速度（像素/tick）
	Speed float64 `yaml:"speed"`
	// BottomOffset 出生点中心距屏幕底部的距离
	BottomOffset float64 `yaml:"bottomOffset"`
}

// EnemyConfig 敌机配置
type EnemyConfig struct {
	// SpeedMin / SpeedMax 下落速度范围（像素/tick，闭区间整数）
	SpeedMin int `yaml:"speedMin"`
	SpeedMax int `yaml:"speedMax"`
	// SpawnMargin 出生点距左右边缘的最小距离
	SpawnMargin int `yaml:"spawnMargin"`
	// SpawnY 出生点中心Y（负值表示屏幕上方）
	SpawnY float64 `yaml:"spawnY"`
}

// BulletConfig 子弹配置
type BulletConfig struct {
	// Speed 上升速度（像素/tick）
	Speed float64 `yaml:"speed"`
}

// ExplosionConfig 爆炸特效配置
type ExplosionConfig struct {
	// Lifetime 持续帧数
	Lifetime int `yaml:"lifetime"`
	// Radius 初始半径
	Radius float64 `yaml:"radius"`
	// InnerRadius 首帧内圈半径
	InnerRadius float64 `yaml:"innerRadius"`
}

// SpawnConfig 敌机生成节奏
// 间隔 = max(MinInterval, BaseInterval - score/ScoreDivisor)
type SpawnConfig struct {
	BaseInterval int `yaml:"baseInterval"`
	MinInterval  int `yaml:"minInterval"`
	ScoreDivisor int `yaml:"scoreDivisor"`
}

// ScoringConfig 计分配置
type ScoringConfig struct {
	PointsPerKill int `yaml:"pointsPerKill"`
}

// GameOverConfig 结束画面配置
type GameOverConfig struct {
	// DurationTicks 结束画面持续帧数，到时退出
	DurationTicks int `yaml:"durationTicks"`
	// OverlayAlpha 半透明遮罩不透明度 0~255
	OverlayAlpha uint8 `yaml:"overlayAlpha"`
	// CountdownLabel 倒计时前缀，需要资源清单提供能显示该文字的字体
	CountdownLabel string `yaml:"countdownLabel"`
}

// AudioConfig 音量配置
type AudioConfig struct {
	MusicVolume float64 `yaml:"musicVolume"` // 0.0 ~ 1.0
	SoundVolume float64 `yaml:"soundVolume"` // 0.0 ~ 1.0
}

// DefaultGameplayConfig 返回原版数值
func DefaultGameplayConfig() *GameplayConfig {
	return &GameplayConfig{
		Player: PlayerConfig{
			Speed:        8,
			BottomOffset: 100,
		},
		Enemy: EnemyConfig{
			SpeedMin:    5,
			SpeedMax:    10,
			SpawnMargin: 30,
			SpawnY:      -30,
		},
		Bullet: BulletConfig{
			Speed: 10,
		},
		Explosion: ExplosionConfig{
			Lifetime:    60,
			Radius:      40,
			InnerRadius: 30,
		},
		Spawn: SpawnConfig{
			BaseInterval: 100,
			MinInterval:  30,
			ScoreDivisor: 10,
		},
		Scoring: ScoringConfig{
			PointsPerKill: 10,
		},
		GameOver: GameOverConfig{
			DurationTicks:  300,
			OverlayAlpha:   150,
			CountdownLabel: "Exiting...",
		},
		Audio: AudioConfig{
			MusicVolume: 0.7,
			SoundVolume: 0.8,
		},
	}
}

// ParseGameplayConfig 解析 YAML 数据，未出现的字段使用默认值
func ParseGameplayConfig(data []byte) (*GameplayConfig, error) {
	cfg := DefaultGameplayConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse gameplay config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid gameplay config: %w", err)
	}

	return cfg, nil
}

// LoadGameplayConfig 从文件系统加载玩法配置
//
// 参数:
//   - fsys: 资源文件系统（嵌入资源或磁盘目录）
//   - path: 配置文件路径（如 "data/gameplay.yaml"）
func LoadGameplayConfig(fsys fs.FS, path string) (*GameplayConfig, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read gameplay config: %w", err)
	}
	return ParseGameplayConfig(data)
}

// Validate 验证配置有效性
func (c *GameplayConfig) Validate() error {
	if c.Player.Speed <= 0 {
		return fmt.Errorf("player speed must be positive, got %.1f", c.Player.Speed)
	}
	if c.Enemy.SpeedMin <= 0 || c.Enemy.SpeedMin > c.Enemy.SpeedMax {
		return fmt.Errorf("enemy speed range invalid: min(%d) max(%d)", c.Enemy.SpeedMin, c.Enemy.SpeedMax)
	}
	if c.Enemy.SpawnMargin < 0 || 2*c.Enemy.SpawnMargin > GameWindowWidth {
		return fmt.Errorf("enemy spawn margin out of range: %d", c.Enemy.SpawnMargin)
	}
	if c.Bullet.Speed <= 0 {
		return fmt.Errorf("bullet speed must be positive, got %.1f", c.Bullet.Speed)
	}
	if c.Explosion.Lifetime <= 0 {
		return fmt.Errorf("explosion lifetime must be positive, got %d", c.Explosion.Lifetime)
	}
	if c.Spawn.MinInterval <= 0 || c.Spawn.MinInterval > c.Spawn.BaseInterval {
		return fmt.Errorf("spawn interval invalid: min(%d) base(%d)", c.Spawn.MinInterval, c.Spawn.BaseInterval)
	}
	if c.Spawn.ScoreDivisor <= 0 {
		return fmt.Errorf("spawn score divisor must be positive, got %d", c.Spawn.ScoreDivisor)
	}
	if c.Scoring.PointsPerKill < 0 {
		return fmt.Errorf("points per kill must not be negative, got %d", c.Scoring.PointsPerKill)
	}
	if c.GameOver.DurationTicks <= 0 {
		return fmt.Errorf("game over duration must be positive, got %d", c.GameOver.DurationTicks)
	}
	return nil
}
