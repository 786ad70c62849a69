// simulate 无窗口运行一局游戏
//
// 使用固定种子和自动驾驶输入，逐 tick 驱动 ShooterScene，
// 用于复现问题和检查难度曲线。
//
// 用法：
//
//	go run ./cmd/simulate -seed 42 -ticks 3600
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/png"
	"io"
	"io/fs"
	"log"
	"math/rand/v2"
	"os"

	"github.com/decker502/planewar/pkg/components"
	"github.com/decker502/planewar/pkg/config"
	"github.com/decker502/planewar/pkg/ecs"
	"github.com/decker502/planewar/pkg/entities"
	"github.com/decker502/planewar/pkg/game"
	"github.com/decker502/planewar/pkg/scenes"
)

var (
	seed      = flag.Uint64("seed", 1, "敌机随机数种子")
	maxTicks  = flag.Int("ticks", 60*60, "最多运行的 tick 数")
	fireEvery = flag.Int("fire-every", 8, "每隔多少 tick 开火一次（0 表示不开火）")
	assetsDir = flag.String("assets", ".", "资源根目录（包含 assets/ 和 data/）")
	verbose   = flag.Bool("verbose", false, "显示详细调试信息")
)

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	fsys := os.DirFS(*assetsDir)
	cfg, err := config.LoadGameplayConfig(fsys, "data/gameplay.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载玩法配置失败: %v\n", err)
		os.Exit(1)
	}

	sprites, err := spriteSizes(fsys)
	if err != nil {
		fmt.Fprintf(os.Stderr, "读取精灵尺寸失败: %v\n", err)
		os.Exit(1)
	}

	rng := rand.New(rand.NewPCG(*seed, *seed))
	scene := scenes.NewShooterScene(cfg, sprites, rng, game.NopAudio{})
	scene.Start()
	defer scene.Close()

	peakEnemies := 0
	for scene.Ticks() < *maxTicks && !scene.Finished() {
		scene.Tick(autopilot(scene, *fireEvery))
		peakEnemies = max(peakEnemies, scene.EntityManager().Count(ecs.GroupEnemies))
	}

	fmt.Printf("seed:         %d\n", *seed)
	fmt.Printf("ticks:        %d (%.1fs)\n", scene.Ticks(), float64(scene.Ticks())/config.TicksPerSecond)
	fmt.Printf("phase:        %s\n", scene.Phase())
	fmt.Printf("score:        %d\n", scene.Score())
	fmt.Printf("peak enemies: %d\n", peakEnemies)
}

// spriteSizes 只读取 PNG 头部获得尺寸，不创建 GPU 图像
func spriteSizes(fsys fs.FS) (entities.SpriteSet, error) {
	rm := game.NewResourceManager(nil, fsys)
	if err := rm.LoadResourceConfig("assets/config/resources.yaml"); err != nil {
		return entities.SpriteSet{}, err
	}

	size := func(id string) (entities.SpriteAsset, error) {
		path, err := rm.ResolvePath(id)
		if err != nil {
			return entities.SpriteAsset{}, err
		}
		f, err := fsys.Open(path)
		if err != nil {
			return entities.SpriteAsset{}, err
		}
		defer f.Close()
		cfg, _, err := image.DecodeConfig(f)
		if err != nil {
			return entities.SpriteAsset{}, fmt.Errorf("decode %s: %w", path, err)
		}
		return entities.SpriteAsset{Width: float64(cfg.Width), Height: float64(cfg.Height)}, nil
	}

	var set entities.SpriteSet
	var err error
	if set.Player, err = size(config.ImagePlayer); err != nil {
		return set, err
	}
	if set.Enemy, err = size(config.ImageEnemy); err != nil {
		return set, err
	}
	if set.Bullet, err = size(config.ImageBullet); err != nil {
		return set, err
	}
	return set, nil
}

// autopilot 对准最低的敌机并定时开火
func autopilot(scene *scenes.ShooterScene, fireEvery int) components.InputState {
	var input components.InputState
	if fireEvery > 0 && scene.Ticks()%fireEvery == 0 {
		input.Fire = true
	}

	var target *entities.Enemy
	for _, e := range scene.EntityManager().GetEntities(ecs.GroupEnemies) {
		enemy, ok := e.(*entities.Enemy)
		if !ok {
			continue
		}
		if target == nil || enemy.Position.Y > target.Position.Y {
			target = enemy
		}
	}
	if target == nil {
		return input
	}

	x := scene.Player().Position.X
	speed := scene.Player().Speed
	switch {
	case target.Position.X < x-speed:
		input.Left = true
	case target.Position.X > x+speed:
		input.Right = true
	}
	return input
}
