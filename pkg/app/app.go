// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"io/fs"
	"log"
	"math/rand/v2"
	"os"
	"time"

	"github.com/decker502/planewar/pkg/config"
	"github.com/decker502/planewar/pkg/embedded"
	"github.com/decker502/planewar/pkg/entities"
	"github.com/decker502/planewar/pkg/game"
	"github.com/decker502/planewar/pkg/scenes"
	"github.com/decker502/planewar/pkg/systems"
	"github.com/decker502/planewar/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	// GameplayConfigPath 玩法配置文件
	GameplayConfigPath = "data/gameplay.yaml"
	// ResourceConfigPath 资源清单
	ResourceConfigPath = "assets/config/resources.yaml"

	sampleRate = 48000
)

// 启动时必须全部加载成功的资源组
var requiredGroups = []string{"sprites", "audio"}

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Seed 敌机随机数种子，0 表示使用当前时间
	Seed uint64
	// AssetsDir 从磁盘目录读取资源（目录下包含 assets/ 和 data/），为空则使用嵌入资源
	AssetsDir string
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	scene  *scenes.ShooterScene
	canvas *systems.EbitenCanvas

	finished bool // 场景已结束，下一次 Update 返回 ebiten.Termination
	closed   bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
// 任何资源缺失都会返回错误，游戏不会启动。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	var fsys fs.FS = embedded.FS()
	if cfg.AssetsDir != "" {
		fsys = os.DirFS(cfg.AssetsDir)
		log.Printf("[App] Loading assets from %s", cfg.AssetsDir)
	}

	gameplay, err := config.LoadGameplayConfig(fsys, GameplayConfigPath)
	if err != nil {
		return nil, fmt.Errorf("玩法配置加载失败: %w", err)
	}

	// 初始化音频上下文
	audioContext := audio.NewContext(sampleRate)

	// 创建资源管理器
	resourceManager := game.NewResourceManager(audioContext, fsys)
	if err := resourceManager.LoadResourceConfig(ResourceConfigPath); err != nil {
		return nil, fmt.Errorf("资源配置加载失败: %w", err)
	}
	for _, group := range requiredGroups {
		if err := resourceManager.LoadResourceGroup(group); err != nil {
			return nil, fmt.Errorf("资源加载失败: %w", err)
		}
	}

	sprites, err := loadSprites(resourceManager)
	if err != nil {
		return nil, err
	}

	hudFont, err := resourceManager.LoadFontOrBuiltin(config.FontHUD, config.HUDFontSize, false)
	if err != nil {
		return nil, fmt.Errorf("字体加载失败: %w", err)
	}
	titleFont, err := resourceManager.LoadFontOrBuiltin(config.FontTitle, config.GameOverFontSize, true)
	if err != nil {
		return nil, fmt.Errorf("字体加载失败: %w", err)
	}

	audioManager := game.NewAudioManager(resourceManager, gameplay.Audio)
	audioManager.PreloadSounds([]string{config.SoundBulletFired, config.SoundExplosion})
	log.Printf("[App] AudioManager initialized")

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.Printf("[App] Random seed: %d", seed)
	rng := rand.New(rand.NewPCG(seed, seed))

	scene := scenes.NewShooterScene(gameplay, sprites, rng, audioManager)
	scene.Start()

	if !utils.IsMobile() {
		// 关闭窗口时由 Update 完成收尾后再退出
		ebiten.SetWindowClosingHandled(true)
	}

	return &App{
		scene:  scene,
		canvas: systems.NewEbitenCanvas(hudFont, titleFont),
	}, nil
}

func loadSprites(rm *game.ResourceManager) (entities.SpriteSet, error) {
	var sprites entities.SpriteSet
	targets := []struct {
		id  string
		dst *entities.SpriteAsset
	}{
		{id: config.ImagePlayer, dst: &sprites.Player},
		{id: config.ImageEnemy, dst: &sprites.Enemy},
		{id: config.ImageBullet, dst: &sprites.Bullet},
	}
	for _, target := range targets {
		img, err := rm.LoadImageByID(target.id)
		if err != nil {
			return sprites, fmt.Errorf("图片加载失败: %w", err)
		}
		*target.dst = entities.NewSpriteAsset(img)
	}
	return sprites, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（每秒 60 次）
func (a *App) Update() error {
	if a.finished {
		a.Close()
		return ebiten.Termination
	}

	a.updateFullscreen()

	a.scene.Tick(utils.PollInput())
	if a.scene.Finished() {
		// 本帧仍然绘制，下一次 Update 退出
		a.finished = true
	}
	return nil
}

// updateFullscreen F11 切换全屏
func (a *App) updateFullscreen() {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	if !inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		return
	}
	if ebiten.IsFullscreen() {
		ebiten.SetFullscreen(false)
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		return
	}
	ebiten.SetFullscreen(true)
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.canvas.SetTarget(screen)
	a.scene.Draw(a.canvas)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 全屏时左右两边填充黑色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// Close 停止背景音乐，可重复调用
func (a *App) Close() {
	if a.closed {
		return
	}
	a.closed = true
	a.scene.Close()
}

// Score 返回当前分数
func (a *App) Score() int {
	return a.scene.Score()
}
