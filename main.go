package main

import (
	"flag"
	"log"
	"os"

	_ "github.com/ebitengine/hideconsole" // Windows 下隐藏控制台窗口

	"github.com/decker502/planewar/pkg/app"
	"github.com/decker502/planewar/pkg/config"
	"github.com/decker502/planewar/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	seed := flag.Uint64("seed", 0, "敌机随机数种子（0 表示使用当前时间）")
	assetsDir := flag.String("assets", "", "从磁盘目录加载资源（包含 assets/ 和 data/），默认使用嵌入资源")
	flag.Parse()

	// 初始化嵌入资源
	embedded.Init(assetsFS, dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:   *verbose,
		Seed:      *seed,
		AssetsDir: *assetsDir,
	})
	if err != nil {
		// 非 verbose 模式下日志已被丢弃，启动错误仍需输出
		log.SetOutput(os.Stderr)
		log.Fatalf("游戏初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetTPS(config.TicksPerSecond)

	// Termination 时 RunGame 返回 nil
	err = ebiten.RunGame(gameApp)
	gameApp.Close()
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
	log.Printf("[Main] Final score: %d", gameApp.Score())
}
