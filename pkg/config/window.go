package config

// 窗口与帧率配置
// 这些值是固定常量，不从配置文件读取
const (
	// GameWindowWidth 逻辑屏幕宽度（像素）
	GameWindowWidth = 700

	// GameWindowHeight 逻辑屏幕高度（像素）
	GameWindowHeight = 800

	// TicksPerSecond 固定逻辑帧率
	TicksPerSecond = 60

	// WindowTitle 窗口标题
	WindowTitle = "打飞机"
)

// 资源ID，与 assets/config/resources.yaml 中的 id 一一对应
const (
	ImagePlayer = "IMAGE_PLAYER"
	ImageEnemy  = "IMAGE_ENEMY"
	ImageBullet = "IMAGE_BULLET"

	// SoundBackgroundMusic 背景音乐（循环播放）
	SoundBackgroundMusic = "SOUND_BG_MUSIC"
	// SoundBulletFired 子弹发射音效（原版 hit.wav）
	SoundBulletFired = "SOUND_HIT"
	// SoundExplosion 敌机被击落 / 玩家坠毁音效
	SoundExplosion = "SOUND_EXPLODE"

	// FontHUD / FontTitle 可选字体，资源清单未声明时使用内置 Go 字体
	FontHUD   = "FONT_HUD"
	FontTitle = "FONT_TITLE"
)

// 文本字号
const (
	HUDFontSize      = 30.0
	GameOverFontSize = 80.0
)
