package game

import (
	"log"

	"github.com/decker502/planewar/pkg/config"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// AudioManager 音频管理器
// 职责：
//   - 统一管理游戏中所有音效和背景音乐的播放
//   - 按 config.AudioConfig 设置音量
//   - 通过资源ID播放，无需关心路径
//
// 播放失败（资源缺失、音频设备不可用）只记录日志并返回 false，
// 不会中断游戏逻辑。
type AudioManager struct {
	resourceManager *ResourceManager         // 资源管理器（用于加载音频）
	volumes         config.AudioConfig       // 音量设置
	soundPlayers    map[string]*audio.Player // 音效播放器缓存（资源ID -> 播放器）
	musicPlayers    map[string]*audio.Player // 背景音乐播放器缓存（资源ID -> 播放器）
	missing         map[string]bool          // 已确认无法加载的资源ID，避免每帧重复报错
	currentMusic    *audio.Player            // 当前播放的背景音乐
	currentMusicID  string                   // 当前播放的背景音乐ID
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - rm: ResourceManager 实例（用于加载音频文件）
//   - volumes: 音乐和音效音量
func NewAudioManager(rm *ResourceManager, volumes config.AudioConfig) *AudioManager {
	return &AudioManager{
		resourceManager: rm,
		volumes:         volumes,
		soundPlayers:    make(map[string]*audio.Player),
		musicPlayers:    make(map[string]*audio.Player),
		missing:         make(map[string]bool),
	}
}

// PlaySound 播放音效（单次播放）
// 同一音效再次触发时从头开始播放
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlaySound(soundID string) bool {
	player := am.getPlayer(soundID, am.soundPlayers, am.resourceManager.LoadSoundEffect)
	if player == nil {
		return false
	}

	player.SetVolume(am.volumes.SoundVolume)

	// 重置并播放
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", soundID, err)
	}
	player.Play()

	return true
}

// PlayMusic 播放背景音乐（无限循环）
// 同一时间只能播放一首背景音乐
func (am *AudioManager) PlayMusic(musicID string) bool {
	// 如果已经在播放同一首音乐，不重复播放
	if am.currentMusicID == musicID && am.currentMusic != nil && am.currentMusic.IsPlaying() {
		return true
	}

	am.StopMusic()

	player := am.getPlayer(musicID, am.musicPlayers, am.resourceManager.LoadAudio)
	if player == nil {
		return false
	}

	player.SetVolume(am.volumes.MusicVolume)
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind music %s: %v", musicID, err)
	}
	player.Play()

	am.currentMusic = player
	am.currentMusicID = musicID

	log.Printf("[AudioManager] Playing music: %s (volume: %.2f)", musicID, am.volumes.MusicVolume)

	return true
}

// StopMusic 停止当前背景音乐
func (am *AudioManager) StopMusic() {
	if am.currentMusic != nil {
		am.currentMusic.Pause()
		am.currentMusic = nil
		am.currentMusicID = ""
	}
}

// getPlayer 获取或加载播放器
func (am *AudioManager) getPlayer(id string, cache map[string]*audio.Player, load func(string) (*audio.Player, error)) *audio.Player {
	if player, exists := cache[id]; exists {
		return player
	}
	if am.missing[id] {
		return nil
	}
	if am.resourceManager == nil {
		am.missing[id] = true
		log.Printf("[AudioManager] Warning: No resource manager, cannot play %s", id)
		return nil
	}

	filePath, err := am.resourceManager.ResolvePath(id)
	if err != nil {
		am.missing[id] = true
		log.Printf("[AudioManager] Warning: %v", err)
		return nil
	}

	player, err := load(filePath)
	if err != nil {
		am.missing[id] = true
		log.Printf("[AudioManager] Warning: Failed to load %s: %v", id, err)
		return nil
	}
	cache[id] = player
	return player
}

// PreloadSounds 预加载音效
// 在场景初始化时调用，避免首次播放时的延迟
func (am *AudioManager) PreloadSounds(soundIDs []string) {
	loaded := 0
	for _, soundID := range soundIDs {
		if am.getPlayer(soundID, am.soundPlayers, am.resourceManager.LoadSoundEffect) != nil {
			loaded++
		}
	}
	log.Printf("[AudioManager] Preloaded %d/%d sounds", loaded, len(soundIDs))
}

// NopAudio 不播放任何声音（无头模拟、无音频设备时使用）
type NopAudio struct{}

// PlaySound 什么都不做
func (NopAudio) PlaySound(string) bool { return true }

// PlayMusic 什么都不做
func (NopAudio) PlayMusic(string) bool { return true }

// StopMusic 什么都不做
func (NopAudio) StopMusic() {}
