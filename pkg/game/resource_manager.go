package game

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"io/fs"
	"log"
	"path"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"gopkg.in/yaml.v3"
)

// ErrResourceNotFound is returned when a resource ID is not declared in the resource config.
var ErrResourceNotFound = errors.New("resource not found")

// ResourceManager is responsible for centralized management of game resources.
// It provides loading and caching mechanisms for images, audio and fonts,
// ensuring that resources are loaded only once and reused throughout the game.
//
// All files are read from an fs.FS: the embedded assets in release builds,
// os.DirFS when the player overrides assets on disk, fstest.MapFS in tests.
//
// Thread Safety Note:
// This implementation is NOT thread-safe. Resources are loaded on the game goroutine
// during startup, before the loop begins.
//
// Usage:
//
//	audioContext := audio.NewContext(48000)
//	rm := NewResourceManager(audioContext, embedded.FS())
//	if err := rm.LoadResourceConfig("assets/config/resources.yaml"); err != nil {
//	    return err
//	}
//	img, err := rm.LoadImageByID("IMAGE_PLAYER")
type ResourceManager struct {
	fsys          fs.FS                    // Source of all resource files
	audioContext  *audio.Context           // Global audio context for audio decoding (nil disables audio)
	imageCache    map[string]*ebiten.Image // Cache for loaded images: path -> Image
	musicCache    map[string]*audio.Player // Cache for looping players: path -> Player
	soundCache    map[string]*audio.Player // Cache for one-shot players: path -> Player
	fontSources   map[string]*text.GoTextFaceSource
	fontFaceCache map[string]*text.GoTextFace // Cache for text faces: "path:size" -> Face

	// YAML resource configuration
	config      *ResourceConfig   // Parsed YAML configuration
	resourceMap map[string]string // Resource ID -> file path mapping for quick lookup
	loopingIDs  map[string]bool   // Sound IDs declared with loop: true
}

// NewResourceManager creates and initializes a new ResourceManager instance.
//
// Parameters:
//   - audioContext: The global audio context (48000 Hz). May be nil, in which case every audio load fails.
//   - fsys: The filesystem resources are read from.
//
// Returns:
//   - A pointer to a newly initialized ResourceManager with empty caches.
func NewResourceManager(audioContext *audio.Context, fsys fs.FS) *ResourceManager {
	return &ResourceManager{
		fsys:          fsys,
		audioContext:  audioContext,
		imageCache:    make(map[string]*ebiten.Image),
		musicCache:    make(map[string]*audio.Player),
		soundCache:    make(map[string]*audio.Player),
		fontSources:   make(map[string]*text.GoTextFaceSource),
		fontFaceCache: make(map[string]*text.GoTextFace),
		resourceMap:   make(map[string]string),
		loopingIDs:    make(map[string]bool),
	}
}

// LoadImage loads an image file from the specified path and caches it for future use.
// If the image has already been loaded, it returns the cached version.
//
// Error handling:
//   - Returns an error if the file does not exist or cannot be opened.
//   - Returns an error if the image format is not supported or the file is corrupted.
func (rm *ResourceManager) LoadImage(path string) (*ebiten.Image, error) {
	if cachedImage, exists := rm.imageCache[path]; exists {
		return cachedImage, nil
	}

	file, err := rm.fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	ebitenImg := ebiten.NewImageFromImage(img)
	rm.imageCache[path] = ebitenImg

	return ebitenImg, nil
}

// audioStream is what every ebiten decoder returns.
type audioStream interface {
	io.ReadSeeker
	Length() int64
}

// decodeAudio reads the whole file into memory and decodes it by extension.
// Supported formats: MP3 (.mp3), OGG Vorbis (.ogg) and WAV (.wav).
func (rm *ResourceManager) decodeAudio(filePath string) (audioStream, error) {
	if rm.audioContext == nil {
		return nil, fmt.Errorf("audio context not initialized, cannot load %s", filePath)
	}

	// Read the entire file into memory so the stream can seek without keeping the file open
	audioData, err := fs.ReadFile(rm.fsys, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file %s: %w", filePath, err)
	}
	reader := bytes.NewReader(audioData)

	switch ext := strings.ToLower(path.Ext(filePath)); ext {
	case ".mp3":
		stream, err := mp3.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode MP3 audio %s: %w", filePath, err)
		}
		return stream, nil
	case ".ogg":
		stream, err := vorbis.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode OGG audio %s: %w", filePath, err)
		}
		return stream, nil
	case ".wav":
		stream, err := wav.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode WAV audio %s: %w", filePath, err)
		}
		return stream, nil
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .mp3, .ogg, .wav)", ext)
	}
}

// LoadAudio loads an audio file wrapped in an infinite loop (background music).
// If the audio has already been loaded, it returns the cached player.
func (rm *ResourceManager) LoadAudio(path string) (*audio.Player, error) {
	if cachedPlayer, exists := rm.musicCache[path]; exists {
		return cachedPlayer, nil
	}

	stream, err := rm.decodeAudio(path)
	if err != nil {
		return nil, err
	}

	loopStream := audio.NewInfiniteLoop(stream, stream.Length())
	player, err := rm.audioContext.NewPlayer(loopStream)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", path, err)
	}

	rm.musicCache[path] = player
	return player, nil
}

// LoadSoundEffect loads a one-shot sound effect (no loop) and caches it for future use.
func (rm *ResourceManager) LoadSoundEffect(path string) (*audio.Player, error) {
	if cachedPlayer, exists := rm.soundCache[path]; exists {
		return cachedPlayer, nil
	}

	stream, err := rm.decodeAudio(path)
	if err != nil {
		return nil, err
	}

	player, err := rm.audioContext.NewPlayer(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", path, err)
	}

	rm.soundCache[path] = player
	return player, nil
}

// LoadFont loads a TrueType/OpenType font from the specified path and creates a text face with the given size.
// The font face is cached with a key combining path and size.
func (rm *ResourceManager) LoadFont(path string, size float64) (*text.GoTextFace, error) {
	cacheKey := fmt.Sprintf("%s:%.1f", path, size)
	if cachedFace, exists := rm.fontFaceCache[cacheKey]; exists {
		return cachedFace, nil
	}

	source, exists := rm.fontSources[path]
	if !exists {
		fontData, err := fs.ReadFile(rm.fsys, path)
		if err != nil {
			return nil, fmt.Errorf("failed to read font file %s: %w", path, err)
		}
		source, err = text.NewGoTextFaceSource(bytes.NewReader(fontData))
		if err != nil {
			return nil, fmt.Errorf("failed to create font source for %s: %w", path, err)
		}
		rm.fontSources[path] = source
	}

	goTextFace := &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	rm.fontFaceCache[cacheKey] = goTextFace

	return goTextFace, nil
}

// 内置字体的缓存键（不会与文件路径冲突）
const (
	builtinRegularFont = "builtin:goregular"
	builtinBoldFont    = "builtin:gobold"
)

// LoadBuiltinFont returns a face of the Go fonts bundled with golang.org/x/image.
// Used when the resource config declares no font.
func (rm *ResourceManager) LoadBuiltinFont(size float64, bold bool) (*text.GoTextFace, error) {
	key, ttf := builtinRegularFont, goregular.TTF
	if bold {
		key, ttf = builtinBoldFont, gobold.TTF
	}

	cacheKey := fmt.Sprintf("%s:%.1f", key, size)
	if cachedFace, exists := rm.fontFaceCache[cacheKey]; exists {
		return cachedFace, nil
	}

	source, exists := rm.fontSources[key]
	if !exists {
		var err error
		source, err = text.NewGoTextFaceSource(bytes.NewReader(ttf))
		if err != nil {
			return nil, fmt.Errorf("failed to create builtin font source: %w", err)
		}
		rm.fontSources[key] = source
	}

	face := &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	rm.fontFaceCache[cacheKey] = face
	return face, nil
}

// LoadResourceConfig loads and parses the YAML resource configuration file.
// This should be called once during game initialization, before loading resources by ID.
func (rm *ResourceManager) LoadResourceConfig(configPath string) error {
	data, err := fs.ReadFile(rm.fsys, configPath)
	if err != nil {
		return fmt.Errorf("failed to read resource config %s: %w", configPath, err)
	}

	var config ResourceConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("failed to parse resource config %s: %w", configPath, err)
	}

	rm.config = &config
	rm.buildResourceMap()

	return nil
}

// buildResourceMap constructs a mapping from resource IDs to full file paths.
//
//	IMAGE_PLAYER -> assets/images/player.png
//	SOUND_HIT    -> assets/sounds/hit.wav
func (rm *ResourceManager) buildResourceMap() {
	if rm.config == nil {
		return
	}

	rm.resourceMap = make(map[string]string)
	rm.loopingIDs = make(map[string]bool)

	for _, group := range rm.config.Groups {
		for _, img := range group.Images {
			fullPath := buildFullPath(rm.config.BasePath, img.Path)
			if path.Ext(fullPath) == "" {
				fullPath += ".png" // Default to PNG for images
			}
			rm.resourceMap[img.ID] = fullPath
		}

		for _, sound := range group.Sounds {
			fullPath := buildFullPath(rm.config.BasePath, sound.Path)
			if path.Ext(fullPath) == "" {
				fullPath += ".wav" // Default to WAV for sounds
			}
			rm.resourceMap[sound.ID] = fullPath
			if sound.Loop {
				rm.loopingIDs[sound.ID] = true
			}
		}

		for _, font := range group.Fonts {
			rm.resourceMap[font.ID] = buildFullPath(rm.config.BasePath, font.Path)
		}
	}
}

// ResolvePath returns the file path declared for a resource ID.
func (rm *ResourceManager) ResolvePath(resourceID string) (string, error) {
	if rm.config == nil {
		return "", fmt.Errorf("resource config not loaded - call LoadResourceConfig first")
	}
	filePath, exists := rm.resourceMap[resourceID]
	if !exists {
		return "", fmt.Errorf("%w: %s", ErrResourceNotFound, resourceID)
	}
	return filePath, nil
}

// IsLooping reports whether a sound ID is declared as background music.
func (rm *ResourceManager) IsLooping(resourceID string) bool {
	return rm.loopingIDs[resourceID]
}

// LoadImageByID loads an image resource using its resource ID.
func (rm *ResourceManager) LoadImageByID(resourceID string) (*ebiten.Image, error) {
	filePath, err := rm.ResolvePath(resourceID)
	if err != nil {
		return nil, err
	}
	return rm.LoadImage(filePath)
}

// LoadSoundByID loads a sound by resource ID.
// Sounds declared with loop: true are loaded as looping music, others as one-shot effects.
func (rm *ResourceManager) LoadSoundByID(resourceID string) (*audio.Player, error) {
	filePath, err := rm.ResolvePath(resourceID)
	if err != nil {
		return nil, err
	}
	if rm.IsLooping(resourceID) {
		return rm.LoadAudio(filePath)
	}
	return rm.LoadSoundEffect(filePath)
}

// LoadFontByID loads a font face by resource ID and size.
func (rm *ResourceManager) LoadFontByID(resourceID string, size float64) (*text.GoTextFace, error) {
	filePath, err := rm.ResolvePath(resourceID)
	if err != nil {
		return nil, err
	}
	return rm.LoadFont(filePath, size)
}

// LoadFontOrBuiltin loads the font declared for resourceID, falling back to the
// builtin Go font when the resource config does not declare it.
// A declared font that fails to load is an error, not a fallback.
func (rm *ResourceManager) LoadFontOrBuiltin(resourceID string, size float64, bold bool) (*text.GoTextFace, error) {
	face, err := rm.LoadFontByID(resourceID, size)
	if err == nil {
		return face, nil
	}
	if !errors.Is(err, ErrResourceNotFound) {
		return nil, err
	}
	log.Printf("[ResourceManager] Font %s not declared, using builtin font", resourceID)
	return rm.LoadBuiltinFont(size, bold)
}

// LoadResourceGroup loads all images and sounds in a specified group.
// Fonts are not loaded here as they require a size parameter.
func (rm *ResourceManager) LoadResourceGroup(groupName string) error {
	if rm.config == nil {
		return fmt.Errorf("resource config not loaded - call LoadResourceConfig first")
	}

	group, exists := rm.config.Groups[groupName]
	if !exists {
		return fmt.Errorf("%w: group %s", ErrResourceNotFound, groupName)
	}

	for _, img := range group.Images {
		if _, err := rm.LoadImageByID(img.ID); err != nil {
			return fmt.Errorf("failed to load image %s in group %s: %w", img.ID, groupName, err)
		}
	}

	for _, sound := range group.Sounds {
		if _, err := rm.LoadSoundByID(sound.ID); err != nil {
			return fmt.Errorf("failed to load sound %s in group %s: %w", sound.ID, groupName, err)
		}
	}

	return nil
}
