package game

import "path"

// ResourceConfig represents the top-level resource configuration loaded from YAML.
// It defines the structure of assets/config/resources.yaml.
//
// Structure:
//
//	version: "1.0"
//	base_path: assets
//	groups:
//	  group_name:
//	    images: [...]
//	    sounds: [...]
//	    fonts: [...]
type ResourceConfig struct {
	Version  string                   `yaml:"version"`   // Configuration file version
	BasePath string                   `yaml:"base_path"` // Base path for all resources (e.g., "assets")
	Groups   map[string]ResourceGroup `yaml:"groups"`    // Resource groups keyed by group name
}

// ResourceGroup represents a collection of related resources that can be loaded together.
//
// Example from resources.yaml:
//
//	sprites:
//	  images:
//	    - id: IMAGE_PLAYER
//	      path: images/player
type ResourceGroup struct {
	Images []ImageResource `yaml:"images"` // List of image resources in this group
	Sounds []SoundResource `yaml:"sounds"` // List of sound resources in this group
	Fonts  []FontResource  `yaml:"fonts"`  // List of font resources in this group
}

// ImageResource represents a single image resource definition.
// Path is relative to base_path; ".png" is appended when it has no extension.
type ImageResource struct {
	ID   string `yaml:"id"`   // Resource ID (e.g., "IMAGE_PLAYER")
	Path string `yaml:"path"` // Relative file path from base_path
}

// SoundResource represents a single sound/audio resource definition.
//
// Example:
//   - id: SOUND_BG_MUSIC
//     path: sounds/bg_music.wav
//     loop: true
type SoundResource struct {
	ID   string `yaml:"id"`             // Resource ID (e.g., "SOUND_HIT")
	Path string `yaml:"path"`           // Relative file path from base_path
	Loop bool   `yaml:"loop,omitempty"` // Background music (loops forever) rather than a one-shot effect
}

// FontResource represents a single font resource definition (.ttf / .otf).
type FontResource struct {
	ID   string `yaml:"id"`   // Resource ID (e.g., "FONT_HUD")
	Path string `yaml:"path"` // Relative file path from base_path
}

// buildFullPath constructs the full file path for a resource.
// Paths always use forward slashes so they work with io/fs and embed.FS.
//
// Parameters:
//   - basePath: The base path from ResourceConfig (e.g., "assets")
//   - relativePath: The resource's relative path (e.g., "images/player.png")
//
// Returns:
//   - The full file path (e.g., "assets/images/player.png")
func buildFullPath(basePath, relativePath string) string {
	if basePath == "" {
		return path.Clean(relativePath)
	}
	return path.Join(basePath, relativePath)
}
