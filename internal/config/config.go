// Package config handles engine configuration loading and management.
package config

// Config holds all engine settings.
type Config struct {
	Assets  AssetsConfig  `yaml:"assets"`
	Loader  LoaderConfig  `yaml:"loader"`
	Camera  CameraConfig  `yaml:"camera"`
	Render  RenderConfig  `yaml:"render"`
	Logging LoggingConfig `yaml:"logging"`
}

// AssetsConfig holds asset directories. Subdirectories are relative to Root.
type AssetsConfig struct {
	Root     string `yaml:"root"`
	Models   string `yaml:"models"`
	Shaders  string `yaml:"shaders"`
	Textures string `yaml:"textures"`
}

// LoaderConfig selects the model parser and the vertex hash policy.
type LoaderConfig struct {
	Parser string `yaml:"parser"` // obj, obj-fast or stub
	Hash   string `yaml:"hash"`   // active or all
}

// CameraConfig holds camera settings. Zero values take the camera defaults.
type CameraConfig struct {
	FOV      float32   `yaml:"fov"`
	Near     float32   `yaml:"near"`
	Far      float32   `yaml:"far"`
	Position []float32 `yaml:"position,omitempty"` // x, y, z
}

// RenderConfig holds swapchain and frame loop settings.
type RenderConfig struct {
	Width             int  `yaml:"width"`
	Height            int  `yaml:"height"`
	MaxFramesInFlight int  `yaml:"max_frames_in_flight"`
	ModeledForVulkan  bool `yaml:"modeled_for_vulkan"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Hash policies.
const (
	HashActive = "active"
	HashAll    = "all"
)

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Assets: AssetsConfig{
			Root:     "assets",
			Models:   "models",
			Shaders:  "shaders",
			Textures: "textures",
		},
		Loader: LoaderConfig{
			Parser: "obj",
			Hash:   HashActive,
		},
		Camera: CameraConfig{
			FOV:  45,
			Near: 0.1,
			Far:  1000,
		},
		Render: RenderConfig{
			Width:             1280,
			Height:            720,
			MaxFramesInFlight: 2,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
