package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Assets.Root != "assets" || cfg.Assets.Models != "models" {
		t.Errorf("unexpected asset dirs %+v", cfg.Assets)
	}
	if cfg.Assets.Shaders != "shaders" || cfg.Assets.Textures != "textures" {
		t.Errorf("unexpected asset dirs %+v", cfg.Assets)
	}

	if cfg.Loader.Parser != "obj" {
		t.Errorf("expected parser obj, got %s", cfg.Loader.Parser)
	}
	if cfg.Loader.Hash != HashActive {
		t.Errorf("expected hash policy active, got %s", cfg.Loader.Hash)
	}

	if cfg.Camera.FOV != 45 || cfg.Camera.Near != 0.1 || cfg.Camera.Far != 1000 {
		t.Errorf("unexpected camera defaults %+v", cfg.Camera)
	}
	if cfg.Camera.Position != nil {
		t.Error("camera position should default to the failsafe position")
	}

	if cfg.Render.Width != 1280 || cfg.Render.Height != 720 {
		t.Errorf("expected 1280x720, got %dx%d", cfg.Render.Width, cfg.Render.Height)
	}
	if cfg.Render.MaxFramesInFlight != 2 {
		t.Errorf("expected 2 frames in flight, got %d", cfg.Render.MaxFramesInFlight)
	}
	if cfg.Render.ModeledForVulkan {
		t.Error("expected modeled_for_vulkan to be false by default")
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
assets:
  root: "/opt/gx"
  models: "meshes"

loader:
  parser: "obj-fast"
  hash: "all"

camera:
  fov: 60
  position: [0, 1, 5]

render:
  width: 1920
  height: 1080
  max_frames_in_flight: 3
  modeled_for_vulkan: true

logging:
  level: "debug"
  log_file: "engine.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Assets.Root != "/opt/gx" || cfg.Assets.Models != "meshes" {
		t.Errorf("assets not loaded: %+v", cfg.Assets)
	}
	if cfg.Assets.Shaders != "shaders" {
		t.Errorf("unset keys should keep defaults, got shaders=%s", cfg.Assets.Shaders)
	}
	if cfg.Loader.Parser != "obj-fast" || cfg.Loader.Hash != HashAll {
		t.Errorf("loader not loaded: %+v", cfg.Loader)
	}
	if cfg.Camera.FOV != 60 || cfg.Camera.Near != 0.1 {
		t.Errorf("camera not merged: %+v", cfg.Camera)
	}
	if len(cfg.Camera.Position) != 3 || cfg.Camera.Position[2] != 5 {
		t.Errorf("camera position = %v", cfg.Camera.Position)
	}
	if cfg.Render.Width != 1920 || cfg.Render.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Render.Width, cfg.Render.Height)
	}
	if cfg.Render.MaxFramesInFlight != 3 || !cfg.Render.ModeledForVulkan {
		t.Errorf("render not loaded: %+v", cfg.Render)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "engine.log" {
		t.Errorf("logging not loaded: %+v", cfg.Logging)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
render:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"fast parser", func(c *Config) { c.Loader.Parser = "obj-fast" }, false},
		{"stub parser", func(c *Config) { c.Loader.Parser = "stub" }, false},
		{"unknown parser", func(c *Config) { c.Loader.Parser = "fbx" }, true},
		{"all fields hash", func(c *Config) { c.Loader.Hash = HashAll }, false},
		{"unknown hash", func(c *Config) { c.Loader.Hash = "fnv" }, true},
		{"short position", func(c *Config) { c.Camera.Position = []float32{1, 2} }, true},
		{"full position", func(c *Config) { c.Camera.Position = []float32{1, 2, 3} }, false},
		{"negative width", func(c *Config) { c.Render.Width = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("render:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "models flag",
			setup: func() { *flagModels = "meshes" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Assets.Models != "meshes" {
					t.Errorf("expected models dir meshes, got %s", cfg.Assets.Models)
				}
			},
			teardown: func() { *flagModels = "" },
		},
		{
			name:  "parser flag",
			setup: func() { *flagParser = "obj-fast" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Loader.Parser != "obj-fast" {
					t.Errorf("expected parser obj-fast, got %s", cfg.Loader.Parser)
				}
			},
			teardown: func() { *flagParser = "" },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Render.Width != 2560 || cfg.Render.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Render.Width, cfg.Render.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
render:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width from flag, height from file
	if cfg.Render.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Render.Width)
	}
	if cfg.Render.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Render.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("loader:\n  hash: crc\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected an error for an unknown hash policy")
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Loader.Parser = "obj-fast"
	cfg.Camera.Position = []float32{1, 2, 3}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reloading saved config: %v", err)
	}
	if loaded.Loader.Parser != "obj-fast" || len(loaded.Camera.Position) != 3 {
		t.Errorf("saved config not reloaded: %+v", loaded)
	}
}
