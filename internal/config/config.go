// Package config handles application configuration loading and management.
package config

// Config holds all application settings.
type Config struct {
	Graphics   GraphicsConfig   `yaml:"graphics"`
	Camera     CameraConfig     `yaml:"camera"`
	Render     RenderConfig     `yaml:"render"`
	Console    ConsoleConfig    `yaml:"console"`
	Scene      SceneConfig      `yaml:"scene"`
	Screenshot ScreenshotConfig `yaml:"screenshot"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// CameraConfig holds the lens of newly created cameras and the fly
// controller tuning.
type CameraConfig struct {
	FOV             float32 `yaml:"fov"` // vertical, degrees
	Near            float32 `yaml:"near"`
	Far             float32 `yaml:"far"`
	MoveSpeed       float32 `yaml:"move_speed"`
	LookSensitivity float32 `yaml:"look_sensitivity"`
	BoostMultiplier float32 `yaml:"boost_multiplier"`
}

// RenderConfig holds frame pipeline settings.
type RenderConfig struct {
	ClearColor   [4]float32 `yaml:"clear_color,flow"`
	Exposure     float32    `yaml:"exposure"`
	Wireframe    bool       `yaml:"wireframe"`
	AnimateLight bool       `yaml:"animate_light"`
}

// ConsoleConfig holds debug overlay settings.
type ConsoleConfig struct {
	Enabled bool    `yaml:"enabled"`
	Scale   float32 `yaml:"scale"`
}

// SceneConfig holds scene persistence settings.
type SceneConfig struct {
	Dir     string `yaml:"dir"`
	Startup string `yaml:"startup"` // scene opened at launch, empty for a new scene
}

// ScreenshotConfig holds screenshot output settings.
type ScreenshotConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Camera: CameraConfig{
			FOV:             60,
			Near:            0.1,
			Far:             1000,
			MoveSpeed:       5,
			LookSensitivity: 0.005,
			BoostMultiplier: 4,
		},
		Render: RenderConfig{
			ClearColor: [4]float32{0.1, 0.1, 0.12, 1},
			Exposure:   1,
		},
		Console: ConsoleConfig{
			Enabled: true,
			Scale:   1,
		},
		Scene: SceneConfig{
			Dir: "scenes",
		},
		Screenshot: ScreenshotConfig{
			Dir:    "screenshots",
			Prefix: "scenecore",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
