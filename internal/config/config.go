// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics  GraphicsConfig  `yaml:"graphics"`
	Assets    AssetsConfig    `yaml:"assets"`
	Animation AnimationConfig `yaml:"animation"`
	Lighting  LightingConfig  `yaml:"lighting"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width    int  `yaml:"width"`
	Height   int  `yaml:"height"`
	VSync    bool `yaml:"vsync"`
	FPSLimit int  `yaml:"fps_limit"` // render-loop tick rate; 0 means 60
}

// AssetsConfig holds scene asset paths.
type AssetsConfig struct {
	BackdropPath string `yaml:"backdrop_path"` // studio backdrop scene
	ProductPath  string `yaml:"product_path"`  // articulated lamp model
	ShadeNode    string `yaml:"shade_node"`    // mesh node that receives material presets
}

// AnimationConfig holds playback settings.
type AnimationConfig struct {
	Speed float64 `yaml:"speed"` // playback speed multiplier
}

// LightingConfig holds the initial simulated time-of-day.
type LightingConfig struct {
	ElevationDeg float64 `yaml:"elevation_deg"`
	AzimuthDeg   float64 `yaml:"azimuth_deg"`
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
			Width:    1024,
			Height:   768,
			VSync:    true,
			FPSLimit: 60,
		},
		Assets: AssetsConfig{
			BackdropPath: "assets/studio_backdrop.glb",
			ProductPath:  "assets/wall_lamp.glb",
			ShadeNode:    "Shade",
		},
		Animation: AnimationConfig{
			Speed: 1.0,
		},
		Lighting: LightingConfig{
			ElevationDeg: 90,
			AzimuthDeg:   90,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
